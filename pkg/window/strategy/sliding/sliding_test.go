/*
Copyright 2025 The Tempora Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package sliding

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tempora-io/tempora/pkg/window"
)

func TestSliding_AssignWindows(t *testing.T) {
	baseTime := time.UnixMilli(600000)

	tests := []struct {
		name      string
		length    time.Duration
		slide     time.Duration
		offset    time.Duration
		eventTime time.Time
		want      []*window.IntervalWindow
	}{
		{
			name:      "length_divisible_by_slide",
			length:    time.Minute,
			slide:     20 * time.Second,
			eventTime: baseTime.Add(10 * time.Second),
			want: []*window.IntervalWindow{
				{Start: time.UnixMilli(560000), End: time.UnixMilli(620000)},
				{Start: time.UnixMilli(580000), End: time.UnixMilli(640000)},
				{Start: time.UnixMilli(600000), End: time.UnixMilli(660000)},
			},
		},
		{
			name:      "length_not_divisible_by_slide",
			length:    time.Minute,
			slide:     40 * time.Second,
			eventTime: baseTime.Add(10 * time.Second),
			want: []*window.IntervalWindow{
				{Start: time.UnixMilli(560000), End: time.UnixMilli(620000)},
				{Start: time.UnixMilli(600000), End: time.UnixMilli(660000)},
			},
		},
		{
			name:      "element_on_window_start",
			length:    time.Minute,
			slide:     20 * time.Second,
			eventTime: baseTime,
			want: []*window.IntervalWindow{
				{Start: time.UnixMilli(560000), End: time.UnixMilli(620000)},
				{Start: time.UnixMilli(580000), End: time.UnixMilli(640000)},
				{Start: time.UnixMilli(600000), End: time.UnixMilli(660000)},
			},
		},
		{
			name:      "element_on_window_end_excluded",
			length:    time.Minute,
			slide:     20 * time.Second,
			eventTime: baseTime.Add(time.Minute),
			want: []*window.IntervalWindow{
				{Start: time.UnixMilli(620000), End: time.UnixMilli(680000)},
				{Start: time.UnixMilli(640000), End: time.UnixMilli(700000)},
				{Start: time.UnixMilli(660000), End: time.UnixMilli(720000)},
			},
		},
		{
			name:      "with_offset",
			length:    20 * time.Second,
			slide:     12 * time.Second,
			offset:    5 * time.Second,
			eventTime: time.UnixMilli(617000),
			want: []*window.IntervalWindow{
				{Start: time.UnixMilli(605000), End: time.UnixMilli(625000)},
				{Start: time.UnixMilli(617000), End: time.UnixMilli(637000)},
			},
		},
		{
			name:      "slide_larger_than_length_gap",
			length:    10 * time.Second,
			slide:     20 * time.Second,
			eventTime: time.UnixMilli(595000),
			want:      []*window.IntervalWindow{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSliding(tt.length, tt.slide, WithOffset(tt.offset))
			assert.NoError(t, err)
			got := s.AssignWindows(tt.eventTime)
			assert.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.True(t, got[i].Equals(tt.want[i]), "index %d: got %v, want %v", i, got[i], tt.want[i])
				assert.True(t, got[i].Contains(tt.eventTime))
			}
		})
	}
}

// a single record falls into length/slide overlapping windows
func TestSliding_FanOut(t *testing.T) {
	s, err := NewSliding(30*time.Second, 15*time.Second)
	assert.NoError(t, err)

	got := s.AssignWindows(time.UnixMilli(1000000))
	assert.Len(t, got, 2)

	// windows come out ascending by start time
	assert.True(t, got[0].Before(got[1]))
}

func TestSliding_InvalidConfig(t *testing.T) {
	_, err := NewSliding(0, 10*time.Second)
	assert.ErrorIs(t, err, window.ErrInvalidLength)

	_, err = NewSliding(10*time.Second, 0)
	assert.ErrorIs(t, err, window.ErrInvalidSlide)

	// both misconfigured, both reported
	_, err = NewSliding(0, 0)
	assert.ErrorIs(t, err, window.ErrInvalidLength)
	assert.ErrorIs(t, err, window.ErrInvalidSlide)
}

func TestSliding_Strategy(t *testing.T) {
	s, err := NewSliding(time.Minute, 30*time.Second)
	assert.NoError(t, err)
	assert.Equal(t, window.Sliding, s.Strategy())
	assert.Equal(t, "Sliding", s.Strategy().String())
}
