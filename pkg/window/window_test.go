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

package window

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIntervalWindow_Contains(t *testing.T) {
	iw := &IntervalWindow{
		Start: time.UnixMilli(60000),
		End:   time.UnixMilli(120000),
	}

	tests := []struct {
		name      string
		eventTime time.Time
		want      bool
	}{
		{name: "before_start", eventTime: time.UnixMilli(59999), want: false},
		{name: "on_start", eventTime: time.UnixMilli(60000), want: true},
		{name: "inside", eventTime: time.UnixMilli(90000), want: true},
		{name: "last_milli", eventTime: time.UnixMilli(119999), want: true},
		{name: "on_end", eventTime: time.UnixMilli(120000), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, iw.Contains(tt.eventTime))
		})
	}
}

func TestIntervalWindow_EqualsAndBefore(t *testing.T) {
	a := &IntervalWindow{Start: time.UnixMilli(0), End: time.UnixMilli(100)}
	b := &IntervalWindow{Start: time.UnixMilli(0), End: time.UnixMilli(100)}
	c := &IntervalWindow{Start: time.UnixMilli(0), End: time.UnixMilli(200)}
	d := &IntervalWindow{Start: time.UnixMilli(50), End: time.UnixMilli(150)}

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))

	// ordered by start, then end
	assert.True(t, a.Before(c))
	assert.True(t, a.Before(d))
	assert.True(t, c.Before(d))
	assert.False(t, b.Before(a))
}

func TestNormalizeOffset(t *testing.T) {
	tests := []struct {
		name   string
		offset time.Duration
		size   time.Duration
		want   time.Duration
	}{
		{name: "zero", offset: 0, size: 30 * time.Second, want: 0},
		{name: "in_range", offset: 10001 * time.Millisecond, size: 30 * time.Second, want: 10001 * time.Millisecond},
		{name: "full_size", offset: 30 * time.Second, size: 30 * time.Second, want: 0},
		{name: "beyond_size", offset: 70 * time.Second, size: 30 * time.Second, want: 10 * time.Second},
		{name: "negative", offset: -10 * time.Second, size: 30 * time.Second, want: 20 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeOffset(tt.offset, tt.size))
		})
	}
}

func TestStartWithOffset(t *testing.T) {
	tests := []struct {
		name   string
		t      time.Time
		offset time.Duration
		size   time.Duration
		want   int64
	}{
		{name: "aligned", t: time.UnixMilli(1000000), offset: 0, size: 30 * time.Second, want: 990000},
		{name: "on_lattice", t: time.UnixMilli(990000), offset: 0, size: 30 * time.Second, want: 990000},
		{name: "with_offset", t: time.UnixMilli(1000000), offset: 10001 * time.Millisecond, size: 30 * time.Second, want: 970001},
		{name: "offset_on_lattice", t: time.UnixMilli(1030001), offset: 10001 * time.Millisecond, size: 30 * time.Second, want: 1030001},
		{name: "before_epoch", t: time.UnixMilli(-5000), offset: 0, size: 30 * time.Second, want: -30000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StartWithOffset(tt.t, tt.offset, tt.size)
			assert.Equal(t, tt.want, got.UnixMilli())
		})
	}
}
