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

// Package sliding implements Sliding windows. Sliding windows are defined
// by a static window size and a fixed "slide", the duration by which the
// window boundaries advance. When the slide is smaller than the length the
// windows overlap and a single element belongs to several of them.
package sliding

import (
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/tempora-io/tempora/pkg/window"
)

// Sliding implements the sliding window assigner.
type Sliding struct {
	// Length is the duration of the window.
	Length time.Duration
	// Slide is the spacing between successive window starts.
	Slide time.Duration
	// Offset shifts the window start lattice. Normalized into [0, Slide).
	Offset time.Duration
}

var _ window.Assigner = (*Sliding)(nil)

// Option customizes the assigner.
type Option func(*Sliding)

// WithOffset shifts the window start lattice by the given duration.
// Offsets outside [0, Slide) are folded back into that range.
func WithOffset(offset time.Duration) Option {
	return func(s *Sliding) {
		s.Offset = offset
	}
}

// NewSliding returns a Sliding assigner. Length and slide must both be
// positive; a misconfigured assigner fails construction rather than
// producing wrong windows at assignment time. A slide larger than the
// length is legal and leaves gaps in the lattice.
func NewSliding(length time.Duration, slide time.Duration, opts ...Option) (*Sliding, error) {
	var errs error
	if length <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("sliding window of %v: %w", length, window.ErrInvalidLength))
	}
	if slide <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("sliding window slide of %v: %w", slide, window.ErrInvalidSlide))
	}
	if errs != nil {
		return nil, errs
	}
	s := &Sliding{
		Length: length,
		Slide:  slide,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Offset = window.NormalizeOffset(s.Offset, s.Slide)
	return s, nil
}

// AssignWindows returns the set of windows that contain the given event
// time, ordered ascending by start time.
func (s *Sliding) AssignWindows(eventTime time.Time) []*window.IntervalWindow {
	windows := make([]*window.IntervalWindow, 0)

	// start from the latest window on the slide lattice that begins at or
	// before the event time, then step the lattice backwards. Because the
	// boundaries overlap, an element exactly on a boundary is attributed
	// to the window starting there (left inclusive, right exclusive) and
	// not to the window ending there.
	startTime := window.StartWithOffset(eventTime, s.Offset, s.Slide)
	endTime := startTime.Add(s.Length)

	for !startTime.After(eventTime) && endTime.After(eventTime) {
		windows = append(windows, &window.IntervalWindow{Start: startTime, End: endTime})
		startTime = startTime.Add(-s.Slide)
		endTime = endTime.Add(-s.Slide)
	}

	// the walk produces latest-first; callers get ascending start order.
	for i, j := 0, len(windows)-1; i < j; i, j = i+1, j-1 {
		windows[i], windows[j] = windows[j], windows[i]
	}

	return windows
}

// Strategy returns the window strategy.
func (s *Sliding) Strategy() window.Strategy {
	return window.Sliding
}
