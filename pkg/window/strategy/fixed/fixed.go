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

// Package fixed implements Fixed windows. Fixed windows (sometimes called
// tumbling windows) are defined by a static window size, e.g. minutely
// windows or hourly windows. They partition the time axis without overlap,
// so every event time belongs to exactly one window.
package fixed

import (
	"fmt"
	"time"

	"github.com/tempora-io/tempora/pkg/window"
)

// Fixed implements the fixed window assigner.
type Fixed struct {
	// Length is the temporal length of the window.
	Length time.Duration
	// Offset shifts the window start lattice. Normalized into [0, Length).
	Offset time.Duration
}

var _ window.Assigner = (*Fixed)(nil)

// Option customizes the assigner.
type Option func(*Fixed)

// WithOffset shifts every window boundary by the given duration. Offsets
// outside [0, Length) are folded back into that range.
func WithOffset(offset time.Duration) Option {
	return func(f *Fixed) {
		f.Offset = offset
	}
}

// NewFixed returns a Fixed assigner. The length must be positive; a
// misconfigured assigner fails construction rather than producing wrong
// windows at assignment time.
func NewFixed(length time.Duration, opts ...Option) (*Fixed, error) {
	if length <= 0 {
		return nil, fmt.Errorf("fixed window of %v: %w", length, window.ErrInvalidLength)
	}
	f := &Fixed{
		Length: length,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.Offset = window.NormalizeOffset(f.Offset, f.Length)
	return f, nil
}

// AssignWindows assigns the single window for the given event time.
// Assignment follows a left inclusive and right exclusive principle, so
// an element exactly on a boundary falls into the window starting at the
// boundary, never the one ending there.
func (f *Fixed) AssignWindows(eventTime time.Time) []*window.IntervalWindow {
	start := window.StartWithOffset(eventTime, f.Offset, f.Length)
	return []*window.IntervalWindow{
		{Start: start, End: start.Add(f.Length)},
	}
}

// Strategy returns the window strategy.
func (f *Fixed) Strategy() window.Strategy {
	return window.Fixed
}
