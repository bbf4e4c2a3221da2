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

// Package window defines the interval window value type and the assigner
// contract shared by the windowing strategies.
package window

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidLength is returned when an assigner is constructed with a
	// non-positive window length.
	ErrInvalidLength = errors.New("window length must be positive")
	// ErrInvalidSlide is returned when a sliding assigner is constructed
	// with a non-positive slide.
	ErrInvalidSlide = errors.New("window slide must be positive")
)

// IntervalWindow is a half-open interval [Start, End) on the event-time
// axis. Windows are compared by value; two windows are the same window
// iff both boundaries match.
type IntervalWindow struct {
	// Start is the start time of the window (inclusive).
	Start time.Time
	// End is the end time of the window (exclusive).
	End time.Time
}

// Contains returns true if the given event time falls within the window.
// Assignment follows a left inclusive and right exclusive principle, so
// an element exactly on the boundary belongs to the window starting at
// the boundary, not the one ending there.
func (iw *IntervalWindow) Contains(t time.Time) bool {
	return !iw.Start.After(t) && iw.End.After(t)
}

// Equals returns true if both boundaries match.
func (iw *IntervalWindow) Equals(other *IntervalWindow) bool {
	return iw.Start.Equal(other.Start) && iw.End.Equal(other.End)
}

// Before orders windows by start time, then end time. Used wherever a
// deterministic iteration order over windows is required.
func (iw *IntervalWindow) Before(other *IntervalWindow) bool {
	if !iw.Start.Equal(other.Start) {
		return iw.Start.Before(other.Start)
	}
	return iw.End.Before(other.End)
}

func (iw *IntervalWindow) String() string {
	return fmt.Sprintf("[%v-%v)", iw.Start.UnixMilli(), iw.End.UnixMilli())
}

// Assigner assigns an event time to the set of interval windows it belongs
// to. Assignment is a pure function of the timestamp; assigners carry
// configuration only and no per-record state, so out-of-order arrival has
// no effect on the produced windows.
type Assigner interface {
	// AssignWindows returns the windows containing the given event time,
	// ordered ascending by start time. Every returned window contains the
	// timestamp; windows the element does not belong to are never produced.
	AssignWindows(eventTime time.Time) []*IntervalWindow
	// Strategy returns the windowing strategy of the assigner.
	Strategy() Strategy
}

// Strategy represents the windowing strategy.
type Strategy int

const (
	Fixed Strategy = iota
	Sliding
)

func (s Strategy) String() string {
	switch s {
	case Fixed:
		return "Fixed"
	case Sliding:
		return "Sliding"
	default:
		return "Unknown"
	}
}
