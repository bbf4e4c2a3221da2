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
	"sort"
	"sync"
	"time"
)

// SortedWindowList is a thread safe list of interval windows sorted by
// start time, then end time, from lowest to highest. The Front of the
// list always holds the earliest window and the Back the latest.
type SortedWindowList struct {
	windows []*IntervalWindow
	lock    sync.RWMutex
}

// NewSortedWindowList returns an empty sorted window list.
func NewSortedWindowList() *SortedWindowList {
	return &SortedWindowList{
		windows: make([]*IntervalWindow, 0),
	}
}

// InsertIfNotPresent inserts a window into the list if an equal window is
// not already present and returns the window from the list along with a
// bool indicating whether it was already present.
func (s *SortedWindowList) InsertIfNotPresent(window *IntervalWindow) (*IntervalWindow, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	index := sort.Search(len(s.windows), func(i int) bool {
		return !s.windows[i].Before(window)
	})

	if index < len(s.windows) && s.windows[index].Equals(window) {
		return s.windows[index], true
	}

	s.windows = append(s.windows, nil)
	copy(s.windows[index+1:], s.windows[index:])
	s.windows[index] = window

	return window, false
}

// Delete removes an equal window from the list and reports whether a
// window was removed.
func (s *SortedWindowList) Delete(window *IntervalWindow) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	index := sort.Search(len(s.windows), func(i int) bool {
		return !s.windows[i].Before(window)
	})

	if index < len(s.windows) && s.windows[index].Equals(window) {
		s.windows = append(s.windows[:index], s.windows[index+1:]...)
		return true
	}
	return false
}

// RemoveWindows removes and returns the windows whose end time is not
// after the given time.
func (s *SortedWindowList) RemoveWindows(t time.Time) []*IntervalWindow {
	s.lock.Lock()
	defer s.lock.Unlock()

	removed := make([]*IntervalWindow, 0)
	kept := s.windows[:0]
	for _, w := range s.windows {
		if w.End.After(t) {
			kept = append(kept, w)
		} else {
			removed = append(removed, w)
		}
	}
	s.windows = kept

	return removed
}

// Len returns the number of windows in the list.
func (s *SortedWindowList) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.windows)
}

// Front returns the earliest window in the list, or nil if empty.
func (s *SortedWindowList) Front() *IntervalWindow {
	s.lock.RLock()
	defer s.lock.RUnlock()
	if len(s.windows) == 0 {
		return nil
	}
	return s.windows[0]
}

// Back returns the latest window in the list, or nil if empty.
func (s *SortedWindowList) Back() *IntervalWindow {
	s.lock.RLock()
	defer s.lock.RUnlock()
	if len(s.windows) == 0 {
		return nil
	}
	return s.windows[len(s.windows)-1]
}

// Items returns a copy of the window list in sorted order.
func (s *SortedWindowList) Items() []*IntervalWindow {
	s.lock.RLock()
	defer s.lock.RUnlock()

	items := make([]*IntervalWindow, len(s.windows))
	copy(items, s.windows)

	return items
}
