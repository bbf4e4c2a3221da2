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

import "time"

// NormalizeOffset reduces an arbitrary, possibly negative offset into
// [0, size). Shifting a window lattice by more than one full size is the
// same as shifting by the remainder.
func NormalizeOffset(offset, size time.Duration) time.Duration {
	ms := floorMod(offset.Milliseconds(), size.Milliseconds())
	return time.Duration(ms) * time.Millisecond
}

// StartWithOffset returns the start of the latest window on the
// size-spaced lattice shifted by offset that begins at or before t.
// The engine reasons in milliseconds, so the lattice is computed on
// UnixMilli values.
func StartWithOffset(t time.Time, offset, size time.Duration) time.Time {
	sizeMs := size.Milliseconds()
	offMs := floorMod(offset.Milliseconds(), sizeMs)
	start := t.UnixMilli() - floorMod(t.UnixMilli()-offMs, sizeMs)
	return time.UnixMilli(start)
}

// floorMod is the mathematical modulo, non-negative for any a when m > 0.
// Go's % operator takes the sign of the dividend, which would misplace
// windows for timestamps before the epoch.
func floorMod(a, m int64) int64 {
	return ((a % m) + m) % m
}
