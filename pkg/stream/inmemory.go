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

package stream

import (
	"context"
	"sync"
)

// InMemorySource is a bounded source backed by a slice of records.
type InMemorySource struct {
	records []*Record
	offset  int
	lock    sync.Mutex
}

var _ Source = (*InMemorySource)(nil)

// NewInMemorySource returns a source that serves the given records in
// order and then reports exhaustion.
func NewInMemorySource(records []*Record) *InMemorySource {
	return &InMemorySource{
		records: records,
	}
}

// Read returns the next batch of up to count records. An empty slice
// means the source is exhausted.
func (s *InMemorySource) Read(ctx context.Context, count int64) ([]*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	remaining := len(s.records) - s.offset
	if remaining == 0 {
		return nil, nil
	}
	n := int(count)
	if n > remaining {
		n = remaining
	}
	batch := s.records[s.offset : s.offset+n]
	s.offset += n
	return batch, nil
}

// InMemorySink captures every result written to it. Used by tests and as
// a staging sink for the CLI printer.
type InMemorySink struct {
	results []*Result
	lock    sync.Mutex
}

var _ Sink = (*InMemorySink)(nil)

// NewInMemorySink returns an empty capturing sink.
func NewInMemorySink() *InMemorySink {
	return &InMemorySink{
		results: make([]*Result, 0),
	}
}

// Write appends the results to the sink.
func (s *InMemorySink) Write(ctx context.Context, results []*Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	s.results = append(s.results, results...)
	return nil
}

// Results returns a copy of everything written so far.
func (s *InMemorySink) Results() []*Result {
	s.lock.Lock()
	defer s.lock.Unlock()
	out := make([]*Result, len(s.results))
	copy(out, s.results)
	return out
}
