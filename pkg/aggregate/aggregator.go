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

// Package aggregate implements the keyed window aggregator. For every
// record it fans the record out to the windows returned by the assigner
// and combines it into one bucket per (window, key) partition. Buckets
// are created lazily on the first matching record, so windows nothing
// fell into never hold state and never reach the output.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/tempora-io/tempora/pkg/metrics"
	"github.com/tempora-io/tempora/pkg/partition"
	"github.com/tempora-io/tempora/pkg/shared/logging"
	"github.com/tempora-io/tempora/pkg/stream"
	"github.com/tempora-io/tempora/pkg/window"
)

// ErrClosed is returned when a record is accumulated after close of book.
var ErrClosed = errors.New("accumulate after close of book")

// CombineFn folds a record into an accumulator. The zero accumulator is
// used when a bucket is created.
type CombineFn func(acc int64, r *stream.Record) int64

// Count is the default combine function.
func Count(acc int64, _ *stream.Record) int64 {
	return acc + 1
}

// KeyExtractorFn derives the grouping key from a record. Extraction
// failures indicate a caller-side error and are propagated unchanged.
type KeyExtractorFn func(r *stream.Record) (string, error)

// bucketState tracks the lifecycle of a bucket. A bucket is open while
// records may still be assigned, complete once the book is closed, and
// emitted exactly once before being discarded.
type bucketState int

const (
	stateOpen bucketState = iota
	stateComplete
	stateEmitted
)

// bucket is the accumulator for one (window, key) partition. Buckets are
// exclusively owned by the aggregator and never escape it; Take hands out
// immutable entries instead.
type bucket struct {
	id     partition.ID
	window *window.IntervalWindow
	value  int64
	state  bucketState
}

// Entry is an immutable snapshot of a completed bucket.
type Entry struct {
	Window *window.IntervalWindow
	Key    string
	Value  int64
}

// Aggregator accumulates per-partition aggregates for a bounded pass.
type Aggregator struct {
	pipelineName string
	assigner     window.Assigner
	combine      CombineFn
	extractKey   KeyExtractorFn
	buckets      map[string]*bucket
	windows      *window.SortedWindowList
	cob          bool
	log          *zap.SugaredLogger
	// guards buckets, windows and cob; accumulation may run sharded
	// across goroutines even though the reference pass is single threaded
	lock sync.RWMutex
}

// NewAggregator returns an aggregator for the given assigner.
func NewAggregator(ctx context.Context, pipelineName string, assigner window.Assigner, opts ...Option) (*Aggregator, error) {
	options := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			if err := opt(options); err != nil {
				return nil, err
			}
		}
	}

	a := &Aggregator{
		pipelineName: pipelineName,
		assigner:     assigner,
		combine:      options.combine,
		extractKey:   options.extractKey,
		buckets:      make(map[string]*bucket),
		windows:      window.NewSortedWindowList(),
		log:          logging.FromContext(ctx),
	}
	return a, nil
}

// Accumulate assigns the record to its windows and folds it into every
// matching (window, key) bucket. A single sliding-window record updates
// several buckets in one call; dropping that fan-out would skew every
// aggregate, so the windows returned by the assigner are applied in full.
func (a *Aggregator) Accumulate(r *stream.Record) error {
	key, err := a.extractKey(r)
	if err != nil {
		return fmt.Errorf("failed to extract key: %w", err)
	}

	windows := a.assigner.AssignWindows(r.EventTime)

	a.lock.Lock()
	defer a.lock.Unlock()

	if a.cob {
		return ErrClosed
	}

	for _, w := range windows {
		id := partition.ID{Start: w.Start, End: w.End, Key: key}
		b, ok := a.buckets[id.String()]
		if !ok {
			b = &bucket{id: id, window: w}
			a.buckets[id.String()] = b
			a.windows.InsertIfNotPresent(w)
			activeBucketCount.With(map[string]string{
				metrics.LabelPipeline: a.pipelineName,
				metrics.LabelStrategy: a.assigner.Strategy().String(),
			}).Inc()
		}
		b.value = a.combine(b.value, r)
	}

	recordsAccumulated.With(map[string]string{
		metrics.LabelPipeline: a.pipelineName,
		metrics.LabelStrategy: a.assigner.Strategy().String(),
	}).Inc()
	windowFanout.With(map[string]string{
		metrics.LabelPipeline: a.pipelineName,
		metrics.LabelStrategy: a.assigner.Strategy().String(),
	}).Add(float64(len(windows)))

	return nil
}

// CloseOfBook freezes accumulation. Every open bucket becomes complete;
// subsequent Accumulate calls fail with ErrClosed. Idempotent.
func (a *Aggregator) CloseOfBook() {
	a.lock.Lock()
	defer a.lock.Unlock()

	if a.cob {
		return
	}
	a.cob = true
	for _, b := range a.buckets {
		b.state = stateComplete
	}
	a.log.Infow("Closed book", zap.String("pipeline", a.pipelineName), zap.Int("buckets", len(a.buckets)))
}

// IsClosed returns true once the book has been closed.
func (a *Aggregator) IsClosed() bool {
	a.lock.RLock()
	defer a.lock.RUnlock()
	return a.cob
}

// Len returns the number of live buckets.
func (a *Aggregator) Len() int {
	a.lock.RLock()
	defer a.lock.RUnlock()
	return len(a.buckets)
}

// TakeCompleted removes and returns every completed bucket as an
// immutable entry, windows ascending by start then end and keys sorted
// within a window. Each partition is handed out exactly once; a second
// call returns nothing. Calling before close of book returns nothing as
// well, since open buckets may still take writes.
func (a *Aggregator) TakeCompleted() []*Entry {
	a.lock.Lock()
	defer a.lock.Unlock()

	entries := make([]*Entry, 0, len(a.buckets))
	if !a.cob {
		return entries
	}
	for _, w := range a.windows.Items() {
		keys := make([]string, 0)
		for _, b := range a.buckets {
			if b.state == stateComplete && b.window.Equals(w) {
				keys = append(keys, b.id.Key)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			id := partition.ID{Start: w.Start, End: w.End, Key: k}
			b := a.buckets[id.String()]
			b.state = stateEmitted
			entries = append(entries, &Entry{Window: b.window, Key: k, Value: b.value})
			// discard; the entry is the only surviving view of the bucket
			delete(a.buckets, id.String())
			activeBucketCount.With(map[string]string{
				metrics.LabelPipeline: a.pipelineName,
				metrics.LabelStrategy: a.assigner.Strategy().String(),
			}).Dec()
		}
		a.windows.Delete(w)
	}

	return entries
}
