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

// Package stream defines the record type flowing into the engine and the
// source and sink interfaces it meets the outside world through. The
// engine never looks at arrival order or wall clock time; event time on
// the record is the only clock it knows.
package stream

import (
	"context"
	"fmt"
	"time"

	"github.com/tempora-io/tempora/pkg/window"
)

// Record is a single keyed, event-timestamped element. The event time is
// assigned upstream before the record enters the engine and may differ
// arbitrarily from arrival time.
type Record struct {
	// Key is the grouping key of the record.
	Key string
	// Payload is the opaque record body. The engine never interprets it;
	// a user supplied combine function may.
	Payload []byte
	// EventTime is when the real-world event occurred.
	EventTime time.Time
}

// Result is one materialized aggregate for a (window, key) pair.
type Result struct {
	// Window is the interval window the aggregate belongs to.
	Window *window.IntervalWindow
	// Key is the grouping key.
	Key string
	// Value is the aggregated value.
	Value int64
	// Timestamp is the output timestamp of the result, one millisecond
	// before the window end.
	Timestamp time.Time
}

func (r *Result) String() string {
	return fmt.Sprintf("key %s count %d [window timestamp %d]", r.Key, r.Value, r.Timestamp.UnixMilli())
}

// Source supplies batches of records. Read returns up to count records
// and an empty slice once the bounded stream is exhausted.
type Source interface {
	Read(ctx context.Context, count int64) ([]*Record, error)
}

// Sink consumes materialized results. Formatting and storage are entirely
// the sink's concern.
type Sink interface {
	Write(ctx context.Context, results []*Result) error
}
