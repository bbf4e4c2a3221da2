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

// Package emit materializes completed aggregation buckets and forwards
// them to the sink. The emitter runs strictly after accumulation has been
// frozen; once the book is closed the buckets are read-only and mutually
// independent, so the forwarding of different partitions may safely run
// in parallel.
package emit

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tempora-io/tempora/pkg/aggregate"
	"github.com/tempora-io/tempora/pkg/metrics"
	"github.com/tempora-io/tempora/pkg/shared/logging"
	"github.com/tempora-io/tempora/pkg/stream"
)

// ErrNotClosed is returned when Drain is called while records may still
// be assigned. Emitting a window that can still take writes would lose
// fan-out updates.
var ErrNotClosed = errors.New("drain before close of book")

// Emitter drains completed (window, key) aggregates to a sink, tagging
// every result with an output timestamp one millisecond before the
// window end.
type Emitter struct {
	pipelineName string
	agg          *aggregate.Aggregator
	sink         stream.Sink
	workers      int
	log          *zap.SugaredLogger
}

// NewEmitter returns an emitter draining the given aggregator into the
// given sink.
func NewEmitter(ctx context.Context, pipelineName string, agg *aggregate.Aggregator, sink stream.Sink, opts ...Option) (*Emitter, error) {
	options := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			if err := opt(options); err != nil {
				return nil, err
			}
		}
	}

	return &Emitter{
		pipelineName: pipelineName,
		agg:          agg,
		sink:         sink,
		workers:      options.workers,
		log:          logging.FromContext(ctx),
	}, nil
}

// Drain takes every completed bucket out of the aggregator and writes one
// result per (window, key) pair to the sink. Each pair is emitted exactly
// once; draining again is a no-op. Empty windows were never materialized
// by the aggregator, so nothing is synthesized for them here.
func (e *Emitter) Drain(ctx context.Context) error {
	if !e.agg.IsClosed() {
		return ErrNotClosed
	}

	entries := e.agg.TakeCompleted()
	if len(entries) == 0 {
		return nil
	}

	results := make([]*stream.Result, len(entries))
	for i, entry := range entries {
		results[i] = &stream.Result{
			Window:    entry.Window,
			Key:       entry.Key,
			Value:     entry.Value,
			Timestamp: entry.Window.End.Add(-time.Millisecond),
		}
	}

	start := time.Now()
	defer func() {
		drainDuration.With(map[string]string{
			metrics.LabelPipeline: e.pipelineName,
		}).Observe(float64(time.Since(start).Microseconds()))
		resultsEmitted.With(map[string]string{
			metrics.LabelPipeline: e.pipelineName,
		}).Add(float64(len(results)))
	}()

	if e.workers <= 1 {
		return e.sink.Write(ctx, results)
	}
	return e.forwardParallel(ctx, results)
}

// forwardParallel splits the results into per-worker chunks and writes
// them concurrently. Chunks never share a (window, key) pair, so the
// writes are independent.
func (e *Emitter) forwardParallel(ctx context.Context, results []*stream.Result) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	chunkSize := (len(results) + e.workers - 1) / e.workers
	for begin := 0; begin < len(results); begin += chunkSize {
		end := begin + chunkSize
		if end > len(results) {
			end = len(results)
		}
		chunk := results[begin:end]
		g.Go(func() error {
			return e.sink.Write(gctx, chunk)
		})
	}

	if err := g.Wait(); err != nil {
		e.log.Errorw("Failed to forward results to sink", zap.Error(err))
		return err
	}
	return nil
}
