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

// Package reduce orchestrates the bounded windowed aggregation pass: it
// reads the source to exhaustion, accumulates every record through the
// keyed window aggregator, closes the book and drains the completed
// windows to the sink. Completeness for the bounded case is simply source
// exhaustion; there is no watermark.
package reduce

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tempora-io/tempora/pkg/aggregate"
	"github.com/tempora-io/tempora/pkg/emit"
	"github.com/tempora-io/tempora/pkg/shared/logging"
	"github.com/tempora-io/tempora/pkg/stream"
	"github.com/tempora-io/tempora/pkg/window"
)

// DataForward reads records from the source and forwards the windowed
// aggregates to the sink.
type DataForward struct {
	pipelineName string
	source       stream.Source
	aggregator   *aggregate.Aggregator
	emitter      *emit.Emitter
	opts         *Options
	log          *zap.SugaredLogger
}

// NewDataForward wires a source, an assigner and a sink into a runnable
// bounded pass.
func NewDataForward(ctx context.Context,
	pipelineName string,
	source stream.Source,
	sink stream.Sink,
	assigner window.Assigner, opts ...Option) (*DataForward, error) {

	options := DefaultOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	aggregator, err := aggregate.NewAggregator(ctx, pipelineName, assigner, options.aggOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create aggregator: %w", err)
	}
	emitter, err := emit.NewEmitter(ctx, pipelineName, aggregator, sink, options.emitOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create emitter: %w", err)
	}

	return &DataForward{
		pipelineName: pipelineName,
		source:       source,
		aggregator:   aggregator,
		emitter:      emitter,
		opts:         options,
		log:          logging.FromContext(ctx),
	}, nil
}

// Run executes the pass. Any failure aborts the whole run; a
// misconfigured or failing pipeline must not silently produce wrong
// windows. Out-of-order event times need no special handling since
// assignment depends only on the timestamp value.
func (d *DataForward) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		batch, err := d.source.Read(ctx, d.opts.readBatchSize)
		if err != nil {
			return fmt.Errorf("failed to read from source: %w", err)
		}
		if len(batch) == 0 {
			break
		}
		for _, r := range batch {
			if err := d.aggregator.Accumulate(r); err != nil {
				return fmt.Errorf("failed to accumulate record: %w", err)
			}
		}
	}

	d.aggregator.CloseOfBook()

	if err := d.emitter.Drain(ctx); err != nil {
		return fmt.Errorf("failed to drain windows: %w", err)
	}
	d.log.Infow("Completed bounded pass", zap.String("pipeline", d.pipelineName))
	return nil
}
