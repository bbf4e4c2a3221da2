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

package reduce

import (
	"fmt"

	"github.com/tempora-io/tempora/pkg/aggregate"
	"github.com/tempora-io/tempora/pkg/emit"
)

// Options for the bounded pass.
type Options struct {
	// readBatchSize is the maximum number of records pulled from the
	// source per read.
	readBatchSize int64
	aggOpts       []aggregate.Option
	emitOpts      []emit.Option
}

// Option sets an option on the pass.
type Option func(*Options) error

// DefaultOptions returns the defaults.
func DefaultOptions() *Options {
	return &Options{
		readBatchSize: 100,
	}
}

// WithReadBatchSize sets the read batch size.
func WithReadBatchSize(n int64) Option {
	return func(o *Options) error {
		if n < 1 {
			return fmt.Errorf("invalid read batch size %d", n)
		}
		o.readBatchSize = n
		return nil
	}
}

// WithCombineFn sets the aggregator combine function.
func WithCombineFn(fn aggregate.CombineFn) Option {
	return func(o *Options) error {
		o.aggOpts = append(o.aggOpts, aggregate.WithCombineFn(fn))
		return nil
	}
}

// WithKeyExtractor sets the aggregator key extractor.
func WithKeyExtractor(fn aggregate.KeyExtractorFn) Option {
	return func(o *Options) error {
		o.aggOpts = append(o.aggOpts, aggregate.WithKeyExtractor(fn))
		return nil
	}
}

// WithDrainWorkers sets the number of concurrent sink writers used
// during the drain phase.
func WithDrainWorkers(n int) Option {
	return func(o *Options) error {
		o.emitOpts = append(o.emitOpts, emit.WithWorkers(n))
		return nil
	}
}
