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

package aggregate

import "github.com/tempora-io/tempora/pkg/stream"

type options struct {
	combine    CombineFn
	extractKey KeyExtractorFn
}

// Option sets an option on the aggregator.
type Option func(*options) error

func defaultOptions() *options {
	return &options{
		combine: Count,
		extractKey: func(r *stream.Record) (string, error) {
			return r.Key, nil
		},
	}
}

// WithCombineFn replaces the default count combine function.
func WithCombineFn(fn CombineFn) Option {
	return func(o *options) error {
		o.combine = fn
		return nil
	}
}

// WithKeyExtractor replaces the default key extractor, which uses the
// record key as-is.
func WithKeyExtractor(fn KeyExtractorFn) Option {
	return func(o *options) error {
		o.extractKey = fn
		return nil
	}
}
