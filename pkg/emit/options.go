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

package emit

import "fmt"

type options struct {
	workers int
}

// Option sets an option on the emitter.
type Option func(*options) error

func defaultOptions() *options {
	return &options{
		workers: 1,
	}
}

// WithWorkers sets the number of concurrent sink writers used during
// drain. The default of 1 keeps the drain serial.
func WithWorkers(n int) Option {
	return func(o *options) error {
		if n < 1 {
			return fmt.Errorf("invalid worker count %d", n)
		}
		o.workers = n
		return nil
	}
}
