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

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tempora-io/tempora/pkg/metrics"
)

// resultsEmitted counts the (window, key) results forwarded to the sink
var resultsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
	Subsystem: "emit",
	Name:      "results_emitted_total",
	Help:      "Total number of results forwarded to the sink",
}, []string{metrics.LabelPipeline})

// drainDuration observes the time taken by a drain pass
var drainDuration = promauto.NewSummaryVec(prometheus.SummaryOpts{
	Subsystem: "emit",
	Name:      "drain_duration_us",
	Help:      "Drain duration in microseconds",
}, []string{metrics.LabelPipeline})
