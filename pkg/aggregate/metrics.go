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

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tempora-io/tempora/pkg/metrics"
)

// activeBucketCount is used to indicate the number of live (window, key) buckets
var activeBucketCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Subsystem: "aggregate",
	Name:      "active_bucket_count",
	Help:      "Total number of active (window, key) buckets",
}, []string{metrics.LabelPipeline, metrics.LabelStrategy})

// recordsAccumulated counts the records folded into the aggregator
var recordsAccumulated = promauto.NewCounterVec(prometheus.CounterOpts{
	Subsystem: "aggregate",
	Name:      "records_accumulated_total",
	Help:      "Total number of records accumulated",
}, []string{metrics.LabelPipeline, metrics.LabelStrategy})

// windowFanout counts bucket updates, i.e. records times the windows each was assigned to
var windowFanout = promauto.NewCounterVec(prometheus.CounterOpts{
	Subsystem: "aggregate",
	Name:      "window_fanout_total",
	Help:      "Total number of (record, window) assignments",
}, []string{metrics.LabelPipeline, metrics.LabelStrategy})
