// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package openstack

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	collectionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ohai_openstack_collection_duration_seconds",
			Help:    "Time taken to collect OpenStack instance attributes",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60},
		},
	)

	collectionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ohai_openstack_collection_total",
			Help: "Total number of OpenStack collection runs",
		},
		[]string{"status"}, // done, not-applicable or error
	)

	degradedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ohai_openstack_degraded_total",
			Help: "Total number of collection stages skipped after a failure",
		},
		[]string{"stage"},
	)

	attributeCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ohai_openstack_attributes",
			Help: "Number of attributes in the last collected result",
		},
	)
)

func observe(res *Result, err error, elapsed time.Duration) {
	collectionDuration.Observe(elapsed.Seconds())
	if err != nil {
		collectionTotal.WithLabelValues("error").Inc()
		return
	}
	collectionTotal.WithLabelValues(res.State.String()).Inc()
	attributeCount.Set(float64(res.Attributes.Len()))
}
