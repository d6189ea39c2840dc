// Copyright 2025 Poiesic Systems
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


package metrics

import "github.com/prometheus/client_golang/prometheus"

// namespace prefixes every metric this package registers.
const namespace = "recruit"

// Search outcome label values for SearchesTotal.
const (
	SearchOK       = "ok"
	SearchDegraded = "degraded"
	SearchError    = "error"
)

var (
	// SearchesTotal counts search requests by mode (hybrid, semantic,
	// keyword) and outcome.
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Total number of candidate searches",
		},
		[]string{"mode", "outcome"},
	)

	// SearchDuration observes search latency by mode.
	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Candidate search latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"mode"},
	)

	// BuildDuration observes index build stage durations.
	BuildDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "index_build_duration_seconds",
			Help:      "Index build stage duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 60, 300, 600},
		},
		[]string{"stage"},
	)

	// BuildDocuments tracks the document count of the last completed
	// build per stage.
	BuildDocuments = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "index_build_documents",
			Help:      "Documents indexed by the last build per stage",
		},
		[]string{"stage"},
	)

	// ProfilesIngestedTotal counts candidate profiles parsed from the
	// resume tree.
	ProfilesIngestedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "profiles_ingested_total",
			Help:      "Total candidate profiles parsed and stored",
		},
	)
)

func init() {
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(BuildDuration)
	prometheus.MustRegister(BuildDocuments)
	prometheus.MustRegister(ProfilesIngestedTotal)
}
