/*
Copyright (c) Facebook, Inc. and its affiliates.

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

/*
Package stats exports sweep measurements as Prometheus metrics.
*/
package stats

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/facebook/waitcheck/harness"
)

const namespace = "waitcheck"

// Stats holds metrics of a sweep
type Stats struct {
	registry  *prometheus.Registry
	requested *prometheus.GaugeVec
	observed  *prometheus.GaugeVec
	errors    prometheus.Histogram
	outcomes  *prometheus.CounterVec
	last      prometheus.Gauge
}

// New creates Stats with all metrics registered
func New() *Stats {
	s := &Stats{
		registry: prometheus.NewRegistry(),
		requested: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "requested_seconds",
			Help:      "Timeout requested by the trial",
		}, []string{"trial"}),
		observed: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "observed_seconds",
			Help:      "Time spent blocked by the trial, measured on the monotonic clock",
		}, []string{"trial"}),
		errors: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "error_seconds",
			Help:      "Observed minus requested wait",
			Buckets:   []float64{-0.01, -0.001, 0, 0.0001, 0.0005, 0.001, 0.002, 0.005, 0.01, 0.05, 0.1},
		}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outcomes_total",
			Help:      "Waits by how they resolved",
		}, []string{"outcome"}),
		last: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_trial",
			Help:      "Index of the last completed trial",
		}),
	}
	s.registry.MustRegister(s.requested, s.observed, s.errors, s.outcomes, s.last)
	return s
}

// Report records a single trial
func (s *Stats) Report(r harness.TrialResult) {
	trial := strconv.Itoa(r.Index)
	s.requested.WithLabelValues(trial).Set(r.Requested.Seconds())
	s.observed.WithLabelValues(trial).Set(r.Observed.Seconds())
	s.errors.Observe(r.Error().Seconds())
	s.outcomes.WithLabelValues(r.Outcome.String()).Inc()
	s.last.Set(float64(r.Index))
}

// Registry returns the registry holding all metrics
func (s *Stats) Registry() *prometheus.Registry {
	return s.registry
}

// Handler serves metrics in Prometheus exposition format
func (s *Stats) Handler() http.Handler {
	return promhttp.HandlerFor(
		s.registry,
		promhttp.HandlerOpts{
			// Opt into OpenMetrics to support exemplars.
			EnableOpenMetrics: true,
		},
	)
}

// Start serves /metrics on port in the background
func (s *Stats) Start(port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", s.Handler())
	addr := fmt.Sprintf(":%d", port)
	log.Infof("serving metrics on %s", addr)
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Errorf("metrics server: %v", err)
		}
	}()
}

// WriteTextfile writes all metrics to path for the node exporter textfile collector
func (s *Stats) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, s.registry)
}
