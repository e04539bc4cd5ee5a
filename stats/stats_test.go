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

package stats

import (
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/facebook/waitcheck/harness"
	"github.com/facebook/waitcheck/waiter"
)

func sampleResults() []harness.TrialResult {
	return []harness.TrialResult{
		{Index: 1, Requested: 90 * time.Millisecond, Observed: 91 * time.Millisecond, Outcome: waiter.TimedOut},
		{Index: 2, Requested: 180 * time.Millisecond, Observed: 180 * time.Millisecond, Outcome: waiter.TimedOut},
		{Index: 3, Requested: 270 * time.Millisecond, Observed: 5 * time.Millisecond, Outcome: waiter.Woken},
	}
}

func TestReport(t *testing.T) {
	s := New()
	for _, r := range sampleResults() {
		s.Report(r)
	}
	require.InDelta(t, 0.09, testutil.ToFloat64(s.requested.WithLabelValues("1")), 1e-9)
	require.InDelta(t, 0.091, testutil.ToFloat64(s.observed.WithLabelValues("1")), 1e-9)
	require.InDelta(t, 0.27, testutil.ToFloat64(s.requested.WithLabelValues("3")), 1e-9)
	require.Equal(t, float64(2), testutil.ToFloat64(s.outcomes.WithLabelValues("TIMED_OUT")))
	require.Equal(t, float64(1), testutil.ToFloat64(s.outcomes.WithLabelValues("WOKEN")))
	require.Equal(t, float64(3), testutil.ToFloat64(s.last))
	require.Equal(t, 1, testutil.CollectAndCount(s.errors))
}

func TestHandler(t *testing.T) {
	s := New()
	for _, r := range sampleResults() {
		s.Report(r)
	}
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()
	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `waitcheck_observed_seconds{trial="2"} 0.18`)
	require.Contains(t, string(body), "waitcheck_error_seconds_count 3")
}

func TestWriteTextfile(t *testing.T) {
	s := New()
	s.Report(sampleResults()[0])
	path := filepath.Join(t.TempDir(), "waitcheck.prom")
	require.NoError(t, s.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `waitcheck_outcomes_total{outcome="TIMED_OUT"} 1`)
	require.Contains(t, string(data), "waitcheck_last_trial 1")
}
