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

package harness

import (
	"fmt"
	"math"
	"time"

	"github.com/eclesh/welford"
)

// Summary aggregates results of a sweep
type Summary struct {
	Trials      int
	TimedOut    int
	Inaccurate  int
	Late        int
	MeanError   time.Duration
	StddevError time.Duration
	MinError    time.Duration
	MaxError    time.Duration
	Process     ProcessStats
}

// Summarize computes error statistics of results and judges every trial with d
func Summarize(results []TrialResult, d *Diagnoser) (*Summary, error) {
	s := &Summary{Trials: len(results)}
	if len(results) == 0 {
		return s, nil
	}
	w := welford.New()
	s.MinError = time.Duration(math.MaxInt64)
	s.MaxError = time.Duration(math.MinInt64)
	for _, r := range results {
		if r.TimedOut() {
			s.TimedOut++
		}
		e := r.Error()
		w.Add(float64(e))
		s.MinError = min(s.MinError, e)
		s.MaxError = max(s.MaxError, e)

		st, _, err := d.Diagnose(r)
		if err != nil {
			return nil, fmt.Errorf("diagnosing trial %d: %w", r.Index, err)
		}
		switch st {
		case FAIL:
			s.Inaccurate++
		case WARN:
			s.Late++
		}
	}
	s.MeanError = time.Duration(w.Mean())
	s.StddevError = time.Duration(w.Stddev())
	return s, nil
}
