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
	"time"

	"github.com/Knetic/govaluate"
)

// CriterionHelp describes the variables available to accuracy expressions
const CriterionHelp = `Accuracy criterion is a boolean expression evaluated for every trial with govaluate,
please check https://github.com/Knetic/govaluate/blob/master/MANUAL.md
supported variables (all in milliseconds):
  requested - timeout requested for the trial
  observed - elapsed time measured on the monotonic clock
  error - observed minus requested`

// Criterion decides whether a single trial was accurate enough
type Criterion struct {
	expr *govaluate.EvaluableExpression
	src  string
}

// NewCriterion compiles the expression and checks it evaluates to a boolean
func NewCriterion(expression string) (*Criterion, error) {
	if expression == "" {
		return nil, fmt.Errorf("empty expression")
	}
	expr, err := govaluate.NewEvaluableExpression(expression)
	if err != nil {
		return nil, err
	}
	c := &Criterion{expr: expr, src: expression}
	// catches unknown variables and non-boolean expressions before any trial runs
	if _, err := c.Accurate(TrialResult{Requested: time.Millisecond, Observed: time.Millisecond}); err != nil {
		return nil, err
	}
	return c, nil
}

// Accurate evaluates the criterion for r
func (c *Criterion) Accurate(r TrialResult) (bool, error) {
	params := map[string]interface{}{
		"requested": float64(r.Requested.Microseconds()) / 1000,
		"observed":  float64(r.Observed.Microseconds()) / 1000,
		"error":     float64(r.Error().Microseconds()) / 1000,
	}
	res, err := c.expr.Evaluate(params)
	if err != nil {
		return false, fmt.Errorf("evaluating %q: %w", c.src, err)
	}
	ok, isBool := res.(bool)
	if !isBool {
		return false, fmt.Errorf("criterion %q returned %v, not a boolean", c.src, res)
	}
	return ok, nil
}

func (c *Criterion) String() string {
	return c.src
}
