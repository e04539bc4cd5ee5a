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
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/exp/constraints"
)

// LineReporter prints one line per trial as soon as it completes
type LineReporter struct {
	W io.Writer
}

// Report prints wait outcome code, requested and observed time in milliseconds
func (l *LineReporter) Report(r TrialResult) {
	fmt.Fprintf(l.W, "wait result [%d]: timeout(ms) [expected/actual]: %d/%d\n",
		r.Outcome.Code(), r.Requested.Milliseconds(), r.Observed.Milliseconds())
}

// Status is the verdict on a single trial
type Status int

// possible verdicts
const (
	OK Status = iota
	WARN
	FAIL
)

func (s Status) String() string {
	switch s {
	case OK:
		return color.GreenString("[ OK ]")
	case WARN:
		return color.YellowString("[WARN]")
	}
	return color.RedString("[FAIL]")
}

func fmtThreshold(warnThreshold any) string {
	return color.BlueString("%v", warnThreshold)
}

// generic function to check value against warning threshold
func checkAgainstThreshold[T constraints.Ordered](name string, value, warnThreshold T, explanation string) (Status, string) {
	msgTemplate := "%s is %s, we expect it to be within %s%s"
	if value > warnThreshold {
		return WARN, fmt.Sprintf(msgTemplate, name, color.YellowString("%v", value), fmtThreshold(warnThreshold), ". "+explanation)
	}
	return OK, fmt.Sprintf(msgTemplate, name, color.GreenString("%v", value), fmtThreshold(warnThreshold), "")
}

// Diagnoser judges trials against an accuracy criterion and a lateness threshold
type Diagnoser struct {
	criterion *Criterion
	lateness  time.Duration
}

// NewDiagnoser compiles criterion
func NewDiagnoser(criterion string, lateness time.Duration) (*Diagnoser, error) {
	c, err := NewCriterion(criterion)
	if err != nil {
		return nil, err
	}
	return &Diagnoser{criterion: c, lateness: lateness}, nil
}

// Diagnose returns verdict on r with human readable explanation
func (d *Diagnoser) Diagnose(r TrialResult) (Status, string, error) {
	if !r.TimedOut() {
		return FAIL, fmt.Sprintf("wait resolved as %s, nothing should ever wake it", color.RedString("%v", r.Outcome)), nil
	}
	accurate, err := d.criterion.Accurate(r)
	if err != nil {
		return FAIL, "", err
	}
	if !accurate {
		return FAIL, fmt.Sprintf(
			"observed %s for requested %v, expected %s",
			color.RedString("%v", r.Observed),
			r.Requested,
			fmtThreshold(d.criterion),
		), nil
	}
	st, msg := checkAgainstThreshold("Lateness", r.Error(), d.lateness, "Scheduler woke us up late")
	return st, msg, nil
}

// NewTable returns a table writer keeping header cells exactly as given
func NewTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithHeaderAutoFormat(tw.Off))
}

// PrintTable renders results with their verdicts
func PrintTable(w io.Writer, results []TrialResult, d *Diagnoser) error {
	table := NewTable(w)
	table.Header([]string{"trial", "result", "requested(ms)", "observed(ms)", "error(ms)", "status"})
	for _, r := range results {
		st, _, err := d.Diagnose(r)
		if err != nil {
			return err
		}
		row := []string{
			fmt.Sprintf("%d", r.Index),
			fmt.Sprintf("%d %s", r.Outcome.Code(), r.Outcome),
			fmt.Sprintf("%d", r.Requested.Milliseconds()),
			fmt.Sprintf("%.3f", float64(r.Observed.Microseconds())/1000),
			fmt.Sprintf("%+.3f", float64(r.Error().Microseconds())/1000),
			st.String(),
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

// PrintDiagnosis prints verdict with explanation for every trial
func PrintDiagnosis(w io.Writer, results []TrialResult, d *Diagnoser) error {
	for _, r := range results {
		st, msg, err := d.Diagnose(r)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s trial %d: %s\n", st, r.Index, msg)
	}
	return nil
}

// PrintSummary prints aggregated sweep statistics
func PrintSummary(w io.Writer, s *Summary) {
	fmt.Fprintf(w, "trials: %d, timed out: %d, inaccurate: %d, late: %d\n", s.Trials, s.TimedOut, s.Inaccurate, s.Late)
	if s.Trials == 0 {
		return
	}
	fmt.Fprintf(w, "error: mean %v, stddev %v, min %v, max %v\n", s.MeanError, s.StddevError, s.MinError, s.MaxError)
	fmt.Fprintf(w, "context switches: voluntary %d, involuntary %d; cpu: user %v, system %v\n",
		s.Process.VoluntaryCtxSwitches, s.Process.InvoluntaryCtxSwitches, s.Process.UserCPU, s.Process.SystemCPU)
}
