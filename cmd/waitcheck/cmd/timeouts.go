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

package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/facebook/waitcheck/clock"
	"github.com/facebook/waitcheck/harness"
	"github.com/facebook/waitcheck/stats"
)

// flags
var (
	timeoutsConfigFlag         string
	timeoutsTrialsFlag         int
	timeoutsBaseOffsetFlag     time.Duration
	timeoutsMonotonicFlag      string
	timeoutsDeadlineFlag       string
	timeoutsCriterionFlag      string
	timeoutsLatenessFlag       time.Duration
	timeoutsTableFlag          bool
	timeoutsDiagFlag           bool
	timeoutsStrictFlag         bool
	timeoutsTextfileFlag       string
	timeoutsMonitoringPortFlag int
)

// waiterFactory creates the waiter every sweep measures
var waiterFactory harness.WaiterFactory = harness.DefaultWaiterFactory

// output options not covered by harness.Config
type timeoutsOutput struct {
	table          bool
	diag           bool
	strict         bool
	textfile       string
	monitoringPort int
}

func init() {
	RootCmd.AddCommand(timeoutsCmd)
	addTimeoutsFlags(timeoutsCmd)
}

func addTimeoutsFlags(c *cobra.Command) {
	defaults := harness.DefaultConfig()
	f := c.Flags()
	f.StringVarP(&timeoutsConfigFlag, "config", "c", "", "path to the yaml config, flags override values from it")
	f.IntVarP(&timeoutsTrialsFlag, "trials", "n", defaults.Trials, "number of waits in the sweep")
	f.DurationVarP(&timeoutsBaseOffsetFlag, "baseoffset", "b", defaults.BaseOffset, "wait i requests baseoffset*i")
	f.StringVarP(&timeoutsMonotonicFlag, "monotonic", "m", defaults.MonotonicSource, fmt.Sprintf("clock to measure elapsed time with, one of %v", clock.Sources()))
	f.StringVarP(&timeoutsDeadlineFlag, "deadline", "d", defaults.DeadlineSource, "wall clock to build deadlines from, see 'waitcheck clocks'")
	f.StringVar(&timeoutsCriterionFlag, "criterion", defaults.Criterion, "accuracy expression evaluated for every trial")
	f.DurationVar(&timeoutsLatenessFlag, "lateness", defaults.Lateness, "warn about waits overshooting by more than this")
	f.BoolVarP(&timeoutsTableFlag, "table", "t", false, "print results as a table")
	f.BoolVar(&timeoutsDiagFlag, "diag", false, "print accuracy verdict for every trial")
	f.BoolVar(&timeoutsStrictFlag, "strict", false, "fail if any trial doesn't meet the criterion")
	f.StringVar(&timeoutsTextfileFlag, "textfile", "", "write prometheus metrics to this file after the sweep")
	f.IntVar(&timeoutsMonitoringPortFlag, "monitoringport", 0, "serve prometheus metrics on this port during the sweep, 0 disables")
}

// prepareConfig reads config file if given and applies flags explicitly set on c
func prepareConfig(c *cobra.Command, path string) (*harness.Config, error) {
	cfg := harness.DefaultConfig()
	if path != "" {
		var err error
		cfg, err = harness.ReadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("reading config from %q: %w", path, err)
		}
	}
	f := c.Flags()
	if f.Changed("trials") {
		cfg.Trials = timeoutsTrialsFlag
	}
	if f.Changed("baseoffset") {
		cfg.BaseOffset = timeoutsBaseOffsetFlag
	}
	if f.Changed("monotonic") {
		cfg.MonotonicSource = timeoutsMonotonicFlag
	}
	if f.Changed("deadline") {
		cfg.DeadlineSource = timeoutsDeadlineFlag
	}
	if f.Changed("criterion") {
		cfg.Criterion = timeoutsCriterionFlag
	}
	if f.Changed("lateness") {
		cfg.Lateness = timeoutsLatenessFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func timeoutsRun(cfg *harness.Config, w io.Writer, out timeoutsOutput) error {
	ticks, err := clock.NewSource(cfg.MonotonicSource)
	if err != nil {
		return err
	}
	d, err := harness.NewDiagnoser(cfg.Criterion, cfg.Lateness)
	if err != nil {
		return err
	}
	st := stats.New()
	h, err := harness.Setup(cfg, ticks, waiterFactory, &harness.LineReporter{W: w}, st)
	if err != nil {
		return err
	}
	if out.monitoringPort > 0 {
		st.Start(out.monitoringPort)
	}

	before, err := harness.CollectProcessStats()
	if err != nil {
		log.Warningf("collecting process stats: %v", err)
	}
	results, runErr := h.Run(cfg.Trials, cfg.BaseOffset)
	summary, err := harness.Summarize(results, d)
	if err != nil {
		return err
	}
	if after, err := harness.CollectProcessStats(); err == nil && before != nil {
		summary.Process = after.Sub(before)
	}

	if out.table {
		if err := harness.PrintTable(w, results, d); err != nil {
			return fmt.Errorf("rendering table: %w", err)
		}
	}
	if out.diag {
		if err := harness.PrintDiagnosis(w, results, d); err != nil {
			return err
		}
	}
	harness.PrintSummary(w, summary)
	if out.textfile != "" {
		if err := st.WriteTextfile(out.textfile); err != nil {
			return fmt.Errorf("writing metrics to %q: %w", out.textfile, err)
		}
	}
	if runErr != nil {
		return runErr
	}
	if out.strict && summary.Inaccurate > 0 {
		return fmt.Errorf("%d of %d trials didn't meet criterion %q", summary.Inaccurate, summary.Trials, cfg.Criterion)
	}
	return nil
}

func timeoutsCmdRun(c *cobra.Command) error {
	cfg, err := prepareConfig(c, timeoutsConfigFlag)
	if err != nil {
		return err
	}
	return timeoutsRun(cfg, os.Stdout, timeoutsOutput{
		table:          timeoutsTableFlag,
		diag:           timeoutsDiagFlag,
		strict:         timeoutsStrictFlag,
		textfile:       timeoutsTextfileFlag,
		monitoringPort: timeoutsMonitoringPortFlag,
	})
}

var timeoutsCmd = &cobra.Command{
	Use:   "timeouts",
	Short: "Measure timed wait accuracy over a sweep of increasing timeouts",
	Long:  "Wait on a condition nobody signals with timeouts of baseoffset, 2*baseoffset, ... and compare requested and observed wait.\n\n" + harness.CriterionHelp,
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		ConfigureVerbosity()
		return timeoutsCmdRun(c)
	},
}
