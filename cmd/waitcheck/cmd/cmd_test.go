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
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/facebook/waitcheck/clock"
	"github.com/facebook/waitcheck/deadline"
	"github.com/facebook/waitcheck/harness"
	"github.com/facebook/waitcheck/waiter"
)

// spuriousWaiter returns right away as if signalled
type spuriousWaiter struct{}

func (spuriousWaiter) WaitUntil(deadline.Timestamp) (waiter.Outcome, error) {
	return waiter.Woken, waiter.ErrSpuriousWake
}

func withWaiterFactory(t *testing.T, f harness.WaiterFactory) {
	saved := waiterFactory
	waiterFactory = f
	t.Cleanup(func() { waiterFactory = saved })
}

func spuriousFactory() (harness.Waiter, error) {
	return spuriousWaiter{}, nil
}

func init() {
	color.NoColor = true
}

func newTestCmd() *cobra.Command {
	c := &cobra.Command{Use: "test"}
	addTimeoutsFlags(c)
	return c
}

func TestPrepareConfigDefaults(t *testing.T) {
	cfg, err := prepareConfig(newTestCmd(), "")
	require.NoError(t, err)
	require.Equal(t, harness.DefaultConfig(), cfg)
}

func TestPrepareConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "waitcheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte("trials: 3\nbaseoffset: 15ms\ndeadlinesource: realtime\n"), 0644))

	c := newTestCmd()
	require.NoError(t, c.Flags().Set("trials", "7"))
	cfg, err := prepareConfig(c, path)
	require.NoError(t, err)
	require.Equal(t, 7, cfg.Trials)
	require.Equal(t, 15*time.Millisecond, cfg.BaseOffset)
	require.Equal(t, deadline.SourceRealtime, cfg.DeadlineSource)
	require.Equal(t, clock.DefaultSource, cfg.MonotonicSource)
}

func TestPrepareConfigInvalid(t *testing.T) {
	c := newTestCmd()
	require.NoError(t, c.Flags().Set("trials", "0"))
	_, err := prepareConfig(c, "")
	require.EqualError(t, err, "bad config: 'trials' must be >0")

	_, err = prepareConfig(newTestCmd(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestTimeoutsRun(t *testing.T) {
	cfg := harness.DefaultConfig()
	cfg.Trials = 3
	cfg.BaseOffset = 10 * time.Millisecond
	textfile := filepath.Join(t.TempDir(), "waitcheck.prom")
	var out bytes.Buffer
	err := timeoutsRun(cfg, &out, timeoutsOutput{table: true, diag: true, textfile: textfile})
	require.NoError(t, err)

	lines := strings.Split(out.String(), "\n")
	require.True(t, strings.HasPrefix(lines[0], "wait result ["))
	require.Contains(t, lines[0], "timeout(ms) [expected/actual]: 10/")
	require.Contains(t, lines[2], "timeout(ms) [expected/actual]: 30/")
	require.Contains(t, out.String(), "trials: 3, timed out: 3")
	require.Contains(t, out.String(), "trial 3: ")

	data, err := os.ReadFile(textfile)
	require.NoError(t, err)
	require.Contains(t, string(data), `waitcheck_outcomes_total{outcome="TIMED_OUT"} 3`)
}

func TestTimeoutsRunStrict(t *testing.T) {
	cfg := harness.DefaultConfig()
	cfg.Trials = 1
	cfg.BaseOffset = 5 * time.Millisecond
	// nothing can be this accurate
	cfg.Criterion = "error < -1000"
	var out bytes.Buffer
	require.NoError(t, timeoutsRun(cfg, &out, timeoutsOutput{}))
	err := timeoutsRun(cfg, &out, timeoutsOutput{strict: true})
	require.ErrorContains(t, err, "1 of 1 trials didn't meet criterion")
}

func TestTimeoutsRunUnknownSource(t *testing.T) {
	cfg := harness.DefaultConfig()
	cfg.MonotonicSource = "sundial"
	var out bytes.Buffer
	require.Error(t, timeoutsRun(cfg, &out, timeoutsOutput{}))
	require.Empty(t, out.String())
}

func TestClocksRun(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, clocksRun(&out))
	s := out.String()
	require.Contains(t, s, "frequency(Hz)")
	for _, name := range clock.Sources() {
		require.Contains(t, s, name)
	}
	for _, name := range deadline.Names() {
		require.Contains(t, s, name)
	}
}

func TestRootCommands(t *testing.T) {
	names := []string{}
	for _, c := range RootCmd.Commands() {
		names = append(names, c.Name())
	}
	require.Contains(t, names, "timeouts")
	require.Contains(t, names, "clocks")
	require.NotNil(t, RootCmd.Flags().Lookup("trials"))
	require.NotNil(t, RootCmd.PersistentFlags().Lookup("verbose"))
}

func TestExecuteStatus(t *testing.T) {
	args := []string{"--trials", "2", "--baseoffset", "5ms", "--monotonic", "runtime"}
	RootCmd.SetArgs(args)
	t.Cleanup(func() { RootCmd.SetArgs(nil) })

	var out bytes.Buffer
	require.Equal(t, 0, execute(&out))
	require.Empty(t, out.String())

	withWaiterFactory(t, spuriousFactory)
	require.Equal(t, 1, execute(&out))
	require.Contains(t, out.String(), "trial 1: wait result [0]")
	require.Contains(t, out.String(), waiter.ErrSpuriousWake.Error())

	withWaiterFactory(t, func() (harness.Waiter, error) { return nil, errors.New("no condition variables here") })
	out.Reset()
	require.Equal(t, 1, execute(&out))
	require.Contains(t, out.String(), "no condition variables here")
}

func TestExecuteExitStatus(t *testing.T) {
	if os.Getenv("WAITCHECK_EXECUTE") == "spurious" {
		waiterFactory = spuriousFactory
		RootCmd.SetArgs([]string{"--trials", "2", "--baseoffset", "5ms"})
		Execute()
		return
	}
	c := exec.Command(os.Args[0], "-test.run=^TestExecuteExitStatus$")
	c.Env = append(os.Environ(), "WAITCHECK_EXECUTE=spurious")
	out, err := c.CombinedOutput()
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr, string(out))
	require.Equal(t, 1, exitErr.ExitCode())
	require.Contains(t, string(out), waiter.ErrSpuriousWake.Error())
}
