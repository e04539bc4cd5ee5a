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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/facebook/waitcheck/clock"
	"github.com/facebook/waitcheck/deadline"
	"github.com/facebook/waitcheck/harness"
)

func init() {
	RootCmd.AddCommand(clocksCmd)
}

func defaultMark(name, def string) string {
	if name == def {
		return "*"
	}
	return ""
}

func clocksRun(w io.Writer) error {
	table := harness.NewTable(w)
	table.Header([]string{"monotonic", "default", "frequency(Hz)", "resolution", "status"})
	for _, name := range clock.Sources() {
		row := []string{name, defaultMark(name, clock.DefaultSource), "", "", "ok"}
		src, err := clock.NewSource(name)
		if err != nil {
			return err
		}
		mono, err := clock.NewMonotonic(src)
		if err != nil {
			row[4] = err.Error()
		} else {
			row[2] = fmt.Sprintf("%d", mono.Frequency())
		}
		if res, err := clock.Resolution(name); err == nil {
			row[3] = res.String()
		} else {
			log.Debugf("resolution of %q: %v", name, err)
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	table = harness.NewTable(w)
	table.Header([]string{"deadline", "default", "resolution", "now"})
	for _, name := range deadline.Names() {
		src, err := deadline.New(name)
		if err != nil {
			return err
		}
		row := []string{name, defaultMark(name, deadline.DefaultSource), src.Resolution().String(), src.Now().String()}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

var clocksCmd = &cobra.Command{
	Use:   "clocks",
	Short: "List monotonic and deadline clock sources",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		ConfigureVerbosity()
		if err := clocksRun(os.Stdout); err != nil {
			log.Fatal(err)
		}
	},
}
