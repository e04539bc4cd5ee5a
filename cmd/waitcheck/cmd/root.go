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
)

// RootCmd is a main entry point. Without a subcommand it runs the timeouts sweep.
var RootCmd = &cobra.Command{
	Use:           "waitcheck",
	Short:         "Check how accurately timed waits honor their deadlines",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true, // execute prints errors itself
	RunE: func(c *cobra.Command, _ []string) error {
		ConfigureVerbosity()
		return timeoutsCmdRun(c)
	},
}

// flags
var rootVerboseFlag bool

func init() {
	RootCmd.PersistentFlags().BoolVarP(&rootVerboseFlag, "verbose", "v", false, "verbose output")
	addTimeoutsFlags(RootCmd)
}

// ConfigureVerbosity configures log verbosity based on parsed flags. Needs to be called by any subcommand.
func ConfigureVerbosity() {
	log.SetLevel(log.InfoLevel)
	if rootVerboseFlag {
		log.SetLevel(log.DebugLevel)
	}
}

// Execute is the main entry point for CLI interface
func Execute() {
	os.Exit(execute(os.Stdout))
}

// execute runs RootCmd and returns the process exit status
func execute(w io.Writer) int {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(w, err)
		return 1
	}
	return 0
}
