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
	"os"
	"time"

	yaml "gopkg.in/yaml.v2"

	"github.com/facebook/waitcheck/clock"
	"github.com/facebook/waitcheck/deadline"
)

// defaults matching the classic sweep of ten waits from 90ms to 900ms
const (
	DefaultTrials     = 10
	DefaultBaseOffset = 90 * time.Millisecond
	DefaultCriterion  = "observed >= 0.8 * requested"
	DefaultLateness   = 50 * time.Millisecond
)

// Config represents configuration we expect to read from file
type Config struct {
	Trials          int           // number of waits in the sweep
	BaseOffset      time.Duration // wait i requests BaseOffset*i
	MonotonicSource string        // tick source to measure elapsed time with
	DeadlineSource  string        // wall clock to build deadlines from
	Criterion       string        // accuracy expression evaluated for every trial
	Lateness        time.Duration // observed waits later than this are reported as warnings
}

// DefaultConfig returns Config with every field set to its default
func DefaultConfig() *Config {
	return &Config{
		Trials:          DefaultTrials,
		BaseOffset:      DefaultBaseOffset,
		MonotonicSource: clock.DefaultSource,
		DeadlineSource:  deadline.DefaultSource,
		Criterion:       DefaultCriterion,
		Lateness:        DefaultLateness,
	}
}

// Validate makes sure config is valid
func (c *Config) Validate() error {
	if c.Trials <= 0 {
		return fmt.Errorf("bad config: 'trials' must be >0")
	}
	if c.BaseOffset <= 0 {
		return fmt.Errorf("bad config: 'baseoffset' must be positive")
	}
	// compare by division, the product overflows for large values
	if c.Trials > int(time.Hour/c.BaseOffset) {
		return fmt.Errorf("bad config: longest wait is over an hour")
	}
	if c.Lateness < 0 {
		return fmt.Errorf("bad config: 'lateness' must not be negative")
	}
	if c.MonotonicSource == "" {
		return fmt.Errorf("bad config: 'monotonicsource' must be specified")
	}
	if c.DeadlineSource == "" {
		return fmt.Errorf("bad config: 'deadlinesource' must be specified")
	}
	if _, err := NewCriterion(c.Criterion); err != nil {
		return fmt.Errorf("bad config: 'criterion': %w", err)
	}
	return nil
}

// ReadConfig reads config and unmarshals it from yaml on top of defaults
func ReadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := DefaultConfig()
	err = yaml.UnmarshalStrict(data, c)
	return c, err
}
