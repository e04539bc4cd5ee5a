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
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

// ProcessStats is scheduler evidence for the current process
type ProcessStats struct {
	VoluntaryCtxSwitches   int64
	InvoluntaryCtxSwitches int64
	UserCPU                time.Duration
	SystemCPU              time.Duration
}

// CollectProcessStats reads context switch counters and CPU times of the current process
func CollectProcessStats() (*ProcessStats, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, err
	}
	s := &ProcessStats{}
	sw, err := proc.NumCtxSwitches()
	if err != nil {
		return nil, err
	}
	s.VoluntaryCtxSwitches = sw.Voluntary
	s.InvoluntaryCtxSwitches = sw.Involuntary
	if times, err := proc.Times(); err == nil {
		s.UserCPU = time.Duration(times.User * float64(time.Second))
		s.SystemCPU = time.Duration(times.System * float64(time.Second))
	}
	return s, nil
}

// Sub returns the difference between s and prev
func (s *ProcessStats) Sub(prev *ProcessStats) ProcessStats {
	return ProcessStats{
		VoluntaryCtxSwitches:   s.VoluntaryCtxSwitches - prev.VoluntaryCtxSwitches,
		InvoluntaryCtxSwitches: s.InvoluntaryCtxSwitches - prev.InvoluntaryCtxSwitches,
		UserCPU:                s.UserCPU - prev.UserCPU,
		SystemCPU:              s.SystemCPU - prev.SystemCPU,
	}
}
