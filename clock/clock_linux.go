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

package clock

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// DefaultSource is the tick source used unless configured otherwise
const DefaultSource = SourceRaw

func init() {
	sources[SourceRaw] = func() TickSource { return &PosixSource{ClockID: unix.CLOCK_MONOTONIC_RAW} }
	sources[SourceMonotonic] = func() TickSource { return &PosixSource{ClockID: unix.CLOCK_MONOTONIC} }
}

// PosixSource reads a POSIX clock with clock_gettime(2)
type PosixSource struct {
	ClockID int32
}

// Frequency checks the clock exists and returns 1GHz.
// clock_gettime reports nanoseconds regardless of the clock resolution.
func (s *PosixSource) Frequency() (int64, error) {
	var res unix.Timespec
	if err := unix.ClockGetres(s.ClockID, &res); err != nil {
		return 0, fmt.Errorf("clock_getres(%d): %w", s.ClockID, err)
	}
	if res.Nano() <= 0 {
		return 0, fmt.Errorf("clock_getres(%d) reported resolution %dns", s.ClockID, res.Nano())
	}
	return int64(time.Second), nil
}

// Ticks returns the clock reading in nanoseconds
func (s *PosixSource) Ticks() int64 {
	var ts unix.Timespec
	// ClockGettime only fails for invalid clock ids, which Frequency rejects
	if err := unix.ClockGettime(s.ClockID, &ts); err != nil {
		log.Warningf("clock_gettime(%d) failed: %v", s.ClockID, err)
		return 0
	}
	return ts.Nano()
}

// Resolution returns the advertised resolution of the named tick source
func Resolution(name string) (time.Duration, error) {
	var id int32
	switch name {
	case SourceRaw:
		id = unix.CLOCK_MONOTONIC_RAW
	case SourceMonotonic:
		id = unix.CLOCK_MONOTONIC
	case SourceRuntime:
		return time.Nanosecond, nil
	default:
		return 0, fmt.Errorf("unknown monotonic source %q", name)
	}
	var res unix.Timespec
	if err := unix.ClockGetres(id, &res); err != nil {
		return 0, err
	}
	return time.Duration(res.Nano()), nil
}
