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

package deadline

import (
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

func init() {
	sources[SourceRealtime] = func() Source { return &Posix{ClockID: unix.CLOCK_REALTIME, name: SourceRealtime} }
	sources[SourceCoarse] = func() Source { return &Posix{ClockID: unix.CLOCK_REALTIME_COARSE, name: SourceCoarse} }
}

// Posix reads a wall clock with clock_gettime(2)
type Posix struct {
	ClockID int32
	name    string
}

// Now returns the current clock reading
func (p *Posix) Now() Timestamp {
	var ts unix.Timespec
	if err := unix.ClockGettime(p.ClockID, &ts); err != nil {
		log.Warningf("clock_gettime(%d) failed, falling back to time.Now: %v", p.ClockID, err)
		return FromTime(time.Now())
	}
	return Timestamp{Sec: int64(ts.Sec), Nsec: int64(ts.Nsec)}
}

// Resolution returns the resolution advertised by clock_getres(2).
// This is not an upper bound on how far the clock lags real time:
// coarse clocks advance on the scheduler tick and may trail by several ticks.
func (p *Posix) Resolution() time.Duration {
	var res unix.Timespec
	if err := unix.ClockGetres(p.ClockID, &res); err != nil {
		return 0
	}
	return time.Duration(res.Nano())
}

// Name of the source
func (p *Posix) Name() string {
	return p.name
}
