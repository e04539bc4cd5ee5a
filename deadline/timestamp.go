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

/*
Package deadline produces wall-clock timestamps for absolute-deadline waits.

A Source is selected once by name at startup. All sources share one contract:
Now returns the current wall-clock time as a normalized Timestamp, but the
precision of the reading depends on the source. The millis source truncates
to whole milliseconds, so callers must not assume nanosecond precision even
though Timestamp carries a nanosecond field.
*/
package deadline

import (
	"fmt"
	"time"
)

const nsPerSec = int64(time.Second)

// Timestamp is a wall-clock time as seconds and nanoseconds since the Unix epoch.
// Nsec of a normalized Timestamp is always within [0, 1e9).
type Timestamp struct {
	Sec  int64
	Nsec int64
}

// Normalize builds a Timestamp carrying any nanosecond overflow or underflow into seconds
func Normalize(sec, nsec int64) Timestamp {
	sec += nsec / nsPerSec
	nsec %= nsPerSec
	if nsec < 0 {
		sec--
		nsec += nsPerSec
	}
	return Timestamp{Sec: sec, Nsec: nsec}
}

// FromTime converts time.Time to Timestamp
func FromTime(t time.Time) Timestamp {
	return Timestamp{Sec: t.Unix(), Nsec: int64(t.Nanosecond())}
}

// Add returns t shifted by sec seconds and nsec nanoseconds.
// nsec may be any value, including offsets of many seconds or negative ones.
func (t Timestamp) Add(sec, nsec int64) Timestamp {
	return Normalize(t.Sec+sec+nsec/nsPerSec, t.Nsec+nsec%nsPerSec)
}

// AddDuration returns t shifted by d
func (t Timestamp) AddDuration(d time.Duration) Timestamp {
	return t.Add(0, int64(d))
}

// Valid reports whether the nanosecond field is normalized
func (t Timestamp) Valid() bool {
	return t.Nsec >= 0 && t.Nsec < nsPerSec
}

// Time converts Timestamp to time.Time
func (t Timestamp) Time() time.Time {
	return time.Unix(t.Sec, t.Nsec)
}

// Sub returns the duration t-u
func (t Timestamp) Sub(u Timestamp) time.Duration {
	return time.Duration((t.Sec-u.Sec)*nsPerSec + (t.Nsec - u.Nsec))
}

// Before reports whether t is before u
func (t Timestamp) Before(u Timestamp) bool {
	return t.Sec < u.Sec || (t.Sec == u.Sec && t.Nsec < u.Nsec)
}

func (t Timestamp) String() string {
	return fmt.Sprintf("%d.%09d", t.Sec, t.Nsec)
}
