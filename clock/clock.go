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
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/exp/maps"
)

// ErrClockUnavailable is returned when the tick frequency of a source can't be determined
var ErrClockUnavailable = errors.New("monotonic clock unavailable")

// TickSource is a monotonic counter advancing at a fixed frequency
type TickSource interface {
	// Frequency returns the number of ticks per second
	Frequency() (int64, error)
	// Ticks returns the current counter value
	Ticks() int64
}

// Monotonic converts tick deltas of a TickSource to durations
type Monotonic struct {
	src       TickSource
	frequency int64
}

// NewMonotonic queries the frequency of src once and caches it
func NewMonotonic(src TickSource) (*Monotonic, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: no tick source", ErrClockUnavailable)
	}
	freq, err := src.Frequency()
	if err != nil {
		return nil, fmt.Errorf("%w: reading frequency: %w", ErrClockUnavailable, err)
	}
	if freq <= 0 {
		return nil, fmt.Errorf("%w: frequency is %d", ErrClockUnavailable, freq)
	}
	return &Monotonic{src: src, frequency: freq}, nil
}

// Frequency returns the cached tick frequency in Hz
func (m *Monotonic) Frequency() int64 {
	return m.frequency
}

// Now returns the current tick count
func (m *Monotonic) Now() int64 {
	return m.src.Ticks()
}

// DeltaNanos returns the duration between ticks t1 and t2.
// t2 must not be less than t1.
func (m *Monotonic) DeltaNanos(t1, t2 int64) time.Duration {
	d := t2 - t1
	// split so that d * 1e9 can't overflow for long intervals
	whole := d / m.frequency
	rem := d % m.frequency
	return time.Duration(whole*int64(time.Second) + rem*int64(time.Second)/m.frequency)
}

// RuntimeSource reads the monotonic clock of the Go runtime
type RuntimeSource struct {
	epoch time.Time
}

// NewRuntimeSource returns a RuntimeSource counting nanoseconds from now
func NewRuntimeSource() *RuntimeSource {
	return &RuntimeSource{epoch: time.Now()}
}

// Frequency is always 1GHz, ticks are nanoseconds
func (s *RuntimeSource) Frequency() (int64, error) {
	return int64(time.Second), nil
}

// Ticks returns nanoseconds elapsed since the source was created
func (s *RuntimeSource) Ticks() int64 {
	return int64(time.Since(s.epoch))
}

// source names
const (
	SourceRaw       = "raw"
	SourceMonotonic = "monotonic"
	SourceRuntime   = "runtime"
)

var sources = map[string]func() TickSource{
	SourceRuntime: func() TickSource { return NewRuntimeSource() },
}

// NewSource returns the tick source registered under name
func NewSource(name string) (TickSource, error) {
	f, found := sources[name]
	if !found {
		return nil, fmt.Errorf("unknown monotonic source %q, supported: %v", name, Sources())
	}
	return f(), nil
}

// Sources lists names of supported tick sources
func Sources() []string {
	names := maps.Keys(sources)
	sort.Strings(names)
	return names
}
