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
	"fmt"
	"sort"
	"time"

	"golang.org/x/exp/maps"
)

// Source is a wall-clock reading compatible with absolute-deadline waits
type Source interface {
	Now() Timestamp
	Resolution() time.Duration
	Name() string
}

// source names
const (
	SourceMillis   = "millis"
	SourceRealtime = "realtime"
	SourceCoarse   = "coarse"
)

// DefaultSource is the deadline source used unless configured otherwise
const DefaultSource = SourceMillis

var sources = map[string]func() Source{
	SourceMillis: func() Source { return Millis{} },
}

// New returns the deadline source registered under name
func New(name string) (Source, error) {
	f, found := sources[name]
	if !found {
		return nil, fmt.Errorf("unknown deadline source %q, supported: %v", name, Names())
	}
	return f(), nil
}

// Names lists names of supported deadline sources
func Names() []string {
	names := maps.Keys(sources)
	sort.Strings(names)
	return names
}

// Millis reads the wall clock truncated to whole milliseconds
type Millis struct{}

// Now returns current time with the sub-millisecond part dropped
func (Millis) Now() Timestamp {
	now := time.Now()
	ms := now.UnixMilli()
	return Timestamp{Sec: ms / 1000, Nsec: (ms % 1000) * int64(time.Millisecond)}
}

// Resolution is one millisecond
func (Millis) Resolution() time.Duration {
	return time.Millisecond
}

// Name of the source
func (Millis) Name() string {
	return SourceMillis
}
