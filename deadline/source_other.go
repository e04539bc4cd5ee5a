//go:build !linux

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

import "time"

func init() {
	sources[SourceRealtime] = func() Source { return Realtime{} }
}

// Realtime reads the wall clock at the resolution of time.Now
type Realtime struct{}

// Now returns the current time
func (Realtime) Now() Timestamp {
	return FromTime(time.Now())
}

// Resolution is nominally one nanosecond
func (Realtime) Resolution() time.Duration {
	return time.Nanosecond
}

// Name of the source
func (Realtime) Name() string {
	return SourceRealtime
}
