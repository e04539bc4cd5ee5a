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
Package clock measures elapsed time with a monotonic tick counter.

A Monotonic clock wraps a TickSource, which is a raw counter with a fixed
frequency. The frequency is read once when the clock is created and never
re-read, so a Monotonic value is safe to share without synchronization.

Supported sources are
  - raw: CLOCK_MONOTONIC_RAW, not subject to NTP slewing (Linux only)
  - monotonic: CLOCK_MONOTONIC (Linux only)
  - runtime: the monotonic reading carried by time.Now, available everywhere

Durations are converted as ticks * 1e9 / frequency, rounding toward zero.
*/
package clock
