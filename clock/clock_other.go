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

package clock

import (
	"fmt"
	"time"
)

// DefaultSource is the tick source used unless configured otherwise
const DefaultSource = SourceRuntime

// Resolution returns the advertised resolution of the named tick source
func Resolution(name string) (time.Duration, error) {
	if name != SourceRuntime {
		return 0, fmt.Errorf("unknown monotonic source %q", name)
	}
	return time.Nanosecond, nil
}
