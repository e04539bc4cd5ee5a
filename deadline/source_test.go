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
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMillisTruncates(t *testing.T) {
	for range 100 {
		ts := Millis{}.Now()
		require.True(t, ts.Valid())
		require.Zero(t, ts.Nsec%int64(time.Millisecond))
	}
	require.Equal(t, time.Millisecond, Millis{}.Resolution())
}

func TestSourcesTrackWallClock(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			src, err := New(name)
			require.NoError(t, err)
			require.Equal(t, name, src.Name())
			require.Greater(t, src.Resolution(), time.Duration(0))

			before := time.Now()
			ts := src.Now()
			require.True(t, ts.Valid())
			// coarse sources are only updated on the scheduler tick, which
			// can lag by more than the advertised resolution
			slack := 4*src.Resolution() + 10*time.Millisecond
			require.WithinDuration(t, before, ts.Time(), slack)
		})
	}
}

func TestNewUnknown(t *testing.T) {
	_, err := New("sundial")
	require.ErrorContains(t, err, "unknown deadline source")
	require.Contains(t, Names(), DefaultSource)
}
