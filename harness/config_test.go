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
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	c := &Config{Criterion: DefaultCriterion}
	require.Equal(t, fmt.Errorf("bad config: 'trials' must be >0"), c.Validate())

	c.Trials = 10
	require.Equal(t, fmt.Errorf("bad config: 'baseoffset' must be positive"), c.Validate())

	c.BaseOffset = time.Hour
	require.Equal(t, fmt.Errorf("bad config: longest wait is over an hour"), c.Validate())

	c.Trials = 1 << 34
	c.BaseOffset = 1 << 30
	require.Equal(t, fmt.Errorf("bad config: longest wait is over an hour"), c.Validate())

	c.Trials = 10
	c.BaseOffset = 6 * time.Minute
	// exactly an hour is allowed
	require.Equal(t, fmt.Errorf("bad config: 'monotonicsource' must be specified"), c.Validate())

	c.BaseOffset = 90 * time.Millisecond
	c.Lateness = -time.Millisecond
	require.Equal(t, fmt.Errorf("bad config: 'lateness' must not be negative"), c.Validate())

	c.Lateness = time.Millisecond
	require.Equal(t, fmt.Errorf("bad config: 'monotonicsource' must be specified"), c.Validate())

	c.MonotonicSource = "runtime"
	require.Equal(t, fmt.Errorf("bad config: 'deadlinesource' must be specified"), c.Validate())

	c.DeadlineSource = "millis"
	c.Criterion = "offset < 1"
	require.ErrorContains(t, c.Validate(), "bad config: 'criterion'")

	c.Criterion = DefaultCriterion
	require.NoError(t, c.Validate())
	require.NoError(t, DefaultConfig().Validate())
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "waitcheck.yaml")
	data := `trials: 5
baseoffset: 20ms
deadlinesource: realtime
criterion: "error < 10"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	c, err := ReadConfig(path)
	require.NoError(t, err)
	want := DefaultConfig()
	want.Trials = 5
	want.BaseOffset = 20 * time.Millisecond
	want.DeadlineSource = "realtime"
	want.Criterion = "error < 10"
	require.Equal(t, want, c)
	require.NoError(t, c.Validate())
}

func TestReadConfigStrict(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "waitcheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte("trials: 5\nretries: 3\n"), 0644))
	_, err := ReadConfig(path)
	require.Error(t, err)

	_, err = ReadConfig(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
