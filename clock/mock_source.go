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
	"github.com/stretchr/testify/mock"
)

// MockTickSource mock implementation of a TickSource
type MockTickSource struct {
	mock.Mock
}

// Frequency mock
func (m *MockTickSource) Frequency() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// Ticks mock
func (m *MockTickSource) Ticks() int64 {
	args := m.Called()
	return args.Get(0).(int64)
}
