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
Package waiter implements a condition variable with an absolute-deadline timed wait.

A Primitive pairs one mutex with one condition. WaitUntil blocks until the
wall clock reaches the deadline, the way pthread_cond_timedwait does, and
reports how the wait resolved. The mutex is released while blocked and
re-acquired before returning.
*/
package waiter

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"github.com/facebook/waitcheck/deadline"
)

// Outcome is how a single wait resolved
type Outcome int

// possible outcomes
const (
	// TimedOut means the deadline passed without a wake
	TimedOut Outcome = iota
	// Woken means the wait returned because the condition was signaled
	Woken
	// Failed means the wait could not be performed
	Failed
)

var outcomeToString = map[Outcome]string{
	TimedOut: "TIMED_OUT",
	Woken:    "WOKEN",
	Failed:   "FAILED",
}

func (o Outcome) String() string {
	if s, ok := outcomeToString[o]; ok {
		return s
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(o))
}

// Code returns the value a POSIX timed wait returns for the outcome
func (o Outcome) Code() int {
	switch o {
	case TimedOut:
		return int(unix.ETIMEDOUT)
	case Woken:
		return 0
	default:
		return int(unix.EINVAL)
	}
}

// errors reported together with non-timeout outcomes
var (
	ErrSpuriousWake   = errors.New("wait returned without timing out")
	ErrUnexpectedWait = errors.New("wait failed")
	ErrNoClock        = errors.New("no reference clock")
)

// Primitive is a mutex and a condition variable.
// Waiters are woken in FIFO order by Signal.
type Primitive struct {
	mu      sync.Mutex
	waiters []chan struct{}
	now     func() time.Time
}

// New creates a Primitive comparing deadlines against the now clock
func New(now func() time.Time) (*Primitive, error) {
	if now == nil {
		return nil, ErrNoClock
	}
	return &Primitive{now: now}, nil
}

// WaitUntil blocks until the wall clock reaches the deadline or the condition is signaled
func (p *Primitive) WaitUntil(when deadline.Timestamp) (Outcome, error) {
	if !when.Valid() {
		return Failed, fmt.Errorf("%w: deadline %v: %w", ErrUnexpectedWait, when, unix.EINVAL)
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	wake := make(chan struct{}, 1)
	p.waiters = append(p.waiters, wake)
	at := when.Time()

	var timer *time.Timer
	for {
		remaining := at.Sub(p.now())
		if remaining <= 0 {
			break
		}
		if timer == nil {
			timer = time.NewTimer(remaining)
			defer timer.Stop()
		} else {
			timer.Reset(remaining)
		}
		p.mu.Unlock()
		select {
		case <-timer.C:
			p.mu.Lock()
			// the timer runs on the monotonic clock, recheck against the wall clock
			continue
		case <-wake:
			p.mu.Lock()
			return Woken, ErrSpuriousWake
		}
	}
	if !p.remove(wake) {
		// signaled between the timer firing and us re-acquiring the mutex
		<-wake
		return Woken, ErrSpuriousWake
	}
	return TimedOut, nil
}

// remove drops wake from the waiter queue, reporting whether it was still there.
// Must be called with mu held.
func (p *Primitive) remove(wake chan struct{}) bool {
	for i, w := range p.waiters {
		if w == wake {
			p.waiters = append(p.waiters[:i], p.waiters[i+1:]...)
			return true
		}
	}
	return false
}

// Signal wakes the longest waiting caller, reporting whether there was one
func (p *Primitive) Signal() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.waiters) == 0 {
		return false
	}
	w := p.waiters[0]
	p.waiters = p.waiters[1:]
	w <- struct{}{}
	return true
}

// Broadcast wakes every waiting caller and returns how many were woken
func (p *Primitive) Broadcast() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := len(p.waiters)
	for _, w := range p.waiters {
		w <- struct{}{}
	}
	p.waiters = nil
	return n
}

// Waiting returns the number of callers currently blocked
func (p *Primitive) Waiting() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.waiters)
}
