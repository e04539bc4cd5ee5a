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
Package harness measures how accurately a timed wait honors its deadline.

A Harness requests a sweep of waits on a condition nobody signals. Trial i
asks for BaseOffset*i, measures the time actually spent blocked on the
monotonic clock and hands every TrialResult to the configured reporters.
Any wait that resolves other than by timing out aborts the sweep.
*/
package harness

import (
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/facebook/waitcheck/clock"
	"github.com/facebook/waitcheck/deadline"
	"github.com/facebook/waitcheck/waiter"
)

//go:generate mockgen -source=harness.go -destination=waiter_mock.go -package=harness

// ErrPrimitiveSetup is returned when the wait primitive can't be created
var ErrPrimitiveSetup = errors.New("failed to set up wait primitive")

// Waiter blocks until an absolute deadline
type Waiter interface {
	WaitUntil(when deadline.Timestamp) (waiter.Outcome, error)
}

// WaiterFactory creates the Waiter a Harness owns
type WaiterFactory func() (Waiter, error)

// DefaultWaiterFactory creates a waiter.Primitive checking deadlines against time.Now
func DefaultWaiterFactory() (Waiter, error) {
	p, err := waiter.New(time.Now)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Reporter consumes trial results as they are produced
type Reporter interface {
	Report(r TrialResult)
}

// TrialResult is the measurement of a single wait
type TrialResult struct {
	Index     int
	Requested time.Duration
	Observed  time.Duration
	Deadline  deadline.Timestamp
	Outcome   waiter.Outcome
}

// TimedOut reports whether the wait resolved the only legitimate way
func (r TrialResult) TimedOut() bool {
	return r.Outcome == waiter.TimedOut
}

// Error is the difference between observed and requested wait
func (r TrialResult) Error() time.Duration {
	return r.Observed - r.Requested
}

// TrialFault describes a wait that didn't time out
type TrialFault struct {
	Index   int
	Outcome waiter.Outcome
	Err     error
}

func (f *TrialFault) Error() string {
	return fmt.Sprintf("trial %d: wait result [%d] %s: %v", f.Index, f.Outcome.Code(), f.Outcome, f.Err)
}

func (f *TrialFault) Unwrap() error {
	return f.Err
}

// Harness holds everything a sweep needs.
// Fields are owned by the harness for its whole lifetime.
type Harness struct {
	mono      *clock.Monotonic
	deadlines deadline.Source
	waiter    Waiter
	reporters []Reporter
}

// New creates a Harness from already prepared components
func New(mono *clock.Monotonic, deadlines deadline.Source, w Waiter, reporters ...Reporter) *Harness {
	return &Harness{
		mono:      mono,
		deadlines: deadlines,
		waiter:    w,
		reporters: reporters,
	}
}

// Setup prepares clocks and the wait primitive described by cfg
func Setup(cfg *Config, ticks clock.TickSource, newWaiter WaiterFactory, reporters ...Reporter) (*Harness, error) {
	mono, err := clock.NewMonotonic(ticks)
	if err != nil {
		return nil, err
	}
	log.Debugf("monotonic clock %q running at %dHz", cfg.MonotonicSource, mono.Frequency())
	deadlines, err := deadline.New(cfg.DeadlineSource)
	if err != nil {
		return nil, err
	}
	log.Debugf("deadline clock %q with resolution %v", deadlines.Name(), deadlines.Resolution())
	w, err := newWaiter()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPrimitiveSetup, err)
	}
	return New(mono, deadlines, w, reporters...), nil
}

// AddReporter registers another consumer of trial results
func (h *Harness) AddReporter(r Reporter) {
	h.reporters = append(h.reporters, r)
}

// Trial runs one wait of the requested length
func (h *Harness) Trial(index int, requested time.Duration) (TrialResult, error) {
	t1 := h.mono.Now()
	when := h.deadlines.Now().Add(0, requested.Nanoseconds())
	outcome, err := h.waiter.WaitUntil(when)
	t2 := h.mono.Now()
	r := TrialResult{
		Index:     index,
		Requested: requested,
		Observed:  h.mono.DeltaNanos(t1, t2),
		Deadline:  when,
		Outcome:   outcome,
	}
	log.Debugf("trial %d: deadline %v, outcome %v, requested %v, observed %v", index, when, outcome, requested, r.Observed)
	return r, err
}

// Run performs trials waits, the i-th one requesting baseOffset*i.
// It stops at the first wait that doesn't time out and returns results gathered so far.
func (h *Harness) Run(trials int, baseOffset time.Duration) ([]TrialResult, error) {
	results := make([]TrialResult, 0, trials)
	for i := 1; i <= trials; i++ {
		r, err := h.Trial(i, baseOffset*time.Duration(i))
		results = append(results, r)
		for _, rep := range h.reporters {
			rep.Report(r)
		}
		if r.TimedOut() {
			continue
		}
		if err == nil {
			err = waiter.ErrSpuriousWake
			if r.Outcome != waiter.Woken {
				err = waiter.ErrUnexpectedWait
			}
		}
		fault := &TrialFault{Index: i, Outcome: r.Outcome, Err: err}
		log.Errorf("aborting sweep after %d of %d trials: %v", i, trials, fault)
		return results, fault
	}
	return results, nil
}
