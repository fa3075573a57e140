// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package planner

import (
	"context"
	"sync"
	"time"

	"github.com/pdiddy/mediaconv/pkg/types"
)

// Attempt follows one conversion from building its invocation to the
// tool's exit: building, invoking, then succeeded, failed or killed.
type Attempt struct {
	Input      string
	Format     string
	Quality    int
	Scale      Scale
	Invocation Invocation
	StartedAt  time.Time

	mu         sync.Mutex
	status     types.AttemptStatus
	err        error
	killed     bool
	finishedAt time.Time
	done       chan struct{}
}

func newAttempt(input, format string, quality int, scale Scale) *Attempt {
	return &Attempt{
		Input:     input,
		Format:    format,
		Quality:   quality,
		Scale:     scale,
		StartedAt: time.Now(),
		status:    types.StatusBuilding,
		done:      make(chan struct{}),
	}
}

// Status returns the current state.
func (a *Attempt) Status() types.AttemptStatus {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

// Err returns the tool failure, if the attempt failed or was killed.
func (a *Attempt) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

// Done is closed when the attempt reaches a terminal state.
func (a *Attempt) Done() <-chan struct{} { return a.done }

// Wait blocks until the attempt finishes or ctx is done.
func (a *Attempt) Wait(ctx context.Context) (types.AttemptStatus, error) {
	select {
	case <-a.done:
		return a.Status(), a.Err()
	case <-ctx.Done():
		return a.Status(), ctx.Err()
	}
}

// Record returns the persisted form of a finished attempt.
func (a *Attempt) Record() types.AttemptRecord {
	a.mu.Lock()
	defer a.mu.Unlock()
	r := types.AttemptRecord{
		Input:      a.Input,
		Output:     a.Invocation.Output,
		Format:     a.Format,
		Quality:    a.Quality,
		Scale:      a.Scale.String(),
		Status:     a.status,
		StartedAt:  a.StartedAt,
		FinishedAt: a.finishedAt,
	}
	if a.err != nil {
		r.Error = a.err.Error()
	}
	return r
}

func (a *Attempt) setStatus(s types.AttemptStatus) {
	a.mu.Lock()
	a.status = s
	a.mu.Unlock()
}

func (a *Attempt) markKilled() {
	a.mu.Lock()
	a.killed = true
	a.mu.Unlock()
}

func (a *Attempt) clearKilled() {
	a.mu.Lock()
	a.killed = false
	a.mu.Unlock()
}

// finish records the tool's exit and returns the terminal status. Done
// stays open until release, so waiters observe the completion side effects.
func (a *Attempt) finish(exitErr error) types.AttemptStatus {
	a.mu.Lock()
	switch {
	case exitErr == nil:
		a.status = types.StatusSucceeded
	case a.killed:
		a.status = types.StatusKilled
	default:
		a.status = types.StatusFailed
	}
	a.err = exitErr
	a.finishedAt = time.Now()
	s := a.status
	a.mu.Unlock()
	return s
}

func (a *Attempt) release() { close(a.done) }
