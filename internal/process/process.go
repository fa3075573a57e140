// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package process spawns the external conversion tool and tracks its
// lifetime: whether it is still running, terminating it on request, and
// reporting its exit on a completion channel.
package process

import (
	"fmt"
	"io"
	"os/exec"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Handle is an opaque reference to one spawned process.
type Handle interface {
	// PID returns the operating-system process id.
	PID() int

	// Alive reports whether the process has not yet exited.
	Alive() bool

	// Terminate asks the process to stop. It is a no-op once the process
	// has exited.
	Terminate() error

	// Done delivers exactly one value when the process exits: nil for a
	// zero exit status, an error otherwise. It has a single receiver.
	Done() <-chan error
}

// Spawner starts processes. The planner depends on this interface; Runner
// is the production implementation.
type Spawner interface {
	Spawn(name string, args []string) (Handle, error)
}

// pathFinder abstracts binary lookup for testing.
type pathFinder interface {
	LookPath(file string) (string, error)
}

type osPathFinder struct{}

func (osPathFinder) LookPath(file string) (string, error) { return exec.LookPath(file) }

// Runner spawns processes with os/exec. Tool output is copied to Stdout and
// Stderr when set and discarded otherwise.
type Runner struct {
	Stdout io.Writer
	Stderr io.Writer

	finder pathFinder
	logger zerolog.Logger
}

// NewRunner returns a Runner that logs process lifecycle events to logger.
func NewRunner(logger zerolog.Logger) *Runner {
	return &Runner{
		finder: osPathFinder{},
		logger: logger.With().Str("component", "process").Logger(),
	}
}

// Available reports an error when name cannot be found on PATH.
func (r *Runner) Available(name string) error {
	if _, err := r.finder.LookPath(name); err != nil {
		return fmt.Errorf("%s not found in PATH: %w", name, err)
	}
	return nil
}

// Spawn starts name with args and returns without waiting for it.
func (r *Runner) Spawn(name string, args []string) (Handle, error) {
	cmd := exec.Command(name, args...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	configureCmd(cmd)

	r.logger.Debug().Str("cmd", name).Strs("args", args).Msg("spawning")

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %s: %w", name, err)
	}

	p := &proc{cmd: cmd, done: make(chan error, 1)}
	p.alive.Store(true)

	go func() {
		err := cmd.Wait()
		p.alive.Store(false)
		if err != nil {
			r.logger.Debug().Int("pid", p.PID()).Err(err).Msg("process exited")
			err = fmt.Errorf("%s exited: %w", name, err)
		} else {
			r.logger.Debug().Int("pid", p.PID()).Msg("process exited")
		}
		p.done <- err
	}()

	return p, nil
}

// proc implements Handle for an exec.Cmd.
type proc struct {
	cmd   *exec.Cmd
	alive atomic.Bool
	done  chan error
}

func (p *proc) PID() int { return p.cmd.Process.Pid }

func (p *proc) Alive() bool { return p.alive.Load() }

func (p *proc) Done() <-chan error { return p.done }

func (p *proc) Terminate() error {
	if !p.Alive() {
		return nil
	}
	if err := terminate(p.cmd.Process); err != nil {
		// The process may have exited between the check and the signal.
		if !p.Alive() {
			return nil
		}
		return fmt.Errorf("terminating pid %d: %w", p.PID(), err)
	}
	return nil
}
