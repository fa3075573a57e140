// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package planner holds the conversion parameters of a session (quality,
// scale, target file) and turns them into external-tool invocations.
//
// One Planner exists per session. Parameter changes are synchronous and
// validated; a rejected change leaves the state untouched. Conversions run
// asynchronously: StartConversion spawns the tool and returns at once, and
// the exit is handled on a separate goroutine, so all state sits behind a
// mutex.
package planner

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/pdiddy/mediaconv/internal/preset"
	"github.com/pdiddy/mediaconv/internal/process"
	"github.com/pdiddy/mediaconv/pkg/types"
)

// QualityStep is the amount IncreaseQuality and DecreaseQuality move by.
const QualityStep = 5

// Notifier shows short status messages to the user.
type Notifier interface {
	Notify(msg string)
}

// Redisplayer refreshes the file listing after a conversion writes a file.
type Redisplayer interface {
	Redisplay() error
}

// Options configures a Planner. Presets, Extensions and Spawner are required.
type Options struct {
	Binary         string
	Flags          types.ToolFlags
	Presets        *preset.Table
	Extensions     preset.Extensions
	DefaultQuality int

	Spawner  process.Spawner
	Notifier Notifier
	Listing  Redisplayer

	// OnFinish is called once per attempt after it reaches a terminal state.
	OnFinish func(types.AttemptRecord)

	Logger *zerolog.Logger
}

// State is a copy of the planner's parameters at one moment.
type State struct {
	Quality int
	Scale   Scale
	Target  string
	Active  bool
}

// tracked is the process the planner can kill.
type tracked struct {
	handle  process.Handle
	attempt *Attempt
}

// Planner owns the conversion state of one session.
type Planner struct {
	binary  string
	flags   types.ToolFlags
	presets *preset.Table
	exts    preset.Extensions

	spawner  process.Spawner
	notifier Notifier
	listing  Redisplayer
	onFinish func(types.AttemptRecord)
	logger   zerolog.Logger

	changed chan struct{}

	mu      sync.Mutex
	quality int
	scale   Scale
	target  string
	active  *tracked

	// inflight holds every started attempt whose completion has not run,
	// including ones no longer tracked for killing.
	inflight map[*Attempt]struct{}
}

// New validates opts and returns a Planner with default scale and the
// configured default quality.
func New(opts Options) (*Planner, error) {
	if opts.Presets == nil {
		return nil, fmt.Errorf("planner: no preset table")
	}
	if opts.Spawner == nil {
		return nil, fmt.Errorf("planner: no process spawner")
	}
	if len(opts.Extensions) == 0 {
		return nil, fmt.Errorf("planner: no media extensions")
	}

	q := opts.DefaultQuality
	if q == 0 {
		q = types.DefaultQuality
	}
	if err := checkQuality(q); err != nil {
		return nil, err
	}

	binary := opts.Binary
	if binary == "" {
		binary = types.DefaultConfig().Tool.Binary
	}

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	p := &Planner{
		binary:   binary,
		flags:    opts.Flags.WithDefaults(),
		presets:  opts.Presets,
		exts:     opts.Extensions,
		spawner:  opts.Spawner,
		notifier: opts.Notifier,
		listing:  opts.Listing,
		onFinish: opts.OnFinish,
		logger:   logger.With().Str("component", "planner").Logger(),
		changed:  make(chan struct{}, 1),
		inflight: make(map[*Attempt]struct{}),
		quality:  q,
		scale:    DefaultScale(),
	}
	return p, nil
}

// Presets returns the preset table.
func (p *Planner) Presets() *preset.Table { return p.presets }

// Changed is signalled after every state change. Signals coalesce: a
// reader that falls behind sees one pending signal, then reads Snapshot.
func (p *Planner) Changed() <-chan struct{} { return p.changed }

func (p *Planner) signalChanged() {
	select {
	case p.changed <- struct{}{}:
	default:
	}
}

// Snapshot returns a copy of the current state.
func (p *Planner) Snapshot() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return State{
		Quality: p.quality,
		Scale:   p.scale,
		Target:  p.target,
		Active:  p.active != nil && p.active.handle.Alive(),
	}
}

// IncreaseQuality raises quality by QualityStep, stopping at 100.
func (p *Planner) IncreaseQuality() {
	p.mu.Lock()
	p.quality = min(p.quality+QualityStep, types.MaxQuality)
	p.mu.Unlock()
	p.signalChanged()
}

// DecreaseQuality lowers quality by QualityStep, stopping at 1.
func (p *Planner) DecreaseQuality() {
	p.mu.Lock()
	p.quality = max(p.quality-QualityStep, types.MinQuality)
	p.mu.Unlock()
	p.signalChanged()
}

// SetQuality sets quality to q, which must be within [1,100].
func (p *Planner) SetQuality(q int) error {
	if err := checkQuality(q); err != nil {
		return err
	}
	p.mu.Lock()
	p.quality = q
	p.mu.Unlock()
	p.signalChanged()
	return nil
}

// ParseQuality parses a quality typed by the user.
func ParseQuality(s string) (int, error) {
	q, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: quality %q is not a number", ErrInvalidParameter, s)
	}
	if err := checkQuality(q); err != nil {
		return 0, err
	}
	return q, nil
}

func checkQuality(q int) error {
	if q < types.MinQuality || q > types.MaxQuality {
		return fmt.Errorf("%w: quality %d outside [%d,%d]", ErrInvalidParameter, q, types.MinQuality, types.MaxQuality)
	}
	return nil
}

// SetScaleByWidth fixes the output width; height follows the aspect ratio.
func (p *Planner) SetScaleByWidth(w int) error {
	s, err := ScaleWidth(w)
	if err != nil {
		return err
	}
	p.setScale(s)
	return nil
}

// SetScaleByHeight fixes the output height; width follows the aspect ratio.
func (p *Planner) SetScaleByHeight(h int) error {
	s, err := ScaleHeight(h)
	if err != nil {
		return err
	}
	p.setScale(s)
	return nil
}

// ResetScale restores 1920 wide, automatic height.
func (p *Planner) ResetScale() { p.setScale(DefaultScale()) }

func (p *Planner) setScale(s Scale) {
	p.mu.Lock()
	p.scale = s
	p.mu.Unlock()
	p.signalChanged()
}

// SelectTarget makes path the input of the next conversion. Paths whose
// extension is not a recognized media extension are rejected.
func (p *Planner) SelectTarget(path string) error {
	if !p.exts.Has(path) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	p.mu.Lock()
	p.target = path
	p.mu.Unlock()
	p.signalChanged()
	return nil
}

// BuildInvocation returns the tool invocation converting input to
// formatKey with the current quality and scale. Nothing is executed.
func (p *Planner) BuildInvocation(input, formatKey string) (Invocation, error) {
	p.mu.Lock()
	q, s := p.quality, p.scale
	p.mu.Unlock()
	return buildInvocation(p.binary, p.flags, p.presets, input, formatKey, q, s)
}

// StartConversion converts the selected target to formatKey. It returns
// once the tool is spawned; the returned Attempt reports the outcome.
//
// A previously started process keeps running but is no longer tracked, so
// KillActiveProcess only reaches the newest one. A spawn failure is not
// returned as an error: the attempt finishes as failed.
func (p *Planner) StartConversion(formatKey string) (*Attempt, error) {
	p.mu.Lock()
	input, q, s := p.target, p.quality, p.scale
	p.mu.Unlock()

	if input == "" {
		return nil, ErrNoTarget
	}

	a := newAttempt(input, formatKey, q, s)
	inv, err := buildInvocation(p.binary, p.flags, p.presets, input, formatKey, q, s)
	if err != nil {
		return nil, err
	}
	a.Invocation = inv
	a.setStatus(types.StatusInvoking)

	p.mu.Lock()
	p.inflight[a] = struct{}{}
	p.mu.Unlock()

	log := p.logger.With().Str("input", input).Str("format", formatKey).Logger()

	h, err := p.spawner.Spawn(inv.Executable, inv.Args)
	if err != nil {
		log.Warn().Err(err).Msg("spawn failed")
		p.complete(a, err)
		return a, nil
	}

	p.mu.Lock()
	if p.active != nil && p.active.handle.Alive() {
		log.Debug().Int("pid", p.active.handle.PID()).Msg("previous process no longer tracked")
	}
	p.active = &tracked{handle: h, attempt: a}
	p.mu.Unlock()
	p.signalChanged()

	log.Info().Int("pid", h.PID()).Str("output", inv.Output).Msg("conversion started")

	go func() {
		exitErr := <-h.Done()

		p.mu.Lock()
		if p.active != nil && p.active.handle == h {
			p.active = nil
		}
		p.mu.Unlock()

		p.complete(a, exitErr)
	}()

	return a, nil
}

// complete finishes a and runs the success side effects: one
// notification and one listing refresh. Other outcomes are only logged.
func (p *Planner) complete(a *Attempt, exitErr error) {
	status := a.finish(exitErr)

	log := p.logger.With().Str("input", a.Input).Str("format", a.Format).Logger()
	switch status {
	case types.StatusSucceeded:
		log.Info().Str("output", a.Invocation.Output).Msg("conversion succeeded")
		p.notify(fmt.Sprintf("converted to %s: %s", strings.ToUpper(a.Format), a.Invocation.Output))
		if p.listing != nil {
			if err := p.listing.Redisplay(); err != nil {
				log.Warn().Err(err).Msg("listing refresh failed")
			}
		}
	case types.StatusKilled:
		log.Info().Msg("conversion killed")
	default:
		log.Warn().Err(exitErr).Msg("conversion failed")
	}

	if p.onFinish != nil {
		p.onFinish(a.Record())
	}

	p.mu.Lock()
	delete(p.inflight, a)
	p.mu.Unlock()
	a.release()
	p.signalChanged()
}

// Pending returns the number of started attempts whose completion has not
// finished running.
func (p *Planner) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.inflight)
}

// Wait blocks until every started attempt has completed, side effects and
// OnFinish included, or ctx is done. Attempts replaced by a newer
// conversion are waited for as well.
func (p *Planner) Wait(ctx context.Context) error {
	for {
		p.mu.Lock()
		var next *Attempt
		for a := range p.inflight {
			next = a
			break
		}
		p.mu.Unlock()

		if next == nil {
			return nil
		}
		select {
		case <-next.Done():
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// KillActiveProcess terminates the tracked process if it is still running.
// It does nothing when no process is active.
func (p *Planner) KillActiveProcess() error {
	p.mu.Lock()
	t := p.active
	p.mu.Unlock()

	if t == nil || !t.handle.Alive() {
		return nil
	}

	// Marked first: the exit can be observed before Terminate returns.
	t.attempt.markKilled()
	if err := t.handle.Terminate(); err != nil {
		t.attempt.clearKilled()
		return fmt.Errorf("killing conversion of %s: %w", t.attempt.Input, err)
	}

	p.logger.Info().Int("pid", t.handle.PID()).Msg("process killed")
	p.notify("process killed")
	return nil
}

func (p *Planner) notify(msg string) {
	if p.notifier != nil {
		p.notifier.Notify(msg)
	}
}
