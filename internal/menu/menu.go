// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package menu is the interactive front end of a planner: it reads one
// command per line, applies it, and redraws a status panel.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/mediaconv/internal/planner"
)

const usage = "commands: + / - quality, q N set quality, w N / h N scale, r reset scale, " +
	"<key> convert, k kill, ? help, x quit"

// Menu drives a planner from line commands.
type Menu struct {
	planner *planner.Planner
	in      io.Reader
	out     io.Writer
	logger  zerolog.Logger
}

// reserved are command words a preset menu key may not take.
var reserved = map[string]bool{
	"x": true, "quit": true, "?": true, "help": true,
	"+": true, "=": true, "-": true,
	"q": true, "w": true, "h": true, "r": true, "k": true,
}

// New returns a menu reading commands from in and drawing to out. It fails
// when a preset's menu key or format key would be shadowed by a command.
func New(p *planner.Planner, in io.Reader, out io.Writer, logger zerolog.Logger) (*Menu, error) {
	for _, ps := range p.Presets().All() {
		if reserved[ps.MenuKey] {
			return nil, fmt.Errorf("preset %q: menu key %q is a menu command", ps.Key, ps.MenuKey)
		}
		if reserved[ps.Key] {
			return nil, fmt.Errorf("preset %q: format key is a menu command", ps.Key)
		}
	}
	return &Menu{
		planner: p,
		in:      in,
		out:     out,
		logger:  logger.With().Str("component", "menu").Logger(),
	}, nil
}

// Run draws the panel and handles commands until "x", end of input, or
// ctx is done. The panel is redrawn after each command and whenever the
// planner reports a change of its own, such as a finished conversion.
func (m *Menu) Run(ctx context.Context) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		defer close(lines)
		sc := bufio.NewScanner(m.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-stop:
				return
			}
		}
		readErr <- sc.Err()
	}()

	m.Render()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.planner.Changed():
			m.Render()
		case line, ok := <-lines:
			if !ok {
				return <-readErr
			}
			if quit := m.Handle(line); quit {
				return nil
			}
			m.drainChanged()
			m.Render()
		}
	}
}

func (m *Menu) drainChanged() {
	select {
	case <-m.planner.Changed():
	default:
	}
}

// Handle applies one command line and reports whether the user quit.
// Planner errors are printed; the planner state is left as it was.
func (m *Menu) Handle(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, arg := fields[0], ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	var err error
	switch cmd {
	case "x", "quit":
		return true
	case "?", "help":
		fmt.Fprintln(m.out, usage)
	case "+", "=":
		m.planner.IncreaseQuality()
	case "-":
		m.planner.DecreaseQuality()
	case "q":
		err = m.setQuality(arg)
	case "w":
		err = m.setDimension(arg, m.planner.SetScaleByWidth)
	case "h":
		err = m.setDimension(arg, m.planner.SetScaleByHeight)
	case "r":
		m.planner.ResetScale()
	case "k":
		err = m.planner.KillActiveProcess()
	default:
		err = m.convert(cmd)
	}

	if err != nil {
		m.logger.Debug().Str("command", line).Err(err).Msg("command rejected")
		fmt.Fprintf(m.out, "error: %v\n", err)
	}
	return false
}

func (m *Menu) setQuality(arg string) error {
	q, err := planner.ParseQuality(arg)
	if err != nil {
		return err
	}
	return m.planner.SetQuality(q)
}

func (m *Menu) setDimension(arg string, set func(int) error) error {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("%w: %q is not a pixel size", planner.ErrInvalidParameter, arg)
	}
	return set(n)
}

// convert starts a conversion for a preset menu key or format key.
func (m *Menu) convert(key string) error {
	format := key
	if p, ok := m.planner.Presets().ByMenuKey(key); ok {
		format = p.Key
	}

	a, err := m.planner.StartConversion(format)
	if err != nil {
		if errors.Is(err, planner.ErrUnknownPreset) {
			return fmt.Errorf("unknown command %q (? for help)", key)
		}
		return err
	}
	fmt.Fprintf(m.out, "running: %s\n", a.Invocation)
	return nil
}

// Render draws the status panel.
func (m *Menu) Render() {
	s := m.planner.Snapshot()

	target := s.Target
	if target == "" {
		target = "(none)"
	}
	proc := "idle"
	if s.Active {
		proc = "running"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\ntarget:  %s\n", target)
	fmt.Fprintf(&b, "quality: %-3d  scale: %-10s  process: %s\n", s.Quality, s.Scale, proc)
	b.WriteString("presets:\n")
	for _, p := range m.planner.Presets().All() {
		key := p.MenuKey
		if key == "" {
			key = p.Key
		}
		fmt.Fprintf(&b, "  [%s] %s %-5s %s\n", key, p.Glyph, p.Key, p.Description)
	}
	b.WriteString(usage + "\n")
	io.WriteString(m.out, b.String())
}
