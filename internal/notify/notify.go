// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notify delivers short status messages to the user.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
)

// Notifier shows a transient status message.
type Notifier interface {
	Notify(msg string)
}

// Writer prints each message as a "mediaconv: <msg>" line. It is safe for
// concurrent use; completion callbacks notify from their own goroutine.
type Writer struct {
	mu     sync.Mutex
	w      io.Writer
	logger zerolog.Logger
}

// NewWriter returns a Writer printing to w.
func NewWriter(w io.Writer, logger zerolog.Logger) *Writer {
	return &Writer{w: w, logger: logger.With().Str("component", "notify").Logger()}
}

func (n *Writer) Notify(msg string) {
	n.logger.Debug().Str("msg", msg).Msg("notify")
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "mediaconv: %s\n", msg)
}

// Func adapts a function to Notifier.
type Func func(msg string)

func (f Func) Notify(msg string) { f(msg) }
