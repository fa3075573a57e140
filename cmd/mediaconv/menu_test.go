// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mediaconv/internal/planner"
	"github.com/pdiddy/mediaconv/internal/preset"
	"github.com/pdiddy/mediaconv/internal/process"
	"github.com/pdiddy/mediaconv/pkg/types"
)

// exitedHandle reports itself dead at once and delivers its exit later,
// the way a process looks between Wait returning and completion running.
type exitedHandle struct {
	done chan error
}

func (h *exitedHandle) PID() int           { return 7 }
func (h *exitedHandle) Alive() bool        { return false }
func (h *exitedHandle) Terminate() error   { return nil }
func (h *exitedHandle) Done() <-chan error { return h.done }

type exitedSpawner struct{}

func (exitedSpawner) Spawn(string, []string) (process.Handle, error) {
	h := &exitedHandle{done: make(chan error, 1)}
	go func() {
		time.Sleep(5 * time.Millisecond)
		h.done <- nil
	}()
	return h, nil
}

func TestWaitIdleWaitsForHistoryRecord(t *testing.T) {
	var recorded atomic.Bool
	p, err := planner.New(planner.Options{
		Presets:    preset.Default(),
		Extensions: preset.DefaultExtensions(),
		Spawner:    exitedSpawner{},
		OnFinish: func(types.AttemptRecord) {
			time.Sleep(20 * time.Millisecond)
			recorded.Store(true)
		},
	})
	require.NoError(t, err)
	require.NoError(t, p.SelectTarget("/tmp/pic.jpg"))

	_, err = p.StartConversion("png")
	require.NoError(t, err)
	require.False(t, p.Snapshot().Active)

	require.NoError(t, waitIdle(p))
	assert.True(t, recorded.Load())
	assert.Equal(t, 0, p.Pending())
}

func TestKillAndWaitWaitsForRecord(t *testing.T) {
	records := make(chan types.AttemptRecord, 1)
	p, err := planner.New(planner.Options{
		Presets:    preset.Default(),
		Extensions: preset.DefaultExtensions(),
		Spawner:    exitedSpawner{},
		OnFinish:   func(r types.AttemptRecord) { records <- r },
	})
	require.NoError(t, err)
	require.NoError(t, p.SelectTarget("/tmp/clip.mov"))

	_, err = p.StartConversion("mp4")
	require.NoError(t, err)

	require.NoError(t, killAndWait(p))
	require.Len(t, records, 1)
	assert.Equal(t, 0, p.Pending())
}
