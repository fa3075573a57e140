// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/mediaconv/pkg/types"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func record(input, format string, status types.AttemptStatus) types.AttemptRecord {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return types.AttemptRecord{
		Input:      input,
		Output:     input[:len(input)-len(filepath.Ext(input))] + "." + format,
		Format:     format,
		Quality:    75,
		Scale:      "1920:-1",
		Status:     status,
		StartedAt:  start,
		FinishedAt: start.Add(3 * time.Second),
	}
}

func TestRecordAndRecent(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	id1, err := s.Record(ctx, record("/tmp/a.jpg", "png", types.StatusSucceeded))
	require.NoError(t, err)
	failed := record("/tmp/b.mov", "mp4", types.StatusFailed)
	failed.Error = "exit status 1"
	id2, err := s.Record(ctx, failed)
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	got, err := s.Recent(ctx, Query{})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "/tmp/b.mov", got[0].Input)
	assert.Equal(t, types.StatusFailed, got[0].Status)
	assert.Equal(t, "exit status 1", got[0].Error)
	assert.Equal(t, 3*time.Second, got[0].Duration())
	assert.Equal(t, "/tmp/a.png", got[1].Output)
	assert.Empty(t, got[1].Error)
}

func TestRecentFilters(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.Record(ctx, record("/tmp/a.jpg", "png", types.StatusSucceeded))
		require.NoError(t, err)
	}
	_, err := s.Record(ctx, record("/tmp/c.wav", "mp3", types.StatusKilled))
	require.NoError(t, err)

	tests := []struct {
		name  string
		query Query
		want  int
	}{
		{name: "limit", query: Query{Limit: 2}, want: 2},
		{name: "by input", query: Query{Input: "/tmp/a.jpg"}, want: 5},
		{name: "by status", query: Query{Status: types.StatusKilled}, want: 1},
		{name: "no match", query: Query{Input: "/tmp/zzz.jpg"}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Recent(ctx, tt.query)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestRecordRejectsUnfinished(t *testing.T) {
	s := openStore(t)
	_, err := s.Record(context.Background(), record("/tmp/a.jpg", "png", types.StatusInvoking))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not final")
}

func TestReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.Record(context.Background(), record("/tmp/a.jpg", "webp", types.StatusSucceeded))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Recent(context.Background(), Query{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "webp", got[0].Format)
}

func TestExportYAML(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	_, err := s.Record(ctx, record("/tmp/a.jpg", "png", types.StatusSucceeded))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.ExportYAML(ctx, Query{}, &buf))

	var got []types.AttemptRecord
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "/tmp/a.png", got[0].Output)
	assert.Equal(t, types.StatusSucceeded, got[0].Status)
}
