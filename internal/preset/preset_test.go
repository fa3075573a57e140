// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package preset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable(t *testing.T) {
	tests := []struct {
		name    string
		presets []FormatPreset
		errMsg  string
	}{
		{
			name: "valid table",
			presets: []FormatPreset{
				{Key: "png", Args: []string{"-compression_level", "9"}, MenuKey: "p"},
				{Key: "jpg", MenuKey: "j"},
			},
		},
		{
			name:    "empty key",
			presets: []FormatPreset{{Key: "  "}},
			errMsg:  "empty key",
		},
		{
			name:    "duplicate key after normalization",
			presets: []FormatPreset{{Key: "png"}, {Key: ".PNG"}},
			errMsg:  "duplicate key",
		},
		{
			name: "duplicate menu key",
			presets: []FormatPreset{
				{Key: "png", MenuKey: "p"},
				{Key: "pdf", MenuKey: "p"},
			},
			errMsg: "menu key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewTable(tt.presets)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.presets), table.Len())
		})
	}
}

func TestTableLookup(t *testing.T) {
	table := Default()

	p, err := table.Lookup("PNG")
	require.NoError(t, err)
	assert.Equal(t, "png", p.Key)
	assert.Equal(t, []string{"-compression_level", "9"}, p.Args)

	_, err = table.Lookup("zzz")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTableIsImmutable(t *testing.T) {
	args := []string{"-c:v", "libwebp"}
	table, err := NewTable([]FormatPreset{{Key: "webp", Args: args}})
	require.NoError(t, err)

	args[1] = "changed"
	p, err := table.Lookup("webp")
	require.NoError(t, err)
	assert.Equal(t, "libwebp", p.Args[1])

	p.Args[0] = "changed"
	again, err := table.Lookup("webp")
	require.NoError(t, err)
	assert.Equal(t, "-c:v", again.Args[0])
}

func TestTableOrderAndMenuKeys(t *testing.T) {
	table := Default()
	keys := table.Keys()
	require.NotEmpty(t, keys)
	assert.Equal(t, "png", keys[0])

	p, ok := table.ByMenuKey("m")
	require.True(t, ok)
	assert.Equal(t, "mp4", p.Key)

	_, ok = table.ByMenuKey("?")
	assert.False(t, ok)
}

func TestDefaultPresetTokensKeepSpaces(t *testing.T) {
	p, err := Default().Lookup("mp3")
	require.NoError(t, err)
	assert.Contains(t, p.Args, "comment=converted by mediaconv")
}

func TestExtensionsHas(t *testing.T) {
	exts := DefaultExtensions()

	tests := []struct {
		path string
		want bool
	}{
		{"/tmp/pic.jpg", true},
		{"/tmp/PIC.JPG", true},
		{"clip.Mp4", true},
		{"notes.txt", false},
		{"README", false},
		{"archive.tar.gz", false},
		{"/dir.png/file", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, exts.Has(tt.path))
		})
	}
}

func TestNewExtensionsNormalizes(t *testing.T) {
	exts := NewExtensions(".JPG", "png", "jpg", "", " Mp4 ")
	assert.Equal(t, Extensions{"jpg", "png", "mp4"}, exts)
	assert.Equal(t, []string{"jpg", "mp4", "png"}, exts.Sorted())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presets.yaml")
	content := `
extensions: [".JPG", png]
presets:
  - key: png
    args: ["-compression_level", "3"]
    description: Fast PNG
    glyph: P
    menu_key: p
  - key: webp
    args: ["-c:v", "libwebp", "-metadata", "title=my photo"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, exts, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"png", "webp"}, table.Keys())
	assert.Equal(t, Extensions{"jpg", "png"}, exts)

	p, err := table.Lookup("webp")
	require.NoError(t, err)
	assert.Equal(t, "title=my photo", p.Args[3])
}

func TestParseErrors(t *testing.T) {
	_, _, err := Parse([]byte("extensions: [jpg]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no presets")

	_, _, err = Parse([]byte("presets: [\n"))
	require.Error(t, err)

	_, _, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestParseDefaultsExtensions(t *testing.T) {
	_, exts, err := Parse([]byte("presets:\n  - key: png\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultExtensions(), exts)
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(Default(), DefaultExtensions())
	require.NoError(t, err)

	table, exts, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, Default().Keys(), table.Keys())
	assert.Equal(t, DefaultExtensions(), exts)
}
