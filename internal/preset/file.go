// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package preset

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// File is the on-disk YAML layout of a preset file.
//
//	extensions: [jpg, png, mp4]
//	presets:
//	  - key: png
//	    args: ["-compression_level", "9"]
//	    description: Lossless image
//	    glyph: "🖼"
//	    menu_key: p
type File struct {
	Extensions []string       `yaml:"extensions"`
	Presets    []FormatPreset `yaml:"presets"`
}

// Parse decodes a preset file. An empty extensions list falls back to
// DefaultExtensions; an empty presets list is an error.
func Parse(data []byte) (*Table, Extensions, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("parsing preset file: %w", err)
	}
	if len(f.Presets) == 0 {
		return nil, nil, fmt.Errorf("preset file defines no presets")
	}

	table, err := NewTable(f.Presets)
	if err != nil {
		return nil, nil, err
	}

	exts := NewExtensions(f.Extensions...)
	if len(exts) == 0 {
		exts = DefaultExtensions()
	}
	return table, exts, nil
}

// LoadFile reads and parses the preset file at path.
func LoadFile(path string) (*Table, Extensions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading preset file %s: %w", path, err)
	}
	return Parse(data)
}

// Marshal encodes a table and extension set in the preset file layout.
func Marshal(t *Table, exts Extensions) ([]byte, error) {
	return yaml.Marshal(File{Extensions: []string(exts), Presets: t.All()})
}
