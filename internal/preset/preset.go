// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package preset defines output-format presets and the set of file
// extensions recognized as media.
//
// A Table is built once and never mutated. Lookups are by format key, the
// lower-case extension of the output file (e.g. "png").
package preset

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound is returned by Table.Lookup for a key with no preset.
var ErrNotFound = errors.New("preset not found")

// FormatPreset is a named bundle of extra tool arguments for one output format.
type FormatPreset struct {
	// Key is the output format and file extension, without the dot.
	Key string `yaml:"key"`

	// Args are extra tool arguments, already split into tokens. A token may
	// contain spaces; it is passed to the tool as one argument.
	Args []string `yaml:"args"`

	// Description is shown next to the preset in menus.
	Description string `yaml:"description"`

	// Glyph is a short symbol shown in menus.
	Glyph string `yaml:"glyph"`

	// MenuKey is the single-character menu shortcut. Optional.
	MenuKey string `yaml:"menu_key,omitempty"`
}

// Table is an immutable set of presets keyed by format.
type Table struct {
	byKey map[string]FormatPreset
	order []string
}

// NewTable validates presets and builds a Table. Keys are lower-cased.
// Empty keys, duplicate keys, and duplicate menu keys are errors.
func NewTable(presets []FormatPreset) (*Table, error) {
	t := &Table{byKey: make(map[string]FormatPreset, len(presets))}
	menuKeys := make(map[string]string)

	for i, p := range presets {
		key := normalizeKey(p.Key)
		if key == "" {
			return nil, fmt.Errorf("preset %d: empty key", i)
		}
		if _, dup := t.byKey[key]; dup {
			return nil, fmt.Errorf("preset %q: duplicate key", key)
		}
		if p.MenuKey != "" {
			if other, dup := menuKeys[p.MenuKey]; dup {
				return nil, fmt.Errorf("preset %q: menu key %q already used by %q", key, p.MenuKey, other)
			}
			menuKeys[p.MenuKey] = key
		}

		p.Key = key
		p.Args = append([]string(nil), p.Args...)
		t.byKey[key] = p
		t.order = append(t.order, key)
	}
	return t, nil
}

// Lookup returns the preset for key. The key is matched case-insensitively.
func (t *Table) Lookup(key string) (FormatPreset, error) {
	p, ok := t.byKey[normalizeKey(key)]
	if !ok {
		return FormatPreset{}, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	p.Args = append([]string(nil), p.Args...)
	return p, nil
}

// ByMenuKey returns the preset bound to a menu shortcut.
func (t *Table) ByMenuKey(k string) (FormatPreset, bool) {
	for _, key := range t.order {
		if p := t.byKey[key]; p.MenuKey != "" && p.MenuKey == k {
			return p, true
		}
	}
	return FormatPreset{}, false
}

// Keys returns format keys in definition order.
func (t *Table) Keys() []string {
	return append([]string(nil), t.order...)
}

// All returns presets in definition order.
func (t *Table) All() []FormatPreset {
	out := make([]FormatPreset, 0, len(t.order))
	for _, key := range t.order {
		p := t.byKey[key]
		p.Args = append([]string(nil), p.Args...)
		out = append(out, p)
	}
	return out
}

// Len returns the number of presets.
func (t *Table) Len() int { return len(t.order) }

// Extensions is an ordered list of lower-case media extensions without dots.
type Extensions []string

// NewExtensions lower-cases and de-duplicates exts, dropping leading dots.
func NewExtensions(exts ...string) Extensions {
	seen := make(map[string]bool, len(exts))
	out := make(Extensions, 0, len(exts))
	for _, e := range exts {
		e = normalizeKey(e)
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

// Has reports whether path's extension is in the set, ignoring case.
func (e Extensions) Has(path string) bool {
	ext := normalizeKey(filepath.Ext(path))
	if ext == "" {
		return false
	}
	for _, x := range e {
		if x == ext {
			return true
		}
	}
	return false
}

// Sorted returns a sorted copy, for display.
func (e Extensions) Sorted() []string {
	out := append([]string(nil), e...)
	sort.Strings(out)
	return out
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
}
