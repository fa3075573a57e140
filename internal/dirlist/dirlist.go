// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dirlist lists the files of one directory, picks out the media
// files among them, and tracks which paths the user marked.
package dirlist

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pdiddy/mediaconv/internal/preset"
)

// Entry is one regular file of the listing.
type Entry struct {
	Name  string
	Path  string
	Size  int64
	Media bool
}

// Listing is a directory view. Refresh re-reads the directory; Redisplay
// re-reads and prints it.
type Listing struct {
	dir  string
	exts preset.Extensions
	out  io.Writer

	mu      sync.Mutex
	entries []Entry
	marked  map[string]bool
}

// New reads dir once and returns its listing. out receives Redisplay output
// and may be nil.
func New(dir string, exts preset.Extensions, out io.Writer) (*Listing, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}
	l := &Listing{dir: abs, exts: exts, out: out, marked: make(map[string]bool)}
	if err := l.Refresh(); err != nil {
		return nil, err
	}
	return l, nil
}

// Dir returns the absolute directory path.
func (l *Listing) Dir() string { return l.dir }

// Refresh re-reads the directory. Subdirectories and dotfiles are skipped.
// Marks on files that disappeared are dropped.
func (l *Listing) Refresh() error {
	des, err := os.ReadDir(l.dir)
	if err != nil {
		return fmt.Errorf("reading directory %s: %w", l.dir, err)
	}

	entries := make([]Entry, 0, len(des))
	for _, de := range des {
		name := de.Name()
		if de.IsDir() || name[0] == '.' {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		path := filepath.Join(l.dir, name)
		entries = append(entries, Entry{
			Name:  name,
			Path:  path,
			Size:  info.Size(),
			Media: l.exts.Has(name),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = entries
	present := make(map[string]bool, len(entries))
	for _, e := range entries {
		present[e.Path] = true
	}
	for p := range l.marked {
		if !present[p] {
			delete(l.marked, p)
		}
	}
	return nil
}

// Paths returns every file path in name order.
func (l *Listing) Paths() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Path
	}
	return out
}

// MediaPaths returns the paths of media files in name order.
func (l *Listing) MediaPaths() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, e := range l.entries {
		if e.Media {
			out = append(out, e.Path)
		}
	}
	return out
}

// HasMedia reports whether the listing contains at least one media file.
func (l *Listing) HasMedia() bool { return len(l.MediaPaths()) > 0 }

// Resolve maps a name or path to a listed file path.
func (l *Listing) Resolve(name string) (string, error) {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(l.dir, name)
	}
	path = filepath.Clean(path)

	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e.Path == path {
			return path, nil
		}
	}
	return "", fmt.Errorf("%s is not a file in %s", name, l.dir)
}

// Mark adds a listed file to the marked set.
func (l *Listing) Mark(name string) error {
	path, err := l.Resolve(name)
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.marked[path] = true
	l.mu.Unlock()
	return nil
}

// Marked returns marked paths in name order.
func (l *Listing) Marked() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, e := range l.entries {
		if l.marked[e.Path] {
			out = append(out, e.Path)
		}
	}
	return out
}

// Redisplay refreshes the listing and prints it.
func (l *Listing) Redisplay() error {
	if err := l.Refresh(); err != nil {
		return err
	}
	if l.out == nil {
		return nil
	}
	return l.Print(l.out)
}

// Print writes the listing with one line per file. Media files are tagged
// "m"; marked files are prefixed "*".
func (l *Listing) Print(w io.Writer) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := fmt.Fprintf(w, "%s:\n", l.dir); err != nil {
		return err
	}
	for _, e := range l.entries {
		mark := " "
		if l.marked[e.Path] {
			mark = "*"
		}
		kind := " "
		if e.Media {
			kind = "m"
		}
		if _, err := fmt.Fprintf(w, "%s %s %10d  %s\n", mark, kind, e.Size, e.Name); err != nil {
			return err
		}
	}
	return nil
}
