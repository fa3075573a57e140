// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package planner

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdiddy/mediaconv/internal/preset"
	"github.com/pdiddy/mediaconv/pkg/types"
)

// Invocation fully determines one run of the external tool.
type Invocation struct {
	Executable string
	Args       []string
	Output     string
}

// String renders the invocation as a shell-like command line for display.
// Arguments containing whitespace or quotes are quoted.
func (inv Invocation) String() string {
	parts := make([]string, 0, len(inv.Args)+1)
	parts = append(parts, quoteArg(inv.Executable))
	for _, a := range inv.Args {
		parts = append(parts, quoteArg(a))
	}
	return strings.Join(parts, " ")
}

func quoteArg(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"'\\") {
		return strconv.Quote(s)
	}
	return s
}

// outputPath replaces the extension of input with key.
func outputPath(input, key string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + key
}

// buildInvocation assembles the argument list in the order the tool
// expects: overwrite, input, preset tokens, quality, scale, output.
func buildInvocation(binary string, flags types.ToolFlags, table *preset.Table, input, formatKey string, quality int, scale Scale) (Invocation, error) {
	p, err := table.Lookup(formatKey)
	if err != nil {
		return Invocation{}, fmt.Errorf("%w: %q", ErrUnknownPreset, formatKey)
	}

	out := outputPath(input, p.Key)
	if out == input {
		return Invocation{}, fmt.Errorf("%w: %s is already %s", ErrInvalidParameter, input, p.Key)
	}

	args := make([]string, 0, len(p.Args)+8)
	args = append(args, flags.Overwrite, flags.Input, input)
	args = append(args, p.Args...)
	args = append(args,
		flags.Quality, strconv.Itoa(quality),
		flags.Scale, fmt.Sprintf(flags.ScaleTemplate, scale.String()),
		out,
	)

	return Invocation{Executable: binary, Args: args, Output: out}, nil
}
