// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package planner

import "errors"

// Error kinds returned synchronously by planner operations. Callers match
// them with errors.Is; the planner state is unchanged when one is returned.
var (
	// ErrUnsupportedFormat marks an input file whose extension is not a
	// recognized media extension.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrUnknownPreset marks a conversion to a format with no preset.
	ErrUnknownPreset = errors.New("unknown preset")

	// ErrInvalidParameter marks a non-positive scale dimension, a quality
	// outside [1,100], or an unparseable number.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNoTarget is returned by StartConversion before SelectTarget.
	ErrNoTarget = errors.New("no target selected")
)
