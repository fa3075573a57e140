// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package planner

import (
	"fmt"
	"strconv"

	"github.com/pdiddy/mediaconv/pkg/types"
)

// autoMarker tells the tool to derive a dimension from the aspect ratio.
const autoMarker = "-1"

// Scale fixes one output dimension and lets the tool compute the other.
// The zero value is not valid; use DefaultScale, ScaleWidth or ScaleHeight.
type Scale struct {
	size     int
	byHeight bool
}

// DefaultScale is 1920 pixels wide with automatic height.
func DefaultScale() Scale { return Scale{size: types.DefaultScaleWidth} }

// ScaleWidth fixes the width.
func ScaleWidth(w int) (Scale, error) {
	if w <= 0 {
		return Scale{}, fmt.Errorf("%w: width must be positive, got %d", ErrInvalidParameter, w)
	}
	return Scale{size: w}, nil
}

// ScaleHeight fixes the height.
func ScaleHeight(h int) (Scale, error) {
	if h <= 0 {
		return Scale{}, fmt.Errorf("%w: height must be positive, got %d", ErrInvalidParameter, h)
	}
	return Scale{size: h, byHeight: true}, nil
}

// Width returns the fixed width, or false when the width is automatic.
func (s Scale) Width() (int, bool) {
	if s.byHeight {
		return 0, false
	}
	return s.size, true
}

// Height returns the fixed height, or false when the height is automatic.
func (s Scale) Height() (int, bool) {
	if !s.byHeight {
		return 0, false
	}
	return s.size, true
}

// String formats the descriptor as "<width>:<height>" with -1 for the
// automatic side, e.g. "1920:-1" or "-1:720".
func (s Scale) String() string {
	if s.byHeight {
		return autoMarker + ":" + strconv.Itoa(s.size)
	}
	return strconv.Itoa(s.size) + ":" + autoMarker
}
