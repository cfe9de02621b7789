package matrix

import (
	"fmt"
	"strings"
)

// Rotation is a quarter-turn rotation applied by [Rotate].
type Rotation int

const (
	// RotateNone keeps the orientation.
	RotateNone Rotation = iota
	// RotateLeft turns the matrix a quarter counter-clockwise.
	RotateLeft
	// RotateHalf turns the matrix upside down.
	RotateHalf
	// RotateRight turns the matrix a quarter clockwise.
	RotateRight
)

var rotationNames = map[Rotation]string{
	RotateNone:  "none",
	RotateLeft:  "left",
	RotateHalf:  "half",
	RotateRight: "right",
}

// String returns the lower-case name of the rotation.
func (r Rotation) String() string {
	if name, ok := rotationNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Rotation(%d)", int(r))
}

// ParseRotation parses "none", "left", "half" or "right" (case-insensitive).
func ParseRotation(s string) (Rotation, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for r, name := range rotationNames {
		if name == key {
			return r, nil
		}
	}
	return RotateNone, fmt.Errorf("%w: unknown rotation %q", ErrInvalidArgument, s)
}

// Axis selects what [Mirror] reverses.
type Axis int

const (
	// AxisRows reverses the elements within each row.
	AxisRows Axis = iota
	// AxisColumns reverses the elements within each column.
	AxisColumns
)

// String returns "rows" or "columns".
func (a Axis) String() string {
	switch a {
	case AxisRows:
		return "rows"
	case AxisColumns:
		return "columns"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// ParseAxis parses "rows" or "columns" (case-insensitive).
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rows":
		return AxisRows, nil
	case "columns":
		return AxisColumns, nil
	}
	return AxisRows, fmt.Errorf("%w: unknown axis %q", ErrInvalidArgument, s)
}
