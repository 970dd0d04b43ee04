package css

import (
	"strings"

	"github.com/npillmayer/tinyq/dom/style"
)

// position is an enum type for the CSS position property.
type position uint16

// Enum values for type Position
const (
	positionUnset    position = iota
	positionStatic            // CSS static (default)
	positionRelative          // CSS relative
	positionAbsolute          // CSS absolute
	positionFixed             // CSS fixed
)

// PositionT is an option type for CSS positions.
type PositionT struct {
	offsets []PositionOffset
	kind    position
}

// PositionOffset is an offset (top, right, bottom, left) of a positioned element.
type PositionOffset struct {
	Dim DimenT
	Dir PosDir
}

// PosDir is either Top, Right, Bottom or Left.
type PosDir uint8

const (
	Top PosDir = iota
	Right
	Bottom
	Left
)

// normalizeOffsets orders offsets by direction into a slice of four. Missing
// directions stay `none`, which Offset reports as `auto`.
func normalizeOffsets(offsets []PositionOffset) []PositionOffset {
	norm := make([]PositionOffset, 4)
	for i := Top; i <= Left; i++ {
		norm[i].Dir = i
	}
	for _, o := range offsets {
		if o.Dir >= Top && o.Dir <= Left {
			norm[int(o.Dir)] = o
		}
	}
	return norm
}

// Static creates a CSS position of value `static`, used for the initial
// containing block.
func Static() PositionT {
	return PositionT{kind: positionStatic}
}

var positionMap map[position]string = map[position]string{
	positionStatic:   "static",
	positionRelative: "relative",
	positionAbsolute: "absolute",
	positionFixed:    "fixed",
}

var positionStringMap map[string]position = map[string]position{
	"static":   positionStatic,
	"relative": positionRelative,
	"absolute": positionAbsolute,
	"fixed":    positionFixed,
	"sticky":   positionRelative,
}

// Position returns an optional position type from a property string.
// It will never return an error, even with illegal input, but instead will then
// return an unset position.
func Position(p style.Property) PositionT {
	kind, ok := positionStringMap[strings.ToLower(strings.TrimSpace(string(p)))]
	if !ok {
		return PositionT{}
	}
	pos := PositionT{kind: kind}
	if kind != positionStatic {
		pos.offsets = normalizeOffsets(nil)
	}
	return pos
}

// PositionWithOffsets creates a position from the `position` property and the
// offset properties top, right, bottom and left, fetched with get.
func PositionWithOffsets(p style.Property, get func(key string) style.Property) PositionT {
	pos := Position(p)
	if pos.kind == positionUnset || pos.kind == positionStatic {
		return pos
	}
	offsets := make([]PositionOffset, 0, 4)
	for dir, key := range [4]string{"top", "right", "bottom", "left"} {
		offsets = append(offsets, PositionOffset{Dim: DimenOrAuto(get(key)), Dir: PosDir(dir)})
	}
	pos.offsets = normalizeOffsets(offsets)
	return pos
}

// ---------------------------------------------------------------------------

// IsUnset returns true if p is unset.
func (p PositionT) IsUnset() bool {
	return p.kind == positionUnset
}

// IsRelative returns true if p represents a valid relative position.
func (p PositionT) IsRelative() bool {
	return p.kind == positionRelative
}

// IsAbsolute returns true if p represents an absolute position.
func (p PositionT) IsAbsolute() bool {
	return p.kind == positionAbsolute
}

// IsStatic returns true for unset or static positions.
func (p PositionT) IsStatic() bool {
	return p.kind == positionStatic || p.kind == positionUnset
}

// IsPositioned returns true for positions other than static. Positioned
// elements establish a containing block for absolutely positioned descendants.
func (p PositionT) IsPositioned() bool {
	return !p.IsStatic()
}

// OutOfFlow returns true for absolute and fixed positions.
func (p PositionT) OutOfFlow() bool {
	return p.kind == positionAbsolute || p.kind == positionFixed
}

// Offset returns the offset for a direction. Offsets not set are `auto`.
func (p PositionT) Offset(dir PosDir) DimenT {
	if int(dir) >= len(p.offsets) || p.offsets[dir].Dim.IsNone() {
		return Auto()
	}
	return p.offsets[dir].Dim
}

func (p PositionT) String() string {
	if s, ok := positionMap[p.kind]; ok {
		return s
	}
	return "unset"
}

// IsFixed returns true if d represents a fixed position.
func (p PositionT) IsFixed() bool {
	return p.kind == positionFixed
}
