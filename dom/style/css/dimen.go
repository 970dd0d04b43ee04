package css

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/tinyq/dom/style"
	"github.com/npillmayer/tyse/core/dimen"
)

const (
	dimenNone uint32 = 0

	dimenAbsolute uint32 = 0x0001
	dimenAuto     uint32 = 0x0002
	dimenInherit  uint32 = 0x0003
	dimenInitial  uint32 = 0x0004
	dimenUnset    uint32 = 0x0005
	kindMask      uint32 = 0x000f

	dimenEM      uint32 = 0x0100
	dimenREM     uint32 = 0x0200
	dimenVW      uint32 = 0x0300
	dimenVH      uint32 = 0x0400
	dimenVMIN    uint32 = 0x0500
	dimenVMAX    uint32 = 0x0600
	dimenPercent uint32 = 0x0700
	relativeMask uint32 = 0xff00
)

// PX is the size of a CSS pixel: 1px = 0.75pt.
const PX = dimen.PT * 3 / 4

// Px converts a pixel value to design units.
func Px(px float64) dimen.DU {
	return dimen.DU(math.Round(px * float64(PX)))
}

// ToPx converts design units to pixels.
func ToPx(d dimen.DU) float64 {
	return float64(d) / float64(PX)
}

// DimenT is an option type for CSS dimensions.
type DimenT struct {
	d     dimen.DU
	rel   float64 // factor for relative units, 80% = 0.8
	flags uint32
}

/*
type DimenT
	= None
	| Auto
	| Inherit
	| Initial
	| JustDimen dimen
	| Percentage factor
	| ViewRel unit factor
	| FontRel unit factor
*/

// Auto creates a CSS dimension of value `auto`.
func Auto() DimenT {
	return DimenT{flags: dimenAuto}
}

// Inherit creates a CSS dimension of value `inherit`.
func Inherit() DimenT {
	return DimenT{flags: dimenInherit}
}

// Initial creates a CSS dimension of value `initial`.
func Initial() DimenT {
	return DimenT{flags: dimenInitial}
}

// JustDimen creates a CSS dimension with a fixed value of x.
func JustDimen(x dimen.DU) DimenT {
	return DimenT{d: x, flags: dimenAbsolute}
}

// Percentage creates a CSS dimension with a %-relative value, given as a percentage
// (i.e., 50 for 50%).
func Percentage(n float64) DimenT {
	return DimenT{rel: n / 100, flags: dimenPercent}
}

// IsNone is true for an unset dimension.
func (d DimenT) IsNone() bool {
	return d.flags == dimenNone
}

// IsAuto is true for dimension `auto`.
func (d DimenT) IsAuto() bool {
	return d.flags&kindMask == dimenAuto && d.flags&relativeMask == 0
}

// IsAbsolute is true for dimensions with a fixed value.
func (d DimenT) IsAbsolute() bool {
	return d.flags&kindMask == dimenAbsolute
}

// IsRelative is true for dimensions relative to a font, the viewport, or a
// containing block.
func (d DimenT) IsRelative() bool {
	return d.flags&relativeMask != 0
}

// IsPercent is true for %-relative dimensions.
func (d DimenT) IsPercent() bool {
	return d.flags&relativeMask == dimenPercent
}

func (d DimenT) String() string {
	switch {
	case d.IsNone():
		return "none"
	case d.IsAbsolute():
		return strconv.FormatFloat(ToPx(d.d), 'f', -1, 64) + "px"
	case d.IsPercent():
		return strconv.FormatFloat(d.rel*100, 'f', -1, 64) + "%"
	case d.IsRelative():
		return strconv.FormatFloat(d.rel, 'f', -1, 64) + unitNames[d.flags&relativeMask]
	}
	switch d.flags & kindMask {
	case dimenAuto:
		return "auto"
	case dimenInherit:
		return "inherit"
	case dimenInitial:
		return "initial"
	}
	return "unset"
}

var unitNames = map[uint32]string{
	dimenEM:   "em",
	dimenREM:  "rem",
	dimenVW:   "vw",
	dimenVH:   "vh",
	dimenVMIN: "vmin",
	dimenVMAX: "vmax",
}

// ---------------------------------------------------------------------------

// Context carries the values relative dimensions are resolved against.
// All values are in pixels.
type Context struct {
	Percent      float64 // reference length for percentages
	FontSize     float64 // font size of the element, for em
	RootFontSize float64 // for rem
	Viewport     [2]float64
}

// Resolve computes the fixed value of a dimension. It returns false for
// dimensions without a fixed value (auto, none, ...).
func (d DimenT) Resolve(ctx Context) (dimen.DU, bool) {
	if d.IsAbsolute() {
		return d.d, true
	}
	var ref float64
	switch d.flags & relativeMask {
	case dimenPercent:
		ref = ctx.Percent
	case dimenEM:
		ref = ctx.FontSize
	case dimenREM:
		ref = ctx.RootFontSize
	case dimenVW:
		ref = ctx.Viewport[0] / 100
	case dimenVH:
		ref = ctx.Viewport[1] / 100
	case dimenVMIN:
		ref = math.Min(ctx.Viewport[0], ctx.Viewport[1]) / 100
	case dimenVMAX:
		ref = math.Max(ctx.Viewport[0], ctx.Viewport[1]) / 100
	default:
		return 0, false
	}
	return Px(d.rel * ref), true
}

// ResolvePx is like Resolve, but returns pixels and a default for unresolvable
// dimensions.
func (d DimenT) ResolvePx(ctx Context, def float64) float64 {
	if du, ok := d.Resolve(ctx); ok {
		return ToPx(du)
	}
	return def
}

// ---------------------------------------------------------------------------

var absoluteUnits = map[string]float64{ // in px
	"px": 1,
	"pt": 4.0 / 3.0,
	"pc": 16,
	"in": 96,
	"cm": 96 / 2.54,
	"mm": 96 / 25.4,
	"q":  96 / 101.6,
}

var relativeUnits = map[string]uint32{
	"em":   dimenEM,
	"rem":  dimenREM,
	"vw":   dimenVW,
	"vh":   dimenVH,
	"vmin": dimenVMIN,
	"vmax": dimenVMAX,
	"%":    dimenPercent,
}

// Border width keywords, in px.
var borderWidths = map[string]float64{
	"thin":   1,
	"medium": 3,
	"thick":  5,
}

// ParseDimen parses a CSS length value. Unitless numbers are accepted as pixels.
func ParseDimen(p style.Property) (DimenT, error) {
	s := strings.ToLower(strings.TrimSpace(p.String()))
	switch s {
	case "", "none":
		return DimenT{}, nil
	case "auto":
		return Auto(), nil
	case "inherit":
		return Inherit(), nil
	case "initial":
		return Initial(), nil
	case "unset":
		return DimenT{flags: dimenUnset}, nil
	}
	if w, ok := borderWidths[s]; ok {
		return JustDimen(Px(w)), nil
	}
	i := len(s)
	for i > 0 && (s[i-1] < '0' || s[i-1] > '9') && s[i-1] != '.' {
		i--
	}
	num, unit := s[:i], s[i:]
	x, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return DimenT{}, fmt.Errorf("not a CSS dimension: %q", s)
	}
	if unit == "" {
		return JustDimen(Px(x)), nil
	}
	if f, ok := absoluteUnits[unit]; ok {
		return JustDimen(Px(x * f)), nil
	}
	if rel, ok := relativeUnits[unit]; ok {
		if rel == dimenPercent {
			return Percentage(x), nil
		}
		return DimenT{rel: x, flags: rel}, nil
	}
	return DimenT{}, fmt.Errorf("unknown unit in CSS dimension: %q", s)
}

// DimenOrAuto parses a dimension and falls back to `auto` on errors.
func DimenOrAuto(p style.Property) DimenT {
	d, err := ParseDimen(p)
	if err != nil {
		tracer().Debugf("%v", err)
		return Auto()
	}
	return d
}

// ---------------------------------------------------------------------------

// Match returns a matcher for pattern matching on a dimension.
func (d DimenT) Match() *Matcher {
	return &Matcher{dimen: d}
}

// Matcher matches the variants of DimenT.
type Matcher struct {
	dimen DimenT
}

// IsKind matches if the dimension is of the same kind as d.
func (m *Matcher) IsKind(d DimenT) *Matcher {
	switch {
	case m.dimen.flags&relativeMask != 0 || d.flags&relativeMask != 0:
		if m.dimen.flags&relativeMask == d.flags&relativeMask {
			return m
		}
	case m.dimen.flags&kindMask == d.flags&kindMask:
		return m
	}
	return nil
}

// Just matches a fixed dimension and extracts its value.
func (m *Matcher) Just(du *dimen.DU) *Matcher {
	if m.dimen.IsAbsolute() {
		if du != nil {
			*du = m.dimen.d
		}
		return m
	}
	return nil
}

// Percentage matches a percentage and extracts its value (50 for 50%).
func (m *Matcher) Percentage(p *float64) *Matcher {
	if m.dimen.IsPercent() {
		if p != nil {
			*p = m.dimen.rel * 100
		}
		return m
	}
	return nil
}

// --- Expression matching ---------------------------------------------------

// DimenPatterns lists results for the variants of DimenT.
type DimenPatterns[T any] struct {
	Auto     T
	Inherit  T
	Initial  T
	Just     T
	Relative T
	Default  T
}

// DimenPattern starts an expression match on d.
func DimenPattern[T any](d DimenT) *MatchExpr[T] {
	return &MatchExpr[T]{dimen: d}
}

// MatchExpr is part of pattern matching for DimenT types and intended to be
// instantiated using DimenPattern only.
type MatchExpr[T any] struct {
	dimen DimenT
}

// OneOf selects the pattern matching the dimension.
func (m *MatchExpr[T]) OneOf(patterns DimenPatterns[T]) T {
	switch {
	case m.dimen.IsRelative():
		return patterns.Relative
	case m.dimen.IsAuto():
		return patterns.Auto
	case m.dimen.IsAbsolute():
		return patterns.Just
	case m.dimen.flags&kindMask == dimenInitial:
		return patterns.Initial
	case m.dimen.flags&kindMask == dimenInherit:
		return patterns.Inherit
	}
	return patterns.Default
}

// With extracts the fixed value of the dimension.
func (m *MatchExpr[T]) With(du *dimen.DU) *MatchExpr[T] {
	*du = m.dimen.d
	return m
}

// Const returns x.
func (m *MatchExpr[T]) Const(x T) T {
	return x
}
