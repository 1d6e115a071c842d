package xl

import "strings"

// ColorKind distinguishes the two mutually exclusive ways OOXML represents a
// color. A Color value is never allowed to carry both an RGB hex string and
// a theme reference at once; the two-variant struct below exists precisely
// so that invariant can't be violated by construction (see spec's
// theme-color-preservation rule: a theme reference must never degrade to an
// rgb attribute, and vice versa).
type ColorKind int8

const (
	ColorNone ColorKind = iota
	ColorRGB
	ColorTheme
)

// Color is an ARGB hex color or a theme palette reference with tint.
type Color struct {
	Kind ColorKind

	// RGB is an 8-hex-digit ARGB string, e.g. "FFFF0000". Only meaningful
	// when Kind == ColorRGB. Always stored uppercase so comparisons are
	// case-insensitive by construction.
	RGB string

	// ThemeIndex and Tint are only meaningful when Kind == ColorTheme. Tint
	// is in [-1, 1].
	ThemeIndex int
	Tint       float64
}

// RGBColor builds a Color from an ARGB hex string, normalizing case.
func RGBColor(argb string) Color {
	return Color{Kind: ColorRGB, RGB: strings.ToUpper(argb)}
}

// ThemeColor builds a theme-referenced Color.
func ThemeColor(index int, tint float64) Color {
	return Color{Kind: ColorTheme, ThemeIndex: index, Tint: tint}
}

// Empty reports whether the color carries no information (the default,
// inherited color).
func (c Color) Empty() bool {
	return c.Kind == ColorNone
}

// Equal compares two colors using case-insensitive RGB comparison, per the
// styles registry's structural-equality rule.
func (c Color) Equal(o Color) bool {
	if c.Kind != o.Kind {
		return false
	}
	switch c.Kind {
	case ColorRGB:
		return strings.EqualFold(c.RGB, o.RGB)
	case ColorTheme:
		return c.ThemeIndex == o.ThemeIndex && c.Tint == o.Tint
	default:
		return true
	}
}
