package xl

// This file holds the structural types interned by the styles registry
// (styles.go): Alignment, Fill, Border, NumberFormat, and Protection, plus
// the composite XF cell-format record that references all of them. The
// teacher (adnsv-go-xl) only modeled Alignment and Font directly on XF;
// Fill/Border/NumberFormat/Protection are new, grounded on spec §3's
// "four interned pools" requirement.

// HorizontalAlignment represents the horizontal alignment of cell content.
type HorizontalAlignment string

// Horizontal alignment constants as defined in ECMA-376 (ST_HorizontalAlignment).
const (
	HAlignGeneral          HorizontalAlignment = "general"
	HAlignLeft             HorizontalAlignment = "left"
	HAlignCenter           HorizontalAlignment = "center"
	HAlignRight            HorizontalAlignment = "right"
	HAlignFill             HorizontalAlignment = "fill"
	HAlignJustify          HorizontalAlignment = "justify"
	HAlignCenterContinuous HorizontalAlignment = "centerContinuous"
	HAlignDistributed      HorizontalAlignment = "distributed"
)

// VerticalAlignment represents the vertical alignment of cell content.
type VerticalAlignment string

// Vertical alignment constants as defined in ECMA-376 (ST_VerticalAlignment).
const (
	VAlignTop         VerticalAlignment = "top"
	VAlignCenter      VerticalAlignment = "center"
	VAlignBottom      VerticalAlignment = "bottom"
	VAlignJustify     VerticalAlignment = "justify"
	VAlignDistributed VerticalAlignment = "distributed"
)

// Alignment represents the alignment properties for cell content.
type Alignment struct {
	Horizontal HorizontalAlignment
	Vertical   VerticalAlignment
	WrapText   bool
	TextRotation int
	Indent       int
}

// Empty returns true if the alignment has no custom properties set.
func (a *Alignment) Empty() bool {
	return a.Horizontal == "" && a.Vertical == "" && !a.WrapText &&
		a.TextRotation == 0 && a.Indent == 0
}

func (a *Alignment) Equal(o *Alignment) bool {
	return a.Horizontal == o.Horizontal && a.Vertical == o.Vertical &&
		a.WrapText == o.WrapText && a.TextRotation == o.TextRotation &&
		a.Indent == o.Indent
}

// FillPattern is the ST_PatternType value.
type FillPattern string

const (
	PatternNone    FillPattern = ""
	PatternSolid   FillPattern = "solid"
	PatternGray125 FillPattern = "gray125"
)

// Fill represents a cell background pattern fill.
type Fill struct {
	PatternType FillPattern
	FgColor     Color
	BgColor     Color
}

func (f *Fill) Empty() bool {
	return f.PatternType == "" && f.FgColor.Empty() && f.BgColor.Empty()
}

func (f *Fill) Equal(o *Fill) bool {
	return f.PatternType == o.PatternType && f.FgColor.Equal(o.FgColor) && f.BgColor.Equal(o.BgColor)
}

// BorderLineStyle is the ST_BorderStyle value.
type BorderLineStyle string

const (
	BorderStyleNone   BorderLineStyle = ""
	BorderStyleThin   BorderLineStyle = "thin"
	BorderStyleMedium BorderLineStyle = "medium"
	BorderStyleThick  BorderLineStyle = "thick"
	BorderStyleDashed BorderLineStyle = "dashed"
	BorderStyleDotted BorderLineStyle = "dotted"
	BorderStyleDouble BorderLineStyle = "double"
	BorderStyleHair   BorderLineStyle = "hair"
)

// BorderLine is one edge of a Border (left/right/top/bottom/diagonal).
type BorderLine struct {
	Style BorderLineStyle
	Color Color
}

func (l BorderLine) Empty() bool { return l.Style == "" && l.Color.Empty() }

func (l BorderLine) Equal(o BorderLine) bool {
	return l.Style == o.Style && l.Color.Equal(o.Color)
}

// Border represents the four edges plus diagonal of a cell border.
type Border struct {
	Left, Right, Top, Bottom, Diagonal BorderLine
	DiagonalUp, DiagonalDown           bool
}

func (b *Border) Empty() bool {
	return b.Left.Empty() && b.Right.Empty() && b.Top.Empty() &&
		b.Bottom.Empty() && b.Diagonal.Empty() && !b.DiagonalUp && !b.DiagonalDown
}

func (b *Border) Equal(o *Border) bool {
	return b.Left.Equal(o.Left) && b.Right.Equal(o.Right) && b.Top.Equal(o.Top) &&
		b.Bottom.Equal(o.Bottom) && b.Diagonal.Equal(o.Diagonal) &&
		b.DiagonalUp == o.DiagonalUp && b.DiagonalDown == o.DiagonalDown
}

// NumberFormat is a cell's numeric display format. ID 0-163 are built-in
// (see numfmt.go); ID >= 164 is a custom format and Code holds its pattern.
type NumberFormat struct {
	ID   int
	Code string
}

func (n *NumberFormat) Empty() bool { return n.ID == 0 && n.Code == "" }

// Protection holds the cell-level locked/formula-hidden flags (distinct
// from Worksheet-level SheetProtection in sheet.go).
type Protection struct {
	Locked       bool
	HiddenFormula bool
}

func (p *Protection) Empty() bool { return !p.Locked && !p.HiddenFormula }

func (p *Protection) Equal(o *Protection) bool {
	return p.Locked == o.Locked && p.HiddenFormula == o.HiddenFormula
}

// XF (Extended Format) is the composite cell-format record: it references
// the four interned pools plus an alignment and protection record. A cell's
// style index points into the styles registry's xf pool.
type XF struct {
	Font         Font
	Fill         Fill
	Border       Border
	NumberFormat NumberFormat
	Alignment    Alignment
	Protection   Protection
}

// Empty returns true if the XF carries no custom formatting at all.
func (xf *XF) Empty() bool {
	return xf.Font.Empty() && xf.Fill.Empty() && xf.Border.Empty() &&
		xf.NumberFormat.Empty() && xf.Alignment.Empty() && xf.Protection.Empty()
}

// Equal performs the facet-by-facet structural comparison spec §4.4 and
// invariant 5 require.
func (xf *XF) Equal(o *XF) bool {
	return xf.Font.Equal(&o.Font) && xf.Fill.Equal(&o.Fill) && xf.Border.Equal(&o.Border) &&
		xf.NumberFormat.ID == o.NumberFormat.ID &&
		normalizeNumberFormatCode(xf.NumberFormat.Code) == normalizeNumberFormatCode(o.NumberFormat.Code) &&
		xf.Alignment.Equal(&o.Alignment) && xf.Protection.Equal(&o.Protection)
}
