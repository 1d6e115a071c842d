package xl

import (
	"encoding/xml"
	"fmt"
	"io"

	srwxml "github.com/adnsv/srw/xml"
)

// StylesRegistry holds the four interned style-component pools (fonts,
// fills, borders, number formats) plus the composite xf pool that
// references them, described by spec §3/§4.4. The teacher's Writer kept
// only two flat pools (fonts, xfs) with fills/borders hardcoded to a single
// default entry; this generalizes that to all four, using the same
// structural-equality linear scan (FindXF/FindFont) the teacher used.
type StylesRegistry struct {
	fonts   []Font
	fills   []Fill
	borders []Border
	numFmts []NumberFormat // custom formats only, ID >= 164
	xfs     []XF

	nextCustomNumFmtID int
}

// NewStylesRegistry returns a registry seeded with the default entries
// every styles.xml must carry at index 0: default font, no-fill, no-border,
// and the default (all-zero) xf.
func NewStylesRegistry() *StylesRegistry {
	return &StylesRegistry{
		fonts:              []Font{{}},
		fills:              []Fill{{}, {PatternType: PatternGray125}},
		borders:            []Border{{}},
		xfs:                []XF{{}},
		nextCustomNumFmtID: 164,
	}
}

// InternFont returns f's index in the font pool, adding it if not already
// present (structural equality via Font.Equal).
func (r *StylesRegistry) InternFont(f Font) int {
	for i := range r.fonts {
		if r.fonts[i].Equal(&f) {
			return i
		}
	}
	r.fonts = append(r.fonts, f)
	return len(r.fonts) - 1
}

// InternFill returns f's index in the fill pool, adding it if not already present.
func (r *StylesRegistry) InternFill(f Fill) int {
	for i := range r.fills {
		if r.fills[i].Equal(&f) {
			return i
		}
	}
	r.fills = append(r.fills, f)
	return len(r.fills) - 1
}

// InternBorder returns b's index in the border pool, adding it if not already present.
func (r *StylesRegistry) InternBorder(b Border) int {
	for i := range r.borders {
		if r.borders[i].Equal(&b) {
			return i
		}
	}
	r.borders = append(r.borders, b)
	return len(r.borders) - 1
}

// InternNumberFormat resolves nf to a numFmtId: built-in IDs (0-163) pass
// through unchanged when nf.Code matches the canonical built-in string (or
// is empty); otherwise nf.Code is interned as a custom format starting at
// ID 164, per ECMA-376 §18.8.30.
func (r *StylesRegistry) InternNumberFormat(nf NumberFormat) int {
	if nf.Code == "" {
		return nf.ID
	}
	if builtin, ok := builtInNumFmtCode(nf.ID); ok && builtin == nf.Code {
		return nf.ID
	}
	for i := range r.numFmts {
		if normalizeNumberFormatCode(r.numFmts[i].Code) == normalizeNumberFormatCode(nf.Code) {
			return r.numFmts[i].ID
		}
	}
	id := r.nextCustomNumFmtID
	r.nextCustomNumFmtID++
	r.numFmts = append(r.numFmts, NumberFormat{ID: id, Code: nf.Code})
	return id
}

// InternXF interns all of xf's components and returns the composite xf
// pool index (0 is always the default/no-formatting entry).
func (r *StylesRegistry) InternXF(xf XF) int {
	if xf.Empty() {
		return 0
	}
	for i := range r.xfs {
		if r.xfs[i].Equal(&xf) {
			return i
		}
	}
	r.fontIdx(xf.Font)
	r.fillIdx(xf.Fill)
	r.borderIdx(xf.Border)
	r.InternNumberFormat(xf.NumberFormat)
	r.xfs = append(r.xfs, xf)
	return len(r.xfs) - 1
}

func (r *StylesRegistry) fontIdx(f Font) int   { return r.InternFont(f) }
func (r *StylesRegistry) fillIdx(f Fill) int   { return r.InternFill(f) }
func (r *StylesRegistry) borderIdx(b Border) int { return r.InternBorder(b) }

// XF returns the interned XF at composite index i, or the zero XF if out of range.
func (r *StylesRegistry) XF(i int) XF {
	if i < 0 || i >= len(r.xfs) {
		return XF{}
	}
	return r.xfs[i]
}

// Len returns the number of composite xf entries, including the default at index 0.
func (r *StylesRegistry) Len() int { return len(r.xfs) }

// WriteXML emits the styles.xml part for all interned pools.
func (r *StylesRegistry) WriteXML(w io.Writer) error {
	x := srwxml.NewWriter(w, srwxml.WriterConfig{Indent: srwxml.Indent2Spaces})
	x.XmlStandaloneDecl()
	x.OTag("styleSheet")
	x.Attr("xmlns", nsMain)

	if len(r.numFmts) > 0 {
		x.OTag("+numFmts").Attr("count", len(r.numFmts))
		for _, nf := range r.numFmts {
			x.OTag("+numFmt").Attr("numFmtId", nf.ID).Attr("formatCode", nf.Code).CTag()
		}
		x.CTag()
	}

	x.OTag("+fonts").Attr("count", len(r.fonts))
	for _, f := range r.fonts {
		writeFontXML(x, f)
	}
	x.CTag()

	x.OTag("+fills").Attr("count", len(r.fills))
	for _, f := range r.fills {
		writeFillXML(x, f)
	}
	x.CTag()

	x.OTag("+borders").Attr("count", len(r.borders))
	for _, b := range r.borders {
		writeBorderXML(x, b)
	}
	x.CTag()

	x.OTag("+cellStyleXfs").Attr("count", 1)
	x.OTag("+xf").Attr("numFmtId", 0).Attr("fontId", 0).Attr("fillId", 0).Attr("borderId", 0).CTag()
	x.CTag()

	x.OTag("+cellXfs").Attr("count", len(r.xfs))
	for _, xf := range r.xfs {
		writeXFXML(x, r, xf)
	}
	x.CTag()

	x.CTag() // styleSheet
	return nil
}

func writeFontXML(x *srwxml.Writer, f Font) {
	x.OTag("+font")
	if f.Bold {
		x.OTag("b").CTag()
	}
	if f.Italic {
		x.OTag("i").CTag()
	}
	if f.Strikethrough {
		x.OTag("strike").CTag()
	}
	if f.Underline != UnderlineNone {
		if f.Underline == UnderlineSingle {
			x.OTag("u").CTag()
		} else {
			x.OTag("u").Attr("val", string(f.Underline)).CTag()
		}
	}
	if f.VertAlign != VertAlignNone {
		x.OTag("vertAlign").Attr("val", string(f.VertAlign)).CTag()
	}
	size := f.Size
	if size == 0 {
		size = 11
	}
	x.OTag("sz").Attr("val", size).CTag()
	if !f.Color.Empty() {
		writeColorXML(x, "color", f.Color)
	}
	name := f.Name
	if name == "" {
		name = "Calibri"
	}
	x.OTag("name").Attr("val", name).CTag()
	x.OTag("family").Attr("val", 2).CTag()
	x.CTag()
}

func writeColorXML(x *srwxml.Writer, tag string, c Color) {
	x.OTag("+" + tag)
	switch c.Kind {
	case ColorRGB:
		x.Attr("rgb", c.RGB)
	case ColorTheme:
		x.Attr("theme", c.ThemeIndex)
		if c.Tint != 0 {
			x.Attr("tint", c.Tint)
		}
	}
	x.CTag()
}

func writeFillXML(x *srwxml.Writer, f Fill) {
	x.OTag("+fill")
	x.OTag("+patternFill")
	pt := f.PatternType
	if pt == "" {
		pt = PatternNone
	}
	x.Attr("patternType", string(patternOrNone(pt)))
	if !f.FgColor.Empty() {
		writeColorXML(x, "fgColor", f.FgColor)
	}
	if !f.BgColor.Empty() {
		writeColorXML(x, "bgColor", f.BgColor)
	}
	x.CTag()
	x.CTag()
}

func patternOrNone(p FillPattern) FillPattern {
	if p == "" {
		return "none"
	}
	return p
}

func writeBorderXML(x *srwxml.Writer, b Border) {
	x.OTag("+border")
	if b.DiagonalUp {
		x.Attr("diagonalUp", 1)
	}
	if b.DiagonalDown {
		x.Attr("diagonalDown", 1)
	}
	writeBorderLineXML(x, "left", b.Left)
	writeBorderLineXML(x, "right", b.Right)
	writeBorderLineXML(x, "top", b.Top)
	writeBorderLineXML(x, "bottom", b.Bottom)
	writeBorderLineXML(x, "diagonal", b.Diagonal)
	x.CTag()
}

func writeBorderLineXML(x *srwxml.Writer, tag string, l BorderLine) {
	if l.Empty() {
		x.OTag("+" + tag).CTag()
		return
	}
	x.OTag("+" + tag).Attr("style", string(l.Style))
	writeColorXML(x, "color", l.Color)
	x.CTag()
}

func writeXFXML(x *srwxml.Writer, r *StylesRegistry, xf XF) {
	x.OTag("+xf")
	x.Attr("numFmtId", r.InternNumberFormat(xf.NumberFormat))
	x.Attr("fontId", r.fontIdx(xf.Font))
	x.Attr("fillId", r.fillIdx(xf.Fill))
	x.Attr("borderId", r.borderIdx(xf.Border))
	x.Attr("xfId", 0)
	if !xf.Font.Empty() {
		x.Attr("applyFont", 1)
	}
	if !xf.Fill.Empty() {
		x.Attr("applyFill", 1)
	}
	if !xf.Border.Empty() {
		x.Attr("applyBorder", 1)
	}
	if !xf.NumberFormat.Empty() {
		x.Attr("applyNumberFormat", 1)
	}
	if !xf.Alignment.Empty() {
		x.Attr("applyAlignment", 1)
	}
	if !xf.Protection.Empty() {
		x.Attr("applyProtection", 1)
	}
	if !xf.Alignment.Empty() {
		x.OTag("+alignment")
		if xf.Alignment.Horizontal != "" {
			x.Attr("horizontal", string(xf.Alignment.Horizontal))
		}
		if xf.Alignment.Vertical != "" {
			x.Attr("vertical", string(xf.Alignment.Vertical))
		}
		if xf.Alignment.WrapText {
			x.Attr("wrapText", 1)
		}
		if xf.Alignment.TextRotation != 0 {
			x.Attr("textRotation", xf.Alignment.TextRotation)
		}
		if xf.Alignment.Indent != 0 {
			x.Attr("indent", xf.Alignment.Indent)
		}
		x.CTag()
	}
	if !xf.Protection.Empty() {
		x.OTag("+protection")
		x.Attr("locked", boolAttr(xf.Protection.Locked))
		x.Attr("hidden", boolAttr(xf.Protection.HiddenFormula))
		x.CTag()
	}
	x.CTag()
}

func boolAttr(b bool) int {
	if b {
		return 1
	}
	return 0
}

// xmlStylesDoc is the decode target for parsing styles.xml on read.
type xmlStylesDoc struct {
	NumFmts struct {
		NumFmt []struct {
			ID   int    `xml:"numFmtId,attr"`
			Code string `xml:"formatCode,attr"`
		} `xml:"numFmt"`
	} `xml:"numFmts"`
	Fonts struct {
		Font []xmlFont `xml:"font"`
	} `xml:"fonts"`
	Fills struct {
		Fill []xmlFill `xml:"fill"`
	} `xml:"fills"`
	Borders struct {
		Border []xmlBorder `xml:"border"`
	} `xml:"borders"`
	CellXfs struct {
		Xf []xmlXF `xml:"xf"`
	} `xml:"cellXfs"`
}

type xmlColor struct {
	RGB   string  `xml:"rgb,attr"`
	Theme *int    `xml:"theme,attr"`
	Tint  float64 `xml:"tint,attr"`
}

func (c *xmlColor) toColor() Color {
	if c == nil {
		return Color{}
	}
	if c.Theme != nil {
		return ThemeColor(*c.Theme, c.Tint)
	}
	if c.RGB != "" {
		return RGBColor(c.RGB)
	}
	return Color{}
}

type xmlFont struct {
	B         *struct{} `xml:"b"`
	I         *struct{} `xml:"i"`
	Strike    *struct{} `xml:"strike"`
	U         *struct {
		Val string `xml:"val,attr"`
	} `xml:"u"`
	VertAlign *struct {
		Val string `xml:"val,attr"`
	} `xml:"vertAlign"`
	Sz struct {
		Val float64 `xml:"val,attr"`
	} `xml:"sz"`
	Color *xmlColor `xml:"color"`
	Name  struct {
		Val string `xml:"val,attr"`
	} `xml:"name"`
}

func (f xmlFont) toFont() Font {
	out := Font{Name: f.Name.Val, Size: f.Sz.Val}
	out.Bold = f.B != nil
	out.Italic = f.I != nil
	out.Strikethrough = f.Strike != nil
	if f.U != nil {
		if f.U.Val == "" {
			out.Underline = UnderlineSingle
		} else {
			out.Underline = UnderlineType(f.U.Val)
		}
	}
	if f.VertAlign != nil {
		out.VertAlign = VertAlignType(f.VertAlign.Val)
	}
	out.Color = f.Color.toColor()
	return out
}

type xmlFill struct {
	PatternFill struct {
		PatternType string    `xml:"patternType,attr"`
		FgColor     *xmlColor `xml:"fgColor"`
		BgColor     *xmlColor `xml:"bgColor"`
	} `xml:"patternFill"`
}

func (f xmlFill) toFill() Fill {
	pt := FillPattern(f.PatternFill.PatternType)
	if pt == "none" {
		pt = PatternNone
	}
	return Fill{
		PatternType: pt,
		FgColor:     f.PatternFill.FgColor.toColor(),
		BgColor:     f.PatternFill.BgColor.toColor(),
	}
}

type xmlBorderLine struct {
	Style string    `xml:"style,attr"`
	Color *xmlColor `xml:"color"`
}

func (l xmlBorderLine) toBorderLine() BorderLine {
	return BorderLine{Style: BorderLineStyle(l.Style), Color: l.Color.toColor()}
}

type xmlBorder struct {
	DiagonalUp   bool          `xml:"diagonalUp,attr"`
	DiagonalDown bool          `xml:"diagonalDown,attr"`
	Left         xmlBorderLine `xml:"left"`
	Right        xmlBorderLine `xml:"right"`
	Top          xmlBorderLine `xml:"top"`
	Bottom       xmlBorderLine `xml:"bottom"`
	Diagonal     xmlBorderLine `xml:"diagonal"`
}

func (b xmlBorder) toBorder() Border {
	return Border{
		Left: b.Left.toBorderLine(), Right: b.Right.toBorderLine(),
		Top: b.Top.toBorderLine(), Bottom: b.Bottom.toBorderLine(),
		Diagonal:     b.Diagonal.toBorderLine(),
		DiagonalUp:   b.DiagonalUp,
		DiagonalDown: b.DiagonalDown,
	}
}

type xmlXF struct {
	NumFmtID  int    `xml:"numFmtId,attr"`
	FontID    int    `xml:"fontId,attr"`
	FillID    int    `xml:"fillId,attr"`
	BorderID  int    `xml:"borderId,attr"`
	Alignment *struct {
		Horizontal   string  `xml:"horizontal,attr"`
		Vertical     string  `xml:"vertical,attr"`
		WrapText     bool    `xml:"wrapText,attr"`
		TextRotation int     `xml:"textRotation,attr"`
		Indent       int     `xml:"indent,attr"`
	} `xml:"alignment"`
	Protection *struct {
		Locked bool `xml:"locked,attr"`
		Hidden bool `xml:"hidden,attr"`
	} `xml:"protection"`
}

// ParseStylesXML parses an xl/styles.xml part into a StylesRegistry whose
// pool indices mirror the file (so style indices referenced by cells
// resolve directly via XF(i)).
func ParseStylesXML(data []byte) (*StylesRegistry, error) {
	var doc xmlStylesDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: styles.xml: %v", ErrMalformedXML, err)
	}

	r := &StylesRegistry{nextCustomNumFmtID: 164}

	customByID := map[int]string{}
	for _, nf := range doc.NumFmts.NumFmt {
		customByID[nf.ID] = nf.Code
		r.numFmts = append(r.numFmts, NumberFormat{ID: nf.ID, Code: nf.Code})
		if nf.ID >= r.nextCustomNumFmtID {
			r.nextCustomNumFmtID = nf.ID + 1
		}
	}

	for _, f := range doc.Fonts.Font {
		r.fonts = append(r.fonts, f.toFont())
	}
	for _, f := range doc.Fills.Fill {
		r.fills = append(r.fills, f.toFill())
	}
	for _, b := range doc.Borders.Border {
		r.borders = append(r.borders, b.toBorder())
	}

	for _, xf := range doc.CellXfs.Xf {
		out := XF{}
		if xf.FontID >= 0 && xf.FontID < len(r.fonts) {
			out.Font = r.fonts[xf.FontID]
		}
		if xf.FillID >= 0 && xf.FillID < len(r.fills) {
			out.Fill = r.fills[xf.FillID]
		}
		if xf.BorderID >= 0 && xf.BorderID < len(r.borders) {
			out.Border = r.borders[xf.BorderID]
		}
		if code, ok := customByID[xf.NumFmtID]; ok {
			out.NumberFormat = NumberFormat{ID: xf.NumFmtID, Code: code}
		} else if code, ok := builtInNumFmtCode(xf.NumFmtID); ok {
			out.NumberFormat = NumberFormat{ID: xf.NumFmtID, Code: code}
		} else {
			out.NumberFormat = NumberFormat{ID: xf.NumFmtID}
		}
		if xf.Alignment != nil {
			out.Alignment = Alignment{
				Horizontal:   HorizontalAlignment(xf.Alignment.Horizontal),
				Vertical:     VerticalAlignment(xf.Alignment.Vertical),
				WrapText:     xf.Alignment.WrapText,
				TextRotation: xf.Alignment.TextRotation,
				Indent:       xf.Alignment.Indent,
			}
		}
		if xf.Protection != nil {
			out.Protection = Protection{Locked: xf.Protection.Locked, HiddenFormula: xf.Protection.Hidden}
		}
		r.xfs = append(r.xfs, out)
	}
	if len(r.xfs) == 0 {
		r.xfs = []XF{{}}
	}
	return r, nil
}

