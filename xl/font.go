package xl

// Font represents font formatting properties for cell content.
// These properties correspond to the OpenXML font element as defined in ECMA-376.
type Font struct {
	Name          string        // Typeface name ("" = inherit Calibri default)
	Size          float64       // Font size in points (0 = use default of 11)
	Bold          bool          // Bold text
	Italic        bool          // Italic text
	Underline     UnderlineType // Underline style
	Strikethrough bool          // Strikethrough text
	VertAlign     VertAlignType // Superscript/subscript
	Color         Color         // Text color
}

// VertAlignType is the ST_VerticalAlignRun value for run-level super/subscript.
type VertAlignType string

const (
	VertAlignNone         VertAlignType = ""
	VertAlignSuperscript  VertAlignType = "superscript"
	VertAlignSubscript    VertAlignType = "subscript"
	VertAlignBaseline     VertAlignType = "baseline"
)

// UnderlineType represents the type of underline formatting.
type UnderlineType string

// Underline type constants as defined in ECMA-376 (ST_UnderlineValues).
const (
	UnderlineNone              UnderlineType = ""                    // No underline (default)
	UnderlineSingle            UnderlineType = "single"              // Single underline
	UnderlineDouble            UnderlineType = "double"              // Double underline
	UnderlineSingleAccounting  UnderlineType = "singleAccounting"   // Single accounting underline
	UnderlineDoubleAccounting  UnderlineType = "doubleAccounting"   // Double accounting underline
)

// IsDefault returns true if the font uses all default properties.
func (f *Font) IsDefault() bool {
	return f.Name == "" && f.Size == 0 && !f.Bold && !f.Italic &&
		f.Underline == UnderlineNone && !f.Strikethrough &&
		f.VertAlign == VertAlignNone && f.Color.Empty()
}

// Equal reports facet-by-facet equality, the structural-equality rule the
// styles registry's intern pools use to dedupe fonts on write.
func (f *Font) Equal(o *Font) bool {
	return f.Name == o.Name && f.Size == o.Size && f.Bold == o.Bold &&
		f.Italic == o.Italic && f.Underline == o.Underline &&
		f.Strikethrough == o.Strikethrough && f.VertAlign == o.VertAlign &&
		f.Color.Equal(o.Color)
}

// Empty returns true if the font has no custom properties set.
// This is an alias for IsDefault for consistency with other Empty() methods.
func (f *Font) Empty() bool {
	return f.IsDefault()
}
