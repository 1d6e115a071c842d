package xl

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Sheet is a single worksheet: a cell store plus the auxiliary records spec
// §4.6 lists (columns, merges, validations, hyperlinks, comments,
// protection, autofilter, tables, conditional formatting). The teacher's
// Sheet held an append-only []*Row; this replaces that with a CellStore so
// random point access and out-of-order loading both work.
type Sheet struct {
	Name string
	id   uuid.UUID // random identifier minted by newSheet; never written to the file

	Cells   *CellStore
	Columns map[int]*Column // 1-based column index -> properties

	merges []mergeRect

	Validations []DataValidation
	Hyperlinks  map[string]Hyperlink // cell coord ("A1") -> link
	Comments    map[string]Comment   // cell coord -> comment

	Protection SheetProtection
	AutoFilter string // A1-style range, "" if none
	Tables     []Table

	ConditionalFormats []ConditionalFormatRule

	workbook *Workbook
}

// Column represents column-level properties.
type Column struct {
	Width  float32
	Hidden bool
}

// DataValidation is a verbatim-preserved validation rule. Fields mirror
// ECMA-376's dataValidation element and are never semantically enforced by
// this library (spec §4.6).
type DataValidation struct {
	Sqref       string
	Type        string
	Operator    string
	Formula1    string
	Formula2    string
	ErrorStyle  string
	ErrorTitle  string
	ErrorMsg    string
	PromptTitle string
	Prompt      string
	AllowBlank  bool
	ShowInput   bool
	ShowError   bool
}

// HyperlinkTargetMode distinguishes an external URL from an internal
// same-workbook reference.
type HyperlinkTargetMode int8

const (
	HyperlinkExternal HyperlinkTargetMode = iota
	HyperlinkInternal
)

// Hyperlink is a per-cell link record.
type Hyperlink struct {
	Target     string
	TargetMode HyperlinkTargetMode
	Tooltip    string
	Display    string
}

// Comment is a per-cell author/text note.
type Comment struct {
	Author string
	Text   string
}

// SheetProtection mirrors ECMA-376 part 1 §18.3.1.85's sheetProtection
// element: a set of independently-toggleable restriction flags plus an
// optional password hash.
type SheetProtection struct {
	Enabled bool

	Objects            bool
	Scenarios          bool
	FormatCells        bool
	FormatColumns      bool
	FormatRows         bool
	InsertColumns      bool
	InsertRows         bool
	InsertHyperlinks   bool
	DeleteColumns      bool
	DeleteRows         bool
	SelectLockedCells  bool
	SelectUnlockedCells bool
	Sort               bool
	AutoFilter         bool
	PivotTables        bool

	// LegacyPasswordHash is the 16-bit Excel legacy hash (hex, uppercase),
	// preserved verbatim if loaded from a file with one. Modern hashValue/
	// saltValue/spinCount hashes are preserved as opaque strings too, since
	// this library never needs to verify a password, only round-trip it.
	LegacyPasswordHash string
	HashValue          string
	SaltValue          string
	SpinCount          int
}

// SetLegacyPassword computes and stores the 16-bit Excel legacy password
// hash for plaintext password pw, per the algorithm documented in
// ECMA-376 part 1 §18.2.29 (kept as a small bit-shift routine rather than a
// dependency — see DESIGN.md).
func (p *SheetProtection) SetLegacyPassword(pw string) {
	p.LegacyPasswordHash = legacyPasswordHash(pw)
}

func legacyPasswordHash(pw string) string {
	if pw == "" {
		return ""
	}
	var hash uint16
	chars := []byte(pw)
	for i := len(chars) - 1; i >= 0; i-- {
		hash = ((hash >> 14) & 0x01) | ((hash << 1) & 0x7fff)
		hash ^= uint16(chars[i])
	}
	hash = ((hash >> 14) & 0x01) | ((hash << 1) & 0x7fff)
	hash ^= uint16(len(chars))
	hash ^= 0xCE4B
	return toHex4(hash)
}

func toHex4(v uint16) string {
	const digits = "0123456789ABCDEF"
	return string([]byte{
		digits[(v>>12)&0xF],
		digits[(v>>8)&0xF],
		digits[(v>>4)&0xF],
		digits[v&0xF],
	})
}

// Table is a ListObject: a named, styled range with header/totals rows.
type Table struct {
	Name           string
	DisplayName    string
	Ref            string
	HeaderRowCount int
	TotalsRowCount int
	StyleName      string
	Columns        []TableColumn
}

// TableColumn is one column definition within a Table.
type TableColumn struct {
	ID   int
	Name string
}

// ConditionalFormatRule is a verbatim-preserved conditional-formatting rule
// group for one sqref range.
type ConditionalFormatRule struct {
	Sqref string
	Rules []byte // raw inner <cfRule>... XML, re-emitted verbatim on write
}

// mergeRect is a parsed merge range kept alongside its original ref string
// so overlap checks are O(1) per candidate instead of re-parsing every
// existing range on every call (the teacher's validateMergeRange did the
// latter; see DESIGN.md).
type mergeRect struct {
	ref                                string
	minCol, minRow, maxCol, maxRow int
}

func (r mergeRect) overlaps(o mergeRect) bool {
	return !(r.maxCol < o.minCol || r.minCol > o.maxCol ||
		r.maxRow < o.minRow || r.minRow > o.maxRow)
}

// newSheet constructs an empty worksheet owned by wb.
func newSheet(wb *Workbook, name string) *Sheet {
	return &Sheet{
		Name:     name,
		id:       uuid.New(),
		Cells:    NewCellStore(),
		Columns:  map[int]*Column{},
		workbook: wb,
	}
}

// ID returns the worksheet's identifier, minted when the Sheet value is
// created. It is not stored in the file, so a reloaded sheet gets a new one.
func (s *Sheet) ID() uuid.UUID { return s.id }

// validateSheetName checks Excel's worksheet naming rules (spec §3): 1-31
// characters, no leading/trailing single quote, none of : \ / ? * [ ].
func validateSheetName(s string) error {
	n := utf8.RuneCountInString(s)
	if n == 0 {
		return errors.New("empty sheet name is not allowed")
	} else if n > 31 {
		return errors.New("the sheet name is too long")
	}
	if strings.HasPrefix(s, "'") || strings.HasSuffix(s, "'") {
		return errors.New("the first or last character of the sheet name can not be a single quote")
	}
	if strings.ContainsAny(s, ":\\/?*[]") {
		return errors.New("the sheet can not contain any of the characters :\\/?*[]")
	}
	return nil
}

// Cell returns the cell at (row,col) (1-based), creating it if absent.
func (s *Sheet) Cell(row, col int) *Cell {
	if c := s.Cells.Get(row, col); c != nil {
		return c
	}
	c := &Cell{}
	s.Cells.Put(row, col, c)
	return c
}

// SetColumnWidth sets the width of a column (1-based). Width <= 0 removes
// any custom width.
func (s *Sheet) SetColumnWidth(colNumber int, w float32) {
	if colNumber <= 0 {
		return
	}
	if w <= 0 {
		if c, ok := s.Columns[colNumber]; ok {
			c.Width = 0
		}
		return
	}
	c, exists := s.Columns[colNumber]
	if !exists {
		c = &Column{}
		s.Columns[colNumber] = c
	}
	c.Width = w
}

// Merge merges the range described by an A1-style ref like "A1:B2".
// Rejects ranges that overlap an existing merge or span fewer than 2 cells.
func (s *Sheet) Merge(ref string) error {
	sc, sr, ec, er, err := ParseRangeRef(ref)
	if err != nil {
		return err
	}
	return s.MergeRange(sc, sr, ec, er)
}

// MergeRange merges the rectangle (startCol,startRow)-(endCol,endRow), 1-based.
func (s *Sheet) MergeRange(startCol, startRow, endCol, endRow int) error {
	if startCol > endCol {
		startCol, endCol = endCol, startCol
	}
	if startRow > endRow {
		startRow, endRow = endRow, startRow
	}
	if startCol == endCol && startRow == endRow {
		return fmt.Errorf("%w: merge range must span at least 2 cells", ErrInvalidMerge)
	}
	candidate := mergeRect{minCol: startCol, minRow: startRow, maxCol: endCol, maxRow: endRow}
	for _, m := range s.merges {
		if candidate.overlaps(m) {
			return fmt.Errorf("%w: merge range overlaps with existing merged cells", ErrInvalidMerge)
		}
	}
	candidate.ref = CellCoordAsString(startCol, startRow) + ":" + CellCoordAsString(endCol, endRow)
	s.merges = append(s.merges, candidate)
	return nil
}

// Unmerge removes the merge exactly matching ref, if present.
func (s *Sheet) Unmerge(ref string) bool {
	for i, m := range s.merges {
		if m.ref == ref {
			s.merges = append(s.merges[:i], s.merges[i+1:]...)
			return true
		}
	}
	return false
}

// MergedRanges returns the current merge refs in insertion order.
func (s *Sheet) MergedRanges() []string {
	out := make([]string, len(s.merges))
	for i, m := range s.merges {
		out[i] = m.ref
	}
	return out
}

