package xl

import (
	"fmt"
	"strings"
)

// Workbook represents an Excel workbook containing one or more worksheets,
// a defined-names table, a shared-string table, and a styles registry
// (spec §3). The teacher's Workbook only held the sheet list; this adds
// the remaining model the spec requires while keeping CreateSheet/
// validateSheetName from the teacher near-verbatim.
type Workbook struct {
	AppName string
	Sheets  []*Sheet

	Date1904 bool

	ActiveSheetIndex int // 0-based index into Sheets

	SharedStrings *SharedStrings
	Styles        *StylesRegistry

	// CarryOver holds opaque parts (theme, pivot caches, drawings this
	// library did not author) found on load, keyed by their absolute part
	// path (spec §3 "Ownership"). The writers do not emit these parts, so
	// they are not present in a saved package.
	CarryOver map[string][]byte

	names    []DefinedName
	sheetMap map[string]*Sheet
}

// DefinedName is a named range, scoped either to the whole workbook or to
// one sheet (spec §3). Duplicate (name,scope) entries found during load are
// all retained in file order and all written back on save; Workbook.
// DefinedName resolves a name to the last matching entry (an Open Question
// resolved in DESIGN.md).
type DefinedName struct {
	Name      string
	SheetName string // "" for workbook scope
	RefersTo  string // A1-style range, e.g. "Sheet1!$A$1:$B$2"
	Hidden    bool
}

// NewWorkbook creates and initializes a new empty workbook.
func NewWorkbook() *Workbook {
	return &Workbook{
		SharedStrings: NewSharedStrings(),
		Styles:        NewStylesRegistry(),
		CarryOver:     map[string][]byte{},
		sheetMap:      map[string]*Sheet{},
	}
}

// CreateSheet adds a new worksheet to the workbook. Returns an error if a
// sheet with the same name (case-insensitively) already exists or the name
// is invalid.
func (wb *Workbook) CreateSheet(name string) (*Sheet, error) {
	key := strings.ToLower(name)
	if _, exists := wb.sheetMap[key]; exists {
		return nil, fmt.Errorf("%w: duplicate sheet name %q", ErrInvalidArgument, name)
	}
	if err := validateSheetName(name); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	sheet := newSheet(wb, name)
	wb.Sheets = append(wb.Sheets, sheet)
	wb.sheetMap[key] = sheet
	return sheet, nil
}

// RemoveSheet removes the sheet with the given name. Returns
// ErrInvalidArgument if no such sheet exists. The active-sheet index is
// clamped if it pointed past the removed sheet.
func (wb *Workbook) RemoveSheet(name string) error {
	key := strings.ToLower(name)
	sheet, ok := wb.sheetMap[key]
	if !ok {
		return fmt.Errorf("%w: no such sheet %q", ErrInvalidArgument, name)
	}
	delete(wb.sheetMap, key)
	for i, s := range wb.Sheets {
		if s == sheet {
			wb.Sheets = append(wb.Sheets[:i], wb.Sheets[i+1:]...)
			break
		}
	}
	if wb.ActiveSheetIndex >= len(wb.Sheets) {
		wb.ActiveSheetIndex = len(wb.Sheets) - 1
	}
	if wb.ActiveSheetIndex < 0 {
		wb.ActiveSheetIndex = 0
	}
	return nil
}

// SheetByName returns the sheet with the given name (case-insensitive) and
// true, or (nil, false) if none exists.
func (wb *Workbook) SheetByName(name string) (*Sheet, bool) {
	s, ok := wb.sheetMap[strings.ToLower(name)]
	return s, ok
}

// SheetNames returns sheet names in model order.
func (wb *Workbook) SheetNames() []string {
	out := make([]string, len(wb.Sheets))
	for i, s := range wb.Sheets {
		out[i] = s.Name
	}
	return out
}

// ActiveSheet returns the active sheet, or nil if the workbook has none.
func (wb *Workbook) ActiveSheet() *Sheet {
	if wb.ActiveSheetIndex < 0 || wb.ActiveSheetIndex >= len(wb.Sheets) {
		return nil
	}
	return wb.Sheets[wb.ActiveSheetIndex]
}

// SetActiveSheet sets the active sheet by name. Returns ErrInvalidArgument
// if no such sheet exists.
func (wb *Workbook) SetActiveSheet(name string) error {
	for i, s := range wb.Sheets {
		if strings.EqualFold(s.Name, name) {
			wb.ActiveSheetIndex = i
			return nil
		}
	}
	return fmt.Errorf("%w: no such sheet %q", ErrInvalidArgument, name)
}

// CreateNamedRange registers a defined name scoped to scope ("" for
// workbook scope, a sheet name otherwise). A duplicate (name,scope) pair
// replaces the previous entry (last-wins, matching Excel's own tolerance
// for malformed duplicate defined names on load). Returns
// ErrInvalidArgument if scope names a sheet that doesn't exist.
func (wb *Workbook) CreateNamedRange(name, scope, ref string) error {
	if scope != "" {
		if _, ok := wb.SheetByName(scope); !ok {
			return fmt.Errorf("%w: no such sheet %q", ErrInvalidArgument, scope)
		}
	}
	for i, dn := range wb.names {
		if strings.EqualFold(dn.Name, name) && strings.EqualFold(dn.SheetName, scope) {
			wb.names[i].RefersTo = ref
			return nil
		}
	}
	wb.names = append(wb.names, DefinedName{Name: name, SheetName: scope, RefersTo: ref})
	return nil
}

// DefinedNames returns all registered defined names.
func (wb *Workbook) DefinedNames() []DefinedName { return wb.names }

// DefinedName returns the last registered defined name matching name
// (case-insensitively, in any scope) and true, or false if there is none.
func (wb *Workbook) DefinedName(name string) (DefinedName, bool) {
	for i := len(wb.names) - 1; i >= 0; i-- {
		if strings.EqualFold(wb.names[i].Name, name) {
			return wb.names[i], true
		}
	}
	return DefinedName{}, false
}
