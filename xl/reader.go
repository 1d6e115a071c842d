package xl

import (
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
)

// Load opens an .xlsx file from disk and parses it into a *Workbook.
// Grounded on dockit/oxml.go's staged readFile/getWorkbookSheets/
// getWorksheets/getWorksheetData pipeline, adapted to populate the richer
// model (styles, shared strings, merges, validations, hyperlinks, tables)
// dockit's minimal row/cell reader never needed.
func Load(filename string, opts ...ReadOptions) (*Workbook, error) {
	c, err := OpenFile(filename)
	if err != nil {
		return nil, err
	}
	return loadWorkbook(c, firstReadOptions(opts))
}

// LoadBytes parses an .xlsx package already held in memory.
func LoadBytes(data []byte, opts ...ReadOptions) (*Workbook, error) {
	c, err := OpenBytes(data)
	if err != nil {
		return nil, err
	}
	return loadWorkbook(c, firstReadOptions(opts))
}

// LoadReaderAt parses an .xlsx package from any io.ReaderAt of known size.
func LoadReaderAt(r io.ReaderAt, size int64, opts ...ReadOptions) (*Workbook, error) {
	c, err := OpenReaderAt(r, size)
	if err != nil {
		return nil, err
	}
	return loadWorkbook(c, firstReadOptions(opts))
}

func firstReadOptions(opts []ReadOptions) ReadOptions {
	if len(opts) == 0 {
		return ReadOptions{}
	}
	return opts[0]
}

// resolvePartPath resolves a relationship Target (relative or absolute)
// against the part that declared it, returning an absolute path with a
// leading "/" matching Container's indexing convention.
func resolvePartPath(basePart, target string) string {
	if strings.HasPrefix(target, "/") {
		return path.Clean(target)
	}
	return path.Clean(path.Dir(basePart) + "/" + target)
}

// relsPathFor returns the _rels/*.rels sibling part for partPath, e.g.
// "/xl/worksheets/sheet1.xml" -> "/xl/worksheets/_rels/sheet1.xml.rels".
func relsPathFor(partPath string) string {
	return path.Join(path.Dir(partPath), "_rels", path.Base(partPath)+".rels")
}

// loadRels parses the rels part for partPath if present, returning an empty
// Rels (not an error) when the package omits it, since not every part has one.
func loadRels(c *Container, partPath string) (Rels, error) {
	abspath := relsPathFor(partPath)
	if !c.HasPart(abspath) {
		return Rels{}, nil
	}
	data, err := c.Part(abspath)
	if err != nil {
		return nil, err
	}
	return ParseRelsXML(data)
}

type xmlWorkbookDoc struct {
	WorkbookPr struct {
		Date1904 bool `xml:"date1904,attr"`
	} `xml:"workbookPr"`
	BookViews struct {
		WorkbookView []struct {
			ActiveTab int `xml:"activeTab,attr"`
		} `xml:"workbookView"`
	} `xml:"bookViews"`
	Sheets struct {
		Sheet []struct {
			Name    string `xml:"name,attr"`
			SheetID int    `xml:"sheetId,attr"`
			RID     string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
		} `xml:"sheet"`
	} `xml:"sheets"`
	DefinedNames struct {
		DefinedName []struct {
			Name         string `xml:"name,attr"`
			LocalSheetID *int   `xml:"localSheetId,attr"`
			Hidden       bool   `xml:"hidden,attr"`
			RefersTo     string `xml:",chardata"`
		} `xml:"definedName"`
	} `xml:"definedNames"`
}

type xmlCell struct {
	R  string      `xml:"r,attr"`
	S  int         `xml:"s,attr"`
	T  string      `xml:"t,attr"`
	F  *xmlFormula `xml:"f"`
	V  string      `xml:"v"`
	Is *struct {
		T string `xml:"t"`
	} `xml:"is"`
}

type xmlFormula struct {
	Text string `xml:",chardata"`
	T    string `xml:"t,attr"`
	Ref  string `xml:"ref,attr"`
	Si   *int   `xml:"si,attr"`
}

type xmlRow struct {
	R int       `xml:"r,attr"`
	C []xmlCell `xml:"c"`
}

type xmlHyperlink struct {
	Ref      string `xml:"ref,attr"`
	RID      string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	Location string `xml:"location,attr"`
	Tooltip  string `xml:"tooltip,attr"`
	Display  string `xml:"display,attr"`
}

type xmlDataValidation struct {
	Sqref            string `xml:"sqref,attr"`
	Type             string `xml:"type,attr"`
	Operator         string `xml:"operator,attr"`
	AllowBlank       bool   `xml:"allowBlank,attr"`
	ShowInputMessage bool   `xml:"showInputMessage,attr"`
	ShowErrorMessage bool   `xml:"showErrorMessage,attr"`
	ErrorStyle       string `xml:"errorStyle,attr"`
	ErrorTitle       string `xml:"errorTitle,attr"`
	Error            string `xml:"error,attr"`
	PromptTitle      string `xml:"promptTitle,attr"`
	Prompt           string `xml:"prompt,attr"`
	Formula1         string `xml:"formula1"`
	Formula2         string `xml:"formula2"`
}

type xmlConditionalFormatting struct {
	Sqref string `xml:"sqref,attr"`
	Inner []byte `xml:",innerxml"`
}

type xmlSheetProtection struct {
	Objects             bool   `xml:"objects,attr"`
	Scenarios           bool   `xml:"scenarios,attr"`
	FormatCells         bool   `xml:"formatCells,attr"`
	FormatColumns       bool   `xml:"formatColumns,attr"`
	FormatRows          bool   `xml:"formatRows,attr"`
	InsertColumns       bool   `xml:"insertColumns,attr"`
	InsertRows          bool   `xml:"insertRows,attr"`
	InsertHyperlinks    bool   `xml:"insertHyperlinks,attr"`
	DeleteColumns       bool   `xml:"deleteColumns,attr"`
	DeleteRows          bool   `xml:"deleteRows,attr"`
	SelectLockedCells   bool   `xml:"selectLockedCells,attr"`
	SelectUnlockedCells bool   `xml:"selectUnlockedCells,attr"`
	Sort                bool   `xml:"sort,attr"`
	AutoFilter          bool   `xml:"autoFilter,attr"`
	PivotTables         bool   `xml:"pivotTables,attr"`
	Password            string `xml:"password,attr"`
	HashValue           string `xml:"hashValue,attr"`
	SaltValue           string `xml:"saltValue,attr"`
	SpinCount           int    `xml:"spinCount,attr"`
}

type xmlWorksheetDoc struct {
	Cols struct {
		Col []struct {
			Min    int     `xml:"min,attr"`
			Max    int     `xml:"max,attr"`
			Width  float32 `xml:"width,attr"`
			Hidden bool    `xml:"hidden,attr"`
		} `xml:"col"`
	} `xml:"cols"`
	SheetData struct {
		Row []xmlRow `xml:"row"`
	} `xml:"sheetData"`
	MergeCells struct {
		MergeCell []struct {
			Ref string `xml:"ref,attr"`
		} `xml:"mergeCell"`
	} `xml:"mergeCells"`
	SheetProtection       *xmlSheetProtection        `xml:"sheetProtection"`
	AutoFilter            *struct {
		Ref string `xml:"ref,attr"`
	} `xml:"autoFilter"`
	DataValidations struct {
		DataValidation []xmlDataValidation `xml:"dataValidation"`
	} `xml:"dataValidations"`
	Hyperlinks struct {
		Hyperlink []xmlHyperlink `xml:"hyperlink"`
	} `xml:"hyperlinks"`
	ConditionalFormatting []xmlConditionalFormatting `xml:"conditionalFormatting"`
	TableParts             struct {
		TablePart []struct {
			RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
		} `xml:"tablePart"`
	} `xml:"tableParts"`
}

type xmlTableDoc struct {
	Name           string `xml:"name,attr"`
	DisplayName    string `xml:"displayName,attr"`
	Ref            string `xml:"ref,attr"`
	HeaderRowCount *int   `xml:"headerRowCount,attr"`
	TotalsRowCount int    `xml:"totalsRowCount,attr"`
	TableStyleInfo *struct {
		Name string `xml:"name,attr"`
	} `xml:"tableStyleInfo"`
	TableColumns struct {
		TableColumn []struct {
			ID   int    `xml:"id,attr"`
			Name string `xml:"name,attr"`
		} `xml:"tableColumn"`
	} `xml:"tableColumns"`
}

// loadWorkbook parses every part reachable from the root relationship and
// builds a complete *Workbook. Per spec §4.9, a failure at any stage returns
// a nil workbook — no partially-populated value is ever handed back to the
// caller.
func loadWorkbook(c *Container, opts ReadOptions) (*Workbook, error) {
	log := loggerOrNoop(opts.Logger)
	rootRels, err := loadRels(c, "/_rels/.rels")
	if err != nil {
		return nil, err
	}
	var wbPartPath string
	for _, info := range rootRels {
		if info.Type == relTypeOfficeDocument {
			wbPartPath = resolvePartPath("/", info.Target)
			break
		}
	}
	if wbPartPath == "" {
		return nil, fmt.Errorf("%w: no officeDocument relationship in root .rels", ErrCorruptContainer)
	}
	log.Debugf("loading workbook part %s", wbPartPath)

	wbData, err := c.Part(wbPartPath)
	if err != nil {
		return nil, err
	}
	var wbDoc xmlWorkbookDoc
	if err := xml.Unmarshal(wbData, &wbDoc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedXML, wbPartPath, err)
	}

	wbRels, err := loadRels(c, wbPartPath)
	if err != nil {
		return nil, err
	}

	wb := &Workbook{
		Date1904:      wbDoc.WorkbookPr.Date1904,
		SharedStrings: NewSharedStrings(),
		Styles:        NewStylesRegistry(),
		CarryOver:     map[string][]byte{},
		sheetMap:      map[string]*Sheet{},
	}
	if len(wbDoc.BookViews.WorkbookView) > 0 {
		wb.ActiveSheetIndex = wbDoc.BookViews.WorkbookView[0].ActiveTab
	}

	consumed := map[string]bool{wbPartPath: true, relsPathFor(wbPartPath): true, "/_rels/.rels": true, "/[Content_Types].xml": true}
	for _, info := range rootRels {
		if info.Type == relTypeCoreProps || info.Type == relTypeExtendedProps {
			consumed[resolvePartPath("/", info.Target)] = true
		}
	}

	var stylesPartPath, sstPartPath string
	for _, info := range wbRels {
		target := resolvePartPath(wbPartPath, info.Target)
		switch info.Type {
		case relTypeStyles:
			stylesPartPath = target
		case relTypeSharedStrings:
			sstPartPath = target
		}
	}

	if stylesPartPath != "" && c.HasPart(stylesPartPath) {
		data, err := c.Part(stylesPartPath)
		if err != nil {
			return nil, err
		}
		wb.Styles, err = ParseStylesXML(data)
		if err != nil {
			return nil, err
		}
		consumed[stylesPartPath] = true
	}

	if sstPartPath != "" && c.HasPart(sstPartPath) {
		data, err := c.Part(sstPartPath)
		if err != nil {
			return nil, err
		}
		wb.SharedStrings, err = parseSharedStrings(data)
		if err != nil {
			return nil, err
		}
		consumed[sstPartPath] = true
	}

	for _, xs := range wbDoc.Sheets.Sheet {
		info, ok := wbRels[xs.RID]
		if !ok {
			return nil, fmt.Errorf("%w: sheet %q references unknown relationship id %q", ErrCorruptContainer, xs.Name, xs.RID)
		}
		sheetPartPath := resolvePartPath(wbPartPath, info.Target)
		data, err := c.Part(sheetPartPath)
		if err != nil {
			return nil, err
		}
		log.Debugf("loading sheet %q from %s", xs.Name, sheetPartPath)
		sh, consumedExtra, err := loadSheet(c, wb, xs.Name, sheetPartPath, data, opts)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", xs.Name, err)
		}
		wb.Sheets = append(wb.Sheets, sh)
		wb.sheetMap[strings.ToLower(xs.Name)] = sh
		consumed[sheetPartPath] = true
		consumed[relsPathFor(sheetPartPath)] = true
		for p := range consumedExtra {
			consumed[p] = true
		}
	}

	for _, dn := range wbDoc.DefinedNames.DefinedName {
		sheetName := ""
		if dn.LocalSheetID != nil && *dn.LocalSheetID >= 0 && *dn.LocalSheetID < len(wb.Sheets) {
			sheetName = wb.Sheets[*dn.LocalSheetID].Name
		}
		wb.names = append(wb.names, DefinedName{
			Name:      dn.Name,
			SheetName: sheetName,
			RefersTo:  strings.TrimSpace(dn.RefersTo),
			Hidden:    dn.Hidden,
		})
	}

	for _, p := range c.PartPaths() {
		if !consumed[p] {
			data, err := c.Part(p)
			if err != nil {
				return nil, err
			}
			wb.CarryOver[p] = data
		}
	}

	return wb, nil
}

// loadSheet parses one worksheet part plus its auxiliary rels (hyperlinks,
// tables). consumedExtra collects every part path this sheet's own parsing
// consumed (its .rels file, table parts) so loadWorkbook doesn't carry them
// over a second time.
func loadSheet(c *Container, wb *Workbook, name, partPath string, data []byte, opts ReadOptions) (*Sheet, map[string]bool, error) {
	var doc xmlWorksheetDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedXML, err)
	}

	sh := newSheet(wb, name)
	consumedExtra := map[string]bool{}

	sheetRels, err := loadRels(c, partPath)
	if err != nil {
		return nil, nil, err
	}
	if len(sheetRels) > 0 {
		consumedExtra[relsPathFor(partPath)] = true
	}

	for _, xc := range doc.Cols.Col {
		for col := xc.Min; col <= xc.Max && col > 0; col++ {
			if xc.Width > 0 || xc.Hidden {
				sh.Columns[col] = &Column{Width: xc.Width, Hidden: xc.Hidden}
			}
		}
	}

	sharedFormulas := map[int]struct {
		originRef string
		formula   string
	}{}

	prevRow := 0
	for _, xr := range doc.SheetData.Row {
		rowNum := xr.R
		if rowNum <= 0 {
			rowNum = prevRow + 1
		}
		prevRow = rowNum
		nextCol := 1
		for _, xcell := range xr.C {
			if xcell.R == "" {
				xcell.R = CellCoordAsString(nextCol, rowNum)
			}
			cell, err := decodeCell(xcell, wb, sharedFormulas, opts)
			if err != nil {
				return nil, nil, err
			}
			sh.Cells.Put(cell.Row, cell.Col, cell)
			nextCol = cell.Col + 1
		}
	}

	for _, m := range doc.MergeCells.MergeCell {
		sc, sr, ec, er, err := ParseRangeRef(m.Ref)
		if err != nil {
			return nil, nil, fmt.Errorf("mergeCell %q: %w", m.Ref, err)
		}
		sh.merges = append(sh.merges, mergeRect{
			ref: m.Ref, minCol: sc, minRow: sr, maxCol: ec, maxRow: er,
		})
	}

	for _, dv := range doc.DataValidations.DataValidation {
		sh.Validations = append(sh.Validations, DataValidation{
			Sqref:       dv.Sqref,
			Type:        dv.Type,
			Operator:    dv.Operator,
			Formula1:    dv.Formula1,
			Formula2:    dv.Formula2,
			ErrorStyle:  dv.ErrorStyle,
			ErrorTitle:  dv.ErrorTitle,
			ErrorMsg:    dv.Error,
			PromptTitle: dv.PromptTitle,
			Prompt:      dv.Prompt,
			AllowBlank:  dv.AllowBlank,
			ShowInput:   dv.ShowInputMessage,
			ShowError:   dv.ShowErrorMessage,
		})
	}

	if doc.AutoFilter != nil {
		sh.AutoFilter = doc.AutoFilter.Ref
	}

	if doc.SheetProtection != nil {
		p := doc.SheetProtection
		sh.Protection = SheetProtection{
			Enabled:             true,
			Objects:             p.Objects,
			Scenarios:           p.Scenarios,
			FormatCells:         p.FormatCells,
			FormatColumns:       p.FormatColumns,
			FormatRows:          p.FormatRows,
			InsertColumns:       p.InsertColumns,
			InsertRows:          p.InsertRows,
			InsertHyperlinks:    p.InsertHyperlinks,
			DeleteColumns:       p.DeleteColumns,
			DeleteRows:          p.DeleteRows,
			SelectLockedCells:   p.SelectLockedCells,
			SelectUnlockedCells: p.SelectUnlockedCells,
			Sort:                p.Sort,
			AutoFilter:          p.AutoFilter,
			PivotTables:         p.PivotTables,
			LegacyPasswordHash:  p.Password,
			HashValue:           p.HashValue,
			SaltValue:           p.SaltValue,
			SpinCount:           p.SpinCount,
		}
	}

	for _, cf := range doc.ConditionalFormatting {
		sh.ConditionalFormats = append(sh.ConditionalFormats, ConditionalFormatRule{
			Sqref: cf.Sqref,
			Rules: cf.Inner,
		})
	}

	if len(doc.Hyperlinks.Hyperlink) > 0 {
		sh.Hyperlinks = map[string]Hyperlink{}
		for _, hl := range doc.Hyperlinks.Hyperlink {
			link := Hyperlink{Tooltip: hl.Tooltip, Display: hl.Display}
			if hl.RID != "" {
				info, ok := sheetRels[hl.RID]
				if !ok {
					return nil, nil, fmt.Errorf("%w: hyperlink references unknown relationship id %q", ErrCorruptContainer, hl.RID)
				}
				link.Target = info.Target
				link.TargetMode = HyperlinkExternal
			} else {
				link.Target = hl.Location
				link.TargetMode = HyperlinkInternal
			}
			sh.Hyperlinks[hl.Ref] = link
		}
	}

	for _, tp := range doc.TableParts.TablePart {
		info, ok := sheetRels[tp.RID]
		if !ok {
			return nil, nil, fmt.Errorf("%w: tablePart references unknown relationship id %q", ErrCorruptContainer, tp.RID)
		}
		tablePartPath := resolvePartPath(partPath, info.Target)
		tableData, err := c.Part(tablePartPath)
		if err != nil {
			return nil, nil, err
		}
		var tdoc xmlTableDoc
		if err := xml.Unmarshal(tableData, &tdoc); err != nil {
			return nil, nil, fmt.Errorf("%w: %s: %v", ErrMalformedXML, tablePartPath, err)
		}
		t := Table{
			Name:           tdoc.Name,
			DisplayName:    tdoc.DisplayName,
			Ref:            tdoc.Ref,
			TotalsRowCount: tdoc.TotalsRowCount,
		}
		if tdoc.HeaderRowCount != nil {
			t.HeaderRowCount = *tdoc.HeaderRowCount
		} else {
			t.HeaderRowCount = 1
		}
		if tdoc.TableStyleInfo != nil {
			t.StyleName = tdoc.TableStyleInfo.Name
		}
		for _, tc := range tdoc.TableColumns.TableColumn {
			t.Columns = append(t.Columns, TableColumn{ID: tc.ID, Name: tc.Name})
		}
		sh.Tables = append(sh.Tables, t)
		consumedExtra[tablePartPath] = true
	}

	return sh, consumedExtra, nil
}

// decodeCell builds one *Cell from its XML representation, resolving shared
// strings and expanding shared-formula group membership via ShiftFormula.
func decodeCell(xc xmlCell, wb *Workbook, sharedFormulas map[int]struct {
	originRef string
	formula   string
}, opts ReadOptions) (*Cell, error) {
	col, row, err := ParseCellRef(xc.R)
	if err != nil {
		return nil, fmt.Errorf("cell %q: %w", xc.R, err)
	}
	c := &Cell{Row: row, Col: col}
	if xc.S != 0 {
		c.XF = wb.Styles.XF(xc.S)
	}

	if xc.F != nil {
		switch xc.F.T {
		case "shared":
			if xc.F.Si == nil {
				return nil, fmt.Errorf("%w: shared formula cell %q missing si attribute", ErrMalformedXML, xc.R)
			}
			if xc.F.Text != "" {
				sharedFormulas[*xc.F.Si] = struct {
					originRef string
					formula   string
				}{originRef: xc.R, formula: xc.F.Text}
				c.Formula = xc.F.Text
			} else {
				grp, ok := sharedFormulas[*xc.F.Si]
				if !ok {
					if opts.Lenient {
						c.FormulaCached = xc.V
						return c, nil
					}
					return nil, fmt.Errorf("%w: shared formula group %d referenced before its master cell", ErrMalformedXML, *xc.F.Si)
				}
				shifted, err := ShiftFormula(grp.formula, grp.originRef, xc.R)
				if err != nil {
					if opts.Lenient {
						c.FormulaCached = xc.V
						return c, nil
					}
					return nil, err
				}
				c.Formula = shifted
			}
		default:
			c.Formula = xc.F.Text
		}
		c.FormulaCached = xc.V
		return c, nil
	}

	switch xc.T {
	case "", "n":
		if xc.V != "" {
			n, err := strconv.ParseFloat(xc.V, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: cell %q numeric value %q: %v", ErrMalformedXML, xc.R, xc.V, err)
			}
			c.Value = NumberValue(n)
		}
	case "s":
		idx, err := strconv.Atoi(xc.V)
		if err != nil {
			return nil, fmt.Errorf("%w: cell %q shared-string index %q: %v", ErrMalformedXML, xc.R, xc.V, err)
		}
		s, ok := wb.SharedStrings.Get(idx)
		if !ok {
			if opts.Lenient {
				c.Value = StringValue("")
				return c, nil
			}
			return nil, fmt.Errorf("%w: cell %q shared-string index %d out of range", ErrMalformedXML, xc.R, idx)
		}
		c.Value = StringValue(s)
	case "b":
		c.Value = BoolValue(xc.V == "1" || xc.V == "true")
	case "str":
		c.Value = StringValue(xc.V)
	case "e":
		c.Value = ErrorValue(xc.V)
	case "inlineStr":
		if xc.Is != nil {
			c.Value = InlineStringValue(xc.Is.T)
		}
	default:
		return nil, fmt.Errorf("%w: cell %q has unknown type %q", ErrMalformedXML, xc.R, xc.T)
	}
	return c, nil
}
