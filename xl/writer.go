package xl

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	srwxml "github.com/adnsv/srw/xml"
)

// Writer is the random-access write pipeline (spec §4.7): it walks a
// Workbook's model in full and emits every OOXML part in one pass. The
// teacher's Writer drove this off its own ad hoc xfs/fonts/sharedStrings
// slices; this version delegates interning to the Workbook's own
// SharedStrings/Styles registries so whatever the caller built during
// authoring is exactly what gets serialized, with ID/rel bookkeeping kept
// in the same shape the teacher used (GlobalRels/WorkbookRels/RichDataRels
// plus sequential rIds).
type Writer struct {
	out            Storage
	log            Logger
	lastGlobalId   int
	lastWorkbookId int
	lastRichDataId int

	GlobalRels   Rels
	WorkbookRels Rels
	RichDataRels Rels
	ContentTypes *ContentTypes

	media    []*MediaInfo
	mediaMap map[string]*MediaInfo // maps media name to media info

	sheetRels map[string]Rels // sheet part abspath -> its own .rels entries (hyperlinks, tables)

	nextTableID int
}

// MediaInfo contains embedded media file information (images).
type MediaInfo struct {
	Name string
	Blob []byte
	IId  int
	RId  string
}

// NewWriter creates a new Writer that will output to the specified storage.
func NewWriter(s Storage, opts ...WriteOptions) *Writer {
	var opt WriteOptions
	if len(opts) > 0 {
		opt = opts[0]
	}
	return &Writer{
		out:          s,
		log:          loggerOrNoop(opt.Logger),
		GlobalRels:   Rels{},
		WorkbookRels: Rels{},
		RichDataRels: Rels{},
		ContentTypes: NewContentTypes(),
		mediaMap:     map[string]*MediaInfo{},
		sheetRels:    map[string]Rels{},
	}
}

func (w *Writer) nextGlobalID() (int, string) {
	w.lastGlobalId++
	return w.lastGlobalId, fmt.Sprintf("rId%d", w.lastGlobalId)
}
func (w *Writer) nextWorkbookID() (int, string) {
	w.lastWorkbookId++
	return w.lastWorkbookId, fmt.Sprintf("rId%d", w.lastWorkbookId)
}
func (w *Writer) nextRichDataID() (int, string) {
	w.lastRichDataId++
	return w.lastRichDataId, fmt.Sprintf("rId%d", w.lastRichDataId)
}

// Write generates a complete Excel workbook file from wb, writing every
// part to the Writer's Storage.
func (w *Writer) Write(wb *Workbook) error {
	if wb.SharedStrings == nil {
		wb.SharedStrings = NewSharedStrings()
	}
	if wb.Styles == nil {
		wb.Styles = NewStylesRegistry()
	}
	w.log.Debugf("writing workbook: %d sheet(s)", len(wb.Sheets))

	if err := w.writeWorkbook(wb); err != nil {
		return err
	}

	if len(w.media) > 0 {
		if err := w.writeMedia(); err != nil {
			return err
		}
		if err := w.writeRichValueRel(); err != nil {
			return err
		}
		if err := w.writePartRels("/xl/richData/_rels/richValueRel.xml.rels", w.RichDataRels); err != nil {
			return err
		}
		if err := w.writeRichValueStructure(); err != nil {
			return err
		}
		if err := w.writeRichValueData(); err != nil {
			return err
		}
		if err := w.writeMetadata(); err != nil {
			return err
		}
	}

	if err := w.writeCoreProperties(); err != nil {
		return err
	}
	if err := w.writeExtendedProperties(wb.AppName); err != nil {
		return err
	}

	if wb.SharedStrings.Len() > 0 {
		abspath := "/xl/sharedStrings.xml"
		if err := w.writePart(abspath, wb.SharedStrings.WriteXML); err != nil {
			return err
		}
		_, rid := w.nextWorkbookID()
		w.WorkbookRels[rid] = RelInfo{Type: relTypeSharedStrings, Target: "sharedStrings.xml"}
		w.ContentTypes.Overrides[abspath] = "application/vnd.openxmlformats-officedocument.spreadsheetml.sharedStrings+xml"
	}

	{
		abspath := "/xl/styles.xml"
		if err := w.writePart(abspath, wb.Styles.WriteXML); err != nil {
			return err
		}
		_, rid := w.nextWorkbookID()
		w.WorkbookRels[rid] = RelInfo{Type: relTypeStyles, Target: "styles.xml"}
		w.ContentTypes.Overrides[abspath] = "application/vnd.openxmlformats-officedocument.spreadsheetml.styles+xml"
	}

	if err := enumerate(w.sheetRels, func(abspath string, rels Rels) error {
		if len(rels) == 0 {
			return nil
		}
		slash := strings.LastIndex(abspath, "/")
		relsPath := abspath[:slash] + "/_rels" + abspath[slash:] + ".rels"
		return w.writePartRels(relsPath, rels)
	}); err != nil {
		return err
	}

	if err := w.writePartRels("/xl/_rels/workbook.xml.rels", w.WorkbookRels); err != nil {
		return err
	}
	if err := w.writePartRels("/_rels/.rels", w.GlobalRels); err != nil {
		return err
	}
	return w.writePart("/[Content_Types].xml", w.ContentTypes.WriteXML)
}

func (w *Writer) writePart(abspath string, write func(io.Writer) error) error {
	bb := bytes.Buffer{}
	if err := write(&bb); err != nil {
		return err
	}
	return w.out.WriteBlob(abspath, bb.Bytes())
}

func (w *Writer) writePartRels(abspath string, rels Rels) error {
	return w.writePart(abspath, rels.WriteXML)
}

func (w *Writer) writeCoreProperties() error {
	_, rid := w.nextGlobalID()
	abspath := "/docProps/core.xml"
	w.ContentTypes.Overrides[abspath] = "application/vnd.openxmlformats-package.core-properties+xml"
	w.GlobalRels[rid] = RelInfo{Type: relTypeCoreProps, Target: "docProps/core.xml"}

	return w.writePart(abspath, func(iw io.Writer) error {
		x := srwxml.NewWriter(iw, srwxml.WriterConfig{Indent: srwxml.Indent2Spaces})
		x.XmlStandaloneDecl()
		x.OTag("cp:coreProperties")
		x.Attr("xmlns:cp", "http://schemas.openxmlformats.org/package/2006/metadata/core-properties")
		x.Attr("xmlns:dc", "http://purl.org/dc/elements/1.1/")
		x.Attr("xmlns:dcterms", "http://purl.org/dc/terms/")
		x.Attr("xmlns:dcmitype", "http://purl.org/dc/dcmitype/")
		x.Attr("xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance")

		x.OTag("+dcterms:created")
		x.Attr("xsi:type", "dcterms:W3CDTF")
		x.Write(time.Now().UTC().Format(time.RFC3339))
		x.CTag()

		x.CTag()
		return nil
	})
}

func (w *Writer) writeExtendedProperties(appname string) error {
	_, rid := w.nextGlobalID()
	abspath := "/docProps/app.xml"
	w.ContentTypes.Overrides[abspath] = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
	w.GlobalRels[rid] = RelInfo{Type: relTypeExtendedProps, Target: "docProps/app.xml"}

	return w.writePart(abspath, func(iw io.Writer) error {
		x := srwxml.NewWriter(iw, srwxml.WriterConfig{Indent: srwxml.Indent2Spaces})
		x.XmlStandaloneDecl()
		x.OTag("Properties")
		x.Attr("xmlns", "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties")
		x.Attr("xmlns:vt", "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes")
		if appname != "" {
			x.OTag("+Application").String(appname).CTag()
		}
		x.CTag()
		return nil
	})
}

func (w *Writer) writeWorkbook(wb *Workbook) error {
	_, rid := w.nextGlobalID()
	abspath := "/xl/workbook.xml"
	w.ContentTypes.Overrides[abspath] = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"
	w.GlobalRels[rid] = RelInfo{Type: relTypeOfficeDocument, Target: "xl/workbook.xml"}

	sheetRIDs := make([]string, len(wb.Sheets))

	err := w.writePart(abspath, func(iw io.Writer) error {
		x := srwxml.NewWriter(iw, srwxml.WriterConfig{Indent: srwxml.Indent2Spaces})
		x.XmlStandaloneDecl()
		x.OTag("workbook")
		x.Attr("xmlns", nsMain)
		x.Attr("xmlns:r", nsRelationships)

		x.OTag("+workbookPr")
		if wb.Date1904 {
			x.Attr("date1904", "true")
		}
		x.CTag()

		x.OTag("+bookViews")
		x.OTag("+workbookView").Attr("activeTab", wb.ActiveSheetIndex).CTag()
		x.CTag()

		x.OTag("+sheets")
		for i, sheet := range wb.Sheets {
			sheetID, sheetRID := w.nextWorkbookID()
			sheetRIDs[i] = sheetRID
			x.OTag("+sheet")
			x.Attr("name", sheet.Name)
			x.Attr("sheetId", sheetID)
			x.Attr("r:id", sheetRID)
			x.CTag()
		}
		x.CTag() // sheets

		if len(wb.names) > 0 {
			x.OTag("+definedNames")
			for _, dn := range wb.names {
				x.OTag("+definedName")
				x.Attr("name", dn.Name)
				if dn.SheetName != "" {
					if idx := indexOfSheet(wb, dn.SheetName); idx >= 0 {
						x.Attr("localSheetId", idx)
					}
				}
				if dn.Hidden {
					x.Attr("hidden", 1)
				}
				x.Write(dn.RefersTo)
				x.CTag()
			}
			x.CTag()
		}

		x.CTag() // workbook
		return nil
	})
	if err != nil {
		return err
	}

	for i, sheet := range wb.Sheets {
		if err := w.writeSheet(wb, sheet, sheetRIDs[i]); err != nil {
			return err
		}
	}
	return nil
}

func indexOfSheet(wb *Workbook, name string) int {
	for i, s := range wb.Sheets {
		if strings.EqualFold(s.Name, name) {
			return i
		}
	}
	return -1
}

func (w *Writer) writeSheet(wb *Workbook, sh *Sheet, rid string) error {
	relpath := "worksheets/sheet" + strings.TrimPrefix(rid, "rId") + ".xml"
	abspath := "/xl/" + relpath
	w.ContentTypes.Overrides[abspath] = "application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"
	w.WorkbookRels[rid] = RelInfo{Type: relTypeWorksheet, Target: relpath}

	sheetRels := Rels{}
	var tableRIDs []string

	err := w.writePart(abspath, func(iw io.Writer) error {
		x := srwxml.NewWriter(iw, srwxml.WriterConfig{Indent: srwxml.Indent2Spaces})
		x.XmlStandaloneDecl()
		x.OTag("worksheet")
		x.Attr("xmlns", nsMain)
		x.Attr("xmlns:r", nsRelationships)

		if len(sh.Columns) > 0 {
			x.OTag("+cols")
			err := enumerate(sh.Columns, func(n int, v *Column) error {
				x.OTag("+col").Attr("min", n).Attr("max", n)
				if v.Width > 0 {
					x.Attr("width", v.Width).Attr("customWidth", 1)
				}
				if v.Hidden {
					x.Attr("hidden", 1)
				}
				x.CTag()
				return nil
			})
			if err != nil {
				return err
			}
			x.CTag()
		}

		x.OTag("+sheetData")
		for row, cells := range sh.Cells.Rows() {
			x.OTag("+row").Attr("r", row)
			for col, cell := range cells {
				if cell.isBlankForWrite() {
					continue
				}
				x.OTag("+c").Attr("r", CellCoordAsString(col, row))

				if !cell.XF.Empty() {
					x.Attr("s", wb.Styles.InternXF(cell.XF))
				}

				switch {
				case cell.IsFormula():
					x.OTag("f").Write(cell.Formula).CTag()
					if cell.FormulaCached != "" {
						x.OTag("v").Write(cell.FormulaCached).CTag()
					}
				case cell.Picture() != nil:
					if err := w.writeCellPicture(x, cell.Picture()); err != nil {
						return err
					}
					x.OTag("v").Write("#VALUE!").CTag()
				default:
					switch cell.Value.Kind {
					case ValueBool:
						x.Attr("t", "b")
						x.OTag("v").Write(boolAttr(cell.Value.Bool)).CTag()
					case ValueNumber:
						x.OTag("v").Write(formatNumber(cell.Value.Num)).CTag()
					case ValueError:
						x.Attr("t", "e")
						x.OTag("v").Write(cell.Value.Str).CTag()
					case ValueString:
						x.Attr("t", "s")
						x.OTag("v").Write(wb.SharedStrings.Intern(cell.Value.Str)).CTag()
					case ValueInlineString:
						x.Attr("t", "inlineStr")
						x.OTag("is")
						x.OTag("t").Write(cell.Value.Str).CTag()
						x.CTag()
					}
				}

				x.CTag() // c
			}
			x.CTag() // row
		}
		x.CTag() // sheetData

		if len(sh.merges) > 0 {
			x.OTag("+mergeCells").Attr("count", len(sh.merges))
			for _, m := range sh.merges {
				x.OTag("+mergeCell").Attr("ref", m.ref).CTag()
			}
			x.CTag()
		}

		if len(sh.Validations) > 0 {
			x.OTag("+dataValidations").Attr("count", len(sh.Validations))
			for _, v := range sh.Validations {
				x.OTag("+dataValidation")
				x.Attr("type", v.Type)
				if v.Operator != "" {
					x.Attr("operator", v.Operator)
				}
				x.Attr("allowBlank", boolAttr(v.AllowBlank))
				x.Attr("showInputMessage", boolAttr(v.ShowInput))
				x.Attr("showErrorMessage", boolAttr(v.ShowError))
				if v.ErrorStyle != "" {
					x.Attr("errorStyle", v.ErrorStyle)
				}
				if v.ErrorTitle != "" {
					x.Attr("errorTitle", v.ErrorTitle)
				}
				if v.ErrorMsg != "" {
					x.Attr("error", v.ErrorMsg)
				}
				if v.PromptTitle != "" {
					x.Attr("promptTitle", v.PromptTitle)
				}
				if v.Prompt != "" {
					x.Attr("prompt", v.Prompt)
				}
				x.Attr("sqref", v.Sqref)
				if v.Formula1 != "" {
					x.OTag("formula1").Write(v.Formula1).CTag()
				}
				if v.Formula2 != "" {
					x.OTag("formula2").Write(v.Formula2).CTag()
				}
				x.CTag()
			}
			x.CTag()
		}

		if sh.AutoFilter != "" {
			x.OTag("+autoFilter").Attr("ref", sh.AutoFilter).CTag()
		}

		if len(sh.Hyperlinks) > 0 {
			x.OTag("+hyperlinks")
			for _, coord := range sortedKeys(sh.Hyperlinks) {
				hl := sh.Hyperlinks[coord]
				x.OTag("+hyperlink").Attr("ref", coord)
				if hl.TargetMode == HyperlinkExternal {
					_, hrid := w.nextWorkbookID()
					sheetRels[hrid] = RelInfo{Type: relTypeHyperlink, Target: hl.Target}
					x.Attr("r:id", hrid)
				} else {
					x.Attr("location", hl.Target)
				}
				if hl.Tooltip != "" {
					x.Attr("tooltip", hl.Tooltip)
				}
				if hl.Display != "" {
					x.Attr("display", hl.Display)
				}
				x.CTag()
			}
			x.CTag()
		}

		if sh.Protection.Enabled {
			x.OTag("+sheetProtection")
			writeProtectionAttrs(x, sh.Protection)
			x.CTag()
		}

		for _, cf := range sh.ConditionalFormats {
			x.OTag("+conditionalFormatting").Attr("sqref", cf.Sqref)
			if len(cf.Rules) > 0 {
				if _, err := iw.Write(cf.Rules); err != nil {
					return err
				}
			}
			x.CTag()
		}

		if len(sh.Tables) > 0 {
			for i := range sh.Tables {
				relID, err := w.writeTable(&sh.Tables[i])
				if err != nil {
					return err
				}
				sheetRels[relID.rid] = RelInfo{Type: relTypeTable, Target: relID.target}
				tableRIDs = append(tableRIDs, relID.rid)
			}
			x.OTag("+tableParts").Attr("count", len(tableRIDs))
			for _, tr := range tableRIDs {
				x.OTag("+tablePart").Attr("r:id", tr).CTag()
			}
			x.CTag()
		}

		x.CTag() // worksheet
		return nil
	})
	if err != nil {
		return err
	}

	if len(sheetRels) > 0 {
		w.sheetRels[abspath] = sheetRels
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

type tableRelID struct {
	rid    string
	target string
}

// writeTable emits one xl/tables/tableN.xml part for t and returns the
// relationship id the caller registers in the owning sheet's .rels part.
func (w *Writer) writeTable(t *Table) (tableRelID, error) {
	w.nextTableID++
	id := w.nextTableID
	relpath := fmt.Sprintf("tables/table%d.xml", id)
	abspath := "/xl/" + relpath
	w.ContentTypes.Overrides[abspath] = "application/vnd.openxmlformats-officedocument.spreadsheetml.table+xml"

	err := w.writePart(abspath, func(iw io.Writer) error {
		x := srwxml.NewWriter(iw, srwxml.WriterConfig{Indent: srwxml.Indent2Spaces})
		x.XmlStandaloneDecl()
		x.OTag("table")
		x.Attr("xmlns", nsMain)
		x.Attr("id", id)
		x.Attr("name", t.Name)
		displayName := t.DisplayName
		if displayName == "" {
			displayName = t.Name
		}
		x.Attr("displayName", displayName)
		x.Attr("ref", t.Ref)
		x.Attr("headerRowCount", t.HeaderRowCount)
		if t.TotalsRowCount > 0 {
			x.Attr("totalsRowCount", t.TotalsRowCount)
		}

		x.OTag("+autoFilter").Attr("ref", t.Ref).CTag()

		x.OTag("+tableColumns").Attr("count", len(t.Columns))
		for _, c := range t.Columns {
			x.OTag("+tableColumn").Attr("id", c.ID).Attr("name", c.Name).CTag()
		}
		x.CTag()

		if t.StyleName != "" {
			x.OTag("+tableStyleInfo").Attr("name", t.StyleName).Attr("showRowStripes", 1).CTag()
		}

		x.CTag() // table
		return nil
	})
	if err != nil {
		return tableRelID{}, err
	}
	_, rid := w.nextWorkbookID()
	return tableRelID{rid: rid, target: "../" + relpath}, nil
}

func (w *Writer) writeCellPicture(x *srwxml.Writer, p *PictureInfo) error {
	ext := strings.ToLower(p.Extension)
	if ext == ".jpg" {
		ext = ".jpeg"
	}
	switch ext {
	case ".jpeg":
		w.ContentTypes.Defaults["jpeg"] = "image/jpeg"
	case ".png":
		w.ContentTypes.Defaults["png"] = "image/png"
	default:
		return fmt.Errorf("%w: unsupported image extension %s", ErrUnsupportedFeature, ext)
	}
	if len(p.Blob) == 0 {
		return errors.New("xl: empty picture data")
	}
	n := fmt.Sprintf("%.16x%s", BlobHash(p.Blob), ext)
	info, ok := w.mediaMap[n]
	if !ok {
		_, rid := w.nextRichDataID()
		info = &MediaInfo{Name: n, Blob: p.Blob, IId: len(w.media), RId: rid}
		w.mediaMap[n] = info
		w.media = append(w.media, info)
	}
	x.Attr("t", "e").Attr("vm", info.IId+1)
	return nil
}

func writeProtectionAttrs(x *srwxml.Writer, p SheetProtection) {
	x.Attr("sheet", boolAttr(true))
	if p.Objects {
		x.Attr("objects", boolAttr(p.Objects))
	}
	if p.Scenarios {
		x.Attr("scenarios", boolAttr(p.Scenarios))
	}
	if !p.FormatCells {
		x.Attr("formatCells", boolAttr(p.FormatCells))
	}
	if !p.FormatColumns {
		x.Attr("formatColumns", boolAttr(p.FormatColumns))
	}
	if !p.FormatRows {
		x.Attr("formatRows", boolAttr(p.FormatRows))
	}
	if p.InsertColumns {
		x.Attr("insertColumns", boolAttr(p.InsertColumns))
	}
	if p.InsertRows {
		x.Attr("insertRows", boolAttr(p.InsertRows))
	}
	if p.InsertHyperlinks {
		x.Attr("insertHyperlinks", boolAttr(p.InsertHyperlinks))
	}
	if p.DeleteColumns {
		x.Attr("deleteColumns", boolAttr(p.DeleteColumns))
	}
	if p.DeleteRows {
		x.Attr("deleteRows", boolAttr(p.DeleteRows))
	}
	if !p.SelectLockedCells {
		x.Attr("selectLockedCells", boolAttr(p.SelectLockedCells))
	}
	if !p.SelectUnlockedCells {
		x.Attr("selectUnlockedCells", boolAttr(p.SelectUnlockedCells))
	}
	if p.Sort {
		x.Attr("sort", boolAttr(p.Sort))
	}
	if p.AutoFilter {
		x.Attr("autoFilter", boolAttr(p.AutoFilter))
	}
	if p.PivotTables {
		x.Attr("pivotTables", boolAttr(p.PivotTables))
	}
	if p.LegacyPasswordHash != "" {
		x.Attr("password", p.LegacyPasswordHash)
	}
	if p.HashValue != "" {
		x.Attr("hashValue", p.HashValue)
	}
	if p.SaltValue != "" {
		x.Attr("saltValue", p.SaltValue)
	}
	if p.SpinCount != 0 {
		x.Attr("spinCount", p.SpinCount)
	}
}

func (w *Writer) writeMedia() error {
	for _, m := range w.media {
		if err := w.out.WriteBlob("/xl/media/"+m.Name, m.Blob); err != nil {
			return err
		}
		w.RichDataRels[m.RId] = RelInfo{Type: relTypeImage, Target: "../media/" + m.Name}
	}
	return nil
}

func (w *Writer) writeMetadata() error {
	_, rid := w.nextWorkbookID()
	abspath := "/xl/metadata.xml"
	w.ContentTypes.Overrides[abspath] = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheetMetadata+xml"
	w.WorkbookRels[rid] = RelInfo{Type: nsRelationships + "/sheetMetadata", Target: "metadata.xml"}

	return w.writePart(abspath, func(iw io.Writer) error {
		x := srwxml.NewWriter(iw, srwxml.WriterConfig{Indent: srwxml.Indent2Spaces})
		x.XmlStandaloneDecl()
		x.OTag("metadata")
		x.Attr("xmlns", nsMain)
		x.Attr("xmlns:xlrd", "http://schemas.microsoft.com/office/spreadsheetml/2017/richdata")

		x.OTag("+metadataTypes").Attr("count", 1)
		x.OTag("+metadataType")
		x.Attr("name", "XLRICHVALUE")
		x.Attr("minSupportedVersion", "120000")
		for _, s := range []srwxml.NameString{"copy", "pasteAll", "pasteValues",
			"merge", "splitFirst", "rowColShift", "clearFormats",
			"clearComments", "assign", "coerce"} {
			x.Attr(s, 1)
		}
		x.CTag() // metadataType
		x.CTag() // metadataTypes

		x.OTag("futureMetadata").Attr("name", "XLRICHVALUE").Attr("count", len(w.media))
		for _, m := range w.media {
			x.OTag("+bk")
			x.OTag("extLst")
			x.OTag("ext").Attr("uri", "{3e2802c4-a4d2-4d8b-9148-e3be6c30e623}")
			x.OTag("xlrd:rvb").Attr("i", m.IId).CTag()
			x.CTag() // ext
			x.CTag() // extLst
			x.CTag() // bk
		}
		x.CTag() // futureMetadata

		x.OTag("valueMetadata").Attr("count", len(w.media))
		for _, m := range w.media {
			x.OTag("+bk")
			x.OTag("rc").Attr("t", 1).Attr("v", m.IId).CTag()
			x.CTag() // bk
		}
		x.CTag() // valueMetadata

		x.CTag() // metadata
		return nil
	})
}

func (w *Writer) writeRichValueRel() error {
	_, rid := w.nextWorkbookID()
	abspath := "/xl/richData/richValueRel.xml"
	w.ContentTypes.Overrides[abspath] = "application/vnd.ms-excel.richvaluerel+xml"
	w.WorkbookRels[rid] = RelInfo{Type: "http://schemas.microsoft.com/office/2022/10/relationships/richValueRel", Target: "richData/richValueRel.xml"}

	return w.writePart(abspath, func(iw io.Writer) error {
		x := srwxml.NewWriter(iw, srwxml.WriterConfig{Indent: srwxml.Indent2Spaces})
		x.XmlStandaloneDecl()
		x.OTag("richValueRels")
		x.Attr("xmlns", "http://schemas.microsoft.com/office/spreadsheetml/2022/richvaluerel")
		x.Attr("xmlns:r", nsRelationships)
		for _, m := range w.media {
			x.OTag("+rel").Attr("r:id", m.RId).CTag()
		}
		x.CTag()
		return nil
	})
}

func (w *Writer) writeRichValueStructure() error {
	_, rid := w.nextWorkbookID()
	abspath := "/xl/richData/rdrichvaluestructure.xml"
	w.ContentTypes.Overrides[abspath] = "application/vnd.ms-excel.rdrichvaluestructure+xml"
	w.WorkbookRels[rid] = RelInfo{Type: "http://schemas.microsoft.com/office/2017/06/relationships/rdRichValueStructure", Target: "richData/rdrichvaluestructure.xml"}

	return w.writePart(abspath, func(iw io.Writer) error {
		x := srwxml.NewWriter(iw, srwxml.WriterConfig{Indent: srwxml.Indent2Spaces})
		x.XmlStandaloneDecl()
		x.OTag("rvStructures")
		x.Attr("xmlns", "http://schemas.microsoft.com/office/spreadsheetml/2017/richdata")
		x.Attr("count", 1)
		x.OTag("+s").Attr("t", "_localImage")
		x.OTag("+k").Attr("n", "_rvRel:LocalImageIdentifier").Attr("t", "i").CTag()
		x.OTag("+k").Attr("n", "CalcOrigin").Attr("t", "i").CTag()
		x.CTag()
		x.CTag()
		return nil
	})
}

func (w *Writer) writeRichValueData() error {
	_, rid := w.nextWorkbookID()
	abspath := "/xl/richData/rdrichvalue.xml"
	w.ContentTypes.Overrides[abspath] = "application/vnd.ms-excel.rdrichvalue+xml"
	w.WorkbookRels[rid] = RelInfo{Type: "http://schemas.microsoft.com/office/2017/06/relationships/rdRichValue", Target: "richData/rdrichvalue.xml"}

	return w.writePart(abspath, func(iw io.Writer) error {
		x := srwxml.NewWriter(iw, srwxml.WriterConfig{Indent: srwxml.Indent2Spaces})
		x.XmlStandaloneDecl()
		x.OTag("rvData")
		x.Attr("xmlns", "http://schemas.microsoft.com/office/spreadsheetml/2017/richdata")
		x.Attr("count", len(w.media))
		for _, m := range w.media {
			x.OTag("+rv").Attr("s", 0)
			x.OTag("v").Write(m.IId).CTag()
			x.OTag("v").Write(5).CTag()
			x.CTag()
		}
		x.CTag()
		return nil
	})
}
