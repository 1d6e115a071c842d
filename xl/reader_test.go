package xl

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildMinimalPackage assembles the smallest container loadWorkbook accepts:
// root rels, workbook.xml, workbook rels, and one worksheet part.
func buildMinimalPackage(t *testing.T, sheetXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zs := NewZipStorage(&buf)

	rootRels := Rels{"rId1": RelInfo{Type: relTypeOfficeDocument, Target: "xl/workbook.xml"}}
	var rootBuf bytes.Buffer
	require.NoError(t, rootRels.WriteXML(&rootBuf))
	require.NoError(t, zs.WriteBlob("/_rels/.rels", rootBuf.Bytes()))

	wbXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<workbook xmlns="` + nsMain + `" xmlns:r="` + nsRelationships + `">
  <sheets>
    <sheet name="Sheet1" sheetId="1" r:id="rId1"/>
  </sheets>
</workbook>`
	require.NoError(t, zs.WriteBlob("/xl/workbook.xml", []byte(wbXML)))

	wbRels := Rels{"rId1": RelInfo{Type: relTypeWorksheet, Target: "worksheets/sheet1.xml"}}
	var wbRelsBuf bytes.Buffer
	require.NoError(t, wbRels.WriteXML(&wbRelsBuf))
	require.NoError(t, zs.WriteBlob("/xl/_rels/workbook.xml.rels", wbRelsBuf.Bytes()))

	require.NoError(t, zs.WriteBlob("/xl/worksheets/sheet1.xml", []byte(sheetXML)))
	require.NoError(t, zs.Close())
	return buf.Bytes()
}

func TestLoadStrictRejectsOutOfRangeSharedString(t *testing.T) {
	data := buildMinimalPackage(t, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="`+nsMain+`">
  <sheetData>
    <row r="1"><c r="A1" t="s"><v>0</v></c></row>
  </sheetData>
</worksheet>`)

	_, err := LoadBytes(data)
	require.ErrorIs(t, err, ErrMalformedXML)
}

func TestLoadLenientDegradesOutOfRangeSharedString(t *testing.T) {
	data := buildMinimalPackage(t, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="`+nsMain+`">
  <sheetData>
    <row r="1"><c r="A1" t="s"><v>0</v></c></row>
  </sheetData>
</worksheet>`)

	wb, err := LoadBytes(data, ReadOptions{Lenient: true})
	require.NoError(t, err)
	sh, _ := wb.SheetByName("Sheet1")
	require.Equal(t, "", sh.Cells.Get(1, 1).Value.Str)
}

func TestLoadDecodesSharedFormulaGroup(t *testing.T) {
	data := buildMinimalPackage(t, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="`+nsMain+`">
  <sheetData>
    <row r="1"><c r="A1"><f t="shared" ref="A1:A2" si="0">B1</f><v>1</v></c></row>
    <row r="2"><c r="A2"><f t="shared" si="0"/><v>2</v></c></row>
  </sheetData>
</worksheet>`)

	wb, err := LoadBytes(data)
	require.NoError(t, err)
	sh, _ := wb.SheetByName("Sheet1")
	require.Equal(t, "B1", sh.Cells.Get(1, 1).Formula)
	require.Equal(t, "B2", sh.Cells.Get(2, 1).Formula)
}

func TestLoadStrictRejectsDanglingSharedFormulaReference(t *testing.T) {
	data := buildMinimalPackage(t, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="`+nsMain+`">
  <sheetData>
    <row r="1"><c r="A1"><f t="shared" si="5"/><v>9</v></c></row>
  </sheetData>
</worksheet>`)

	_, err := LoadBytes(data)
	require.ErrorIs(t, err, ErrMalformedXML)
}

func TestLoadLenientDegradesDanglingSharedFormulaReference(t *testing.T) {
	data := buildMinimalPackage(t, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="`+nsMain+`">
  <sheetData>
    <row r="1"><c r="A1"><f t="shared" si="5"/><v>9</v></c></row>
  </sheetData>
</worksheet>`)

	wb, err := LoadBytes(data, ReadOptions{Lenient: true})
	require.NoError(t, err)
	sh, _ := wb.SheetByName("Sheet1")
	c := sh.Cells.Get(1, 1)
	require.Equal(t, "", c.Formula)
	require.Equal(t, "9", c.FormulaCached)
}

func TestLoadPlainNumericAndBooleanCells(t *testing.T) {
	data := buildMinimalPackage(t, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="`+nsMain+`">
  <sheetData>
    <row r="1">
      <c r="A1"><v>3.5</v></c>
      <c r="B1" t="b"><v>1</v></c>
      <c r="C1" t="str"><v>literal</v></c>
    </row>
  </sheetData>
</worksheet>`)

	wb, err := LoadBytes(data)
	require.NoError(t, err)
	sh, _ := wb.SheetByName("Sheet1")
	require.Equal(t, 3.5, sh.Cells.Get(1, 1).Value.Num)
	require.True(t, sh.Cells.Get(1, 2).Value.Bool)
	require.Equal(t, "literal", sh.Cells.Get(1, 3).Value.Str)
}
