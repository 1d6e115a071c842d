package xl

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriterProducesValidZipPackage(t *testing.T) {
	wb := NewWorkbook()
	sh, _ := wb.CreateSheet("Sheet1")
	sh.Cell(1, 1).Value = StringValue("hello")

	var buf bytes.Buffer
	zs := NewZipStorage(&buf)
	w := NewWriter(zs)
	require.NoError(t, w.Write(wb))
	require.NoError(t, zs.Close())
	require.Equal(t, []byte("PK"), buf.Bytes()[:2])
}

func TestWriterEmitsHyperlinksAndValidations(t *testing.T) {
	wb := NewWorkbook()
	sh, _ := wb.CreateSheet("Sheet1")
	sh.Cell(1, 1).Value = StringValue("click me")
	sh.Hyperlinks = map[string]Hyperlink{
		"A1": {Target: "https://example.com", TargetMode: HyperlinkExternal, Tooltip: "go"},
	}
	sh.Validations = []DataValidation{
		{Sqref: "B1:B10", Type: "list", Formula1: "\"a,b,c\"", AllowBlank: true},
	}

	data, err := wb.SaveBytes()
	require.NoError(t, err)

	c, err := OpenBytes(data)
	require.NoError(t, err)
	sheetRelsPart, err := c.Part("/xl/worksheets/_rels/sheet1.xml.rels")
	require.NoError(t, err)
	require.Contains(t, string(sheetRelsPart), "https://example.com")

	sheetPart, err := c.Part("/xl/worksheets/sheet1.xml")
	require.NoError(t, err)
	require.Contains(t, string(sheetPart), "dataValidation")
	require.Contains(t, string(sheetPart), "hyperlink")
}

func TestWriterEmitsMergeCellsAndTables(t *testing.T) {
	wb := NewWorkbook()
	sh, _ := wb.CreateSheet("Sheet1")
	sh.Cell(1, 1).Value = StringValue("h1")
	require.NoError(t, sh.MergeRange(1, 1, 2, 1))
	sh.Tables = []Table{
		{
			Name: "Table1", Ref: "A1:B2", HeaderRowCount: 1,
			Columns: []TableColumn{{ID: 1, Name: "h1"}, {ID: 2, Name: "h2"}},
		},
	}

	data, err := wb.SaveBytes()
	require.NoError(t, err)

	c, err := OpenBytes(data)
	require.NoError(t, err)
	sheetPart, err := c.Part("/xl/worksheets/sheet1.xml")
	require.NoError(t, err)
	require.Contains(t, string(sheetPart), "mergeCell")
	require.Contains(t, string(sheetPart), "tablePart")

	tablePart, err := c.Part("/xl/tables/table1.xml")
	require.NoError(t, err)
	require.Contains(t, string(tablePart), "Table1")
}

func TestStreamWriterRejectsDoubleClose(t *testing.T) {
	var buf bytes.Buffer
	sw := NewStreamWriter(NewZipStorage(&buf))
	require.NoError(t, sw.Close())
	require.ErrorIs(t, sw.Close(), ErrDoubleClose)
}
