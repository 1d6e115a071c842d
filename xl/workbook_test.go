package xl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateSheetDuplicateName(t *testing.T) {
	wb := NewWorkbook()
	_, err := wb.CreateSheet("Sheet1")
	require.NoError(t, err)
	_, err = wb.CreateSheet("sheet1")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCreateSheetInvalidName(t *testing.T) {
	wb := NewWorkbook()
	_, err := wb.CreateSheet("bad:name")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSheetByNameCaseInsensitive(t *testing.T) {
	wb := NewWorkbook()
	sh, _ := wb.CreateSheet("Data")
	got, ok := wb.SheetByName("DATA")
	require.True(t, ok)
	require.Same(t, sh, got)

	_, ok = wb.SheetByName("Missing")
	require.False(t, ok)
}

func TestRemoveSheetAdjustsActiveIndex(t *testing.T) {
	wb := NewWorkbook()
	wb.CreateSheet("A")
	wb.CreateSheet("B")
	require.NoError(t, wb.SetActiveSheet("B"))
	require.NoError(t, wb.RemoveSheet("B"))
	require.Equal(t, 0, wb.ActiveSheetIndex)

	err := wb.RemoveSheet("Nope")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSetActiveSheetUnknown(t *testing.T) {
	wb := NewWorkbook()
	wb.CreateSheet("A")
	require.ErrorIs(t, wb.SetActiveSheet("B"), ErrInvalidArgument)
}

func TestCreateNamedRangeLastWins(t *testing.T) {
	wb := NewWorkbook()
	wb.CreateSheet("Sheet1")
	require.NoError(t, wb.CreateNamedRange("Total", "", "Sheet1!$A$1"))
	require.NoError(t, wb.CreateNamedRange("Total", "", "Sheet1!$A$2"))
	names := wb.DefinedNames()
	require.Len(t, names, 1)
	require.Equal(t, "Sheet1!$A$2", names[0].RefersTo)
}

func TestCreateNamedRangeUnknownScope(t *testing.T) {
	wb := NewWorkbook()
	err := wb.CreateNamedRange("Foo", "NoSuchSheet", "A1")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSetCellValueAndReadRows(t *testing.T) {
	wb := NewWorkbook()
	wb.CreateSheet("Sheet1")
	require.NoError(t, wb.SetCellValue("Sheet1", 1, 1, NumberValue(1)))
	require.NoError(t, wb.SetCellValue("Sheet1", 1, 3, NumberValue(3)))
	require.NoError(t, wb.SetCellValue("Sheet1", 2, 2, StringValue("hi")))

	v, err := wb.CellValue("Sheet1", 1, 1)
	require.NoError(t, err)
	require.Equal(t, 1.0, v.Num)

	v, err = wb.CellValue("Sheet1", 99, 99)
	require.NoError(t, err)
	require.True(t, v.Empty())

	_, err = wb.CellValue("Missing", 1, 1)
	require.ErrorIs(t, err, ErrInvalidArgument)

	rows := map[int][]Value{}
	for row, vals := range wb.ReadRows("Sheet1", 1, 2) {
		rows[row] = vals
	}
	require.Len(t, rows[1], 3)
	require.Equal(t, 1.0, rows[1][0].Num)
	require.True(t, rows[1][1].Empty())
	require.Equal(t, 3.0, rows[1][2].Num)
	require.Equal(t, "hi", rows[2][1].Str)
}

func TestWriteRowsSkipsEmptyEntries(t *testing.T) {
	wb := NewWorkbook()
	wb.CreateSheet("Sheet1")
	sh, _ := wb.SheetByName("Sheet1")
	sh.Cell(1, 1).Value = StringValue("keep")

	err := wb.WriteRows("Sheet1", [][]Value{{Value{}, NumberValue(2)}}, 1, 1)
	require.NoError(t, err)

	v, _ := wb.CellValue("Sheet1", 1, 1)
	require.Equal(t, "keep", v.Str)
	v, _ = wb.CellValue("Sheet1", 1, 2)
	require.Equal(t, 2.0, v.Num)
}

func TestSaveBytesProducesZip(t *testing.T) {
	wb := NewWorkbook()
	sh, _ := wb.CreateSheet("Sheet1")
	sh.Cell(1, 1).Value = StringValue("hello")

	data, err := wb.SaveBytes()
	require.NoError(t, err)
	require.True(t, len(data) > 4)
	require.Equal(t, []byte("PK"), data[:2])
}

func TestSaveBytesRoundTripsThroughLoad(t *testing.T) {
	wb := NewWorkbook()
	sh, _ := wb.CreateSheet("Sheet1")
	sh.Cell(2, 3).Value = NumberValue(7)

	data, err := wb.SaveBytes()
	require.NoError(t, err)

	wb2, err := LoadBytes(data)
	require.NoError(t, err)
	got, ok := wb2.SheetByName("Sheet1")
	require.True(t, ok)
	v, err := wb2.CellValue(got.Name, 2, 3)
	require.NoError(t, err)
	require.Equal(t, 7.0, v.Num)
}
