package xl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRoundTripBasicValues covers S2: strings, numbers, booleans, and error
// codes survive a SaveBytes -> LoadBytes cycle with their values intact.
func TestRoundTripBasicValues(t *testing.T) {
	wb := NewWorkbook()
	sh, err := wb.CreateSheet("Data")
	require.NoError(t, err)
	sh.Cell(1, 1).Value = StringValue("hello")
	sh.Cell(1, 2).Value = NumberValue(3.25)
	sh.Cell(1, 3).Value = BoolValue(true)
	sh.Cell(1, 4).Value = ErrorValue("#DIV/0!")

	data, err := wb.SaveBytes()
	require.NoError(t, err)

	wb2, err := LoadBytes(data)
	require.NoError(t, err)
	got, ok := wb2.SheetByName("Data")
	require.True(t, ok)

	require.Equal(t, "hello", got.Cells.Get(1, 1).Value.Str)
	require.Equal(t, 3.25, got.Cells.Get(1, 2).Value.Num)
	require.True(t, got.Cells.Get(1, 3).Value.Bool)
	require.Equal(t, "#DIV/0!", got.Cells.Get(1, 4).Value.Str)
}

// TestRoundTripStyles: a custom XF's bold font and custom number-format
// code survive a save/load cycle, though its index may differ.
func TestRoundTripStyles(t *testing.T) {
	wb := NewWorkbook()
	sh, _ := wb.CreateSheet("Sheet1")
	xf := XF{
		Font:         Font{Bold: true, Name: "Calibri", Size: 11},
		NumberFormat: NumberFormat{Code: "0.00%"},
	}
	cell := sh.Cell(1, 1)
	cell.Value = NumberValue(0.5)
	cell.XF = xf

	data, err := wb.SaveBytes()
	require.NoError(t, err)

	wb2, err := LoadBytes(data)
	require.NoError(t, err)
	got, _ := wb2.SheetByName("Sheet1")
	gotCell := got.Cells.Get(1, 1)
	require.True(t, gotCell.XF.Font.Bold)
	require.Equal(t, "0.00%", gotCell.XF.NumberFormat.Code)
}

// TestRoundTripMerges: merged ranges survive unchanged.
func TestRoundTripMerges(t *testing.T) {
	wb := NewWorkbook()
	sh, _ := wb.CreateSheet("Sheet1")
	require.NoError(t, sh.MergeRange(1, 1, 2, 2))

	data, err := wb.SaveBytes()
	require.NoError(t, err)

	wb2, err := LoadBytes(data)
	require.NoError(t, err)
	got, _ := wb2.SheetByName("Sheet1")
	require.Equal(t, []string{"A1:B2"}, got.MergedRanges())
}

// TestRoundTripFormulaText: formula text survives a save/load
// cycle unchanged (this library writes each cell's own formula rather than
// grouping into shared-formula ranges, so no shift is exercised here;
// ShiftFormula's own behavior is covered in formula_test.go).
func TestRoundTripFormulaText(t *testing.T) {
	wb := NewWorkbook()
	sh, _ := wb.CreateSheet("Sheet1")
	sh.Cell(1, 1).SetFormula("A1", "")
	sh.Cell(2, 1).SetFormula("B1", "")

	data, err := wb.SaveBytes()
	require.NoError(t, err)

	wb2, err := LoadBytes(data)
	require.NoError(t, err)
	got, _ := wb2.SheetByName("Sheet1")
	require.Equal(t, "A1", got.Cells.Get(1, 1).Formula)
	require.Equal(t, "B1", got.Cells.Get(2, 1).Formula)
}

// TestRoundTripDefinedNames: workbook- and sheet-scoped defined
// names both survive.
func TestRoundTripDefinedNames(t *testing.T) {
	wb := NewWorkbook()
	wb.CreateSheet("Sheet1")
	require.NoError(t, wb.CreateNamedRange("Global", "", "Sheet1!$A$1"))
	require.NoError(t, wb.CreateNamedRange("Local", "Sheet1", "Sheet1!$B$2"))

	data, err := wb.SaveBytes()
	require.NoError(t, err)

	wb2, err := LoadBytes(data)
	require.NoError(t, err)
	names := wb2.DefinedNames()
	require.Len(t, names, 2)
	byName := map[string]DefinedName{}
	for _, n := range names {
		byName[n.Name] = n
	}
	require.Equal(t, "", byName["Global"].SheetName)
	require.Equal(t, "Sheet1", byName["Local"].SheetName)
}

// TestRoundTripCarryOverUnknownPart checks the carry-over bookkeeping from
// the other side: reloading a package this library wrote itself leaves
// CarryOver empty, since every part in it is one the reader recognizes.
func TestRoundTripCarryOverUnknownPart(t *testing.T) {
	wb := NewWorkbook()
	wb.CreateSheet("Sheet1")
	data, err := wb.SaveBytes()
	require.NoError(t, err)

	wb2, err := LoadBytes(data)
	require.NoError(t, err)
	require.Empty(t, wb2.CarryOver, "a save of an unmodified workbook carries no unrecognized parts")
}
