package xl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShiftFormulaSimple(t *testing.T) {
	got, err := ShiftFormula("A1+B1", "C3", "C4")
	require.NoError(t, err)
	require.Equal(t, "A2+B2", got)
}

func TestShiftFormulaNoOffset(t *testing.T) {
	got, err := ShiftFormula("SUM(A1:A10)", "C3", "C3")
	require.NoError(t, err)
	require.Equal(t, "SUM(A1:A10)", got)
}

func TestShiftFormulaAbsoluteAnchorsUnaffected(t *testing.T) {
	got, err := ShiftFormula("$A$1+B1", "C3", "D4")
	require.NoError(t, err)
	require.Equal(t, "$A$1+C2", got)
}

func TestShiftFormulaRange(t *testing.T) {
	got, err := ShiftFormula("SUM(A1:A10)", "C3", "D3")
	require.NoError(t, err)
	require.Equal(t, "SUM(B1:B10)", got)
}

func TestShiftFormulaSheetPrefixPreserved(t *testing.T) {
	got, err := ShiftFormula("Sheet1!A1", "C3", "C4")
	require.NoError(t, err)
	require.Equal(t, "Sheet1!A2", got)
}

func TestShiftFormulaOutOfRange(t *testing.T) {
	_, err := ShiftFormula("A1", "C3", "C2")
	require.ErrorIs(t, err, ErrMalformedXML)
}
