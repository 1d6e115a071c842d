package xl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestColumnNumberAsLetters(t *testing.T) {
	cases := map[int]string{
		1: "A", 2: "B", 26: "Z", 27: "AA", 52: "AZ", 702: "ZZ", 703: "AAA",
	}
	for n, want := range cases {
		require.Equal(t, want, ColumnNumberAsLetters(n))
	}
}

func TestColumnNumberAsLettersPanicsOnZero(t *testing.T) {
	require.Panics(t, func() { ColumnNumberAsLetters(0) })
}

func TestCellCoordAsString(t *testing.T) {
	require.Equal(t, "A1", CellCoordAsString(1, 1))
	require.Equal(t, "AA10", CellCoordAsString(27, 10))
}

func TestParseColumnLetters(t *testing.T) {
	for s, want := range map[string]int{"A": 1, "Z": 26, "AA": 27, "az": 52, "zz": 702} {
		got, err := ParseColumnLetters(s)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := ParseColumnLetters("1A")
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = ParseColumnLetters("")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestParseCellRef(t *testing.T) {
	col, row, err := ParseCellRef("$AA$10")
	require.NoError(t, err)
	require.Equal(t, 27, col)
	require.Equal(t, 10, row)

	_, _, err = ParseCellRef("A0")
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, _, err = ParseCellRef("5")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestParseRangeRef(t *testing.T) {
	sc, sr, ec, er, err := ParseRangeRef("B2:A1")
	require.NoError(t, err)
	require.Equal(t, 1, sc)
	require.Equal(t, 1, sr)
	require.Equal(t, 2, ec)
	require.Equal(t, 2, er)

	sc, sr, ec, er, err = ParseRangeRef("C3")
	require.NoError(t, err)
	require.Equal(t, 3, sc)
	require.Equal(t, 3, sr)
	require.Equal(t, 3, ec)
	require.Equal(t, 3, er)
}

func TestRoundTripColumnLetters(t *testing.T) {
	for n := 1; n <= 1000; n++ {
		letters := ColumnNumberAsLetters(n)
		back, err := ParseColumnLetters(letters)
		require.NoError(t, err)
		require.Equal(t, n, back)
	}
}
