package xl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCellStorePutGetDelete(t *testing.T) {
	s := NewCellStore()
	require.Nil(t, s.Get(1, 1))

	s.Put(3, 2, &Cell{Value: NumberValue(42)})
	got := s.Get(3, 2)
	require.NotNil(t, got)
	require.Equal(t, 3, got.Row)
	require.Equal(t, 2, got.Col)
	require.Equal(t, 1, s.Len())

	s.Delete(3, 2)
	require.Nil(t, s.Get(3, 2))
	require.Equal(t, 0, s.Len())
}

func TestCellStoreDimensions(t *testing.T) {
	s := NewCellStore()
	s.Put(5, 5, &Cell{})
	s.Put(1, 10, &Cell{})
	s.Put(10, 1, &Cell{})

	minRow, minCol, maxRow, maxCol := s.Dimensions()
	require.Equal(t, 1, minRow)
	require.Equal(t, 1, minCol)
	require.Equal(t, 10, maxRow)
	require.Equal(t, 10, maxCol)

	s.Delete(10, 1)
	minRow, minCol, maxRow, maxCol = s.Dimensions()
	require.Equal(t, 1, minRow)
	require.Equal(t, 5, minCol)
	require.Equal(t, 5, maxRow)
	require.Equal(t, 10, maxCol)
}

func TestCellStoreRowsAscendingOrder(t *testing.T) {
	s := NewCellStore()
	s.Put(2, 3, &Cell{})
	s.Put(1, 5, &Cell{})
	s.Put(1, 1, &Cell{})

	var rowOrder []int
	for row, cols := range s.Rows() {
		rowOrder = append(rowOrder, row)
		if row == 1 {
			var colOrder []int
			for col := range cols {
				colOrder = append(colOrder, col)
			}
			require.Equal(t, []int{1, 5}, colOrder)
		}
	}
	require.Equal(t, []int{1, 2}, rowOrder)
}

func TestCellStoreRowsEarlyExit(t *testing.T) {
	s := NewCellStore()
	s.Put(1, 1, &Cell{})
	s.Put(2, 1, &Cell{})
	s.Put(3, 1, &Cell{})

	seen := 0
	for range s.Rows() {
		seen++
		if seen == 1 {
			break
		}
	}
	require.Equal(t, 1, seen)
}
