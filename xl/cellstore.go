package xl

import (
	"iter"
	"slices"
)

// cellRow is one row's worth of cells in a CellStore: a sorted column-index
// slice for ordered iteration plus a map for O(1) point lookup. The teacher's
// write-only Row used a plain append-only []*Cell, which is sufficient only
// when columns are always added in increasing order (true for a builder API,
// false for a file being parsed, where coordinates can be out of order,
// gapped, or mutated later via SetCellValue). This hybrid keeps both access
// patterns spec §4.5 requires: O(1) point lookup and ascending-order
// iteration.
type cellRow struct {
	cols  []int
	cells map[int]*Cell
}

func newCellRow() *cellRow {
	return &cellRow{cells: map[int]*Cell{}}
}

func (r *cellRow) put(col int, c *Cell) {
	if _, exists := r.cells[col]; !exists {
		i, _ := slices.BinarySearch(r.cols, col)
		r.cols = slices.Insert(r.cols, i, col)
	}
	r.cells[col] = c
}

func (r *cellRow) delete(col int) {
	if _, exists := r.cells[col]; !exists {
		return
	}
	delete(r.cells, col)
	if i, ok := slices.BinarySearch(r.cols, col); ok {
		r.cols = slices.Delete(r.cols, i, i+1)
	}
}

// CellStore is the sparse (row,col) -> Cell mapping for one worksheet,
// described by spec §4.5. Point lookup is O(1) average; iteration is
// row-major ascending (row,col), the order the write pipeline serializes in.
type CellStore struct {
	rows    map[int]*cellRow
	rowKeys []int // sorted row indices, maintained lazily

	minRow, minCol, maxRow, maxCol int
	dirty                          bool // dimensions need a rescan after a delete touched an extremum
	any                            bool
}

// NewCellStore returns an empty cell store.
func NewCellStore() *CellStore {
	return &CellStore{rows: map[int]*cellRow{}}
}

// Get returns the cell at (row,col), or nil if absent.
func (s *CellStore) Get(row, col int) *Cell {
	r, ok := s.rows[row]
	if !ok {
		return nil
	}
	return r.cells[col]
}

// Put stores a cell at (row,col), overwriting any existing cell there. The
// cell's Row/Col fields are set to match.
func (s *CellStore) Put(row, col int, c *Cell) {
	c.Row, c.Col = row, col
	r, ok := s.rows[row]
	if !ok {
		r = newCellRow()
		i, _ := slices.BinarySearch(s.rowKeys, row)
		s.rowKeys = slices.Insert(s.rowKeys, i, row)
		s.rows[row] = r
	}
	r.put(col, c)
	s.extend(row, col)
}

// Delete removes the cell at (row,col), if present.
func (s *CellStore) Delete(row, col int) {
	r, ok := s.rows[row]
	if !ok {
		return
	}
	r.delete(col)
	if len(r.cells) == 0 {
		delete(s.rows, row)
		if i, ok := slices.BinarySearch(s.rowKeys, row); ok {
			s.rowKeys = slices.Delete(s.rowKeys, i, i+1)
		}
	}
	// A delete of the current extremum forces a rescan on next Dimensions()
	// call; this is the documented O(rows) rare-path mentioned in SPEC_FULL §4.5.
	s.dirty = true
}

func (s *CellStore) extend(row, col int) {
	if !s.any {
		s.minRow, s.maxRow, s.minCol, s.maxCol = row, row, col, col
		s.any = true
		return
	}
	if row < s.minRow {
		s.minRow = row
	}
	if row > s.maxRow {
		s.maxRow = row
	}
	if col < s.minCol {
		s.minCol = col
	}
	if col > s.maxCol {
		s.maxCol = col
	}
}

// Dimensions returns the bounding box of all populated cells, computed
// incrementally on Put and rescanned lazily after a Delete.
func (s *CellStore) Dimensions() (minRow, minCol, maxRow, maxCol int) {
	if s.dirty {
		s.rescan()
	}
	return s.minRow, s.minCol, s.maxRow, s.maxCol
}

func (s *CellStore) rescan() {
	s.any = false
	s.minRow, s.minCol, s.maxRow, s.maxCol = 0, 0, 0, 0
	for row, r := range s.rows {
		for col := range r.cells {
			s.extend(row, col)
		}
	}
	s.dirty = false
}

// Len returns the number of populated cells across all rows.
func (s *CellStore) Len() int {
	n := 0
	for _, r := range s.rows {
		n += len(r.cells)
	}
	return n
}

// Rows iterates rows in ascending order; for each row, the inner sequence
// iterates cells in ascending column order. This is the canonical
// serialization order the write pipeline uses.
func (s *CellStore) Rows() iter.Seq2[int, iter.Seq2[int, *Cell]] {
	return func(yield func(int, iter.Seq2[int, *Cell]) bool) {
		for _, row := range s.rowKeys {
			r := s.rows[row]
			inner := func(yield func(int, *Cell) bool) {
				for _, col := range r.cols {
					if !yield(col, r.cells[col]) {
						return
					}
				}
			}
			if !yield(row, inner) {
				return
			}
		}
	}
}
