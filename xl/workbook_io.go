package xl

import (
	"bytes"
	"fmt"
	"iter"
	"os"
)

// SetCellValue sets the value of the cell at (row,col) (1-based) on the
// named sheet, creating the cell if absent. Returns ErrInvalidArgument if
// the sheet does not exist.
func (wb *Workbook) SetCellValue(sheet string, row, col int, v Value) error {
	sh, ok := wb.SheetByName(sheet)
	if !ok {
		return fmt.Errorf("%w: no such sheet %q", ErrInvalidArgument, sheet)
	}
	sh.Cell(row, col).Value = v
	return nil
}

// CellValue returns the value of the cell at (row,col) (1-based) on the
// named sheet. An absent cell reads back as ValueEmpty, not an error.
// Returns ErrInvalidArgument if the sheet does not exist.
func (wb *Workbook) CellValue(sheet string, row, col int) (Value, error) {
	sh, ok := wb.SheetByName(sheet)
	if !ok {
		return Value{}, fmt.Errorf("%w: no such sheet %q", ErrInvalidArgument, sheet)
	}
	if c := sh.Cells.Get(row, col); c != nil {
		return c.Value, nil
	}
	return Value{}, nil
}

// WriteRows bulk-writes a rectangular block of values to the named sheet,
// anchored at (startRow,startCol) (1-based). A ValueEmpty entry in rows
// leaves the corresponding cell untouched rather than overwriting it with
// a blank, so callers can pass a ragged grid without clobbering
// previously-written columns past a short row.
func (wb *Workbook) WriteRows(sheet string, rows [][]Value, startRow, startCol int) error {
	sh, ok := wb.SheetByName(sheet)
	if !ok {
		return fmt.Errorf("%w: no such sheet %q", ErrInvalidArgument, sheet)
	}
	for i, row := range rows {
		for j, v := range row {
			if v.Empty() {
				continue
			}
			sh.Cell(startRow+i, startCol+j).Value = v
		}
	}
	return nil
}

// ReadRows iterates rows [minRow,maxRow] (1-based, inclusive) of the named
// sheet in ascending order. Each yielded row is a dense slice spanning
// columns [1, maxCol] where maxCol is that row's highest populated column;
// unpopulated cells within the slice read as ValueEmpty. A sheet name that
// doesn't exist yields nothing.
func (wb *Workbook) ReadRows(sheet string, minRow, maxRow int) iter.Seq2[int, []Value] {
	return func(yield func(int, []Value) bool) {
		sh, ok := wb.SheetByName(sheet)
		if !ok {
			return
		}
		for row, cols := range sh.Cells.Rows() {
			if row < minRow || row > maxRow {
				continue
			}
			maxCol := 0
			for col := range cols {
				if col > maxCol {
					maxCol = col
				}
			}
			values := make([]Value, maxCol)
			for col, c := range cols {
				values[col-1] = c.Value
			}
			if !yield(row, values) {
				return
			}
		}
	}
}

// SaveFile serializes wb through a random-access Writer and writes the
// resulting package to path, removing the file on failure rather than
// leaving a corrupt .xlsx behind.
func (wb *Workbook) SaveFile(path string, opts ...WriteOptions) error {
	opt := firstWriteOptions(opts)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIOFailure, err)
	}

	zs := NewZipStorage(f)
	if opt.CompressionLevel != 0 {
		zs.SetCompressionLevel(opt.CompressionLevel)
	}
	w := NewWriter(zs, opt)
	writeErr := w.Write(wb)
	closeErr := zs.Close()
	fileErr := f.Close()

	if writeErr != nil || closeErr != nil || fileErr != nil {
		os.Remove(path)
		if writeErr != nil {
			return writeErr
		}
		if closeErr != nil {
			return fmt.Errorf("%w: %v", ErrIOFailure, closeErr)
		}
		return fmt.Errorf("%w: %v", ErrIOFailure, fileErr)
	}
	return nil
}

// SaveBytes serializes wb through a random-access Writer and returns the
// resulting package as an in-memory .xlsx byte slice.
func (wb *Workbook) SaveBytes(opts ...WriteOptions) ([]byte, error) {
	opt := firstWriteOptions(opts)
	var buf bytes.Buffer
	zs := NewZipStorage(&buf)
	if opt.CompressionLevel != 0 {
		zs.SetCompressionLevel(opt.CompressionLevel)
	}
	w := NewWriter(zs, opt)
	if err := w.Write(wb); err != nil {
		return nil, err
	}
	if err := zs.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIOFailure, err)
	}
	return buf.Bytes(), nil
}

func firstWriteOptions(opts []WriteOptions) WriteOptions {
	if len(opts) == 0 {
		return WriteOptions{}
	}
	return opts[0]
}
