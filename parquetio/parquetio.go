// Package parquetio defines the contract for Parquet <-> worksheet columnar
// interchange without vendoring a Parquet engine. A caller who needs actual
// Parquet I/O implements Importer/Exporter against a real engine (e.g.
// github.com/parquet-go/parquet-go) and supplies that implementation through
// ImportOptions.Engine/ExportOptions.Engine; this package only wires the
// worksheet side of the exchange.
package parquetio

import (
	"context"
	"errors"
	"io"

	"github.com/cellwright/xlcore/xl"
)

// Row is one Parquet record, column values in schema order.
type Row []xl.Value

// Importer reads rows out of a Parquet file. A concrete implementation owns
// the Parquet reader and its schema; this package never inspects either.
type Importer interface {
	// Open prepares path for reading and returns the column names in
	// schema order.
	Open(ctx context.Context, path string) (columns []string, err error)

	// Next returns the next row, or io.EOF when exhausted.
	Next(ctx context.Context) (Row, error)

	// Close releases any resources Open acquired.
	Close() error
}

// Exporter writes rows to a Parquet file under a schema the implementation
// derives from columns.
type Exporter interface {
	// Create prepares path for writing with the given column names.
	Create(ctx context.Context, path string, columns []string) error

	// WriteRow appends one row. Row length must match the column count
	// passed to Create.
	WriteRow(ctx context.Context, row Row) error

	// Close finalizes the file, flushing any buffered row groups.
	Close() error
}

// ImportOptions configures InsertFromParquet.
type ImportOptions struct {
	// Engine performs the actual Parquet decode. Required: InsertFromParquet
	// returns ErrNoEngine if nil.
	Engine Importer

	// StartRow, StartCol anchor the inserted block, 1-based (default: 1,1).
	StartRow int
	StartCol int

	// HeaderRow, if true, writes the column names Engine.Open returns into
	// StartRow and places the data rows below them. It is false in the zero
	// value, so no header row is written unless it is set.
	HeaderRow bool

	// MaxRows limits how many rows are inserted, including the header row
	// if HeaderRow is set; 0 means unlimited.
	MaxRows int
}

// ImportResult reports what InsertFromParquet actually wrote.
type ImportResult struct {
	RowsInserted int
	Columns      []string
}

// ExportOptions configures ExportToParquet and ExportRangeToParquet.
type ExportOptions struct {
	// Engine performs the actual Parquet encode. Required: ExportToParquet
	// returns ErrNoEngine if nil.
	Engine Exporter

	// HeaderRow, if true, exports the range's top row as the Parquet
	// column names instead of synthesized "col" + column-letter placeholders
	// ("colA", "colB", ...). It is false in the zero value, so the top row is
	// exported as data unless it is set.
	HeaderRow bool
}

// ExportResult reports what ExportToParquet/ExportRangeToParquet actually
// wrote.
type ExportResult struct {
	RowsExported int
	Columns      []string
}

// ErrNoEngine is returned when ImportOptions.Engine or ExportOptions.Engine
// is nil; this package has no default Parquet engine to fall back to.
var ErrNoEngine = errors.New("parquetio: no engine configured")

// InsertFromParquet reads rows from opts.Engine and writes them into sheet
// starting at (opts.StartRow,opts.StartCol), defaulting to (1,1).
func InsertFromParquet(ctx context.Context, sheet *xl.Sheet, path string, opts ImportOptions) (ImportResult, error) {
	if opts.Engine == nil {
		return ImportResult{}, ErrNoEngine
	}
	startRow, startCol := opts.StartRow, opts.StartCol
	if startRow == 0 {
		startRow = 1
	}
	if startCol == 0 {
		startCol = 1
	}

	columns, err := opts.Engine.Open(ctx, path)
	if err != nil {
		return ImportResult{}, err
	}
	defer opts.Engine.Close()

	result := ImportResult{Columns: columns}
	destRow := startRow
	if opts.HeaderRow {
		for i, name := range columns {
			sheet.Cell(destRow, startCol+i).Value = xl.StringValue(name)
		}
		destRow++
		result.RowsInserted++
	}

	for opts.MaxRows == 0 || result.RowsInserted < opts.MaxRows {
		values, err := opts.Engine.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return result, err
		}
		for i, v := range values {
			sheet.Cell(destRow, startCol+i).Value = v
		}
		destRow++
		result.RowsInserted++
	}
	return result, nil
}

// ExportToParquet writes every populated cell of sheet to opts.Engine.
func ExportToParquet(ctx context.Context, sheet *xl.Sheet, path string, opts ExportOptions) (ExportResult, error) {
	minRow, minCol, maxRow, maxCol := sheet.Cells.Dimensions()
	return exportRange(ctx, sheet, path, opts, minRow, minCol, maxRow, maxCol)
}

// ExportRangeToParquet writes only rows/cols within
// [minRow,maxRow]x[minCol,maxCol] (1-based, inclusive) to opts.Engine.
func ExportRangeToParquet(ctx context.Context, sheet *xl.Sheet, path string, opts ExportOptions, minRow, minCol, maxRow, maxCol int) (ExportResult, error) {
	return exportRange(ctx, sheet, path, opts, minRow, minCol, maxRow, maxCol)
}

func exportRange(ctx context.Context, sheet *xl.Sheet, path string, opts ExportOptions, minRow, minCol, maxRow, maxCol int) (ExportResult, error) {
	if opts.Engine == nil {
		return ExportResult{}, ErrNoEngine
	}
	width := maxCol - minCol + 1
	if width < 1 {
		return ExportResult{}, nil
	}

	columns := make([]string, width)
	for i := range columns {
		columns[i] = "col" + xl.ColumnNumberAsLetters(minCol+i)
	}
	if opts.HeaderRow && maxRow >= minRow {
		for i := range columns {
			if c := sheet.Cells.Get(minRow, minCol+i); c != nil && c.Value.Kind == xl.ValueString {
				columns[i] = c.Value.Str
			}
		}
		minRow++
	}

	if err := opts.Engine.Create(ctx, path, columns); err != nil {
		return ExportResult{}, err
	}
	defer opts.Engine.Close()

	result := ExportResult{Columns: columns}
	for row := minRow; row <= maxRow; row++ {
		values := make(Row, width)
		for i := range values {
			if c := sheet.Cells.Get(row, minCol+i); c != nil {
				values[i] = c.Value
			}
		}
		if err := opts.Engine.WriteRow(ctx, values); err != nil {
			return result, err
		}
		result.RowsExported++
	}
	return result, nil
}
