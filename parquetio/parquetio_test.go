package parquetio

import (
	"context"
	"io"
	"testing"

	"github.com/cellwright/xlcore/xl"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	columns []string
	rows    []Row
	next    int

	createdPath string
	written     []Row
}

func (f *fakeEngine) Open(ctx context.Context, path string) ([]string, error) {
	return f.columns, nil
}

func (f *fakeEngine) Next(ctx context.Context) (Row, error) {
	if f.next >= len(f.rows) {
		return nil, io.EOF
	}
	row := f.rows[f.next]
	f.next++
	return row, nil
}

func (f *fakeEngine) Close() error { return nil }

func (f *fakeEngine) Create(ctx context.Context, path string, columns []string) error {
	f.createdPath = path
	f.columns = columns
	return nil
}

func (f *fakeEngine) WriteRow(ctx context.Context, row Row) error {
	f.written = append(f.written, row)
	return nil
}

func TestInsertFromParquetNoEngine(t *testing.T) {
	wb := xl.NewWorkbook()
	sh, _ := wb.CreateSheet("Sheet1")
	_, err := InsertFromParquet(context.Background(), sh, "data.parquet", ImportOptions{})
	require.ErrorIs(t, err, ErrNoEngine)
}

func TestInsertFromParquetWritesHeaderAndRows(t *testing.T) {
	wb := xl.NewWorkbook()
	sh, _ := wb.CreateSheet("Sheet1")
	eng := &fakeEngine{
		columns: []string{"name", "age"},
		rows: []Row{
			{xl.StringValue("alice"), xl.NumberValue(30)},
			{xl.StringValue("bob"), xl.NumberValue(40)},
		},
	}

	result, err := InsertFromParquet(context.Background(), sh, "data.parquet", ImportOptions{
		Engine: eng, HeaderRow: true,
	})
	require.NoError(t, err)
	require.Equal(t, 3, result.RowsInserted)
	require.Equal(t, "name", sh.Cells.Get(1, 1).Value.Str)
	require.Equal(t, "alice", sh.Cells.Get(2, 1).Value.Str)
	require.Equal(t, 40.0, sh.Cells.Get(3, 2).Value.Num)
}

func TestExportToParquetWritesPopulatedRange(t *testing.T) {
	wb := xl.NewWorkbook()
	sh, _ := wb.CreateSheet("Sheet1")
	sh.Cell(1, 1).Value = xl.StringValue("name")
	sh.Cell(1, 2).Value = xl.StringValue("age")
	sh.Cell(2, 1).Value = xl.StringValue("alice")
	sh.Cell(2, 2).Value = xl.NumberValue(30)

	eng := &fakeEngine{}
	result, err := ExportToParquet(context.Background(), sh, "out.parquet", ExportOptions{
		Engine: eng, HeaderRow: true,
	})
	require.NoError(t, err)
	require.Equal(t, []string{"name", "age"}, result.Columns)
	require.Equal(t, 1, result.RowsExported)
	require.Equal(t, "alice", eng.written[0][0].Str)
	require.Equal(t, "out.parquet", eng.createdPath)
}

func TestExportToParquetNoEngine(t *testing.T) {
	wb := xl.NewWorkbook()
	sh, _ := wb.CreateSheet("Sheet1")
	_, err := ExportToParquet(context.Background(), sh, "out.parquet", ExportOptions{})
	require.ErrorIs(t, err, ErrNoEngine)
}
