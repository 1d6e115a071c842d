package xl

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStreamWriterProducesLoadableWorkbook(t *testing.T) {
	var buf bytes.Buffer
	sw := NewStreamWriter(NewZipStorage(&buf))

	sheet, err := sw.CreateSheet("Sheet1")
	require.NoError(t, err)
	require.NoError(t, sheet.AppendRow([]Value{StringValue("a"), NumberValue(1)}))
	require.NoError(t, sheet.AppendRow([]Value{StringValue("b"), NumberValue(2)}))

	require.NoError(t, sw.Close())

	wb, err := LoadBytes(buf.Bytes())
	require.NoError(t, err)
	sh, ok := wb.SheetByName("Sheet1")
	require.True(t, ok)
	require.Equal(t, "a", sh.Cells.Get(1, 1).Value.Str)
	require.Equal(t, 2.0, sh.Cells.Get(2, 2).Value.Num)
}

func TestStreamWriterMultipleSheets(t *testing.T) {
	var buf bytes.Buffer
	sw := NewStreamWriter(NewZipStorage(&buf))

	s1, err := sw.CreateSheet("First")
	require.NoError(t, err)
	require.NoError(t, s1.AppendRow([]Value{NumberValue(1)}))

	s2, err := sw.CreateSheet("Second")
	require.NoError(t, err)
	require.NoError(t, s2.AppendRow([]Value{NumberValue(2)}))

	require.NoError(t, sw.Close())

	wb, err := LoadBytes(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, []string{"First", "Second"}, wb.SheetNames())
}

func TestStreamSheetAppendAfterSupersededFails(t *testing.T) {
	var buf bytes.Buffer
	sw := NewStreamWriter(NewZipStorage(&buf))

	s1, err := sw.CreateSheet("First")
	require.NoError(t, err)
	_, err = sw.CreateSheet("Second")
	require.NoError(t, err)

	err = s1.AppendRow([]Value{NumberValue(1)})
	require.ErrorIs(t, err, ErrWriteOrder)
}

func TestStreamWriterCreateSheetAfterCloseFails(t *testing.T) {
	var buf bytes.Buffer
	sw := NewStreamWriter(NewZipStorage(&buf))
	require.NoError(t, sw.Close())

	_, err := sw.CreateSheet("Late")
	require.ErrorIs(t, err, ErrWriteOrder)
}

func TestStreamWriterSkipsEmptyValues(t *testing.T) {
	var buf bytes.Buffer
	sw := NewStreamWriter(NewZipStorage(&buf))
	sheet, err := sw.CreateSheet("Sheet1")
	require.NoError(t, err)
	require.NoError(t, sheet.AppendRow([]Value{NumberValue(1), {}, NumberValue(3)}))
	require.NoError(t, sw.Close())

	wb, err := LoadBytes(buf.Bytes())
	require.NoError(t, err)
	sh, _ := wb.SheetByName("Sheet1")
	require.True(t, sh.Cells.Get(1, 2) == nil)
	require.Equal(t, 3.0, sh.Cells.Get(1, 3).Value.Num)
}
