package xl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatValueGeneral(t *testing.T) {
	require.Equal(t, "42", FormatValue(42.0, 0, "", false))
	require.Equal(t, "3.5", FormatValue(3.5, 0, "", false))
	require.Equal(t, "", FormatValue(nil, 0, "", false))
	require.Equal(t, "TRUE", FormatValue(true, 0, "", false))
}

func TestFormatValuePercent(t *testing.T) {
	require.Equal(t, "12.34%", FormatValue(0.1234, 10, "", false))
}

func TestFormatValueThousands(t *testing.T) {
	require.Equal(t, "1,234,567", FormatValue(1234567.0, 3, "", false))
}

func TestIsDateFormatID(t *testing.T) {
	require.True(t, isDateFormatID(14, ""))
	require.False(t, isDateFormatID(1, ""))
	require.True(t, isDateFormatID(200, "yyyy-mm-dd"))
	require.False(t, isDateFormatID(200, "0.00"))
}

func TestNormalizeNumberFormatCode(t *testing.T) {
	require.Equal(t, normalizeNumberFormatCode(" 0.00 "), normalizeNumberFormatCode("0.00"))
}

func TestConvertSerialEpoch(t *testing.T) {
	tm, err := convertSerial(1, false)
	require.NoError(t, err)
	require.Equal(t, 1900, tm.Year())
	require.Equal(t, 1, int(tm.Month()))
	require.Equal(t, 1, tm.Day())

	_, err = convertSerial(-1, false)
	require.Error(t, err)
}
