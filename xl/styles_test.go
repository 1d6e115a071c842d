package xl

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStylesRegistryInternXFDedup(t *testing.T) {
	r := NewStylesRegistry()
	xf := XF{Font: Font{Bold: true}, Fill: Fill{PatternType: PatternSolid, FgColor: RGBColor("FFFF0000")}}
	i1 := r.InternXF(xf)
	i2 := r.InternXF(xf)
	require.Equal(t, i1, i2)
	require.NotEqual(t, 0, i1, "a non-empty XF must not collapse into the default entry")
}

func TestStylesRegistryEmptyXFIsIndexZero(t *testing.T) {
	r := NewStylesRegistry()
	require.Equal(t, 0, r.InternXF(XF{}))
}

func TestStylesRegistryInternNumberFormatBuiltin(t *testing.T) {
	r := NewStylesRegistry()
	code, _ := builtInNumFmtCode(14)
	id := r.InternNumberFormat(NumberFormat{ID: 14, Code: code})
	require.Equal(t, 14, id, "a built-in format must not be re-interned as a custom entry")
}

func TestStylesRegistryInternNumberFormatCustom(t *testing.T) {
	r := NewStylesRegistry()
	id1 := r.InternNumberFormat(NumberFormat{Code: "0.000%"})
	require.GreaterOrEqual(t, id1, 164)
	id2 := r.InternNumberFormat(NumberFormat{Code: "0.000%"})
	require.Equal(t, id1, id2)
}

func TestStylesRegistryXFRoundTrip(t *testing.T) {
	r := NewStylesRegistry()
	xf := XF{
		Font:      Font{Bold: true, Name: "Arial", Size: 12},
		Alignment: Alignment{Horizontal: HAlignCenter},
	}
	idx := r.InternXF(xf)

	var buf bytes.Buffer
	require.NoError(t, r.WriteXML(&buf))

	r2, err := ParseStylesXML(buf.Bytes())
	require.NoError(t, err)
	got := r2.XF(idx)
	require.True(t, got.Font.Bold)
	require.Equal(t, "Arial", got.Font.Name)
	require.Equal(t, HAlignCenter, got.Alignment.Horizontal)
}

func TestXFOutOfRangeReturnsDefault(t *testing.T) {
	r := NewStylesRegistry()
	require.True(t, r.XF(999).Empty())
	require.True(t, r.XF(-1).Empty())
}
