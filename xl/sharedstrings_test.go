package xl

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSharedStringsInternDedup(t *testing.T) {
	t1 := NewSharedStrings()
	i0 := t1.Intern("hello")
	i1 := t1.Intern("world")
	i2 := t1.Intern("hello")

	require.Equal(t, 0, i0)
	require.Equal(t, 1, i1)
	require.Equal(t, i0, i2)
	require.Equal(t, 2, t1.Len())
}

func TestSharedStringsGetOutOfRange(t *testing.T) {
	t1 := NewSharedStrings()
	t1.Intern("a")
	_, ok := t1.Get(5)
	require.False(t, ok)
	s, ok := t1.Get(0)
	require.True(t, ok)
	require.Equal(t, "a", s)
}

func TestSharedStringsWriteAndParseRoundTrip(t *testing.T) {
	t1 := NewSharedStrings()
	t1.Intern("foo")
	t1.Intern("bar & baz")

	var buf bytes.Buffer
	require.NoError(t, t1.WriteXML(&buf))

	t2, err := parseSharedStrings(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, t1.Len(), t2.Len())
	s0, _ := t2.Get(0)
	s1, _ := t2.Get(1)
	require.Equal(t, "foo", s0)
	require.Equal(t, "bar & baz", s1)
}

func TestSharedStringsPreservesRichRuns(t *testing.T) {
	data := []byte(`<?xml version="1.0"?>
<sst xmlns="` + nsMain + `" count="1" uniqueCount="1">
  <si><r><t>Hello </t></r><r><t>World</t></r></si>
</sst>`)
	t1, err := parseSharedStrings(data)
	require.NoError(t, err)
	require.Equal(t, 1, t1.Len())
	s, ok := t1.Get(0)
	require.True(t, ok)
	require.Equal(t, "Hello World", s)

	var buf bytes.Buffer
	require.NoError(t, t1.WriteXML(&buf))
	require.Contains(t, buf.String(), "<r><t>Hello </t></r>")
}
