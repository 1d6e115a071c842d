package xl

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	srwxml "github.com/adnsv/srw/xml"
)

// SharedStrings is the workbook-level interned string table described in
// spec §4.3. It is grounded on TsubasaBE-go-xlsb/stringtable's package
// shape (New/Get/Len over an ordered slice with a hash index) translated
// from BIFF12 binary records to SpreadsheetML's <sst>/<si>/<t> XML, and on
// the teacher's own sharedStringMap interning pattern in writer.go.
type SharedStrings struct {
	values []string
	index  map[string]int

	// richRuns preserves the original <si>...</si> bytes verbatim for
	// entries that carried rich-text runs, keyed by index, so round-tripping
	// never destroys formatting runs (spec §4.3 / §9).
	richRuns map[int][]byte
}

// NewSharedStrings returns an empty shared-string table.
func NewSharedStrings() *SharedStrings {
	return &SharedStrings{index: map[string]int{}}
}

// Intern adds s to the table if not already present and returns its stable
// 0-based index. Amortized O(1) via the hash index.
func (t *SharedStrings) Intern(s string) int {
	if i, ok := t.index[s]; ok {
		return i
	}
	i := len(t.values)
	t.values = append(t.values, s)
	t.index[s] = i
	return i
}

// Get returns the string at idx and whether idx was in range.
func (t *SharedStrings) Get(idx int) (string, bool) {
	if idx < 0 || idx >= len(t.values) {
		return "", false
	}
	return t.values[idx], true
}

// Len returns the number of interned strings.
func (t *SharedStrings) Len() int { return len(t.values) }

// siRun is one <r> rich-text run within an <si>.
type siRun struct {
	Text string `xml:"t"`
}

// siElement is the decode target for one <si> element. Rich-text runs show
// up as repeated <r> children instead of a single <t>; the plain-text
// fallback flattens their text while the original bytes are kept separately
// for verbatim re-emission.
type siElement struct {
	Text string  `xml:"t"`
	Runs []siRun `xml:"r"`
}

// parseSharedStrings parses an xl/sharedStrings.xml part.
func parseSharedStrings(data []byte) (*SharedStrings, error) {
	t := NewSharedStrings()
	dec := xml.NewDecoder(bytes.NewReader(data))
	idx := 0
	for {
		off := dec.InputOffset()
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: sharedStrings.xml: %v", ErrMalformedXML, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "si" {
			continue
		}

		_, el, err := copyAndDecodeElement(dec, start)
		if err != nil {
			return nil, fmt.Errorf("%w: sharedStrings.xml si[%d]: %v", ErrMalformedXML, idx, err)
		}
		raw := data[off:dec.InputOffset()]

		text := el.Text
		if len(el.Runs) > 0 {
			text = ""
			for _, r := range el.Runs {
				text += r.Text
			}
			t.richRuns = ensureRichRuns(t.richRuns)
			t.richRuns[idx] = raw
		}
		t.values = append(t.values, text)
		t.index[text] = idx
		idx++
	}
	return t, nil
}

// copyAndDecodeElement both decodes start..matching-end into v and returns
// a re-encoded copy of the element (including its own start/end tags), made
// by mirroring every token it reads through an xml.Encoder until the
// matching EndElement is reached. The copy is not byte-identical to the
// input (the encoder adds an xmlns attribute to every namespaced element),
// so parseSharedStrings slices the original bytes by input offset instead.
func copyAndDecodeElement(dec *xml.Decoder, start xml.StartElement) ([]byte, siElement, error) {
	var el siElement
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)

	depth := 1
	if err := enc.EncodeToken(start); err != nil {
		return nil, el, err
	}

	var runs []siRun
	var curRun *siRun
	var text string
	var inText, inRunText bool

	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return nil, el, err
		}
		switch tk := tok.(type) {
		case xml.StartElement:
			depth++
			if tk.Name.Local == "t" && depth == 2 {
				inText = true
			} else if tk.Name.Local == "r" && depth == 2 {
				runs = append(runs, siRun{})
				curRun = &runs[len(runs)-1]
			} else if tk.Name.Local == "t" && depth == 3 && curRun != nil {
				inRunText = true
			}
		case xml.EndElement:
			depth--
			if tk.Name.Local == "t" {
				inText = false
				inRunText = false
			}
		case xml.CharData:
			if inRunText && curRun != nil {
				curRun.Text += string(tk)
			} else if inText {
				text += string(tk)
			}
		}
		if err := enc.EncodeToken(xml.CopyToken(tok)); err != nil {
			return nil, el, err
		}
	}
	if err := enc.Flush(); err != nil {
		return nil, el, err
	}

	el.Text = text
	el.Runs = runs
	return buf.Bytes(), el, nil
}

func ensureRichRuns(m map[int][]byte) map[int][]byte {
	if m == nil {
		return map[int][]byte{}
	}
	return m
}

// WriteXML emits the <sst> part. Entries with preserved rich XML re-emit
// the original bytes instead of a plain <t> wrapper, per spec §4.3. Raw
// writes go straight to the underlying io.Writer between x's sibling <si>
// elements, which is safe because they never change the open-tag depth x
// is tracking (each raw write is a complete, self-closed sibling element).
func (t *SharedStrings) WriteXML(w io.Writer) error {
	x := srwxml.NewWriter(w, srwxml.WriterConfig{Indent: srwxml.Indent2Spaces})
	x.XmlStandaloneDecl()
	x.OTag("sst")
	x.Attr("xmlns", nsMain)
	x.Attr("count", len(t.values))
	x.Attr("uniqueCount", len(t.values))

	for i, s := range t.values {
		if raw, ok := t.richRuns[i]; ok {
			if _, err := w.Write(raw); err != nil {
				return err
			}
			continue
		}
		x.OTag("+si")
		x.OTag("t").Write(s).CTag()
		x.CTag()
	}
	x.CTag()
	return nil
}
