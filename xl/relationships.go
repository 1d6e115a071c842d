package xl

import (
	"encoding/xml"
	"fmt"
	"io"

	srwxml "github.com/adnsv/srw/xml"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// RelInfo is one relationship entry in a .rels part: a schema type URI and
// a path (relative or absolute) to the target part. Kept from the teacher's
// writer.go verbatim.
type RelInfo struct {
	Type   string
	Target string
}

// Rels is a .rels part: relationship id -> RelInfo. The teacher modeled
// this as two separate ad hoc maps (GlobalRels, WorkbookRels) on Writer;
// this generalizes it to a named type so the read path can also produce
// one per part (root .rels, xl/_rels/workbook.xml.rels, and one per
// worksheet's _rels/sheetN.xml.rels), which the teacher's write-only
// pipeline never needed.
type Rels map[string]RelInfo

// WriteXML emits a _rels/*.rels part with deterministic (sorted by id) entry order.
func (rels Rels) WriteXML(w io.Writer) error {
	x := srwxml.NewWriter(w, srwxml.WriterConfig{Indent: srwxml.Indent2Spaces})
	x.XmlStandaloneDecl()
	x.OTag("Relationships")
	x.Attr("xmlns", nsPackageRels)
	err := enumerate(rels, func(rid string, info RelInfo) error {
		x.OTag("+Relationship").Attr("Id", rid).Attr("Type", info.Type).Attr("Target", info.Target)
		x.CTag()
		return nil
	})
	if err != nil {
		return err
	}
	x.CTag()
	return nil
}

type xmlRelationships struct {
	Relationship []struct {
		ID     string `xml:"Id,attr"`
		Type   string `xml:"Type,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

// ParseRelsXML parses a _rels/*.rels part.
func ParseRelsXML(data []byte) (Rels, error) {
	var doc xmlRelationships
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: rels: %v", ErrMalformedXML, err)
	}
	rels := Rels{}
	for _, r := range doc.Relationship {
		rels[r.ID] = RelInfo{Type: r.Type, Target: r.Target}
	}
	return rels, nil
}

// ContentTypes is the [Content_Types].xml manifest: a Default map (file
// extension -> content type) plus an Override map (exact part name ->
// content type) for parts whose type can't be inferred from extension
// alone. Generalized from the teacher's DefaultContentTypes/
// PartContentTypes fields on Writer into its own read/write-capable type.
type ContentTypes struct {
	Defaults  map[string]string // extension -> content type
	Overrides map[string]string // part name (absolute, leading "/") -> content type
}

// NewContentTypes returns a manifest seeded with the two extensions every
// package needs regardless of contents.
func NewContentTypes() *ContentTypes {
	return &ContentTypes{
		Defaults: map[string]string{
			"xml":  "application/xml",
			"rels": "application/vnd.openxmlformats-package.relationships+xml",
		},
		Overrides: map[string]string{},
	}
}

// WriteXML emits [Content_Types].xml with deterministic entry order.
func (ct *ContentTypes) WriteXML(w io.Writer) error {
	x := srwxml.NewWriter(w, srwxml.WriterConfig{Indent: srwxml.Indent2Spaces})
	x.XmlStandaloneDecl()
	x.OTag("Types")
	x.Attr("xmlns", nsContentTypes)
	if err := enumerate(ct.Defaults, func(ext, ctype string) error {
		x.OTag("+Default").Attr("Extension", ext).Attr("ContentType", ctype).CTag()
		return nil
	}); err != nil {
		return err
	}
	if err := enumerate(ct.Overrides, func(partName, ctype string) error {
		x.OTag("+Override").Attr("PartName", partName).Attr("ContentType", ctype).CTag()
		return nil
	}); err != nil {
		return err
	}
	x.CTag()
	return nil
}

type xmlContentTypes struct {
	Default []struct {
		Extension   string `xml:"Extension,attr"`
		ContentType string `xml:"ContentType,attr"`
	} `xml:"Default"`
	Override []struct {
		PartName    string `xml:"PartName,attr"`
		ContentType string `xml:"ContentType,attr"`
	} `xml:"Override"`
}

// ParseContentTypesXML parses [Content_Types].xml.
func ParseContentTypesXML(data []byte) (*ContentTypes, error) {
	var doc xmlContentTypes
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: [Content_Types].xml: %v", ErrMalformedXML, err)
	}
	ct := &ContentTypes{Defaults: map[string]string{}, Overrides: map[string]string{}}
	for _, d := range doc.Default {
		ct.Defaults[d.Extension] = d.ContentType
	}
	for _, o := range doc.Override {
		ct.Overrides[o.PartName] = o.ContentType
	}
	return ct, nil
}

// enumerate calls callback for each entry of m in ascending key order, so
// writer output is byte-deterministic across runs — the teacher's own
// helper, kept verbatim.
func enumerate[M ~map[K]V, K constraints.Ordered, V any](m M, callback func(k K, v V) error) error {
	keys := maps.Keys(m)
	slices.Sort(keys)
	for _, k := range keys {
		if err := callback(k, m[k]); err != nil {
			return err
		}
	}
	return nil
}
