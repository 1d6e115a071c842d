package xl

// XML namespace and content-type URIs shared across the styles, shared
// strings, relationships, and container parts. The teacher inlined these as
// repeated string literals at each call site (writer.go); they're pulled
// out here once the read path needs to match on them too, instead of
// duplicating the literals a second time.
const (
	nsMain          = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
	nsRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPackageRels   = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"

	relTypeOfficeDocument = nsRelationships + "/officeDocument"
	relTypeWorksheet      = nsRelationships + "/worksheet"
	relTypeStyles         = nsRelationships + "/styles"
	relTypeSharedStrings  = nsRelationships + "/sharedStrings"
	relTypeImage          = nsRelationships + "/image"
	relTypeCoreProps      = nsPackageRels + "/metadata/core-properties"
	relTypeExtendedProps  = nsRelationships + "/extended-properties"
	relTypeHyperlink      = nsRelationships + "/hyperlink"
	relTypeTable          = nsRelationships + "/table"
)
