package xl

import "errors"

// Error taxonomy. Each sentinel is wrapped with fmt.Errorf("%w", ...) at the
// call site so callers can use errors.Is against the sentinel while still
// getting a human-readable message.
var (
	// ErrCorruptContainer is returned when the ZIP package itself is invalid
	// or a required part (the root .rels, the workbook part it names, a
	// worksheet the workbook references) is missing. The reader does not
	// check for [Content_Types].xml: a package without one loads normally.
	ErrCorruptContainer = errors.New("xl: corrupt container")

	// ErrMalformedXML is returned when a required part contains XML the
	// parser cannot make sense of, including a shared-string index that is
	// out of range. An out-of-range style index is not an error: the cell
	// gets the default XF.
	ErrMalformedXML = errors.New("xl: malformed xml")

	// ErrUnsupportedFeature marks a feature this codec declines to handle.
	// The writer returns it for a cell picture whose extension is neither
	// PNG nor JPEG; the reader never returns it.
	ErrUnsupportedFeature = errors.New("xl: unsupported feature")

	// ErrInvalidArgument covers bad coordinates, malformed A1 references,
	// and duplicate sheet names.
	ErrInvalidArgument = errors.New("xl: invalid argument")

	// ErrInvalidMerge is returned when a merge range overlaps an existing one.
	ErrInvalidMerge = errors.New("xl: invalid merge range")

	// ErrWriteOrder is returned by the streaming encoder when its methods
	// are called out of sequence.
	ErrWriteOrder = errors.New("xl: streaming encoder used out of order")

	// ErrDoubleClose is returned when the streaming encoder's Close is
	// invoked more than once.
	ErrDoubleClose = errors.New("xl: streaming encoder closed twice")

	// ErrIOFailure wraps filesystem/ZIP write errors.
	ErrIOFailure = errors.New("xl: i/o failure")

	// ErrInternal marks an invariant violation that should be unreachable.
	ErrInternal = errors.New("xl: internal invariant violation")
)
