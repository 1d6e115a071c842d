package xl

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Storage is the interface for writing Excel file parts (XML and media
// files). Implementations can write to ZIP archives or directory
// structures. Kept from the teacher's zfs.go.
type Storage interface {
	WriteBlob(path string, blob []byte) error
}

// DirStorage writes Excel file parts to a directory structure on disk.
// Useful for debugging: the generated XML parts can be inspected directly.
type DirStorage struct {
	Dir string
}

// ZipStorage writes Excel file parts to a ZIP archive, creating a standard .xlsx file.
type ZipStorage struct {
	z *zip.Writer
}

// NewDirStorage creates a directory-based storage rooted at dir. The
// directory is created on first write if it doesn't exist.
func NewDirStorage(dir string) *DirStorage {
	return &DirStorage{Dir: dir}
}

// WriteBlob writes a file part to the directory structure, creating any
// necessary parent directories.
func (ds *DirStorage) WriteBlob(path string, blob []byte) error {
	path = strings.TrimPrefix(path, "/")
	fn := filepath.Join(ds.Dir, path)
	if err := os.MkdirAll(filepath.Dir(fn), 0777); err != nil {
		return err
	}
	return os.WriteFile(fn, blob, 0666)
}

// NewZipStorage creates a ZIP-based storage writing to out (typically an
// *os.File opened for writing, or a *bytes.Buffer for SaveBytes).
func NewZipStorage(out io.Writer) *ZipStorage {
	return &ZipStorage{z: zip.NewWriter(out)}
}

// SetCompressionLevel overrides the deflate level used for every part
// written afterward (compress/flate levels, -2..9); must be called before
// the first WriteBlob, matching kolayxlsxstream's RegisterCompressor timing
// (the zip format commits to a part's compression method when it is
// opened, not when the archive is finalized).
func (zs *ZipStorage) SetCompressionLevel(level int) {
	zs.z.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})
}

// WriteBlob writes a file part as a ZIP entry.
func (zs *ZipStorage) WriteBlob(path string, blob []byte) error {
	path = strings.TrimPrefix(path, "/")
	f, err := zs.z.Create(path)
	if err != nil {
		return err
	}
	_, err = f.Write(blob)
	return err
}

// Close finalizes the ZIP archive. Must be called after all writes are
// complete, or the resulting file is invalid.
func (zs *ZipStorage) Close() error {
	return zs.z.Close()
}

// Container is a read-only view of an already-opened .xlsx ZIP archive,
// indexed by part path for the read pipeline (spec §4.9). The teacher's
// Storage/ZipStorage/DirStorage types only ever wrote; OpenFile/OpenBytes
// add the read direction on top of the same archive/zip dependency.
type Container struct {
	parts map[string][]byte // path (leading "/", forward slashes) -> raw bytes
}

// OpenFile opens an .xlsx file from disk and reads all its parts into memory.
func OpenFile(path string) (*Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIOFailure, err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIOFailure, err)
	}
	return OpenReaderAt(f, info.Size())
}

// OpenBytes opens an .xlsx package already held in memory.
func OpenBytes(data []byte) (*Container, error) {
	return OpenReaderAt(bytes.NewReader(data), int64(len(data)))
}

// OpenReaderAt opens an .xlsx package from any io.ReaderAt of known size
// (the shape archive/zip.NewReader requires).
func OpenReaderAt(r io.ReaderAt, size int64) (*Container, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptContainer, err)
	}
	c := &Container{parts: map[string][]byte{}}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: opening %s: %v", ErrCorruptContainer, f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrCorruptContainer, f.Name, err)
		}
		c.parts["/"+strings.TrimPrefix(f.Name, "/")] = data
	}
	return c, nil
}

// Part returns the raw bytes of the part at abspath (leading "/"), or
// ErrCorruptContainer wrapped if absent.
func (c *Container) Part(abspath string) ([]byte, error) {
	data, ok := c.parts[abspath]
	if !ok {
		return nil, fmt.Errorf("%w: missing part %s", ErrCorruptContainer, abspath)
	}
	return data, nil
}

// HasPart reports whether abspath exists in the container.
func (c *Container) HasPart(abspath string) bool {
	_, ok := c.parts[abspath]
	return ok
}

// PartPaths returns every part path present in the container, in no
// particular order; used by the read pipeline to identify carry-over parts
// not otherwise consumed.
func (c *Container) PartPaths() []string {
	out := make([]string, 0, len(c.parts))
	for p := range c.parts {
		out = append(out, p)
	}
	return out
}
