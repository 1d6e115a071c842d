package xl

import (
	"hash/fnv"

	"github.com/google/uuid"
)

// BlobHash derives a stable identifier for an embedded image's raw bytes,
// letting the writer dedupe identical media across cells and sheets rather
// than emitting one /xl/media part per picture reference.
func BlobHash(blob []byte) uuid.UUID {
	h := fnv.New128()
	h.Write(blob)
	uid, _ := uuid.FromBytes(h.Sum([]byte{}))
	return uid
}
