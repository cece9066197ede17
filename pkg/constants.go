package dirmerklehash

import "crypto/sha256"

// Size constants for the file reading strategies
const (
	// LargeFileThreshold is the size at which hashing switches from a
	// whole-file buffer read to a read-only memory mapping. The threshold
	// only selects the I/O strategy; both strategies produce identical
	// digests for identical content.
	LargeFileThreshold = 1024 * 1024 // 1 MiB

	// HashChunkSize is the chunk size used when feeding a mapped file into
	// the hash, chosen for cache locality.
	HashChunkSize = 64 * 1024 // 64 KiB
)

// DigestSize is the byte length of a Digest (SHA-256).
const DigestSize = sha256.Size

// EntryKind classifies a filesystem path for hashing purposes. The set is
// closed: every path the walker accepts is exactly one of these.
type EntryKind int

const (
	KindFile    EntryKind = iota // regular file, hashes content bytes
	KindSymlink                  // symlink, hashes stored target text
	KindDir                      // directory, hashes combined child lines
)

// String returns the kind tag used in verbose result lines.
func (k EntryKind) String() string {
	switch k {
	case KindFile:
		return "FILE"
	case KindSymlink:
		return "LINK"
	case KindDir:
		return "DIR"
	default:
		return "unknown"
	}
}
