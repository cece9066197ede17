package dirmerklehash

import (
	"crypto/sha256"
	"fmt"
)

// DirEntry is the combination record for one direct child of a directory:
// the child's name, kind, and already-computed digest.
type DirEntry struct {
	Name   string
	Kind   EntryKind
	Digest Digest
}

// CombineEntries computes a directory's digest from its child records.
// The caller must supply entries sorted by name, byte-lexicographic
// ascending, with no duplicate names; directory enumeration produces unique
// names by construction.
//
// The combination text is one line per child:
//
//	<name> <digest-as-lowercase-hex>\n
//
// and the directory digest is the SHA-256 of that text. The name is used
// verbatim and the child's kind is not embedded in the line; this format is
// part of the digest's definition and must be reproduced byte-for-byte to
// get matching digests. An empty directory hashes the empty text, yielding
// a fixed well-known digest.
func CombineEntries(entries []DirEntry) Digest {
	hasher := sha256.New()
	for _, entry := range entries {
		fmt.Fprintf(hasher, "%s %s\n", entry.Name, entry.Digest.Hex())
	}

	var digest Digest
	hasher.Sum(digest[:0])
	return digest
}
