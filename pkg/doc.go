// Package dirmerklehash computes a single deterministic SHA-256 digest for a
// filesystem path using a Merkle-tree construction over directory contents.
//
// # Core API
//
// The main entry point is Walker, which hashes a file, symlink, or an entire
// directory tree in parallel:
//
//	pool := dirmerklehash.NewWorkerPool(0) // 0 = logical CPU count
//	walker := dirmerklehash.NewWalker(pool, dirmerklehash.WalkOptions{})
//	root, err := walker.Walk(nil, "/path/to/tree")
//	fmt.Printf("Root hash: %s\n", root.Digest.Hex())
//
// # Hashing rules
//
// Regular files hash their content bytes; files at or above the 1 MiB
// threshold are read through a read-only memory mapping rather than a buffer,
// with identical resulting digests. Symlinks hash their stored target text
// and are never dereferenced, so a broken link hashes the same as a live one.
// A directory's digest is the SHA-256 of one "<name> <hex-digest>\n" line per
// child, sorted by child name, making the root digest independent of readdir
// order and worker scheduling.
//
// # Configuration
//
// Enable debug output:
//
//	dirmerklehash.SetDebugFlags("walk,hash")
//	dirmerklehash.SetVerboseLevel(2)
//
// # Note on Internal API
//
// External consumers should primarily use Walker, WorkerPool, ResultNode and
// the configuration functions. The leaf hashing and combination functions
// (HashFile, HashSymlink, CombineEntries) are exported because their textual
// encodings are part of the digest's definition, but most callers only need
// Walk.
package dirmerklehash
