package dirmerklehash

import (
	"errors"
	"fmt"
	"io/fs"
)

// Sentinel errors for package dirmerklehash.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// ErrShutdown is returned when a walk is interrupted by the caller's
	// shutdown channel before a root digest could be produced.
	ErrShutdown = errors.New("walk interrupted by shutdown")

	// ErrUnsupportedEntry is returned for paths that are neither a regular
	// file, a symlink, nor a directory (sockets, fifos, devices).
	ErrUnsupportedEntry = errors.New("not a regular file, symlink, or directory")
)

// HashError wraps an I/O failure with the operation and the path it occurred
// on. Every leaf hashing or directory enumeration failure surfaces as a
// HashError so callers can report the failing path; no partial digest is
// ever substituted for a failed entry.
type HashError struct {
	Op   string // "lstat", "open", "read", "mmap", "readlink", "readdir"
	Path string
	Err  error
}

func (e *HashError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *HashError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err was caused by a missing path, such as a
// root path that does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// IsPermissionDenied reports whether err was caused by insufficient
// permissions on some path in the tree.
func IsPermissionDenied(err error) bool {
	return errors.Is(err, fs.ErrPermission)
}
