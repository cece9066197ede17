package dirmerklehash

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// Digest is a SHA-256 digest value. Digests are immutable once computed;
// directory digests are derived from child digests, never by mutation.
type Digest [DigestSize]byte

// Hex returns the digest as a 64-character lowercase hexadecimal string.
// This rendering is part of the digest format: directory combination lines
// embed child digests in exactly this form.
func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}

// HashFile calculates the SHA-256 digest of a regular file's contents.
// Files below LargeFileThreshold are read whole into memory; files at or
// above it are hashed through a read-only memory mapping without an
// intervening copy. The two strategies feed identical bytes into the hash,
// so the choice is invisible in the resulting digest.
func HashFile(path string) (Digest, error) {
	return hashFileWithThreshold(path, LargeFileThreshold)
}

// HashSymlink calculates the SHA-256 digest of a symlink's stored target
// text. The link is never dereferenced, so a broken link hashes identically
// to a live one with the same target.
func HashSymlink(path string) (Digest, error) {
	target, err := os.Readlink(path)
	if err != nil {
		return Digest{}, &HashError{Op: "readlink", Path: path, Err: err}
	}
	return sha256.Sum256([]byte(target)), nil
}

// hashFileWithThreshold is the strategy fork behind HashFile. The threshold
// is a parameter so the walker can apply a configured override and tests can
// force the mapped path onto small files.
func hashFileWithThreshold(path string, threshold int64) (Digest, error) {
	file, err := os.Open(path)
	if err != nil {
		return Digest{}, &HashError{Op: "open", Path: path, Err: err}
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return Digest{}, &HashError{Op: "stat", Path: path, Err: err}
	}

	size := info.Size()
	if IsDebugEnabled("hash") {
		VerboseLog(3, "hashFileWithThreshold: %s size=%d threshold=%d", path, size, threshold)
	}

	// Zero-length files always take the buffered path: mapping a zero-length
	// file fails with EINVAL, and the digest of empty input is the same
	// either way.
	if size == 0 || size < threshold {
		return hashFileBuffered(file, path)
	}
	return hashFileMapped(file, path, size)
}

// hashFileBuffered reads the whole file into memory and hashes the buffer.
func hashFileBuffered(file *os.File, path string) (Digest, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return Digest{}, &HashError{Op: "read", Path: path, Err: err}
	}
	return sha256.Sum256(data), nil
}

// hashFileMapped maps the file read-only and feeds the mapping into the hash
// in HashChunkSize chunks. The mapping is private and read-only for the
// duration of the hash; no bytes are copied into an intermediate buffer.
func hashFileMapped(file *os.File, path string, size int64) (Digest, error) {
	data, err := unix.Mmap(int(file.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return Digest{}, &HashError{Op: "mmap", Path: path, Err: err}
	}
	defer unix.Munmap(data)

	hasher := sha256.New()
	for offset := 0; offset < len(data); offset += HashChunkSize {
		end := offset + HashChunkSize
		if end > len(data) {
			end = len(data)
		}
		hasher.Write(data[offset:end])
	}

	var digest Digest
	hasher.Sum(digest[:0])
	return digest, nil
}
