package dirmerklehash

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const (
	// SHA-256 of "hello world"
	helloWorldHash = "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	// SHA-256 of the empty byte sequence
	emptyHash = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
)

func TestHashFile(t *testing.T) {
	t.Run("KnownVector", func(t *testing.T) {
		tempDir := t.TempDir()
		path := filepath.Join(tempDir, "test.txt")
		if err := os.WriteFile(path, []byte("hello world"), 0644); err != nil {
			t.Fatalf("Failed to write test file: %v", err)
		}

		digest, err := HashFile(path)
		if err != nil {
			t.Fatalf("HashFile() failed: %v", err)
		}
		if digest.Hex() != helloWorldHash {
			t.Errorf("Expected %s, got %s", helloWorldHash, digest.Hex())
		}
	})

	t.Run("EmptyFile", func(t *testing.T) {
		tempDir := t.TempDir()
		path := filepath.Join(tempDir, "empty.txt")
		if err := os.WriteFile(path, nil, 0644); err != nil {
			t.Fatalf("Failed to write empty file: %v", err)
		}

		digest, err := HashFile(path)
		if err != nil {
			t.Fatalf("HashFile() failed: %v", err)
		}
		if digest.Hex() != emptyHash {
			t.Errorf("Expected empty digest %s, got %s", emptyHash, digest.Hex())
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		tempDir := t.TempDir()
		path := filepath.Join(tempDir, "does-not-exist")

		_, err := HashFile(path)
		if err == nil {
			t.Fatal("Expected error for missing file")
		}
		if !IsNotFound(err) {
			t.Errorf("Expected a not-found error, got %v", err)
		}

		var herr *HashError
		if !errors.As(err, &herr) {
			t.Fatalf("Expected *HashError, got %T", err)
		}
		if herr.Path != path {
			t.Errorf("Expected error path %s, got %s", path, herr.Path)
		}
	})
}

// TestHashStrategiesAgree verifies that the buffered and mapped read
// strategies produce identical digests for identical content, including at
// the threshold boundary where one byte of size difference flips the
// strategy.
func TestHashStrategiesAgree(t *testing.T) {
	tempDir := t.TempDir()

	content := bytes.Repeat([]byte("0123456789abcdef"), 256) // 4 KiB
	path := filepath.Join(tempDir, "data.bin")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	// Threshold above the size selects the buffered strategy, threshold at
	// the size selects the mapped strategy.
	buffered, err := hashFileWithThreshold(path, int64(len(content))+1)
	if err != nil {
		t.Fatalf("Buffered hash failed: %v", err)
	}
	mapped, err := hashFileWithThreshold(path, int64(len(content)))
	if err != nil {
		t.Fatalf("Mapped hash failed: %v", err)
	}

	if buffered != mapped {
		t.Errorf("Strategies disagree: buffered=%s mapped=%s", buffered.Hex(), mapped.Hex())
	}

	t.Run("BoundarySizes", func(t *testing.T) {
		// Same content, sizes one byte either side of the threshold.
		threshold := int64(4096)
		small := bytes.Repeat([]byte("x"), int(threshold)-1)
		large := append(bytes.Repeat([]byte("x"), int(threshold)-1), 'x')

		smallPath := filepath.Join(tempDir, "small.bin")
		largePath := filepath.Join(tempDir, "large.bin")
		if err := os.WriteFile(smallPath, small, 0644); err != nil {
			t.Fatalf("Failed to write small file: %v", err)
		}
		if err := os.WriteFile(largePath, large, 0644); err != nil {
			t.Fatalf("Failed to write large file: %v", err)
		}

		smallDigest, err := hashFileWithThreshold(smallPath, threshold)
		if err != nil {
			t.Fatalf("Hash of small file failed: %v", err)
		}
		largeDigest, err := hashFileWithThreshold(largePath, threshold)
		if err != nil {
			t.Fatalf("Hash of large file failed: %v", err)
		}

		// Different content must differ; identical content re-read through
		// the other strategy must match.
		if smallDigest == largeDigest {
			t.Error("Different content produced identical digests")
		}

		largeBuffered, err := hashFileWithThreshold(largePath, threshold+1024)
		if err != nil {
			t.Fatalf("Buffered hash of large file failed: %v", err)
		}
		if largeBuffered != largeDigest {
			t.Errorf("Strategies disagree at boundary: buffered=%s mapped=%s",
				largeBuffered.Hex(), largeDigest.Hex())
		}
	})

	t.Run("ZeroLengthNeverMapped", func(t *testing.T) {
		path := filepath.Join(tempDir, "zero.bin")
		if err := os.WriteFile(path, nil, 0644); err != nil {
			t.Fatalf("Failed to write zero-length file: %v", err)
		}

		// A threshold of 0 would select mapping for every file; zero-length
		// files must still hash as the empty digest.
		digest, err := hashFileWithThreshold(path, 1)
		if err != nil {
			t.Fatalf("Hash of zero-length file failed: %v", err)
		}
		if digest.Hex() != emptyHash {
			t.Errorf("Expected empty digest %s, got %s", emptyHash, digest.Hex())
		}
	})
}

func TestHashSymlink(t *testing.T) {
	t.Run("TargetTextOnly", func(t *testing.T) {
		tempDir := t.TempDir()

		target := filepath.Join(tempDir, "target.txt")
		if err := os.WriteFile(target, []byte("some content"), 0644); err != nil {
			t.Fatalf("Failed to write target: %v", err)
		}

		live := filepath.Join(tempDir, "live-link")
		if err := os.Symlink(target, live); err != nil {
			t.Fatalf("Failed to create symlink: %v", err)
		}

		digest, err := HashSymlink(live)
		if err != nil {
			t.Fatalf("HashSymlink() failed: %v", err)
		}

		// The digest covers only the stored target text, not the target's
		// content.
		contentDigest, err := HashFile(target)
		if err != nil {
			t.Fatalf("HashFile() failed: %v", err)
		}
		if digest == contentDigest {
			t.Error("Symlink digest should not match target content digest")
		}
	})

	t.Run("BrokenLinkHashesIdentically", func(t *testing.T) {
		tempDir := t.TempDir()

		target := filepath.Join(tempDir, "shared-target")

		live := filepath.Join(tempDir, "live-link")
		if err := os.WriteFile(target, []byte("x"), 0644); err != nil {
			t.Fatalf("Failed to write target: %v", err)
		}
		if err := os.Symlink(target, live); err != nil {
			t.Fatalf("Failed to create live symlink: %v", err)
		}
		liveDigest, err := HashSymlink(live)
		if err != nil {
			t.Fatalf("HashSymlink() on live link failed: %v", err)
		}

		// Remove the target; the link is now broken but its digest must not
		// change.
		if err := os.Remove(target); err != nil {
			t.Fatalf("Failed to remove target: %v", err)
		}
		brokenDigest, err := HashSymlink(live)
		if err != nil {
			t.Fatalf("HashSymlink() on broken link failed: %v", err)
		}

		if liveDigest != brokenDigest {
			t.Errorf("Broken link digest %s differs from live link digest %s",
				brokenDigest.Hex(), liveDigest.Hex())
		}
	})

	t.Run("LocationIndependent", func(t *testing.T) {
		tempDir := t.TempDir()
		subDir := filepath.Join(tempDir, "sub")
		if err := os.Mkdir(subDir, 0755); err != nil {
			t.Fatalf("Failed to create subdirectory: %v", err)
		}

		// Two links with identical (relative) target text at different
		// locations hash identically.
		linkA := filepath.Join(tempDir, "link-a")
		linkB := filepath.Join(subDir, "link-b")
		if err := os.Symlink("relative/target", linkA); err != nil {
			t.Fatalf("Failed to create link-a: %v", err)
		}
		if err := os.Symlink("relative/target", linkB); err != nil {
			t.Fatalf("Failed to create link-b: %v", err)
		}

		digestA, err := HashSymlink(linkA)
		if err != nil {
			t.Fatalf("HashSymlink(link-a) failed: %v", err)
		}
		digestB, err := HashSymlink(linkB)
		if err != nil {
			t.Fatalf("HashSymlink(link-b) failed: %v", err)
		}

		if digestA != digestB {
			t.Errorf("Same target text hashed differently: %s vs %s",
				digestA.Hex(), digestB.Hex())
		}
	})

	t.Run("NotASymlink", func(t *testing.T) {
		tempDir := t.TempDir()
		path := filepath.Join(tempDir, "regular.txt")
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatalf("Failed to write file: %v", err)
		}

		if _, err := HashSymlink(path); err == nil {
			t.Error("Expected error hashing a regular file as a symlink")
		}
	})
}
