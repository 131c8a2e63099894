// Package buildcache records which input document a set of generated files
// came from, so that downstream tooling can detect stale output.
//
// The record is a single file, source_spec.sha256, holding the lowercase hex
// SHA-256 of the raw input bytes followed by a newline. It has no semantic
// coupling to the generated code.
package buildcache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DigestFileName is the name of the digest file inside the output directory.
const DigestFileName = "source_spec.sha256"

// Digest returns the lowercase hex SHA-256 of data.
func Digest(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// HashFile computes the SHA-256 hex digest of a file's contents.
// Returns empty string if the file doesn't exist or can't be read.
func HashFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return Digest(data)
}

// DigestPath returns the digest file path inside outDir.
func DigestPath(outDir string) string {
	return filepath.Join(outDir, DigestFileName)
}

// DigestFile renders the digest file content.
func DigestFile(digest string) []byte {
	return []byte(digest + "\n")
}

// ReadDigest returns the digest recorded in outDir, or "" when there is none.
func ReadDigest(outDir string) string {
	data, err := os.ReadFile(DigestPath(outDir))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// IsFresh reports whether outDir was generated from an input with the given
// digest. Both conditions must hold:
//
//  1. The recorded digest equals digest
//  2. Every file in outputs still exists
func IsFresh(outDir, digest string, outputs []string) bool {
	if digest == "" || ReadDigest(outDir) != digest {
		return false
	}
	for _, name := range outputs {
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(outDir, name)
		}
		if _, err := os.Stat(path); err != nil {
			return false
		}
	}
	return true
}

// WriteFile writes data to path atomically (write to temp, rename). A file that
// already holds identical bytes is left untouched so file watchers don't fire;
// changed reports whether anything was written.
func WriteFile(path string, data []byte) (changed bool, err error) {
	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, data) {
		return false, nil
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return false, fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return false, fmt.Errorf("renaming %s: %w", tmp, err)
	}
	return true, nil
}
