package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// Fingerprint identifies file content by SHA-256 digest and byte length.
// Two files are byte-identical iff their fingerprints compare equal, so the
// zero-allocation == comparison is the intended equality check.
type Fingerprint struct {
	SHA256 [sha256.Size]byte
	Size   int64
}

// Hex returns the lower-case hex encoding of the digest.
func (f Fingerprint) Hex() string {
	return hex.EncodeToString(f.SHA256[:])
}

// File hashes the file at path. Failures to open or read surface as wrapped
// I/O errors so callers can fold them into per-candidate outcomes.
func File(path string) (Fingerprint, error) {
	f, err := os.Open(path)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("open for fingerprint: %w", err)
	}
	defer f.Close()

	hasher := sha256.New()
	size, err := io.Copy(hasher, f)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("hash %s: %w", path, err)
	}

	var fp Fingerprint
	copy(fp.SHA256[:], hasher.Sum(nil))
	fp.Size = size
	return fp, nil
}
