package utils

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"strings"
)

// Checksum contains the digests eopkg tooling uses for an archive
type Checksum struct {
	SHA1   string // PackageHash in repository indexes
	SHA256 string
	Size   int64
}

// CalculateChecksums calculates all checksums for a file in a single pass
func CalculateChecksums(path string) (*Checksum, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReaderChecksums(f)
}

// ReaderChecksums hashes everything read from r
func ReaderChecksums(r io.Reader) (*Checksum, error) {
	sha1Hash := sha1.New()
	sha256Hash := sha256.New()

	// Use MultiWriter to calculate all hashes at once
	multiWriter := io.MultiWriter(sha1Hash, sha256Hash)

	n, err := io.Copy(multiWriter, r)
	if err != nil {
		return nil, err
	}

	return &Checksum{
		SHA1:   hex.EncodeToString(sha1Hash.Sum(nil)),
		SHA256: hex.EncodeToString(sha256Hash.Sum(nil)),
		Size:   n,
	}, nil
}

// MatchesHash reports whether hash equals the SHA1 or SHA256 digest,
// ignoring case
func (c *Checksum) MatchesHash(hash string) bool {
	hash = strings.ToLower(strings.TrimSpace(hash))
	return hash != "" && (hash == c.SHA1 || hash == c.SHA256)
}
