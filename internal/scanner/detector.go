package scanner

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// eopkg archives are zip containers
var zipMagic = []byte("PK\x03\x04")

const indexPrefix = "eopkg-index.xml"

// DetectPackageType determines the package type based on magic bytes and file extension
func DetectPackageType(path string) (PackageType, error) {
	basename := filepath.Base(path)

	// Indexes are recognised by name; their compression varies
	if strings.HasPrefix(basename, indexPrefix) && !strings.HasSuffix(basename, ".sha1sum") {
		return TypeIndex, nil
	}

	if filepath.Ext(path) != ".eopkg" {
		return TypeUnknown, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return TypeUnknown, err
	}
	defer f.Close()

	header := make([]byte, len(zipMagic))
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return TypeUnknown, err
	}
	header = header[:n]

	if bytes.HasPrefix(header, zipMagic) {
		return TypeEopkg, nil
	}

	return TypeUnknown, nil
}
