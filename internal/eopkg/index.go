package eopkg

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ralt/eopkginfo/internal/models"
	"github.com/ralt/eopkginfo/internal/schema"
	"github.com/ralt/eopkginfo/internal/utils"
)

// ParseIndex reads a repository index such as eopkg-index.xml.xz
func ParseIndex(path string, opts ...Option) (*models.Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &models.EopkgError{
			Type: models.ErrContainer,
			Err:  err,
		}
	}
	defer f.Close()

	return ReadIndex(f, filepath.Base(path), opts...)
}

// ReadIndex reads an index from r. The compression is picked from name.
// Package entries that fail to map are reported and left out.
func ReadIndex(r io.Reader, name string, opts ...Option) (*models.Index, error) {
	dr, err := utils.Decompressor(name, r)
	if err != nil {
		return nil, &models.EopkgError{
			Type:   models.ErrDecode,
			Member: name,
			Err:    fmt.Errorf("failed to decompress: %w", err),
		}
	}
	defer dr.Close()

	data, err := io.ReadAll(dr)
	if err != nil {
		return nil, &models.EopkgError{
			Type:   models.ErrDecode,
			Member: name,
			Err:    fmt.Errorf("failed to decompress: %w", err),
		}
	}

	root, err := schema.Parse(data)
	if err != nil {
		return nil, models.WithMember(err, name)
	}

	d := newDecoder(opts)
	d.member = name
	d.index = true

	if root.Tag() != "PISI" {
		return nil, &models.EopkgError{
			Type:   models.ErrInvalidStructure,
			Member: name,
			Path:   root.Path(),
			Field:  "PISI",
		}
	}

	entries, failures := schema.Collect(root.AllChildren("Package"), d.mapIndexEntry)
	d.drop(failures, "Package")

	return &models.Index{Packages: entries}, nil
}

func (d *decoder) mapIndexEntry(el schema.Element) (models.IndexEntry, error) {
	pkg, err := d.mapPackage(el)
	if err != nil {
		return models.IndexEntry{}, err
	}

	entry := models.IndexEntry{Package: pkg}
	entry.URI, _ = el.OptionalChildText("PackageURI")
	entry.Hash, _ = el.OptionalChildText("PackageHash")
	if _, ok := el.OptionalChildText("PackageSize"); ok {
		if entry.Size, err = el.RequiredChildUint("PackageSize", 64); err != nil {
			return models.IndexEntry{}, err
		}
	}

	return entry, nil
}
