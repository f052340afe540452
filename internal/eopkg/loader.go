// Package eopkg reads Solus eopkg package archives and repository indexes.
//
// An archive is a zip container whose metadata.xml describes the package
// and whose files.xml lists the files it installs. Both are mapped onto
// the types in internal/models; the install payload is never read.
package eopkg

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zip"
	"github.com/ralt/eopkginfo/internal/models"
	"github.com/ralt/eopkginfo/internal/schema"
	"github.com/sirupsen/logrus"
)

// Well-known archive members
const (
	MetadataMember = "metadata.xml"
	FilesMember    = "files.xml"
)

// Option configures a load
type Option func(*decoder)

// WithLogger sends diagnostics about dropped entries to l instead of the
// standard logger
func WithLogger(l *logrus.Logger) Option {
	return func(d *decoder) {
		d.log = logrus.NewEntry(l)
	}
}

// decoder carries per-load state. It is never shared between loads.
type decoder struct {
	log    *logrus.Entry
	member string

	// index entries may leave out RuntimeDependencies, History and the
	// nested Source
	index bool
}

func newDecoder(opts []Option) *decoder {
	d := &decoder{log: logrus.NewEntry(logrus.StandardLogger())}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// drop reports entries of a lenient collection that failed to map
func (d *decoder) drop(failures []error, record string) {
	for _, err := range failures {
		d.log.WithFields(logrus.Fields{
			"member": d.member,
			"record": record,
		}).Warnf("Skipping malformed %s: %v", record, err)
	}
}

// ParsePackage opens the eopkg archive at path and loads it
func ParsePackage(path string, opts ...Option) (*models.EopkgPackage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &models.EopkgError{
			Type: models.ErrContainer,
			Err:  err,
		}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &models.EopkgError{
			Type: models.ErrContainer,
			Err:  err,
		}
	}

	return ReadPackage(f, info.Size(), opts...)
}

// ReadPackage loads an eopkg archive of the given size from r. Both
// members must exist before either is mapped; the first error aborts
// the load and no partial package is returned.
func ReadPackage(r io.ReaderAt, size int64, opts ...Option) (*models.EopkgPackage, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, &models.EopkgError{
			Type: models.ErrContainer,
			Err:  fmt.Errorf("failed to open zip container: %w", err),
		}
	}

	metadataFile, err := findMember(zr, MetadataMember)
	if err != nil {
		return nil, err
	}
	filesFile, err := findMember(zr, FilesMember)
	if err != nil {
		return nil, err
	}

	d := newDecoder(opts)

	d.member = MetadataMember
	metadataRoot, err := readMember(metadataFile)
	if err != nil {
		return nil, models.WithMember(err, MetadataMember)
	}
	metadata, err := d.mapPisi(metadataRoot)
	if err != nil {
		return nil, models.WithMember(err, MetadataMember)
	}

	d.member = FilesMember
	filesRoot, err := readMember(filesFile)
	if err != nil {
		return nil, models.WithMember(err, FilesMember)
	}
	files, err := mapFiles(filesRoot)
	if err != nil {
		return nil, models.WithMember(err, FilesMember)
	}

	return &models.EopkgPackage{
		Metadata: metadata,
		Files:    files,
	}, nil
}

func findMember(zr *zip.Reader, name string) (*zip.File, error) {
	for _, f := range zr.File {
		if f.Name == name {
			return f, nil
		}
	}
	return nil, &models.EopkgError{
		Type:  models.ErrMemberNotFound,
		Field: name,
	}
}

// readMember reads a member fully and parses it into a document tree
func readMember(f *zip.File) (schema.Element, error) {
	rc, err := f.Open()
	if err != nil {
		return schema.Element{}, &models.EopkgError{
			Type: models.ErrContainer,
			Err:  err,
		}
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return schema.Element{}, &models.EopkgError{
			Type: models.ErrContainer,
			Err:  fmt.Errorf("failed to read member: %w", err),
		}
	}

	return schema.Parse(data)
}
