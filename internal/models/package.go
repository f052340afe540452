package models

import (
	"fmt"
	"time"
)

// EopkgPackage is a fully loaded eopkg archive: the metadata.xml
// descriptor and the files.xml manifest.
type EopkgPackage struct {
	Metadata Pisi  `yaml:"metadata"`
	Files    Files `yaml:"files"`
}

// Pisi is the root of metadata.xml
type Pisi struct {
	Source  Source  `yaml:"source"`
	Package Package `yaml:"package"`
}

// Source identifies the source package a binary package was built from
type Source struct {
	Name     string `yaml:"name"`
	Packager User   `yaml:"packager"`
}

// User is a packager identity
type User struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// String formats the user as "Name <email>"
func (u User) String() string {
	return fmt.Sprintf("%s <%s>", u.Name, u.Email)
}

// Package is the package descriptor found in metadata.xml and in
// repository indexes.
type Package struct {
	Name                string       `yaml:"name"`
	Summary             string       `yaml:"summary"`
	Description         string       `yaml:"description"`
	PartOf              string       `yaml:"partOf"`
	Licenses            []string     `yaml:"licenses"`
	RuntimeDependencies []Dependency `yaml:"runtimeDependencies"`
	History             []Update     `yaml:"history"`
	BuildHost           string       `yaml:"buildHost"`
	Distribution        string       `yaml:"distribution"`
	DistributionRelease string       `yaml:"distributionRelease"`
	Architecture        string       `yaml:"architecture"`
	InstalledSize       uint64       `yaml:"installedSize"`
	PackageFormat       string       `yaml:"packageFormat"`
	Source              Source       `yaml:"source"`
}

// LatestUpdate returns the newest history entry. eopkg writes History
// newest first.
func (p Package) LatestUpdate() (Update, bool) {
	if len(p.History) == 0 {
		return Update{}, false
	}
	return p.History[0], true
}

// Dependency is a runtime dependency on Name at or above Release
type Dependency struct {
	Release uint32 `yaml:"releaseFrom"`
	Name    string `yaml:"name"`
}

// Update is a single History entry
type Update struct {
	Release  uint32    `yaml:"release"`
	Date     time.Time `yaml:"date"`
	Version  string    `yaml:"version"`
	Comment  string    `yaml:"comment"`
	Packager User      `yaml:"packager"`
}

// Files is the files.xml manifest
type Files struct {
	Files []File `yaml:"files"`
}

// File is one installed file record
type File struct {
	Path string   `yaml:"path"`
	Type Filetype `yaml:"type"`
	UID  uint32   `yaml:"uid"`
	GID  uint32   `yaml:"gid"`
	Mode uint32   `yaml:"mode"`
	Hash string   `yaml:"hash"`
}

// Filetype represents the type of an installed file
type Filetype int

const (
	FiletypeExecutable Filetype = iota
	FiletypeLibrary
	FiletypeData
	FiletypeMan
	FiletypeDoc
)

// String returns the files.xml token for the Filetype
func (f Filetype) String() string {
	switch f {
	case FiletypeExecutable:
		return "executable"
	case FiletypeLibrary:
		return "library"
	case FiletypeData:
		return "data"
	case FiletypeMan:
		return "man"
	case FiletypeDoc:
		return "doc"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (f Filetype) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// ParseFiletype matches s exactly, case-sensitively, against the
// files.xml type tokens.
func ParseFiletype(s string) (Filetype, bool) {
	switch s {
	case "executable":
		return FiletypeExecutable, true
	case "library":
		return FiletypeLibrary, true
	case "data":
		return FiletypeData, true
	case "man":
		return FiletypeMan, true
	case "doc":
		return FiletypeDoc, true
	}
	return 0, false
}

// Index is a repository index (eopkg-index.xml)
type Index struct {
	Packages []IndexEntry `yaml:"packages"`
}

// IndexEntry is a package listed in an index together with the
// location and digest of its archive. URI, Hash and Size are empty when
// the index does not carry them.
type IndexEntry struct {
	Package Package `yaml:"package"`
	URI     string  `yaml:"uri,omitempty"`
	Hash    string  `yaml:"hash,omitempty"`
	Size    uint64  `yaml:"size,omitempty"`
}
