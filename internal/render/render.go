// Package render prints loaded packages, indexes and scan results.
package render

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/ralt/eopkginfo/internal/models"
	"github.com/ralt/eopkginfo/internal/utils"
	"gopkg.in/yaml.v3"
)

// Format selects how results are printed
type Format string

const (
	FormatTable Format = "table"
	FormatYAML  Format = "yaml"
	FormatDump  Format = "dump"
)

// ParseFormat validates an --output value
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatTable, FormatYAML, FormatDump:
		return f, nil
	}
	return "", fmt.Errorf("unsupported output format %q (want table, yaml or dump)", s)
}

// ArchiveReport is what `info` prints for one archive
type ArchiveReport struct {
	Path     string               `yaml:"path"`
	Checksum *utils.Checksum      `yaml:"checksum,omitempty"`
	Signer   string               `yaml:"signer,omitempty"`
	Package  *models.EopkgPackage `yaml:"package"`
}

// ScanResult is the outcome of loading one archive during a scan
type ScanResult struct {
	Path     string          `yaml:"path"`
	Package  *models.Package `yaml:"package,omitempty"`
	Checksum *utils.Checksum `yaml:"checksum,omitempty"`
	// Indexed is empty when no index was given or the package is not in it
	Indexed string `yaml:"indexed,omitempty"`
	Error   string `yaml:"error,omitempty"`
}

// ScanReport is what `scan` prints
type ScanReport struct {
	Results    []ScanResult        `yaml:"results"`
	Duplicates map[string][]string `yaml:"duplicates,omitempty"`
}

// Index status values for ScanResult.Indexed
const (
	IndexMatch    = "match"
	IndexMismatch = "mismatch"
	IndexMissing  = "missing"
)

// Archive writes report to w in the given format
func Archive(w io.Writer, format Format, report ArchiveReport) error {
	switch format {
	case FormatYAML:
		return writeYAML(w, report)
	case FormatDump:
		spew.Fdump(w, report)
		return nil
	default:
		return archiveTables(w, report)
	}
}

// Index writes the entries of index to w in the given format
func Index(w io.Writer, format Format, index *models.Index) error {
	switch format {
	case FormatYAML:
		return writeYAML(w, index)
	case FormatDump:
		spew.Fdump(w, index)
		return nil
	default:
		return indexTable(w, index)
	}
}

// Scan writes report to w in the given format
func Scan(w io.Writer, format Format, report ScanReport) error {
	switch format {
	case FormatYAML:
		return writeYAML(w, report)
	case FormatDump:
		spew.Fdump(w, report)
		return nil
	default:
		return scanTables(w, report)
	}
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}
