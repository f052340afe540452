package scanner

import "context"

// PackageType represents the type of a file found while scanning
type PackageType int

const (
	TypeUnknown PackageType = iota
	TypeEopkg
	TypeIndex
)

// String returns the string representation of PackageType
func (pt PackageType) String() string {
	switch pt {
	case TypeEopkg:
		return "eopkg"
	case TypeIndex:
		return "index"
	default:
		return "unknown"
	}
}

// ScannedPackage represents a package file found during scanning
type ScannedPackage struct {
	Path string
	Type PackageType
	Size int64
}

// Scanner interface for detecting and scanning packages
type Scanner interface {
	// Scan recursively scans a directory for packages
	Scan(ctx context.Context, dir string) ([]ScannedPackage, error)

	// DetectType determines the package type of a file
	DetectType(path string) (PackageType, error)
}
