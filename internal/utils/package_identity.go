package utils

import (
	"fmt"
	"sort"

	"github.com/ralt/eopkginfo/internal/models"
)

// PackageIdentity returns a unique identifier for a package:
// name:version-release:arch, taken from the newest History entry
func PackageIdentity(pkg models.Package) string {
	update, ok := pkg.LatestUpdate()
	if !ok {
		return fmt.Sprintf("%s:%s", pkg.Name, pkg.Architecture)
	}
	return fmt.Sprintf("%s:%s-%d:%s", pkg.Name, update.Version, update.Release, pkg.Architecture)
}

// DetectDuplicates groups archive paths by package identity and returns
// the identities shared by more than one archive
func DetectDuplicates(packages map[string]models.Package) map[string][]string {
	byIdentity := make(map[string][]string)
	for path, pkg := range packages {
		id := PackageIdentity(pkg)
		byIdentity[id] = append(byIdentity[id], path)
	}

	duplicates := make(map[string][]string)
	for id, paths := range byIdentity {
		if len(paths) > 1 {
			sort.Strings(paths)
			duplicates[id] = paths
		}
	}
	return duplicates
}
