package cli

import (
	"context"
	"fmt"

	"github.com/ralt/eopkginfo/internal/eopkg"
	"github.com/ralt/eopkginfo/internal/models"
	"github.com/ralt/eopkginfo/internal/render"
	"github.com/ralt/eopkginfo/internal/scanner"
	"github.com/ralt/eopkginfo/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewScanCmd creates the scan command
func NewScanCmd() *cobra.Command {
	var config models.InspectConfig

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Load every eopkg archive below a directory",
		Long: `Scans the input directory for .eopkg archives and loads each of them.
Archives that fail to load are reported and the scan continues. Archives
sharing the same name, version, release and architecture are listed as
duplicates. With --index, or when the directory holds a single
eopkg-index.xml, every archive is looked up in that index and its SHA1 is
compared with the recorded PackageHash.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateConfig(&config); err != nil {
				return err
			}

			logrus.Debugf("Configuration: %+v", config)

			verbose, _ := cmd.Flags().GetBool("verbose")
			report, err := runScan(cmd.Context(), cmd, &config, verbose)
			if err != nil {
				return err
			}

			format, _ := render.ParseFormat(config.Output)
			return render.Scan(cmd.OutOrStdout(), format, *report)
		},
	}

	cmd.Flags().StringVarP(&config.InputDir, "input-dir", "i", ".", "Input directory to scan")
	cmd.Flags().StringVar(&config.Index, "index", "", "Repository index to compare archives against")
	cmd.Flags().StringVarP(&config.Output, "output", "o", string(render.FormatTable), "Output format (table, yaml, dump)")

	return cmd
}

func runScan(ctx context.Context, cmd *cobra.Command, config *models.InspectConfig, verbose bool) (*render.ScanReport, error) {
	// Step 1: Scan for archives and indexes
	logrus.Infof("Scanning directory: %s", config.InputDir)
	var sc scanner.Scanner = scanner.NewFileSystemScanner()
	scanned, err := sc.Scan(ctx, config.InputDir)
	if err != nil {
		return nil, &models.EopkgError{
			Type: models.ErrFileOp,
			Err:  fmt.Errorf("failed to scan directory: %w", err),
		}
	}

	var archives, indexes []scanner.ScannedPackage
	for _, s := range scanned {
		switch s.Type {
		case scanner.TypeEopkg:
			archives = append(archives, s)
		case scanner.TypeIndex:
			indexes = append(indexes, s)
		}
	}

	// Step 2: Load the index, defaulting to the one found in the directory
	// Scan results are sorted by path, so eopkg-index.xml comes before its compressed copies
	indexPath := config.Index
	if indexPath == "" && len(indexes) > 0 {
		indexPath = indexes[0].Path
		logrus.Infof("Using index found in input directory: %s", indexPath)
	}

	var hashes map[string]string
	if indexPath != "" {
		index, err := eopkg.ParseIndex(indexPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load index %s: %w", indexPath, err)
		}
		hashes = indexHashes(index)
		logrus.Infof("Loaded %d packages from %s", len(index.Packages), indexPath)
	}

	report := &render.ScanReport{Results: make([]render.ScanResult, 0, len(archives))}
	if len(archives) == 0 {
		logrus.Warn("No eopkg archives found in input directory")
		return report, nil
	}

	// Step 3: Load every archive, one failure does not stop the scan
	bar := newProgressBar(cmd.ErrOrStderr(), len(archives), "loading archives", verbose)
	loaded := make(map[string]models.Package)

	for _, archive := range archives {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result := loadArchive(archive.Path, hashes)
		if result.Package != nil {
			loaded[archive.Path] = *result.Package
		}
		report.Results = append(report.Results, result)
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	// Step 4: Report duplicates
	report.Duplicates = utils.DetectDuplicates(loaded)
	for id, paths := range report.Duplicates {
		logrus.Warnf("Duplicate package %s: %v", id, paths)
	}

	logrus.Infof("Loaded %d of %d archives", len(loaded), len(archives))
	return report, nil
}

func loadArchive(path string, hashes map[string]string) render.ScanResult {
	result := render.ScanResult{Path: path}

	logrus.Debugf("Loading %s", path)
	pkg, err := eopkg.ParsePackage(path)
	if err != nil {
		logrus.Warnf("Failed to load %s: %v", path, err)
		result.Error = err.Error()
		return result
	}
	result.Package = &pkg.Metadata.Package

	checksum, err := utils.CalculateChecksums(path)
	if err != nil {
		logrus.Warnf("Failed to checksum %s: %v", path, err)
		result.Error = err.Error()
		return result
	}
	result.Checksum = checksum

	if hashes == nil {
		return result
	}

	hash, ok := hashes[utils.PackageIdentity(pkg.Metadata.Package)]
	switch {
	case !ok:
		result.Indexed = render.IndexMissing
	case checksum.MatchesHash(hash):
		result.Indexed = render.IndexMatch
	default:
		logrus.Warnf("%s does not match the index hash %s", path, hash)
		result.Indexed = render.IndexMismatch
	}

	return result
}

// indexHashes maps package identities to their recorded PackageHash
func indexHashes(index *models.Index) map[string]string {
	hashes := make(map[string]string, len(index.Packages))
	for _, entry := range index.Packages {
		if entry.Hash == "" {
			continue
		}
		hashes[utils.PackageIdentity(entry.Package)] = entry.Hash
	}
	return hashes
}
