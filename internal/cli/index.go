package cli

import (
	"fmt"

	"github.com/ralt/eopkginfo/internal/eopkg"
	"github.com/ralt/eopkginfo/internal/models"
	"github.com/ralt/eopkginfo/internal/render"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewIndexCmd creates the index command
func NewIndexCmd() *cobra.Command {
	var config models.InspectConfig

	cmd := &cobra.Command{
		Use:   "index <file>",
		Short: "List the packages of a repository index",
		Long: `Reads an eopkg-index.xml, optionally compressed with xz, zstd or gzip,
and lists its packages. Malformed entries are reported and skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.Path = args[0]
			if err := validateConfig(&config); err != nil {
				return err
			}

			index, err := eopkg.ParseIndex(config.Path)
			if err != nil {
				return fmt.Errorf("failed to load index %s: %w", config.Path, err)
			}
			logrus.Infof("Loaded %d packages from %s", len(index.Packages), config.Path)

			format, _ := render.ParseFormat(config.Output)
			return render.Index(cmd.OutOrStdout(), format, index)
		},
	}

	cmd.Flags().StringVarP(&config.Output, "output", "o", string(render.FormatTable), "Output format (table, yaml, dump)")

	return cmd
}
