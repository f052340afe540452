package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "eopkginfo",
		Short: "Inspect Solus eopkg archives and repository indexes",
		Long: `Eopkginfo reads eopkg package archives and prints the package
metadata and file manifest they carry.

Commands:
  - info:  inspect a single .eopkg archive
  - scan:  load every archive below a directory
  - index: list the packages of an eopkg-index.xml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	rootCmd.AddCommand(NewInfoCmd())
	rootCmd.AddCommand(NewScanCmd())
	rootCmd.AddCommand(NewIndexCmd())

	return rootCmd
}
