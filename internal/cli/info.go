package cli

import (
	"fmt"
	"os"

	"github.com/ralt/eopkginfo/internal/eopkg"
	"github.com/ralt/eopkginfo/internal/models"
	"github.com/ralt/eopkginfo/internal/render"
	"github.com/ralt/eopkginfo/internal/signature"
	"github.com/ralt/eopkginfo/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewInfoCmd creates the info command
func NewInfoCmd() *cobra.Command {
	var config models.InspectConfig

	cmd := &cobra.Command{
		Use:   "info <archive>",
		Short: "Show the metadata and files of an eopkg archive",
		Long: `Loads metadata.xml and files.xml from an eopkg archive and prints
them together with the archive checksums. With --keyring the archive is
also checked against a detached OpenPGP signature.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.Path = args[0]
			if err := validateConfig(&config); err != nil {
				return err
			}

			logrus.Debugf("Configuration: %+v", config)

			return runInfo(cmd, &config)
		},
	}

	cmd.Flags().StringVarP(&config.Output, "output", "o", string(render.FormatTable), "Output format (table, yaml, dump)")
	cmd.Flags().StringVarP(&config.Keyring, "keyring", "k", "", "Public keyring to verify the archive signature with")
	cmd.Flags().StringVar(&config.Signature, "signature", "", "Detached signature (defaults to <archive>.asc)")

	return cmd
}

func runInfo(cmd *cobra.Command, config *models.InspectConfig) error {
	logrus.Debugf("Loading %s", config.Path)

	pkg, err := eopkg.ParsePackage(config.Path)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", config.Path, err)
	}

	checksum, err := utils.CalculateChecksums(config.Path)
	if err != nil {
		return &models.EopkgError{
			Type: models.ErrFileOp,
			Err:  fmt.Errorf("failed to checksum %s: %w", config.Path, err),
		}
	}

	report := render.ArchiveReport{
		Path:     config.Path,
		Checksum: checksum,
		Package:  pkg,
	}

	if config.Keyring != "" {
		if report.Signer, err = verifyArchive(config); err != nil {
			return err
		}
		logrus.Infof("Good signature from %s", report.Signer)
	}

	format, _ := render.ParseFormat(config.Output)
	return render.Archive(cmd.OutOrStdout(), format, report)
}

// verifyArchive checks the archive against its detached signature and
// returns the signer identity
func verifyArchive(config *models.InspectConfig) (string, error) {
	var verifier signature.Verifier
	verifier, err := signature.NewGPGVerifier(config.Keyring)
	if err != nil {
		return "", &models.EopkgError{
			Type: models.ErrSignature,
			Err:  fmt.Errorf("failed to load keyring: %w", err),
		}
	}

	data, err := os.ReadFile(config.Path)
	if err != nil {
		return "", &models.EopkgError{
			Type: models.ErrFileOp,
			Err:  err,
		}
	}
	sig, err := os.ReadFile(config.Signature)
	if err != nil {
		return "", &models.EopkgError{
			Type: models.ErrSignature,
			Err:  fmt.Errorf("failed to read signature: %w", err),
		}
	}

	signer, err := verifier.VerifyDetached(data, sig)
	if err != nil {
		return "", &models.EopkgError{
			Type: models.ErrSignature,
			Err:  fmt.Errorf("bad signature for %s: %w", config.Path, err),
		}
	}

	return signature.Identity(signer), nil
}
