package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/ralt/eopkginfo/internal/models"
	"github.com/ralt/eopkginfo/internal/render"
)

func validateConfig(config *models.InspectConfig) error {
	if config.Path == "" && config.InputDir == "" {
		return &models.EopkgError{
			Type: models.ErrInvalidConfig,
			Err:  errors.New("an archive, index or input-dir is required"),
		}
	}

	if _, err := render.ParseFormat(config.Output); err != nil {
		return &models.EopkgError{
			Type: models.ErrInvalidConfig,
			Err:  err,
		}
	}

	if config.Signature != "" && config.Keyring == "" {
		return &models.EopkgError{
			Type: models.ErrInvalidConfig,
			Err:  errors.New("--signature needs --keyring"),
		}
	}

	// The detached signature sits next to the archive by default
	if config.Keyring != "" && config.Signature == "" {
		config.Signature = config.Path + ".asc"
	}

	if config.InputDir != "" {
		info, err := os.Stat(config.InputDir)
		if err != nil {
			return &models.EopkgError{
				Type: models.ErrInvalidConfig,
				Err:  fmt.Errorf("input-dir: %w", err),
			}
		}
		if !info.IsDir() {
			return &models.EopkgError{
				Type: models.ErrInvalidConfig,
				Err:  fmt.Errorf("input-dir %s is not a directory", config.InputDir),
			}
		}
	}

	return nil
}
