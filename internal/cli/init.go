package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hostdeck/hostdeck/internal/config"
	"github.com/hostdeck/hostdeck/internal/errors"
)

var (
	initForce  bool
	initSystem bool
)

// initCmd writes a default config file the operator can then edit.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a hostdeck configuration file",
	Long: `Write the default configuration so thresholds, tracked services,
and paths can be tuned.

By default the file goes to ~/.config/hostdeck/config.yaml; use --system
for the host-wide /etc/hostdeck/config.yaml.

Examples:
  hostdeck init
  sudo hostdeck init --system
  hostdeck init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(initForce, initSystem)
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	initCmd.Flags().BoolVar(&initSystem, "system", false, "write the system-wide config")
	rootCmd.AddCommand(initCmd)
}

func initCommand(force, system bool) error {
	path, err := initTargetPath(system)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !force {
		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", path)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := writeDefaultConfig(path); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}

func initTargetPath(system bool) (string, error) {
	if system {
		return config.SystemConfigPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine home directory",
			"Use --system to write the host-wide config instead")
	}
	return filepath.Join(home, config.UserConfigDir, "config.yaml"), nil
}

func writeDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Cannot create %s", filepath.Dir(path)),
			"Check permissions on the parent directory")
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to serialize default config", "")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Cannot write %s", path),
			"Check permissions, or use --system with sudo")
	}
	return nil
}
