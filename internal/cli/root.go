// Package cli wires the hostdeck commands. The root command runs the
// interactive dashboard; subcommands cover one-shot rendering, config
// bootstrap, and shell completion.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hostdeck/hostdeck/internal/config"
	"github.com/hostdeck/hostdeck/internal/errors"
	"github.com/hostdeck/hostdeck/internal/session"
)

var configFlag string

// rootCmd runs the dashboard session.
var rootCmd = &cobra.Command{
	Use:   "hostdeck",
	Short: "Single-host monitoring dashboard",
	Long: `hostdeck is an interactive terminal dashboard for one Linux host.

It fingerprints the machine once, then refreshes resource gauges,
service states, security posture, and TLS certificate expiry on every
cycle, with one-key hand-off to live tools like htop and tail.

Examples:
  sudo hostdeck
  hostdeck snapshot
  hostdeck init`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New(errors.ErrExec,
				"The dashboard needs an interactive terminal",
				"Use 'hostdeck snapshot' for non-interactive output")
		}

		cfg, err := config.LoadOrDefault(configFlag)
		if err != nil {
			return err
		}

		return session.New(cfg, formatVersion(version)).Run()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to config file")
}

// Execute runs the CLI. Fatal errors print once and map to exit code 1;
// an operator-initiated quit exits 0.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
