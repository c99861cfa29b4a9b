package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hostdeck/hostdeck/internal/config"
	"github.com/hostdeck/hostdeck/internal/errors"
	"github.com/hostdeck/hostdeck/internal/session"
)

// snapshotCmd renders one panel to stdout and exits. No lock, no log,
// no input loop, so it is safe for cron and CI.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Render one dashboard panel and exit",
	Long: `Collect a single round of probe data and print the panel to stdout.

Unlike the interactive dashboard, snapshot takes no instance lock and
opens no session log, so concurrent invocations are fine.

Examples:
  hostdeck snapshot
  hostdeck snapshot --config /etc/hostdeck/config.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadOrDefault(configFlag)
		if err != nil {
			return err
		}
		session.Snapshot(cfg, formatVersion(version), os.Stdout)
		return nil
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for hostdeck.

Examples:
  # Bash
  hostdeck completion bash > /etc/bash_completion.d/hostdeck

  # Zsh
  hostdeck completion zsh > "${fpath[1]}/_hostdeck"

  # Fish
  hostdeck completion fish > ~/.config/fish/completions/hostdeck.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return errors.New(errors.ErrExec,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(completionCmd)
}
