package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/saltpay/stencil/internal/config"
	"github.com/saltpay/stencil/internal/input"
	"github.com/spf13/cobra"
)

func newResetCmd(opts *rootOptions) *cobra.Command {
	var yes bool

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the config, workspace and stored documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := opts.resolveConfigPath()
			if err != nil {
				return err
			}
			return RunReset(cmd.OutOrStdout(), configPath, yes)
		},
	}

	resetCmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	return resetCmd
}

// RunReset deletes the config file together with the workspace file and
// document store it points to.
func RunReset(out io.Writer, configPath string, yes bool) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Fprintln(out, "No configuration to reset.")
		return nil
	}

	targets := []string{configPath}
	if cfg, err := config.Load(configPath); err == nil {
		targets = append(targets, cfg.WorkspaceFile, cfg.DataDir)
	}

	fmt.Fprintln(out, "This will delete:")
	for _, target := range targets {
		fmt.Fprintf(out, "  %s\n", target)
	}

	if !yes {
		confirm, err := input.SelectOption("Are you sure?", []string{
			"No, cancel",
			"Yes, delete everything",
		})
		if err != nil || confirm == "No, cancel" {
			fmt.Fprintln(out, "Reset cancelled.")
			return nil
		}
	}

	for i := len(targets) - 1; i >= 0; i-- {
		if err := os.RemoveAll(targets[i]); err != nil {
			return fmt.Errorf("failed to delete %s: %w", targets[i], err)
		}
	}

	fmt.Fprintln(out, "✓ Configuration deleted.")
	fmt.Fprintln(out, "Run 'stencil init' to set up a new configuration.")

	return nil
}
