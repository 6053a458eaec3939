package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/saltpay/stencil/internal/config"
	"github.com/spf13/cobra"
)

func newEditCmd(opts *rootOptions) *cobra.Command {
	var editConfig bool

	editCmd := &cobra.Command{
		Use:   "edit",
		Short: "Open the workspace file in your editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := opts.resolveConfigPath()
			if err != nil {
				return err
			}
			if editConfig {
				return RunEdit(configPath)
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w\n\nRun 'stencil init' to create one", err)
			}
			return RunEdit(cfg.WorkspaceFile)
		},
	}

	editCmd.Flags().BoolVar(&editConfig, "config-file", false, "edit the config file instead of the workspace")

	return editCmd
}

// RunEdit opens filePath in the user's editor.
func RunEdit(filePath string) error {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return fmt.Errorf("%s does not exist\n\nRun 'stencil init' to set up your configuration", filePath)
	}

	editor := getEditor()

	fmt.Printf("Opening %s in %s...\n", filePath, editor)

	cmd := exec.Command(editor, filePath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}

	return nil
}

// getEditor returns the user's preferred editor.
func getEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}

	for _, editor := range []string{"vim", "nano", "vi"} {
		if _, err := exec.LookPath(editor); err == nil {
			return editor
		}
	}

	return "vi"
}
