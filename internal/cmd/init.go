package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/saltpay/stencil/internal/config"
	"github.com/saltpay/stencil/internal/input"
	"github.com/saltpay/stencil/internal/model"
	"github.com/saltpay/stencil/internal/workspace"
	"github.com/spf13/cobra"
)

type initOptions struct {
	team   string
	user   string
	locale string
	force  bool
}

func newInitCmd(opts *rootOptions) *cobra.Command {
	initOpts := &initOptions{}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a config and a sample workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.OutOrStdout(), opts, initOpts)
		},
	}

	initCmd.Flags().StringVar(&initOpts.team, "team", "", "team name for the sample workspace")
	initCmd.Flags().StringVar(&initOpts.user, "user", "", "your user id (default is $USER)")
	initCmd.Flags().StringVar(&initOpts.locale, "locale", "en-US", "interface locale")
	initCmd.Flags().BoolVar(&initOpts.force, "force", false, "overwrite an existing config without asking")

	return initCmd
}

func runInit(out io.Writer, opts *rootOptions, initOpts *initOptions) error {
	configPath, err := opts.resolveConfigPath()
	if err != nil {
		return err
	}

	if fileExists(configPath) && !initOpts.force {
		fmt.Fprintf(out, "Config already exists at %s\n", configPath)
		override, err := input.SelectOption("Override existing config?", []string{
			"No, keep existing",
			"Yes, override",
		})
		if err != nil || override == "No, keep existing" {
			fmt.Fprintln(out, "Init cancelled.")
			return nil
		}
	}

	team := initOpts.team
	if team == "" {
		team, err = input.GetTextInput("Team name", "e.g., Acme Corp")
		if err != nil {
			return fmt.Errorf("team name input cancelled")
		}
	}

	user := initOpts.user
	if user == "" {
		user = os.Getenv("USER")
	}
	if user == "" {
		user = "me"
	}

	cfg := config.DefaultConfig(initOpts.locale)
	if err := config.Save(configPath, cfg); err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ Config written to %s\n", configPath)

	workspacePath := filepath.Join(filepath.Dir(configPath), cfg.WorkspaceFile)
	if fileExists(workspacePath) && !initOpts.force {
		fmt.Fprintf(out, "  keeping existing workspace %s\n", workspacePath)
	} else {
		if err := workspace.Save(workspacePath, workspace.Sample(team, user)); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Sample workspace written to %s\n", workspacePath)
	}

	s, err := openSession(&rootOptions{configPath: configPath, verbosity: opts.verbosity})
	if err != nil {
		return err
	}
	defer s.Close()

	doc := &model.Document{
		Title:        "Onboarding checklist",
		Text:         "## First week\n\n- [ ] Meet the team\n- [ ] Set up your laptop\n",
		CollectionID: firstCollectionID(s.workspace),
	}
	if err := s.documents.Put(doc); err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ Sample document %q added\n\n", doc.Title)
	fmt.Fprintf(out, "Try it: stencil templatize %s\n", doc.ID)

	return nil
}

func firstCollectionID(ws *workspace.Workspace) string {
	for _, c := range ws.Collections {
		if c.Permission == model.PermissionReadWrite {
			return c.ID
		}
	}
	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
