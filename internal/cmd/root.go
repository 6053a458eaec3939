package cmd

import (
	"fmt"

	"github.com/saltpay/stencil/internal/config"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	verbosity  int
}

func (o *rootOptions) resolveConfigPath() (string, error) {
	if o.configPath != "" {
		return o.configPath, nil
	}
	path, err := config.ConfigPath()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config path: %w", err)
	}
	return path, nil
}

// NewRootCmd builds the stencil command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "stencil",
		Short: "Turn workspace documents into reusable templates",
		Long: `stencil copies an existing document into a template that can be used as a
starting point for new documents, either at the workspace root or inside one
of the collections you are allowed to create documents in.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default is the platform config dir)")
	root.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", "Log debug output to the log file")

	root.AddCommand(
		newTemplatizeCmd(opts),
		newCollectionsCmd(opts),
		newDocumentsCmd(opts),
		newInitCmd(opts),
		newEditCmd(opts),
		newResetCmd(opts),
	)

	return root
}
