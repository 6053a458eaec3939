package cmd

import (
	"fmt"

	"github.com/saltpay/stencil/internal/config"
	"github.com/saltpay/stencil/internal/i18n"
	"github.com/saltpay/stencil/internal/logging"
	"github.com/saltpay/stencil/internal/store"
	"github.com/saltpay/stencil/internal/workspace"
)

// session holds the stores shared by the commands of one invocation.
type session struct {
	cfg         *config.Config
	workspace   *workspace.Workspace
	policies    *store.Policies
	collections *store.Collections
	documents   *store.Documents
	translator  i18n.Translator
	closeLog    func() error
}

// openSession loads the config and workspace, sets up logging and opens
// the stores. Team policies are recorded up front; collection policies
// arrive with each fetched page.
func openSession(opts *rootOptions) (*session, error) {
	configPath, err := opts.resolveConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w\n\nRun 'stencil init' to create one", err)
	}

	level := cfg.Log.Level
	if opts.verbosity > 0 {
		level = "debug"
	}
	closeLog, err := logging.Setup(level, cfg.Log.File)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	ws, err := workspace.Load(cfg.WorkspaceFile)
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	policies := store.NewPolicies(ws.User)
	policies.AddTeam(ws.Team)
	collections := store.NewCollections(store.WorkspaceSource{Path: cfg.WorkspaceFile}, policies)

	return &session{
		cfg:         cfg,
		workspace:   ws,
		policies:    policies,
		collections: collections,
		documents:   store.OpenDocuments(cfg.DataDir, ws.Team, collections, policies),
		translator:  i18n.New(cfg.Locale),
		closeLog:    closeLog,
	}, nil
}

func (s *session) Close() error {
	if s.closeLog == nil {
		return nil
	}
	return s.closeLog()
}
