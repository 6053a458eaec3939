package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/saltpay/stencil/internal/i18n"
	"github.com/saltpay/stencil/internal/store"
	"github.com/spf13/cobra"
)

func newCollectionsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "collections",
		Short: "List collections and where you can create templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.Close()

			return listCollections(cmd.Context(), cmd.OutOrStdout(), s)
		},
	}
}

func listCollections(ctx context.Context, out io.Writer, s *session) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if _, err := s.collections.FetchPage(ctx, store.PageOptions{Limit: s.cfg.PageSize}); err != nil {
		return fmt.Errorf("%s: %w", s.translator.T(i18n.CollectionsFailed), err)
	}

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	team := s.workspace.Team
	fmt.Fprintf(out, "%s %-24s %s\n", abilityMark(s.policies.Abilities(team.ID).CreateDocument), s.translator.T(i18n.Workspace), dim.Render(team.Name))

	for _, c := range s.collections.OrderedData() {
		fmt.Fprintf(out, "%s %-24s %s\n", abilityMark(s.policies.Abilities(c.ID).CreateDocument), c.Name, dim.Render(c.ID))
	}

	return nil
}

func abilityMark(allowed bool) string {
	if allowed {
		return "✓"
	}
	return "✗"
}
