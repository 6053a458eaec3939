package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	"github.com/saltpay/stencil/internal/i18n"
	"github.com/saltpay/stencil/internal/input"
	"github.com/saltpay/stencil/internal/model"
	"github.com/saltpay/stencil/internal/nav"
	"github.com/saltpay/stencil/internal/slack"
	"github.com/saltpay/stencil/internal/toast"
	"github.com/spf13/cobra"
)

func newTemplatizeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "templatize <document-id>",
		Short: "Create a template from a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.Close()

			return runTemplatize(cmd.Context(), cmd.OutOrStdout(), s, args[0])
		},
	}
}

func runTemplatize(ctx context.Context, out io.Writer, s *session, documentID string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	toasts := toast.NewStack(toast.DefaultTTL)
	history := &nav.History{}

	tmpl, err := input.RunTemplatize(input.TemplatizeDeps{
		Documents:   s.documents,
		Collections: s.collections,
		Policies:    s.policies,
		Team:        s.workspace.Team,
		Navigator:   history,
		Notifier:    toasts,
		Translator:  s.translator,
		PageSize:    s.cfg.PageSize,
	}, documentID)
	if errors.Is(err, input.ErrCancelled) {
		fmt.Fprintln(out, "Cancelled.")
		return nil
	}
	if err != nil {
		return err
	}

	// The dialog quits right after creating the template, so whatever
	// toasts are still up get printed here.
	for _, t := range toasts.Toasts() {
		prefix := "✓"
		if t.Kind == toast.KindError {
			prefix = "✗"
		}
		fmt.Fprintf(out, "%s %s\n", prefix, t.Text)
	}

	path, ok := history.Current()
	if !ok {
		path = nav.DocumentPath(tmpl)
	}
	url := nav.URL(s.cfg.BaseURL, path)
	fmt.Fprintf(out, "→ %s\n", url)
	fmt.Fprintf(out, "  location: %s\n", locationName(s, tmpl))

	if s.cfg.CopyURL {
		if err := clipboard.WriteAll(url); err != nil {
			fmt.Fprintf(out, "⚠️  Could not copy the link: %v\n", err)
		} else {
			fmt.Fprintln(out, "  link copied to the clipboard")
		}
	}

	announcer := slack.NewAnnouncer(s.cfg.Slack.Channel)
	if announcer.Enabled() {
		if err := announcer.AnnounceTemplate(ctx, tmpl, url); err != nil {
			fmt.Fprintf(out, "⚠️  Failed to announce the template on Slack: %v\n", err)
		} else {
			fmt.Fprintf(out, "✓ Announced in %s\n", s.cfg.Slack.Channel)
		}
	}

	return nil
}

func locationName(s *session, doc *model.Document) string {
	if doc.CollectionID == "" {
		return s.translator.T(i18n.Workspace)
	}
	if c, ok := s.collections.Get(doc.CollectionID); ok {
		return c.Name
	}
	return doc.CollectionID
}
