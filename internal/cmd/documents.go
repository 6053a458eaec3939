package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/saltpay/stencil/internal/input"
	"github.com/saltpay/stencil/internal/model"
	"github.com/spf13/cobra"
)

func newDocumentsCmd(opts *rootOptions) *cobra.Command {
	documentsCmd := &cobra.Command{
		Use:   "documents",
		Short: "List the documents in the local store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.Close()

			return listDocuments(cmd.Context(), cmd.OutOrStdout(), s)
		},
	}

	documentsCmd.AddCommand(newDocumentsAddCmd(opts))
	return documentsCmd
}

func newDocumentsAddCmd(opts *rootOptions) *cobra.Command {
	var collectionID, textFile string

	addCmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a document to the local store",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.Close()

			var title string
			if len(args) == 1 {
				title = args[0]
			} else {
				title, err = input.GetTextInput("Document title", "e.g., Incident review")
				if err != nil {
					return err
				}
			}

			var text string
			if textFile != "" {
				data, err := os.ReadFile(textFile)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", textFile, err)
				}
				text = string(data)
			}

			return addDocument(cmd.OutOrStdout(), s, title, text, collectionID)
		},
	}

	addCmd.Flags().StringVar(&collectionID, "collection", "", "collection id (default is the workspace root)")
	addCmd.Flags().StringVar(&textFile, "text-file", "", "file with the document body")

	return addCmd
}

func listDocuments(ctx context.Context, out io.Writer, s *session) error {
	if ctx == nil {
		ctx = context.Background()
	}

	docs, err := s.documents.List(ctx)
	if err != nil {
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(out, "No documents yet. Add one with 'stencil documents add'.")
		return nil
	}

	for _, doc := range docs {
		kind := "doc"
		if doc.Template {
			kind = "template"
		}
		location := doc.CollectionID
		if location == "" {
			location = "-"
		}
		fmt.Fprintf(out, "%s  %-8s %-32s %s\n", doc.ID, kind, doc.TitleWithDefault(), location)
	}

	return nil
}

func addDocument(out io.Writer, s *session, title, text, collectionID string) error {
	collectionID = strings.TrimSpace(collectionID)
	if collectionID != "" {
		if _, err := s.collections.Find(context.Background(), collectionID); err != nil {
			return fmt.Errorf("collection %q: %w", collectionID, err)
		}
	}

	doc := &model.Document{
		Title:        strings.TrimSpace(title),
		Text:         text,
		CollectionID: collectionID,
	}
	if err := s.documents.Put(doc); err != nil {
		return err
	}

	fmt.Fprintf(out, "✓ Added %q (%s)\n", doc.TitleWithDefault(), doc.ID)
	return nil
}
