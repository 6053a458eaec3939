package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"
	"github.com/rs/zerolog"
	"github.com/saltpay/stencil/internal/logging"
	"github.com/saltpay/stencil/internal/model"
)

const urlIDLength = 10

// Documents persists documents on disk, one JSON file per document.
type Documents struct {
	d           *diskv.Diskv
	team        model.Team
	collections *Collections
	policies    *Policies
	now         func() time.Time
	log         zerolog.Logger
}

// OpenDocuments opens the document store rooted at dir. Destination checks
// for templatize use collections and policies.
func OpenDocuments(dir string, team model.Team, collections *Collections, policies *Policies) *Documents {
	return &Documents{
		d: diskv.New(diskv.Options{
			BasePath:          dir,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		team:        team,
		collections: collections,
		policies:    policies,
		now:         time.Now,
		log:         logging.GetLogger("documents"),
	}
}

// Get returns the document with id.
func (s *Documents) Get(id string) (*model.Document, error) {
	if !validKey(id) || !s.d.Has(id) {
		return nil, fmt.Errorf("document %s: %w", id, model.ErrNotFound)
	}
	data, err := s.d.Read(id)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", id, err)
	}
	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", id, err)
	}
	return &doc, nil
}

// Put stores doc, filling in ids and timestamps when missing.
func (s *Documents) Put(doc *model.Document) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if !validKey(doc.ID) {
		return fmt.Errorf("invalid document id %q", doc.ID)
	}
	if doc.URLID == "" {
		doc.URLID = newURLID()
	}
	now := s.now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document %s: %w", doc.ID, err)
	}
	if err := s.d.Write(doc.ID, data); err != nil {
		return fmt.Errorf("failed to write document %s: %w", doc.ID, err)
	}
	return nil
}

// List returns every stored document ordered by creation time.
func (s *Documents) List(ctx context.Context) ([]*model.Document, error) {
	var docs []*model.Document
	for key := range s.d.Keys(ctx.Done()) {
		doc, err := s.Get(key)
		if err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("Skipping unreadable document")
			continue
		}
		docs = append(docs, doc)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].ID < docs[j].ID
		}
		return docs[i].CreatedAt.Before(docs[j].CreatedAt)
	})
	return docs, nil
}

// Templatize copies the document with id into a new template placed at the
// workspace root or in params.CollectionID.
func (s *Documents) Templatize(ctx context.Context, id string, params model.TemplatizeParams) (*model.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	source, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeDestination(ctx, params.CollectionID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	template := &model.Document{
		ID:           uuid.NewString(),
		URLID:        newURLID(),
		Title:        source.Title,
		Text:         source.Text,
		CollectionID: params.CollectionID,
		Template:     true,
		TemplateOf:   source.ID,
		CreatedAt:    now,
	}
	if params.Publish {
		template.PublishedAt = &now
	}

	if err := s.Put(template); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("document", source.ID).
		Str("template", template.ID).
		Str("collection", params.CollectionID).
		Bool("publish", params.Publish).
		Msg("Template created")

	return template, nil
}

func (s *Documents) authorizeDestination(ctx context.Context, collectionID string) error {
	if collectionID == "" {
		if !s.policies.Abilities(s.team.ID).CreateDocument {
			return fmt.Errorf("create document in workspace: %w", model.ErrForbidden)
		}
		return nil
	}

	collection, err := s.collections.Find(ctx, collectionID)
	if err != nil {
		return err
	}
	if !s.policies.Evaluate(collection).CreateDocument {
		return fmt.Errorf("create document in collection %s: %w", collectionID, model.ErrForbidden)
	}
	return nil
}

func newURLID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:urlIDLength]
}

func validKey(key string) bool {
	return key != "" && !strings.ContainsAny(key, `/\.`)
}

func keyToPathTransform(key string) *diskv.PathKey {
	prefix := key
	if len(prefix) > 2 {
		prefix = prefix[:2]
	}
	return &diskv.PathKey{
		Path:     []string{prefix},
		FileName: key,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}
