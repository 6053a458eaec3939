package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"github.com/saltpay/stencil/internal/logging"
	"github.com/saltpay/stencil/internal/model"
	"github.com/saltpay/stencil/internal/workspace"
)

// MaxPageSize bounds a single collection page.
const MaxPageSize = 100

// PageOptions selects a page of collections.
type PageOptions struct {
	Offset int
	Limit  int
}

// Source is where collections are fetched from. A limit <= 0 lists
// everything from offset.
type Source interface {
	ListCollections(ctx context.Context, offset, limit int) ([]model.Collection, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, offset, limit int) ([]model.Collection, error)

func (f SourceFunc) ListCollections(ctx context.Context, offset, limit int) ([]model.Collection, error) {
	return f(ctx, offset, limit)
}

// WorkspaceSource reads collections from a workspace file on every call.
type WorkspaceSource struct {
	Path string
}

func (s WorkspaceSource) ListCollections(ctx context.Context, offset, limit int) ([]model.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ws, err := workspace.Load(s.Path)
	if err != nil {
		return nil, err
	}
	return page(ws.Collections, offset, limit), nil
}

// Collections is the shared, in-memory collection store.
type Collections struct {
	source   Source
	policies *Policies
	log      zerolog.Logger

	mu      sync.RWMutex
	data    map[string]model.Collection
	loaded  bool
	version uint64
}

// NewCollections creates an unloaded store. Fetched collections have their
// policies recorded in policies.
func NewCollections(source Source, policies *Policies) *Collections {
	return &Collections{
		source:   source,
		policies: policies,
		log:      logging.GetLogger("collections"),
		data:     make(map[string]model.Collection),
	}
}

// IsLoaded reports whether a page has been fetched successfully.
func (s *Collections) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Version changes every time the stored collections change.
func (s *Collections) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// OrderedData returns the loaded collections sorted by index, then name.
func (s *Collections) OrderedData() []model.Collection {
	s.mu.RLock()
	out := make([]model.Collection, 0, len(s.data))
	for _, c := range s.data {
		out = append(out, c)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Index != out[j].Index {
			return out[i].Index < out[j].Index
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Get returns a loaded collection.
func (s *Collections) Get(id string) (model.Collection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.data[id]
	return c, ok
}

// Find returns the collection with id, asking the source when it has not
// been loaded yet. It does not change the loaded state.
func (s *Collections) Find(ctx context.Context, id string) (model.Collection, error) {
	if c, ok := s.Get(id); ok {
		return c, nil
	}
	all, err := s.source.ListCollections(ctx, 0, 0)
	if err != nil {
		return model.Collection{}, fmt.Errorf("failed to look up collection %s: %w", id, err)
	}
	for _, c := range all {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Collection{}, fmt.Errorf("collection %s: %w", id, model.ErrNotFound)
}

// FetchPage loads one page of collections and marks the store as loaded.
func (s *Collections) FetchPage(ctx context.Context, opts PageOptions) ([]model.Collection, error) {
	limit := opts.Limit
	if limit <= 0 || limit > MaxPageSize {
		limit = MaxPageSize
	}

	s.log.Debug().Int("offset", opts.Offset).Int("limit", limit).Msg("Fetching collections")

	collections, err := s.source.ListCollections(ctx, opts.Offset, limit)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to fetch collections")
		return nil, fmt.Errorf("failed to fetch collections: %w", err)
	}

	s.policies.AddCollections(collections...)

	s.mu.Lock()
	for _, c := range collections {
		s.data[c.ID] = c
	}
	s.loaded = true
	s.version++
	s.mu.Unlock()

	s.log.Info().Int("count", len(collections)).Msg("Fetched collections")
	return collections, nil
}

func page(all []model.Collection, offset, limit int) []model.Collection {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) {
		return []model.Collection{}
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	out := make([]model.Collection, end-offset)
	copy(out, all[offset:end])
	return out
}
