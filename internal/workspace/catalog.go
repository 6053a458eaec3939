package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/saltpay/stencil/internal/model"
)

// CatalogEntry is one collection export file.
type CatalogEntry struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Icon       string `json:"icon,omitempty"`
	Color      string `json:"color,omitempty"`
	Index      *int   `json:"index,omitempty"`
	Permission string `json:"permission,omitempty"`
}

type SyncStatus string

const (
	SyncAdded     SyncStatus = "ADDED"
	SyncUpdated   SyncStatus = "UPDATED"
	SyncUnchanged SyncStatus = "UNCHANGED"
	SyncInvalid   SyncStatus = "INVALID"
)

// SyncResult describes what happened to one catalog entry.
type SyncResult struct {
	ID     string
	Status SyncStatus
	Detail string
}

// LoadCatalog reads every *.json collection export in dir. Subdirectories
// and files that are not collection exports are skipped.
func LoadCatalog(dir string) ([]CatalogEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog directory: %w", err)
	}

	var catalog []CatalogEntry
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}

		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		var entry CatalogEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			continue
		}
		if strings.TrimSpace(entry.ID) != "" {
			catalog = append(catalog, entry)
		}
	}

	sort.Slice(catalog, func(i, j int) bool {
		return catalog[i].ID < catalog[j].ID
	})

	return catalog, nil
}

// Sync merges catalog into ws. Existing collections keep their memberships;
// new ones are appended after the highest index.
func Sync(ws *Workspace, catalog []CatalogEntry) []SyncResult {
	byID := make(map[string]int, len(ws.Collections))
	nextIndex := 0
	for i, c := range ws.Collections {
		byID[c.ID] = i
		if c.Index >= nextIndex {
			nextIndex = c.Index + 1
		}
	}

	results := make([]SyncResult, 0, len(catalog))
	for _, entry := range catalog {
		id := strings.TrimSpace(entry.ID)
		if id == ws.Team.ID {
			results = append(results, SyncResult{ID: id, Status: SyncInvalid, Detail: "collides with the team id"})
			continue
		}
		permission, err := parsePermission(entry.Permission)
		if err != nil {
			results = append(results, SyncResult{ID: id, Status: SyncInvalid, Detail: err.Error()})
			continue
		}

		incoming := model.Collection{
			ID:         id,
			Name:       strings.TrimSpace(entry.Name),
			Icon:       strings.TrimSpace(entry.Icon),
			Color:      strings.TrimSpace(entry.Color),
			Permission: permission,
		}

		i, exists := byID[id]
		if !exists {
			incoming.Index = nextIndex
			if entry.Index != nil {
				incoming.Index = *entry.Index
			}
			if incoming.Index >= nextIndex {
				nextIndex = incoming.Index + 1
			}
			byID[id] = len(ws.Collections)
			ws.Collections = append(ws.Collections, incoming)
			results = append(results, SyncResult{ID: id, Status: SyncAdded, Detail: incoming.Name})
			continue
		}

		existing := ws.Collections[i]
		incoming.Index = existing.Index
		if entry.Index != nil {
			incoming.Index = *entry.Index
		}
		incoming.Memberships = existing.Memberships

		if changes := diffCollection(existing, incoming); len(changes) > 0 {
			ws.Collections[i] = incoming
			results = append(results, SyncResult{ID: id, Status: SyncUpdated, Detail: strings.Join(changes, ", ")})
		} else {
			results = append(results, SyncResult{ID: id, Status: SyncUnchanged})
		}
	}

	return results
}

func diffCollection(old, updated model.Collection) []string {
	var changes []string
	if old.Name != updated.Name {
		changes = append(changes, fmt.Sprintf("name %q → %q", old.Name, updated.Name))
	}
	if old.Icon != updated.Icon {
		changes = append(changes, "icon")
	}
	if old.Color != updated.Color {
		changes = append(changes, "color")
	}
	if old.Index != updated.Index {
		changes = append(changes, fmt.Sprintf("index %d → %d", old.Index, updated.Index))
	}
	if old.Permission != updated.Permission {
		changes = append(changes, fmt.Sprintf("permission %q → %q", old.Permission, updated.Permission))
	}
	return changes
}
