package workspace

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/saltpay/stencil/internal/model"
	"gopkg.in/yaml.v3"
)

type teamEntry struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Color string `yaml:"color,omitempty"`
}

type userEntry struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name,omitempty"`
	Role string `yaml:"role"`
}

type collectionEntry struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Icon        string            `yaml:"icon,omitempty"`
	Color       string            `yaml:"color,omitempty"`
	Index       int               `yaml:"index"`
	Permission  string            `yaml:"permission,omitempty"`
	Memberships map[string]string `yaml:"memberships,omitempty"`
}

type workspaceFile struct {
	Team        teamEntry         `yaml:"team"`
	User        userEntry         `yaml:"user"`
	Collections []collectionEntry `yaml:"collections"`
}

// Workspace is the decoded contents of a workspace file.
type Workspace struct {
	Team        model.Team
	User        model.User
	Collections []model.Collection
}

// Load reads and validates a workspace file.
func Load(filename string) (*Workspace, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read workspace %s: %w", filename, err)
	}

	var file workspaceFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse workspace %s: %w", filename, err)
	}

	ws := &Workspace{
		Team: model.Team{
			ID:    strings.TrimSpace(file.Team.ID),
			Name:  strings.TrimSpace(file.Team.Name),
			Color: strings.TrimSpace(file.Team.Color),
		},
		User: model.User{
			ID:   strings.TrimSpace(file.User.ID),
			Name: strings.TrimSpace(file.User.Name),
			Role: model.Role(strings.TrimSpace(file.User.Role)),
		},
	}

	if ws.Team.ID == "" {
		return nil, fmt.Errorf("%w: team id is required in %s", model.ErrInvalidWorkspace, filename)
	}
	if ws.User.ID == "" {
		return nil, fmt.Errorf("%w: user id is required in %s", model.ErrInvalidWorkspace, filename)
	}
	switch ws.User.Role {
	case model.RoleAdmin, model.RoleMember, model.RoleViewer:
	case "":
		ws.User.Role = model.RoleMember
	default:
		return nil, fmt.Errorf("%w: unknown role %q in %s", model.ErrInvalidWorkspace, ws.User.Role, filename)
	}

	seen := make(map[string]struct{}, len(file.Collections))
	for _, entry := range file.Collections {
		id := strings.TrimSpace(entry.ID)
		if id == "" {
			return nil, fmt.Errorf("%w: a collection in %s is missing an id", model.ErrInvalidWorkspace, filename)
		}
		if id == ws.Team.ID {
			return nil, fmt.Errorf("%w: collection id %q collides with the team id", model.ErrInvalidWorkspace, id)
		}
		if _, exists := seen[id]; exists {
			return nil, fmt.Errorf("%w: duplicate collection id %q in %s", model.ErrInvalidWorkspace, id, filename)
		}
		seen[id] = struct{}{}

		permission, err := parsePermission(entry.Permission)
		if err != nil {
			return nil, fmt.Errorf("%w: collection %q: %v", model.ErrInvalidWorkspace, id, err)
		}

		var memberships map[string]model.Permission
		if len(entry.Memberships) > 0 {
			memberships = make(map[string]model.Permission, len(entry.Memberships))
			for userID, raw := range entry.Memberships {
				p, err := parsePermission(raw)
				if err != nil {
					return nil, fmt.Errorf("%w: collection %q membership %q: %v", model.ErrInvalidWorkspace, id, userID, err)
				}
				memberships[strings.TrimSpace(userID)] = p
			}
		}

		ws.Collections = append(ws.Collections, model.Collection{
			ID:          id,
			Name:        strings.TrimSpace(entry.Name),
			Icon:        strings.TrimSpace(entry.Icon),
			Color:       strings.TrimSpace(entry.Color),
			Index:       entry.Index,
			Permission:  permission,
			Memberships: memberships,
		})
	}

	return ws, nil
}

// Save writes the workspace to disk as YAML, collections ordered by index.
func Save(filename string, ws *Workspace) error {
	collections := make([]collectionEntry, 0, len(ws.Collections))
	for _, c := range ws.Collections {
		entry := collectionEntry{
			ID:         c.ID,
			Name:       c.Name,
			Icon:       c.Icon,
			Color:      c.Color,
			Index:      c.Index,
			Permission: string(c.Permission),
		}
		if len(c.Memberships) > 0 {
			entry.Memberships = make(map[string]string, len(c.Memberships))
			for userID, p := range c.Memberships {
				entry.Memberships[userID] = string(p)
			}
		}
		collections = append(collections, entry)
	}

	// Keep file stable to reduce noise in diffs.
	sort.SliceStable(collections, func(i, j int) bool {
		return collections[i].Index < collections[j].Index
	})

	file := workspaceFile{
		Team:        teamEntry{ID: ws.Team.ID, Name: ws.Team.Name, Color: ws.Team.Color},
		User:        userEntry{ID: ws.User.ID, Name: ws.User.Name, Role: string(ws.User.Role)},
		Collections: collections,
	}

	data, err := yaml.Marshal(&file)
	if err != nil {
		return fmt.Errorf("failed to encode workspace %s: %w", filename, err)
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write workspace %s: %w", filename, err)
	}

	return nil
}

func parsePermission(raw string) (model.Permission, error) {
	switch p := model.Permission(strings.TrimSpace(raw)); p {
	case model.PermissionReadWrite, model.PermissionRead, model.PermissionNone:
		return p, nil
	default:
		return "", fmt.Errorf("unknown permission %q", raw)
	}
}
