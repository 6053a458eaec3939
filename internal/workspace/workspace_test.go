package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/saltpay/stencil/internal/model"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "workspace.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		want        []model.Collection
		wantRole    model.Role
		wantErr     bool
	}{
		{
			name: "collections keep file order",
			yamlContent: `team:
  id: acme
  name: Acme
user:
  id: u1
  role: admin
collections:
  - id: eng
    name: Engineering
    index: 1
    permission: read_write
  - id: drafts
    name: Drafts
    index: 0
    permission: read`,
			want: []model.Collection{
				{ID: "eng", Name: "Engineering", Index: 1, Permission: model.PermissionReadWrite},
				{ID: "drafts", Name: "Drafts", Index: 0, Permission: model.PermissionRead},
			},
			wantRole: model.RoleAdmin,
		},
		{
			name: "missing role defaults to member",
			yamlContent: `team:
  id: acme
user:
  id: u1`,
			wantRole: model.RoleMember,
		},
		{
			name: "memberships are parsed",
			yamlContent: `team:
  id: acme
user:
  id: u1
collections:
  - id: secret
    name: Secret
    memberships:
      u1: read_write`,
			want: []model.Collection{
				{ID: "secret", Name: "Secret", Memberships: map[string]model.Permission{"u1": model.PermissionReadWrite}},
			},
			wantRole: model.RoleMember,
		},
		{
			name:        "missing team id",
			yamlContent: "user:\n  id: u1\n",
			wantErr:     true,
		},
		{
			name: "duplicate collection id",
			yamlContent: `team:
  id: acme
user:
  id: u1
collections:
  - id: eng
  - id: eng`,
			wantErr: true,
		},
		{
			name: "unknown permission",
			yamlContent: `team:
  id: acme
user:
  id: u1
collections:
  - id: eng
    permission: owner`,
			wantErr: true,
		},
		{
			name:        "invalid YAML",
			yamlContent: "team: [",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws, err := Load(writeFile(t, tt.yamlContent))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(ws.Collections, tt.want) {
				t.Errorf("Load() collections = %+v, want %+v", ws.Collections, tt.want)
			}
			if ws.User.Role != tt.wantRole {
				t.Errorf("Load() role = %q, want %q", ws.User.Role, tt.wantRole)
			}
		})
	}
}

func TestLoadInvalidWorkspaceIsClassified(t *testing.T) {
	_, err := Load(writeFile(t, "user:\n  id: u1\n"))
	if !errors.Is(err, model.ErrInvalidWorkspace) {
		t.Fatalf("expected ErrInvalidWorkspace, got %v", err)
	}
}

func TestLoadFileNotFound(t *testing.T) {
	if _, err := Load("/nonexistent/workspace.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSaveSortsByIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workspace.yaml")
	ws := Sample("Acme", "u1")
	ws.Collections[0].Index = 5

	if err := Save(path, ws); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load after save failed: %v", err)
	}

	if len(loaded.Collections) != 3 {
		t.Fatalf("expected 3 collections, got %d", len(loaded.Collections))
	}
	if loaded.Collections[2].ID != "engineering" {
		t.Errorf("expected engineering last after reindexing, got %q", loaded.Collections[2].ID)
	}
	if loaded.Team.Name != "Acme" {
		t.Errorf("expected team name Acme, got %q", loaded.Team.Name)
	}
}
