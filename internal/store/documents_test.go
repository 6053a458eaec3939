package store

import (
	"context"
	"testing"
	"time"

	"github.com/saltpay/stencil/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDocuments(t *testing.T, role model.Role) *Documents {
	t.Helper()
	team := model.Team{ID: "team", Name: "Acme"}
	policies := NewPolicies(model.User{ID: "u1", Role: role})
	policies.AddTeam(team)
	collections := NewCollections(staticSource(
		model.Collection{ID: "eng", Name: "Engineering", Permission: model.PermissionReadWrite},
		model.Collection{ID: "drafts", Name: "Drafts", Permission: model.PermissionRead},
	), policies)

	docs := OpenDocuments(t.TempDir(), team, collections, policies)
	docs.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return docs
}

func TestPutAndGet(t *testing.T) {
	docs := newDocuments(t, model.RoleMember)

	doc := &model.Document{ID: "d1", Title: "Onboarding", CollectionID: "eng"}
	require.NoError(t, docs.Put(doc))
	assert.Len(t, doc.URLID, urlIDLength)
	assert.False(t, doc.CreatedAt.IsZero())

	got, err := docs.Get("d1")
	require.NoError(t, err)
	assert.Equal(t, "Onboarding", got.Title)
	assert.Equal(t, "eng", got.CollectionID)
}

func TestGetMissingDocument(t *testing.T) {
	docs := newDocuments(t, model.RoleMember)

	_, err := docs.Get("nope")
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = docs.Get("../etc")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestTemplatize(t *testing.T) {
	tests := []struct {
		name        string
		role        model.Role
		params      model.TemplatizeParams
		wantErr     error
		wantPublish bool
	}{
		{name: "workspace root published", role: model.RoleMember, params: model.TemplatizeParams{Publish: true}, wantPublish: true},
		{name: "collection draft", role: model.RoleMember, params: model.TemplatizeParams{CollectionID: "eng"}},
		{name: "read-only collection", role: model.RoleMember, params: model.TemplatizeParams{CollectionID: "drafts"}, wantErr: model.ErrForbidden},
		{name: "unknown collection", role: model.RoleMember, params: model.TemplatizeParams{CollectionID: "ghost"}, wantErr: model.ErrNotFound},
		{name: "viewer at workspace root", role: model.RoleViewer, params: model.TemplatizeParams{}, wantErr: model.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs := newDocuments(t, tt.role)
			require.NoError(t, docs.Put(&model.Document{ID: "d1", Title: "Runbook", Text: "# Steps", CollectionID: "eng"}))

			tmpl, err := docs.Templatize(context.Background(), "d1", tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, tmpl)
				return
			}
			require.NoError(t, err)
			assert.True(t, tmpl.Template)
			assert.Equal(t, "d1", tmpl.TemplateOf)
			assert.Equal(t, "Runbook", tmpl.Title)
			assert.Equal(t, "# Steps", tmpl.Text)
			assert.Equal(t, tt.params.CollectionID, tmpl.CollectionID)
			assert.Equal(t, tt.wantPublish, tmpl.Published())
			assert.NotEqual(t, "d1", tmpl.ID)

			stored, err := docs.Get(tmpl.ID)
			require.NoError(t, err)
			assert.Equal(t, tmpl.URLID, stored.URLID)
		})
	}
}

func TestTemplatizeMissingSource(t *testing.T) {
	docs := newDocuments(t, model.RoleMember)

	_, err := docs.Templatize(context.Background(), "missing", model.TemplatizeParams{})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestTemplatizeCancelledContext(t *testing.T) {
	docs := newDocuments(t, model.RoleMember)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := docs.Templatize(ctx, "d1", model.TemplatizeParams{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestList(t *testing.T) {
	docs := newDocuments(t, model.RoleMember)
	require.NoError(t, docs.Put(&model.Document{ID: "b2", Title: "B", CreatedAt: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)}))
	require.NoError(t, docs.Put(&model.Document{ID: "a1", Title: "A", CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}))

	list, err := docs.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a1", list[0].ID)
	assert.Equal(t, "b2", list[1].ID)
}
