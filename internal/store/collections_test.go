package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/saltpay/stencil/internal/model"
	"github.com/saltpay/stencil/internal/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticSource(collections ...model.Collection) Source {
	return SourceFunc(func(_ context.Context, offset, limit int) ([]model.Collection, error) {
		return page(collections, offset, limit), nil
	})
}

func TestFetchPageMarksLoadedAndRecordsPolicies(t *testing.T) {
	policies := NewPolicies(model.User{ID: "u1", Role: model.RoleMember})
	store := NewCollections(staticSource(
		model.Collection{ID: "b", Name: "B", Index: 1, Permission: model.PermissionReadWrite},
		model.Collection{ID: "a", Name: "A", Index: 0, Permission: model.PermissionRead},
	), policies)

	assert.False(t, store.IsLoaded())
	assert.Empty(t, store.OrderedData())

	got, err := store.FetchPage(context.Background(), PageOptions{Limit: 100})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.True(t, store.IsLoaded())
	assert.Equal(t, uint64(1), store.Version())

	ordered := store.OrderedData()
	require.Len(t, ordered, 2)
	assert.Equal(t, "a", ordered[0].ID)
	assert.Equal(t, "b", ordered[1].ID)

	assert.True(t, policies.Abilities("b").CreateDocument)
	assert.False(t, policies.Abilities("a").CreateDocument)
}

func TestFetchPageClampsLimit(t *testing.T) {
	var gotLimit int
	source := SourceFunc(func(_ context.Context, _, limit int) ([]model.Collection, error) {
		gotLimit = limit
		return nil, nil
	})
	store := NewCollections(source, NewPolicies(model.User{}))

	_, err := store.FetchPage(context.Background(), PageOptions{Limit: 5000})
	require.NoError(t, err)
	assert.Equal(t, MaxPageSize, gotLimit)
}

func TestFetchPageFailureLeavesStoreUnloaded(t *testing.T) {
	boom := errors.New("boom")
	store := NewCollections(SourceFunc(func(context.Context, int, int) ([]model.Collection, error) {
		return nil, boom
	}), NewPolicies(model.User{}))

	_, err := store.FetchPage(context.Background(), PageOptions{Limit: 10})
	require.ErrorIs(t, err, boom)
	assert.False(t, store.IsLoaded())
	assert.Equal(t, uint64(0), store.Version())
}

func TestFindFallsBackToSource(t *testing.T) {
	store := NewCollections(staticSource(model.Collection{ID: "eng", Name: "Engineering"}), NewPolicies(model.User{}))

	c, err := store.Find(context.Background(), "eng")
	require.NoError(t, err)
	assert.Equal(t, "Engineering", c.Name)
	assert.False(t, store.IsLoaded(), "lookups must not mark the store loaded")

	_, err = store.Find(context.Background(), "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestWorkspaceSourcePages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workspace.yaml")
	require.NoError(t, workspace.Save(path, workspace.Sample("Acme", "u1")))

	source := WorkspaceSource{Path: path}
	first, err := source.ListCollections(context.Background(), 0, 2)
	require.NoError(t, err)
	assert.Len(t, first, 2)

	rest, err := source.ListCollections(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 1)

	none, err := source.ListCollections(context.Background(), 10, 2)
	require.NoError(t, err)
	assert.Empty(t, none)

	require.NoError(t, os.Remove(path))
	_, err = source.ListCollections(context.Background(), 0, 2)
	assert.Error(t, err)
}
