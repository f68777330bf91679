package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solo-ai/solo/internal/store"
	"github.com/solo-ai/solo/tests/testutil"
)

func TestGetSetting_Missing(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.GetSetting(context.Background(), "openaiApiKey")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSetSetting_Overwrites(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetSetting(ctx, "openaiApiKey", "sk-first"))
	require.NoError(t, s.SetSetting(ctx, "openaiApiKey", "sk-second"))

	got, err := s.GetSetting(ctx, "openaiApiKey")
	require.NoError(t, err)
	assert.Equal(t, "sk-second", got.Value)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestDeleteSetting(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetSetting(ctx, "openaiApiKey", "sk-abc"))
	require.NoError(t, s.DeleteSetting(ctx, "openaiApiKey"))

	_, err := s.GetSetting(ctx, "openaiApiKey")
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Deleting again is a no-op.
	assert.NoError(t, s.DeleteSetting(ctx, "openaiApiKey"))
}

func TestNewSQLiteStore_ReopenKeepsData(t *testing.T) {
	path := t.TempDir() + "/nested/solo.db"
	ctx := context.Background()

	s, err := store.NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.SetSetting(ctx, "k", "v"))
	require.NoError(t, s.Close())

	s, err = store.NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.GetSetting(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got.Value)
}
