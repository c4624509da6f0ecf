// ABOUTME: Tests for the unified catalog Storage facade
// ABOUTME: Verifies construction paths and delegation to the block store
package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aivix/bench/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStorageWithPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	store, err := NewStorageWithPath(path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	assert.Equal(t, path, store.Path())
}

func TestStorage_RoundTrip(t *testing.T) {
	store, err := NewStorageInMemory()
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	ctx := context.Background()

	require.NoError(t, store.SaveBlock(ctx, &models.BlockDetails{BlockSummary: models.BlockSummary{
		BlockID:  "n8n-nodes-base.httpRequest",
		Name:     "HTTP Request",
		Category: "Core Nodes",
	}}))
	require.NoError(t, store.SaveBlock(ctx, &models.BlockDetails{BlockSummary: models.BlockSummary{
		BlockID:  "n8n-nodes-base.slack",
		Name:     "Slack",
		Category: "Communication",
	}}))

	found, err := store.FindByNameSubstring(ctx, "request")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "n8n-nodes-base.httpRequest", found.BlockID)

	byID, err := store.FindByID(ctx, "n8n-nodes-base.slack")
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "Slack", byID.Name)

	blocks, categories, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, blocks, 2)
	assert.Equal(t, []string{"Communication", "Core Nodes"}, categories)

	filtered, allCategories, err := store.ListBlocks(ctx, models.BlockFilter{Category: "communication"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Slack", filtered[0].Name)
	assert.Len(t, allCategories, 2)

	tags := []string{"chat"}
	updated, err := store.UpdateMetadata(ctx, models.BlockMetadataInput{BlockID: "n8n-nodes-base.slack", Tags: tags})
	require.NoError(t, err)
	assert.Equal(t, tags, updated.Tags)

	require.NoError(t, store.DeleteBlock(ctx, "n8n-nodes-base.slack"))
	gone, err := store.FindByID(ctx, "n8n-nodes-base.slack")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestStorage_SaveBlockInvalid(t *testing.T) {
	store, err := NewStorageInMemory()
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	err = store.SaveBlock(context.Background(), &models.BlockDetails{})
	assert.Error(t, err)
}
