// ABOUTME: Unified catalog Storage layer over the SQLite block store
// ABOUTME: Satisfies the core pipeline's Catalog Store contract
package sqlite

import (
	"context"
	"fmt"

	"github.com/aivix/bench/internal/models"
)

// Storage manages the persistent block catalog
type Storage struct {
	db     *DB
	blocks *BlockStore
}

// NewStorage initializes storage at the default XDG path
func NewStorage() (*Storage, error) {
	return NewStorageWithPath(DefaultDBPath())
}

// NewStorageWithPath initializes storage with a custom database path
func NewStorageWithPath(dbPath string) (*Storage, error) {
	db, err := Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Storage{
		db:     db,
		blocks: NewBlockStore(db),
	}, nil
}

// NewStorageInMemory creates an in-memory storage (for testing)
func NewStorageInMemory() (*Storage, error) {
	db, err := OpenInMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}

	return &Storage{
		db:     db,
		blocks: NewBlockStore(db),
	}, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file path
func (s *Storage) Path() string {
	return s.db.Path()
}

// FindByNameSubstring returns the first block whose name contains text
func (s *Storage) FindByNameSubstring(ctx context.Context, text string) (*models.BlockDetails, error) {
	return s.blocks.FindByNameSubstring(ctx, text)
}

// FindByID returns the block with the given external id, or nil
func (s *Storage) FindByID(ctx context.Context, blockID string) (*models.BlockSummary, error) {
	return s.blocks.FindByID(ctx, blockID)
}

// GetBlock returns a block with its input and output schemas, or nil
func (s *Storage) GetBlock(ctx context.Context, blockID string) (*models.BlockDetails, error) {
	return s.blocks.GetDetails(ctx, blockID)
}

// ListAll returns the full catalog and its distinct categories
func (s *Storage) ListAll(ctx context.Context) ([]models.BlockSummary, []string, error) {
	return s.blocks.ListAll(ctx)
}

// ListBlocks returns the catalog narrowed by filter together with all categories
func (s *Storage) ListBlocks(ctx context.Context, filter models.BlockFilter) ([]models.BlockSummary, []string, error) {
	blocks, err := s.blocks.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	categories, err := s.blocks.Categories(ctx)
	if err != nil {
		return nil, nil, err
	}
	return blocks, categories, nil
}

// SaveBlock inserts or replaces a catalog entry
func (s *Storage) SaveBlock(ctx context.Context, block *models.BlockDetails) error {
	if err := s.blocks.Save(ctx, block); err != nil {
		return fmt.Errorf("failed to save block %s: %w", block.BlockID, err)
	}
	return nil
}

// UpdateMetadata changes the user-editable fields of a block
func (s *Storage) UpdateMetadata(ctx context.Context, in models.BlockMetadataInput) (*models.BlockSummary, error) {
	return s.blocks.UpsertMetadata(ctx, in)
}

// DeleteBlock removes a block from the catalog
func (s *Storage) DeleteBlock(ctx context.Context, blockID string) error {
	return s.blocks.Delete(ctx, blockID)
}
