// ABOUTME: Block catalog storage operations for SQLite
// ABOUTME: Name/category lookups, id fetch, catalog listing and metadata upserts
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aivix/bench/internal/models"
	"golang.org/x/sync/errgroup"
)

// ErrBlockNotFound is returned by writes that target an unknown block id
var ErrBlockNotFound = errors.New("block not found")

const blockColumns = `block_id, name, category, description, custom_description, tags, user_id, input_schema, output_schema`

// BlockStore handles block catalog persistence
type BlockStore struct {
	db *DB
}

// NewBlockStore creates a new BlockStore
func NewBlockStore(db *DB) *BlockStore {
	return &BlockStore{db: db}
}

// Save inserts or replaces a catalog entry (upsert on block_id).
// The row id, and therefore the catalog order, survives updates.
func (s *BlockStore) Save(ctx context.Context, block *models.BlockDetails) error {
	if err := block.Validate(); err != nil {
		return err
	}

	tagsJSON, err := marshalJSON(block.Tags, "[]")
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}
	inputJSON, err := marshalJSON(block.InputSchema, "{}")
	if err != nil {
		return fmt.Errorf("failed to marshal input schema: %w", err)
	}
	outputJSON, err := marshalJSON(block.OutputSchema, "{}")
	if err != nil {
		return fmt.Errorf("failed to marshal output schema: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO block_metadata (`+blockColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(block_id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			description = excluded.description,
			custom_description = excluded.custom_description,
			tags = excluded.tags,
			user_id = excluded.user_id,
			input_schema = excluded.input_schema,
			output_schema = excluded.output_schema,
			updated_at = CURRENT_TIMESTAMP
	`, block.BlockID, block.Name, nullString(block.Category), nullString(block.Description),
		nullString(block.CustomDescription), tagsJSON, block.UserID, inputJSON, outputJSON)

	return err
}

// FindByID retrieves a block by its external id; nil when absent
func (s *BlockStore) FindByID(ctx context.Context, blockID string) (*models.BlockSummary, error) {
	block, err := s.GetDetails(ctx, blockID)
	if err != nil || block == nil {
		return nil, err
	}
	return &block.BlockSummary, nil
}

// GetDetails retrieves a block with its schemas; nil when absent
func (s *BlockStore) GetDetails(ctx context.Context, blockID string) (*models.BlockDetails, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+blockColumns+`
		FROM block_metadata
		WHERE block_id = ?
	`, blockID)

	block, err := scanBlock(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get block: %w", err)
	}

	return &block, nil
}

// FindByNameSubstring returns the first block (catalog order) whose name contains
// text, compared case-insensitively. SQLite LIKE only folds ASCII, so the
// comparison runs in Go to cover Cyrillic names. This reads every row per
// lookup, which is fine for a catalog of a few hundred nodes.
func (s *BlockStore) FindByNameSubstring(ctx context.Context, text string) (*models.BlockDetails, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+blockColumns+`
		FROM block_metadata
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query blocks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	needle := strings.ToLower(text)
	for rows.Next() {
		block, err := scanBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan block: %w", err)
		}
		if strings.Contains(strings.ToLower(block.Name), needle) {
			return &block, nil
		}
	}

	return nil, rows.Err()
}

// List returns the catalog in order, narrowed by case-insensitive
// substring filters on category and name
func (s *BlockStore) List(ctx context.Context, filter models.BlockFilter) ([]models.BlockSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+blockColumns+`
		FROM block_metadata
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query blocks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	category := strings.ToLower(filter.Category)
	search := strings.ToLower(filter.Search)

	blocks := []models.BlockSummary{}
	for rows.Next() {
		block, err := scanBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan block: %w", err)
		}
		if category != "" && !strings.Contains(strings.ToLower(block.Category), category) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(block.Name), search) {
			continue
		}
		blocks = append(blocks, block.BlockSummary)
	}

	return blocks, rows.Err()
}

// Categories returns the distinct non-empty categories, sorted
func (s *BlockStore) Categories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT category
		FROM block_metadata
		WHERE category IS NOT NULL AND category != ''
		ORDER BY category
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// ListAll returns every block and every distinct category.
// The two queries run concurrently.
func (s *BlockStore) ListAll(ctx context.Context) ([]models.BlockSummary, []string, error) {
	var (
		blocks     []models.BlockSummary
		categories []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		blocks, err = s.List(gctx, models.BlockFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.Categories(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return blocks, categories, nil
}

// UpsertMetadata updates the user-editable fields of an existing block.
// Nil fields in the input leave the stored value untouched.
func (s *BlockStore) UpsertMetadata(ctx context.Context, in models.BlockMetadataInput) (*models.BlockSummary, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var tags any
	if in.Tags != nil {
		data, err := json.Marshal(in.Tags)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal tags: %w", err)
		}
		tags = string(data)
	}

	var description any
	if in.CustomDescription != nil {
		description = *in.CustomDescription
	}

	var userID any
	if in.UserID != nil {
		userID = *in.UserID
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE block_metadata
		SET custom_description = COALESCE(?, custom_description),
			tags = COALESCE(?, tags),
			user_id = COALESCE(?, user_id),
			updated_at = CURRENT_TIMESTAMP
		WHERE block_id = ?
	`, description, tags, userID, in.BlockID)
	if err != nil {
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: %s", ErrBlockNotFound, in.BlockID)
	}

	return s.FindByID(ctx, in.BlockID)
}

// Delete removes a block from the catalog
func (s *BlockStore) Delete(ctx context.Context, blockID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM block_metadata WHERE block_id = ?", blockID)
	return err
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// scanBlock reads one row; malformed JSON columns decode to empty values
func scanBlock(row rowScanner) (models.BlockDetails, error) {
	var (
		block             models.BlockDetails
		category          sql.NullString
		description       sql.NullString
		customDescription sql.NullString
		tagsJSON          sql.NullString
		userID            sql.NullInt64
		inputJSON         sql.NullString
		outputJSON        sql.NullString
	)

	err := row.Scan(&block.BlockID, &block.Name, &category, &description, &customDescription,
		&tagsJSON, &userID, &inputJSON, &outputJSON)
	if err != nil {
		return block, err
	}

	block.Category = category.String
	block.Description = description.String
	block.CustomDescription = customDescription.String
	if userID.Valid {
		id := userID.Int64
		block.UserID = &id
	}

	if tagsJSON.Valid && tagsJSON.String != "" {
		if err := json.Unmarshal([]byte(tagsJSON.String), &block.Tags); err != nil {
			block.Tags = nil
		}
	}
	if inputJSON.Valid && inputJSON.String != "" {
		if err := json.Unmarshal([]byte(inputJSON.String), &block.InputSchema); err != nil {
			block.InputSchema = nil
		}
	}
	if outputJSON.Valid && outputJSON.String != "" {
		if err := json.Unmarshal([]byte(outputJSON.String), &block.OutputSchema); err != nil {
			block.OutputSchema = nil
		}
	}

	block.Normalize()
	return block, nil
}

func marshalJSON(v any, empty string) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	if string(data) == "null" {
		return empty, nil
	}
	return string(data), nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
