// ABOUTME: SQLite database schema for the block catalog
// ABOUTME: One table of block metadata keyed by the external node id
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Block catalog (one row per automation node)
CREATE TABLE IF NOT EXISTS block_metadata (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    block_id TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    category TEXT,
    description TEXT,
    custom_description TEXT,
    tags TEXT,
    user_id INTEGER,
    input_schema TEXT,
    output_schema TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_block_metadata_category ON block_metadata(category);
CREATE INDEX IF NOT EXISTS idx_block_metadata_name ON block_metadata(name);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
