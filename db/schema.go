// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Shops. upvotes/downvotes/rating are caches over vote_entry, maintained by
-- the votes package inside the same transaction as the ledger change.
CREATE TABLE IF NOT EXISTS shop (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL,
    address TEXT NOT NULL,
    image_url TEXT NOT NULL DEFAULT '',
    specialty TEXT NOT NULL DEFAULT '',
    open_time TEXT NOT NULL DEFAULT '',
    close_time TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL DEFAULT '[]',
    upvotes INTEGER NOT NULL DEFAULT 0 CHECK (upvotes >= 0),
    downvotes INTEGER NOT NULL DEFAULT 0 CHECK (downvotes >= 0),
    rating REAL NOT NULL DEFAULT 0 CHECK (rating >= 0 AND rating <= 5),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_shop_created_at ON shop(created_at);

-- Vote ledger. One row per (user, shop): casting replaces or removes the
-- prior row, never appends a second one. The composite primary key is what
-- makes the one-vote invariant a database guarantee rather than a code path.
CREATE TABLE IF NOT EXISTS vote_entry (
    user_id TEXT NOT NULL,
    shop_id TEXT NOT NULL REFERENCES shop(id) ON DELETE CASCADE,
    vote_type TEXT NOT NULL CHECK (vote_type IN ('up', 'down')),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (user_id, shop_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_entry_shop ON vote_entry(shop_id);
CREATE INDEX IF NOT EXISTS idx_vote_entry_shop_type ON vote_entry(shop_id, vote_type);
`
