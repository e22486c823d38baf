// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema

Two tables:

  - shop: directory entries, primary key id, with cached vote aggregates
  - vote_entry: the vote ledger, composite primary key (user_id, shop_id),
    secondary index on shop_id for per-shop counting

The DDL uses IF NOT EXISTS throughout and runs on both PostgreSQL and
SQLite, matching the drivers the server supports.

# Usage

Call once at startup, after connecting:

	if err := db.CreateSchema(dbConn); err != nil {
		// handle error
	}
*/
package db
