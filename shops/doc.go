// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package shops provides CRUD over shop records.

# Repository

Repository is an injected service handle, not ambient state:

	ledger := votes.NewLedger(db)
	repo := shops.NewRepository(db, ledger)

Create assigns the id and timestamp and zeroes all vote fields. Update is
partial (nil pointer fields are left unchanged) and rejects any attempt to
set upvotes, downvotes, or rating - those belong to the votes package.
Delete purges the shop's ledger entries and the shop row in one
transaction, so deletion never leaves orphaned votes.

# Seeding

SeedIfEmpty loads the six default tea shops the directory ships with, gated
on the shop table being empty, and backs their vote counts with ledger
entries from synthetic voters so aggregates and ledger agree from the
start. It never runs twice.

# Errors

	ErrNotFound       unknown shop id
	*ValidationError  missing required field, or a write to a derived field
*/
package shops
