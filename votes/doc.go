// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package votes implements the vote ledger and rating aggregation engine.

# Ledger

The vote_entry table holds at most one row per (user, shop) pair - it is a
mapping of current vote state, not an append-only log. CastVote implements
the toggle state machine over {none, up, down}:

	none + up   -> up      none + down -> down
	up   + up   -> none    down + down -> none
	up   + down -> down    down + up   -> up

and returns the resulting VoteTransition together with the updated shop.

# Aggregation

Shop rows cache upvotes, downvotes, and the derived rating. The ledger is
the source of truth: inside every vote transaction the counts are recomputed
by counting vote_entry rows (never incremented from the cached values) and
written back along with rating.Score. The ledger change and the aggregate
write commit or abort together.

# Concurrency

The shop row is locked before the ledger is counted, so a voter that blocks
behind a concurrent transaction recounts after it commits. Two users
upvoting the same fresh shop concurrently always ends at upvotes == 2.
Contention errors (serialization failures, deadlocks, SQLITE_BUSY) are
retried up to three times with jittered backoff; after that the call fails
with ErrConflict and no partial state. An unreachable database surfaces as
ErrUnavailable, which deliberately does not claim whether the vote landed.

# Errors

	ErrUnauthorized    missing user identity; no state change
	ErrShopNotFound    target shop does not exist
	ErrInvalidVoteType cast was neither "up" nor "down"
	ErrConflict        retry budget exhausted; safe to resubmit
	ErrUnavailable     storage unreachable; outcome unknown
*/
package votes
