// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package votes

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/danielhkuo/steeped/models"
	"github.com/danielhkuo/steeped/rating"
)

var (
	// ErrUnauthorized means the caller supplied no user identity.
	ErrUnauthorized = errors.New("vote requires an authenticated user")
	// ErrShopNotFound means the target shop does not exist.
	ErrShopNotFound = errors.New("shop not found")
	// ErrInvalidVoteType means the cast was neither "up" nor "down".
	ErrInvalidVoteType = errors.New("invalid vote type")
	// ErrConflict means the vote transaction kept losing to concurrent
	// writers and the retry budget ran out. The ledger and counts are
	// unchanged; the caller may simply try again.
	ErrConflict = errors.New("vote conflicted with concurrent updates")
	// ErrUnavailable means the database could not be reached. The vote may
	// or may not have been recorded; callers must not assume either way.
	ErrUnavailable = errors.New("storage unavailable")
)

// Ledger owns the vote_entry table and the three derived fields on shop
// rows (upvotes, downvotes, rating). Every mutation commits the ledger
// change and the recomputed aggregates in one transaction, so the
// counts-match-ledger invariant holds at every commit point.
type Ledger struct {
	db *sql.DB
}

func NewLedger(db *sql.DB) *Ledger {
	return &Ledger{db: db}
}

// CastVote applies one toggle transition for (userID, shopID):
//
//	none + up   -> up      none + down -> down
//	up   + up   -> none    down + down -> none   (repeat click undoes)
//	up   + down -> down    down + up   -> up     (switch)
//
// The ledger change and the recomputed shop aggregates commit atomically.
// On serialization or lock contention the whole step is retried a bounded
// number of times before ErrConflict is returned. The updated shop row is
// returned so callers can render fresh counts without a second read.
func (l *Ledger) CastVote(userID, shopID string, voteType models.VoteType) (models.VoteTransition, models.Shop, error) {
	if strings.TrimSpace(userID) == "" {
		return models.VoteTransition{}, models.Shop{}, ErrUnauthorized
	}
	if !voteType.Valid() {
		return models.VoteTransition{}, models.Shop{}, ErrInvalidVoteType
	}

	var (
		transition models.VoteTransition
		shop       models.Shop
	)
	err := withRetry(func() error {
		var err error
		transition, shop, err = l.castOnce(userID, shopID, voteType)
		return err
	})
	if err != nil {
		return models.VoteTransition{}, models.Shop{}, classify(err)
	}
	return transition, shop, nil
}

// castOnce runs a single attempt of the vote transaction.
//
// Lock ordering matters: the shop row is locked before the ledger is read
// or counted. A writer that blocks on that lock re-reads the ledger after
// the earlier transaction commits, so the recount can never be based on a
// stale snapshot - the classic read-modify-write lost update is impossible
// by construction.
func (l *Ledger) castOnce(userID, shopID string, voteType models.VoteType) (models.VoteTransition, models.Shop, error) {
	none := models.VoteTransition{}

	tx, err := l.db.Begin()
	if err != nil {
		return none, models.Shop{}, err
	}
	defer tx.Rollback()

	// Self-assignment acquires the row lock and doubles as the existence
	// check via RowsAffected.
	res, err := tx.Exec(`UPDATE shop SET name = name WHERE id = $1`, shopID)
	if err != nil {
		return none, models.Shop{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return none, models.Shop{}, err
	} else if n == 0 {
		return none, models.Shop{}, ErrShopNotFound
	}

	var prevStr string
	var previous *models.VoteType
	err = tx.QueryRow(`
		SELECT vote_type FROM vote_entry WHERE user_id = $1 AND shop_id = $2
	`, userID, shopID).Scan(&prevStr)
	if err != nil && err != sql.ErrNoRows {
		return none, models.Shop{}, err
	}
	if err == nil {
		prev := models.VoteType(prevStr)
		previous = &prev
	}

	var current *models.VoteType
	switch {
	case previous == nil:
		_, err = tx.Exec(`
			INSERT INTO vote_entry (user_id, shop_id, vote_type, created_at)
			VALUES ($1, $2, $3, $4)
		`, userID, shopID, string(voteType), time.Now())
		current = &voteType
	case *previous == voteType:
		// Repeat of the standing vote cancels it.
		_, err = tx.Exec(`
			DELETE FROM vote_entry WHERE user_id = $1 AND shop_id = $2
		`, userID, shopID)
	default:
		_, err = tx.Exec(`
			UPDATE vote_entry SET vote_type = $1 WHERE user_id = $2 AND shop_id = $3
		`, string(voteType), userID, shopID)
		current = &voteType
	}
	if err != nil {
		return none, models.Shop{}, err
	}

	shop, err := applyAggregates(tx, shopID)
	if err != nil {
		return none, models.Shop{}, err
	}

	if err := tx.Commit(); err != nil {
		return none, models.Shop{}, err
	}

	return models.VoteTransition{Previous: previous, Current: current}, shop, nil
}

// applyAggregates recomputes the shop's vote counts from the ledger inside
// tx and persists counts plus the derived rating onto the shop row. The
// counts are always re-derived from vote_entry, never incremented from the
// cached values.
func applyAggregates(tx *sql.Tx, shopID string) (models.Shop, error) {
	var upvotes, downvotes int
	err := tx.QueryRow(`
		SELECT
			COUNT(*) FILTER (WHERE vote_type = 'up'),
			COUNT(*) FILTER (WHERE vote_type = 'down')
		FROM vote_entry
		WHERE shop_id = $1
	`, shopID).Scan(&upvotes, &downvotes)
	if err != nil {
		return models.Shop{}, err
	}

	score := rating.Score(upvotes, downvotes)
	_, err = tx.Exec(`
		UPDATE shop SET upvotes = $1, downvotes = $2, rating = $3 WHERE id = $4
	`, upvotes, downvotes, score, shopID)
	if err != nil {
		return models.Shop{}, err
	}

	return readShop(tx, shopID)
}

// readShop loads the full shop row inside the vote transaction so the
// caller sees exactly the state that committed.
func readShop(tx *sql.Tx, shopID string) (models.Shop, error) {
	var shop models.Shop
	var tagsJSON string
	err := tx.QueryRow(`
		SELECT id, name, description, address, image_url, specialty,
		       open_time, close_time, tags, upvotes, downvotes, rating, created_at
		FROM shop
		WHERE id = $1
	`, shopID).Scan(
		&shop.ID, &shop.Name, &shop.Description, &shop.Address, &shop.ImageURL,
		&shop.Specialty, &shop.Hours.Open, &shop.Hours.Close, &tagsJSON,
		&shop.Upvotes, &shop.Downvotes, &shop.Rating, &shop.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return models.Shop{}, ErrShopNotFound
	}
	if err != nil {
		return models.Shop{}, err
	}
	if err := json.Unmarshal([]byte(tagsJSON), &shop.Tags); err != nil {
		return models.Shop{}, err
	}
	return shop, nil
}

// CurrentVote returns the user's standing vote on a shop, or nil if the
// user has none. Used to render per-user vote state.
func (l *Ledger) CurrentVote(userID, shopID string) (*models.VoteType, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUnauthorized
	}

	var exists bool
	err := l.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM shop WHERE id = $1)`, shopID).Scan(&exists)
	if err != nil {
		return nil, classify(err)
	}
	if !exists {
		return nil, ErrShopNotFound
	}

	var voteStr string
	err = l.db.QueryRow(`
		SELECT vote_type FROM vote_entry WHERE user_id = $1 AND shop_id = $2
	`, userID, shopID).Scan(&voteStr)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err)
	}
	vote := models.VoteType(voteStr)
	return &vote, nil
}

// Counts returns the ledger-derived up/down counts for a shop. Mostly a
// verification hook: the same numbers are cached on the shop row.
func (l *Ledger) Counts(shopID string) (upvotes, downvotes int, err error) {
	err = l.db.QueryRow(`
		SELECT
			COUNT(*) FILTER (WHERE vote_type = 'up'),
			COUNT(*) FILTER (WHERE vote_type = 'down')
		FROM vote_entry
		WHERE shop_id = $1
	`, shopID).Scan(&upvotes, &downvotes)
	if err != nil {
		err = classify(err)
	}
	return upvotes, downvotes, err
}

// RemoveAllForShop purges every ledger entry for a shop inside the
// caller's transaction. Shop deletion uses this so no orphaned votes
// survive the shop row.
func (l *Ledger) RemoveAllForShop(tx *sql.Tx, shopID string) (int64, error) {
	res, err := tx.Exec(`DELETE FROM vote_entry WHERE shop_id = $1`, shopID)
	if err != nil {
		return 0, err
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		slog.Info("vote ledger purged", "shop_id", shopID, "removed", removed)
	}
	return removed, nil
}
