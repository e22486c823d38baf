// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package shops

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/steeped/models"
	"github.com/danielhkuo/steeped/votes"
)

// ErrNotFound means the requested shop id does not exist.
var ErrNotFound = errors.New("shop not found")

// ValidationError reports a create/update request that cannot be stored.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Repository is the single write path for shop records. Descriptive fields
// are owned here; upvotes, downvotes, and rating are owned by the vote
// ledger and rejected on direct writes.
type Repository struct {
	db     *sql.DB
	ledger *votes.Ledger
}

func NewRepository(db *sql.DB, ledger *votes.Ledger) *Repository {
	return &Repository{db: db, ledger: ledger}
}

// Create stores a new shop with zeroed vote fields. Caller-supplied counts
// or ratings never exist in the request type, so they cannot sneak in.
func (r *Repository) Create(req models.CreateShopRequest) (models.Shop, error) {
	if err := validateRequired(req.Name, req.Description, req.Address); err != nil {
		return models.Shop{}, err
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return models.Shop{}, err
	}

	shop := models.Shop{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Address:     strings.TrimSpace(req.Address),
		ImageURL:    req.ImageURL,
		Specialty:   req.Specialty,
		Hours:       req.Hours,
		Tags:        tags,
		CreatedAt:   time.Now(),
	}

	_, err = r.db.Exec(`
		INSERT INTO shop (id, name, description, address, image_url, specialty,
		                  open_time, close_time, tags, upvotes, downvotes, rating, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, 0, 0, $10)
	`, shop.ID, shop.Name, shop.Description, shop.Address, shop.ImageURL,
		shop.Specialty, shop.Hours.Open, shop.Hours.Close, string(tagsJSON), shop.CreatedAt)
	if err != nil {
		return models.Shop{}, err
	}

	slog.Info("shop created", "shop_id", shop.ID, "name", shop.Name)
	return shop, nil
}

// Update applies a partial update to descriptive fields. Attempts to set
// upvotes, downvotes, or rating fail validation - those are derived from
// the ledger and have no direct write path.
func (r *Repository) Update(id string, req models.UpdateShopRequest) (models.Shop, error) {
	if req.Upvotes != nil || req.Downvotes != nil || req.Rating != nil {
		return models.Shop{}, &ValidationError{
			Field:  "votes",
			Reason: "upvotes, downvotes, and rating are derived from the vote ledger and cannot be set",
		}
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return models.Shop{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) == "" {
		return models.Shop{}, &ValidationError{Field: "description", Reason: "must not be empty"}
	}
	if req.Address != nil && strings.TrimSpace(*req.Address) == "" {
		return models.Shop{}, &ValidationError{Field: "address", Reason: "must not be empty"}
	}

	tx, err := r.db.Begin()
	if err != nil {
		return models.Shop{}, err
	}
	defer tx.Rollback()

	shop, err := scanShop(tx.QueryRow(selectShop+` WHERE id = $1`, id))
	if err != nil {
		return models.Shop{}, err
	}

	if req.Name != nil {
		shop.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		shop.Description = strings.TrimSpace(*req.Description)
	}
	if req.Address != nil {
		shop.Address = strings.TrimSpace(*req.Address)
	}
	if req.ImageURL != nil {
		shop.ImageURL = *req.ImageURL
	}
	if req.Specialty != nil {
		shop.Specialty = *req.Specialty
	}
	if req.Hours != nil {
		shop.Hours = *req.Hours
	}
	if req.Tags != nil {
		shop.Tags = *req.Tags
		if shop.Tags == nil {
			shop.Tags = []string{}
		}
	}

	tagsJSON, err := json.Marshal(shop.Tags)
	if err != nil {
		return models.Shop{}, err
	}

	_, err = tx.Exec(`
		UPDATE shop
		SET name = $1, description = $2, address = $3, image_url = $4,
		    specialty = $5, open_time = $6, close_time = $7, tags = $8
		WHERE id = $9
	`, shop.Name, shop.Description, shop.Address, shop.ImageURL,
		shop.Specialty, shop.Hours.Open, shop.Hours.Close, string(tagsJSON), id)
	if err != nil {
		return models.Shop{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Shop{}, err
	}

	slog.Info("shop updated", "shop_id", id)
	return shop, nil
}

// Delete removes a shop and purges its ledger entries in one transaction,
// so no orphaned votes survive. Returns the number of votes removed.
func (r *Repository) Delete(id string) (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	// Ledger first: the ledger owns vote lifetime and the dedicated purge
	// keeps that ownership explicit instead of leaning on FK cascade.
	removed, err := r.ledger.RemoveAllForShop(tx, id)
	if err != nil {
		return 0, err
	}

	res, err := tx.Exec(`DELETE FROM shop WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return 0, err
	} else if n == 0 {
		return 0, ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	slog.Info("shop deleted", "shop_id", id, "votes_removed", removed)
	return removed, nil
}

// List returns every shop in creation order. Presentation ordering is the
// ranking package's job; this is just the snapshot it operates on.
func (r *Repository) List() ([]models.Shop, error) {
	rows, err := r.db.Query(selectShop + ` ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shops := []models.Shop{}
	for rows.Next() {
		shop, err := scanShop(rows)
		if err != nil {
			return nil, err
		}
		shops = append(shops, shop)
	}
	return shops, rows.Err()
}

// GetByID returns a single shop or ErrNotFound.
func (r *Repository) GetByID(id string) (models.Shop, error) {
	return scanShop(r.db.QueryRow(selectShop+` WHERE id = $1`, id))
}

const selectShop = `
	SELECT id, name, description, address, image_url, specialty,
	       open_time, close_time, tags, upvotes, downvotes, rating, created_at
	FROM shop`

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanShop(row rowScanner) (models.Shop, error) {
	var shop models.Shop
	var tagsJSON string
	err := row.Scan(
		&shop.ID, &shop.Name, &shop.Description, &shop.Address, &shop.ImageURL,
		&shop.Specialty, &shop.Hours.Open, &shop.Hours.Close, &tagsJSON,
		&shop.Upvotes, &shop.Downvotes, &shop.Rating, &shop.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return models.Shop{}, ErrNotFound
	}
	if err != nil {
		return models.Shop{}, err
	}
	if err := json.Unmarshal([]byte(tagsJSON), &shop.Tags); err != nil {
		return models.Shop{}, err
	}
	return shop, nil
}

func validateRequired(name, description, address string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if strings.TrimSpace(description) == "" {
		return &ValidationError{Field: "description", Reason: "is required"}
	}
	if strings.TrimSpace(address) == "" {
		return &ValidationError{Field: "address", Reason: "is required"}
	}
	return nil
}
