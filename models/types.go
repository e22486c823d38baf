// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// VoteType is the direction of a recorded vote.
type VoteType string

const (
	VoteUp   VoteType = "up"
	VoteDown VoteType = "down"
)

// Valid reports whether t is one of the two known vote directions.
func (t VoteType) Valid() bool {
	return t == VoteUp || t == VoteDown
}

// Request types

type CreateShopRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	ImageURL    string   `json:"image_url"`
	Specialty   string   `json:"specialty"`
	Hours       Hours    `json:"hours"`
	Tags        []string `json:"tags"`
}

// UpdateShopRequest carries partial updates. Nil means "leave unchanged".
// Upvotes, Downvotes, and Rating are decoded only so the repository can
// reject attempts to set them directly - those fields belong to the vote
// engine.
type UpdateShopRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Address     *string   `json:"address"`
	ImageURL    *string   `json:"image_url"`
	Specialty   *string   `json:"specialty"`
	Hours       *Hours    `json:"hours"`
	Tags        *[]string `json:"tags"`

	Upvotes   *int     `json:"upvotes"`
	Downvotes *int     `json:"downvotes"`
	Rating    *float64 `json:"rating"`
}

type CastVoteRequest struct {
	Type VoteType `json:"type"`
}

// Response types

type CastVoteResponse struct {
	Previous *VoteType `json:"previous"`
	Current  *VoteType `json:"current"`
	Shop     Shop      `json:"shop"`
}

type CurrentVoteResponse struct {
	Vote *VoteType `json:"vote"`
}

type DeleteShopResponse struct {
	Deleted      string `json:"deleted"`
	VotesRemoved int64  `json:"votes_removed"`
}

// Domain types

// Hours is an opaque open/close time-of-day pair. The engine stores and
// returns the strings verbatim; it never parses them.
type Hours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// Shop is a directory entry. Upvotes, Downvotes, and Rating are caches
// derived from the vote ledger; the ledger is the source of truth and the
// vote engine is the only writer of these three fields.
type Shop struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	ImageURL    string    `json:"image_url"`
	Specialty   string    `json:"specialty"`
	Hours       Hours     `json:"hours"`
	Tags        []string  `json:"tags"`
	Upvotes     int       `json:"upvotes"`
	Downvotes   int       `json:"downvotes"`
	Rating      float64   `json:"rating"`
	CreatedAt   time.Time `json:"created_at"`
}

// NetScore is the primary ranking key: upvotes minus downvotes. It is finer
// grained than the rounded Rating field and so preserves orderings that
// Rating would collapse into ties.
func (s Shop) NetScore() int {
	return s.Upvotes - s.Downvotes
}

// VoteTransition describes the toggle state change produced by a cast:
// nil Previous means the user had no standing vote, nil Current means the
// cast cancelled it.
type VoteTransition struct {
	Previous *VoteType
	Current  *VoteType
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
