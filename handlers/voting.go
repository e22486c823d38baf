// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/steeped/auth"
	"github.com/danielhkuo/steeped/cliparse"
	"github.com/danielhkuo/steeped/middleware"
	"github.com/danielhkuo/steeped/models"
	"github.com/danielhkuo/steeped/votes"
)

type VoteHandler struct {
	ledger *votes.Ledger
	cfg    cliparse.Config
}

func NewVoteHandler(ledger *votes.Ledger, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{ledger: ledger, cfg: cfg}
}

// CastVote handles POST /shops/{id}/votes. Casting the same vote twice
// undoes it; casting the opposite vote switches it.
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	shopID := r.PathValue("id")
	if shopID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "shop id is required")
		return
	}

	userID, err := auth.UserID(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-User-ID header is required")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	transition, shop, err := h.ledger.CastVote(userID, shopID, req.Type)
	switch {
	case errors.Is(err, votes.ErrInvalidVoteType):
		middleware.ErrorResponse(w, http.StatusBadRequest, "vote_type must be 'up' or 'down'")
		return
	case errors.Is(err, votes.ErrUnauthorized):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-User-ID header is required")
		return
	case errors.Is(err, votes.ErrShopNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Shop not found")
		return
	case errors.Is(err, votes.ErrConflict):
		middleware.ErrorResponse(w, http.StatusConflict, "Vote conflicted with a concurrent update, retry")
		return
	case errors.Is(err, votes.ErrUnavailable):
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Storage unavailable")
		return
	case err != nil:
		slog.Error("failed to cast vote", "error", err, "shop_id", shopID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cast vote")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CastVoteResponse{
		Previous: transition.Previous,
		Current:  transition.Current,
		Shop:     shop,
	})
}

// GetMyVote handles GET /shops/{id}/votes/me. Returns the caller's current
// vote for the shop, or null if they have none.
func (h *VoteHandler) GetMyVote(w http.ResponseWriter, r *http.Request) {
	shopID := r.PathValue("id")
	if shopID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "shop id is required")
		return
	}

	userID, err := auth.UserID(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-User-ID header is required")
		return
	}

	vote, err := h.ledger.CurrentVote(userID, shopID)
	switch {
	case errors.Is(err, votes.ErrShopNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Shop not found")
		return
	case errors.Is(err, votes.ErrUnavailable):
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Storage unavailable")
		return
	case err != nil:
		slog.Error("failed to read vote", "error", err, "shop_id", shopID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to read vote")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CurrentVoteResponse{Vote: vote})
}
