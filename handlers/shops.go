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
	"github.com/danielhkuo/steeped/ranking"
	"github.com/danielhkuo/steeped/shops"
	"github.com/danielhkuo/steeped/votes"
)

type ShopHandler struct {
	repo *shops.Repository
	cfg  cliparse.Config
}

func NewShopHandler(repo *shops.Repository, cfg cliparse.Config) *ShopHandler {
	return &ShopHandler{repo: repo, cfg: cfg}
}

// ListShops handles GET /shops?sort=rating|newest|alphabetical&q=...
func (h *ShopHandler) ListShops(w http.ResponseWriter, r *http.Request) {
	key, err := ranking.ParseSortKey(r.URL.Query().Get("sort"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	all, err := h.repo.List()
	if err != nil {
		slog.Error("failed to list shops", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Filter first, then order: both work on the snapshot, neither touches
	// the repository again.
	result := ranking.Order(ranking.Filter(all, r.URL.Query().Get("q")), key)

	middleware.JSONResponse(w, http.StatusOK, result)
}

// GetShop handles GET /shops/{id}
func (h *ShopHandler) GetShop(w http.ResponseWriter, r *http.Request) {
	shopID := r.PathValue("id")
	if shopID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "shop id is required")
		return
	}

	shop, err := h.repo.GetByID(shopID)
	if errors.Is(err, shops.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Shop not found")
		return
	}
	if err != nil {
		slog.Error("failed to get shop", "error", err, "shop_id", shopID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, shop)
}

// CreateShop handles POST /shops
func (h *ShopHandler) CreateShop(w http.ResponseWriter, r *http.Request) {
	var req models.CreateShopRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	shop, err := h.repo.Create(req)
	var validationErr *shops.ValidationError
	if errors.As(err, &validationErr) {
		middleware.ErrorResponse(w, http.StatusBadRequest, validationErr.Error())
		return
	}
	if err != nil {
		slog.Error("failed to create shop", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create shop")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, shop)
}

// UpdateShop handles PUT /shops/{id}
func (h *ShopHandler) UpdateShop(w http.ResponseWriter, r *http.Request) {
	shopID := r.PathValue("id")
	if shopID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "shop id is required")
		return
	}

	var req models.UpdateShopRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	shop, err := h.repo.Update(shopID, req)
	var validationErr *shops.ValidationError
	switch {
	case errors.As(err, &validationErr):
		middleware.ErrorResponse(w, http.StatusBadRequest, validationErr.Error())
		return
	case errors.Is(err, shops.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Shop not found")
		return
	case err != nil:
		slog.Error("failed to update shop", "error", err, "shop_id", shopID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update shop")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, shop)
}

// DeleteShop handles DELETE /shops/{id}. Admin only: the shop and all its
// ledger entries go away together.
func (h *ShopHandler) DeleteShop(w http.ResponseWriter, r *http.Request) {
	shopID := r.PathValue("id")
	if shopID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "shop id is required")
		return
	}

	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	removed, err := h.repo.Delete(shopID)
	if errors.Is(err, shops.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Shop not found")
		return
	}
	if errors.Is(err, votes.ErrUnavailable) {
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Storage unavailable")
		return
	}
	if err != nil {
		slog.Error("failed to delete shop", "error", err, "shop_id", shopID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete shop")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DeleteShopResponse{
		Deleted:      shopID,
		VotesRemoved: removed,
	})
}
