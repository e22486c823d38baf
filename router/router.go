// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/steeped/cliparse"
	"github.com/danielhkuo/steeped/handlers"
	"github.com/danielhkuo/steeped/middleware"
	"github.com/danielhkuo/steeped/shops"
	"github.com/danielhkuo/steeped/votes"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	ledger := votes.NewLedger(db)
	repo := shops.NewRepository(db, ledger)
	shopHandler := handlers.NewShopHandler(repo, cfg)
	voteHandler := handlers.NewVoteHandler(ledger, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Shop directory (public, delete is admin-gated in the handler)
	mux.HandleFunc("GET /shops", middleware.WithLogging(shopHandler.ListShops))
	mux.HandleFunc("POST /shops", middleware.WithLogging(shopHandler.CreateShop))
	mux.HandleFunc("GET /shops/{id}", middleware.WithLogging(shopHandler.GetShop))
	mux.HandleFunc("PUT /shops/{id}", middleware.WithLogging(shopHandler.UpdateShop))
	mux.HandleFunc("DELETE /shops/{id}", middleware.WithLogging(shopHandler.DeleteShop))

	// Voting (requires X-User-ID)
	mux.HandleFunc("POST /shops/{id}/votes", middleware.WithLogging(voteHandler.CastVote))
	mux.HandleFunc("GET /shops/{id}/votes/me", middleware.WithLogging(voteHandler.GetMyVote))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("steeped API v1"))
	})

	return mux
}
