// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP helpers shared by all handlers.

# Request Logging

WithLogging wraps a handler and emits one structured log line per request
with method, path, status, and duration:

	mux.HandleFunc("GET /shops", middleware.WithLogging(handler.ListShops))

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, payload)
	middleware.ErrorResponse(w, http.StatusNotFound, "Shop not found")
	err := middleware.ParseJSONBody(r, &req)

ErrorResponse wraps the message in models.ErrorResponse so every error body
has the same shape.

# CORS

CORS allows cross-origin requests from the frontend, including the custom
X-User-ID and X-Admin-Key headers, and answers OPTIONS preflights.
*/
package middleware
