// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package handlers contains the HTTP handlers for the shop directory and
// voting endpoints. Handlers decode requests, delegate to the shops
// repository or vote ledger, and map domain errors onto HTTP status codes:
// missing identity is 401, unknown shops are 404, validation failures are
// 400, exhausted contention retries are 409, unreachable storage is 503.
package handlers
