// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package router wires the HTTP endpoints to their handlers using the
// standard library mux with method and path-parameter patterns.
package router
