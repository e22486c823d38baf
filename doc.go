// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Steeped API server.

Steeped is a community tea shop directory. Visitors browse and search
shops, vote them up or down (one live vote per person per shop, votes
toggle and switch), and the service keeps a 0-5 rating and ranked
listings derived from the vote ledger.

# Starting the Server

The server runs on a local SQLite file by default:

	ADMIN_KEY_SALT=secret go run .

Or against PostgreSQL:

	ADMIN_KEY_SALT=secret go run . -t postgres -d "postgres://..."

# Configuration

Required settings:

  - ADMIN_KEY_SALT (--admin-salt): Secret for the admin key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3419)
  - DATABASE_TYPE (-t): "sqlite" or "postgres" (default: sqlite)
  - DATABASE_URL (-d): Driver connection string (defaults to a local
    SQLite file; required for postgres)
  - -seed: Insert the starter shops when the directory is empty
    (default: true)

A .env file in the working directory is loaded if present.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (shops, voting)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - votes: Vote ledger and count aggregation
  - shops: Shop repository and seed data
  - ranking: Sort orders and search filtering
  - rating: The vote-share rating function
  - auth: Admin key and caller identity
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
