// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateShopRequest: name, description, address, image_url, specialty, hours, tags
  - UpdateShopRequest: the same fields as optional pointers
  - CastVoteRequest: type ("up" or "down")

# Response Types

Types for JSON responses:

  - CastVoteResponse: previous, current, shop
  - CurrentVoteResponse: vote
  - DeleteShopResponse: deleted, votes_removed
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Shop: directory entry with cached vote aggregates
  - VoteTransition: toggle state change from a cast
  - Hours: opaque open/close pair

# Constants

Vote directions:

	VoteUp   = "up"
	VoteDown = "down"

Shop.Upvotes, Shop.Downvotes, and Shop.Rating are derived from the vote
ledger. Treat them as read-only caches everywhere outside the votes package.
*/
package models
