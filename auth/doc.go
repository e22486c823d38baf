// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides identity extraction and admin key utilities.

# Admin Keys

Admin keys use HMAC-SHA256 to create a deterministic, verifiable key:

	adminKey := auth.GenerateAdminKey(salt)
	err := auth.ValidateAdminKey(adminKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same salt always produces the same key, so validation needs no database
lookup and the key is never stored.

# User Identity

Voter identity arrives on every mutating request as the X-User-ID header,
supplied by an external identity provider:

	userID, err := auth.UserID(r)

The server treats the value as an opaque stable string. A missing header
yields ErrMissingUserID, which handlers map to 401 Unauthorized.
*/
package auth
