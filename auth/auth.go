// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
)

var (
	ErrInvalidAdminKey = errors.New("invalid admin key")
	ErrMissingUserID   = errors.New("missing user id")
)

// adminScope is the fixed HMAC message for the directory-wide admin key.
// Unlike per-resource keys there is one admin surface, so the key depends
// only on the salt.
const adminScope = "steeped:admin"

// GenerateAdminKey derives the deterministic admin key from the configured
// salt. Printed at startup so operators can capture it without a database
// lookup.
func GenerateAdminKey(salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(adminScope))
	sum := h.Sum(nil)
	// URL-safe base64, padding trimmed for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateAdminKey checks the provided admin key in constant time.
func ValidateAdminKey(adminKey, salt string) error {
	expected := GenerateAdminKey(salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// UserID extracts the caller's identity from the X-User-ID header. Identity
// is issued by an external collaborator; the server treats it as an opaque
// stable string and performs no authentication of its own.
func UserID(r *http.Request) (string, error) {
	id := strings.TrimSpace(r.Header.Get("X-User-ID"))
	if id == "" {
		return "", ErrMissingUserID
	}
	return id, nil
}
