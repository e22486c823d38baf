// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/steeped/cliparse"
	"github.com/danielhkuo/steeped/db"
	"github.com/danielhkuo/steeped/models"
	"github.com/danielhkuo/steeped/votes"
)

// SetupTestDB creates a fresh SQLite database in a per-test temp dir with
// the full schema. WAL mode plus a generous busy timeout lets the
// concurrency tests hammer it from many goroutines.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "steeped_test.db")
	dsn := "file:" + path + "?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3419,
		DatabaseType: "sqlite",
		AdminKeySalt: "test-admin-salt",
		Seed:         false,
	}
}

// CreateTestShop inserts a shop with zero votes and returns its ID.
func CreateTestShop(t *testing.T, conn *sql.DB, name string) string {
	t.Helper()

	shopID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO shop (id, name, description, address, tags, created_at)
		VALUES ($1, $2, 'A test tea shop', '1 Test Lane', '[]', $3)
	`, shopID, name, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test shop: %v", err)
	}

	return shopID
}

// CastTestVote records a vote through the real ledger so the shop's
// aggregate counts stay consistent with the vote entries.
func CastTestVote(t *testing.T, conn *sql.DB, userID, shopID string, voteType models.VoteType) {
	t.Helper()

	if _, _, err := votes.NewLedger(conn).CastVote(userID, shopID, voteType); err != nil {
		t.Fatalf("Failed to cast test vote: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
