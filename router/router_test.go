// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/steeped/models"
	"github.com/danielhkuo/steeped/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "steeped API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	// Routes should be matched; 400, 401, and 404 are all valid handler
	// responses for these probes, 405 means the route is missing.
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},

		{"GET", "/shops"},
		{"POST", "/shops"},
		{"GET", "/shops/test-id"},
		{"PUT", "/shops/test-id"},
		{"DELETE", "/shops/test-id"},

		{"POST", "/shops/test-id/votes"},
		{"GET", "/shops/test-id/votes/me"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"PATCH", "/shops/test-id"},
		{"DELETE", "/shops/test-id/votes/me"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestPathParameterExtraction(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	shopID := testutil.CreateTestShop(t, db, "Routed Rooibos")

	mux := NewRouter(db, cfg)

	t.Run("shop ID extraction", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/shops/"+shopID, nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200 for existing shop, got %d. Body: %s", w.Code, w.Body.String())
		}
	})

	t.Run("vote route sees the same ID", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/shops/"+shopID+"/votes/me", nil)
		req.Header.Set("X-User-ID", "router-test-user")
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200 for vote lookup, got %d. Body: %s", w.Code, w.Body.String())
		}
	})
}

func TestVotingThroughRouter(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	shopID := testutil.CreateTestShop(t, db, "Full Stack Sencha")

	mux := NewRouter(db, cfg)

	req := testutil.MakeRequest("POST", "/shops/"+shopID+"/votes",
		models.CastVoteRequest{Type: models.VoteUp},
		map[string]string{"X-User-ID": "router-voter"})
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d. Body: %s", w.Code, w.Body.String())
	}

	var resp models.CastVoteResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Shop.Upvotes != 1 {
		t.Errorf("Expected 1 upvote, got %d", resp.Shop.Upvotes)
	}
}
