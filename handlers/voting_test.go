// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/steeped/models"
	"github.com/danielhkuo/steeped/testutil"
	"github.com/danielhkuo/steeped/votes"
)

func castVoteRequest(shopID, userID string, body interface{}) *http.Request {
	headers := map[string]string{}
	if userID != "" {
		headers["X-User-ID"] = userID
	}
	req := testutil.MakeRequest("POST", "/shops/"+shopID+"/votes", body, headers)
	req.SetPathValue("id", shopID)
	return req
}

func TestCastVote(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewVoteHandler(votes.NewLedger(conn), cfg)

	shopID := testutil.CreateTestShop(t, conn, "Toggle Teas")

	tests := []struct {
		name           string
		shopID         string
		userID         string
		requestBody    interface{}
		expectedStatus int
		wantPrevious   *models.VoteType
		wantCurrent    *models.VoteType
		wantUp         int
		wantDown       int
	}{
		{
			name:           "first upvote",
			shopID:         shopID,
			userID:         "alice",
			requestBody:    models.CastVoteRequest{Type: models.VoteUp},
			expectedStatus: http.StatusOK,
			wantPrevious:   nil,
			wantCurrent:    voteTypePtr(models.VoteUp),
			wantUp:         1,
			wantDown:       0,
		},
		{
			name:           "repeating the upvote undoes it",
			shopID:         shopID,
			userID:         "alice",
			requestBody:    models.CastVoteRequest{Type: models.VoteUp},
			expectedStatus: http.StatusOK,
			wantPrevious:   voteTypePtr(models.VoteUp),
			wantCurrent:    nil,
			wantUp:         0,
			wantDown:       0,
		},
		{
			name:           "downvote after undo",
			shopID:         shopID,
			userID:         "alice",
			requestBody:    models.CastVoteRequest{Type: models.VoteDown},
			expectedStatus: http.StatusOK,
			wantPrevious:   nil,
			wantCurrent:    voteTypePtr(models.VoteDown),
			wantUp:         0,
			wantDown:       1,
		},
		{
			name:           "upvote switches the downvote",
			shopID:         shopID,
			userID:         "alice",
			requestBody:    models.CastVoteRequest{Type: models.VoteUp},
			expectedStatus: http.StatusOK,
			wantPrevious:   voteTypePtr(models.VoteDown),
			wantCurrent:    voteTypePtr(models.VoteUp),
			wantUp:         1,
			wantDown:       0,
		},
		{
			name:           "second user stacks on top",
			shopID:         shopID,
			userID:         "bob",
			requestBody:    models.CastVoteRequest{Type: models.VoteUp},
			expectedStatus: http.StatusOK,
			wantPrevious:   nil,
			wantCurrent:    voteTypePtr(models.VoteUp),
			wantUp:         2,
			wantDown:       0,
		},
		{
			name:           "missing user header",
			shopID:         shopID,
			userID:         "",
			requestBody:    models.CastVoteRequest{Type: models.VoteUp},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "unknown vote type",
			shopID:         shopID,
			userID:         "alice",
			requestBody:    map[string]string{"type": "sideways"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown shop",
			shopID:         "missing",
			userID:         "alice",
			requestBody:    models.CastVoteRequest{Type: models.VoteUp},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := castVoteRequest(tt.shopID, tt.userID, tt.requestBody)
			w := httptest.NewRecorder()

			handler.CastVote(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var resp models.CastVoteResponse
			testutil.AssertJSON(t, w, &resp)

			if !voteTypeEqual(resp.Previous, tt.wantPrevious) {
				t.Errorf("Previous: expected %v, got %v", voteTypeString(tt.wantPrevious), voteTypeString(resp.Previous))
			}
			if !voteTypeEqual(resp.Current, tt.wantCurrent) {
				t.Errorf("Current: expected %v, got %v", voteTypeString(tt.wantCurrent), voteTypeString(resp.Current))
			}
			if resp.Shop.Upvotes != tt.wantUp || resp.Shop.Downvotes != tt.wantDown {
				t.Errorf("Counts: expected %d/%d, got %d/%d", tt.wantUp, tt.wantDown, resp.Shop.Upvotes, resp.Shop.Downvotes)
			}

			// The counts in the response must match the ledger rows.
			var upRows, downRows int
			err := conn.QueryRow(`
				SELECT
					COUNT(*) FILTER (WHERE vote_type = 'up'),
					COUNT(*) FILTER (WHERE vote_type = 'down')
				FROM vote_entry WHERE shop_id = $1
			`, tt.shopID).Scan(&upRows, &downRows)
			if err != nil {
				t.Fatalf("Failed to count vote entries: %v", err)
			}
			if upRows != tt.wantUp || downRows != tt.wantDown {
				t.Errorf("Ledger rows: expected %d/%d, got %d/%d", tt.wantUp, tt.wantDown, upRows, downRows)
			}
		})
	}
}

func TestGetMyVote(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewVoteHandler(votes.NewLedger(conn), cfg)

	shopID := testutil.CreateTestShop(t, conn, "Lookup Leaf")
	testutil.CastTestVote(t, conn, "alice", shopID, models.VoteDown)

	tests := []struct {
		name           string
		shopID         string
		userID         string
		expectedStatus int
		wantVote       *models.VoteType
	}{
		{
			name:           "user with a vote",
			shopID:         shopID,
			userID:         "alice",
			expectedStatus: http.StatusOK,
			wantVote:       voteTypePtr(models.VoteDown),
		},
		{
			name:           "user without a vote",
			shopID:         shopID,
			userID:         "bob",
			expectedStatus: http.StatusOK,
			wantVote:       nil,
		},
		{
			name:           "missing user header",
			shopID:         shopID,
			userID:         "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "unknown shop",
			shopID:         "missing",
			userID:         "alice",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.userID != "" {
				headers["X-User-ID"] = tt.userID
			}
			req := testutil.MakeRequest("GET", "/shops/"+tt.shopID+"/votes/me", nil, headers)
			req.SetPathValue("id", tt.shopID)
			w := httptest.NewRecorder()

			handler.GetMyVote(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var resp models.CurrentVoteResponse
			testutil.AssertJSON(t, w, &resp)
			if !voteTypeEqual(resp.Vote, tt.wantVote) {
				t.Errorf("Vote: expected %v, got %v", voteTypeString(tt.wantVote), voteTypeString(resp.Vote))
			}
		})
	}
}

func voteTypePtr(v models.VoteType) *models.VoteType {
	return &v
}

func voteTypeEqual(a, b *models.VoteType) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func voteTypeString(v *models.VoteType) string {
	if v == nil {
		return "none"
	}
	return string(*v)
}
