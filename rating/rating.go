// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package rating maps vote counts to the 0-5 star score shown on shop cards.
package rating

import "math"

// Score converts vote counts to a rating in [0.0, 5.0] with one decimal
// place. With no votes the score is 0.0; otherwise it is the upvote share
// scaled to 5 and rounded half away from zero.
func Score(upvotes, downvotes int) float64 {
	total := upvotes + downvotes
	if total == 0 {
		return 0.0
	}
	share := float64(upvotes) / float64(total)
	return math.Round(share*5*10) / 10
}
