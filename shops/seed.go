// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package shops

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/steeped/models"
	"github.com/danielhkuo/steeped/rating"
)

// seedShop is one default directory entry plus the vote counts it ships
// with. The counts are materialized as real ledger entries from synthetic
// voters so the counts-match-ledger invariant holds from the first request.
type seedShop struct {
	name        string
	description string
	address     string
	imageURL    string
	specialty   string
	hours       models.Hours
	tags        []string
	upvotes     int
	downvotes   int
}

var defaultShops = []seedShop{
	{
		name:        "Serene Leaf",
		description: "A tranquil tea house specializing in traditional Chinese tea ceremonies and rare oolong varieties.",
		address:     "123 Jasmine St, Portland, OR",
		imageURL:    "https://images.unsplash.com/photo-1525518392674-39ba1fca2ec2?ixlib=rb-1.2.1&auto=format&fit=crop&w=500&q=60",
		specialty:   "Oolong Tea",
		hours:       models.Hours{Open: "9:00 AM", Close: "8:00 PM"},
		tags:        []string{"Traditional", "Quiet", "Ceremony"},
		upvotes:     42,
		downvotes:   5,
	},
	{
		name:        "Matcha Maiden",
		description: "Modern café with specialty matcha drinks and Japanese-inspired pastries.",
		address:     "456 Green Ave, Seattle, WA",
		imageURL:    "https://images.unsplash.com/photo-1536935338788-846bb9981813?ixlib=rb-1.2.1&auto=format&fit=crop&w=500&q=60",
		specialty:   "Matcha Latte",
		hours:       models.Hours{Open: "7:00 AM", Close: "6:00 PM"},
		tags:        []string{"Modern", "Japanese", "Pastries"},
		upvotes:     38,
		downvotes:   7,
	},
	{
		name:        "Earl's Parlor",
		description: "Victorian-inspired tea room offering classic British tea service and scones.",
		address:     "789 Bergamot Blvd, Boston, MA",
		imageURL:    "https://images.unsplash.com/photo-1559622214-f8a9850965bb?ixlib=rb-1.2.1&auto=format&fit=crop&w=500&q=60",
		specialty:   "Earl Grey",
		hours:       models.Hours{Open: "10:00 AM", Close: "5:00 PM"},
		tags:        []string{"British", "Victorian", "Elegant"},
		upvotes:     56,
		downvotes:   3,
	},
	{
		name:        "Chai Lounge",
		description: "Cozy spot known for spiced chai blends and Indian-inspired snacks.",
		address:     "101 Cardamom Court, Austin, TX",
		imageURL:    "https://images.unsplash.com/photo-1544787219-7f47ccb76574?ixlib=rb-1.2.1&auto=format&fit=crop&w=500&q=60",
		specialty:   "Masala Chai",
		hours:       models.Hours{Open: "8:00 AM", Close: "10:00 PM"},
		tags:        []string{"Spicy", "Cozy", "Indian"},
		upvotes:     45,
		downvotes:   8,
	},
	{
		name:        "Bubble Brew",
		description: "Trendy bubble tea shop with innovative fruit and tea combinations.",
		address:     "222 Tapioca Terrace, San Francisco, CA",
		imageURL:    "https://images.unsplash.com/photo-1558857563-c0c3b5f85ce0?ixlib=rb-1.2.1&auto=format&fit=crop&w=500&q=60",
		specialty:   "Boba Tea",
		hours:       models.Hours{Open: "11:00 AM", Close: "11:00 PM"},
		tags:        []string{"Trendy", "Sweet", "Bubble Tea"},
		upvotes:     36,
		downvotes:   12,
	},
	{
		name:        "Herbal Haven",
		description: "Wellness-focused café featuring herbal tea blends and organic light fare.",
		address:     "333 Lavender Lane, Denver, CO",
		imageURL:    "https://images.unsplash.com/photo-1564890369478-c89ca6d9cde9?ixlib=rb-1.2.1&auto=format&fit=crop&w=500&q=60",
		specialty:   "Herbal Infusions",
		hours:       models.Hours{Open: "7:30 AM", Close: "7:30 PM"},
		tags:        []string{"Wellness", "Organic", "Calming"},
		upvotes:     32,
		downvotes:   6,
	},
}

// SeedIfEmpty inserts the default tea shops when the shop table holds no
// rows. The check and the inserts run in one transaction, so concurrent
// startups seed at most once. Returns whether seeding happened.
func (r *Repository) SeedIfEmpty() (bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM shop`).Scan(&count); err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	now := time.Now()
	for i, seed := range defaultShops {
		tagsJSON, err := json.Marshal(seed.tags)
		if err != nil {
			return false, err
		}

		shopID := uuid.NewString()
		// Stagger creation times so newest-first ordering is stable.
		createdAt := now.Add(time.Duration(i-len(defaultShops)) * time.Minute)

		_, err = tx.Exec(`
			INSERT INTO shop (id, name, description, address, image_url, specialty,
			                  open_time, close_time, tags, upvotes, downvotes, rating, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		`, shopID, seed.name, seed.description, seed.address, seed.imageURL,
			seed.specialty, seed.hours.Open, seed.hours.Close, string(tagsJSON),
			seed.upvotes, seed.downvotes, rating.Score(seed.upvotes, seed.downvotes), createdAt)
		if err != nil {
			return false, err
		}

		// Back the counts with real ledger entries from synthetic voters.
		for v := 0; v < seed.upvotes+seed.downvotes; v++ {
			voteType := models.VoteUp
			if v >= seed.upvotes {
				voteType = models.VoteDown
			}
			_, err = tx.Exec(`
				INSERT INTO vote_entry (user_id, shop_id, vote_type, created_at)
				VALUES ($1, $2, $3, $4)
			`, fmt.Sprintf("seed-voter-%03d", v+1), shopID, string(voteType), createdAt)
			if err != nil {
				return false, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}

	slog.Info("seeded default tea shops", "count", len(defaultShops))
	return true, nil
}
