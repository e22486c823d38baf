// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ranking

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/danielhkuo/steeped/models"
)

// SortKey is the closed set of orderings the directory supports.
type SortKey int

const (
	SortByRating SortKey = iota
	SortByNewest
	SortByAlphabetical
)

func (k SortKey) String() string {
	switch k {
	case SortByRating:
		return "rating"
	case SortByNewest:
		return "newest"
	case SortByAlphabetical:
		return "alphabetical"
	}
	return fmt.Sprintf("SortKey(%d)", int(k))
}

// ParseSortKey maps the query-string value to a SortKey. The empty string
// defaults to rating, matching the directory's landing view.
func ParseSortKey(s string) (SortKey, error) {
	switch s {
	case "", "rating":
		return SortByRating, nil
	case "newest":
		return SortByNewest, nil
	case "alphabetical":
		return SortByAlphabetical, nil
	}
	return SortByRating, fmt.Errorf("unknown sort key %q", s)
}

// Order returns a new slice sorted by key. The input is never mutated and
// ties keep their input order (stable sort).
//
// The rating key orders by net score (upvotes - downvotes), not the rounded
// rating field: the rounded value collapses distinct net scores into ties
// and would lose ordering information.
func Order(shops []models.Shop, key SortKey) []models.Shop {
	out := make([]models.Shop, len(shops))
	copy(out, shops)

	switch key {
	case SortByRating:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].NetScore() > out[j].NetScore()
		})
	case SortByNewest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	case SortByAlphabetical:
		// The collator buffers internally and is not safe for concurrent
		// use, so each call gets its own.
		c := collate.New(language.English)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Name, out[j].Name) < 0
		})
	}

	return out
}

// Filter returns the shops whose name, description, or any tag contains
// query, case-insensitively. An empty query matches everything.
func Filter(shops []models.Shop, query string) []models.Shop {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		out := make([]models.Shop, len(shops))
		copy(out, shops)
		return out
	}

	out := []models.Shop{}
	for _, shop := range shops {
		if matches(shop, query) {
			out = append(out, shop)
		}
	}
	return out
}

func matches(shop models.Shop, query string) bool {
	if strings.Contains(strings.ToLower(shop.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(shop.Description), query) {
		return true
	}
	for _, tag := range shop.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
