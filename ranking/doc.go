// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ranking orders and filters shop snapshots for presentation.

# Sorting

Order never mutates its input and is stable, so equal keys keep their
input order:

	sorted := ranking.Order(shops, ranking.SortByRating)

Keys:

  - SortByRating: descending net score (upvotes - downvotes)
  - SortByNewest: descending creation time
  - SortByAlphabetical: ascending name, English collation

SortKey is a closed enum; ParseSortKey maps the ?sort= query value and
rejects anything outside the set.

# Filtering

Filter does case-insensitive substring matching over name, description,
and tags. An empty query matches everything.
*/
package ranking
