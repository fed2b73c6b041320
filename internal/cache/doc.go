// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

/*
Package cache provides a thread-safe, bounded LRU cache with TTL support.

The recommend engine stores query results here so repeated searches against
an unchanged graph skip the ranking work.

# Overview

LRU is generic over the stored value:
  - O(1) Get, Add and Remove
  - O(1) eviction of the least recently used entry at capacity
  - Lazy expiration on Get, plus CleanupExpired for periodic sweeps
  - Hit and miss counters for metrics

# Usage Example

	results := cache.NewLRU[[]string](10000, 5*time.Minute)

	key := cache.GenerateKey("similar_to", params)
	if titles, ok := results.Get(key); ok {
	    return titles
	}
	titles := compute()
	results.Add(key, titles)

# Keys

GenerateKey hashes a JSON rendering of the parameters, so structurally equal
requests share a key regardless of how they were built.

# Thread Safety

All methods are safe for concurrent use. Cached values are returned as
stored; callers that hand them out must not mutate them.
*/
package cache
