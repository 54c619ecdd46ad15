// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

/*
Package cache provides the in-process lookup structures that back map and
search queries over the festival directory.

# Overview

The package provides:
  - SpatialHashGrid: square-cell grid answering rectangle and radius queries
  - Trie: token prefix tree mapping each token to the documents containing it
  - Tokenize: the shared text splitter used for indexing and querying
  - Thread-safe concurrent access (sync.RWMutex)
  - Zero external dependencies (stdlib only)

# Rebuild Model

Both structures are derived data. The storage layer rebuilds them from
committed rows with Replace after each import, so a lookup never observes
a half-applied generation. There is no per-entry insert or delete.

# Usage Example

	grid := cache.NewSpatialHashGrid(100) // 100m cells
	grid.Replace([]cache.SpatialEntry{{ID: "art:a1", Lat: 40.7862, Lon: -119.2065, Data: ref}})
	hits := grid.QueryRect(40.78, -119.21, 40.79, -119.20)
	near := grid.QueryNearby(40.7864, -119.2065, 500)

	trie := cache.NewTrie()
	trie.Replace([]cache.TrieDocument{{ID: "art:a1", Data: ref, Text: []string{"Temple of Whollyness"}}})
	docs := trie.CollectPrefix("whol")

# Performance Characteristics

  - Replace: O(total entries or tokens)
  - Grid rectangle query: O(cells overlapped + entries in them)
  - Trie prefix collect: O(prefix length + matching subtree)
*/
package cache
