// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package cache

import (
	"sort"
	"strings"
	"sync"
	"unicode"
)

// defaultSuggestions caps AutocompleteWithLimit when no limit is given.
const defaultSuggestions = 10

// TrieNode represents a node in the Trie.
type TrieNode struct {
	children map[rune]*TrieNode
	isEnd    bool           // Marks end of a complete token
	value    string         // The token stored at this node (if isEnd is true)
	refs     map[string]any // IDs of the documents containing this token
}

// Trie is a thread-safe prefix tree mapping tokens to the documents that
// contain them. Many documents can share a token, and one document is
// inserted under every token of its searchable text. The tree is rebuilt
// wholesale with Replace.
//
// Key features:
//   - O(m) insert and prefix descent where m = token length
//   - Tokens are lowercased by Tokenize, so matching is case-insensitive
//   - Prefix lookups return every matching document, no result cap
//   - Autocomplete ranks tokens by how many documents carry them
type Trie struct {
	mu   sync.RWMutex
	root *TrieNode
	size int // Number of distinct tokens
}

// TrieResult is one token returned by AutocompleteWithLimit.
type TrieResult struct {
	Value string // The matched token
	Count int    // Number of documents carrying the token
}

// TrieDocument is one document to index: its id, the payload returned by
// lookups, and the text to tokenize.
type TrieDocument struct {
	ID   string
	Data any
	Text []string
}

// NewTrie creates an empty Trie.
func NewTrie() *Trie {
	return &Trie{root: newTrieNode()}
}

func newTrieNode() *TrieNode {
	return &TrieNode{
		children: make(map[rune]*TrieNode),
	}
}

// Tokenize splits text on anything that is not a letter or digit and
// lowercases the pieces. "Burning-Man 2025!" yields [burning man 2025].
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Replace rebuilds the Trie from docs in one critical section.
func (t *Trie) Replace(docs []TrieDocument) {
	root := newTrieNode()
	size := 0
	for _, d := range docs {
		for _, text := range d.Text {
			for _, tok := range Tokenize(text) {
				if addToken(root, tok, d.ID, d.Data) {
					size++
				}
			}
		}
	}

	t.mu.Lock()
	t.root = root
	t.size = size
	t.mu.Unlock()
}

// addToken records that document id contains token. Returns true if the
// token was new under root.
func addToken(root *TrieNode, token, id string, data any) bool {
	node := root
	for _, ch := range token {
		if node.children[ch] == nil {
			node.children[ch] = newTrieNode()
		}
		node = node.children[ch]
	}

	isNew := !node.isEnd
	node.isEnd = true
	node.value = token
	if node.refs == nil {
		node.refs = make(map[string]any)
	}
	node.refs[id] = data
	return isNew
}

// CollectPrefix returns every document carrying a token that starts with
// prefix, keyed by document id.
func (t *Trie) CollectPrefix(prefix string) map[string]any {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[string]any)
	node := t.descend(prefix)
	if node == nil {
		return out
	}

	var walk func(n *TrieNode)
	walk = func(n *TrieNode) {
		for id, data := range n.refs {
			out[id] = data
		}
		for _, child := range n.children {
			walk(child)
		}
	}
	walk(node)
	return out
}

// descend returns the node at the end of key (caller must hold lock).
func (t *Trie) descend(key string) *TrieNode {
	node := t.root
	for _, ch := range strings.ToLower(key) {
		node = node.children[ch]
		if node == nil {
			return nil
		}
	}
	return node
}

// AutocompleteWithLimit returns tokens starting with prefix, most widely
// used first, limited to limit results (10 when limit is not positive).
func (t *Trie) AutocompleteWithLimit(prefix string, limit int) []TrieResult {
	if limit <= 0 {
		limit = defaultSuggestions
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	node := t.descend(prefix)
	if node == nil {
		return nil
	}

	var results []TrieResult
	collectTokens(node, &results)

	// Sort by count (descending), then alphabetically
	sort.Slice(results, func(i, j int) bool {
		if results[i].Count != results[j].Count {
			return results[i].Count > results[j].Count
		}
		return results[i].Value < results[j].Value
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

func collectTokens(node *TrieNode, results *[]TrieResult) {
	if node.isEnd {
		*results = append(*results, TrieResult{Value: node.value, Count: len(node.refs)})
	}
	for _, child := range node.children {
		collectTokens(child, results)
	}
}

// Size returns the number of distinct tokens in the Trie.
func (t *Trie) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.size
}
