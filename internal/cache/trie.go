// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package cache

import (
	"sort"
	"strings"
	"sync"
)

type trieNode[T any] struct {
	children map[rune]*trieNode[T]
	terminal bool
	value    string
	data     T
	weight   float64
	order    int
}

// Trie is a case-insensitive prefix index. Each key keeps its original
// spelling, a payload and a ranking weight.
type Trie[T any] struct {
	mu   sync.RWMutex
	root *trieNode[T]
	size int
}

// TrieResult is one completion.
type TrieResult[T any] struct {
	Value  string
	Data   T
	Weight float64
}

// NewTrie returns an empty trie.
func NewTrie[T any]() *Trie[T] {
	return &Trie[T]{root: newTrieNode[T]()}
}

func newTrieNode[T any]() *trieNode[T] {
	return &trieNode[T]{children: make(map[rune]*trieNode[T])}
}

// Insert adds value. Re-inserting an existing key (case-insensitively) keeps
// the first spelling and payload and raises the weight to the larger of the
// two. Reports whether the key was new.
func (t *Trie[T]) Insert(value string, data T, weight float64) bool {
	if value == "" {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	node := t.root
	for _, ch := range strings.ToLower(value) {
		next := node.children[ch]
		if next == nil {
			next = newTrieNode[T]()
			node.children[ch] = next
		}
		node = next
	}

	if node.terminal {
		if weight > node.weight {
			node.weight = weight
		}
		return false
	}
	node.terminal = true
	node.value = value
	node.data = data
	node.weight = weight
	node.order = t.size
	t.size++
	return true
}

// Lookup returns the payload stored for value.
func (t *Trie[T]) Lookup(value string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var zero T
	node := t.find(value)
	if node == nil || !node.terminal {
		return zero, false
	}
	return node.data, true
}

// Len returns the number of distinct keys.
func (t *Trie[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.size
}

// Complete returns up to limit keys starting with prefix, by weight
// descending and then insertion order.
func (t *Trie[T]) Complete(prefix string, limit int) []TrieResult[T] {
	if limit <= 0 {
		return nil
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	node := t.find(prefix)
	if node == nil {
		return nil
	}

	var found []*trieNode[T]
	collect(node, &found)
	sort.Slice(found, func(i, j int) bool {
		if found[i].weight != found[j].weight {
			return found[i].weight > found[j].weight
		}
		return found[i].order < found[j].order
	})
	if len(found) > limit {
		found = found[:limit]
	}

	out := make([]TrieResult[T], len(found))
	for i, n := range found {
		out[i] = TrieResult[T]{Value: n.value, Data: n.data, Weight: n.weight}
	}
	return out
}

// find must be called with mu held.
func (t *Trie[T]) find(key string) *trieNode[T] {
	node := t.root
	for _, ch := range strings.ToLower(key) {
		node = node.children[ch]
		if node == nil {
			return nil
		}
	}
	return node
}

func collect[T any](node *trieNode[T], out *[]*trieNode[T]) {
	if node.terminal {
		*out = append(*out, node)
	}
	for _, child := range node.children {
		collect(child, out)
	}
}
