// Copyright (c) 2023-2024 The Ember developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lru

import "testing"

// TestCacheEviction ensures the least recently used entry is the one evicted
// once the cache reaches its limit, with insertion order breaking ties.
func TestCacheEviction(t *testing.T) {
	c := New(2)

	c.Put("a", 1)
	c.Put("b", 2)
	if c.Len() != 2 {
		t.Fatalf("unexpected cache length -- got %d, want 2", c.Len())
	}

	// Touch "a" so "b" becomes the least recently used entry.
	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected hit for key a")
	}

	c.Put("c", 3)
	if c.Exists("b") {
		t.Error("expected key b to be evicted")
	}
	if !c.Exists("a") || !c.Exists("c") {
		t.Error("expected keys a and c to survive eviction")
	}
}

// TestCacheInsertionOrderTie ensures that entries which were never touched
// after insert evict oldest-first.
func TestCacheInsertionOrderTie(t *testing.T) {
	c := New(3)
	c.Put(1, "one")
	c.Put(2, "two")
	c.Put(3, "three")

	c.Put(4, "four")
	if c.Exists(1) {
		t.Error("expected the earliest inserted key to be evicted first")
	}
	for _, key := range []int{2, 3, 4} {
		if !c.Exists(key) {
			t.Errorf("expected key %d to remain cached", key)
		}
	}
}

// TestCacheUpdate ensures updating an existing key replaces its value and
// refreshes its recency without growing the cache.
func TestCacheUpdate(t *testing.T) {
	c := New(2)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("a", 10)

	if c.Len() != 2 {
		t.Fatalf("unexpected cache length -- got %d, want 2", c.Len())
	}
	value, ok := c.Get("a")
	if !ok || value.(int) != 10 {
		t.Fatalf("unexpected value for key a -- got %v, want 10", value)
	}

	// "b" is now the least recently used entry.
	c.Put("c", 3)
	if c.Exists("b") {
		t.Error("expected key b to be evicted after a was updated")
	}
}

// TestCacheExistsDoesNotPromote ensures membership checks do not alter
// recency.
func TestCacheExistsDoesNotPromote(t *testing.T) {
	c := New(2)
	c.Put("a", 1)
	c.Put("b", 2)

	// A plain membership check of "a" must leave it least recently used.
	c.Exists("a")
	c.Put("c", 3)
	if c.Exists("a") {
		t.Error("expected key a to be evicted despite the Exists probe")
	}
}

// TestCacheDelete ensures removed entries free their slot.
func TestCacheDelete(t *testing.T) {
	c := New(2)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Delete("a")

	if c.Exists("a") {
		t.Error("expected key a to be gone after delete")
	}
	c.Put("c", 3)
	if !c.Exists("b") || !c.Exists("c") {
		t.Error("expected keys b and c to coexist after delete freed a slot")
	}
}
