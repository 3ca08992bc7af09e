// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2023-2024 The Ember developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package lru implements a generic least-recently-used cache with a fixed
// capacity.
package lru

import "container/list"

// entry is the payload stored in the recency list.
type entry struct {
	key   interface{}
	value interface{}
}

// Cache provides a map of arbitrary keys to values that is limited to a
// maximum number of items with eviction for the least recently used entry
// when the limit is exceeded.  Ties between entries that were used at the
// same logical time are broken by insertion order.
//
// Cache is not safe for concurrent access.
type Cache struct {
	limit int
	items map[interface{}]*list.Element
	order *list.List // front is most recently used
}

// New returns an initialized cache limited to the passed number of items.  A
// non-positive limit yields a cache that stores nothing.
func New(limit int) *Cache {
	return &Cache{
		limit: limit,
		items: make(map[interface{}]*list.Element, limit),
		order: list.New(),
	}
}

// Len returns the number of items currently in the cache.
func (c *Cache) Len() int {
	return len(c.items)
}

// Exists returns whether or not the passed key is a member of the cache
// without altering its recency.
func (c *Cache) Exists(key interface{}) bool {
	_, ok := c.items[key]
	return ok
}

// Get returns the value associated with the passed key and marks it as the
// most recently used entry.  The boolean return indicates a hit.
func (c *Cache) Get(key interface{}) (interface{}, bool) {
	elem, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*entry).value, true
}

// Put adds the passed key/value pair to the cache, evicting the least
// recently used entry if the cache is at its limit.  Adding an existing key
// updates its value and marks it as the most recently used entry.
func (c *Cache) Put(key, value interface{}) {
	if c.limit <= 0 {
		return
	}

	if elem, ok := c.items[key]; ok {
		elem.Value.(*entry).value = value
		c.order.MoveToFront(elem)
		return
	}

	// Evict the least recently used entry when at the limit.  The back of
	// the recency list is both the least recently used and the earliest
	// inserted among equally recent entries.
	if len(c.items) >= c.limit {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*entry).key)
		}
	}

	c.items[key] = c.order.PushFront(&entry{key: key, value: value})
}

// Delete removes the passed key from the cache if it exists.
func (c *Cache) Delete(key interface{}) {
	elem, ok := c.items[key]
	if !ok {
		return
	}
	c.order.Remove(elem)
	delete(c.items, key)
}
