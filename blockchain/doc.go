// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2023-2024 The Ember developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockchain implements the chain state engine.
//
// The engine ingests candidate blocks, validates their transactional
// connectivity and signatures, persists them to durable storage, maintains
// the canonical best chain under competing forks, and drains orphan blocks
// once their parents arrive.  It owns the five durable stores of the
// database package along with a bounded block cache, and shares a
// transaction pool with the embedding program.
//
// The engine is a single-writer component: no operation suspends, all I/O is
// synchronous, and callers that introduce concurrency must serialize access
// externally.
package blockchain
