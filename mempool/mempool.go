// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2023-2024 The Ember developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mempool provides the unconfirmed transaction pool consumed by the
// chain state engine and the block assembler.
package mempool

import (
	"github.com/embercoin/emberd/chaincfg/chainhash"
	"github.com/embercoin/emberd/wire"
)

// TxPool is an in-memory pool of unconfirmed transactions keyed by their
// hash.
//
// The pool follows the single-writer model of the chain state engine: it
// provides no internal synchronization and callers that introduce
// concurrency must serialize access externally.
type TxPool struct {
	pool map[chainhash.Hash]*wire.MsgTx
}

// New returns a new empty transaction pool.
func New() *TxPool {
	return &TxPool{
		pool: make(map[chainhash.Hash]*wire.MsgTx),
	}
}

// Pool returns the underlying transaction map.  The map must not be mutated
// by the caller; its iteration order is unspecified but stable for the
// duration of a single ranging pass.
func (tp *TxPool) Pool() map[chainhash.Hash]*wire.MsgTx {
	return tp.pool
}

// Add inserts the passed transaction into the pool.  Adding a transaction
// that is already present is a no-op.
func (tp *TxPool) Add(tx *wire.MsgTx) {
	hash := tx.TxHash()
	if _, ok := tp.pool[hash]; ok {
		return
	}
	tp.pool[hash] = tx
}

// Remove removes the transaction with the passed hash from the pool and
// returns whether it was present.
func (tp *TxPool) Remove(hash chainhash.Hash) bool {
	if _, ok := tp.pool[hash]; !ok {
		return false
	}
	delete(tp.pool, hash)
	return true
}

// Fetch returns the transaction with the passed hash, or nil when it is not
// in the pool.
func (tp *TxPool) Fetch(hash chainhash.Hash) *wire.MsgTx {
	return tp.pool[hash]
}

// Size returns the number of transactions in the pool.
func (tp *TxPool) Size() int {
	return len(tp.pool)
}
