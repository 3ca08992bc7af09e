// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2023-2024 The Ember developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/embercoin/emberd/chaincfg/chainhash"
	"github.com/embercoin/emberd/wire"
)

// TxIdx locates a confirmed transaction and tracks which of its outputs have
// been consumed by the currently connected chain.  Bit i of SpentMask is set
// iff output i has been spent.
//
// The mask is arbitrary precision: transactions may carry more than 64
// outputs and the persistent hex encoding has no fixed width.
type TxIdx struct {
	BlockHash chainhash.Hash
	SpentMask *big.Int
}

// NewTxIdx returns a transaction index record for a transaction confirmed in
// the given block with no outputs spent yet.
func NewTxIdx(blockHash *chainhash.Hash) *TxIdx {
	return &TxIdx{BlockHash: *blockHash, SpentMask: new(big.Int)}
}

// serialize renders the record in the persistent
// "0x{blkhash} 0x{spentmask}" form.
func (idx *TxIdx) serialize() []byte {
	return []byte(hashText(&idx.BlockHash) + " " + bigText(idx.SpentMask))
}

// deserializeTxIdx decodes a stored "0x{blkhash} 0x{spentmask}" record.
func deserializeTxIdx(b []byte) (*TxIdx, error) {
	fields := strings.Fields(string(b))
	if len(fields) < 2 {
		return nil, errDeserialize(fmt.Sprintf("short tx index %q", b))
	}
	blockHash, err := parseHashText(fields[0])
	if err != nil {
		return nil, err
	}
	mask, err := parseBigText(fields[1])
	if err != nil {
		return nil, err
	}
	return &TxIdx{BlockHash: blockHash, SpentMask: mask}, nil
}

// putTxIdx writes the index record for the given transaction hash, warning
// when an existing record for a different block is overwritten.
func (c *ChainDB) putTxIdx(txHash *chainhash.Hash, idx *TxIdx) error {
	old, err := c.FetchTxIdx(txHash)
	if err != nil {
		return err
	}
	if old != nil && old.BlockHash != idx.BlockHash {
		log.Warnf("Overwriting duplicate tx %v, height %d, old block %v, "+
			"old spent mask %x, new block %v", txHash, c.Height(),
			old.BlockHash, old.SpentMask, idx.BlockHash)
	}

	return c.db.Tx.Put(txHash[:], idx.serialize())
}

// FetchTxIdx returns the index record for the given transaction hash, or nil
// when the transaction is not indexed.
func (c *ChainDB) FetchTxIdx(txHash *chainhash.Hash) (*TxIdx, error) {
	value, ok, err := c.db.Tx.Get(txHash[:])
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return deserializeTxIdx(value)
}

// FetchTx returns the confirmed transaction with the given hash by resolving
// it through the index and re-hashing the transactions of its containing
// block.  It returns nil when the transaction is unknown.  An index record
// that points at a block which does not contain the transaction is storage
// corruption: it is logged and reported as unknown.
func (c *ChainDB) FetchTx(txHash *chainhash.Hash) *wire.MsgTx {
	idx, err := c.FetchTxIdx(txHash)
	if err != nil {
		log.Errorf("Failed to read tx index for %v: %v", txHash, err)
		return nil
	}
	if idx == nil {
		return nil
	}

	block, err := c.BlockByHash(&idx.BlockHash)
	if err != nil || block == nil {
		log.Errorf("Missing block %v referenced by tx %v", idx.BlockHash,
			txHash)
		return nil
	}

	for _, tx := range block.Transactions {
		if tx.TxHash() == *txHash {
			return tx
		}
	}

	log.Errorf("Missing tx %v in block %v", txHash, idx.BlockHash)
	return nil
}

// SpendTxOut marks output n of the given transaction as spent.  Outputs
// beyond the index sanity bound are rejected before any mutation, and
// spending an output of an unindexed transaction fails.
func (c *ChainDB) SpendTxOut(txHash *chainhash.Hash, n uint32) error {
	return c.setSpent(txHash, n, 1)
}

// ClearTxOut marks output n of the given transaction as unspent.  The
// failure conditions mirror SpendTxOut.
func (c *ChainDB) ClearTxOut(txHash *chainhash.Hash, n uint32) error {
	return c.setSpent(txHash, n, 0)
}

// setSpent sets or clears bit n of the spent mask for the given transaction.
func (c *ChainDB) setSpent(txHash *chainhash.Hash, n uint32, bit uint) error {
	if err := c.checkWritable(); err != nil {
		return err
	}
	if n > maxOutpointIndex {
		str := fmt.Sprintf("output index %d of tx %v exceeds the sanity "+
			"bound %d", n, txHash, maxOutpointIndex)
		return ruleError(ErrOutpointIndex, str)
	}

	idx, err := c.FetchTxIdx(txHash)
	if err != nil {
		return err
	}
	if idx == nil {
		str := fmt.Sprintf("no index entry for tx %v", txHash)
		return ruleError(ErrUnknownOutpoint, str)
	}

	idx.SpentMask.SetBit(idx.SpentMask, int(n), bit)
	return c.putTxIdx(txHash, idx)
}
