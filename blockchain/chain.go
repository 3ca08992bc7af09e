// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2023-2024 The Ember developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"

	"github.com/embercoin/emberd/chaincfg/chainhash"
	"github.com/embercoin/emberd/wire"
)

// zeroHash is the null block hash.  A previous-block walk that reaches it has
// run off the end of the chain.
var zeroHash chainhash.Hash

// connectBlock extends the best chain with the passed block.  The block's
// connectivity and input signatures are verified first, then the chain tip
// record, transaction index and spent masks are updated.
//
// A connectivity or signature failure leaves the stores untouched.  Failures
// past that point leave the tip record already advanced and are fatal for
// the chain's consistency.
func (c *ChainDB) connectBlock(blockHash *chainhash.Hash, block *wire.MsgBlock, meta *BlkMeta) error {
	// Check transaction connectivity.
	spent, err := c.spentOutpoints(block)
	if err != nil {
		log.Warnf("Unconnectable block %v: %v", blockHash, err)
		return err
	}

	// Verify input signatures.  The mempool is not consulted: every
	// dependency must be confirmed or inside this block.
	for _, tx := range block.Transactions {
		if tx.IsCoinBase() {
			continue
		}
		if err := c.txSigned(tx, block, false); err != nil {
			log.Warnf("Invalid signature in block %v: %v", blockHash, err)
			return err
		}
	}

	// Update the chain tip record for the new best chain.
	if err := c.setTip(blockHash, meta); err != nil {
		return err
	}

	log.Infof("ChainDB: height %d, block %v", meta.Height, blockHash)

	// Every transaction in the block is connectable; index them and purge
	// them from the mempool, tracking how many the pool never saw.
	neverSeen := 0
	for _, tx := range block.Transactions {
		txHash := tx.TxHash()
		if !c.txPool.Remove(txHash) {
			neverSeen++
		}

		if err := c.putTxIdx(&txHash, NewTxIdx(blockHash)); err != nil {
			log.Errorf("Failed to index tx %v: %v", txHash, err)
			return err
		}
	}

	log.Debugf("MemPool: block txs %d, never seen %d, pool size %d",
		len(block.Transactions), neverSeen, c.txPool.Size())

	// Mark the consumed dependencies as spent.
	for i := range spent {
		if err := c.SpendTxOut(&spent[i].Hash, spent[i].Index); err != nil {
			return err
		}
	}

	return nil
}

// disconnectBlock unwinds the chain tip block: the spent bits it set are
// cleared, its transactions leave the index (non-coinbase ones return to the
// mempool), and the tip record rewinds to its parent.
func (c *ChainDB) disconnectBlock(block *wire.MsgBlock) error {
	prevHash := block.Header.PrevBlock
	prevMeta, err := c.FetchBlockMeta(&prevHash)
	if err != nil {
		return err
	}
	if prevMeta == nil {
		str := fmt.Sprintf("no metadata for parent %v of disconnected block",
			prevHash)
		return ruleError(ErrStorageCorruption, str)
	}

	// Recompute the outpoint set the block consumed.  The existence and
	// spent checks do not apply on the way down.
	outpoints, _, err := uniqueOutpoints(block)
	if err != nil {
		return err
	}

	// Mark the dependencies unspent again.  Outpoints funded inside the
	// block being removed may already be gone from the index; that is not
	// an error on the way down.
	for op := range outpoints {
		opHash := op.Hash
		if err := c.ClearTxOut(&opHash, op.Index); err != nil {
			if isRuleError(err) {
				continue
			}
			return err
		}
	}

	// Drop the block's transactions from the index and hand the
	// non-coinbase ones back to the mempool.
	for _, tx := range block.Transactions {
		txHash := tx.TxHash()
		if err := c.db.Tx.Delete(txHash[:]); err != nil {
			return err
		}

		if !tx.IsCoinBase() {
			c.txPool.Add(tx)
		}
	}

	// Rewind the chain tip record to the parent.
	if err := c.setTip(&prevHash, prevMeta); err != nil {
		return err
	}

	log.Infof("ChainDB (disconnect): height %d, block %v", prevMeta.Height,
		prevHash)

	return nil
}

// reorganize switches the best chain to the fork ending at newBestHash.  The
// common ancestor is located by alternately walking back whichever side is
// higher; the stale side is then disconnected top-down and the new side
// connected ancestor-first.
//
// A walk that reaches the null hash before the sides meet fails with
// ErrReorgFailed and leaves the tip unchanged.  Failures during the apply
// phase abort immediately and leave the intermediate state on disk.
func (c *ChainDB) reorganize(newBestHash chainhash.Hash) error {
	log.Info("REORGANIZE")

	var conn, disconn []*wire.MsgBlock

	oldBestHash := c.TopHash()
	fork := oldBestHash
	longer := newBestHash
	for fork != longer {
		for c.BlockHeight(&longer) > c.BlockHeight(&fork) {
			block, err := c.BlockByHash(&longer)
			if err != nil {
				return err
			}
			if block == nil {
				str := fmt.Sprintf("reorg walk lost block %v", longer)
				return ruleError(ErrReorgFailed, str)
			}
			conn = append(conn, block)

			longer = block.Header.PrevBlock
			if longer == zeroHash {
				return ruleError(ErrReorgFailed, "reorg walk on the new "+
					"side reached the null hash")
			}
		}

		if fork == longer {
			break
		}

		block, err := c.BlockByHash(&fork)
		if err != nil {
			return err
		}
		if block == nil {
			str := fmt.Sprintf("reorg walk lost block %v", fork)
			return ruleError(ErrReorgFailed, str)
		}
		disconn = append(disconn, block)

		fork = block.Header.PrevBlock
		if fork == zeroHash {
			return ruleError(ErrReorgFailed, "reorg walk on the old side "+
				"reached the null hash")
		}
	}

	log.Infof("REORG disconnecting top hash %v", oldBestHash)
	log.Infof("REORG connecting new top hash %v", newBestHash)
	log.Infof("REORG chain union point %v", fork)
	log.Infof("REORG disconnecting %d blocks, connecting %d blocks",
		len(disconn), len(conn))

	for _, block := range disconn {
		if err := c.disconnectBlock(block); err != nil {
			return err
		}
	}

	// The walk collected the connect side tip-first; apply it
	// ancestor-first so each block lands on its parent and the final tip
	// record points at the new best hash.
	for i := len(conn) - 1; i >= 0; i-- {
		block := conn[i]
		blockHash := block.BlockHash()
		meta, err := c.FetchBlockMeta(&blockHash)
		if err != nil {
			return err
		}
		if meta == nil {
			str := fmt.Sprintf("no metadata for reorg block %v", blockHash)
			return ruleError(ErrStorageCorruption, str)
		}
		if err := c.connectBlock(&blockHash, block, meta); err != nil {
			return err
		}
	}

	log.Info("REORGANIZE DONE")
	return nil
}

// setBestChain makes the passed block the new chain tip, either by directly
// extending the current tip (or seeding an empty chain) or by reorganizing
// onto its fork.
func (c *ChainDB) setBestChain(blockHash *chainhash.Hash, block *wire.MsgBlock, meta *BlkMeta) error {
	// The easy case: extending the current best chain.
	if meta.Height == 0 || c.TopHash() == block.Header.PrevBlock {
		return c.connectBlock(blockHash, block, meta)
	}

	// Switching from the current chain to another, stronger chain.
	return c.reorganize(*blockHash)
}
