// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2023-2024 The Ember developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"
	"math/big"

	"github.com/embercoin/emberd/wire"
)

// fastModeSyncInterval is the number of heights between full store flushes
// when the chain runs in fast mode.
const fastModeSyncInterval = 10000

// maybeAcceptBlock performs the single-block ingest: sanity checks, orphan
// detection, persistence of the raw block and its metadata, and the fork
// choice that decides whether the block becomes part of the best chain.
//
// When no error occurred, the return value indicates whether the block was
// buffered as an orphan pending its parent.
func (c *ChainDB) maybeAcceptBlock(block *wire.MsgBlock) (bool, error) {
	blockHash := block.BlockHash()

	if err := checkBlockSanity(block); err != nil {
		log.Warnf("Invalid block %v: %v", blockHash, err)
		return false, err
	}

	// A block whose parent is unknown is buffered in memory until the
	// parent arrives.  Only one orphan is tracked per missing parent: a
	// sibling arriving later silently replaces its predecessor.
	if !c.havePrevBlock(block) {
		c.orphans[blockHash] = struct{}{}
		c.orphanDeps[block.Header.PrevBlock] = block
		log.Infof("Orphan block %v (%d orphans)", blockHash,
			len(c.orphanDeps))
		return true, nil
	}

	topHeight := c.Height()
	topWork := c.TotalWork()

	// Read the metadata for the previous block.  The genesis block builds
	// on a synthetic empty record.
	prevMeta := &BlkMeta{Height: -1, Work: new(big.Int)}
	if topHeight >= 0 {
		var err error
		prevMeta, err = c.FetchBlockMeta(&block.Header.PrevBlock)
		if err != nil {
			return false, err
		}
		if prevMeta == nil {
			str := fmt.Sprintf("no metadata for stored parent %v",
				block.Header.PrevBlock)
			return false, ruleError(ErrStorageCorruption, str)
		}
	}

	// Store the raw block data.
	raw, err := block.Bytes()
	if err != nil {
		return false, err
	}
	if err := c.db.Blocks.Put(blockHash[:], raw); err != nil {
		return false, err
	}

	// Store the metadata related to this block.
	meta := &BlkMeta{
		Height: prevMeta.Height + 1,
		Work:   new(big.Int).Add(prevMeta.Work, blockWork(block.Header.Bits)),
	}
	if err := c.db.BlkMeta.Put(blockHash[:], meta.serialize()); err != nil {
		return false, err
	}

	// Record the block in the list of blocks at its height.
	if err := c.appendHeightIdx(meta.Height, &blockHash); err != nil {
		return false, err
	}

	// Fork choice: a block that does not beat the cumulative work of the
	// current tip is stored but not connected.
	if meta.Work.Cmp(topWork) <= 0 {
		log.Infof("ChainDB: height %d (weak), block %v", meta.Height,
			blockHash)
		return false, nil
	}

	// Update the global chain pointers.
	if err := c.setBestChain(&blockHash, block, meta); err != nil {
		return false, err
	}

	if c.fastMode && meta.Height%fastModeSyncInterval == 0 {
		if err := c.Sync(); err != nil {
			return false, err
		}
	}

	return false, nil
}

// ProcessBlock is the main workhorse for handling insertion of new blocks
// into the chain.  It rejects duplicates, ingests the block, and drains any
// orphans that were waiting on it, recursively.
//
// When no error occurred, the return value indicates whether the block was
// buffered as an orphan pending its parent.
func (c *ChainDB) ProcessBlock(block *wire.MsgBlock) (bool, error) {
	if err := c.checkWritable(); err != nil {
		return false, err
	}

	blockHash := block.BlockHash()
	if c.HaveBlock(&blockHash, true) {
		log.Infof("Duplicate block %v submitted", blockHash)
		str := fmt.Sprintf("already have block %v", blockHash)
		return false, ruleError(ErrDuplicateBlock, str)
	}

	isOrphan, err := c.maybeAcceptBlock(block)
	if err != nil || isOrphan {
		return isOrphan, err
	}

	// Accept any orphan that was waiting on this block, and repeat for the
	// newly accepted block until the dependency chain dries up.  Draining
	// halts on the first failure but the successful graft so far is kept,
	// so a failure here is not reported upward.
	for {
		orphan, ok := c.orphanDeps[blockHash]
		if !ok {
			break
		}

		orphanIsOrphan, err := c.maybeAcceptBlock(orphan)
		if err != nil || orphanIsOrphan {
			break
		}

		delete(c.orphanDeps, blockHash)
		orphanHash := orphan.BlockHash()
		delete(c.orphans, orphanHash)

		blockHash = orphanHash
	}

	return false, nil
}
