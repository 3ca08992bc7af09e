// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2023-2024 The Ember developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"bytes"
	"math/big"
	"strconv"

	"github.com/embercoin/emberd/chaincfg"
	"github.com/embercoin/emberd/chaincfg/chainhash"
	"github.com/embercoin/emberd/database"
	"github.com/embercoin/emberd/lru"
	"github.com/embercoin/emberd/mempool"
	"github.com/embercoin/emberd/wire"
)

// blockCacheLimit is the maximum number of decoded blocks kept in memory in
// front of the blocks store.  The cache is an optimization only; correctness
// never depends on residency.
const blockCacheLimit = 750

// SigVerifier is the signature verification predicate the chain consults for
// every transaction input.  It is handed the funding transaction, the
// spending transaction, and the index of the input being verified, and
// reports whether the input's signature satisfies the funding output.
//
// Script evaluation lives outside the chain state engine, so the predicate
// is injected.  A nil verifier accepts every input.
type SigVerifier func(fundingTx, tx *wire.MsgTx, inputIdx int) bool

// Config houses the configuration for a ChainDB instance.
type Config struct {
	// DataDir is the directory the five durable stores live in.
	DataDir string

	// Params identifies the network the chain belongs to.
	Params *chaincfg.Params

	// TxPool is the shared transaction pool.  The chain removes confirmed
	// transactions on connect and returns disconnected ones on reorg.
	TxPool *mempool.TxPool

	// SigVerify is the signature verification predicate.  It may be nil,
	// in which case every input is accepted.
	SigVerify SigVerifier

	// ReadOnly opens the stores read-only and causes every mutating chain
	// operation to fail with ErrReadOnly.
	ReadOnly bool

	// FastMode skips per-write fsyncs and instead flushes all stores
	// every 10000 connected heights.  Intended for bulk import.
	FastMode bool
}

// ChainDB is the chain state engine.  It owns the five durable stores and
// the block cache, buffers orphan blocks in memory, and maintains the best
// chain under competing forks.
//
// ChainDB is a single-writer structure with no internal locking.
type ChainDB struct {
	db        *database.DB
	params    *chaincfg.Params
	txPool    *mempool.TxPool
	sigVerify SigVerifier
	readOnly  bool
	fastMode  bool

	// blockCache fronts the blocks store with decoded blocks.
	blockCache *lru.Cache

	// orphans tracks the hashes of buffered orphan blocks while
	// orphanDeps maps a missing parent hash to the single orphan waiting
	// on it.  A sibling orphan arriving for the same missing parent
	// silently replaces the previous one.  Both maps are in-memory only
	// and are lost on restart.
	orphans    map[chainhash.Hash]struct{}
	orphanDeps map[chainhash.Hash]*wire.MsgBlock
}

// New opens the chain state engine over the given configuration, creating
// and seeding the stores when the data directory is new.
func New(cfg *Config) (*ChainDB, error) {
	db, err := database.Open(cfg.DataDir, cfg.Params.Net, cfg.ReadOnly,
		cfg.FastMode)
	if err != nil {
		return nil, err
	}

	return &ChainDB{
		db:         db,
		params:     cfg.Params,
		txPool:     cfg.TxPool,
		sigVerify:  cfg.SigVerify,
		readOnly:   cfg.ReadOnly,
		fastMode:   cfg.FastMode,
		blockCache: lru.New(blockCacheLimit),
		orphans:    make(map[chainhash.Hash]struct{}),
		orphanDeps: make(map[chainhash.Hash]*wire.MsgBlock),
	}, nil
}

// Close releases the underlying stores.  The chain must not be used
// afterwards.
func (c *ChainDB) Close() error {
	return c.db.Close()
}

// Sync flushes all five stores to durable storage.
func (c *ChainDB) Sync() error {
	return c.db.Sync()
}

// checkWritable returns ErrReadOnly when the chain was opened read-only.
func (c *ChainDB) checkWritable() error {
	if c.readOnly {
		return ruleError(ErrReadOnly, "chain database is read-only")
	}
	return nil
}

// Height returns the height of the best chain tip, or -1 for an empty chain.
func (c *ChainDB) Height() int64 {
	value, ok, err := c.db.Misc.Get(database.MiscKeyHeight)
	if err != nil || !ok {
		log.Errorf("Failed to read chain height: %v", err)
		return -1
	}
	height, err := strconv.ParseInt(string(value), 10, 64)
	if err != nil {
		log.Errorf("Malformed chain height %q: %v", value, err)
		return -1
	}
	return height
}

// TopHash returns the hash of the best chain tip.  An empty chain reports
// the zero hash.
func (c *ChainDB) TopHash() chainhash.Hash {
	var hash chainhash.Hash
	value, ok, err := c.db.Misc.Get(database.MiscKeyTopHash)
	if err != nil || !ok {
		log.Errorf("Failed to read chain tip hash: %v", err)
		return hash
	}
	if err := hash.SetBytes(value); err != nil {
		log.Errorf("Malformed chain tip hash: %v", err)
	}
	return hash
}

// TotalWork returns the cumulative work of the best chain tip.
func (c *ChainDB) TotalWork() *big.Int {
	value, ok, err := c.db.Misc.Get(database.MiscKeyTotalWork)
	if err != nil || !ok {
		log.Errorf("Failed to read chain total work: %v", err)
		return new(big.Int)
	}
	work, perr := parseBigText(string(value))
	if perr != nil {
		log.Errorf("Malformed chain total work %q: %v", value, perr)
		return new(big.Int)
	}
	return work
}

// setTip records the passed block as the best chain tip in the misc store.
func (c *ChainDB) setTip(hash *chainhash.Hash, meta *BlkMeta) error {
	err := c.db.Misc.Put(database.MiscKeyTotalWork, []byte(bigText(meta.Work)))
	if err != nil {
		return err
	}
	err = c.db.Misc.Put(database.MiscKeyHeight,
		[]byte(strconv.FormatInt(meta.Height, 10)))
	if err != nil {
		return err
	}
	return c.db.Misc.Put(database.MiscKeyTopHash, hash[:])
}

// HaveBlock returns whether the given block hash is known, consulting the
// block cache, optionally the orphan pool, and finally the blocks store.
func (c *ChainDB) HaveBlock(hash *chainhash.Hash, checkOrphans bool) bool {
	if c.blockCache.Exists(*hash) {
		return true
	}
	if checkOrphans {
		if _, ok := c.orphans[*hash]; ok {
			return true
		}
	}
	exists, err := c.db.Blocks.Has(hash[:])
	if err != nil {
		log.Errorf("Failed to probe blocks store for %v: %v", hash, err)
		return false
	}
	return exists
}

// havePrevBlock returns whether the parent of the passed block is available
// to build on.  A genesis block on an empty chain qualifies by definition.
func (c *ChainDB) havePrevBlock(block *wire.MsgBlock) bool {
	if c.Height() < 0 && block.BlockHash() == c.params.GenesisHash {
		return true
	}
	return c.HaveBlock(&block.Header.PrevBlock, false)
}

// BlockByHash returns the block for the given hash, or nil when the hash is
// not stored.  Decoded blocks are served from and inserted into the block
// cache.
func (c *ChainDB) BlockByHash(hash *chainhash.Hash) (*wire.MsgBlock, error) {
	if cached, ok := c.blockCache.Get(*hash); ok {
		return cached.(*wire.MsgBlock), nil
	}

	raw, ok, err := c.db.Blocks.Get(hash[:])
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	block := new(wire.MsgBlock)
	if err := block.Deserialize(bytes.NewReader(raw)); err != nil {
		return nil, err
	}

	c.blockCache.Put(*hash, block)
	return block, nil
}

// MainChainHasBlock returns whether the given hash is part of the currently
// connected best chain, as opposed to merely being stored on a side fork.
func (c *ChainDB) MainChainHasBlock(hash *chainhash.Hash) (bool, error) {
	meta, err := c.FetchBlockMeta(hash)
	if err != nil || meta == nil {
		return false, err
	}

	iter := c.TopHash()
	iterHeight := c.Height()
	for iterHeight >= meta.Height {
		if iter == *hash {
			return true, nil
		}
		block, err := c.BlockByHash(&iter)
		if err != nil || block == nil {
			return false, err
		}
		iter = block.Header.PrevBlock
		iterHeight--
	}
	return false, nil
}
