// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2023-2024 The Ember developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"testing"
	"time"

	"github.com/embercoin/emberd/chaincfg"
	"github.com/embercoin/emberd/chaincfg/chainhash"
	"github.com/embercoin/emberd/database"
	"github.com/embercoin/emberd/mempool"
	"github.com/embercoin/emberd/wire"
)

// chainSetup opens a fresh simnet chain over a temporary data directory.
func chainSetup(t *testing.T) (*ChainDB, *mempool.TxPool) {
	t.Helper()

	pool := mempool.New()
	chain, err := New(&Config{
		DataDir: t.TempDir(),
		Params:  &chaincfg.SimNetParams,
		TxPool:  pool,
	})
	if err != nil {
		t.Fatalf("failed to open chain: %v", err)
	}
	t.Cleanup(func() { chain.Close() })

	return chain, pool
}

// workBits returns a compact difficulty encoding whose 256-bit expansion is
// exactly n, so tests can dial in cumulative work per block.
func workBits(n uint32) uint32 {
	return 0x03000000 | n
}

// spendTx returns a finalized transaction spending the given outpoint into
// outputs of the passed values.
func spendTx(prevHash chainhash.Hash, index uint32, values ...int64) *wire.MsgTx {
	tx := wire.NewMsgTx()
	tx.AddTxIn(&wire.TxIn{
		PreviousOutPoint: wire.OutPoint{Hash: prevHash, Index: index},
		SignatureScript:  []byte{0x51},
		Sequence:         wire.MaxTxInSequenceNum,
	})
	for _, value := range values {
		tx.AddTxOut(&wire.TxOut{Value: value, PkScript: []byte{0x51}})
	}
	return tx
}

// buildBlock returns a block on the passed parent carrying a unique coinbase
// followed by the passed transactions.  The extra value perturbs the
// coinbase so blocks built at the same height never collide.
func buildBlock(parentHash chainhash.Hash, bits, extra uint32, txs ...*wire.MsgTx) *wire.MsgBlock {
	coinbaseIn := wire.TxIn{
		SignatureScript: []byte{
			byte(extra), byte(extra >> 8), byte(extra >> 16),
			byte(extra >> 24),
		},
		Sequence: wire.MaxTxInSequenceNum,
	}
	coinbaseIn.PreviousOutPoint.SetNull()

	coinbase := wire.NewMsgTx()
	coinbase.AddTxIn(&coinbaseIn)
	coinbase.AddTxOut(&wire.TxOut{Value: 50 * 1e8, PkScript: []byte{0x51}})

	block := &wire.MsgBlock{
		Header: wire.BlockHeader{
			Version:   1,
			PrevBlock: parentHash,
			Timestamp: time.Unix(1702700000+int64(extra), 0),
			Bits:      bits,
			Nonce:     extra,
		},
	}
	block.AddTransaction(coinbase)
	for _, tx := range txs {
		block.AddTransaction(tx)
	}
	block.Header.MerkleRoot = CalcMerkleRoot(block.Transactions)

	return block
}

// processGenesis ingests the simnet genesis block and asserts it connects.
func processGenesis(t *testing.T, chain *ChainDB) *wire.MsgBlock {
	t.Helper()

	genesis := chaincfg.SimNetParams.GenesisBlock
	isOrphan, err := chain.ProcessBlock(genesis)
	if err != nil {
		t.Fatalf("failed to process genesis block: %v", err)
	}
	if isOrphan {
		t.Fatal("genesis block reported as orphan")
	}
	return genesis
}

// acceptBlock ingests a block and asserts it was neither rejected nor
// orphaned.
func acceptBlock(t *testing.T, chain *ChainDB, block *wire.MsgBlock) {
	t.Helper()

	isOrphan, err := chain.ProcessBlock(block)
	if err != nil {
		t.Fatalf("failed to process block %v: %v", block.BlockHash(), err)
	}
	if isOrphan {
		t.Fatalf("block %v unexpectedly reported as orphan",
			block.BlockHash())
	}
}

// dumpStore snapshots a single store into a map keyed by the raw key bytes.
func dumpStore(t *testing.T, s *database.Store) map[string]string {
	t.Helper()

	snapshot := make(map[string]string)
	err := s.ForEach(func(key, value []byte) error {
		snapshot[string(key)] = string(value)
		return nil
	})
	if err != nil {
		t.Fatalf("failed to dump store %s: %v", s.Name(), err)
	}
	return snapshot
}

// dumpStores snapshots all five stores.
func dumpStores(t *testing.T, chain *ChainDB) map[string]map[string]string {
	t.Helper()

	return map[string]map[string]string{
		"misc":    dumpStore(t, chain.db.Misc),
		"blocks":  dumpStore(t, chain.db.Blocks),
		"height":  dumpStore(t, chain.db.Height),
		"blkmeta": dumpStore(t, chain.db.BlkMeta),
		"tx":      dumpStore(t, chain.db.Tx),
	}
}
