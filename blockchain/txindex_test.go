// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2023-2024 The Ember developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"errors"
	"testing"

	"github.com/embercoin/emberd/chaincfg"
	"github.com/embercoin/emberd/chaincfg/chainhash"
	"github.com/embercoin/emberd/wire"
)

// TestSpendClearTxOut exercises the spent-mask mutations against a connected
// genesis block.
func TestSpendClearTxOut(t *testing.T) {
	chain, _ := chainSetup(t)
	genesis := processGenesis(t, chain)
	cbHash := genesis.Transactions[0].TxHash()

	if err := chain.SpendTxOut(&cbHash, 0); err != nil {
		t.Fatalf("SpendTxOut: %v", err)
	}
	idx, err := chain.FetchTxIdx(&cbHash)
	if err != nil || idx == nil {
		t.Fatalf("FetchTxIdx: idx %v err %v", idx, err)
	}
	if idx.SpentMask.Bit(0) != 1 {
		t.Fatal("expected bit 0 to be set after spend")
	}

	// Spending a second output widens the mask; clearing the first leaves
	// the second alone.
	if err := chain.SpendTxOut(&cbHash, 70); err != nil {
		t.Fatalf("SpendTxOut(70): %v", err)
	}
	if err := chain.ClearTxOut(&cbHash, 0); err != nil {
		t.Fatalf("ClearTxOut: %v", err)
	}
	idx, _ = chain.FetchTxIdx(&cbHash)
	if idx.SpentMask.Bit(0) != 0 || idx.SpentMask.Bit(70) != 1 {
		t.Errorf("unexpected mask %v after clear", idx.SpentMask)
	}
}

// TestSpendTxOutBounds ensures the sanity bound and unknown outpoints are
// rejected before any mutation.
func TestSpendTxOutBounds(t *testing.T) {
	chain, _ := chainSetup(t)
	genesis := processGenesis(t, chain)
	cbHash := genesis.Transactions[0].TxHash()

	if err := chain.SpendTxOut(&cbHash, maxOutpointIndex+1); !errors.Is(err, ErrOutpointIndex) {
		t.Errorf("unexpected error for absurd index -- got %v, want %v",
			err, ErrOutpointIndex)
	}
	idx, _ := chain.FetchTxIdx(&cbHash)
	if idx.SpentMask.Sign() != 0 {
		t.Error("rejected spend mutated the mask")
	}

	unknown := chainhash.DoubleHashH([]byte("unknown tx"))
	if err := chain.SpendTxOut(&unknown, 0); !errors.Is(err, ErrUnknownOutpoint) {
		t.Errorf("unexpected error for unknown tx -- got %v, want %v", err,
			ErrUnknownOutpoint)
	}
	if err := chain.ClearTxOut(&unknown, 0); !errors.Is(err, ErrUnknownOutpoint) {
		t.Errorf("unexpected clear error for unknown tx -- got %v, want %v",
			err, ErrUnknownOutpoint)
	}
}

// TestFetchTx ensures confirmed transactions resolve through the index and
// corrupted index entries degrade to not-found.
func TestFetchTx(t *testing.T) {
	chain, _ := chainSetup(t)
	genesis := processGenesis(t, chain)
	cbHash := genesis.Transactions[0].TxHash()

	spend := spendTx(cbHash, 0, 49*1e8)
	b1 := buildBlock(chaincfg.SimNetParams.GenesisHash, workBits(100), 1, spend)
	acceptBlock(t, chain, b1)

	spendHash := spend.TxHash()
	got := chain.FetchTx(&spendHash)
	if got == nil || got.TxHash() != spendHash {
		t.Fatal("confirmed tx did not resolve through the index")
	}

	if chain.FetchTx(&chainhash.Hash{}) != nil {
		t.Error("expected nil for an unknown tx hash")
	}

	// An index record pointing at a block that does not contain the
	// transaction is storage corruption and reads as not-found.
	b1Hash := b1.BlockHash()
	bogus := chainhash.DoubleHashH([]byte("not in b1"))
	if err := chain.putTxIdx(&bogus, NewTxIdx(&b1Hash)); err != nil {
		t.Fatalf("putTxIdx: %v", err)
	}
	if chain.FetchTx(&bogus) != nil {
		t.Error("expected corrupted index entry to read as not-found")
	}
}

// TestTxConnected exercises the single-transaction connectivity probe.
func TestTxConnected(t *testing.T) {
	chain, _ := chainSetup(t)
	genesis := processGenesis(t, chain)
	cbHash := genesis.Transactions[0].TxHash()

	if !chain.TxConnected(spendTx(cbHash, 0, 49*1e8)) {
		t.Error("expected a spend of an unspent output to connect")
	}

	unknown := chainhash.DoubleHashH([]byte("unknown funding"))
	if chain.TxConnected(spendTx(unknown, 0, 1e8)) {
		t.Error("expected a spend of an unknown output not to connect")
	}

	if err := chain.SpendTxOut(&cbHash, 0); err != nil {
		t.Fatalf("SpendTxOut: %v", err)
	}
	if chain.TxConnected(spendTx(cbHash, 0, 49*1e8)) {
		t.Error("expected a spend of a spent output not to connect")
	}
}

// TestMerkleRoot sanity checks the merkle computation over one, two and
// three transactions.
func TestMerkleRoot(t *testing.T) {
	txA := spendTx(chainhash.DoubleHashH([]byte("a")), 0, 1)
	txB := spendTx(chainhash.DoubleHashH([]byte("b")), 0, 2)
	txC := spendTx(chainhash.DoubleHashH([]byte("c")), 0, 3)

	single := CalcMerkleRoot([]*wire.MsgTx{txA})
	if single != txA.TxHash() {
		t.Error("single-tx merkle root must equal the tx hash")
	}

	hashA, hashB := txA.TxHash(), txB.TxHash()
	pair := CalcMerkleRoot([]*wire.MsgTx{txA, txB})
	if pair != *hashMerkleBranches(&hashA, &hashB) {
		t.Error("two-tx merkle root must hash the two leaves")
	}

	// An odd level duplicates its last node.
	hashC := txC.TxHash()
	left := hashMerkleBranches(&hashA, &hashB)
	right := hashMerkleBranches(&hashC, &hashC)
	triple := CalcMerkleRoot([]*wire.MsgTx{txA, txB, txC})
	if triple != *hashMerkleBranches(left, right) {
		t.Error("three-tx merkle root must duplicate the odd leaf")
	}
}
