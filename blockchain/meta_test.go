// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2023-2024 The Ember developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"math/big"
	"testing"

	"github.com/decred/dcrd/blockchain/standalone/v2"

	"github.com/embercoin/emberd/chaincfg/chainhash"
)

// TestHashTextEncoding ensures the textual hash form matches the persistent
// format: 0x prefix, lowercase digits, no leading zeros, and a byte-reversed
// big-endian interpretation of the stored little-endian bytes.
func TestHashTextEncoding(t *testing.T) {
	var one chainhash.Hash
	one[0] = 0x01
	if got := hashText(&one); got != "0x1" {
		t.Errorf("unexpected text for value 1 -- got %q, want %q", got, "0x1")
	}

	var zero chainhash.Hash
	if got := hashText(&zero); got != "0x0" {
		t.Errorf("unexpected text for zero -- got %q, want %q", got, "0x0")
	}

	hash, err := chainhash.NewHashFromStr(
		"00000000000008a3a41b85b8b29ad444def299fee21793cd8b9e567eab02cd81")
	if err != nil {
		t.Fatal(err)
	}
	want := "0x8a3a41b85b8b29ad444def299fee21793cd8b9e567eab02cd81"
	if got := hashText(hash); got != want {
		t.Errorf("unexpected text -- got %q, want %q", got, want)
	}

	parsed, err := parseHashText(want)
	if err != nil {
		t.Fatalf("parseHashText: %v", err)
	}
	if parsed != *hash {
		t.Errorf("hash text did not round trip -- got %v, want %v", parsed,
			hash)
	}
}

// TestBlkMetaEncoding ensures block metadata records render and parse in the
// persistent "{height} 0x{work}" form.
func TestBlkMetaEncoding(t *testing.T) {
	meta := &BlkMeta{Height: 12, Work: big.NewInt(0xabc)}
	if got := string(meta.serialize()); got != "12 0xabc" {
		t.Errorf("unexpected serialization -- got %q, want %q", got,
			"12 0xabc")
	}

	decoded, err := deserializeBlkMeta([]byte("12 0xabc"))
	if err != nil {
		t.Fatalf("deserializeBlkMeta: %v", err)
	}
	if decoded.Height != 12 || decoded.Work.Int64() != 0xabc {
		t.Errorf("unexpected decode -- got %+v", decoded)
	}

	if _, err := deserializeBlkMeta([]byte("12")); err == nil {
		t.Error("expected error for a short record")
	}
	if _, err := deserializeBlkMeta([]byte("x 0x1")); err == nil {
		t.Error("expected error for a malformed height")
	}
}

// TestHeightIdxEncoding ensures the per-height hash lists render as
// space-separated hash texts and parse back.
func TestHeightIdxEncoding(t *testing.T) {
	var a, b chainhash.Hash
	a[0] = 0x0a
	b[0] = 0x0b

	idx := &heightIdx{blocks: []chainhash.Hash{a, b}}
	if got := string(idx.serialize()); got != "0xa 0xb" {
		t.Errorf("unexpected serialization -- got %q, want %q", got,
			"0xa 0xb")
	}

	decoded, err := deserializeHeightIdx([]byte("0xa 0xb"))
	if err != nil {
		t.Fatalf("deserializeHeightIdx: %v", err)
	}
	if len(decoded.blocks) != 2 || decoded.blocks[0] != a ||
		decoded.blocks[1] != b {

		t.Errorf("unexpected decode -- got %+v", decoded)
	}

	empty, err := deserializeHeightIdx(nil)
	if err != nil || len(empty.blocks) != 0 {
		t.Errorf("unexpected decode of empty list -- %+v, err %v", empty,
			err)
	}
}

// TestTxIdxEncoding ensures transaction index records render and parse in
// the persistent "0x{blkhash} 0x{spentmask}" form.
func TestTxIdxEncoding(t *testing.T) {
	var blockHash chainhash.Hash
	blockHash[0] = 0x7f

	idx := NewTxIdx(&blockHash)
	if got := string(idx.serialize()); got != "0x7f 0x0" {
		t.Errorf("unexpected serialization -- got %q, want %q", got,
			"0x7f 0x0")
	}

	idx.SpentMask.SetBit(idx.SpentMask, 2, 1)
	if got := string(idx.serialize()); got != "0x7f 0x4" {
		t.Errorf("unexpected serialization -- got %q, want %q", got,
			"0x7f 0x4")
	}

	decoded, err := deserializeTxIdx([]byte("0x7f 0x4"))
	if err != nil {
		t.Fatalf("deserializeTxIdx: %v", err)
	}
	if decoded.BlockHash != blockHash || decoded.SpentMask.Bit(2) != 1 {
		t.Errorf("unexpected decode -- got %+v", decoded)
	}
}

// TestBlockWork ensures the per-block work weight is the compact-bits
// expansion, clamped to zero for values carrying the sign bit.
func TestBlockWork(t *testing.T) {
	if blockWork(0x03000064).Int64() != 100 {
		t.Error("unexpected block work for compact value 100")
	}

	bits := uint32(0x1d00ffff)
	if blockWork(bits).Cmp(standalone.CompactToBig(bits)) != 0 {
		t.Error("block work differs from the compact-bits expansion")
	}

	// A compact value with the sign bit set must contribute no work
	// rather than a negative weight.
	if blockWork(0x03800064).Sign() != 0 {
		t.Error("expected zero work for a negative compact value")
	}
}
