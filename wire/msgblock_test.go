// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2023-2024 The Ember developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"testing"
	"time"

	"github.com/embercoin/emberd/chaincfg/chainhash"
)

// TestBlockSerialize tests MsgBlock serialize and deserialize round trips,
// including the header-only hash identity.
func TestBlockSerialize(t *testing.T) {
	prevHash := chainhash.DoubleHashH([]byte("prev block"))
	merkle := chainhash.DoubleHashH([]byte("merkle"))
	header := BlockHeader{
		Version:    1,
		PrevBlock:  prevHash,
		MerkleRoot: merkle,
		Timestamp:  time.Unix(0x495fab29, 0),
		Bits:       0x1d00ffff,
		Nonce:      0x9962e301,
	}

	block := NewMsgBlock(&header)
	block.AddTransaction(testTx())

	raw, err := block.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if len(raw) != block.SerializeSize() {
		t.Errorf("SerializeSize mismatch -- got %d, want %d",
			block.SerializeSize(), len(raw))
	}

	var decoded MsgBlock
	if err := decoded.FromBytes(raw); err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if decoded.BlockHash() != block.BlockHash() {
		t.Error("round trip changed the block hash")
	}
	if len(decoded.Transactions) != 1 ||
		decoded.Transactions[0].TxHash() != block.Transactions[0].TxHash() {

		t.Error("round trip changed the transaction list")
	}

	// The block hash commits to the header only.
	headerOnly := decoded.Header.BlockHash()
	if headerOnly != block.BlockHash() {
		t.Error("block hash does not match the header hash")
	}
}

// TestBlockHeaderSerialize ensures a standalone header occupies exactly the
// fixed header length on the wire.
func TestBlockHeaderSerialize(t *testing.T) {
	header := BlockHeader{
		Version:   1,
		Timestamp: time.Unix(0x495fab29, 0),
		Bits:      0x1d00ffff,
		Nonce:     42,
	}

	var buf bytes.Buffer
	if err := header.Serialize(&buf); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if buf.Len() != blockHeaderLen {
		t.Fatalf("unexpected header length -- got %d, want %d", buf.Len(),
			blockHeaderLen)
	}

	var decoded BlockHeader
	if err := decoded.Deserialize(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if decoded.BlockHash() != header.BlockHash() {
		t.Error("round trip changed the header hash")
	}
}
