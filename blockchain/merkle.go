// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2023-2024 The Ember developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"github.com/embercoin/emberd/chaincfg/chainhash"
	"github.com/embercoin/emberd/wire"
)

// hashMerkleBranches takes two hashes, treated as the left and right tree
// nodes, and returns the hash of their concatenation.  This is a helper
// function used to aid in the generation of a merkle tree.
func hashMerkleBranches(left *chainhash.Hash, right *chainhash.Hash) *chainhash.Hash {
	// Concatenate the left and right nodes.
	var hash [chainhash.HashSize * 2]byte
	copy(hash[:chainhash.HashSize], left[:])
	copy(hash[chainhash.HashSize:], right[:])

	newHash := chainhash.DoubleHashH(hash[:])
	return &newHash
}

// CalcMerkleRoot computes the merkle root over the passed transactions using
// the duplicate-last-node rule for odd levels.
//
// The merkle tree of an empty transaction list is the zero hash.
func CalcMerkleRoot(transactions []*wire.MsgTx) chainhash.Hash {
	if len(transactions) == 0 {
		return chainhash.Hash{}
	}

	level := make([]*chainhash.Hash, 0, (len(transactions)+1)/2*2)
	for _, tx := range transactions {
		txHash := tx.TxHash()
		level = append(level, &txHash)
	}

	for len(level) > 1 {
		// When there is no right child, reuse the left child per the
		// original bitcoind rule.
		if len(level)%2 != 0 {
			level = append(level, level[len(level)-1])
		}

		next := make([]*chainhash.Hash, 0, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			next = append(next, hashMerkleBranches(level[i], level[i+1]))
		}
		level = next
	}

	return *level[0]
}
