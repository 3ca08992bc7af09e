// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2023-2024 The Ember developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"math/big"

	"github.com/decred/dcrd/blockchain/standalone/v2"
)

// blockWork returns the proof-of-work weight a block contributes to its
// chain's cumulative work.  The weight is the 256-bit expansion of the
// block's compact difficulty field; summing it from genesis yields the
// fork-choice metric.
func blockWork(bits uint32) *big.Int {
	work := standalone.CompactToBig(bits)
	if work.Sign() < 0 {
		return new(big.Int)
	}
	return work
}
