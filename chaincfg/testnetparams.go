// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2023-2024 The Ember developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math/big"
	"time"

	"github.com/embercoin/emberd/wire"
)

// testNetPowLimit is the highest proof of work value an Ember block can have
// for the test network.  It is the value 2^232 - 1.
var testNetPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 232), bigOne)

// testNetGenesisCoinbaseTx is the coinbase transaction for the genesis block
// for the test network.  It shares the main network coinbase aside from the
// output value so the two genesis hashes can never collide.
var testNetGenesisCoinbaseTx = func() wire.MsgTx {
	tx := mainNetGenesisCoinbaseTx.Copy()
	tx.TxOut[0].Value = 0
	return *tx
}()

// testNetGenesisBlock defines the genesis block of the block chain which
// serves as the public transaction ledger for the test network.
var testNetGenesisBlock = wire.MsgBlock{
	Header: wire.BlockHeader{
		Version:    1,
		MerkleRoot: testNetGenesisCoinbaseTx.TxHash(),
		Timestamp:  time.Unix(1702555200, 0), // 2023-12-14 12:00:00 +0000 UTC
		Bits:       bigToCompact(testNetPowLimit),
		Nonce:      0x2083236d,
	},
	Transactions: []*wire.MsgTx{&testNetGenesisCoinbaseTx},
}

// TestNetParams defines the network parameters for the test Ember network.
var TestNetParams = Params{
	Name:        "testnet",
	Net:         wire.TestNet,
	DefaultPort: "19333",

	// Chain parameters
	GenesisBlock: &testNetGenesisBlock,
	GenesisHash:  testNetGenesisBlock.BlockHash(),
	PowLimit:     testNetPowLimit,
	PowLimitBits: bigToCompact(testNetPowLimit),

	// Subsidy parameters.
	BaseSubsidy:            50 * 1e8,
	SubsidyHalvingInterval: 210000,
}
