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

// simNetPowLimit is the highest proof of work value an Ember block can have
// for the simulation network.  It is the value 2^255 - 1.
var simNetPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), bigOne)

// simNetGenesisCoinbaseTx is the coinbase transaction for the genesis block
// for the simulation network.
var simNetGenesisCoinbaseTx = func() wire.MsgTx {
	tx := mainNetGenesisCoinbaseTx.Copy()
	tx.TxIn[0].SignatureScript = hexDecode("04ffff001d010873696d206e6574")
	return *tx
}()

// simNetGenesisBlock defines the genesis block of the block chain which
// serves as the public transaction ledger for the simulation network.  The
// simulation network is used in testing scenarios where blocks are generated
// on demand, so its genesis block is never checked for proof of work.
var simNetGenesisBlock = wire.MsgBlock{
	Header: wire.BlockHeader{
		Version:    1,
		MerkleRoot: simNetGenesisCoinbaseTx.TxHash(),
		Timestamp:  time.Unix(1702641600, 0), // 2023-12-15 12:00:00 +0000 UTC
		Bits:       bigToCompact(simNetPowLimit),
		Nonce:      0,
	},
	Transactions: []*wire.MsgTx{&simNetGenesisCoinbaseTx},
}

// SimNetParams defines the network parameters for the simulation test Ember
// network.  This network is similar to the normal test network except it is
// intended for private use within a group of individuals doing simulation
// testing.  The functionality is intended to differ in that the only nodes
// which are specifically specified are used to create the network rather than
// following normal discovery rules.  This is important as otherwise it would
// just turn into another public testnet.
var SimNetParams = Params{
	Name:        "simnet",
	Net:         wire.SimNet,
	DefaultPort: "18555",

	// Chain parameters
	GenesisBlock: &simNetGenesisBlock,
	GenesisHash:  simNetGenesisBlock.BlockHash(),
	PowLimit:     simNetPowLimit,
	PowLimitBits: bigToCompact(simNetPowLimit),

	// Subsidy parameters.
	BaseSubsidy:            50 * 1e8,
	SubsidyHalvingInterval: 210000,
}
