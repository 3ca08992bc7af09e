// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2023-2024 The Ember developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math/big"
	"time"

	"github.com/embercoin/emberd/chaincfg/chainhash"
	"github.com/embercoin/emberd/wire"
)

// mainPowLimit is the highest proof of work value an Ember block can have for
// the main network.  It is the value 2^224 - 1.
var mainPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 224), bigOne)

// mainNetGenesisCoinbaseTx is the coinbase transaction for the genesis block
// for the main network.
var mainNetGenesisCoinbaseTx = wire.MsgTx{
	Version: 1,
	TxIn: []*wire.TxIn{{
		// Fully null.
		PreviousOutPoint: wire.OutPoint{
			Hash:  chainhash.Hash{},
			Index: 0xffffffff,
		},
		SignatureScript: hexDecode("04ffff001d0104456d626572206c69676874" +
			"732077686572652070726f6f66206f6620776f726b2073746" +
			"96c6c206275726e73"),
		Sequence: 0xffffffff,
	}},
	TxOut: []*wire.TxOut{{
		Value: 50 * 1e8,
		PkScript: hexDecode("4104678afdb0fe5548271967f1a67130b7105cd6a828" +
			"e03909a67962e0ea1f61deb649f6bc3f4cef38c4f35504e51ec112de5c3" +
			"84df7ba0b8d578a4c702b6bf11d5fac"),
	}},
	LockTime: 0,
}

// mainNetGenesisBlock defines the genesis block of the block chain which
// serves as the public transaction ledger for the main network.
//
// The genesis block is valid by definition.  The only values ever used from
// it elsewhere are its hash, which seeds the chain, and its Bits field, which
// seeds the difficulty of the blocks that build on it.
var mainNetGenesisBlock = wire.MsgBlock{
	Header: wire.BlockHeader{
		Version:    1,
		PrevBlock:  chainhash.Hash{}, // All zero.
		MerkleRoot: mainNetGenesisCoinbaseTx.TxHash(),
		Timestamp:  time.Unix(1702468800, 0), // 2023-12-13 12:00:00 +0000 UTC
		Bits:       bigToCompact(mainPowLimit),
		Nonce:      0x18aea41a,
	},
	Transactions: []*wire.MsgTx{&mainNetGenesisCoinbaseTx},
}

// MainNetParams defines the network parameters for the main Ember network.
var MainNetParams = Params{
	Name:        "mainnet",
	Net:         wire.MainNet,
	DefaultPort: "9333",

	// Chain parameters
	GenesisBlock: &mainNetGenesisBlock,
	GenesisHash:  mainNetGenesisBlock.BlockHash(),
	PowLimit:     mainPowLimit,
	PowLimitBits: bigToCompact(mainPowLimit),

	// Subsidy parameters.
	BaseSubsidy:            50 * 1e8,
	SubsidyHalvingInterval: 210000,
}
