// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2023-2024 The Ember developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mining assembles candidate blocks for mining from the contents of
// the transaction pool and the current chain tip.
package mining

import (
	"sort"
	"time"

	"github.com/embercoin/emberd/blockchain"
	"github.com/embercoin/emberd/chaincfg"
	"github.com/embercoin/emberd/mempool"
	"github.com/embercoin/emberd/wire"
)

const (
	// maxBlockSize is the maximum number of transaction bytes packed into
	// an assembled block.
	maxBlockSize = 900 * 1000

	// freeTxBudget is the number of block bytes reserved for transactions
	// that pay no (or a below-minimum) fee.  Free transactions are packed
	// until the budget is exhausted.
	freeTxBudget = 50000

	// minRelayTxFee is the minimum fee in toshis per kilobyte a
	// transaction must pay to count as a paying transaction.  Anything
	// below it competes for the free budget instead.
	minRelayTxFee = 50000
)

// txPrioItem houses a transaction along with the ordering metadata computed
// for it during candidate selection.
type txPrioItem struct {
	tx       *wire.MsgTx
	fees     int64
	serSize  int
	feePerKB float64
	priority float64
}

// BlkTmplGenerator assembles block templates over a chain instance and a
// transaction source.
type BlkTmplGenerator struct {
	chain  *blockchain.ChainDB
	txPool *mempool.TxPool
	params *chaincfg.Params
}

// NewBlkTmplGenerator returns a new block template generator for the given
// chain, transaction pool and network.
func NewBlkTmplGenerator(chain *blockchain.ChainDB, txPool *mempool.TxPool,
	params *chaincfg.Params) *BlkTmplGenerator {

	return &BlkTmplGenerator{
		chain:  chain,
		txPool: txPool,
		params: params,
	}
}

// blockValue returns the total value a coinbase at the given height may
// claim: the height-dependent subsidy plus the fees of the packed
// transactions.  The subsidy halves every SubsidyHalvingInterval blocks
// using integer division.
func (g *BlkTmplGenerator) blockValue(height, fees int64) int64 {
	subsidy := g.params.BaseSubsidy
	subsidy >>= uint64(height / g.params.SubsidyHalvingInterval)
	return subsidy + fees
}

// candidateTxs scans the transaction pool and returns the transactions
// eligible for the next block along with their ordering metadata, sorted by
// fee per kilobyte and then priority, both descending.
//
// A transaction qualifies when it is final, not a coinbase, every input
// resolves to a known funding output, and its fees are not negative.  A fee
// rate below the minimum relay fee is treated as zero so the transaction
// competes for the free budget.
func (g *BlkTmplGenerator) candidateTxs() []*txPrioItem {
	items := make([]*txPrioItem, 0, g.txPool.Size())
	for _, tx := range g.txPool.Pool() {
		// Only finalized, non-coinbase transactions qualify.
		if tx.IsCoinBase() || !tx.IsFinal() {
			continue
		}

		// Walk the inputs, accumulating the total input value and the
		// priority numerator.  The input age factor carries a constant
		// weight of one.
		valid := true
		var valueIn, valueOut int64
		var priority float64
		for _, txIn := range tx.TxIn {
			prevOut := txIn.PreviousOutPoint
			fundingTx := g.chain.FetchTx(&prevOut.Hash)
			if fundingTx == nil ||
				prevOut.Index >= uint32(len(fundingTx.TxOut)) {

				valid = false
				continue
			}

			value := fundingTx.TxOut[prevOut.Index].Value
			valueIn += value
			priority += float64(value) * 1
		}
		if !valid {
			continue
		}

		for _, txOut := range tx.TxOut {
			valueOut += txOut.Value
		}

		fees := valueIn - valueOut
		if fees < 0 {
			continue
		}

		serSize := tx.SerializeSize()
		priority /= float64(serSize)

		feePerKB := float64(fees) / (float64(serSize) / 1000)
		if feePerKB < minRelayTxFee {
			feePerKB = 0
		}

		items = append(items, &txPrioItem{
			tx:       tx,
			fees:     fees,
			serSize:  serSize,
			feePerKB: feePerKB,
			priority: priority,
		})
	}

	// Sort by fee per KB and then priority, both descending, so packing
	// admits the best-paying transactions first.
	sort.Slice(items, func(i, j int) bool {
		if items[i].feePerKB != items[j].feePerKB {
			return items[i].feePerKB > items[j].feePerKB
		}
		return items[i].priority > items[j].priority
	})

	return items
}

// packTxs walks the sorted candidates and selects the ones that fit.  A
// transaction that would push the block past maxBlockSize is skipped.
// Paying transactions are always admitted when they fit; free transactions
// additionally draw down the free-byte budget and are dropped once it runs
// out.
func packTxs(candidates []*txPrioItem) []*txPrioItem {
	selected := make([]*txPrioItem, 0, len(candidates))
	blockBytes := 0
	freeBytes := freeTxBudget
	for _, item := range candidates {
		if blockBytes+item.serSize > maxBlockSize {
			continue
		}

		switch {
		case item.feePerKB > 0:
			selected = append(selected, item)
			blockBytes += item.serSize
		case freeBytes >= item.serSize:
			selected = append(selected, item)
			blockBytes += item.serSize
			freeBytes -= item.serSize
		}
	}
	return selected
}

// NewBlockTemplate assembles a candidate block on top of the current chain
// tip from the best-paying transactions in the pool.
//
// The coinbase carries a single null-outpoint input and a single output
// claiming the subsidy plus the packed fees.  Its signature and public key
// scripts are deliberately left empty: the embedding layer fills them before
// the block is mined or relayed.  The difficulty bits are copied verbatim
// from the previous block; no retargeting is performed.
func (g *BlkTmplGenerator) NewBlockTemplate() (*wire.MsgBlock, error) {
	topHash := g.chain.TopHash()
	prevBlock, err := g.chain.BlockByHash(&topHash)
	if err != nil {
		return nil, err
	}
	if prevBlock == nil {
		return nil, errNoChainTip
	}

	// Obtain the candidate transactions for the new block.
	selected := packTxs(g.candidateTxs())
	var totalFees int64
	for _, item := range selected {
		totalFees += item.fees
	}

	// Build the coinbase.
	coinbaseIn := wire.TxIn{Sequence: wire.MaxTxInSequenceNum}
	coinbaseIn.PreviousOutPoint.SetNull()

	coinbase := wire.NewMsgTx()
	coinbase.AddTxIn(&coinbaseIn)
	coinbase.AddTxOut(&wire.TxOut{
		Value: g.blockValue(g.chain.Height(), totalFees),
	})

	// Build the block.
	block := &wire.MsgBlock{
		Header: wire.BlockHeader{
			Version:   1,
			PrevBlock: topHash,
			Timestamp: time.Unix(time.Now().Unix(), 0),
			Bits:      prevBlock.Header.Bits,
		},
	}
	block.AddTransaction(coinbase)
	for _, item := range selected {
		block.AddTransaction(item.tx)
	}
	block.Header.MerkleRoot = blockchain.CalcMerkleRoot(block.Transactions)

	log.Debugf("Assembled block template with %d transactions paying %d "+
		"in fees", len(block.Transactions), totalFees)

	return block, nil
}
