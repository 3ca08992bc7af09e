// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2023-2024 The Ember developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"errors"
	"fmt"

	"github.com/embercoin/emberd/chaincfg/chainhash"
	"github.com/embercoin/emberd/wire"
)

// maxOutpointIndex is the sanity bound on transaction output indices.  Any
// outpoint claiming a larger index is rejected outright before it can widen
// a spent mask.
const maxOutpointIndex = 100000

// isRuleError returns whether the passed error is a RuleError, as opposed to
// an unexpected storage or decoding failure.
func isRuleError(err error) bool {
	var rerr RuleError
	return errors.As(err, &rerr)
}

// checkBlockSanity performs the context-free header-level validity checks on
// a block: it must carry at least one transaction, the first and only the
// first transaction must be a coinbase, and the header merkle root must
// commit to the transaction list.
//
// Proof-of-work targets, timestamps and difficulty are deliberately not
// validated here.
func checkBlockSanity(block *wire.MsgBlock) error {
	if len(block.Transactions) == 0 {
		return ruleError(ErrInvalidBlock, "block has no transactions")
	}

	if !block.Transactions[0].IsCoinBase() {
		return ruleError(ErrInvalidBlock, "first transaction in block is "+
			"not a coinbase")
	}

	for i, tx := range block.Transactions[1:] {
		if tx.IsCoinBase() {
			str := fmt.Sprintf("block contains second coinbase at index %d",
				i+1)
			return ruleError(ErrInvalidBlock, str)
		}
	}

	merkleRoot := CalcMerkleRoot(block.Transactions)
	if block.Header.MerkleRoot != merkleRoot {
		str := fmt.Sprintf("block merkle root is invalid - header indicates "+
			"%v, but calculated value is %v", block.Header.MerkleRoot,
			merkleRoot)
		return ruleError(ErrInvalidBlock, str)
	}

	return nil
}

// uniqueOutpoints collects every outpoint consumed by the non-coinbase
// transactions of the block along with a map of those transactions by hash.
// A duplicate outpoint within the block fails the block outright.
func uniqueOutpoints(block *wire.MsgBlock) (map[wire.OutPoint]bool,
	map[chainhash.Hash]*wire.MsgTx, error) {

	outpoints := make(map[wire.OutPoint]bool)
	txns := make(map[chainhash.Hash]*wire.MsgTx)
	for _, tx := range block.Transactions {
		if tx.IsCoinBase() {
			continue
		}
		txns[tx.TxHash()] = tx

		for _, txIn := range tx.TxIn {
			op := txIn.PreviousOutPoint
			if _, ok := outpoints[op]; ok {
				str := fmt.Sprintf("block spends outpoint %v more than "+
					"once", op)
				return nil, nil, ruleError(ErrUnconnectableBlock, str)
			}
			outpoints[op] = false
		}
	}

	return outpoints, txns, nil
}

// spentOutpoints runs the connectivity check over the block and returns the
// set of outpoints that must be marked spent when the block connects.
//
// The check runs in two passes.  The first pass resolves outpoints against
// the transaction index: an indexed funding transaction must have the
// claimed output unspent and the output index must be within the sanity
// bound.  The second pass requires every remaining outpoint to be satisfied
// by another transaction of the same block with an in-range output index.
func (c *ChainDB) spentOutpoints(block *wire.MsgBlock) ([]wire.OutPoint, error) {
	outpoints, blockTxns, err := uniqueOutpoints(block)
	if err != nil {
		return nil, err
	}

	// Pass 1: if the outpoint is in the index, make sure it is unspent.
	for op := range outpoints {
		opHash := op.Hash
		idx, err := c.FetchTxIdx(&opHash)
		if err != nil {
			return nil, err
		}
		if idx == nil {
			continue
		}

		if op.Index > maxOutpointIndex {
			str := fmt.Sprintf("outpoint %v index exceeds the sanity "+
				"bound %d", op, maxOutpointIndex)
			return nil, ruleError(ErrUnconnectableBlock, str)
		}

		if idx.SpentMask.Bit(int(op.Index)) != 0 {
			str := fmt.Sprintf("outpoint %v is already spent", op)
			return nil, ruleError(ErrUnconnectableBlock, str)
		}

		// Satisfied by the index; skip in pass 2.
		outpoints[op] = true
	}

	// Pass 2: remaining outpoints must be funded within this block.
	for op, satisfied := range outpoints {
		if satisfied {
			continue
		}

		fundingTx, ok := blockTxns[op.Hash]
		if !ok {
			str := fmt.Sprintf("outpoint %v references an unknown "+
				"transaction", op)
			return nil, ruleError(ErrUnconnectableBlock, str)
		}
		if op.Index >= uint32(len(fundingTx.TxOut)) {
			str := fmt.Sprintf("outpoint %v index is beyond the %d "+
				"outputs of its funding transaction", op,
				len(fundingTx.TxOut))
			return nil, ruleError(ErrUnconnectableBlock, str)
		}
	}

	spent := make([]wire.OutPoint, 0, len(outpoints))
	for op := range outpoints {
		spent = append(spent, op)
	}
	return spent, nil
}

// verifySig consults the injected signature predicate for input inputIdx of
// tx against its funding transaction.  A chain without a predicate accepts
// every input.
func (c *ChainDB) verifySig(fundingTx, tx *wire.MsgTx, inputIdx int) bool {
	if c.sigVerify == nil {
		return true
	}
	return c.sigVerify(fundingTx, tx, inputIdx)
}

// txSigned verifies the signature of every input of the passed transaction.
// The funding transaction of each input is resolved through the transaction
// index first, then the passed block (when non-nil), and finally the mempool
// (when checkMempool is set).  An unresolvable input fails with
// ErrMissingDependency, a failed predicate with ErrSignatureFailure.
func (c *ChainDB) txSigned(tx *wire.MsgTx, block *wire.MsgBlock, checkMempool bool) error {
	txHash := tx.TxHash()

	for i, txIn := range tx.TxIn {
		prevHash := txIn.PreviousOutPoint.Hash

		// Search the database for the funding transaction.
		fundingTx := c.FetchTx(&prevHash)

		// Search the block for the funding transaction.
		if fundingTx == nil && block != nil {
			for _, blockTx := range block.Transactions {
				if blockTx.TxHash() == prevHash {
					fundingTx = blockTx
					break
				}
			}
		}

		// Search the mempool for the funding transaction.
		if fundingTx == nil && checkMempool {
			fundingTx = c.txPool.Fetch(prevHash)
		}

		if fundingTx == nil {
			log.Infof("Tx %v/%d missing dependency %v", txHash, i, prevHash)
			str := fmt.Sprintf("input %d of tx %v references unknown tx %v",
				i, txHash, prevHash)
			return ruleError(ErrMissingDependency, str)
		}

		if !c.verifySig(fundingTx, tx, i) {
			log.Infof("Tx %v/%d signature failure", txHash, i)
			str := fmt.Sprintf("input %d of tx %v failed signature "+
				"verification", i, txHash)
			return ruleError(ErrSignatureFailure, str)
		}
	}

	return nil
}

// TxConnected reports whether the passed transaction could connect against
// the current chain state on its own: it has at least one input and one
// output, and every input references an indexed transaction whose spent mask
// has that output's bit clear.  The output count of the funding transaction
// is not checked.  The chain itself does not call it; it is exported for
// callers that vet loose transactions.
func (c *ChainDB) TxConnected(tx *wire.MsgTx) bool {
	if len(tx.TxIn) == 0 || len(tx.TxOut) == 0 {
		return false
	}

	shell := wire.MsgBlock{Transactions: []*wire.MsgTx{tx}}
	_, err := c.spentOutpoints(&shell)
	return err == nil
}
