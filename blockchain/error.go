// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2023-2024 The Ember developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific RuleError.
const (
	// ErrDuplicateBlock indicates a block with the same hash already
	// exists in the store, the block cache, or the orphan pool.
	ErrDuplicateBlock = ErrorKind("ErrDuplicateBlock")

	// ErrInvalidBlock indicates a block failed header-level validity
	// checks.
	ErrInvalidBlock = ErrorKind("ErrInvalidBlock")

	// ErrUnconnectableBlock indicates the connectivity check over a block
	// failed: a double spend, a missing input, a duplicate in-block
	// outpoint, or an oversized output index.
	ErrUnconnectableBlock = ErrorKind("ErrUnconnectableBlock")

	// ErrSignatureFailure indicates an input of a transaction failed
	// signature verification.
	ErrSignatureFailure = ErrorKind("ErrSignatureFailure")

	// ErrMissingDependency indicates a transaction input references a
	// funding transaction that is not known to the index, the containing
	// block, or the mempool.
	ErrMissingDependency = ErrorKind("ErrMissingDependency")

	// ErrUnknownOutpoint indicates an attempt to mark an output spent or
	// unspent for a transaction that is not in the index.
	ErrUnknownOutpoint = ErrorKind("ErrUnknownOutpoint")

	// ErrOutpointIndex indicates an output index beyond the sanity bound
	// was rejected before any mutation took place.
	ErrOutpointIndex = ErrorKind("ErrOutpointIndex")

	// ErrReorgFailed indicates a chain reorganization walked back to the
	// null hash before finding a common ancestor.  The tip is left
	// unchanged.
	ErrReorgFailed = ErrorKind("ErrReorgFailed")

	// ErrStorageCorruption indicates the stores disagree with one another,
	// such as a stored block whose metadata record is missing.  A
	// transaction index record that points at a block lacking the
	// transaction is not reported with this kind: FetchTx logs it and
	// treats the transaction as unknown.
	ErrStorageCorruption = ErrorKind("ErrStorageCorruption")

	// ErrReadOnly indicates a mutating operation was attempted on a chain
	// that was opened read-only.
	ErrReadOnly = ErrorKind("ErrReadOnly")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// RuleError identifies a rule violation.  It is used to indicate that
// processing of a block or transaction failed due to one of the many
// validation rules.  It has full support for errors.Is and errors.As, so the
// caller can ascertain the specific reason for the error by checking the
// underlying error.
type RuleError struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e RuleError) Unwrap() error {
	return e.Err
}

// ruleError creates a RuleError given a set of arguments.
func ruleError(kind ErrorKind, desc string) RuleError {
	return RuleError{Err: kind, Description: desc}
}
