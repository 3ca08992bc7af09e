// Copyright (c) 2015-2016 The btcsuite developers
// Copyright (c) 2023-2024 The Ember developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package database

import "github.com/pkg/errors"

var (
	// ErrNetworkMismatch indicates the network magic recorded in an
	// existing misc store differs from the configured one.  The data
	// directory either belongs to another network or is corrupt, so the
	// open is aborted.
	ErrNetworkMismatch = errors.New("database network magic mismatch")

	// ErrReadOnly indicates a mutating operation was attempted against a
	// database that was opened in read-only mode.
	ErrReadOnly = errors.New("database is read-only")
)
