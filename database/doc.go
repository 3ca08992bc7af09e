// Copyright (c) 2015-2016 The btcsuite developers
// Copyright (c) 2023-2024 The Ember developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package database provides the durable key-value stores that back the chain
// state engine.
//
// The chain state is spread across five logically independent stores that
// live side by side in a single data directory: misc.dat, blocks.dat,
// height.dat, blkmeta.dat and tx.dat.  Each store is a LevelDB keyed by raw
// byte strings; the value encodings are deliberately textual for everything
// but raw block data and the misc store's network magic and tip hash, and
// are part of the persistent format, so they must be preserved bit-for-bit by
// callers.
//
// The stores are opened jointly in either read-write or read-only mode.  On
// first-time creation the misc store is seeded with the empty-chain sentinel
// values, and the recorded network magic is checked against the configured
// one on every open so data directories can never be silently shared between
// networks.
package database
