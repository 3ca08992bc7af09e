// Copyright (c) 2015-2016 The btcsuite developers
// Copyright (c) 2023-2024 The Ember developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package database

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/embercoin/emberd/chaincfg/chainhash"
	"github.com/embercoin/emberd/wire"
)

// Store file names inside the data directory.  These names are part of the
// persistent format.
const (
	miscStoreName    = "misc.dat"
	blocksStoreName  = "blocks.dat"
	heightStoreName  = "height.dat"
	blkMetaStoreName = "blkmeta.dat"
	txStoreName      = "tx.dat"
)

// Well-known misc store keys.  The height and total work values are textual,
// while the network magic and tip hash are raw bytes; all of them are part of
// the persistent format.
var (
	// MiscKeyHeight holds the decimal height of the chain tip, "-1" for an
	// empty chain.
	MiscKeyHeight = []byte("height")

	// MiscKeyMsgStart holds the 4-byte network magic the data directory
	// was created for.
	MiscKeyMsgStart = []byte("msg_start")

	// MiscKeyTopHash holds the 32-byte little-endian serialization of the
	// chain tip hash.
	MiscKeyTopHash = []byte("tophash")

	// MiscKeyTotalWork holds the 0x-prefixed lowercase hex cumulative work
	// of the chain tip.
	MiscKeyTotalWork = []byte("total_work")
)

// Store is a single durable keyed byte-string map.  All five chain stores
// share this type; the semantics of keys and values differ per store and are
// owned by the caller.
type Store struct {
	name     string
	ldb      *leveldb.DB
	readOnly bool
}

// Name returns the file name of the store inside its data directory.
func (s *Store) Name() string {
	return s.name
}

// Get returns the value for the given key.  The boolean return indicates
// whether the key exists; a missing key is not an error.
func (s *Store) Get(key []byte) ([]byte, bool, error) {
	value, err := s.ldb.Get(key, nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil, false, nil
		}
		return nil, false, errors.Wrapf(err, "get %q from %s", key, s.name)
	}
	return value, true, nil
}

// Has returns whether the given key exists in the store.
func (s *Store) Has(key []byte) (bool, error) {
	exists, err := s.ldb.Has(key, nil)
	if err != nil {
		return false, errors.Wrapf(err, "has %q in %s", key, s.name)
	}
	return exists, nil
}

// Put stores the value for the given key, replacing any existing value.
func (s *Store) Put(key, value []byte) error {
	if s.readOnly {
		return errors.WithStack(ErrReadOnly)
	}
	err := s.ldb.Put(key, value, nil)
	if err != nil {
		return errors.Wrapf(err, "put %q into %s", key, s.name)
	}
	return nil
}

// Delete removes the given key.  Deleting a missing key is not an error.
func (s *Store) Delete(key []byte) error {
	if s.readOnly {
		return errors.WithStack(ErrReadOnly)
	}
	err := s.ldb.Delete(key, nil)
	if err != nil {
		return errors.Wrapf(err, "delete %q from %s", key, s.name)
	}
	return nil
}

// ForEach invokes fn for every key/value pair in the store.  Iteration stops
// at the first error, which is returned.  The key and value slices are only
// valid for the duration of the call.
func (s *Store) ForEach(fn func(key, value []byte) error) error {
	iter := s.ldb.NewIterator(nil, nil)
	defer iter.Release()
	for iter.Next() {
		if err := fn(iter.Key(), iter.Value()); err != nil {
			return err
		}
	}
	if err := iter.Error(); err != nil {
		return errors.Wrapf(err, "iterate %s", s.name)
	}
	return nil
}

// Sync flushes pending writes to durable storage.  LevelDB has no standalone
// fsync primitive, so the flush rides an empty batch written with the sync
// flag set, which forces the journal to disk.
func (s *Store) Sync() error {
	if s.readOnly {
		return nil
	}
	err := s.ldb.Write(new(leveldb.Batch), &opt.WriteOptions{Sync: true})
	if err != nil {
		return errors.Wrapf(err, "sync %s", s.name)
	}
	return nil
}

// DB bundles the five chain stores opened from a single data directory.
type DB struct {
	// Misc holds the singleton chain-tip record under the MiscKey* keys.
	Misc *Store

	// Blocks maps 32-byte little-endian block hashes to raw block bytes.
	Blocks *Store

	// Height maps ASCII decimal heights to space-separated 0x-hex block
	// hash lists.
	Height *Store

	// BlkMeta maps 32-byte little-endian block hashes to
	// "{height} 0x{work}" records.
	BlkMeta *Store

	// Tx maps 32-byte little-endian transaction hashes to
	// "0x{blkhash} 0x{spentmask}" records.
	Tx *Store

	readOnly bool
}

// ReadOnly returns whether the database was opened in read-only mode.
func (db *DB) ReadOnly() bool {
	return db.readOnly
}

// stores returns all five stores for operations that fan out.
func (db *DB) stores() []*Store {
	return []*Store{db.Misc, db.Blocks, db.Height, db.BlkMeta, db.Tx}
}

// Sync flushes all five stores to durable storage.
func (db *DB) Sync() error {
	for _, s := range db.stores() {
		if err := s.Sync(); err != nil {
			return err
		}
	}
	return nil
}

// Close releases all five stores.  The database must not be used afterwards.
func (db *DB) Close() error {
	var firstErr error
	for _, s := range db.stores() {
		if s == nil || s.ldb == nil {
			continue
		}
		if err := s.ldb.Close(); err != nil && firstErr == nil {
			firstErr = errors.Wrapf(err, "close %s", s.name)
		}
	}
	return firstErr
}

// openStore opens a single LevelDB-backed store inside dir.
func openStore(dir, name string, readOnly, fastMode bool) (*Store, error) {
	opts := &opt.Options{
		ReadOnly:       readOnly,
		ErrorIfMissing: readOnly,
		NoSync:         fastMode,
	}
	ldb, err := leveldb.OpenFile(filepath.Join(dir, name), opts)
	if err != nil {
		return nil, errors.Wrapf(err, "open store %s", name)
	}
	return &Store{name: name, ldb: ldb, readOnly: readOnly}, nil
}

// Open opens (creating as necessary, unless readOnly) the five chain stores
// inside dir.  On first-time creation the misc store is seeded with the
// empty-chain record: height -1, the configured network magic, an all-zero
// top hash and zero total work.  Opening a data directory whose recorded
// magic differs from net fails with ErrNetworkMismatch.
//
// In fast mode the underlying stores skip per-write fsyncs; the caller is
// expected to invoke Sync periodically during bulk import.
func Open(dir string, net wire.CurrencyNet, readOnly, fastMode bool) (*DB, error) {
	if !readOnly {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, errors.Wrapf(err, "create data directory %s", dir)
		}
	}
	if fastMode {
		log.Info("Opening database in fast mode")
	}

	db := &DB{readOnly: readOnly}
	names := []string{miscStoreName, blocksStoreName, heightStoreName,
		blkMetaStoreName, txStoreName}
	targets := []**Store{&db.Misc, &db.Blocks, &db.Height, &db.BlkMeta, &db.Tx}
	for i, name := range names {
		s, err := openStore(dir, name, readOnly, fastMode)
		if err != nil {
			db.Close()
			return nil, err
		}
		*targets[i] = s
	}

	magic := net.Bytes()
	hasHeight, err := db.Misc.Has(MiscKeyHeight)
	if err != nil {
		db.Close()
		return nil, err
	}
	if !hasHeight && !readOnly {
		log.Info("Initializing empty blockchain database")
		zeroHash := chainhash.Hash{}
		seed := []struct {
			key, value []byte
		}{
			{MiscKeyHeight, []byte("-1")},
			{MiscKeyMsgStart, magic[:]},
			{MiscKeyTopHash, zeroHash[:]},
			{MiscKeyTotalWork, []byte("0x0")},
		}
		for _, kv := range seed {
			if err := db.Misc.Put(kv.key, kv.value); err != nil {
				db.Close()
				return nil, err
			}
		}
	}

	stored, ok, err := db.Misc.Get(MiscKeyMsgStart)
	if err != nil {
		db.Close()
		return nil, err
	}
	if !ok || !bytes.Equal(stored, magic[:]) {
		log.Errorf("Database magic number mismatch. Data corruption or "+
			"incorrect network? (dir %s)", dir)
		db.Close()
		return nil, errors.WithStack(ErrNetworkMismatch)
	}

	return db, nil
}
