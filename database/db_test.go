// Copyright (c) 2015-2016 The btcsuite developers
// Copyright (c) 2023-2024 The Ember developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package database

import (
	"bytes"
	"errors"
	"testing"

	"github.com/embercoin/emberd/wire"
)

// TestOpenSeedsEmptyChain ensures a fresh data directory is seeded with the
// empty-chain misc record.
func TestOpenSeedsEmptyChain(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(dir, wire.SimNet, false, false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	tests := []struct {
		key  []byte
		want []byte
	}{
		{MiscKeyHeight, []byte("-1")},
		{MiscKeyTopHash, make([]byte, 32)},
		{MiscKeyTotalWork, []byte("0x0")},
	}
	for _, test := range tests {
		value, ok, err := db.Misc.Get(test.key)
		if err != nil {
			t.Fatalf("Get(%s): %v", test.key, err)
		}
		if !ok {
			t.Fatalf("missing seeded misc key %s", test.key)
		}
		if !bytes.Equal(value, test.want) {
			t.Errorf("unexpected value for %s -- got %q, want %q",
				test.key, value, test.want)
		}
	}

	magic := wire.SimNet.Bytes()
	value, ok, err := db.Misc.Get(MiscKeyMsgStart)
	if err != nil || !ok {
		t.Fatalf("missing msg_start (err %v)", err)
	}
	if !bytes.Equal(value, magic[:]) {
		t.Errorf("unexpected msg_start -- got %x, want %x", value, magic)
	}
}

// TestOpenNetworkMismatch ensures reopening a data directory with a
// different network magic fails.
func TestOpenNetworkMismatch(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(dir, wire.SimNet, false, false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	db.Close()

	if _, err := Open(dir, wire.MainNet, false, false); !errors.Is(err, ErrNetworkMismatch) {
		t.Fatalf("unexpected error for mismatched magic -- got %v, want %v",
			err, ErrNetworkMismatch)
	}

	// The original network must still open fine.
	db, err = Open(dir, wire.SimNet, false, false)
	if err != nil {
		t.Fatalf("reopen with matching magic: %v", err)
	}
	db.Close()
}

// TestStoreRoundTrip exercises put/get/has/delete on one of the stores and
// ensures values persist across a reopen.
func TestStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(dir, wire.SimNet, false, false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	key := []byte("12")
	value := []byte("0xdeadbeef 0x0")
	if err := db.Tx.Put(key, value); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if ok, _ := db.Tx.Has(key); !ok {
		t.Fatal("expected key to exist after put")
	}
	if err := db.Sync(); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	db.Close()

	db, err = Open(dir, wire.SimNet, false, false)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()

	got, ok, err := db.Tx.Get(key)
	if err != nil || !ok {
		t.Fatalf("Get after reopen: ok %v err %v", ok, err)
	}
	if !bytes.Equal(got, value) {
		t.Errorf("unexpected value -- got %q, want %q", got, value)
	}

	if err := db.Tx.Delete(key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := db.Tx.Get(key); ok {
		t.Error("expected key to be gone after delete")
	}

	// Missing keys are not errors.
	if _, ok, err := db.Blocks.Get([]byte("missing")); ok || err != nil {
		t.Errorf("unexpected result for missing key -- ok %v err %v", ok, err)
	}
}

// TestReadOnly ensures a read-only open rejects mutations but serves reads.
func TestReadOnly(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(dir, wire.SimNet, false, false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := db.Misc.Put([]byte("probe"), []byte("x")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	db.Close()

	db, err = Open(dir, wire.SimNet, true, false)
	if err != nil {
		t.Fatalf("read-only open: %v", err)
	}
	defer db.Close()

	if !db.ReadOnly() {
		t.Error("expected ReadOnly to report true")
	}
	if _, ok, err := db.Misc.Get([]byte("probe")); !ok || err != nil {
		t.Errorf("expected read to succeed -- ok %v err %v", ok, err)
	}
	if err := db.Misc.Put([]byte("probe"), []byte("y")); !errors.Is(err, ErrReadOnly) {
		t.Errorf("unexpected put error -- got %v, want %v", err, ErrReadOnly)
	}
	if err := db.Misc.Delete([]byte("probe")); !errors.Is(err, ErrReadOnly) {
		t.Errorf("unexpected delete error -- got %v, want %v", err,
			ErrReadOnly)
	}
	if err := db.Sync(); err != nil {
		t.Errorf("read-only sync should be a no-op -- got %v", err)
	}
}

// TestReadOnlyMissing ensures a read-only open of a directory that was never
// created fails rather than creating it.
func TestReadOnlyMissing(t *testing.T) {
	dir := t.TempDir()
	if _, err := Open(dir, wire.SimNet, true, false); err == nil {
		t.Fatal("expected read-only open of a missing database to fail")
	}
}
