// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2023-2024 The Ember developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "fmt"

// CurrencyNet represents which Ember network a message belongs to.
type CurrencyNet uint32

// Constants used to indicate the message network.  They can also be used to
// seek to the next message when a stream's state is unknown, but this package
// does not provide that functionality since it's generally a better idea to
// simply disconnect clients that are misbehaving over TCP.
const (
	// MainNet represents the main Ember network.
	MainNet CurrencyNet = 0xd9c4aee1

	// TestNet represents the test network.
	TestNet CurrencyNet = 0xb194f20b

	// SimNet represents the simulation test network.
	SimNet CurrencyNet = 0x12141c16
)

// bnStrings is a map of Ember networks back to their constant names for
// pretty printing.
var bnStrings = map[CurrencyNet]string{
	MainNet: "MainNet",
	TestNet: "TestNet",
	SimNet:  "SimNet",
}

// String returns the CurrencyNet in human-readable form.
func (n CurrencyNet) String() string {
	if s, ok := bnStrings[n]; ok {
		return s
	}

	return fmt.Sprintf("Unknown CurrencyNet (%d)", uint32(n))
}

// Bytes returns the little-endian wire encoding of the network magic as it
// appears at the start of every framed message and block-import record.
func (n CurrencyNet) Bytes() [4]byte {
	var b [4]byte
	littleEndian.PutUint32(b[:], uint32(n))
	return b
}
