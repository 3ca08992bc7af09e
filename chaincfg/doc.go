// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2023-2024 The Ember developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg defines chain configuration parameters.
//
// In addition to the main Ember network, which is intended for the transfer
// of monetary value, there also exists a test network and a simulation
// network.  The test network uses the same rules as the main network with a
// distinct genesis block and network magic so test coins can never be
// confused with real ones.  The simulation network is intended for private
// testing where blocks are generated on demand.
//
// For library packages, chaincfg provides the ability to lookup chain
// parameters and encoding magics when passed a *Params.
package chaincfg
