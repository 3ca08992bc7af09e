// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2023-2024 The Ember developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import "github.com/embercoin/emberd/chaincfg"

// activeNetParams is a pointer to the parameters specific to the currently
// active Ember network.
var activeNetParams = &mainNetParams

// params is used to group parameters for various networks such as the main
// network and test networks.
type params struct {
	*chaincfg.Params
}

// mainNetParams contains parameters specific to the main network.
var mainNetParams = params{
	Params: &chaincfg.MainNetParams,
}

// testNetParams contains parameters specific to the test network.
var testNetParams = params{
	Params: &chaincfg.TestNetParams,
}

// simNetParams contains parameters specific to the simulation test network.
var simNetParams = params{
	Params: &chaincfg.SimNetParams,
}

// netName returns the name used when referring to an Ember network.  The
// data and log directories for each network are named after it.
func netName(chainParams *params) string {
	return chainParams.Name
}
