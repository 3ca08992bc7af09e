// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2023-2024 The Ember developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining

import "errors"

// errNoChainTip indicates a block template was requested before the chain
// had a tip block to build on.
var errNoChainTip = errors.New("no chain tip block to build on")
