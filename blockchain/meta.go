// Copyright (c) 2015-2016 The btcsuite developers
// Copyright (c) 2023-2024 The Ember developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/embercoin/emberd/chaincfg/chainhash"
)

// errDeserialize signifies that a problem was encountered when deserializing
// a stored textual record.
type errDeserialize string

// Error implements the error interface.
func (e errDeserialize) Error() string {
	return string(e)
}

// -----------------------------------------------------------------------------
// The metadata stores use textual value encodings inherited from the
// persistent format: integers are rendered the way a big integer prints in
// lowercase hex with a 0x prefix and no leading zeros, hashes are rendered as
// that same hex form of their 256-bit big-endian value, and multi-field
// records are space-separated.  The encodings must round-trip bit-for-bit.
// -----------------------------------------------------------------------------

// bigText renders a non-negative big integer in the persistent textual form.
func bigText(n *big.Int) string {
	return "0x" + n.Text(16)
}

// parseBigText parses the persistent textual form of a non-negative big
// integer.  Plain hex without the 0x prefix is accepted for robustness.
func parseBigText(s string) (*big.Int, error) {
	s = strings.TrimPrefix(s, "0x")
	n, ok := new(big.Int).SetString(s, 16)
	if !ok || n.Sign() < 0 {
		return nil, errDeserialize(fmt.Sprintf("malformed integer %q", s))
	}
	return n, nil
}

// hashText renders a hash in the persistent textual form.  The hash bytes
// are little-endian on disk, so the text is the hex of their byte-reversed,
// big-endian interpretation.
func hashText(h *chainhash.Hash) string {
	var be [chainhash.HashSize]byte
	for i, b := range h {
		be[chainhash.HashSize-1-i] = b
	}
	return bigText(new(big.Int).SetBytes(be[:]))
}

// parseHashText parses the persistent textual form of a hash.
func parseHashText(s string) (chainhash.Hash, error) {
	n, err := parseBigText(s)
	if err != nil {
		return chainhash.Hash{}, err
	}
	if n.BitLen() > chainhash.HashSize*8 {
		return chainhash.Hash{}, errDeserialize(fmt.Sprintf(
			"hash value %q exceeds 256 bits", s))
	}

	var be [chainhash.HashSize]byte
	n.FillBytes(be[:])
	var h chainhash.Hash
	for i, b := range be {
		h[chainhash.HashSize-1-i] = b
	}
	return h, nil
}

// BlkMeta houses the per-block chain metadata: the block's height and the
// cumulative proof-of-work of the chain ending at it.
type BlkMeta struct {
	Height int64
	Work   *big.Int
}

// serialize renders the metadata in the persistent "{height} 0x{work}" form.
func (m *BlkMeta) serialize() []byte {
	return []byte(strconv.FormatInt(m.Height, 10) + " " + bigText(m.Work))
}

// deserializeBlkMeta decodes a stored "{height} 0x{work}" record.
func deserializeBlkMeta(b []byte) (*BlkMeta, error) {
	fields := strings.Fields(string(b))
	if len(fields) < 2 {
		return nil, errDeserialize(fmt.Sprintf("short block meta %q", b))
	}
	height, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return nil, errDeserialize(fmt.Sprintf("malformed height %q",
			fields[0]))
	}
	work, err := parseBigText(fields[1])
	if err != nil {
		return nil, err
	}
	return &BlkMeta{Height: height, Work: work}, nil
}

// heightIdx is the ordered list of block hashes stored at a single height.
// The list is append-only: hashes of stale forks remain listed at their
// height forever.
type heightIdx struct {
	blocks []chainhash.Hash
}

// serialize renders the height index as space-separated hash texts.
func (idx *heightIdx) serialize() []byte {
	parts := make([]string, 0, len(idx.blocks))
	for i := range idx.blocks {
		parts = append(parts, hashText(&idx.blocks[i]))
	}
	return []byte(strings.Join(parts, " "))
}

// deserializeHeightIdx decodes a stored space-separated hash list.
func deserializeHeightIdx(b []byte) (*heightIdx, error) {
	idx := &heightIdx{}
	for _, field := range strings.Fields(string(b)) {
		hash, err := parseHashText(field)
		if err != nil {
			return nil, err
		}
		idx.blocks = append(idx.blocks, hash)
	}
	return idx, nil
}

// heightKey returns the height store key for the given height.
func heightKey(height int64) []byte {
	return []byte(strconv.FormatInt(height, 10))
}

// FetchBlockMeta returns the chain metadata for the given block hash, or nil
// when the block is unknown.
func (c *ChainDB) FetchBlockMeta(hash *chainhash.Hash) (*BlkMeta, error) {
	value, ok, err := c.db.BlkMeta.Get(hash[:])
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return deserializeBlkMeta(value)
}

// BlockHeight returns the height recorded for the given block hash, or -1
// when the block is unknown.
func (c *ChainDB) BlockHeight(hash *chainhash.Hash) int64 {
	meta, err := c.FetchBlockMeta(hash)
	if err != nil || meta == nil {
		return -1
	}
	return meta.Height
}

// LocateBlockMeta returns the metadata of the first hash in the passed block
// locator that is known to the chain, or nil when none are.
func (c *ChainDB) LocateBlockMeta(locator []chainhash.Hash) (*BlkMeta, error) {
	for i := range locator {
		meta, err := c.FetchBlockMeta(&locator[i])
		if err != nil {
			return nil, err
		}
		if meta != nil {
			return meta, nil
		}
	}
	return nil, nil
}

// appendHeightIdx appends the passed hash to the block list stored for the
// given height.  The list is created when the height is new.
func (c *ChainDB) appendHeightIdx(height int64, hash *chainhash.Hash) error {
	key := heightKey(height)
	idx := &heightIdx{}
	value, ok, err := c.db.Height.Get(key)
	if err != nil {
		return err
	}
	if ok {
		idx, err = deserializeHeightIdx(value)
		if err != nil {
			return err
		}
	}
	idx.blocks = append(idx.blocks, *hash)
	return c.db.Height.Put(key, idx.serialize())
}

// BlocksAtHeight returns the hashes of every stored block at the given
// height, in insertion order.  Blocks of stale forks remain listed.
func (c *ChainDB) BlocksAtHeight(height int64) ([]chainhash.Hash, error) {
	value, ok, err := c.db.Height.Get(heightKey(height))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	idx, err := deserializeHeightIdx(value)
	if err != nil {
		return nil, err
	}
	return idx.blocks, nil
}
