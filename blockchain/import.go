// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2023-2024 The Ember developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"bytes"
	"encoding/binary"
	"os"

	"github.com/embercoin/emberd/wire"
)

// importReadSize is the chunk size used while scanning a bulk import file.
const importReadSize = 4096

// recordHeaderLen is the length of a bulk import record header: the 4-byte
// network magic followed by the little-endian 4-byte block size.
const recordHeaderLen = 8

// ImportFile ingests blocks from a bulk import file: a concatenation of
// `<magic><LE u32 size><block bytes>` records.  The reader resynchronizes on
// the network magic, so garbage between records is skipped, and truncated
// trailing data is silently ignored.  Blocks that fail to decode or that the
// chain rejects by rule are logged and do not stop the import; any other
// processing error ends the import and is returned.
//
// The number of blocks handed to ProcessBlock is returned.
func (c *ChainDB) ImportFile(path string) (int64, error) {
	if err := c.checkWritable(); err != nil {
		return 0, err
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	log.Infof("Importing block data from %s", path)

	magic := c.params.Net.Bytes()
	var processed int64
	var buf []byte
	chunk := make([]byte, importReadSize)
	eof := false

	// fill appends the next chunk of the file to the buffer.  It reports
	// whether any bytes arrived.
	fill := func() bool {
		if eof {
			return false
		}
		n, err := f.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
		}
		if err != nil {
			eof = true
		}
		return n > 0
	}

	for {
		// Resynchronize on the network magic.  Everything before it is
		// garbage; everything after a partial tail that never completes
		// is ignored.
		start := bytes.Index(buf, magic[:])
		if start < 0 {
			// Keep a partial magic that may complete with more data.
			if len(buf) > len(magic)-1 {
				buf = buf[len(buf)-(len(magic)-1):]
			}
			if !fill() {
				return processed, nil
			}
			continue
		}
		buf = buf[start:]

		if len(buf) < recordHeaderLen {
			if !fill() {
				return processed, nil
			}
			continue
		}

		blockSize := binary.LittleEndian.Uint32(buf[4:recordHeaderLen])
		if blockSize > wire.MaxBlockPayload {
			// Corrupt record; skip this magic occurrence and rescan.
			log.Warnf("Skipping import record with absurd block size %d",
				blockSize)
			buf = buf[len(magic):]
			continue
		}

		recordLen := recordHeaderLen + int(blockSize)
		if len(buf) < recordLen {
			if !fill() {
				return processed, nil
			}
			continue
		}

		raw := buf[recordHeaderLen:recordLen]
		buf = buf[recordLen:]

		block := new(wire.MsgBlock)
		if err := block.Deserialize(bytes.NewReader(raw)); err != nil {
			log.Warnf("Skipping undecodable imported block: %v", err)
			continue
		}

		processed++
		if _, err := c.ProcessBlock(block); err != nil {
			if !isRuleError(err) {
				return processed, err
			}
			log.Debugf("Imported block rejected: %v", err)
		}

		if processed%10000 == 0 {
			log.Infof("Imported %d blocks, height %d", processed,
				c.Height())
		}
	}
}
