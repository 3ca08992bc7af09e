// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2023-2024 The Ember developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/embercoin/emberd/blockchain"
	"github.com/embercoin/emberd/internal/mining"
	"github.com/embercoin/emberd/mempool"
)

// version is the application version string reported by --version.
const version = "0.2.0"

// emberdMain is the real main function for emberd.  It is necessary to work
// around the fact that deferred functions do not run when os.Exit() is
// called.
func emberdMain() error {
	// Load configuration and parse command line.
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cfg.ShowVersion {
		fmt.Printf("emberd version %s\n", version)
		return nil
	}

	// Initialize logging and setup deferred flushing to ensure all
	// outstanding messages are written on shutdown.
	initLogRotator(filepath.Join(cfg.LogDir, "emberd.log"))
	defer logRotator.Close()
	setLogLevels(cfg.DebugLevel)

	embdLog.Infof("Version %s", version)

	// Open the chain state over the five durable stores.
	txPool := mempool.New()
	chain, err := blockchain.New(&blockchain.Config{
		DataDir:  cfg.DataDir,
		Params:   activeNetParams.Params,
		TxPool:   txPool,
		ReadOnly: cfg.ReadOnly,
		FastMode: cfg.FastMode,
	})
	if err != nil {
		embdLog.Errorf("Failed to open chain state: %v", err)
		return err
	}
	defer func() {
		embdLog.Info("Gracefully shutting down the database...")
		if err := chain.Sync(); err != nil {
			embdLog.Errorf("Failed to sync chain state: %v", err)
		}
		chain.Close()
	}()

	tip := chain.TopHash()
	embdLog.Infof("Chain state loaded (height %d, tip %v)", chain.Height(),
		tip)

	// Bulk import mode: ingest the block data file and exit.
	if cfg.LoadFile != "" {
		processed, err := chain.ImportFile(cfg.LoadFile)
		if err != nil {
			embdLog.Errorf("Import failed after %d blocks: %v", processed,
				err)
			return err
		}
		embdLog.Infof("Imported %d blocks, new height %d", processed,
			chain.Height())
		return nil
	}

	// Without a block source there is nothing long-running to do; emit a
	// template so a caller driving emberd from scripts can see the chain
	// is assemblable, then return.
	if chain.Height() >= 0 && !cfg.ReadOnly {
		generator := mining.NewBlkTmplGenerator(chain, txPool,
			activeNetParams.Params)
		template, err := generator.NewBlockTemplate()
		if err != nil {
			embdLog.Errorf("Failed to assemble block template: %v", err)
			return err
		}
		embdLog.Infof("Template on tip %v carries %d transactions",
			template.Header.PrevBlock, len(template.Transactions))
	}

	return nil
}

func main() {
	if err := emberdMain(); err != nil {
		os.Exit(1)
	}
}
