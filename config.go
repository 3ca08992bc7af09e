// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2023-2024 The Ember developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"
)

const (
	defaultConfigFilename = "emberd.conf"
	defaultLogDirname     = "logs"
	defaultLogLevel       = "info"
	defaultDataDirname    = "data"
)

// config defines the configuration options for emberd.
//
// See loadConfig for details on the configuration load process.
type config struct {
	ShowVersion bool   `short:"V" long:"version" description:"Display version information and exit"`
	AppDataDir  string `short:"A" long:"appdata" description:"Path to application home directory"`
	DataDir     string `short:"b" long:"datadir" description:"Directory to store data"`
	LogDir      string `long:"logdir" description:"Directory to log output"`
	TestNet     bool   `long:"testnet" description:"Use the test network"`
	SimNet      bool   `long:"simnet" description:"Use the simulation test network"`
	DebugLevel  string `short:"d" long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical}"`
	LoadFile    string `long:"loadfile" description:"Bulk import blocks from the given block data file and exit"`
	FastMode    bool   `long:"fastmode" description:"Skip per-write fsyncs and flush stores every 10000 blocks during bulk import"`
	ReadOnly    bool   `long:"readonly" description:"Open the block database read-only"`
}

// defaultAppDataDir returns the default application home directory for the
// running user.
func defaultAppDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".emberd")
}

// loadConfig initializes and parses the config using command line options.
//
// The configuration proceeds as follows:
//	1) Start with a default config with sane settings
//	2) Parse CLI options and overwrite/add any specified options
//
// The above results in emberd functioning properly without any config
// settings while still allowing the user to override settings with command
// line options.  No configuration file is read.
func loadConfig() (*config, error) {
	cfg := config{
		AppDataDir: defaultAppDataDir(),
		DebugLevel: defaultLogLevel,
	}

	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return nil, err
	}

	// Multiple networks can't be selected simultaneously.
	numNets := 0
	if cfg.TestNet {
		numNets++
		activeNetParams = &testNetParams
	}
	if cfg.SimNet {
		numNets++
		activeNetParams = &simNetParams
	}
	if numNets > 1 {
		return nil, fmt.Errorf("the testnet and simnet params can't be " +
			"used together -- choose one of the two")
	}

	// All data is network specific so namespace the data and log
	// directories by network name.
	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Join(cfg.AppDataDir, defaultDataDirname)
	}
	cfg.DataDir = filepath.Join(cfg.DataDir, netName(activeNetParams))
	if cfg.LogDir == "" {
		cfg.LogDir = filepath.Join(cfg.AppDataDir, defaultLogDirname)
	}
	cfg.LogDir = filepath.Join(cfg.LogDir, netName(activeNetParams))

	// Validate the debug level.
	if !validLogLevel(cfg.DebugLevel) {
		return nil, fmt.Errorf("the specified debug level [%v] is invalid",
			cfg.DebugLevel)
	}

	return &cfg, nil
}
