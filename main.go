// plugsh - A pluggable command shell.
//
// Commands are discovered from shared-object plugins at startup,
// registered in a string-keyed registry, and dispatched interactively
// until the user types "exit".
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jeranaias/plugsh/internal/command"
	"github.com/jeranaias/plugsh/internal/config"
	"github.com/jeranaias/plugsh/internal/history"
	"github.com/jeranaias/plugsh/internal/logging"
	"github.com/jeranaias/plugsh/internal/plugin"
	"github.com/jeranaias/plugsh/internal/shell"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", config.DefaultPath, "path to config file")
	pluginsDir := flag.String("plugins", "", "override plugin directory")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("plugsh %s (%s)\n", Version, GitCommit)
		return 0
	}

	// Load configuration. A broken config file degrades to defaults so
	// the shell still comes up; the problem is reported once logging is
	// ready.
	cfg, cfgErr := config.LoadFromPath(*configPath)
	if cfg == nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cfgErr)
		return 1
	}
	if *pluginsDir != "" {
		cfg.Plugins.Dir = *pluginsDir
	}

	log, closeLog, err := logging.New(logging.Options{
		Level: cfg.Logging.Level,
		Dir:   cfg.Logging.Dir,
		File:  cfg.Logging.File,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	log.Info("logging configured", "level", cfg.Logging.Level)
	if cfgErr != nil {
		log.Warn("config file unusable, running with defaults",
			"path", *configPath, "error", cfgErr)
	}
	log.Info("environment variables loaded", "environment", cfg.Environment)

	// Discover plugin commands.
	reg := command.NewRegistry(log)
	scanner := plugin.NewScanner(cfg.Plugins.Dir, log)
	loaded := scanner.Discover(reg)
	log.Info("plugin discovery complete",
		"plugins", loaded, "commands", reg.Len(), "keys", reg.Keys())

	// Dispatch history is optional; failure to open it is not fatal.
	var rec shell.Recorder
	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			log.Warn("dispatch history disabled", "error", err)
		} else {
			defer store.Close()
			if n, err := store.Count(); err == nil {
				log.Info("dispatch history opened",
					"path", cfg.History.Path, "recorded", n)
			}
			rec = store
		}
	}

	log.Info("shell starting", "interactive", shell.IsTTY())

	in := shell.NewLinerReader(inputHistoryPath())
	defer in.Close()

	sh := shell.New(reg, in, os.Stdout, log)
	if rec != nil {
		sh.WithRecorder(rec)
	}
	if err := sh.Run(); err != nil {
		log.Error("shell terminated abnormally", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// inputHistoryPath places readline history under the user config dir,
// falling back to the temp dir when it is unavailable.
func inputHistoryPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "plugsh_input_history")
}
