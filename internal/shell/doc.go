// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package shell implements the interactive dispatch loop.
//
// The shell reads one command key per line, dispatches it through a
// command.Registry, and prints the outcome. Input comes through the
// LineReader interface; the production reader wraps peterh/liner for
// line editing and persistent history.
//
// # Key Types
//
//   - Shell: the read-dispatch-print loop
//   - LineReader: input source abstraction
//   - Recorder: optional dispatch history sink
//
// # Lifecycle
//
// Run terminates cleanly on the "exit" sentinel (case-insensitive,
// whitespace-trimmed), on Ctrl+D, and on Ctrl+C. The sentinel is
// checked before registry lookup, so a plugin registered under "exit"
// can never shadow it. Empty input lines are skipped.
//
// # Usage
//
//	reg := command.NewRegistry(log)
//	in := shell.NewLinerReader(historyPath)
//	defer in.Close()
//	sh := shell.New(reg, in, os.Stdout, log)
//	err := sh.Run()
package shell
