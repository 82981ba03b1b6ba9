// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures the process-wide log sink for plugsh.
//
// The sink is chosen from configuration: when a log file is configured the
// log directory is created and entries go there, otherwise entries go to
// stderr. The resulting *slog.Logger is passed explicitly into every
// component that logs; nothing in the repository logs through package-level
// state.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options selects the sink and minimum severity for a logger.
type Options struct {
	// Level is the minimum severity: "debug", "info", "warn", "error".
	// Empty defaults to "info".
	Level string

	// Dir is the directory for log files. Created on demand when File is
	// set. Empty defaults to "logs".
	Dir string

	// File is the log file name inside Dir. Empty selects the console
	// (stderr) sink instead.
	File string
}

// ParseLevel maps a level name to a slog.Level. Unknown names fall back to
// info so a typo in config degrades to louder logging rather than silence.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// =============================================================================
// CONSTRUCTION
// =============================================================================

// New builds a logger from opts. The returned close function flushes and
// closes the file sink; it is a no-op for the console sink.
func New(opts Options) (*slog.Logger, func() error, error) {
	var w io.Writer = os.Stderr
	closeFn := func() error { return nil }

	if opts.File != "" {
		dir := opts.Dir
		if dir == "" {
			dir = "logs"
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
		}

		path := filepath.Join(dir, opts.File)
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file %s: %w", path, err)
		}
		w = f
		closeFn = f.Close
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(opts.Level),
	})
	return slog.New(handler), closeFn, nil
}

// Discard returns a logger that drops everything. Used by tests and as a
// safe default for components constructed without a logger.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
