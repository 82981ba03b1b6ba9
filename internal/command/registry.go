// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package command

import (
	"log/slog"
	"sort"
)

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry maps operation keys to bound commands. It is populated once
// during plugin discovery and read-only afterwards; there is no concurrent
// access and therefore no locking (the dispatch loop is single-threaded).
type Registry struct {
	commands map[string]Command
	log      *slog.Logger
}

// NewRegistry creates an empty registry. The logger receives the error and
// warning events that Dispatch reports alongside its return value.
func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{
		commands: make(map[string]Command),
		log:      log,
	}
}

// Register binds cmd to key, silently replacing any prior binding under the
// same key. Keys are not constrained: the empty string is accepted, though
// the dispatch loop never produces it.
func (r *Registry) Register(key string, cmd Command) {
	r.commands[key] = cmd
}

// Dispatch looks up key and invokes the bound command. Lookup misses and
// command failures are logged and returned as Outcome values; neither ends
// the process. Calling Dispatch on an uninitialized Registry is a
// programming error and panics.
func (r *Registry) Dispatch(key string) Outcome {
	if r.commands == nil {
		panic("command: Dispatch called on uninitialized Registry")
	}

	cmd, ok := r.commands[key]
	if !ok {
		r.log.Error("no such command", "key", key)
		return Outcome{Status: StatusNotFound, Key: key}
	}

	text, err := cmd.Execute()
	if err != nil {
		r.log.Warn("command failed", "key", key, "error", err)
		return Outcome{Status: StatusFailure, Key: key, Reason: err.Error()}
	}
	return Outcome{Status: StatusSuccess, Key: key, Text: text}
}

// Len returns the number of bindings.
func (r *Registry) Len() int {
	return len(r.commands)
}

// Keys returns the bound operation keys in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.commands))
	for k := range r.commands {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
