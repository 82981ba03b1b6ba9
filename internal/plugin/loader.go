// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package plugin

import (
	"fmt"
	"plugin"
)

// =============================================================================
// PLUGIN CONTRACT
// =============================================================================

// EntryPoint is the exported symbol every plugin object must provide:
//
//	func Commands() []any
//
// returning constructed values, each of which should implement
// command.Command. The explicit entry point replaces member introspection;
// a plugin that wants to expose an operation returns it from here.
const EntryPoint = "Commands"

// Loader loads one plugin object and returns the values its entry point
// produced. The production implementation opens Go shared objects; tests
// substitute fakes.
type Loader interface {
	Load(path string) ([]any, error)
}

// =============================================================================
// SHARED OBJECT LOADER
// =============================================================================

// SharedObjectLoader loads plugins compiled with -buildmode=plugin.
type SharedObjectLoader struct{}

// Load opens the shared object at path, resolves the entry point and calls
// it. All failure modes (corrupt object, missing symbol, wrong signature)
// are returned as errors for the scanner to report.
func (SharedObjectLoader) Load(path string) ([]any, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open plugin: %w", err)
	}

	sym, err := p.Lookup(EntryPoint)
	if err != nil {
		return nil, fmt.Errorf("plugin does not export %q: %w", EntryPoint, err)
	}

	entry, ok := sym.(func() []any)
	if !ok {
		return nil, fmt.Errorf("symbol %q has type %T, want func() []any", EntryPoint, sym)
	}

	return entry(), nil
}
