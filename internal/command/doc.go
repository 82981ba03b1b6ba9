// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package command defines the plugin command capability and the registry
// that binds operation keys to command instances.
//
// # Key Types
//
//   - Command: the single-method capability plugins implement
//   - Registry: mutable key -> Command mapping with last-write-wins semantics
//   - Outcome: the value result of a dispatch (success, failure, not found)
//
// # Usage
//
// Register and dispatch:
//
//	reg := command.NewRegistry(logger)
//	reg.Register("greet", greetCmd)
//	out := reg.Dispatch("greet")
//	fmt.Println(out) // the command's text
//
// Dispatch never panics for missing keys or failing commands; both are
// reported as Outcome values and logged.
package command
