// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package plugin discovers command implementations at startup without the
// core being compiled against them.
//
// Plugins are Go main packages built with -buildmode=plugin and dropped
// into the plugin root as <name>.so. Each exports
//
//	func Commands() []any
//
// returning constructed command instances; discovery registers every value
// that implements command.Command under the plugin's own name. New
// capabilities ship as drop-in objects without recompiling the shell.
//
// Discovery degrades gracefully: a missing plugin root is a warning, a
// plugin that fails to load is logged and skipped, and the scan always
// completes for the remaining plugins.
package plugin
