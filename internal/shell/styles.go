// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// STYLES
// =============================================================================

// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
var (
	// Cyan - prompt and command highlights
	cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

	// Rose - errors and failed dispatches
	rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

	// Amber - warnings and unknown commands
	amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}
)

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(cyan).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(rose)

	warningStyle = lipgloss.NewStyle().
			Foreground(amber)
)
