// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package command

import "fmt"

// =============================================================================
// COMMAND CAPABILITY
// =============================================================================

// Command is the capability contract every plugin-provided operation must
// satisfy: a single no-argument invocation producing a textual result or an
// error describing what went wrong inside the plugin's own logic.
//
// The core never constructs Commands. It discovers them at startup and
// invokes them through this interface; any side effects are internal to the
// implementation.
type Command interface {
	Execute() (string, error)
}

// Func adapts a plain function to the Command interface.
type Func func() (string, error)

// Execute invokes the wrapped function.
func (f Func) Execute() (string, error) { return f() }

// =============================================================================
// DISPATCH OUTCOME
// =============================================================================

// Status classifies the result of a dispatch.
type Status int

const (
	// StatusSuccess means the bound command ran and returned text.
	StatusSuccess Status = iota
	// StatusFailure means the bound command ran and returned an error.
	StatusFailure
	// StatusNotFound means no command is bound to the requested key.
	StatusNotFound
)

// String returns the status name for logs.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	case StatusNotFound:
		return "not_found"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Outcome is the value returned by Registry.Dispatch. It is always a value,
// never a panic: lookup misses and command failures are reported here so an
// interactive session survives them.
type Outcome struct {
	// Status classifies the outcome.
	Status Status

	// Key is the operation key that was dispatched.
	Key string

	// Text is the command's returned text. Set only on success.
	Text string

	// Reason describes the failure. Set only on failure.
	Reason string
}

// String renders the printable text for the outcome: the command's own text
// on success, a descriptive message otherwise.
func (o Outcome) String() string {
	switch o.Status {
	case StatusSuccess:
		return o.Text
	case StatusNotFound:
		return "no such command: " + o.Key
	default:
		return "command failed: " + o.Reason
	}
}
