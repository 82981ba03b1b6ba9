// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// shell.go - Interactive dispatch loop.
//
// Reads one key per line, resolves it against the command registry, and
// prints the outcome. The loop owns the process lifecycle: it exits on
// the "exit" sentinel, on end of input (Ctrl+D), or on prompt abort
// (Ctrl+C), always cleanly.

package shell

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/muesli/termenv"

	"github.com/jeranaias/plugsh/internal/command"
)

// Sentinel is the reserved input that terminates the shell. It is
// matched case-insensitively after whitespace trimming and takes
// precedence over any registered command with the same key.
const Sentinel = "exit"

// defaultPrompt is shown before each input line.
const defaultPrompt = "plugsh> "

// Recorder persists dispatch outcomes. history.Store satisfies it.
type Recorder interface {
	Record(key, status, output string, duration time.Duration) error
}

// =============================================================================
// SHELL
// =============================================================================

// Shell runs the interactive read-dispatch-print loop.
type Shell struct {
	reg    *command.Registry
	in     LineReader
	out    io.Writer
	log    *slog.Logger
	rec    Recorder
	styled bool
}

// New creates a Shell over the given registry and input source.
// Output styling follows the terminal's color profile: a terminal that
// only supports Ascii gets plain text. Override with WithStyling.
func New(reg *command.Registry, in LineReader, out io.Writer, log *slog.Logger) *Shell {
	return &Shell{
		reg:    reg,
		in:     in,
		out:    out,
		log:    log,
		styled: GetColorProfile() != termenv.Ascii,
	}
}

// WithRecorder sets a dispatch history recorder. Recording failures are
// logged, never fatal.
func (s *Shell) WithRecorder(rec Recorder) *Shell {
	s.rec = rec
	return s
}

// WithStyling overrides color detection for output styling.
func (s *Shell) WithStyling(enabled bool) *Shell {
	s.styled = enabled
	return s
}

// Run executes the dispatch loop until the sentinel is entered or input
// ends. It returns nil on every normal termination path; a non-nil
// error means the input source itself broke.
func (s *Shell) Run() error {
	defer s.log.Info("application shutdown")

	for {
		line, err := s.in.ReadLine(s.prompt())
		if err != nil {
			if errors.Is(err, ErrInterrupted) {
				s.log.Info("prompt interrupted, exiting")
				return nil
			}
			if errors.Is(err, io.EOF) {
				s.log.Info("end of input, exiting")
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		line = strings.TrimSpace(line)

		// Skip empty input
		if line == "" {
			continue
		}

		// Sentinel wins over any registered command named "exit".
		if strings.EqualFold(line, Sentinel) {
			s.log.Info("exit requested")
			return nil
		}

		start := time.Now()
		outcome := s.reg.Dispatch(line)
		s.print(outcome)
		s.record(outcome, time.Since(start))
	}
}

// prompt returns the input prompt, styled when colors are enabled.
func (s *Shell) prompt() string {
	if s.styled {
		return promptStyle.Render(defaultPrompt)
	}
	return defaultPrompt
}

// print writes the outcome text to the shell's output.
func (s *Shell) print(o command.Outcome) {
	text := o.String()
	if s.styled {
		switch o.Status {
		case command.StatusFailure:
			text = errorStyle.Render(text)
		case command.StatusNotFound:
			text = warningStyle.Render(text)
		}
	}
	fmt.Fprintln(s.out, text)
}

// record persists the outcome when a recorder is configured.
func (s *Shell) record(o command.Outcome, d time.Duration) {
	if s.rec == nil {
		return
	}
	if err := s.rec.Record(o.Key, o.Status.String(), o.String(), d); err != nil {
		s.log.Warn("failed to record dispatch", "key", o.Key, "error", err)
	}
}
