// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// input.go - Line input for the interactive shell.
//
// Wraps peterh/liner to provide readline-like input with history
// navigation. The reader is behind the LineReader interface so the
// dispatch loop can be driven from a scripted source in tests.

package shell

import (
	"bytes"
	"errors"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/plugsh/internal/util"
)

// ErrInterrupted is returned by a LineReader when the user aborts the
// prompt (Ctrl+C). The shell treats it like end of input.
var ErrInterrupted = errors.New("prompt interrupted")

// LineReader supplies input lines to the dispatch loop.
// ReadLine returns io.EOF when input is exhausted (Ctrl+D) and
// ErrInterrupted when the user aborts the prompt.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// =============================================================================
// LINER READER
// =============================================================================

// linerReader provides input history and line editing for the shell.
type linerReader struct {
	line        *liner.State
	historyFile string
}

// NewLinerReader creates a LineReader backed by peterh/liner with
// history persisted to historyFile. An empty historyFile disables
// persistence.
func NewLinerReader(historyFile string) LineReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	r := &linerReader{
		line:        line,
		historyFile: historyFile,
	}
	r.loadHistory()
	return r
}

// loadHistory loads input history from file.
func (r *linerReader) loadHistory() {
	if r.historyFile == "" {
		return
	}
	if f, err := os.Open(r.historyFile); err == nil {
		r.line.ReadHistory(f)
		f.Close()
	}
}

// ReadLine reads a line of input with the given prompt.
// Supports history navigation with arrow keys.
func (r *linerReader) ReadLine(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", ErrInterrupted
		}
		return "", err
	}

	// Add non-empty input to history
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}

	return input, nil
}

// Close saves history and closes the liner.
func (r *linerReader) Close() error {
	defer r.line.Close()

	if r.historyFile == "" {
		return nil
	}

	var buf bytes.Buffer
	if _, err := r.line.WriteHistory(&buf); err != nil {
		return err
	}
	// 0600 so the input history stays owner-readable only.
	return util.AtomicWriteFile(r.historyFile, buf.Bytes(), 0600)
}
