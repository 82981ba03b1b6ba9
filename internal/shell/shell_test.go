// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/plugsh/internal/command"
	"github.com/jeranaias/plugsh/internal/logging"
)

// scriptReader feeds a fixed sequence of lines, then finalErr.
type scriptReader struct {
	lines    []string
	finalErr error
	pos      int
	closed   bool
}

func (r *scriptReader) ReadLine(prompt string) (string, error) {
	if r.pos >= len(r.lines) {
		if r.finalErr != nil {
			return "", r.finalErr
		}
		return "", io.EOF
	}
	line := r.lines[r.pos]
	r.pos++
	return line, nil
}

func (r *scriptReader) Close() error {
	r.closed = true
	return nil
}

// recordingSink captures Record calls.
type recordingSink struct {
	keys     []string
	statuses []string
	err      error
}

func (r *recordingSink) Record(key, status, output string, duration time.Duration) error {
	r.keys = append(r.keys, key)
	r.statuses = append(r.statuses, status)
	return r.err
}

func newTestShell(t *testing.T, lines []string, cmds map[string]command.Command) (*Shell, *bytes.Buffer, *scriptReader) {
	t.Helper()
	reg := command.NewRegistry(logging.Discard())
	for key, cmd := range cmds {
		reg.Register(key, cmd)
	}
	in := &scriptReader{lines: lines}
	var out bytes.Buffer
	sh := New(reg, in, &out, logging.Discard()).WithStyling(false)
	return sh, &out, in
}

func textCmd(text string) command.Command {
	return command.Func(func() (string, error) { return text, nil })
}

func TestShell_DispatchSession(t *testing.T) {
	sh, out, _ := newTestShell(t,
		[]string{"greet", "unknown_key", "exit", "greet"},
		map[string]command.Command{"greet": textCmd("hello")})

	if err := sh.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	got := out.String()
	want := "hello\nno such command: unknown_key\n"
	if got != want {
		t.Errorf("session output = %q, want %q", got, want)
	}
}

func TestShell_SentinelCaseInsensitiveAndTrimmed(t *testing.T) {
	sh, out, in := newTestShell(t,
		[]string{"  ExIt  ", "greet"},
		map[string]command.Command{"greet": textCmd("hello")})

	if err := sh.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
	if in.pos != 1 {
		t.Errorf("read %d lines, want 1", in.pos)
	}
}

func TestShell_SentinelBeatsRegisteredCommand(t *testing.T) {
	invoked := false
	sh, out, _ := newTestShell(t,
		[]string{"exit"},
		map[string]command.Command{"exit": command.Func(func() (string, error) {
			invoked = true
			return "should not run", nil
		})})

	if err := sh.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if invoked {
		t.Error("registered exit command was invoked; sentinel must win")
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}

func TestShell_SkipsEmptyInput(t *testing.T) {
	sh, out, _ := newTestShell(t,
		[]string{"", "   ", "\t", "greet", "exit"},
		map[string]command.Command{"greet": textCmd("hello")})

	if err := sh.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := out.String(); got != "hello\n" {
		t.Errorf("output = %q, want %q", got, "hello\n")
	}
}

func TestShell_EOFExitsCleanly(t *testing.T) {
	sh, _, _ := newTestShell(t, []string{"greet"},
		map[string]command.Command{"greet": textCmd("hello")})

	if err := sh.Run(); err != nil {
		t.Fatalf("Run should return nil on EOF, got %v", err)
	}
}

func TestShell_InterruptExitsCleanly(t *testing.T) {
	reg := command.NewRegistry(logging.Discard())
	in := &scriptReader{finalErr: ErrInterrupted}
	sh := New(reg, in, io.Discard, logging.Discard()).WithStyling(false)

	if err := sh.Run(); err != nil {
		t.Fatalf("Run should return nil on interrupt, got %v", err)
	}
}

func TestShell_ReaderErrorPropagates(t *testing.T) {
	reg := command.NewRegistry(logging.Discard())
	readErr := errors.New("terminal vanished")
	in := &scriptReader{finalErr: readErr}
	sh := New(reg, in, io.Discard, logging.Discard()).WithStyling(false)

	err := sh.Run()
	if err == nil || !errors.Is(err, readErr) {
		t.Fatalf("expected wrapped reader error, got %v", err)
	}
}

func TestShell_FailedCommandPrintsReasonAndContinues(t *testing.T) {
	sh, out, _ := newTestShell(t,
		[]string{"boom", "greet", "exit"},
		map[string]command.Command{
			"boom":  command.Func(func() (string, error) { return "", errors.New("disk on fire") }),
			"greet": textCmd("hello"),
		})

	if err := sh.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 output lines, got %d: %q", len(lines), out.String())
	}
	if lines[0] != "command failed: disk on fire" {
		t.Errorf("failure line = %q", lines[0])
	}
	if lines[1] != "hello" {
		t.Errorf("recovery line = %q", lines[1])
	}
}

func TestShell_RecordsDispatches(t *testing.T) {
	sink := &recordingSink{}
	sh, _, _ := newTestShell(t,
		[]string{"greet", "missing", "exit"},
		map[string]command.Command{"greet": textCmd("hello")})
	sh.WithRecorder(sink)

	if err := sh.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(sink.keys) != 2 {
		t.Fatalf("recorded %d dispatches, want 2", len(sink.keys))
	}
	if sink.keys[0] != "greet" || sink.statuses[0] != "success" {
		t.Errorf("first record = %s/%s", sink.keys[0], sink.statuses[0])
	}
	if sink.keys[1] != "missing" || sink.statuses[1] != "not_found" {
		t.Errorf("second record = %s/%s", sink.keys[1], sink.statuses[1])
	}
}

func TestShell_RecorderFailureIsNotFatal(t *testing.T) {
	sink := &recordingSink{err: errors.New("database locked")}
	sh, out, _ := newTestShell(t,
		[]string{"greet", "exit"},
		map[string]command.Command{"greet": textCmd("hello")})
	sh.WithRecorder(sink)

	if err := sh.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := out.String(); got != "hello\n" {
		t.Errorf("output = %q, want %q", got, "hello\n")
	}
}
