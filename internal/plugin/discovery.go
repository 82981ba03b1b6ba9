// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package plugin

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeranaias/plugsh/internal/command"
)

// suffix of compiled plugin objects in the plugin root.
const objectSuffix = ".so"

// =============================================================================
// DESCRIPTOR
// =============================================================================

// Descriptor identifies one discovered plugin during a scan. It is
// transient: nothing retains it after discovery completes.
type Descriptor struct {
	// Root is the plugin root directory being scanned.
	Root string

	// Name is the plugin's own name: the object filename without the .so
	// suffix. It doubles as the operation key its commands register under.
	Name string
}

// Path returns the full path of the plugin object.
func (d Descriptor) Path() string {
	return filepath.Join(d.Root, d.Name+objectSuffix)
}

// =============================================================================
// SCANNER
// =============================================================================

// Scanner performs the one-shot discovery pass that populates the command
// registry at startup. A single bad plugin never aborts the scan for the
// others, and a missing plugin root leaves the registry empty rather than
// failing.
type Scanner struct {
	root   string
	loader Loader
	log    *slog.Logger
}

// NewScanner creates a scanner over the given plugin root.
func NewScanner(root string, log *slog.Logger) *Scanner {
	return &Scanner{
		root:   root,
		loader: SharedObjectLoader{},
		log:    log,
	}
}

// WithLoader replaces the plugin loader. Used by tests.
func (s *Scanner) WithLoader(l Loader) *Scanner {
	s.loader = l
	return s
}

// Discover scans the plugin root once, loading each plugin object it finds
// and registering the commands its entry point returns under the plugin's
// name. It returns the number of plugins that contributed at least one
// binding.
//
// A plugin returning several commands ends up with only the last bound,
// since every command in one plugin registers under the same key (the
// registry's overwrite semantics).
func (s *Scanner) Discover(reg *command.Registry) int {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("plugin directory not found, skipping discovery", "dir", s.root)
		} else {
			s.log.Warn("plugin directory unreadable, skipping discovery", "dir", s.root, "error", err)
		}
		return 0
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), objectSuffix) {
			continue
		}

		desc := Descriptor{
			Root: s.root,
			Name: strings.TrimSuffix(entry.Name(), objectSuffix),
		}

		if s.register(desc, reg) {
			loaded++
		}
	}
	return loaded
}

// register loads one plugin and binds its commands. Reports whether the
// plugin contributed at least one binding.
func (s *Scanner) register(desc Descriptor, reg *command.Registry) bool {
	values, err := s.loader.Load(desc.Path())
	if err != nil {
		s.log.Error("failed to load plugin", "plugin", desc.Name, "error", err)
		return false
	}

	bound := 0
	for _, v := range values {
		cmd, ok := v.(command.Command)
		if !ok {
			s.log.Warn("plugin exported a non-command value",
				"plugin", desc.Name, "type", fmt.Sprintf("%T", v))
			continue
		}
		reg.Register(desc.Name, cmd)
		bound++
	}

	if bound == 0 {
		s.log.Warn("plugin exported no commands", "plugin", desc.Name)
		return false
	}

	s.log.Info("command registered", "key", desc.Name, "plugin", desc.Name)
	return true
}
