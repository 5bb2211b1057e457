// Package storage persists translation history between sessions.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/mitchellh/go-homedir"
	gap "github.com/muesli/go-app-paths"

	"github.com/ganklab/gankspeak/pkg/slang"
)

const historyFile = "history.json"

// Local stores history as JSON in the platform data directory.
type Local struct {
	path string
}

// New creates a local store rooted at the user data directory for the
// app. An explicit dir overrides discovery.
func New(dir string) (*Local, error) {
	if dir == "" {
		scope := gap.NewScope(gap.User, "gankspeak")
		dirs, err := scope.DataDirs()
		if err == nil && len(dirs) > 0 {
			dir = dirs[0]
		} else {
			home, herr := homedir.Dir()
			if herr != nil {
				return nil, fmt.Errorf("locate data directory: %w", herr)
			}
			dir = filepath.Join(home, ".gankspeak")
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Local{path: filepath.Join(dir, historyFile)}, nil
}

// Path returns the history file location.
func (l *Local) Path() string { return l.path }

// Load reads the persisted history, newest first. A missing file is an
// empty history, not an error.
func (l *Local) Load() ([]slang.TranslationRecord, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history: %w", err)
	}
	var records []slang.TranslationRecord
	if err := json.Unmarshal(data, &records); err != nil {
		// A corrupt file should not brick the app. Start fresh.
		log.Warn("history file is corrupt, starting fresh", "path", l.path, "err", err)
		return nil, nil
	}
	return records, nil
}

// Save writes the full history atomically via a temp-file rename.
func (l *Local) Save(records []slang.TranslationRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	tmp := l.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	if err := os.Rename(tmp, l.path); err != nil {
		return fmt.Errorf("replace history: %w", err)
	}
	return nil
}

// Attach subscribes the store to history changes so every commit and
// clear is flushed to disk.
func (l *Local) Attach(h *slang.History) {
	flush := func() {
		if err := l.Save(h.Records()); err != nil {
			log.Error("could not persist history", "err", err)
		}
	}
	h.OnAdd(func(slang.TranslationRecord) { flush() })
	h.OnClear(flush)
}
