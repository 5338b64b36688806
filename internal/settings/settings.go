// Package settings remembers the last-used generation settings between runs.
package settings

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/mcncl/jsontodart/internal/config"
	"gopkg.in/yaml.v3"
)

const stateFile = "jsontodart/settings.yml"

// Store reads and writes the settings file.
type Store struct {
	path string
}

// NewStore returns a store under the XDG state directory.
func NewStore() (*Store, error) {
	path, err := xdg.StateFile(stateFile)
	if err != nil {
		return nil, fmt.Errorf("failed to locate settings file: %w", err)
	}
	return &Store{path: path}, nil
}

// NewStoreAt returns a store backed by an explicit path.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Path returns the settings file location.
func (s *Store) Path() string {
	return s.path
}

// Load returns the remembered settings, or nil when nothing has been saved yet.
func (s *Store) Load() (*config.Settings, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	var settings config.Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", s.path, err)
	}
	return &settings, nil
}

// Save replaces the remembered settings.
func (s *Store) Save(settings config.Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}
