package registry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/leffw/torch-cli/internal/model"
	"gopkg.in/yaml.v3"
)

// Store loads and persists the whole fleet document at once.
type Store interface {
	Load() (*model.Fleet, error)
	Persist(fleet *model.Fleet) error
}

// FileStore keeps the fleet as a compose YAML file.
type FileStore struct {
	Path string
}

// Load reads the fleet document. When the file does not exist, the
// returned error wraps os.ErrNotExist.
func (s FileStore) Load() (*model.Fleet, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading fleet document: %w", err)
	}

	fleet := model.NewFleet("")
	if err := yaml.Unmarshal(data, fleet); err != nil {
		return nil, fmt.Errorf("parsing fleet document %s: %w", s.Path, err)
	}
	return fleet, nil
}

// Persist replaces the fleet document. The new content is written to a
// temporary file in the same directory and renamed over the old one, so a
// reader sees either the previous or the new document.
func (s FileStore) Persist(fleet *model.Fleet) error {
	data, err := yaml.Marshal(fleet)
	if err != nil {
		return fmt.Errorf("marshaling fleet document: %w", err)
	}
	return WriteFileAtomic(s.Path, data, 0644)
}

// WriteFileAtomic writes data to path through a temporary file and rename.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	temporaryPath := path + ".tmp"

	file, err := os.OpenFile(temporaryPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}

	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("writing temporary file: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("syncing temporary file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("closing temporary file: %w", err)
	}

	if err := os.Rename(temporaryPath, path); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("renaming %s into place: %w", filepath.Base(path), err)
	}

	parentDirectory, err := os.Open(filepath.Dir(path))
	if err == nil {
		parentDirectory.Sync()
		parentDirectory.Close()
	}

	return nil
}
