// Package snapshot persists the last delivered set of active records.
package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ukaji3/regwatch-go/pkg/regwatch/models"
	"github.com/ukaji3/regwatch-go/pkg/regwatch/output"
)

// ErrCorrupt indicates a snapshot file that exists but cannot be decoded.
// It wraps output.ErrSerialization.
var ErrCorrupt = fmt.Errorf("corrupt snapshot: %w", output.ErrSerialization)

// Store loads and saves the previous record set.
type Store interface {
	// Load returns the stored records. The boolean is false when no
	// snapshot has been written yet.
	Load() ([]models.Purchase, bool, error)
	// Save replaces the stored records.
	Save(records []models.Purchase) error
	// Remove deletes the snapshot. Removing a missing snapshot is not an error.
	Remove() error
}

// File stores the snapshot as a JSON array in a single file.
type File struct {
	Path string
}

// NewFile returns a file store at path.
func NewFile(path string) *File {
	return &File{Path: path}
}

// Load reads the snapshot file.
func (s *File) Load() ([]models.Purchase, bool, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}

	records, err := output.FromJSON(data)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.Path, err)
	}
	return records, true, nil
}

// Save writes records to a temporary file next to Path and renames it into
// place, creating parent directories as needed.
func (s *File) Save(records []models.Purchase) error {
	data, err := output.RecordsToJSON(records, false)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.Path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.Path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// Remove deletes the snapshot file.
func (s *File) Remove() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
