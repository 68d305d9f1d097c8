package store

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/pders01/gitcontext/internal/gcerrors"
	"github.com/pders01/gitcontext/internal/models"
)

// LoadIndex reads and validates index.yaml. The index is never cached:
// every engine invocation sees the current on-disk state.
func (s *Store) LoadIndex() (*models.Index, error) {
	if !s.Exists() {
		return nil, fmt.Errorf("load index %s: %w", s.indexPath(), gcerrors.ErrNotInitialized)
	}

	data, err := afero.ReadFile(s.fs, s.indexPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("load index %s: %w", s.indexPath(), gcerrors.ErrNotInitialized)
		}
		return nil, fmt.Errorf("load index %s: %w: %w", s.indexPath(), gcerrors.ErrIOFailure, err)
	}

	var idx models.Index
	if err := yaml.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("parse index %s: %w: %w", s.indexPath(), gcerrors.ErrCorruptIndex, err)
	}
	if err := idx.Validate(); err != nil {
		return nil, fmt.Errorf("validate index %s: %w: %w", s.indexPath(), gcerrors.ErrCorruptIndex, err)
	}
	return &idx, nil
}

// SaveIndex validates the index and writes it atomically. An index that
// fails validation is refused so a corrupt in-memory state can never
// reach disk.
func (s *Store) SaveIndex(idx *models.Index) error {
	if err := idx.Validate(); err != nil {
		return fmt.Errorf("save index: %w: %w", gcerrors.ErrCorruptIndex, err)
	}
	data, err := yaml.Marshal(idx)
	if err != nil {
		return fmt.Errorf("encode index: %w: %w", gcerrors.ErrIOFailure, err)
	}
	return s.writeFileAtomic(s.indexPath(), data)
}
