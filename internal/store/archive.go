package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/pders01/gitcontext/internal/gcerrors"
)

// ArchiveBranch moves a branch's context directory into the archive
// area and returns the archive path. Nothing is erased: a deleted
// branch's history stays browsable. If the branch name was archived
// before, a timestamp suffix keeps the runs apart.
func (s *Store) ArchiveBranch(branch string, now time.Time) (string, error) {
	dst := filepath.Join(s.archiveDir(), branch)
	if ok, err := afero.DirExists(s.fs, dst); err == nil && ok {
		dst = filepath.Join(s.archiveDir(), branch+"_"+now.UTC().Format("20060102_150405"))
	}

	src := s.branchDir(branch)
	if ok, err := afero.DirExists(s.fs, src); err != nil || !ok {
		// Branch never got a directory (no commits); archive stays empty.
		if err := s.fs.MkdirAll(dst, 0o755); err != nil {
			return "", fmt.Errorf("archive branch %s: %w: %w", branch, gcerrors.ErrIOFailure, err)
		}
		return dst, nil
	}

	if err := s.copyTree(src, dst); err != nil {
		return "", fmt.Errorf("archive branch %s: %w", branch, err)
	}
	if err := s.fs.RemoveAll(src); err != nil {
		return "", fmt.Errorf("archive branch %s: remove %s: %w: %w", branch, src, gcerrors.ErrIOFailure, err)
	}
	return dst, nil
}

// ArchiveManifest describes one archived branch.
type ArchiveManifest struct {
	Branch     string    `json:"branch"`
	ArchivedAt time.Time `json:"archived_at"`
	Parent     string    `json:"parent,omitempty"`
	Commits    []string  `json:"commits"`
}

// WriteArchiveManifest records what was archived and when, next to the
// moved history.
func (s *Store) WriteArchiveManifest(archivePath string, manifest ArchiveManifest) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("encode archive manifest: %w: %w", gcerrors.ErrIOFailure, err)
	}
	return s.writeFileAtomic(filepath.Join(archivePath, "branch_archive.json"), data)
}

// copyTree recursively copies src into dst. Used instead of a rename
// because in-memory filesystems do not move directories reliably.
func (s *Store) copyTree(src, dst string) error {
	return afero.Walk(s.fs, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w: %w", path, gcerrors.ErrIOFailure, err)
		}
		rel := strings.TrimPrefix(path, src)
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			if err := s.fs.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("create %s: %w: %w", target, gcerrors.ErrIOFailure, err)
			}
			return nil
		}
		data, err := afero.ReadFile(s.fs, path)
		if err != nil {
			return fmt.Errorf("read %s: %w: %w", path, gcerrors.ErrIOFailure, err)
		}
		if err := afero.WriteFile(s.fs, target, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w: %w", target, gcerrors.ErrIOFailure, err)
		}
		return nil
	})
}
