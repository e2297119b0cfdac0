package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File persists one snapshot document as a JSON file. Before each overwrite
// the previous document is copied to a sibling backup file. The backup and
// the overwrite are two separate writes, not one atomic step; a crash in
// between can leave the pair inconsistent, which is accepted at this scale.
type File[S any] struct {
	path   string
	backup string
}

// NewFile builds a file store for the given path. The backup sits next to
// the data file with a _backup suffix, matching the layout tooling expects.
func NewFile[S any](path string) *File[S] {
	ext := filepath.Ext(path)
	return &File[S]{
		path:   path,
		backup: path[:len(path)-len(ext)] + "_backup" + ext,
	}
}

func (f *File[S]) Load(ctx context.Context) (S, bool, error) {
	var snap S
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return snap, false, nil
	}
	if err != nil {
		return snap, false, fmt.Errorf("read snapshot %s: %w", f.path, err)
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, false, fmt.Errorf("decode snapshot %s: %w", f.path, err)
	}
	return snap, true, nil
}

func (f *File[S]) Save(ctx context.Context, snap S) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}
	if prev, err := os.ReadFile(f.path); err == nil {
		if err := os.WriteFile(f.backup, prev, 0o644); err != nil {
			return fmt.Errorf("write backup %s: %w", f.backup, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read previous snapshot %s: %w", f.path, err)
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", f.path, err)
	}
	return nil
}
