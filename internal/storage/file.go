package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileKV keeps each slot in its own JSON file under a directory. Writes go to
// a temporary file that is renamed over the slot, so a crash mid-write never
// leaves a truncated slot behind.
type FileKV struct {
	dir string
}

// NewFileKV creates dir if needed and returns a FileKV rooted there.
func NewFileKV(dir string) (*FileKV, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	return &FileKV{dir: dir}, nil
}

func (f *FileKV) path(key string) string {
	return filepath.Join(f.dir, fileSafe(key)+".json")
}

func (f *FileKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (f *FileKV) Set(_ context.Context, key string, value []byte) error {
	tmp, err := os.CreateTemp(f.dir, fileSafe(key)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path(key))
}

func (f *FileKV) Delete(_ context.Context, key string) error {
	err := os.Remove(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (f *FileKV) Ping(_ context.Context) error {
	_, err := os.Stat(f.dir)
	return err
}

func (f *FileKV) Close() error { return nil }
