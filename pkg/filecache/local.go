package filecache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalStorage stores objects as files below a base directory.
// All operations are confined to baseDir.
type LocalStorage struct {
	baseDir  string
	fileMode fs.FileMode
}

// LocalOption configures LocalStorage.
type LocalOption func(*LocalStorage)

// WithFileMode sets the permissions of written files. Default is 0o600.
func WithFileMode(mode fs.FileMode) LocalOption {
	return func(s *LocalStorage) { s.fileMode = mode }
}

// NewLocalStorage creates the storage, creating baseDir if needed.
func NewLocalStorage(baseDir string, opts ...LocalOption) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("%w: empty base directory", ErrInvalidConfig)
	}

	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve base directory: %v", ErrInvalidConfig, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToWrite, err)
	}

	s := &LocalStorage{baseDir: abs, fileMode: 0o600}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Dir returns the absolute base directory.
func (s *LocalStorage) Dir() string {
	return s.baseDir
}

func (s *LocalStorage) path(key string) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.baseDir, filepath.FromSlash(key)), nil
}

func (s *LocalStorage) Read(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToStat, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrNotFound, key)
	}

	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToRead, err)
	}
	return data, nil
}

// Write replaces the file atomically: data goes to a temporary file in the
// same directory which is then renamed over the target.
func (s *LocalStorage) Write(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(key)
	if err != nil {
		return err
	}

	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToWrite, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToWrite, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %v", ErrFailedToWrite, err)
	}
	if err := tmp.Chmod(s.fileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %v", ErrFailedToWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToWrite, err)
	}
	if err := os.Rename(tmpName, p); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToWrite, err)
	}
	return nil
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", ErrFailedToDelete, err)
	}
	return nil
}

func (s *LocalStorage) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	p, err := s.path(key)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrFailedToStat, err)
	}
	return info.Mode().IsRegular(), nil
}
