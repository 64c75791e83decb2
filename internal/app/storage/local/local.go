// Package local stores audio blobs as plain files under one directory.
package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Storage keeps every blob as <baseDir>/<id>.<ext>.
type Storage struct {
	baseDir string
}

func New(baseDir string) (*Storage, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory %s: %w", baseDir, err)
	}
	return &Storage{baseDir: baseDir}, nil
}

func (s *Storage) Save(ctx context.Context, r io.Reader, id, filename string) (string, error) {
	path := filepath.Join(s.baseDir, id+extension(filename))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func (s *Storage) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

// LocalPath is the identity for disk storage.
func (s *Storage) LocalPath(ctx context.Context, path string) (string, func(), error) {
	if _, err := os.Stat(path); err != nil {
		return "", func() {}, fmt.Errorf("stat %s: %w", path, err)
	}
	return path, func() {}, nil
}

func (s *Storage) Delete(ctx context.Context, path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

func (s *Storage) Exists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// extension keeps the original suffix so ffmpeg and whisper can sniff the
// container, falling back to .bin for nameless uploads.
func extension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || len(ext) > 8 {
		return ".bin"
	}
	return ext
}
