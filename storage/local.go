package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalFileUploader writes artifacts below a directory on disk. Writes go to a
// temp file first and are renamed into place.
type LocalFileUploader struct {
	dir string
}

func NewLocalFileUploader(dir string) *LocalFileUploader {
	if dir == "" {
		dir = "."
	}
	return &LocalFileUploader{dir: dir}
}

func (u *LocalFileUploader) path(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if clean == "/" || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(u.dir, clean), nil
}

func (u *LocalFileUploader) Upload(ctx context.Context, key string, _ string, reader io.Reader) (*UploadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	target, err := u.path(key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory for %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file for %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return nil, fmt.Errorf("failed to move %s into place: %w", key, err)
	}
	return &UploadResult{Key: key, Location: target}, nil
}

func (u *LocalFileUploader) Delete(ctx context.Context, key string) error {
	target, err := u.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (u *LocalFileUploader) GetPublicURL(key string) string {
	target, err := u.path(key)
	if err != nil {
		return ""
	}
	return target
}
