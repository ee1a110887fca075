// Package storage stores uploaded receipt files and yields the download
// URLs persisted on bills.
package storage

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ReceiptStorage is the file-storage half of the document store contract:
// put a file under a path, get back a download URL.
type ReceiptStorage interface {
	// Put writes content under the given storage path and returns the URL
	// the file can be downloaded from.
	Put(ctx context.Context, path string, content []byte) (string, error)

	// Open resolves a storage path back to the local file for serving.
	Open(path string) (string, error)
}

// LocalReceiptStorage implements ReceiptStorage on the local filesystem.
// Download URLs are paths under baseURL, served by the HTTP layer.
type LocalReceiptStorage struct {
	baseDir string
	baseURL string
	logger  *zap.Logger
}

// NewLocalReceiptStorage creates a LocalReceiptStorage rooted at baseDir.
func NewLocalReceiptStorage(baseDir, baseURL string, logger *zap.Logger) *LocalReceiptStorage {
	return &LocalReceiptStorage{
		baseDir: baseDir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger,
	}
}

// Put writes content under path and returns its download URL. Parent
// directories are created as needed.
func (s *LocalReceiptStorage) Put(ctx context.Context, path string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fullPath, err := s.resolve(path)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		s.logger.Error("Failed to create receipt directory",
			zap.String("path", fullPath),
			zap.Error(err))
		return "", fmt.Errorf("failed to create directories: %w", err)
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		s.logger.Error("Failed to write receipt file",
			zap.String("path", fullPath),
			zap.Error(err))
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	s.logger.Debug("Receipt stored",
		zap.String("path", path),
		zap.Int("size", len(content)))

	return s.downloadURL(path), nil
}

// Open resolves a storage path to the local file, validating it stays
// inside the base directory.
func (s *LocalReceiptStorage) Open(path string) (string, error) {
	fullPath, err := s.resolve(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(fullPath); err != nil {
		return "", fmt.Errorf("receipt not found: %w", err)
	}
	return fullPath, nil
}

// resolve maps a storage path to an absolute local path, rejecting any
// path that escapes the base directory.
func (s *LocalReceiptStorage) resolve(path string) (string, error) {
	absBase, err := filepath.Abs(s.baseDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve base path: %w", err)
	}

	absPath, err := filepath.Abs(filepath.Join(absBase, filepath.FromSlash(path)))
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) && absPath != absBase {
		return "", fmt.Errorf("path escapes base directory: %s", path)
	}

	return absPath, nil
}

func (s *LocalReceiptStorage) downloadURL(path string) string {
	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return s.baseURL + "/" + strings.Join(segments, "/")
}

// ReceiptPath builds the storage path for a user's receipt, scoped to the
// owner's email and the original file name.
func ReceiptPath(email, fileName string) string {
	return fmt.Sprintf("%s/%s", email, filepath.Base(fileName))
}
