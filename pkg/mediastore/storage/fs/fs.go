package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/contentadmin/mediastore/pkg/mediastore"
)

// Store is a filesystem implementation of the mediastore.AssetStore
// interface. Namespaces map to subdirectories of the base directory.
type Store struct {
	baseDir     string
	storageRoot string
}

// Config options for the filesystem store
type Config struct {
	BaseDir     string // Base directory for stored files
	StorageRoot string // URL path segment between base address and namespace
}

// New creates a new filesystem asset store
func New(config Config) (*Store, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}
	if config.StorageRoot == "" {
		config.StorageRoot = "media"
	}

	if err := os.MkdirAll(config.BaseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &Store{
		baseDir:     config.BaseDir,
		storageRoot: config.StorageRoot,
	}, nil
}

// EnsureNamespace guarantees the namespace directory exists. MkdirAll is
// already idempotent, so repeated calls are safe.
func (s *Store) EnsureNamespace(ctx context.Context, namespace string) error {
	if err := os.MkdirAll(filepath.Join(s.baseDir, namespace), 0755); err != nil {
		return &mediastore.StorageError{
			Namespace: namespace,
			Op:        "ensure_namespace",
			Err:       err,
		}
	}
	return nil
}

// Save writes one file's bytes under the namespace directory.
func (s *Store) Save(ctx context.Context, namespace, filename string, r io.Reader) error {
	path := filepath.Join(s.baseDir, namespace, filename)

	file, err := os.Create(path)
	if err != nil {
		return &mediastore.StorageError{
			Namespace: namespace,
			Filename:  filename,
			Op:        "save",
			Err:       err,
		}
	}
	defer file.Close()

	if _, err := io.Copy(file, r); err != nil {
		return &mediastore.StorageError{
			Namespace: namespace,
			Filename:  filename,
			Op:        "save",
			Err:       err,
		}
	}

	return nil
}

// Exists reports whether the file is present on disk.
func (s *Store) Exists(ctx context.Context, namespace, filename string) (bool, error) {
	_, err := os.Stat(filepath.Join(s.baseDir, namespace, filename))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, &mediastore.StorageError{
		Namespace: namespace,
		Filename:  filename,
		Op:        "exists",
		Err:       err,
	}
}

// Delete removes one physical file. An already-absent file reports
// mediastore.ErrFileNotFound; the caller decides whether that is fatal.
func (s *Store) Delete(ctx context.Context, namespace, filename string) error {
	path := filepath.Join(s.baseDir, namespace, filename)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &mediastore.StorageError{
			Namespace: namespace,
			Filename:  filename,
			Op:        "delete",
			Err:       mediastore.ErrFileNotFound,
		}
	}

	if err := os.Remove(path); err != nil {
		return &mediastore.StorageError{
			Namespace: namespace,
			Filename:  filename,
			Op:        "delete",
			Err:       err,
		}
	}

	return nil
}

// URLFor composes {baseAddress}/{storageRoot}/{namespace}/{filename}.
func (s *Store) URLFor(baseAddress, namespace, filename string) string {
	return fmt.Sprintf("%s/%s/%s/%s",
		strings.TrimSuffix(baseAddress, "/"), s.storageRoot, namespace, filename)
}
