package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/contentadmin/mediastore/pkg/mediastore"
)

// Store is an in-memory implementation of the mediastore.AssetStore
// interface, intended for tests and development.
type Store struct {
	mu         sync.RWMutex
	namespaces map[string]bool
	files      map[string][]byte
}

// New creates a new in-memory asset store
func New() *Store {
	return &Store{
		namespaces: make(map[string]bool),
		files:      make(map[string][]byte),
	}
}

func key(namespace, filename string) string {
	return namespace + "/" + filename
}

// EnsureNamespace marks the namespace as present. Always succeeds.
func (s *Store) EnsureNamespace(ctx context.Context, namespace string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.namespaces[namespace] = true
	return nil
}

// Save stores the file bytes in memory.
func (s *Store) Save(ctx context.Context, namespace, filename string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return &mediastore.StorageError{
			Namespace: namespace,
			Filename:  filename,
			Op:        "save",
			Err:       err,
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.files[key(namespace, filename)] = data
	return nil
}

// Exists reports whether the file is present.
func (s *Store) Exists(ctx context.Context, namespace, filename string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.files[key(namespace, filename)]
	return ok, nil
}

// Read returns a reader over the stored bytes. Test helper; not part of the
// AssetStore interface.
func (s *Store) Read(namespace, filename string) (io.Reader, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.files[key(namespace, filename)]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", mediastore.ErrFileNotFound, namespace, filename)
	}
	return bytes.NewReader(data), nil
}

// Delete removes the file, reporting mediastore.ErrFileNotFound when it is
// already absent.
func (s *Store) Delete(ctx context.Context, namespace, filename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(namespace, filename)
	if _, ok := s.files[k]; !ok {
		return &mediastore.StorageError{
			Namespace: namespace,
			Filename:  filename,
			Op:        "delete",
			Err:       mediastore.ErrFileNotFound,
		}
	}

	delete(s.files, k)
	return nil
}

// URLFor composes {baseAddress}/media/{namespace}/{filename}.
func (s *Store) URLFor(baseAddress, namespace, filename string) string {
	return fmt.Sprintf("%s/media/%s/%s",
		strings.TrimSuffix(baseAddress, "/"), namespace, filename)
}
