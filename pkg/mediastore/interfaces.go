package mediastore

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// AssetStore is the durable binary storage for media files, scoped by a
// logical namespace ("products", "blog", "page-content").
type AssetStore interface {
	// EnsureNamespace idempotently guarantees the namespace's storage
	// location exists. Safe to call repeatedly.
	EnsureNamespace(ctx context.Context, namespace string) error

	// Save persists one file's bytes under the given stored filename.
	Save(ctx context.Context, namespace, filename string, r io.Reader) error

	// Exists reports whether a stored file is present.
	Exists(ctx context.Context, namespace, filename string) (bool, error)

	// Delete removes one physical file. Returns an error wrapping
	// ErrFileNotFound when the file is already absent; the caller decides
	// whether that is fatal.
	Delete(ctx context.Context, namespace, filename string) error

	// URLFor composes the publicly resolvable address for a stored file
	// as {baseAddress}/{storageRoot}/{namespace}/{filename}. Pure string
	// composition; no I/O.
	URLFor(baseAddress, namespace, filename string) string
}

// Repository defines persistence for content records and their ordered
// child media assets.
type Repository interface {
	// Record operations
	CreateRecord(ctx context.Context, record *ContentRecord) error
	GetRecord(ctx context.Context, id uuid.UUID) (*ContentRecord, error)
	GetRecordBySlug(ctx context.Context, kind ContentKind, slug string) (*ContentRecord, error)
	UpdateRecord(ctx context.Context, record *ContentRecord) error
	DeleteRecord(ctx context.Context, id uuid.UUID) error
	ListRecords(ctx context.Context, kind ContentKind) ([]*ContentRecord, error)

	// Asset operations
	CreateAsset(ctx context.Context, asset *MediaAsset) error
	GetAsset(ctx context.Context, id uuid.UUID) (*MediaAsset, error)
	// ListAssetsByRecord returns the record's assets ordered by ascending
	// position.
	ListAssetsByRecord(ctx context.Context, recordID uuid.UUID) ([]*MediaAsset, error)
	UpdateAsset(ctx context.Context, asset *MediaAsset) error
	DeleteAsset(ctx context.Context, id uuid.UUID) error
	DeleteAssetsByRecord(ctx context.Context, recordID uuid.UUID) error
}
