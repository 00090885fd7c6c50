package mediastore

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error types
var (
	// ErrInvalidCommand indicates a malformed command reached the core
	// despite upstream validation
	ErrInvalidCommand = errors.New("invalid command")

	// ErrDuplicateSlug indicates the record's uniqueness key is already taken
	ErrDuplicateSlug = errors.New("slug already in use")

	// ErrRecordNotFound indicates a content record was not found
	ErrRecordNotFound = errors.New("content record not found")

	// ErrAssetNotFound indicates a media asset was not found
	ErrAssetNotFound = errors.New("media asset not found")

	// ErrFileNotFound indicates a stored file is absent from the asset store
	ErrFileNotFound = errors.New("stored file not found")
)

// RecordError represents an error related to content record operations
type RecordError struct {
	RecordID uuid.UUID
	Op       string
	Err      error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record operation %s failed for record %s: %v", e.Op, e.RecordID, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// AssetError represents an error related to media asset operations
type AssetError struct {
	AssetID uuid.UUID
	Op      string
	Err     error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("asset operation %s failed for asset %s: %v", e.Op, e.AssetID, e.Err)
}

func (e *AssetError) Unwrap() error {
	return e.Err
}

// StorageError represents an error related to asset store operations
type StorageError struct {
	Namespace string
	Filename  string
	Op        string
	Err       error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for %s/%s: %v", e.Op, e.Namespace, e.Filename, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// PartialCreateError reports a create operation that durably produced a
// content record but failed while attaching its assets. The record is left
// in place; deleting it here could destroy data the caller still wants.
// RecordID lets the caller retry asset attachment or delete explicitly.
type PartialCreateError struct {
	RecordID uuid.UUID
	Err      error
}

func (e *PartialCreateError) Error() string {
	return fmt.Sprintf("record %s was created but asset attachment failed: %v", e.RecordID, e.Err)
}

func (e *PartialCreateError) Unwrap() error {
	return e.Err
}
