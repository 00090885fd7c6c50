package mediastore

import (
	"context"

	"github.com/google/uuid"
)

// Coordinator orchestrates the media-backed content lifecycle: every
// operation that touches both the repository and the asset store goes
// through here so the two stay consistent.
type Coordinator interface {
	// CreateWithAssets creates a content record together with zero or more
	// image assets. Files are written before the record row exists; if any
	// later step fails the already-written files are compensating-deleted.
	// When the record was created but asset attachment failed, the error is
	// a *PartialCreateError carrying the record id.
	CreateWithAssets(ctx context.Context, cmd CreateRecordCommand, inputs []AssetInput) (*RecordWithAssets, error)

	// AppendAssets adds images to an existing record, continuing position
	// numbering after the current maximum. Existing assets are never mutated.
	AppendAssets(ctx context.Context, recordID uuid.UUID, inputs []AssetInput) ([]*MediaAsset, error)

	// UpdateAssetMetadata applies a metadata-only patch; no storage I/O.
	UpdateAssetMetadata(ctx context.Context, assetID uuid.UUID, patch AssetPatch) (*MediaAsset, error)

	// RemoveAsset deletes one asset: file deletion is attempted best-effort,
	// the row is removed unconditionally afterwards.
	RemoveAsset(ctx context.Context, assetID uuid.UUID) error

	// RemoveRecord deletes a record and cascades to all its assets. Physical
	// cleanup runs before row deletion, so a crash mid-operation leaves at
	// worst orphaned files rather than dangling rows.
	RemoveRecord(ctx context.Context, recordID uuid.UUID) error

	// Read and update operations
	GetRecord(ctx context.Context, id uuid.UUID) (*ContentRecord, error)
	GetRecordWithAssets(ctx context.Context, id uuid.UUID) (*RecordWithAssets, error)
	ListRecords(ctx context.Context, kind ContentKind) ([]*ContentRecord, error)
	UpdateRecord(ctx context.Context, cmd UpdateRecordCommand) (*ContentRecord, error)
}
