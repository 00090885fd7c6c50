package mediastore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/contentadmin/mediastore/pkg/slug"
)

// coordinator implements the Coordinator interface
type coordinator struct {
	repository  Repository
	store       AssetStore
	ordering    OrderingPolicy
	cleanup     *Compensator
	logger      *slog.Logger
	baseAddress string
}

// Option represents a functional option for configuring the coordinator
type Option func(*coordinator)

// WithRepository sets the repository for the coordinator
func WithRepository(repo Repository) Option {
	return func(c *coordinator) {
		c.repository = repo
	}
}

// WithAssetStore sets the asset store for the coordinator
func WithAssetStore(store AssetStore) Option {
	return func(c *coordinator) {
		c.store = store
	}
}

// WithLogger sets the logger used for best-effort failure reporting
func WithLogger(logger *slog.Logger) Option {
	return func(c *coordinator) {
		c.logger = logger
	}
}

// WithBaseAddress sets the base address used when composing asset URLs
func WithBaseAddress(baseAddress string) Option {
	return func(c *coordinator) {
		c.baseAddress = baseAddress
	}
}

// New creates a new coordinator instance with the given options
func New(options ...Option) (Coordinator, error) {
	c := &coordinator{}

	for _, option := range options {
		option(c)
	}

	if c.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if c.store == nil {
		return nil, fmt.Errorf("asset store is required")
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.cleanup = NewCompensator(c.store, c.logger)

	return c, nil
}

func (c *coordinator) CreateWithAssets(ctx context.Context, cmd CreateRecordCommand, inputs []AssetInput) (*RecordWithAssets, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	recordSlug := cmd.Slug
	if recordSlug == "" {
		recordSlug = slug.From(cmd.Name)
	}

	// Uniqueness precondition, checked before any file is written so a
	// doomed request never leaves files behind.
	if _, err := c.repository.GetRecordBySlug(ctx, cmd.Kind, recordSlug); err == nil {
		return nil, fmt.Errorf("%w: %s/%s", ErrDuplicateSlug, cmd.Kind, recordSlug)
	} else if !errors.Is(err, ErrRecordNotFound) {
		return nil, &RecordError{Op: "create", Err: err}
	}

	namespace := cmd.Kind.Namespace()
	if err := c.store.EnsureNamespace(ctx, namespace); err != nil {
		return nil, err
	}

	written, err := c.writeAll(ctx, namespace, inputs)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record := &ContentRecord{
		ID:          uuid.New(),
		Kind:        cmd.Kind,
		Slug:        recordSlug,
		Name:        cmd.Name,
		Description: cmd.Description,
		Category:    cmd.Category,
		Price:       cmd.Price,
		SortOrder:   cmd.SortOrder,
		Published:   cmd.Published,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := c.repository.CreateRecord(ctx, record); err != nil {
		// A race can lose against the uniqueness constraint after the
		// precondition check passed; either way all written files go.
		c.cleanup.DeleteMany(ctx, namespace, written)
		if errors.Is(err, ErrDuplicateSlug) {
			return nil, err
		}
		return nil, &RecordError{RecordID: record.ID, Op: "create", Err: err}
	}

	positions, primaryIndex := c.ordering.AssignOnCreate(len(inputs))
	assets := make([]*MediaAsset, 0, len(inputs))
	for i, input := range inputs {
		asset := &MediaAsset{
			ID:        uuid.New(),
			RecordID:  record.ID,
			Filename:  written[i],
			URL:       c.store.URLFor(c.baseAddress, namespace, written[i]),
			AltText:   input.AltText,
			IsPrimary: i == primaryIndex,
			Position:  positions[i],
			CreatedAt: now,
		}
		if err := c.repository.CreateAsset(ctx, asset); err != nil {
			// The record exists now. Deleting it here would destroy a row
			// the caller might still want, so surface the id instead.
			return nil, &PartialCreateError{RecordID: record.ID, Err: err}
		}
		assets = append(assets, asset)
	}

	return &RecordWithAssets{Record: record, Assets: assets}, nil
}

func (c *coordinator) AppendAssets(ctx context.Context, recordID uuid.UUID, inputs []AssetInput) ([]*MediaAsset, error) {
	record, err := c.repository.GetRecord(ctx, recordID)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return nil, err
		}
		return nil, &RecordError{RecordID: recordID, Op: "append_assets", Err: err}
	}

	existing, err := c.repository.ListAssetsByRecord(ctx, recordID)
	if err != nil {
		return nil, &RecordError{RecordID: recordID, Op: "append_assets", Err: err}
	}
	maxPosition := 0
	for _, asset := range existing {
		if asset.Position > maxPosition {
			maxPosition = asset.Position
		}
	}

	namespace := record.Kind.Namespace()
	if err := c.store.EnsureNamespace(ctx, namespace); err != nil {
		return nil, err
	}

	written, err := c.writeAll(ctx, namespace, inputs)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	positions := c.ordering.AssignOnAppend(maxPosition, len(inputs))
	assets := make([]*MediaAsset, 0, len(inputs))
	for i, input := range inputs {
		asset := &MediaAsset{
			ID:        uuid.New(),
			RecordID:  recordID,
			Filename:  written[i],
			URL:       c.store.URLFor(c.baseAddress, namespace, written[i]),
			AltText:   input.AltText,
			Position:  positions[i],
			CreatedAt: now,
		}
		if err := c.repository.CreateAsset(ctx, asset); err != nil {
			// Rows already persisted stay; files with no row behind them go.
			c.cleanup.DeleteMany(ctx, namespace, written[i:])
			return nil, &AssetError{AssetID: asset.ID, Op: "append", Err: err}
		}
		assets = append(assets, asset)
	}

	return assets, nil
}

// writeAll persists the input byte streams, compensating for files already
// written when a later write fails.
func (c *coordinator) writeAll(ctx context.Context, namespace string, inputs []AssetInput) ([]string, error) {
	written := make([]string, 0, len(inputs))
	for _, input := range inputs {
		filename := NewStoredFilename(input.OriginalName)
		if err := c.store.Save(ctx, namespace, filename, input.Reader); err != nil {
			c.cleanup.DeleteMany(ctx, namespace, written)
			return nil, err
		}
		written = append(written, filename)
	}
	return written, nil
}

func (c *coordinator) UpdateAssetMetadata(ctx context.Context, assetID uuid.UUID, patch AssetPatch) (*MediaAsset, error) {
	asset, err := c.repository.GetAsset(ctx, assetID)
	if err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			return nil, err
		}
		return nil, &AssetError{AssetID: assetID, Op: "update_metadata", Err: err}
	}

	if patch.AltText != nil {
		asset.AltText = *patch.AltText
	}
	if patch.IsPrimary != nil {
		asset.IsPrimary = *patch.IsPrimary
	}
	if patch.Position != nil {
		asset.Position = *patch.Position
	}

	if err := c.repository.UpdateAsset(ctx, asset); err != nil {
		return nil, &AssetError{AssetID: assetID, Op: "update_metadata", Err: err}
	}

	return asset, nil
}

func (c *coordinator) RemoveAsset(ctx context.Context, assetID uuid.UUID) error {
	asset, err := c.repository.GetAsset(ctx, assetID)
	if err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			return err
		}
		return &AssetError{AssetID: assetID, Op: "remove", Err: err}
	}

	// File cleanup is best-effort: a file that is already gone, or that
	// cannot be deleted, must never leave an unremovable row blocking
	// catalog maintenance.
	c.deleteFileForAsset(ctx, asset)

	if err := c.repository.DeleteAsset(ctx, assetID); err != nil {
		return &AssetError{AssetID: assetID, Op: "remove", Err: err}
	}

	return nil
}

func (c *coordinator) RemoveRecord(ctx context.Context, recordID uuid.UUID) error {
	record, err := c.repository.GetRecord(ctx, recordID)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return err
		}
		return &RecordError{RecordID: recordID, Op: "remove", Err: err}
	}

	assets, err := c.repository.ListAssetsByRecord(ctx, recordID)
	if err != nil {
		return &RecordError{RecordID: recordID, Op: "remove", Err: err}
	}

	// Physical cleanup before row deletion: a crash mid-operation leaves
	// orphaned files (recoverable by a sweep), not dangling rows.
	namespace := record.Kind.Namespace()
	for _, asset := range assets {
		if err := c.store.Delete(ctx, namespace, asset.Filename); err != nil {
			c.logger.Warn("file deletion failed during cascade",
				"record_id", recordID,
				"asset_id", asset.ID,
				"filename", asset.Filename,
				"error", err)
		}
	}

	if err := c.repository.DeleteAssetsByRecord(ctx, recordID); err != nil {
		return &RecordError{RecordID: recordID, Op: "remove", Err: err}
	}
	if err := c.repository.DeleteRecord(ctx, recordID); err != nil {
		return &RecordError{RecordID: recordID, Op: "remove", Err: err}
	}

	return nil
}

// deleteFileForAsset attempts physical deletion of an asset's file, logging
// any failure. The parent record resolves the namespace; if the parent is
// somehow gone the file is left for a sweep rather than blocking removal.
func (c *coordinator) deleteFileForAsset(ctx context.Context, asset *MediaAsset) {
	record, err := c.repository.GetRecord(ctx, asset.RecordID)
	if err != nil {
		c.logger.Warn("parent lookup failed during asset removal",
			"asset_id", asset.ID,
			"record_id", asset.RecordID,
			"error", err)
		return
	}

	if err := c.store.Delete(ctx, record.Kind.Namespace(), asset.Filename); err != nil {
		c.logger.Warn("file deletion failed during asset removal",
			"asset_id", asset.ID,
			"filename", asset.Filename,
			"error", err)
	}
}

func (c *coordinator) GetRecord(ctx context.Context, id uuid.UUID) (*ContentRecord, error) {
	return c.repository.GetRecord(ctx, id)
}

func (c *coordinator) GetRecordWithAssets(ctx context.Context, id uuid.UUID) (*RecordWithAssets, error) {
	record, err := c.repository.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	assets, err := c.repository.ListAssetsByRecord(ctx, id)
	if err != nil {
		return nil, &RecordError{RecordID: id, Op: "get_with_assets", Err: err}
	}
	return &RecordWithAssets{Record: record, Assets: assets}, nil
}

func (c *coordinator) ListRecords(ctx context.Context, kind ContentKind) ([]*ContentRecord, error) {
	return c.repository.ListRecords(ctx, kind)
}

func (c *coordinator) UpdateRecord(ctx context.Context, cmd UpdateRecordCommand) (*ContentRecord, error) {
	record, err := c.repository.GetRecord(ctx, cmd.RecordID)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return nil, err
		}
		return nil, &RecordError{RecordID: cmd.RecordID, Op: "update", Err: err}
	}

	if cmd.Name != nil {
		record.Name = *cmd.Name
	}
	if cmd.Description != nil {
		record.Description = *cmd.Description
	}
	if cmd.Category != nil {
		record.Category = *cmd.Category
	}
	if cmd.Price != nil {
		record.Price = *cmd.Price
	}
	if cmd.SortOrder != nil {
		record.SortOrder = *cmd.SortOrder
	}
	if cmd.Published != nil {
		record.Published = *cmd.Published
	}
	record.UpdatedAt = time.Now().UTC()

	if err := c.repository.UpdateRecord(ctx, record); err != nil {
		return nil, &RecordError{RecordID: cmd.RecordID, Op: "update", Err: err}
	}

	return record, nil
}
