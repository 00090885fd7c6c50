package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/contentadmin/mediastore/pkg/mediastore"
)

// Repository implements mediastore.Repository using in-memory storage
type Repository struct {
	mu             sync.RWMutex
	records        map[uuid.UUID]*mediastore.ContentRecord
	recordsBySlug  map[string]uuid.UUID // "kind:slug" -> record_id
	assets         map[uuid.UUID]*mediastore.MediaAsset
	assetsByRecord map[uuid.UUID][]uuid.UUID // record_id -> []asset_id
}

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		records:        make(map[uuid.UUID]*mediastore.ContentRecord),
		recordsBySlug:  make(map[string]uuid.UUID),
		assets:         make(map[uuid.UUID]*mediastore.MediaAsset),
		assetsByRecord: make(map[uuid.UUID][]uuid.UUID),
	}
}

func slugKey(kind mediastore.ContentKind, slug string) string {
	return fmt.Sprintf("%s:%s", kind, slug)
}

// Record operations

func (r *Repository) CreateRecord(ctx context.Context, record *mediastore.ContentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := slugKey(record.Kind, record.Slug)
	if _, exists := r.recordsBySlug[key]; exists {
		return fmt.Errorf("%w: %s", mediastore.ErrDuplicateSlug, record.Slug)
	}

	// Store a copy to avoid external modifications
	recordCopy := *record
	r.records[record.ID] = &recordCopy
	r.recordsBySlug[key] = record.ID

	return nil
}

func (r *Repository) GetRecord(ctx context.Context, id uuid.UUID) (*mediastore.ContentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.records[id]
	if !exists {
		return nil, mediastore.ErrRecordNotFound
	}

	recordCopy := *record
	return &recordCopy, nil
}

func (r *Repository) GetRecordBySlug(ctx context.Context, kind mediastore.ContentKind, slug string) (*mediastore.ContentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.recordsBySlug[slugKey(kind, slug)]
	if !exists {
		return nil, mediastore.ErrRecordNotFound
	}

	record, exists := r.records[id]
	if !exists {
		return nil, mediastore.ErrRecordNotFound
	}

	recordCopy := *record
	return &recordCopy, nil
}

func (r *Repository) UpdateRecord(ctx context.Context, record *mediastore.ContentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.records[record.ID]
	if !exists {
		return mediastore.ErrRecordNotFound
	}

	// Keep the slug index current if the slug moved
	if existing.Slug != record.Slug || existing.Kind != record.Kind {
		delete(r.recordsBySlug, slugKey(existing.Kind, existing.Slug))
		r.recordsBySlug[slugKey(record.Kind, record.Slug)] = record.ID
	}

	recordCopy := *record
	r.records[record.ID] = &recordCopy

	return nil
}

func (r *Repository) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, exists := r.records[id]
	if !exists {
		return mediastore.ErrRecordNotFound
	}

	delete(r.recordsBySlug, slugKey(record.Kind, record.Slug))
	delete(r.records, id)

	return nil
}

func (r *Repository) ListRecords(ctx context.Context, kind mediastore.ContentKind) ([]*mediastore.ContentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*mediastore.ContentRecord{}
	for _, record := range r.records {
		if record.Kind == kind {
			recordCopy := *record
			result = append(result, &recordCopy)
		}
	}

	// Sort by sort order, then creation time for stable display
	sort.Slice(result, func(i, j int) bool {
		if result[i].SortOrder != result[j].SortOrder {
			return result[i].SortOrder < result[j].SortOrder
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

// Asset operations

func (r *Repository) CreateAsset(ctx context.Context, asset *mediastore.MediaAsset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// No orphans: the parent must exist
	if _, exists := r.records[asset.RecordID]; !exists {
		return mediastore.ErrRecordNotFound
	}

	assetCopy := *asset
	r.assets[asset.ID] = &assetCopy
	r.assetsByRecord[asset.RecordID] = append(r.assetsByRecord[asset.RecordID], asset.ID)

	return nil
}

func (r *Repository) GetAsset(ctx context.Context, id uuid.UUID) (*mediastore.MediaAsset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	asset, exists := r.assets[id]
	if !exists {
		return nil, mediastore.ErrAssetNotFound
	}

	assetCopy := *asset
	return &assetCopy, nil
}

func (r *Repository) ListAssetsByRecord(ctx context.Context, recordID uuid.UUID) ([]*mediastore.MediaAsset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*mediastore.MediaAsset{}
	for _, assetID := range r.assetsByRecord[recordID] {
		if asset, exists := r.assets[assetID]; exists {
			assetCopy := *asset
			result = append(result, &assetCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Position < result[j].Position
	})

	return result, nil
}

func (r *Repository) UpdateAsset(ctx context.Context, asset *mediastore.MediaAsset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.assets[asset.ID]; !exists {
		return mediastore.ErrAssetNotFound
	}

	assetCopy := *asset
	r.assets[asset.ID] = &assetCopy

	return nil
}

func (r *Repository) DeleteAsset(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	asset, exists := r.assets[id]
	if !exists {
		return mediastore.ErrAssetNotFound
	}

	ids := r.assetsByRecord[asset.RecordID]
	for i, assetID := range ids {
		if assetID == id {
			r.assetsByRecord[asset.RecordID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	delete(r.assets, id)

	return nil
}

func (r *Repository) DeleteAssetsByRecord(ctx context.Context, recordID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, assetID := range r.assetsByRecord[recordID] {
		delete(r.assets, assetID)
	}
	delete(r.assetsByRecord, recordID)

	return nil
}
