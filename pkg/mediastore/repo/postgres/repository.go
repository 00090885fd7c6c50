package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/contentadmin/mediastore/pkg/mediastore"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements mediastore.Repository using PostgreSQL
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) *Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

// mapError translates driver errors into the package's error taxonomy.
func mapError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%w: %s", mediastore.ErrDuplicateSlug, pgErr.ConstraintName)
		case "23503": // foreign_key_violation
			return mediastore.ErrRecordNotFound
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		}
	}
	return fmt.Errorf("database error in %s: %w", operation, err)
}

// Record operations

func (r *Repository) CreateRecord(ctx context.Context, record *mediastore.ContentRecord) error {
	query := `
		INSERT INTO content_records (
			id, kind, slug, name, description, category,
			price, sort_order, published, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(ctx, query,
		record.ID, record.Kind, record.Slug, record.Name, record.Description,
		record.Category, record.Price, record.SortOrder, record.Published,
		record.CreatedAt, record.UpdatedAt)

	if err != nil {
		return mapError("create record", err)
	}

	return nil
}

func (r *Repository) GetRecord(ctx context.Context, id uuid.UUID) (*mediastore.ContentRecord, error) {
	query := `
		SELECT id, kind, slug, name, description, category,
		       price, sort_order, published, created_at, updated_at
		FROM content_records WHERE id = $1`

	record, err := r.scanRecord(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, mediastore.ErrRecordNotFound
		}
		return nil, err
	}

	return record, nil
}

func (r *Repository) GetRecordBySlug(ctx context.Context, kind mediastore.ContentKind, slug string) (*mediastore.ContentRecord, error) {
	query := `
		SELECT id, kind, slug, name, description, category,
		       price, sort_order, published, created_at, updated_at
		FROM content_records WHERE kind = $1 AND slug = $2`

	record, err := r.scanRecord(r.db.QueryRow(ctx, query, kind, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, mediastore.ErrRecordNotFound
		}
		return nil, err
	}

	return record, nil
}

func (r *Repository) UpdateRecord(ctx context.Context, record *mediastore.ContentRecord) error {
	query := `
		UPDATE content_records SET
			slug = $2, name = $3, description = $4, category = $5,
			price = $6, sort_order = $7, published = $8, updated_at = $9
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		record.ID, record.Slug, record.Name, record.Description,
		record.Category, record.Price, record.SortOrder, record.Published,
		record.UpdatedAt)

	if err != nil {
		return mapError("update record", err)
	}
	if tag.RowsAffected() == 0 {
		return mediastore.ErrRecordNotFound
	}

	return nil
}

func (r *Repository) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM content_records WHERE id = $1`, id)
	if err != nil {
		return mapError("delete record", err)
	}
	if tag.RowsAffected() == 0 {
		return mediastore.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) ListRecords(ctx context.Context, kind mediastore.ContentKind) ([]*mediastore.ContentRecord, error) {
	query := `
		SELECT id, kind, slug, name, description, category,
		       price, sort_order, published, created_at, updated_at
		FROM content_records WHERE kind = $1
		ORDER BY sort_order ASC, created_at ASC`

	rows, err := r.db.Query(ctx, query, kind)
	if err != nil {
		return nil, mapError("list records", err)
	}
	defer rows.Close()

	var result []*mediastore.ContentRecord
	for rows.Next() {
		record, err := r.scanRecord(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, record)
	}

	return result, rows.Err()
}

func (r *Repository) scanRecord(row pgx.Row) (*mediastore.ContentRecord, error) {
	var record mediastore.ContentRecord
	err := row.Scan(
		&record.ID, &record.Kind, &record.Slug, &record.Name,
		&record.Description, &record.Category, &record.Price,
		&record.SortOrder, &record.Published, &record.CreatedAt,
		&record.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Asset operations

func (r *Repository) CreateAsset(ctx context.Context, asset *mediastore.MediaAsset) error {
	query := `
		INSERT INTO media_assets (
			id, record_id, filename, url, alt_text,
			is_primary, position, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		asset.ID, asset.RecordID, asset.Filename, asset.URL,
		asset.AltText, asset.IsPrimary, asset.Position, asset.CreatedAt)

	if err != nil {
		return mapError("create asset", err)
	}

	return nil
}

func (r *Repository) GetAsset(ctx context.Context, id uuid.UUID) (*mediastore.MediaAsset, error) {
	query := `
		SELECT id, record_id, filename, url, alt_text,
		       is_primary, position, created_at
		FROM media_assets WHERE id = $1`

	var asset mediastore.MediaAsset
	err := r.db.QueryRow(ctx, query, id).Scan(
		&asset.ID, &asset.RecordID, &asset.Filename, &asset.URL,
		&asset.AltText, &asset.IsPrimary, &asset.Position, &asset.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, mediastore.ErrAssetNotFound
		}
		return nil, mapError("get asset", err)
	}

	return &asset, nil
}

func (r *Repository) ListAssetsByRecord(ctx context.Context, recordID uuid.UUID) ([]*mediastore.MediaAsset, error) {
	query := `
		SELECT id, record_id, filename, url, alt_text,
		       is_primary, position, created_at
		FROM media_assets WHERE record_id = $1
		ORDER BY position ASC`

	rows, err := r.db.Query(ctx, query, recordID)
	if err != nil {
		return nil, mapError("list assets", err)
	}
	defer rows.Close()

	result := []*mediastore.MediaAsset{}
	for rows.Next() {
		var asset mediastore.MediaAsset
		err := rows.Scan(
			&asset.ID, &asset.RecordID, &asset.Filename, &asset.URL,
			&asset.AltText, &asset.IsPrimary, &asset.Position, &asset.CreatedAt)
		if err != nil {
			return nil, err
		}
		result = append(result, &asset)
	}

	return result, rows.Err()
}

func (r *Repository) UpdateAsset(ctx context.Context, asset *mediastore.MediaAsset) error {
	query := `
		UPDATE media_assets SET
			alt_text = $2, is_primary = $3, position = $4
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		asset.ID, asset.AltText, asset.IsPrimary, asset.Position)

	if err != nil {
		return mapError("update asset", err)
	}
	if tag.RowsAffected() == 0 {
		return mediastore.ErrAssetNotFound
	}

	return nil
}

func (r *Repository) DeleteAsset(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM media_assets WHERE id = $1`, id)
	if err != nil {
		return mapError("delete asset", err)
	}
	if tag.RowsAffected() == 0 {
		return mediastore.ErrAssetNotFound
	}
	return nil
}

func (r *Repository) DeleteAssetsByRecord(ctx context.Context, recordID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM media_assets WHERE record_id = $1`, recordID)
	if err != nil {
		return mapError("delete assets by record", err)
	}
	return nil
}
