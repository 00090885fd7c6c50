package mediastore

import (
	"fmt"
	"io"

	"github.com/google/uuid"
)

// Command and input DTOs. The HTTP/validation layer builds these; the
// coordinator trusts their shape and re-checks only domain invariants
// (uniqueness, existence).

// CreateRecordCommand contains the parent fields for a create operation.
// Slug is optional; when empty it is derived from Name.
type CreateRecordCommand struct {
	Kind        ContentKind
	Name        string
	Slug        string
	Description string
	Category    string
	Price       float64
	SortOrder   int
	Published   bool
}

// Validate defends against malformed commands that slip past the upstream
// layer. It checks shape only, never uniqueness.
func (c CreateRecordCommand) Validate() error {
	if !c.Kind.Valid() {
		return fmt.Errorf("%w: unknown content kind %q", ErrInvalidCommand, c.Kind)
	}
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidCommand)
	}
	if c.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidCommand)
	}
	return nil
}

// UpdateRecordCommand patches parent fields. Nil pointers leave the field
// untouched. The slug is stable across updates.
type UpdateRecordCommand struct {
	RecordID    uuid.UUID
	Name        *string
	Description *string
	Category    *string
	Price       *float64
	SortOrder   *int
	Published   *bool
}

// AssetInput describes one incoming image byte stream with its metadata.
// Count and per-file size/type limits are the calling layer's business.
type AssetInput struct {
	Reader       io.Reader
	OriginalName string
	MimeType     string
	Size         int64
	AltText      string
}

// AssetPatch is a metadata-only update for a stored asset. It never touches
// the physical file. Setting IsPrimary on one asset does not unset it on
// siblings; that stays with the caller.
type AssetPatch struct {
	AltText   *string
	IsPrimary *bool
	Position  *int
}
