package mediastore

import (
	"time"

	"github.com/google/uuid"
)

// ContentKind identifies which administrative module a record belongs to.
type ContentKind string

// Content kind constants (typed).
const (
	KindProduct     ContentKind = "product"
	KindArticle     ContentKind = "article"
	KindPageSection ContentKind = "page-section"
)

// Valid reports whether k is a known content kind.
func (k ContentKind) Valid() bool {
	switch k {
	case KindProduct, KindArticle, KindPageSection:
		return true
	}
	return false
}

// Namespace returns the storage bucket isolating this kind's files.
func (k ContentKind) Namespace() string {
	switch k {
	case KindProduct:
		return "products"
	case KindArticle:
		return "blog"
	case KindPageSection:
		return "page-content"
	default:
		return string(k)
	}
}

// ContentRecord is a parent content entity: a catalog item, a blog article
// or a CMS page section. The (Kind, Slug) pair is the uniqueness key.
type ContentRecord struct {
	ID          uuid.UUID   `json:"id"`
	Kind        ContentKind `json:"kind"`
	Slug        string      `json:"slug"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Category    string      `json:"category,omitempty"`
	Price       float64     `json:"price,omitempty"`
	SortOrder   int         `json:"sort_order"`
	Published   bool        `json:"published"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// MediaAsset is one stored image belonging to exactly one content record.
//
// Position is the zero-based display rank among siblings. At most one asset
// per record carries IsPrimary. The URL is reconstructible from the stored
// filename and the record's namespace, so only the filename is canonical.
type MediaAsset struct {
	ID        uuid.UUID `json:"id"`
	RecordID  uuid.UUID `json:"record_id"`
	Filename  string    `json:"filename"`
	URL       string    `json:"url"`
	AltText   string    `json:"alt_text,omitempty"`
	IsPrimary bool      `json:"is_primary"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// RecordWithAssets is the assembled result of a coordinator read or create:
// the parent record plus its assets ordered by ascending position.
type RecordWithAssets struct {
	Record *ContentRecord `json:"record"`
	Assets []*MediaAsset  `json:"assets"`
}
