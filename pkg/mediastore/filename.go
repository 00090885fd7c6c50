package mediastore

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// NewStoredFilename returns a collision-resistant storage name for an
// uploaded file. The random token keeps concurrent writes to a shared
// namespace from colliding; the original extension is preserved (lowercased)
// so the file serves with the right content type.
func NewStoredFilename(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return uuid.NewString() + ext
}
