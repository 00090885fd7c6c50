package mediastore_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/contentadmin/mediastore/pkg/mediastore"
)

func TestNewStoredFilename(t *testing.T) {
	t.Run("preserves extension lowercased", func(t *testing.T) {
		name := mediastore.NewStoredFilename("Vacation Photo.JPG")
		assert.True(t, strings.HasSuffix(name, ".jpg"))
		assert.NotContains(t, name, " ")
	})

	t.Run("no extension", func(t *testing.T) {
		name := mediastore.NewStoredFilename("README")
		assert.NotContains(t, name, ".")
		assert.NotEmpty(t, name)
	})

	t.Run("collision resistant", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			name := mediastore.NewStoredFilename("a.png")
			assert.False(t, seen[name], "generated a duplicate filename")
			seen[name] = true
		}
	})
}
