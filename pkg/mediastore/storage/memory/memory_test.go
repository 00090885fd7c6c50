package memory_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentadmin/mediastore/pkg/mediastore"
	"github.com/contentadmin/mediastore/pkg/mediastore/storage/memory"
)

func TestSaveReadDelete(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	require.NoError(t, store.EnsureNamespace(ctx, "products"))
	require.NoError(t, store.Save(ctx, "products", "a.jpg", strings.NewReader("image bytes")))

	exists, err := store.Exists(ctx, "products", "a.jpg")
	require.NoError(t, err)
	assert.True(t, exists)

	r, err := store.Read("products", "a.jpg")
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "image bytes", string(data))

	require.NoError(t, store.Delete(ctx, "products", "a.jpg"))

	exists, err = store.Exists(ctx, "products", "a.jpg")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestNamespacesIsolateFiles(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	require.NoError(t, store.Save(ctx, "products", "a.jpg", strings.NewReader("product")))
	require.NoError(t, store.Save(ctx, "blog", "a.jpg", strings.NewReader("article")))

	r, err := store.Read("blog", "a.jpg")
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "article", string(data))

	require.NoError(t, store.Delete(ctx, "blog", "a.jpg"))

	exists, err := store.Exists(ctx, "products", "a.jpg")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDeleteMissing(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	err := store.Delete(ctx, "products", "nope.jpg")
	assert.ErrorIs(t, err, mediastore.ErrFileNotFound)
}

func TestURLFor(t *testing.T) {
	store := memory.New()

	url := store.URLFor("http://localhost:8080/", "page-content", "c.png")
	assert.Equal(t, "http://localhost:8080/media/page-content/c.png", url)
}
