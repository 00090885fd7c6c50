package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentadmin/mediastore/internal/api"
	"github.com/contentadmin/mediastore/pkg/mediastore"
	repomemory "github.com/contentadmin/mediastore/pkg/mediastore/repo/memory"
	storagememory "github.com/contentadmin/mediastore/pkg/mediastore/storage/memory"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	coordinator, err := mediastore.New(
		mediastore.WithRepository(repomemory.New()),
		mediastore.WithAssetStore(storagememory.New()),
		mediastore.WithBaseAddress("http://localhost:8080"),
	)
	require.NoError(t, err)

	server := httptest.NewServer(api.NewRouter(coordinator))
	t.Cleanup(server.Close)
	return server
}

func multipartBody(t *testing.T, fields map[string]string, imageNames ...string) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, w.WriteField(key, value))
	}
	for _, name := range imageNames {
		part, err := w.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes for " + name))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func createProduct(t *testing.T, server *httptest.Server, name string, imageNames ...string) api.RecordResponse {
	t.Helper()

	body, contentType := multipartBody(t, map[string]string{
		"name":  name,
		"price": "199.99",
	}, imageNames...)

	resp, err := http.Post(server.URL+"/api/v1/product", contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var record api.RecordResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&record))
	return record
}

func TestHealthz(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateRecordEndpoint(t *testing.T) {
	t.Run("multipart create with images", func(t *testing.T) {
		server := newTestServer(t)

		body, contentType := multipartBody(t, map[string]string{
			"name":      "Walnut Desk",
			"category":  "furniture",
			"price":     "199.99",
			"published": "true",
			"alt_text":  "front view",
		}, "front.jpg", "side.jpg")

		resp, err := http.Post(server.URL+"/api/v1/product", contentType, body)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var record api.RecordResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&record))

		assert.Equal(t, "walnut-desk", record.Slug)
		assert.Equal(t, "product", record.Kind)
		assert.Equal(t, 199.99, record.Price)
		assert.True(t, record.Published)

		require.Len(t, record.Images, 2)
		assert.True(t, record.Images[0].IsPrimary)
		assert.Equal(t, "front view", record.Images[0].AltText)
		assert.Equal(t, 0, record.Images[0].Position)
		assert.Equal(t, 1, record.Images[1].Position)
		assert.Contains(t, record.Images[0].URL, "/media/products/")
	})

	t.Run("duplicate slug conflicts", func(t *testing.T) {
		server := newTestServer(t)
		createProduct(t, server, "Walnut Desk")

		body, contentType := multipartBody(t, map[string]string{"name": "Walnut Desk"})
		resp, err := http.Post(server.URL+"/api/v1/product", contentType, body)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("unknown kind rejected", func(t *testing.T) {
		server := newTestServer(t)

		body, contentType := multipartBody(t, map[string]string{"name": "x"})
		resp, err := http.Post(server.URL+"/api/v1/widget", contentType, body)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("bad price rejected", func(t *testing.T) {
		server := newTestServer(t)

		body, contentType := multipartBody(t, map[string]string{
			"name":  "Walnut Desk",
			"price": "not-a-number",
		})
		resp, err := http.Post(server.URL+"/api/v1/product", contentType, body)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetRecordEndpoint(t *testing.T) {
	server := newTestServer(t)
	created := createProduct(t, server, "Walnut Desk", "a.jpg")

	t.Run("found", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/api/v1/product/" + created.ID)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var record api.RecordResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&record))
		assert.Equal(t, created.ID, record.ID)
		assert.Len(t, record.Images, 1)
	})

	t.Run("unknown id", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/api/v1/product/2a8a2cd5-9d3a-4a0a-9c6e-93ad35a0f4c1")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("malformed id", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/api/v1/product/not-a-uuid")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestListRecordsEndpoint(t *testing.T) {
	server := newTestServer(t)
	createProduct(t, server, "Desk One")
	createProduct(t, server, "Desk Two")

	resp, err := http.Get(server.URL + "/api/v1/product")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var records []api.RecordResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&records))
	assert.Len(t, records, 2)
}

func TestUpdateRecordEndpoint(t *testing.T) {
	server := newTestServer(t)
	created := createProduct(t, server, "Walnut Desk")

	req, err := http.NewRequest(http.MethodPatch,
		server.URL+"/api/v1/product/"+created.ID,
		strings.NewReader(`{"name": "Oak Desk", "price": 249.5}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var record api.RecordResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&record))
	assert.Equal(t, "Oak Desk", record.Name)
	assert.Equal(t, 249.5, record.Price)
	// Renaming leaves the slug alone.
	assert.Equal(t, "walnut-desk", record.Slug)
}

func TestImageEndpoints(t *testing.T) {
	server := newTestServer(t)
	created := createProduct(t, server, "Walnut Desk", "a.jpg", "b.jpg")

	t.Run("append continues numbering", func(t *testing.T) {
		body, contentType := multipartBody(t, map[string]string{"alt_text": "detail"}, "c.jpg")

		resp, err := http.Post(server.URL+"/api/v1/product/"+created.ID+"/images", contentType, body)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var images []api.ImageResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&images))
		require.Len(t, images, 1)
		assert.Equal(t, 2, images[0].Position)
		assert.False(t, images[0].IsPrimary)
		assert.Equal(t, "detail", images[0].AltText)
	})

	t.Run("patch image metadata", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPatch,
			server.URL+"/api/v1/images/"+created.Images[1].ID,
			strings.NewReader(`{"alt_text": "side view"}`))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var image api.ImageResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&image))
		assert.Equal(t, "side view", image.AltText)
	})

	t.Run("delete image", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodDelete,
			server.URL+"/api/v1/images/"+created.Images[0].ID, nil)
		require.NoError(t, err)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNoContent, resp.StatusCode)

		getResp, err := http.Get(server.URL + "/api/v1/product/" + created.ID)
		require.NoError(t, err)
		defer getResp.Body.Close()

		var record api.RecordResponse
		require.NoError(t, json.NewDecoder(getResp.Body).Decode(&record))
		assert.Len(t, record.Images, 2)
	})

	t.Run("delete unknown image", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodDelete,
			server.URL+"/api/v1/images/2a8a2cd5-9d3a-4a0a-9c6e-93ad35a0f4c1", nil)
		require.NoError(t, err)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestDeleteRecordEndpoint(t *testing.T) {
	server := newTestServer(t)
	created := createProduct(t, server, "Walnut Desk", "a.jpg")

	req, err := http.NewRequest(http.MethodDelete,
		server.URL+"/api/v1/product/"+created.ID, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	getResp, err := http.Get(server.URL + "/api/v1/product/" + created.ID)
	require.NoError(t, err)
	defer getResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
}
