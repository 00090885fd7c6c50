package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/contentadmin/mediastore/pkg/mediastore"
)

// maxUploadBytes bounds the in-memory portion of multipart parsing.
const maxUploadBytes = 32 << 20

// ContentHandler translates admin HTTP requests into coordinator commands.
// It owns no business rules: it builds commands, calls the coordinator and
// maps typed errors onto HTTP statuses.
type ContentHandler struct {
	coordinator mediastore.Coordinator
}

// NewContentHandler creates a new content handler
func NewContentHandler(coordinator mediastore.Coordinator) *ContentHandler {
	return &ContentHandler{coordinator: coordinator}
}

// Routes returns the routes for content records and their images
func (h *ContentHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/{kind}", func(r chi.Router) {
		r.Post("/", h.CreateRecord)
		r.Get("/", h.ListRecords)
		r.Get("/{id}", h.GetRecord)
		r.Patch("/{id}", h.UpdateRecord)
		r.Delete("/{id}", h.DeleteRecord)
		r.Post("/{id}/images", h.AppendImages)
	})

	r.Patch("/images/{id}", h.UpdateImage)
	r.Delete("/images/{id}", h.DeleteImage)

	return r
}

// RecordResponse is the response body for a content record
type RecordResponse struct {
	ID          string           `json:"id"`
	Kind        string           `json:"kind"`
	Slug        string           `json:"slug"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Category    string           `json:"category,omitempty"`
	Price       float64          `json:"price,omitempty"`
	SortOrder   int              `json:"sort_order"`
	Published   bool             `json:"published"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	Images      []*ImageResponse `json:"images,omitempty"`
}

// ImageResponse is the response body for a media asset
type ImageResponse struct {
	ID        string `json:"id"`
	RecordID  string `json:"record_id"`
	URL       string `json:"url"`
	AltText   string `json:"alt_text,omitempty"`
	IsPrimary bool   `json:"is_primary"`
	Position  int    `json:"position"`
}

func recordResponse(record *mediastore.ContentRecord, assets []*mediastore.MediaAsset) *RecordResponse {
	resp := &RecordResponse{
		ID:          record.ID.String(),
		Kind:        string(record.Kind),
		Slug:        record.Slug,
		Name:        record.Name,
		Description: record.Description,
		Category:    record.Category,
		Price:       record.Price,
		SortOrder:   record.SortOrder,
		Published:   record.Published,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
	for _, asset := range assets {
		resp.Images = append(resp.Images, imageResponse(asset))
	}
	return resp
}

func imageResponse(asset *mediastore.MediaAsset) *ImageResponse {
	return &ImageResponse{
		ID:        asset.ID.String(),
		RecordID:  asset.RecordID.String(),
		URL:       asset.URL,
		AltText:   asset.AltText,
		IsPrimary: asset.IsPrimary,
		Position:  asset.Position,
	}
}

// CreateRecord creates a content record with its images from a multipart form
func (h *ContentHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	kind := mediastore.ContentKind(chi.URLParam(r, "kind"))

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	cmd := mediastore.CreateRecordCommand{
		Kind:        kind,
		Name:        r.FormValue("name"),
		Slug:        r.FormValue("slug"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
	}
	if v := r.FormValue("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			http.Error(w, "invalid price", http.StatusBadRequest)
			return
		}
		cmd.Price = price
	}
	if v := r.FormValue("sort_order"); v != "" {
		sortOrder, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "invalid sort_order", http.StatusBadRequest)
			return
		}
		cmd.SortOrder = sortOrder
	}
	cmd.Published = r.FormValue("published") == "true"

	inputs, closers, err := assetInputs(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer closeAll(closers)

	result, err := h.coordinator.CreateWithAssets(r.Context(), cmd, inputs)
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("Content record created", "record_id", result.Record.ID.String(), "kind", kind, "images", len(result.Assets))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, recordResponse(result.Record, result.Assets))
}

// GetRecord returns one record with its ordered images
func (h *ContentHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid record ID", http.StatusBadRequest)
		return
	}

	result, err := h.coordinator.GetRecordWithAssets(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, recordResponse(result.Record, result.Assets))
}

// ListRecords returns all records of a kind
func (h *ContentHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	kind := mediastore.ContentKind(chi.URLParam(r, "kind"))
	if !kind.Valid() {
		http.Error(w, "unknown content kind", http.StatusBadRequest)
		return
	}

	records, err := h.coordinator.ListRecords(r.Context(), kind)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := make([]*RecordResponse, 0, len(records))
	for _, record := range records {
		resp = append(resp, recordResponse(record, nil))
	}
	render.JSON(w, r, resp)
}

// UpdateRecordRequest is the request body for updating a record's fields
type UpdateRecordRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	SortOrder   *int     `json:"sort_order,omitempty"`
	Published   *bool    `json:"published,omitempty"`
}

// UpdateRecord patches a record's parent fields
func (h *ContentHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid record ID", http.StatusBadRequest)
		return
	}

	var req UpdateRecordRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	record, err := h.coordinator.UpdateRecord(r.Context(), mediastore.UpdateRecordCommand{
		RecordID:    id,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		SortOrder:   req.SortOrder,
		Published:   req.Published,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, recordResponse(record, nil))
}

// DeleteRecord deletes a record and cascades to its images
func (h *ContentHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid record ID", http.StatusBadRequest)
		return
	}

	if err := h.coordinator.RemoveRecord(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("Content record deleted", "record_id", id.String())
	w.WriteHeader(http.StatusNoContent)
}

// AppendImages adds images to an existing record
func (h *ContentHandler) AppendImages(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid record ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	inputs, closers, err := assetInputs(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer closeAll(closers)

	assets, err := h.coordinator.AppendAssets(r.Context(), id, inputs)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := make([]*ImageResponse, 0, len(assets))
	for _, asset := range assets {
		resp = append(resp, imageResponse(asset))
	}

	slog.Info("Images appended", "record_id", id.String(), "count", len(assets))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, resp)
}

// UpdateImageRequest is the request body for an image metadata patch
type UpdateImageRequest struct {
	AltText   *string `json:"alt_text,omitempty"`
	IsPrimary *bool   `json:"is_primary,omitempty"`
	Position  *int    `json:"position,omitempty"`
}

// UpdateImage patches image metadata; the stored file is untouched
func (h *ContentHandler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid image ID", http.StatusBadRequest)
		return
	}

	var req UpdateImageRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	asset, err := h.coordinator.UpdateAssetMetadata(r.Context(), id, mediastore.AssetPatch{
		AltText:   req.AltText,
		IsPrimary: req.IsPrimary,
		Position:  req.Position,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, imageResponse(asset))
}

// DeleteImage removes one image
func (h *ContentHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid image ID", http.StatusBadRequest)
		return
	}

	if err := h.coordinator.RemoveAsset(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("Image deleted", "asset_id", id.String())
	w.WriteHeader(http.StatusNoContent)
}

// assetInputs builds coordinator inputs from the "images" multipart field.
// alt_text values pair with files by index.
func assetInputs(r *http.Request) ([]mediastore.AssetInput, []func() error, error) {
	if r.MultipartForm == nil {
		return nil, nil, nil
	}

	altTexts := r.MultipartForm.Value["alt_text"]
	files := r.MultipartForm.File["images"]

	inputs := make([]mediastore.AssetInput, 0, len(files))
	closers := make([]func() error, 0, len(files))
	for i, header := range files {
		file, err := header.Open()
		if err != nil {
			closeAll(closers)
			return nil, nil, errors.New("unreadable upload: " + header.Filename)
		}
		closers = append(closers, file.Close)

		input := mediastore.AssetInput{
			Reader:       file,
			OriginalName: header.Filename,
			MimeType:     header.Header.Get("Content-Type"),
			Size:         header.Size,
		}
		if i < len(altTexts) {
			input.AltText = altTexts[i]
		}
		inputs = append(inputs, input)
	}

	return inputs, closers, nil
}

func closeAll(closers []func() error) {
	for _, close := range closers {
		_ = close()
	}
}

// writeError maps coordinator errors onto HTTP statuses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var partial *mediastore.PartialCreateError
	switch {
	case errors.As(err, &partial):
		slog.Error("Create finished partially", "record_id", partial.RecordID.String(), "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{
			"error":     "record created but image attachment failed",
			"record_id": partial.RecordID.String(),
		})
	case errors.Is(err, mediastore.ErrInvalidCommand):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, mediastore.ErrDuplicateSlug):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, mediastore.ErrRecordNotFound), errors.Is(err, mediastore.ErrAssetNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		slog.Error("Request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
