package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/contentadmin/mediastore/pkg/mediastore"
)

// NewRouter assembles the admin API. Authentication and request-shape
// validation live upstream of this service and are deliberately absent here.
func NewRouter(coordinator mediastore.Coordinator) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	handler := NewContentHandler(coordinator)
	r.Mount("/api/v1", handler.Routes())

	return r
}
