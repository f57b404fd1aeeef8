package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"inner-garden/internal/domain"
	"inner-garden/internal/middleware"
	"inner-garden/internal/service"
)

// CollectionResponse is the public catalog payload.
type CollectionResponse struct {
	Success   bool             `json:"success"`
	Artworks  []domain.Artwork `json:"artworks"`
	UpdatedAt *time.Time       `json:"updated_at"`
}

// ArtworkResponse wraps a single affected artwork.
type ArtworkResponse struct {
	Success bool            `json:"success"`
	Artwork *domain.Artwork `json:"artwork"`
}

// SuccessResponse is the bare success flag, used by deletes.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// ArtworkHandler handles the public catalog read and the admin CRUD.
type ArtworkHandler struct {
	catalog service.CatalogService
	logger  *zap.Logger
}

// NewArtworkHandler creates a new ArtworkHandler.
func NewArtworkHandler(catalog service.CatalogService, logger *zap.Logger) *ArtworkHandler {
	return &ArtworkHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// RegisterRoutes registers catalog routes. Every admin route passes through
// adminAuth before touching the store.
func (h *ArtworkHandler) RegisterRoutes(r chi.Router, adminAuth func(http.Handler) http.Handler) {
	r.Get("/api/artworks", h.ListPublic)

	r.Route("/api/admin/artworks", func(r chi.Router) {
		r.Use(adminAuth)
		r.Get("/", h.ListAdmin)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// ListPublic returns the full collection with its modification timestamp.
func (h *ArtworkHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	collection, err := h.catalog.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to load artwork collection", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load artworks")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, CollectionResponse{
		Success:   true,
		Artworks:  collection.Artworks,
		UpdatedAt: collection.UpdatedAt,
	})
}

// ListAdmin returns the collection for the admin panel.
func (h *ArtworkHandler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	collection, err := h.catalog.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to load artwork collection", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load artworks")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"artworks": collection.Artworks,
	})
}

// Create normalizes the posted fields into a fresh artwork.
func (h *ArtworkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input map[string]any
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.Debug("Artwork create decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	art, err := h.catalog.Create(r.Context(), input)
	if err != nil {
		h.logger.Error("Failed to create artwork", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to save artwork")
		return
	}

	h.logger.Info("Artwork created", zap.String("artwork_id", art.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, ArtworkResponse{Success: true, Artwork: art})
}

// Update merges the posted fields over an existing artwork.
func (h *ArtworkHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input map[string]any
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.Debug("Artwork update decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	art, err := h.catalog.Update(r.Context(), id, input)
	if err != nil {
		if errors.Is(err, service.ErrArtworkNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "artwork not found")
			return
		}
		h.logger.Error("Failed to update artwork", zap.Error(err), zap.String("artwork_id", id))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to save artwork")
		return
	}

	h.logger.Info("Artwork updated", zap.String("artwork_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, ArtworkResponse{Success: true, Artwork: art})
}

// Delete removes an artwork from the collection.
func (h *ArtworkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.catalog.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrArtworkNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "artwork not found")
			return
		}
		h.logger.Error("Failed to delete artwork", zap.Error(err), zap.String("artwork_id", id))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to save artwork")
		return
	}

	h.logger.Info("Artwork deleted", zap.String("artwork_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, SuccessResponse{Success: true})
}
