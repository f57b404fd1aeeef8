package transport

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"inner-garden/internal/integration"
	"inner-garden/internal/middleware"
	"inner-garden/internal/service"
)

// CheckoutRequest asks for a payment session for one artwork.
type CheckoutRequest struct {
	ArtworkID string `json:"artwork_id" validate:"required"`
}

// CheckoutResponse carries the hosted checkout URL.
type CheckoutResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
}

// VisualizeRequest carries a room photo as a data URL or public URL.
type VisualizeRequest struct {
	Image string `json:"image" validate:"required"`
}

// VisualizeResponse carries the placement suggestion text.
type VisualizeResponse struct {
	Success    bool   `json:"success"`
	Suggestion string `json:"suggestion"`
}

// CommerceHandler handles the optional Stripe checkout and room-visualization
// proxy endpoints.
type CommerceHandler struct {
	catalog  service.CatalogService
	checkout *integration.CheckoutClient
	vision   *integration.VisionClient
	logger   *zap.Logger
}

// NewCommerceHandler creates a new CommerceHandler.
func NewCommerceHandler(catalog service.CatalogService, checkout *integration.CheckoutClient, vision *integration.VisionClient, logger *zap.Logger) *CommerceHandler {
	return &CommerceHandler{
		catalog:  catalog,
		checkout: checkout,
		vision:   vision,
		logger:   logger,
	}
}

// RegisterRoutes registers checkout and visualization routes.
func (h *CommerceHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/checkout", h.Checkout)
	r.Post("/api/visualize", h.Visualize)
}

// Checkout creates a Stripe checkout session for an available artwork.
func (h *CommerceHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	art, err := h.catalog.Get(r.Context(), req.ArtworkID)
	if err != nil {
		if errors.Is(err, service.ErrArtworkNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "artwork not found")
			return
		}
		h.logger.Error("Failed to load artwork for checkout", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create checkout session")
		return
	}

	url, err := h.checkout.CreateSession(art)
	if err != nil {
		switch {
		case errors.Is(err, integration.ErrCheckoutNotConfigured):
			middleware.RespondWithError(w, http.StatusServiceUnavailable, "checkout is not configured")
		case errors.Is(err, integration.ErrArtworkNotPurchasable):
			middleware.RespondWithError(w, http.StatusBadRequest, "artwork is not available for purchase")
		default:
			h.logger.Error("Checkout session creation failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusBadGateway, "failed to create checkout session")
		}
		return
	}

	h.logger.Info("Checkout session created", zap.String("artwork_id", art.ID))
	middleware.RespondWithJSON(w, http.StatusOK, CheckoutResponse{Success: true, URL: url})
}

// Visualize proxies a room photo to the vision model for a placement
// suggestion.
func (h *CommerceHandler) Visualize(w http.ResponseWriter, r *http.Request) {
	var req VisualizeRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	suggestion, err := h.vision.SuggestPlacement(r.Context(), req.Image)
	if err != nil {
		if errors.Is(err, integration.ErrVisionNotConfigured) {
			middleware.RespondWithError(w, http.StatusServiceUnavailable, "room visualization is not configured")
			return
		}
		h.logger.Error("Vision suggestion failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "failed to analyze room photo")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, VisualizeResponse{Success: true, Suggestion: suggestion})
}
