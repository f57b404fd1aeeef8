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

// OrderRequest is an order inquiry from the gallery page.
type OrderRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Message   string `json:"message"`
	ArtworkID string `json:"artwork_id"`
}

// ConsultationRequest is a consultation form submission.
type ConsultationRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// SubscribeRequest is a newsletter signup.
type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// LeadHandler handles the public contact endpoints that fan out to the SMTP
// relay and the lead webhook. Every outbound call is awaited fully and made
// exactly once.
type LeadHandler struct {
	catalog service.CatalogService
	mailer  *integration.Mailer
	webhook *integration.LeadWebhook
	logger  *zap.Logger
}

// NewLeadHandler creates a new LeadHandler.
func NewLeadHandler(catalog service.CatalogService, mailer *integration.Mailer, webhook *integration.LeadWebhook, logger *zap.Logger) *LeadHandler {
	return &LeadHandler{
		catalog: catalog,
		mailer:  mailer,
		webhook: webhook,
		logger:  logger,
	}
}

// RegisterRoutes registers the lead endpoints behind the rate limiter.
func (h *LeadHandler) RegisterRoutes(r chi.Router, rateLimit func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(rateLimit)
		r.Post("/api/order", h.Order)
		r.Post("/api/consultation", h.Consultation)
		r.Post("/api/subscribe", h.Subscribe)
	})
}

// Order emails an order inquiry to the studio, resolving the artwork title
// when an id is supplied.
func (h *LeadHandler) Order(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if !h.decode(w, r, &req) {
		return
	}

	title := ""
	if req.ArtworkID != "" {
		art, err := h.catalog.Get(r.Context(), req.ArtworkID)
		switch {
		case err == nil:
			title = art.TitleEN
			if title == "" {
				title = art.TitleUK
			}
		case errors.Is(err, service.ErrArtworkNotFound):
			// Stale id from the client; the inquiry still goes out.
		default:
			h.logger.Error("Failed to resolve ordered artwork", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to process order")
			return
		}
	}

	if err := h.mailer.OrderNotification(req.Name, req.Email, req.Message, title); err != nil {
		h.respondMailError(w, "order", err)
		return
	}

	h.logger.Info("Order inquiry sent", zap.String("artwork_id", req.ArtworkID))
	middleware.RespondWithJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// Consultation emails the request to the studio and forwards the lead to the
// configured webhook.
func (h *LeadHandler) Consultation(w http.ResponseWriter, r *http.Request) {
	var req ConsultationRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.mailer.ConsultationNotification(req.Name, req.Email, req.Phone, req.Message); err != nil {
		h.respondMailError(w, "consultation", err)
		return
	}

	if err := h.webhook.Forward(r.Context(), map[string]string{
		"type":    "consultation",
		"name":    req.Name,
		"email":   req.Email,
		"phone":   req.Phone,
		"message": req.Message,
	}); err != nil {
		h.logger.Error("Failed to forward consultation lead", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "failed to process consultation request")
		return
	}

	h.logger.Info("Consultation request sent")
	middleware.RespondWithJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// Subscribe reports a newsletter signup to the studio.
func (h *LeadHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.mailer.SubscriptionNotification(req.Email); err != nil {
		h.respondMailError(w, "subscription", err)
		return
	}

	h.logger.Info("Newsletter signup recorded")
	middleware.RespondWithJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

func (h *LeadHandler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := middleware.DecodeAndValidate(r, v); err != nil {
		h.logger.Debug("Lead validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return false
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (h *LeadHandler) respondMailError(w http.ResponseWriter, kind string, err error) {
	if errors.Is(err, integration.ErrMailerNotConfigured) {
		middleware.RespondWithError(w, http.StatusServiceUnavailable, "email delivery is not configured")
		return
	}
	h.logger.Error("Failed to send notification", zap.String("kind", kind), zap.Error(err))
	middleware.RespondWithError(w, http.StatusBadGateway, "failed to send notification")
}
