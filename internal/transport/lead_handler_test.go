package transport

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"inner-garden/internal/integration"
	"inner-garden/internal/repository"
	"inner-garden/internal/service"
)

func newLeadRouter(t *testing.T, mailer *integration.Mailer, webhook *integration.LeadWebhook) chi.Router {
	t.Helper()

	store := repository.NewFileArtworkStore(filepath.Join(t.TempDir(), "artworks.json"))
	catalog := service.NewCatalogService(store)
	logger := zap.NewNop()

	if mailer == nil {
		mailer = integration.NewMailer(integration.SMTPConfig{}, logger)
	}
	if webhook == nil {
		webhook = integration.NewLeadWebhook("", logger)
	}

	router := chi.NewRouter()
	noLimit := func(next http.Handler) http.Handler { return next }
	NewLeadHandler(catalog, mailer, webhook, logger).RegisterRoutes(router, noLimit)
	return router
}

func TestOrder_MailerNotConfigured(t *testing.T) {
	router := newLeadRouter(t, nil, nil)

	w := doJSON(t, router, "POST", "/api/order", "", map[string]any{
		"name":  "Olena",
		"email": "olena@example.com",
	})
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", w.Code, w.Body.String())
	}
	if decodeBody(t, w)["success"] != false {
		t.Error("expected success false")
	}
}

func TestOrder_ValidationErrors(t *testing.T) {
	router := newLeadRouter(t, nil, nil)

	cases := []struct {
		name  string
		body  map[string]any
		field string
	}{
		{"missing name", map[string]any{"email": "olena@example.com"}, "name"},
		{"missing email", map[string]any{"name": "Olena"}, "email"},
		{"bad email", map[string]any{"name": "Olena", "email": "not-an-address"}, "email"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, router, "POST", "/api/order", "", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			fields, _ := decodeBody(t, w)["fields"].([]any)
			if len(fields) == 0 {
				t.Fatal("expected field errors")
			}
			if got := fields[0].(map[string]any)["field"]; got != tc.field {
				t.Errorf("expected %s field error, got %v", tc.field, got)
			}
		})
	}
}

func TestSubscribe_RequiresValidEmail(t *testing.T) {
	router := newLeadRouter(t, nil, nil)

	w := doJSON(t, router, "POST", "/api/subscribe", "", map[string]any{"email": "garbage"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestConsultation_MailerNotConfiguredShortCircuitsWebhook(t *testing.T) {
	var forwarded bool
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		forwarded = true
	}))
	defer upstream.Close()

	router := newLeadRouter(t, nil, integration.NewLeadWebhook(upstream.URL, zap.NewNop()))

	w := doJSON(t, router, "POST", "/api/consultation", "", map[string]any{
		"name":  "Olena",
		"email": "olena@example.com",
	})
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	if forwarded {
		t.Error("webhook must not fire when the notification email fails")
	}
}
