package integration

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestLeadWebhook_DisabledAcceptsSilently(t *testing.T) {
	hook := NewLeadWebhook("", zap.NewNop())

	if hook.Enabled() {
		t.Error("webhook with empty url must be disabled")
	}
	if err := hook.Forward(context.Background(), map[string]string{"name": "Olena"}); err != nil {
		t.Errorf("disabled webhook must accept silently, got %v", err)
	}
}

func TestLeadWebhook_ForwardPostsJSON(t *testing.T) {
	var received map[string]string
	var contentType string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("unreadable webhook body: %v", err)
		}
	}))
	defer upstream.Close()

	hook := NewLeadWebhook(upstream.URL, zap.NewNop())

	payload := map[string]string{"type": "consultation", "name": "Olena"}
	if err := hook.Forward(context.Background(), payload); err != nil {
		t.Fatal(err)
	}

	if contentType != "application/json" {
		t.Errorf("unexpected content type %q", contentType)
	}
	if received["type"] != "consultation" || received["name"] != "Olena" {
		t.Errorf("payload not forwarded intact: %v", received)
	}
}

func TestLeadWebhook_NonSuccessStatusIsUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer upstream.Close()

	hook := NewLeadWebhook(upstream.URL, zap.NewNop())

	err := hook.Forward(context.Background(), map[string]string{"name": "Olena"})
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}
}

func TestLeadWebhook_UnreachableEndpointIsUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close()

	hook := NewLeadWebhook(upstream.URL, zap.NewNop())

	err := hook.Forward(context.Background(), map[string]string{"name": "Olena"})
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}
}
