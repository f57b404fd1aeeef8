package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"

	"inner-garden/internal/service"
)

func adminTestService(t *testing.T) (service.SessionService, string) {
	t.Helper()
	svc := service.NewSessionService(service.AdminCredentials{
		Email:       "studio@example.com",
		Password:    "garden-secret",
		StaticToken: "static-deploy-token",
	}, 12*time.Hour)

	session, err := svc.Login("studio@example.com", "garden-secret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	return svc, session.Token
}

func protectedHandler(svc service.SessionService, called *bool) http.Handler {
	mw := AdminAuthMiddleware(svc, zap.NewNop())
	return mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if called != nil {
			*called = true
		}
		w.WriteHeader(http.StatusOK)
	}))
}

func TestProperty_AdminEndpointsRejectMissingTokens(t *testing.T) {
	properties := gopter.NewProperties(nil)

	svc, _ := adminTestService(t)

	properties.Property("requests without a token are rejected", prop.ForAll(
		func(pathSuffix string, method string) bool {
			handler := protectedHandler(svc, nil)

			req := httptest.NewRequest(method, "/"+pathSuffix+"x", nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			return w.Code == http.StatusUnauthorized
		},
		gen.AlphaString(),
		gen.OneConstOf("GET", "POST", "PUT", "DELETE"),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_GarbageTokensAreRejected(t *testing.T) {
	properties := gopter.NewProperties(nil)

	svc, _ := adminTestService(t)

	properties.Property("unknown bearer tokens are rejected with 401", prop.ForAll(
		func(token string) bool {
			handler := protectedHandler(svc, nil)

			req := httptest.NewRequest("GET", "/admin", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			return w.Code == http.StatusUnauthorized
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestAdminAuth_ValidSessionTokenPasses(t *testing.T) {
	svc, token := adminTestService(t)

	called := false
	handler := protectedHandler(svc, &called)

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK || !called {
		t.Fatalf("valid session token rejected: status %d, called %v", w.Code, called)
	}
}

func TestAdminAuth_StaticTokenAcceptedOnBothHeaders(t *testing.T) {
	svc, _ := adminTestService(t)

	set := []func(*http.Request){
		func(r *http.Request) { r.Header.Set("Authorization", "Bearer static-deploy-token") },
		func(r *http.Request) { r.Header.Set("x-admin-token", "static-deploy-token") },
	}

	for i, apply := range set {
		called := false
		handler := protectedHandler(svc, &called)

		req := httptest.NewRequest("GET", "/admin", nil)
		apply(req)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK || !called {
			t.Errorf("variant %d: static token rejected: status %d", i, w.Code)
		}
	}
}

func TestAdminAuth_MalformedAuthorizationHeader(t *testing.T) {
	svc, token := adminTestService(t)

	for _, header := range []string{token, "Basic " + token, "Bearer"} {
		handler := protectedHandler(svc, nil)

		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %d", header, w.Code)
		}
	}
}

func TestAdminAuth_AdminTokenHeaderSurvivesForeignAuthorization(t *testing.T) {
	svc, token := adminTestService(t)

	// A non-Bearer Authorization header (e.g. Basic auth from a proxy) must
	// not shadow the x-admin-token header.
	called := false
	handler := protectedHandler(svc, &called)

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	req.Header.Set("x-admin-token", token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK || !called {
		t.Fatalf("x-admin-token ignored alongside a non-Bearer Authorization header: status %d", w.Code)
	}
}

func TestAdminAuth_EmailReachesContext(t *testing.T) {
	svc, token := adminTestService(t)

	mw := AdminAuthMiddleware(svc, zap.NewNop())
	var got string
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetAdminEmail(r.Context())
	}))

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got != "studio@example.com" {
		t.Errorf("expected admin email in context, got %q", got)
	}
}
