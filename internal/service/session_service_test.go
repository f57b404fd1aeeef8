package service

import (
	"errors"
	"testing"
	"time"
)

func testCreds() AdminCredentials {
	return AdminCredentials{
		Email:    "studio@example.com",
		Password: "garden-secret",
	}
}

func TestSessionLogin_IssuesExpiringToken(t *testing.T) {
	svc := NewSessionService(testCreds(), 12*time.Hour)

	session, err := svc.Login("studio@example.com", "garden-secret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if session.Token == "" {
		t.Fatal("expected an opaque token")
	}
	if len(session.Token) < 40 {
		t.Errorf("token looks too short to be 32 random bytes hex: %d chars", len(session.Token))
	}
	if remaining := time.Until(session.ExpiresAt); remaining < 11*time.Hour || remaining > 13*time.Hour {
		t.Errorf("expected roughly 12h expiry, got %v", remaining)
	}

	authorized, err := svc.Authorize(session.Token)
	if err != nil {
		t.Fatalf("freshly issued token rejected: %v", err)
	}
	if authorized.Email != "studio@example.com" {
		t.Errorf("session lost its email: %+v", authorized)
	}
}

func TestSessionLogin_FailureShapeDoesNotLeak(t *testing.T) {
	svc := NewSessionService(testCreds(), 0)

	_, wrongPassword := svc.Login("studio@example.com", "nope")
	_, unknownEmail := svc.Login("stranger@example.com", "garden-secret")

	if !errors.Is(wrongPassword, ErrInvalidCredentials) || !errors.Is(unknownEmail, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v and %v", wrongPassword, unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Error("wrong password and unknown email must be indistinguishable")
	}
}

func TestSessionLogin_NotConfigured(t *testing.T) {
	svc := NewSessionService(AdminCredentials{}, 0)

	_, err := svc.Login("anyone@example.com", "anything")
	if !errors.Is(err, ErrAdminNotConfigured) {
		t.Fatalf("expected ErrAdminNotConfigured, got %v", err)
	}
}

func TestSessionAuthorize_Failures(t *testing.T) {
	svc := NewSessionService(testCreds(), 0)

	for _, token := range []string{"", "unknown-token"} {
		if _, err := svc.Authorize(token); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("Authorize(%q): expected ErrUnauthorized, got %v", token, err)
		}
	}
}

func TestSessionAuthorize_ExpiredTokenEvicted(t *testing.T) {
	svc := NewSessionService(testCreds(), 12*time.Hour).(*sessionService)

	session, err := svc.Login("studio@example.com", "garden-secret")
	if err != nil {
		t.Fatal(err)
	}

	// Move the clock one second past the expiry instant.
	svc.now = func() time.Time { return session.ExpiresAt.Add(time.Second) }

	if _, err := svc.Authorize(session.Token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for an expired token, got %v", err)
	}

	svc.mu.Lock()
	_, stillThere := svc.sessions[session.Token]
	svc.mu.Unlock()
	if stillThere {
		t.Error("expired session must be evicted on lookup")
	}
}

func TestSessionAuthorize_StaticTokenBypassesExpiry(t *testing.T) {
	creds := testCreds()
	creds.StaticToken = "deploy-token-123"
	svc := NewSessionService(creds, 0)

	session, err := svc.Authorize("deploy-token-123")
	if err != nil {
		t.Fatalf("static token rejected: %v", err)
	}
	if session.Email != creds.Email {
		t.Errorf("static session email mismatch: %+v", session)
	}

	if _, err := svc.Authorize("deploy-token-999"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("near-miss static token must be rejected, got %v", err)
	}
}

func TestSessionLogin_BcryptHashMode(t *testing.T) {
	// bcrypt hash of "password" at cost 10.
	creds := AdminCredentials{
		Email:        "studio@example.com",
		PasswordHash: "$2a$10$LTbSbQb4noqh8L0Nd.v.d.Zm6f.sp7VlY7FwnmvHb7OGrQtYH9wGC",
	}
	svc := NewSessionService(creds, 0)

	if _, err := svc.Login("studio@example.com", "password"); err != nil {
		t.Fatalf("bcrypt mode login failed: %v", err)
	}
	if _, err := svc.Login("studio@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSessionSweep_DropsExpired(t *testing.T) {
	svc := NewSessionService(testCreds(), time.Hour).(*sessionService)

	first, err := svc.Login("studio@example.com", "garden-secret")
	if err != nil {
		t.Fatal(err)
	}

	// Jump past expiry; the sweep on the next login drops the stale entry.
	svc.now = func() time.Time { return first.ExpiresAt.Add(time.Minute) }

	second, err := svc.Login("studio@example.com", "garden-secret")
	if err != nil {
		t.Fatal(err)
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	if _, ok := svc.sessions[first.Token]; ok {
		t.Error("stale session survived the login sweep")
	}
	if _, ok := svc.sessions[second.Token]; !ok {
		t.Error("fresh session missing from the map")
	}
}
