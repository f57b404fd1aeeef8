package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultSessionTTL is how long an admin session stays valid.
	DefaultSessionTTL = 12 * time.Hour

	sessionTokenBytes = 32
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("invalid or expired session")
	ErrAdminNotConfigured = errors.New("admin access is not configured")
)

// Session is an ephemeral admin authorization: opaque token, the email it was
// issued to, and an absolute expiry. Sessions live only in process memory; a
// restart invalidates them all and clients simply re-login.
type Session struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AdminCredentials holds the two mutually exclusive deployment modes: an
// email/password pair that mints expiring sessions, and/or a static token
// accepted as-is without expiry.
type AdminCredentials struct {
	Email        string
	Password     string
	PasswordHash string // optional bcrypt hash, takes precedence over Password
	StaticToken  string
}

// SessionService issues and validates admin bearer tokens.
type SessionService interface {
	Login(email, password string) (*Session, error)
	Authorize(token string) (*Session, error)
}

type sessionService struct {
	creds AdminCredentials
	ttl   time.Duration
	now   func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionService creates a new instance of SessionService. A non-positive
// ttl falls back to DefaultSessionTTL.
func NewSessionService(creds AdminCredentials, ttl time.Duration) SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &sessionService{
		creds:    creds,
		ttl:      ttl,
		now:      func() time.Time { return time.Now().UTC() },
		sessions: make(map[string]*Session),
	}
}

// Login validates the supplied credentials and mints a fresh session token.
// Wrong email and wrong password produce the same error, so the response
// leaks nothing about which part failed.
func (s *sessionService) Login(email, password string) (*Session, error) {
	if s.creds.Email == "" || (s.creds.Password == "" && s.creds.PasswordHash == "") {
		return nil, ErrAdminNotConfigured
	}

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.creds.Email)) == 1
	passwordOK := s.verifyPassword(password)
	if !emailOK || !passwordOK {
		return nil, ErrInvalidCredentials
	}

	token, err := mintToken()
	if err != nil {
		return nil, err
	}

	session := &Session{
		Token:     token,
		Email:     email,
		ExpiresAt: s.now().Add(s.ttl),
	}

	s.mu.Lock()
	s.sweepLocked()
	s.sessions[token] = session
	s.mu.Unlock()

	return session, nil
}

// Authorize resolves a bearer token to its session. Expired entries are
// evicted on lookup. A configured static admin token authorizes without a
// session lookup and never expires.
func (s *sessionService) Authorize(token string) (*Session, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	if s.creds.StaticToken != "" &&
		subtle.ConstantTimeCompare([]byte(token), []byte(s.creds.StaticToken)) == 1 {
		return &Session{Token: token, Email: s.creds.Email}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[token]
	if !ok {
		return nil, ErrUnauthorized
	}
	if s.now().After(session.ExpiresAt) {
		delete(s.sessions, token)
		return nil, ErrUnauthorized
	}

	return session, nil
}

func (s *sessionService) verifyPassword(password string) bool {
	if s.creds.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.creds.PasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.creds.Password)) == 1
}

// sweepLocked drops expired sessions so the map stays bounded even when
// tokens are issued and never re-checked. Caller holds mu.
func (s *sessionService) sweepLocked() {
	now := s.now()
	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}

func mintToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
