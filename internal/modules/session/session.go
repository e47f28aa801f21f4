package session

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"
)

const (
	CookieName = "ci_session"
	DefaultTTL = 24 * time.Hour

	tokenBytes = 32
)

var ErrNoSecret = errors.New("session secret is empty")

// Signer issues and verifies "<token>.<hex hmac>" cookie values. The cookie
// carries the whole session; rotating the secret revokes every session.
type Signer struct {
	secret []byte
}

func NewSigner(secret string) (*Signer, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	return &Signer{secret: []byte(secret)}, nil
}

// Issue returns a fresh cookie value.
func (s *Signer) Issue() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)
	return token + "." + hex.EncodeToString(s.mac(token)), nil
}

// Verify recomputes the keyed hash and compares in constant time.
func (s *Signer) Verify(value string) bool {
	token, sig, ok := strings.Cut(value, ".")
	if !ok || token == "" || sig == "" || strings.Contains(sig, ".") {
		return false
	}
	got, err := hex.DecodeString(sig)
	if err != nil {
		return false
	}
	return hmac.Equal(got, s.mac(token))
}

func (s *Signer) mac(token string) []byte {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(token))
	return h.Sum(nil)
}

var publicRoutes = []string{"/login", "/api/auth/login", "/api/auth/logout", "/api/health", "/metrics"}

// IsPublicPath reports whether a path bypasses the session check: the login
// and logout routes, health, metrics and static assets.
func IsPublicPath(path string) bool {
	for _, r := range publicRoutes {
		if path == r || strings.HasPrefix(path, r+"/") {
			return true
		}
	}
	return strings.HasPrefix(path, "/_next") ||
		strings.HasPrefix(path, "/favicon") ||
		strings.Contains(path, ".")
}

// IsAPIPath separates JSON routes, which get a 401, from pages, which get a
// login redirect.
func IsAPIPath(path string) bool {
	return path == "/api" || strings.HasPrefix(path, "/api/")
}
