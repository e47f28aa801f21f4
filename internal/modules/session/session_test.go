package session

import (
	"strings"
	"testing"
)

func TestIssueVerify(t *testing.T) {
	s, err := NewSigner("s3cret")
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}
	v, err := s.Issue()
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	token, sig, _ := strings.Cut(v, ".")
	if len(token) != 64 || len(sig) != 64 {
		t.Fatalf("unexpected cookie shape %q", v)
	}
	if !s.Verify(v) {
		t.Fatalf("expected own cookie to verify")
	}

	other, _ := NewSigner("rotated")
	if other.Verify(v) {
		t.Fatalf("cookie must not verify under a rotated secret")
	}

	v2, _ := s.Issue()
	if v2 == v {
		t.Fatalf("tokens must be random")
	}
}

func TestVerifyRejectsTampering(t *testing.T) {
	s, _ := NewSigner("s3cret")
	v, _ := s.Issue()
	token, sig, _ := strings.Cut(v, ".")

	flipped := []byte(sig)
	if flipped[0] == 'a' {
		flipped[0] = 'b'
	} else {
		flipped[0] = 'a'
	}

	for _, bad := range []string{
		"",
		token,
		token + ".",
		"." + sig,
		token + "." + string(flipped),
		token + "x." + sig,
		token + "." + sig + ".extra",
		token + ".zz",
	} {
		if s.Verify(bad) {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestNewSignerRequiresSecret(t *testing.T) {
	if _, err := NewSigner(""); err != ErrNoSecret {
		t.Fatalf("expected ErrNoSecret, got %v", err)
	}
}

func TestIsPublicPath(t *testing.T) {
	public := []string{"/login", "/api/auth/login", "/api/auth/logout", "/api/health", "/metrics", "/_next/static/a", "/favicon.ico", "/logo.svg"}
	for _, p := range public {
		if !IsPublicPath(p) {
			t.Fatalf("%s should be public", p)
		}
	}
	private := []string{"/", "/api/content", "/api/healthz", "/loginx", "/dashboard", "/api/classification/update"}
	for _, p := range private {
		if IsPublicPath(p) {
			t.Fatalf("%s should be protected", p)
		}
	}
}

func TestIsAPIPath(t *testing.T) {
	if !IsAPIPath("/api/content") || !IsAPIPath("/api") {
		t.Fatalf("expected api paths")
	}
	if IsAPIPath("/apis") || IsAPIPath("/dashboard") {
		t.Fatalf("expected page paths")
	}
}
