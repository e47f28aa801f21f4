package logger

import (
	"strings"
	"testing"
)

func TestSanitizeKVsRedactsSecrets(t *testing.T) {
	out := sanitizeKVs([]interface{}{
		"path", "/api/auth/login",
		"password", "hunter2",
		"session_cookie", "abc.def",
		"username", "admin",
	})
	if len(out) != 8 {
		t.Fatalf("unexpected length: %d", len(out))
	}
	if out[1] != "/api/auth/login" {
		t.Fatalf("path should pass through, got %v", out[1])
	}
	if out[3] != "[REDACTED]" || out[5] != "[REDACTED]" {
		t.Fatalf("expected secrets redacted, got %v / %v", out[3], out[5])
	}
	hashed, _ := out[7].(string)
	if !strings.HasPrefix(hashed, "hash:") || strings.Contains(hashed, "admin") {
		t.Fatalf("expected hashed username, got %q", hashed)
	}
}

func TestSanitizeKVsOddLength(t *testing.T) {
	out := sanitizeKVs([]interface{}{"count", 3, "dangling"})
	if len(out) != 3 || out[2] != "dangling" {
		t.Fatalf("unexpected output: %v", out)
	}
}

func TestNewTestModeIsNop(t *testing.T) {
	l, err := New("test")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.With("service", "X").Info("discarded", "k", "v")
}
