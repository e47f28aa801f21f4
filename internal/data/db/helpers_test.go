package db

import (
	"testing"

	"github.com/yungbote/content-intel-backend/internal/platform/logger"
)

func testLogger(tb testing.TB) *logger.Logger {
	tb.Helper()
	l, err := logger.New("test")
	if err != nil {
		tb.Fatalf("logger: %v", err)
	}
	return l
}
