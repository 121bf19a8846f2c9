package testsupport

import (
	"log/slog"
	"testing"

	"meetscribe/internal/logging"
)

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Logf("%s", p)
	return len(p), nil
}

// NewLogger returns a debug-level logger that writes through t.Log so output
// only surfaces for failing tests.
func NewLogger(t testing.TB) *slog.Logger {
	t.Helper()
	logger, err := logging.New(logging.Options{
		Level:  "debug",
		Format: "console",
		Writer: testWriter{t: t},
	})
	if err != nil {
		t.Fatalf("build test logger: %v", err)
	}
	return logger
}
