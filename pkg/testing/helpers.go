package testing

import (
	"context"
	"os"
	"testing"
	"time"
)

// CreateTestContext creates a context with a timeout for tests
func CreateTestContext(t *testing.T, timeout time.Duration) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}

// SkipWithoutDocker skips container-backed tests when SKIP_DOCKER_TESTS is set
func SkipWithoutDocker(t *testing.T) {
	t.Helper()
	if os.Getenv("SKIP_DOCKER_TESTS") != "" {
		t.Skip("SKIP_DOCKER_TESTS is set")
	}
}
