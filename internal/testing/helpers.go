package testing

import (
	"context"
	"testing"
	"time"

	"github.com/imamik/redisflow/internal/platform/azure"
)

// TestContext returns a context with a reasonable timeout for tests.
func TestContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// Targets returns the targets of the recorded calls of one operation, in
// invocation order.
func Targets(mock *azure.MockClient, op string) []string {
	var result []string
	for _, c := range mock.CallsTo(op) {
		result = append(result, c.Target)
	}
	return result
}
