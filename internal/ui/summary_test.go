package ui

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/imamik/redisflow/internal/platform/azure"
	"github.com/imamik/redisflow/internal/provisioning/workflow"
)

func TestRenderSummary_Success(t *testing.T) {
	outcome := &workflow.Outcome{
		ResourceGroupName: "RedisRGabcd1234",
		Caches: []*azure.Cache{
			{Name: "rc1abcd1234", Tier: "Basic", Family: "C", Capacity: 0},
			{Name: "rc2abcd1234", Tier: "Premium", Family: "P", Capacity: 1},
		},
		PremiumProcessed: []string{"rc2abcd1234"},
		Deleted:          []string{"rc2abcd1234", "rc1abcd1234"},
		CleanupRan:       true,
		Duration:         90 * time.Second,
	}

	out := RenderSummary(outcome, nil, 21)

	assert.Contains(t, out, "redisflow run")
	assert.Contains(t, out, "RedisRGabcd1234")
	assert.Contains(t, out, "ARM calls:       21")
	assert.Contains(t, out, "rc1abcd1234")
	assert.Contains(t, out, "P1")
	assert.Contains(t, out, "maintained, deleted")
	assert.Contains(t, out, "Workflow")
	assert.Contains(t, out, "Cleanup")
	assert.NotContains(t, out, crossMark)
}

func TestRenderSummary_Failures(t *testing.T) {
	outcome := &workflow.Outcome{
		CleanupSkipped: true,
		DetachedErr:    errors.New("reboot rejected"),
	}

	out := RenderSummary(outcome, errors.New("forbidden"), -1)

	assert.Contains(t, out, "(not created)")
	assert.NotContains(t, out, "ARM calls")
	assert.Contains(t, out, "forbidden")
	assert.Contains(t, out, "reboot rejected")
	assert.Contains(t, out, "nothing to clean up")
}

func TestIsInteractive_Pipe(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = r.Close()
		_ = w.Close()
	}()

	assert.False(t, IsInteractive(w))
}
