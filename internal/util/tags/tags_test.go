package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTagBuilder(t *testing.T) {
	t.Parallel()

	got := NewTagBuilder("RedisRGabc12345").Build()

	assert.Equal(t, map[string]string{
		KeyRun:       "RedisRGabc12345",
		KeyManagedBy: ManagedBy,
	}, got)
}

func TestTagBuilder_Chain(t *testing.T) {
	t.Parallel()

	got := NewTagBuilder("run").
		WithRole(RoleCache).
		WithTier("Premium").
		Merge(map[string]string{"owner": "ops"}).
		Build()

	assert.Equal(t, RoleCache, got[KeyRole])
	assert.Equal(t, "Premium", got[KeyTier])
	assert.Equal(t, "ops", got["owner"])
	assert.Equal(t, "run", got[KeyRun])
}

func TestTagBuilder_BuildReturnsCopy(t *testing.T) {
	t.Parallel()
	tb := NewTagBuilder("run")

	first := tb.Build()
	first[KeyRun] = "mutated"

	assert.Equal(t, "run", tb.Build()[KeyRun])
}

func TestIsManaged(t *testing.T) {
	t.Parallel()

	assert.True(t, IsManaged(NewTagBuilder("run").Build()))
	assert.False(t, IsManaged(map[string]string{KeyManagedBy: "terraform"}))
	assert.False(t, IsManaged(nil))
}
