package naming

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandom(t *testing.T) {
	name := Random("RedisRG")

	assert.True(t, strings.HasPrefix(name, "RedisRG"))
	assert.Len(t, name, len("RedisRG")+SuffixLength)
	assert.NotEqual(t, name, Random("RedisRG"))
}

func TestRandom_DeterministicUUID(t *testing.T) {
	orig := newUUID
	defer func() { newUUID = orig }()
	newUUID = func() string { return "0123abcd-4567-89ef-0123-456789abcdef" }

	assert.Equal(t, "rc10123abcd", Random("rc1"))
}

func TestCache(t *testing.T) {
	orig := newUUID
	defer func() { newUUID = orig }()
	newUUID = func() string { return "deadbeef-0000-0000-0000-000000000000" }

	tests := []struct {
		name   string
		prefix string
		want   string
	}{
		{name: "plain", prefix: "rc1", want: "rc1deadbeef"},
		{name: "drops invalid characters", prefix: "my_cache.one", want: "mycacheonedeadbeef"},
		{name: "trims hyphens", prefix: "-edge-", want: "edgedeadbeef"},
		{name: "truncates", prefix: strings.Repeat("a", 80), want: strings.Repeat("a", 55) + "deadbeef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Cache(tt.prefix))
		})
	}
}
