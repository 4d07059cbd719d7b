package naming

import (
	"strings"

	"github.com/google/uuid"
)

// SuffixLength is the number of random characters appended to a prefix.
const SuffixLength = 8

// maxCacheNameLength is the Azure limit for cache names.
const maxCacheNameLength = 63

// newUUID is replaced in tests.
var newUUID = uuid.NewString

// Random returns prefix followed by SuffixLength lowercase hex characters.
func Random(prefix string) string {
	suffix := strings.ReplaceAll(newUUID(), "-", "")
	return prefix + suffix[:SuffixLength]
}

// Cache returns a random cache name. Cache names may only contain letters,
// digits and hyphens, so other characters in prefix are dropped and the
// result is truncated to the Azure limit.
func Cache(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '-' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}

	clean := strings.Trim(b.String(), "-")
	if limit := maxCacheNameLength - SuffixLength; len(clean) > limit {
		clean = clean[:limit]
	}
	return Random(clean)
}
