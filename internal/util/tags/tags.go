package tags

// Standard tag keys. Azure tag names may not contain '/', so the keys use a
// hyphenated prefix instead of a domain.
const (
	// KeyRun identifies the workflow run (the resource group name).
	KeyRun = "redisflow-run"

	// KeyManagedBy identifies the management tool.
	KeyManagedBy = "redisflow-managed-by"

	// KeyTier records the tier a cache was requested with.
	KeyTier = "redisflow-tier"

	// KeyRole identifies what the resource is used for.
	KeyRole = "redisflow-role"
)

// ManagedBy is the value of KeyManagedBy on every resource.
const ManagedBy = "redisflow"

// Role values
const (
	RoleContainer = "container"
	RoleCache     = "cache"
)

// TagBuilder provides a fluent interface for building resource tags.
type TagBuilder struct {
	tags map[string]string
}

// NewTagBuilder creates a builder with the run and managed-by tags pre-set.
func NewTagBuilder(run string) *TagBuilder {
	return &TagBuilder{
		tags: map[string]string{
			KeyRun:       run,
			KeyManagedBy: ManagedBy,
		},
	}
}

// WithRole adds a role tag.
func (tb *TagBuilder) WithRole(role string) *TagBuilder {
	tb.tags[KeyRole] = role
	return tb
}

// WithTier adds a tier tag.
func (tb *TagBuilder) WithTier(tier string) *TagBuilder {
	tb.tags[KeyTier] = tier
	return tb
}

// Merge adds all tags from the provided map.
func (tb *TagBuilder) Merge(extra map[string]string) *TagBuilder {
	for k, v := range extra {
		tb.tags[k] = v
	}
	return tb
}

// Build returns a copy of the tags map.
func (tb *TagBuilder) Build() map[string]string {
	result := make(map[string]string, len(tb.tags))
	for k, v := range tb.tags {
		result[k] = v
	}
	return result
}

// IsManaged reports whether tags mark a resource as created by redisflow.
func IsManaged(tags map[string]string) bool {
	return tags[KeyManagedBy] == ManagedBy
}
