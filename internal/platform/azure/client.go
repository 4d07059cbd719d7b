package azure

import (
	"context"
	"iter"
	"time"
)

// PremiumTier is the SKU name that marks a premium cache. Comparisons are
// exact and case-sensitive.
const PremiumTier = "Premium"

// KeySlot selects one of the two access keys of a cache.
type KeySlot string

const (
	KeyPrimary   KeySlot = "Primary"
	KeySecondary KeySlot = "Secondary"
)

// RebootType selects which nodes of a cache are rebooted.
type RebootType string

const (
	RebootAllNodes      RebootType = "AllNodes"
	RebootPrimaryNode   RebootType = "PrimaryNode"
	RebootSecondaryNode RebootType = "SecondaryNode"
)

// ResourceGroup is the container that scopes all resources of one run.
type ResourceGroup struct {
	ID       string
	Name     string
	Location string
	Tags     map[string]string
}

// CacheSpec holds the parameters for creating a cache.
type CacheSpec struct {
	Location   string
	Tier       string // SKU name: Basic, Standard or Premium
	Family     string // SKU family: C or P
	Capacity   int32
	ShardCount int32 // 0 leaves the cache unsharded
	Tags       map[string]string
}

// Cache is a provisioned Azure Cache for Redis instance.
type Cache struct {
	ID                 string
	Name               string
	ResourceGroup      string
	Location           string
	Tier               string
	Family             string
	Capacity           int32
	ShardCount         int32
	HostName           string
	EnableNonSSLPort   bool
	ProvisioningState  string
	RedisConfiguration map[string]string
}

// IsPremium reports whether the cache's tier is exactly PremiumTier.
func (c *Cache) IsPremium() bool {
	return c.Tier == PremiumTier
}

// AccessKeys are the two access keys of a cache.
type AccessKeys struct {
	PrimaryKey   string
	SecondaryKey string
}

// ScheduleEntry is one weekly maintenance window.
type ScheduleEntry struct {
	Day               time.Weekday
	StartHourUTC      int32
	MaintenanceWindow time.Duration
}

// Schedule is the patch schedule of a cache.
type Schedule struct {
	ID      string
	Name    string
	Entries []ScheduleEntry
}

// RebootSpec holds the parameters for a forced reboot.
type RebootSpec struct {
	Type    RebootType
	ShardID int32
}

// CachePatch holds the fields changed by UpdateCache. Zero values leave the
// corresponding setting untouched, except EnableNonSSLPort which is always sent.
type CachePatch struct {
	ShardCount        int32
	EnableNonSSLPort  bool
	MaxMemoryPolicy   string
	MaxMemoryReserved string
}

// ResourceGroupManager defines the interface for managing resource groups.
type ResourceGroupManager interface {
	// CreateResourceGroup creates a resource group and returns once ARM reports it.
	CreateResourceGroup(ctx context.Context, name, location string, tags map[string]string) (*ResourceGroup, error)
	// GetResourceGroup returns the resource group identified by its ARM ID.
	GetResourceGroup(ctx context.Context, id string) (*ResourceGroup, error)
	// ListResourceGroups returns the resource groups carrying the given tag.
	ListResourceGroups(ctx context.Context, tagName, tagValue string) ([]*ResourceGroup, error)
	// DeleteResourceGroup deletes a resource group and everything inside it.
	DeleteResourceGroup(ctx context.Context, id string) error
}

// CacheManager defines the interface for managing caches.
type CacheManager interface {
	CreateCache(ctx context.Context, group, name string, spec CacheSpec) (*Cache, error)
	// ListCaches yields the caches of a resource group page by page.
	// A listing error is yielded once as the final element.
	ListCaches(ctx context.Context, group string) iter.Seq2[*Cache, error]
	GetKeys(ctx context.Context, cache *Cache) (*AccessKeys, error)
	RegenerateKey(ctx context.Context, cache *Cache, slot KeySlot) (*AccessKeys, error)
	Reboot(ctx context.Context, cache *Cache, spec RebootSpec) error
	UpdateCache(ctx context.Context, cache *Cache, patch CachePatch) (*Cache, error)
	DeleteCache(ctx context.Context, cache *Cache) error
}

// ScheduleManager defines the interface for managing patch schedules.
type ScheduleManager interface {
	CreateOrUpdateSchedule(ctx context.Context, cache *Cache, entries []ScheduleEntry) (*Schedule, error)
	ListSchedules(ctx context.Context, cache *Cache) ([]*Schedule, error)
}

// Provider combines all interfaces the workflow needs.
type Provider interface {
	ResourceGroupManager
	CacheManager
	ScheduleManager
}
