package config

import "time"

// MutationMode controls how mutation calls without a consumed result are dispatched.
type MutationMode string

const (
	// MutationAwait waits for every mutation and propagates its error.
	MutationAwait MutationMode = "await"

	// MutationDetach dispatches key regeneration, reboots and deletes in the
	// background. The runner drains them before cleanup and only logs failures.
	MutationDetach MutationMode = "detach"
)

// Config holds everything needed for one workflow run.
type Config struct {
	// Location is the Azure region for the resource group and caches.
	Location string `yaml:"location"`

	// ResourceGroupPrefix is combined with a random suffix to name the resource group.
	ResourceGroupPrefix string `yaml:"resourceGroupPrefix"`

	// Caches are created concurrently, in this order. The first one is the
	// designated cache for key operations and the final unconditional delete.
	Caches []CacheConfig `yaml:"caches"`

	// RegenerateKey is the access key slot regenerated on the designated cache.
	RegenerateKey string `yaml:"regenerateKey"`

	// InitialSchedule is applied to every premium cache after creation.
	InitialSchedule []ScheduleConfig `yaml:"initialSchedule"`

	// UpdatedSchedule replaces the schedule during premium maintenance.
	UpdatedSchedule []ScheduleConfig `yaml:"updatedSchedule"`

	Reboot RebootConfig `yaml:"reboot"`
	Patch  PatchConfig  `yaml:"patch"`

	MutationMode MutationMode `yaml:"mutationMode"`
}

// CacheConfig describes a single cache to create.
type CacheConfig struct {
	NamePrefix string `yaml:"namePrefix"`
	Tier       string `yaml:"tier"`     // Basic, Standard or Premium
	Family     string `yaml:"family"`   // C (Basic/Standard) or P (Premium)
	Capacity   int32  `yaml:"capacity"` // 0-6 for C, 1-5 for P
	ShardCount int32  `yaml:"shardCount"`
	Location   string `yaml:"location"` // overrides Config.Location when set
}

// ScheduleConfig is one maintenance window entry.
type ScheduleConfig struct {
	Day          string        `yaml:"day"`
	StartHourUTC int32         `yaml:"startHourUTC"`
	Window       time.Duration `yaml:"window"`
}

// RebootConfig describes the forced reboot applied to premium caches.
type RebootConfig struct {
	Type    string `yaml:"type"`
	ShardID int32  `yaml:"shardID"`
}

// PatchConfig describes the update applied to premium caches.
type PatchConfig struct {
	ShardCount        int32  `yaml:"shardCount"`
	EnableNonSSLPort  bool   `yaml:"enableNonSSLPort"`
	MaxMemoryPolicy   string `yaml:"maxMemoryPolicy"`
	MaxMemoryReserved string `yaml:"maxMemoryReserved"`
}

// Credentials identify the service principal and subscription.
type Credentials struct {
	TenantID       string
	ClientID       string
	ClientSecret   string
	SubscriptionID string
}

// CacheLocation returns the effective location for a cache.
func (c *Config) CacheLocation(cache CacheConfig) string {
	if cache.Location != "" {
		return cache.Location
	}
	return c.Location
}
