package testing

import (
	"slices"

	"github.com/imamik/redisflow/internal/config"
)

// ConfigBuilder provides a fluent interface for constructing test configs.
// Each method returns a new builder (immutable) for chaining.
type ConfigBuilder struct {
	cfg config.Config
}

// NewConfigBuilder creates a ConfigBuilder starting from the default workflow.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{cfg: *config.Default()}
}

// WithLocation sets the Azure region.
func (b *ConfigBuilder) WithLocation(location string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Location = location
	return nb
}

// WithResourceGroupPrefix sets the resource group name prefix.
func (b *ConfigBuilder) WithResourceGroupPrefix(prefix string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.ResourceGroupPrefix = prefix
	return nb
}

// WithCaches replaces the cache list.
func (b *ConfigBuilder) WithCaches(caches ...config.CacheConfig) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Caches = slices.Clone(caches)
	return nb
}

// WithBasicCache appends a C-family basic cache.
func (b *ConfigBuilder) WithBasicCache(prefix string, capacity int32) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Caches = append(nb.cfg.Caches, config.CacheConfig{
		NamePrefix: prefix,
		Tier:       config.TierBasic,
		Family:     config.FamilyC,
		Capacity:   capacity,
	})
	return nb
}

// WithPremiumCache appends a P-family premium cache.
func (b *ConfigBuilder) WithPremiumCache(prefix string, capacity, shards int32) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Caches = append(nb.cfg.Caches, config.CacheConfig{
		NamePrefix: prefix,
		Tier:       config.TierPremium,
		Family:     config.FamilyP,
		Capacity:   capacity,
		ShardCount: shards,
	})
	return nb
}

// WithMutationMode sets how mutations are dispatched.
func (b *ConfigBuilder) WithMutationMode(mode config.MutationMode) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.MutationMode = mode
	return nb
}

// WithRegenerateKey sets the key slot to regenerate.
func (b *ConfigBuilder) WithRegenerateKey(slot string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.RegenerateKey = slot
	return nb
}

// WithReboot sets the reboot applied to premium caches.
func (b *ConfigBuilder) WithReboot(rebootType string, shardID int32) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Reboot = config.RebootConfig{Type: rebootType, ShardID: shardID}
	return nb
}

// Build returns a copy of the configuration.
func (b *ConfigBuilder) Build() *config.Config {
	return &b.clone().cfg
}

func (b *ConfigBuilder) clone() *ConfigBuilder {
	cfg := b.cfg
	cfg.Caches = slices.Clone(b.cfg.Caches)
	cfg.InitialSchedule = slices.Clone(b.cfg.InitialSchedule)
	cfg.UpdatedSchedule = slices.Clone(b.cfg.UpdatedSchedule)
	return &ConfigBuilder{cfg: cfg}
}
