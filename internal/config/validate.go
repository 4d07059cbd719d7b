package config

import (
	"fmt"
	"slices"
	"time"
)

var (
	validTiers       = []string{TierBasic, TierStandard, TierPremium}
	validKeySlots    = []string{KeyPrimary, KeySecondary}
	validRebootTypes = []string{RebootAllNodes, RebootPrimaryNode, RebootSecondaryNode}
	validModes       = []MutationMode{MutationAwait, MutationDetach}
)

// Validate checks the configuration for errors that would otherwise only
// surface as provider failures halfway through a run.
func (c *Config) Validate() error {
	if c.Location == "" {
		return fmt.Errorf("location is required")
	}
	if c.ResourceGroupPrefix == "" {
		return fmt.Errorf("resourceGroupPrefix is required")
	}
	if len(c.Caches) == 0 {
		return fmt.Errorf("at least one cache is required")
	}

	for i, cache := range c.Caches {
		if err := validateCache(cache); err != nil {
			return fmt.Errorf("cache %d (%s): %w", i+1, cache.NamePrefix, err)
		}
	}

	if !slices.Contains(validKeySlots, c.RegenerateKey) {
		return fmt.Errorf("invalid regenerateKey %q: must be one of %v", c.RegenerateKey, validKeySlots)
	}

	if err := validateSchedule(c.InitialSchedule); err != nil {
		return fmt.Errorf("initialSchedule: %w", err)
	}
	if err := validateSchedule(c.UpdatedSchedule); err != nil {
		return fmt.Errorf("updatedSchedule: %w", err)
	}

	if !slices.Contains(validRebootTypes, c.Reboot.Type) {
		return fmt.Errorf("invalid reboot type %q: must be one of %v", c.Reboot.Type, validRebootTypes)
	}
	if c.Patch.ShardCount < 0 {
		return fmt.Errorf("patch shardCount must not be negative")
	}

	if !slices.Contains(validModes, c.MutationMode) {
		return fmt.Errorf("invalid mutationMode %q: must be one of %v", c.MutationMode, validModes)
	}

	return nil
}

func validateCache(cache CacheConfig) error {
	if cache.NamePrefix == "" {
		return fmt.Errorf("namePrefix is required")
	}
	if !slices.Contains(validTiers, cache.Tier) {
		return fmt.Errorf("invalid tier %q: must be one of %v", cache.Tier, validTiers)
	}

	// Premium caches use the P family, everything else the C family.
	switch {
	case cache.Tier == TierPremium && cache.Family != FamilyP:
		return fmt.Errorf("tier %s requires family %s, got %q", cache.Tier, FamilyP, cache.Family)
	case cache.Tier != TierPremium && cache.Family != FamilyC:
		return fmt.Errorf("tier %s requires family %s, got %q", cache.Tier, FamilyC, cache.Family)
	}

	if cache.Family == FamilyC && (cache.Capacity < 0 || cache.Capacity > 6) {
		return fmt.Errorf("capacity %d out of range 0-6 for family C", cache.Capacity)
	}
	if cache.Family == FamilyP && (cache.Capacity < 1 || cache.Capacity > 5) {
		return fmt.Errorf("capacity %d out of range 1-5 for family P", cache.Capacity)
	}

	if cache.ShardCount < 0 {
		return fmt.Errorf("shardCount must not be negative")
	}
	if cache.ShardCount > 0 && cache.Tier != TierPremium {
		return fmt.Errorf("shardCount is only supported on %s caches", TierPremium)
	}
	return nil
}

func validateSchedule(entries []ScheduleConfig) error {
	if len(entries) == 0 {
		return fmt.Errorf("at least one entry is required")
	}
	for _, e := range entries {
		if _, err := ParseWeekday(e.Day); err != nil {
			return err
		}
		if e.StartHourUTC < 0 || e.StartHourUTC > 23 {
			return fmt.Errorf("startHourUTC %d out of range 0-23", e.StartHourUTC)
		}
		if e.Window <= 0 {
			return fmt.Errorf("window must be positive")
		}
	}
	return nil
}

// ParseWeekday converts a weekday name such as "Monday" to a time.Weekday.
func ParseWeekday(day string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if d.String() == day {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid day %q", day)
}
