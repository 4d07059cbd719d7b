package config

import "time"

// Azure SKU and option values accepted in the workflow file.
const (
	TierBasic    = "Basic"
	TierStandard = "Standard"
	TierPremium  = "Premium"

	FamilyC = "C"
	FamilyP = "P"

	KeyPrimary   = "Primary"
	KeySecondary = "Secondary"

	RebootAllNodes      = "AllNodes"
	RebootPrimaryNode   = "PrimaryNode"
	RebootSecondaryNode = "SecondaryNode"

	DefaultLocation            = "centralus"
	DefaultResourceGroupPrefix = "RedisRG"
)

// Default returns the stock workflow: one basic cache and two sharded premium
// caches in Central US, with the maintenance and patch values applied to
// every premium cache.
func Default() *Config {
	return &Config{
		Location:            DefaultLocation,
		ResourceGroupPrefix: DefaultResourceGroupPrefix,
		Caches: []CacheConfig{
			{NamePrefix: "rc1", Tier: TierBasic, Family: FamilyC, Capacity: 0},
			{NamePrefix: "rc2", Tier: TierPremium, Family: FamilyP, Capacity: 1, ShardCount: 3},
			{NamePrefix: "rc3", Tier: TierPremium, Family: FamilyP, Capacity: 2, ShardCount: 3},
		},
		RegenerateKey: KeySecondary,
		InitialSchedule: []ScheduleConfig{
			{Day: "Tuesday", StartHourUTC: 11, Window: 11 * time.Hour},
		},
		UpdatedSchedule: []ScheduleConfig{
			{Day: "Monday", StartHourUTC: 5, Window: 5 * time.Hour},
		},
		Reboot: RebootConfig{Type: RebootAllNodes, ShardID: 1},
		Patch: PatchConfig{
			ShardCount:        4,
			EnableNonSSLPort:  true,
			MaxMemoryPolicy:   "allkeys-random",
			MaxMemoryReserved: "20",
		},
		MutationMode: MutationAwait,
	}
}
