package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/imamik/redisflow/internal/config"
	"github.com/imamik/redisflow/internal/platform/azure"
	"github.com/imamik/redisflow/internal/provisioning"
	"github.com/imamik/redisflow/internal/util/async"
	"github.com/imamik/redisflow/internal/util/naming"
	"github.com/imamik/redisflow/internal/util/tags"
)

const (
	phaseResourceGroup = "resource-group"
	phaseCaches        = "caches"
	phaseAccessKeys    = "access-keys"
	phaseSchedules     = "schedules"
	phaseMaintenance   = "maintenance"
	phaseFinalDelete   = "final-delete"
)

var errNoCaches = errors.New("no caches were created")

// ResourceGroupPhase creates the resource group that holds every cache of the run.
type ResourceGroupPhase struct{}

// Name implements provisioning.Phase.
func (p *ResourceGroupPhase) Name() string { return "Resource group" }

// Provision implements provisioning.Phase.
func (p *ResourceGroupPhase) Provision(ctx *provisioning.Context) error {
	name := naming.Random(ctx.Config.ResourceGroupPrefix)
	groupTags := tags.NewTagBuilder(name).WithRole(tags.RoleContainer).Build()

	provisioning.LogResourceCreating(ctx.Observer, phaseResourceGroup, "resource group", name)
	rg, err := ctx.Provider.CreateResourceGroup(ctx, name, ctx.Config.Location, groupTags)
	if err != nil {
		return fmt.Errorf("failed to create resource group %s: %w", name, err)
	}
	ctx.State.ResourceGroup = rg
	provisioning.LogResourceCreated(ctx.Observer, phaseResourceGroup, "resource group", rg.Name, rg.ID)

	return nil
}

// CachesPhase creates all configured caches concurrently and waits for every
// one of them before returning.
type CachesPhase struct{}

// Name implements provisioning.Phase.
func (p *CachesPhase) Name() string { return "Caches" }

// Provision implements provisioning.Phase.
func (p *CachesPhase) Provision(ctx *provisioning.Context) error {
	rg := ctx.State.ResourceGroup
	if rg == nil {
		return errors.New("resource group has not been created")
	}

	futures := make([]*async.Future[*azure.Cache], 0, len(ctx.Config.Caches))
	for _, cc := range ctx.Config.Caches {
		name := naming.Cache(cc.NamePrefix)
		spec := azure.CacheSpec{
			Location:   ctx.Config.CacheLocation(cc),
			Tier:       cc.Tier,
			Family:     cc.Family,
			Capacity:   cc.Capacity,
			ShardCount: cc.ShardCount,
			Tags:       tags.NewTagBuilder(rg.Name).WithRole(tags.RoleCache).WithTier(cc.Tier).Build(),
		}

		provisioning.LogResourceCreating(ctx.Observer, phaseCaches, "cache", name)
		futures = append(futures, async.Go(ctx, "create cache "+name, func(c context.Context) (*azure.Cache, error) {
			return ctx.Provider.CreateCache(c, rg.Name, name, spec)
		}))
	}

	caches, err := async.WaitAll(futures...)
	for _, cache := range caches {
		if cache == nil {
			continue
		}
		ctx.State.Caches = append(ctx.State.Caches, cache)
		provisioning.LogResourceCreated(ctx.Observer, phaseCaches, "cache", cache.Name, cache.ID)
	}
	if err != nil {
		return err
	}

	ctx.Observer.Progress(phaseCaches, len(ctx.State.Caches), len(ctx.Config.Caches))
	return nil
}

// AccessKeysPhase reads the access keys of the first cache and regenerates
// the configured key slot.
type AccessKeysPhase struct{}

// Name implements provisioning.Phase.
func (p *AccessKeysPhase) Name() string { return "Access keys" }

// Provision implements provisioning.Phase.
func (p *AccessKeysPhase) Provision(ctx *provisioning.Context) error {
	cache := ctx.State.FirstCache()
	if cache == nil {
		return errNoCaches
	}

	if _, err := ctx.Provider.GetKeys(ctx, cache); err != nil {
		return err
	}
	ctx.Observer.Printf("[%s] Retrieved access keys for %s", phaseAccessKeys, cache.Name)

	slot := azure.KeySlot(ctx.Config.RegenerateKey)
	return mutate(ctx, "regenerate "+string(slot)+" key of "+cache.Name, func(c context.Context) error {
		if _, err := ctx.Provider.RegenerateKey(c, cache, slot); err != nil {
			return err
		}
		provisioning.LogResourceUpdated(ctx.Observer, phaseAccessKeys, "cache", cache.Name, "regenerated "+string(slot)+" key")
		return nil
	})
}

// ScheduleSetupPhase applies the initial patch schedule to every premium cache.
type ScheduleSetupPhase struct{}

// Name implements provisioning.Phase.
func (p *ScheduleSetupPhase) Name() string { return "Patch schedules" }

// Provision implements provisioning.Phase.
func (p *ScheduleSetupPhase) Provision(ctx *provisioning.Context) error {
	entries, err := scheduleEntries(ctx.Config.InitialSchedule)
	if err != nil {
		return err
	}

	for _, cache := range ctx.State.Caches {
		if !cache.IsPremium() {
			continue
		}
		if _, err := ctx.Provider.CreateOrUpdateSchedule(ctx, cache, entries); err != nil {
			return err
		}
		provisioning.LogResourceUpdated(ctx.Observer, phaseSchedules, "cache", cache.Name, "patch schedule set")
	}
	return nil
}

// PremiumMaintenancePhase lists the caches of the resource group and, for
// each premium cache in turn, reboots it, applies the patch, rewrites its
// patch schedules and deletes it.
type PremiumMaintenancePhase struct{}

// Name implements provisioning.Phase.
func (p *PremiumMaintenancePhase) Name() string { return "Premium maintenance" }

// Provision implements provisioning.Phase.
func (p *PremiumMaintenancePhase) Provision(ctx *provisioning.Context) error {
	rg := ctx.State.ResourceGroup
	if rg == nil {
		return errors.New("resource group has not been created")
	}

	entries, err := scheduleEntries(ctx.Config.UpdatedSchedule)
	if err != nil {
		return err
	}

	for cache, err := range ctx.Provider.ListCaches(ctx, rg.Name) {
		if err != nil {
			return err
		}
		if !cache.IsPremium() {
			continue
		}
		if err := maintain(ctx, cache, entries); err != nil {
			return err
		}
		ctx.State.PremiumProcessed = append(ctx.State.PremiumProcessed, cache.Name)
	}
	return nil
}

func maintain(ctx *provisioning.Context, cache *azure.Cache, entries []azure.ScheduleEntry) error {
	observer := ctx.Observer.WithFields(map[string]string{"cache": cache.Name})

	reboot := azure.RebootSpec{
		Type:    azure.RebootType(ctx.Config.Reboot.Type),
		ShardID: ctx.Config.Reboot.ShardID,
	}
	err := mutate(ctx, "reboot "+cache.Name, func(c context.Context) error {
		if err := ctx.Provider.Reboot(c, cache, reboot); err != nil {
			return err
		}
		provisioning.LogResourceUpdated(observer, phaseMaintenance, "cache", cache.Name, "rebooted "+string(reboot.Type))
		return nil
	})
	if err != nil {
		return err
	}

	patch := ctx.Config.Patch
	if _, err := ctx.Provider.UpdateCache(ctx, cache, azure.CachePatch{
		ShardCount:        patch.ShardCount,
		EnableNonSSLPort:  patch.EnableNonSSLPort,
		MaxMemoryPolicy:   patch.MaxMemoryPolicy,
		MaxMemoryReserved: patch.MaxMemoryReserved,
	}); err != nil {
		return err
	}
	provisioning.LogResourceUpdated(observer, phaseMaintenance, "cache", cache.Name, "patched")

	schedules, err := ctx.Provider.ListSchedules(ctx, cache)
	if err != nil {
		return err
	}
	for range schedules {
		if _, err := ctx.Provider.CreateOrUpdateSchedule(ctx, cache, entries); err != nil {
			return err
		}
		provisioning.LogResourceUpdated(observer, phaseMaintenance, "cache", cache.Name, "patch schedule updated")
	}

	return deleteCache(ctx, observer, phaseMaintenance, cache)
}

// FinalDeletePhase deletes the first cache regardless of its tier.
type FinalDeletePhase struct{}

// Name implements provisioning.Phase.
func (p *FinalDeletePhase) Name() string { return "Final delete" }

// Provision implements provisioning.Phase.
func (p *FinalDeletePhase) Provision(ctx *provisioning.Context) error {
	cache := ctx.State.FirstCache()
	if cache == nil {
		return errNoCaches
	}
	return deleteCache(ctx, ctx.Observer, phaseFinalDelete, cache)
}

func deleteCache(ctx *provisioning.Context, observer provisioning.Observer, phase string, cache *azure.Cache) error {
	provisioning.LogResourceDeleting(observer, phase, "cache", cache.Name)
	return mutate(ctx, "delete "+cache.Name, func(c context.Context) error {
		if err := ctx.Provider.DeleteCache(c, cache); err != nil {
			return err
		}
		ctx.State.RecordDeleted(cache.Name)
		provisioning.LogResourceDeleted(observer, phase, "cache", cache.Name)
		return nil
	})
}

func scheduleEntries(schedule []config.ScheduleConfig) ([]azure.ScheduleEntry, error) {
	entries := make([]azure.ScheduleEntry, 0, len(schedule))
	for _, s := range schedule {
		day, err := config.ParseWeekday(s.Day)
		if err != nil {
			return nil, err
		}
		entries = append(entries, azure.ScheduleEntry{
			Day:               day,
			StartHourUTC:      s.StartHourUTC,
			MaintenanceWindow: s.Window,
		})
	}
	return entries, nil
}
