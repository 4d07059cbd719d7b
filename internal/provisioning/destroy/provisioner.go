package destroy

import (
	"context"
	"fmt"
	"time"

	"github.com/imamik/redisflow/internal/platform/azure"
	"github.com/imamik/redisflow/internal/provisioning"
	"github.com/imamik/redisflow/internal/util/async"
	"github.com/imamik/redisflow/internal/util/retry"
	"github.com/imamik/redisflow/internal/util/tags"
)

const phase = "cleanup"

// deleteRetry governs resource group deletes. ARM answers 409 while an
// operation on a contained cache is still running, and 429 once the SDK's
// own throttling retries are used up.
var deleteRetry = []retry.Option{
	retry.WithMaxAttempts(6),
	retry.WithInitialDelay(10 * time.Second),
	retry.WithMultiplier(3),
	retry.WithMaxDelay(2 * time.Minute),
	retry.WithRetryIf(retryableDelete),
}

func retryableDelete(err error) bool {
	return azure.IsConflict(err) || azure.IsThrottled(err)
}

// Provisioner handles resource group destruction.
type Provisioner struct{}

// NewProvisioner creates a new destroy provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements provisioning.Phase.
func (p *Provisioner) Name() string {
	return "Destroy"
}

// Provision deletes the run's resource group. A run that never created one
// is a no-op.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	rg := ctx.State.ResourceGroup
	if rg == nil {
		ctx.Observer.Event(provisioning.Event{
			Type:    provisioning.EventCleanupSkipped,
			Phase:   phase,
			Message: "no resources were created, nothing to clean up",
		})
		return nil
	}

	provisioning.LogResourceDeleting(ctx.Observer, phase, "resource group", rg.Name)
	if err := deleteResourceGroup(ctx, ctx.Provider, rg.ID); err != nil {
		return fmt.Errorf("failed to delete resource group %s: %w", rg.Name, err)
	}
	provisioning.LogResourceDeleted(ctx.Observer, phase, "resource group", rg.Name)

	return nil
}

// Result describes what Finalize did.
type Result struct {
	// Ran is true when a delete was attempted.
	Ran bool
	// Skipped is true when there was no resource group to delete.
	Skipped bool
	// Err holds the teardown failure, if any.
	Err error
}

// Finalize runs the teardown and absorbs every failure, including panics
// raised by the provider. It is safe to defer.
func Finalize(ctx *provisioning.Context) (result Result) {
	start := time.Now()
	result.Skipped = ctx.State.ResourceGroup == nil
	result.Ran = !result.Skipped

	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("panic during cleanup: %v", r)
		}
		if result.Err != nil {
			provisioning.LogPhaseFailed(ctx.Observer, phase, result.Err)
			return
		}
		if result.Ran {
			provisioning.LogPhaseComplete(ctx.Observer, phase, time.Since(start))
		}
	}()

	result.Err = NewProvisioner().Provision(ctx)
	return result
}

// DeleteGroups deletes resource groups by ARM ID in parallel. Groups that do
// not carry the redisflow management tag are refused unless force is set.
// All failures are collected.
func DeleteGroups(ctx context.Context, groups azure.ResourceGroupManager, observer provisioning.Observer, ids []string, force bool) error {
	cleanupErr := &azure.CleanupError{}

	tasks := make([]async.Task, 0, len(ids))
	for _, id := range ids {
		tasks = append(tasks, async.Task{
			Name: "delete resource group " + id,
			Func: func(ctx context.Context) error {
				return deleteGroup(ctx, groups, observer, id, force)
			},
		})
	}

	cleanupErr.Add(async.RunParallel(ctx, tasks))
	return cleanupErr.ErrOrNil()
}

func deleteGroup(ctx context.Context, groups azure.ResourceGroupManager, observer provisioning.Observer, id string, force bool) error {
	rg, err := groups.GetResourceGroup(ctx, id)
	if err != nil {
		if azure.IsNotFound(err) {
			observer.Printf("[Cleanup] Resource group %s no longer exists", id)
			return nil
		}
		return err
	}

	if !force && !tags.IsManaged(rg.Tags) {
		return fmt.Errorf("resource group %s is not managed by redisflow (use --force to delete anyway)", rg.Name)
	}

	provisioning.LogResourceDeleting(observer, phase, "resource group", rg.Name)
	if err := deleteResourceGroup(ctx, groups, id); err != nil {
		provisioning.LogResourceFailed(observer, phase, "resource group", rg.Name, err)
		return err
	}
	provisioning.LogResourceDeleted(observer, phase, "resource group", rg.Name)
	return nil
}

func deleteResourceGroup(ctx context.Context, groups azure.ResourceGroupManager, id string) error {
	return retry.Do(ctx, func(ctx context.Context) error {
		return groups.DeleteResourceGroup(ctx, id)
	}, deleteRetry...)
}
