package workflow

import (
	"time"

	"github.com/imamik/redisflow/internal/platform/azure"
	"github.com/imamik/redisflow/internal/provisioning"
	"github.com/imamik/redisflow/internal/provisioning/destroy"
)

// Outcome summarizes a run.
type Outcome struct {
	ResourceGroupName string
	ResourceGroupID   string

	// Caches are the created caches in configuration order.
	Caches []*azure.Cache

	// PremiumProcessed names the caches that went through premium maintenance.
	PremiumProcessed []string

	// Deleted names the caches whose delete succeeded, in completion order.
	// A detached delete that failed is reported in DetachedErr instead.
	Deleted []string

	// CleanupRan is true when the resource group delete was attempted.
	CleanupRan bool
	// CleanupSkipped is true when no resource group existed.
	CleanupSkipped bool
	// CleanupErr is the teardown failure. It never replaces the run error.
	CleanupErr error

	// DetachedErr collects failures of mutations dispatched in detach mode.
	DetachedErr error

	Duration time.Duration
}

// Runner executes the workflow phases followed by teardown.
type Runner struct {
	pipeline *provisioning.Pipeline
}

// NewRunner creates a runner with the standard phases.
func NewRunner() *Runner {
	return NewRunnerWithPhases(DefaultPhases()...)
}

// NewRunnerWithPhases creates a runner with custom phases. Teardown always
// runs after them.
func NewRunnerWithPhases(phases ...provisioning.Phase) *Runner {
	return &Runner{pipeline: provisioning.NewPipeline(phases...)}
}

// DefaultPhases returns the workflow phases in execution order.
func DefaultPhases() []provisioning.Phase {
	return []provisioning.Phase{
		&ResourceGroupPhase{},
		&CachesPhase{},
		&AccessKeysPhase{},
		&ScheduleSetupPhase{},
		&PremiumMaintenancePhase{},
		&FinalDeletePhase{},
	}
}

// Run executes the phases and then deletes the resource group. The returned
// Outcome is never nil. Teardown runs exactly once regardless of where the
// phases stopped; its failure is reported in Outcome.CleanupErr only.
func (r *Runner) Run(ctx *provisioning.Context) (outcome *Outcome, err error) {
	start := time.Now()
	outcome = &Outcome{}

	defer func() {
		outcome.DetachedErr = drainDetached(ctx)

		result := destroy.Finalize(ctx)
		outcome.CleanupRan = result.Ran
		outcome.CleanupSkipped = result.Skipped
		outcome.CleanupErr = result.Err

		outcome.fill(ctx.State)
		outcome.Duration = time.Since(start)
	}()

	return outcome, r.pipeline.Run(ctx)
}

func (o *Outcome) fill(state *provisioning.State) {
	if rg := state.ResourceGroup; rg != nil {
		o.ResourceGroupName = rg.Name
		o.ResourceGroupID = rg.ID
	}
	o.Caches = state.Caches
	o.PremiumProcessed = state.PremiumProcessed
	o.Deleted = state.DeletedCaches()
}
