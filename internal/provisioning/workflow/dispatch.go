package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/imamik/redisflow/internal/config"
	"github.com/imamik/redisflow/internal/provisioning"
	"github.com/imamik/redisflow/internal/util/async"
)

// mutate runs a mutation whose result the workflow does not consume. In
// detach mode it is started in the background and recorded in
// State.Detached; otherwise it is awaited and its error returned.
func mutate(ctx *provisioning.Context, name string, fn func(context.Context) error) error {
	if ctx.Config.MutationMode != config.MutationDetach {
		return fn(ctx)
	}

	ctx.State.Detached = append(ctx.State.Detached, async.Go(ctx, name, func(c context.Context) (struct{}, error) {
		return struct{}{}, fn(c)
	}))
	ctx.Observer.Printf("[Detach] Dispatched %s", name)
	return nil
}

// drainDetached waits for every detached mutation. Failures are logged and
// joined, each prefixed with the operation name, but never fail the run.
func drainDetached(ctx *provisioning.Context) error {
	detached := ctx.State.Detached
	if len(detached) == 0 {
		return nil
	}

	ctx.Observer.Printf("[Detach] Waiting for %d detached operations...", len(detached))

	var errs []error
	for _, f := range detached {
		if _, err := f.Wait(); err != nil {
			ctx.Observer.Printf("[Detach] %s failed: %v", f.Name(), err)
			errs = append(errs, fmt.Errorf("%s: %w", f.Name(), err))
		}
	}
	ctx.State.Detached = nil
	return errors.Join(errs...)
}
