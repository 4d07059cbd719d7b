package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/imamik/redisflow/internal/config"
	"github.com/imamik/redisflow/internal/platform/azure"
	"github.com/imamik/redisflow/internal/provisioning"
	"github.com/imamik/redisflow/internal/provisioning/destroy"
	"github.com/imamik/redisflow/internal/ui"
	"github.com/imamik/redisflow/internal/util/tags"
)

// CleanupOptions select the resource groups to delete.
type CleanupOptions struct {
	IDs        []string
	AllManaged bool
	Yes        bool
	Force      bool
}

var (
	// newGroupManager creates the resource group client used by cleanup.
	newGroupManager = func(creds config.Credentials) (azure.ResourceGroupManager, error) {
		client, err := azure.NewRealClientFromCredentials(creds)
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	// isInteractive reports whether a confirmation prompt can be shown.
	isInteractive = func() bool {
		return ui.IsInteractive(os.Stdin) && ui.IsInteractive(os.Stdout)
	}

	// confirm asks the user before deleting.
	confirm = ui.Confirm

	// newCleanupObserver creates the observer for delete events.
	newCleanupObserver = func() provisioning.Observer {
		return provisioning.NewConsoleObserver()
	}
)

var errNoTargets = errors.New("no resource groups given: use --resource-group-id or --all-managed")

// Cleanup deletes resource groups left behind by interrupted runs.
//
// Without --yes the user is asked to confirm, which requires a terminal.
func Cleanup(ctx context.Context, opts CleanupOptions) error {
	if len(opts.IDs) == 0 && !opts.AllManaged {
		return errNoTargets
	}

	creds, err := loadCredentials()
	if err != nil {
		return err
	}

	groups, err := newGroupManager(creds)
	if err != nil {
		return fmt.Errorf("failed to initialize Azure client: %w", err)
	}

	ids := slices.Clone(opts.IDs)
	if opts.AllManaged {
		managed, err := groups.ListResourceGroups(ctx, tags.KeyManagedBy, tags.ManagedBy)
		if err != nil {
			return fmt.Errorf("failed to list managed resource groups: %w", err)
		}
		for _, rg := range managed {
			ids = append(ids, rg.ID)
		}
	}
	slices.Sort(ids)
	ids = slices.Compact(ids)

	if len(ids) == 0 {
		log.Printf("No resource groups to delete")
		return nil
	}

	if !opts.Yes {
		ok, err := confirmDelete(ctx, ids)
		if err != nil {
			return err
		}
		if !ok {
			log.Printf("Cleanup cancelled")
			return nil
		}
	}

	log.Printf("Deleting %d resource group(s)", len(ids))
	return destroy.DeleteGroups(ctx, groups, newCleanupObserver(), ids, opts.Force)
}

func confirmDelete(ctx context.Context, ids []string) (bool, error) {
	if !isInteractive() {
		return false, errors.New("refusing to delete without confirmation in a non-interactive session (use --yes)")
	}
	title := fmt.Sprintf("Delete %d resource group(s)?", len(ids))
	return confirm(ctx, title, strings.Join(ids, "\n"))
}
