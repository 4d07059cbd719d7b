// Package handlers implements the business logic for CLI commands.
//
// Handlers are called by the command definitions in the commands package and
// do not depend on cobra, so they can be tested without the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/imamik/redisflow/internal/config"
	"github.com/imamik/redisflow/internal/platform/azure"
	"github.com/imamik/redisflow/internal/provisioning"
	"github.com/imamik/redisflow/internal/provisioning/workflow"
	"github.com/imamik/redisflow/internal/ui"
)

// Runner interface for testing - matches workflow.Runner.
type Runner interface {
	Run(ctx *provisioning.Context) (*workflow.Outcome, error)
}

// apiCounter is implemented by providers that count their ARM calls.
type apiCounter interface {
	APICalls() (int, error)
}

// RunOptions are the command-line overrides of a run.
type RunOptions struct {
	ConfigPath   string
	Location     string
	MutationMode string
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfigFile loads the workflow file, or the defaults for an empty path.
	loadConfigFile = config.Load

	// loadCredentials reads the service principal from the environment.
	loadCredentials = config.LoadCredentials

	// newProvider creates the ARM-backed provider.
	newProvider = func(creds config.Credentials) (azure.Provider, error) {
		client, err := azure.NewRealClientFromCredentials(creds)
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	// newProvisioningContext creates the context shared by all phases.
	newProvisioningContext = provisioning.NewContext

	// newRunner creates the workflow runner.
	newRunner = func() Runner {
		return workflow.NewRunner()
	}

	// summaryOut receives the rendered run summary.
	summaryOut io.Writer = os.Stdout
)

// Run executes one provisioning workflow.
//
// The workflow file is loaded (or the built-in workflow used), command-line
// overrides applied and the result validated before any credentials are
// read. The resource group is always deleted at the end; a failed delete is
// reported in the summary and logged but does not change the returned error,
// which is the error of the workflow itself.
func Run(ctx context.Context, opts RunOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	creds, err := loadCredentials()
	if err != nil {
		return err
	}

	provider, err := newProvider(creds)
	if err != nil {
		return fmt.Errorf("failed to initialize Azure client: %w", err)
	}

	log.Printf("Starting run in %s with %d caches", cfg.Location, len(cfg.Caches))

	pCtx := newProvisioningContext(ctx, cfg, provider)
	outcome, runErr := newRunner().Run(pCtx)

	fmt.Fprint(summaryOut, ui.RenderSummary(outcome, runErr, apiCalls(provider)))

	if outcome.DetachedErr != nil {
		log.Printf("Warning: detached operations failed: %v", outcome.DetachedErr)
	}
	if outcome.CleanupErr != nil {
		log.Printf("Warning: resource group %s may still exist: %v", outcome.ResourceGroupName, outcome.CleanupErr)
		if outcome.ResourceGroupID != "" {
			log.Printf("Remove it with: redisflow cleanup --resource-group-id %s", outcome.ResourceGroupID)
		}
	}

	return runErr
}

// loadConfig loads the workflow and applies the command-line overrides.
func loadConfig(opts RunOptions) (*config.Config, error) {
	cfg, err := loadConfigFile(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	if opts.Location != "" {
		cfg.Location = opts.Location
	}
	if opts.MutationMode != "" {
		cfg.MutationMode = config.MutationMode(opts.MutationMode)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// apiCalls returns the provider's ARM call count, or -1 when it is unknown.
func apiCalls(provider azure.Provider) int {
	counter, ok := provider.(apiCounter)
	if !ok {
		return -1
	}
	n, err := counter.APICalls()
	if err != nil {
		log.Printf("Warning: failed to read API call metrics: %v", err)
		return -1
	}
	return n
}
