// Package provisioning provides shared types, interfaces, and orchestration
// for the cache provisioning workflow.
//
// # Subpackages
//
//   - workflow/: the runner and its phases (resource group, caches, follow-up operations)
//   - destroy/: resource group teardown
//
// # Core Types
//
// Context carries configuration, state, the Azure provider, and the observer.
// Phase defines a provisioning step with Name() and Provision() methods.
// State accumulates results from each phase (resource group, caches, detached mutations).
package provisioning
