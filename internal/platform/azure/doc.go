// Package azure provides a narrow wrapper around the Azure Resource Manager
// APIs used by the cache provisioning workflow.
//
// # Architecture
//
// The package is organized by resource:
//
//   - client.go: Provider interface and the domain types passed across it
//   - real_client.go: RealClient construction, credentials and options
//   - resource_group.go: resource group create, get, list and delete
//   - cache.go: cache create, list, update, reboot, delete and access keys
//   - schedule.go: patch schedule create/update and listing
//   - errors.go: classification of ARM response errors
//   - metrics.go: per-operation API call counters and latency histograms
//   - mock_client.go: MockClient for tests in other packages
//
// # Long-running operations
//
// Create, update and delete calls on ARM return a poller. RealClient always
// polls to a terminal state before returning, so every Provider method is a
// blocking call that reports the final outcome.
//
// # Idempotent deletes
//
// DeleteCache and DeleteResourceGroup treat a not-found response as success.
// Deleting the same cache twice is therefore harmless.
package azure
