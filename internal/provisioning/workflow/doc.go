// Package workflow runs the cache provisioning workflow.
//
// A run creates a uniquely named resource group, creates every configured
// cache concurrently and waits for all of them, then performs the follow-up
// operations: access key rotation on the first cache, patch schedules and
// maintenance (reboot, patch, schedule update, delete) on premium caches, and
// a final delete of the first cache. The resource group is deleted on every
// exit path.
package workflow
