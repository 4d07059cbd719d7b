// Package retry retries operations with exponential backoff. Only errors the
// caller classifies as transient are retried.
package retry
