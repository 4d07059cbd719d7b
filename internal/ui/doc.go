// Package ui renders terminal output for redisflow: the run summary, the
// cleanup confirmation prompt, and terminal detection.
package ui
