// Package config defines the workflow configuration used by the runner and
// the Azure platform client.
//
// The [Config] struct describes one provisioning run: the location and name
// prefix of the resource group, the caches to create, the maintenance
// schedules and patch values applied to premium caches, and how mutation
// calls are dispatched. [Default] reproduces the stock workflow; [Load]
// overlays an optional YAML file on top of it.
//
// Credentials are never read from the workflow file. [LoadCredentials]
// reads them from the environment.
package config
