// Package naming provides consistent names for Azure resources.
//
// Every run creates its resources under fresh names of the form
// {prefix}{suffix}, where the suffix is derived from a random UUID. This
// keeps concurrent or repeated runs in the same subscription from colliding.
package naming
