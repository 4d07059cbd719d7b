// Package tags provides consistent tagging for Azure resources.
//
// Every resource created by a run carries the run identifier and the
// managing tool, so leftovers from an interrupted run can be found and
// removed with the cleanup command.
package tags
