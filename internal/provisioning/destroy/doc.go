// Package destroy handles resource group teardown.
//
// Every run keeps its caches inside one resource group, so teardown is a
// single delete of that group. Finalize is deferred by the workflow runner and
// never fails: a missing group is skipped and a failed delete is logged and
// reported in the Result. DeleteGroups serves the standalone cleanup command
// for groups left behind by interrupted runs.
package destroy
