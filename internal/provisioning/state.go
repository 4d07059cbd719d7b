package provisioning

import (
	"sync"

	"github.com/imamik/redisflow/internal/platform/azure"
	"github.com/imamik/redisflow/internal/util/async"
)

// State holds the shared results of provisioning phases.
// It is progressively populated as each phase completes and is passed
// to subsequent phases and to the teardown finalizer.
type State struct {
	// ResourceGroup is set once the container exists. Nil means nothing was
	// created and teardown has nothing to do.
	ResourceGroup *azure.ResourceGroup

	// Caches holds the created caches in configuration order.
	Caches []*azure.Cache

	// PremiumProcessed lists the caches that went through premium maintenance.
	PremiumProcessed []string

	// Deleted lists the caches whose delete completed, in completion order.
	// Detached deletes append from their own goroutines; use RecordDeleted.
	Deleted []string

	// Detached holds mutations dispatched without waiting for them.
	// Only the runner goroutine appends to it.
	Detached []*async.Future[struct{}]

	mu sync.Mutex
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{}
}

// FirstCache returns the first created cache, or nil if none exists.
func (s *State) FirstCache() *azure.Cache {
	if len(s.Caches) == 0 {
		return nil
	}
	return s.Caches[0]
}

// RecordDeleted appends name to Deleted. It is safe for concurrent use.
func (s *State) RecordDeleted(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Deleted = append(s.Deleted, name)
}

// DeletedCaches returns a copy of Deleted.
func (s *State) DeletedCaches() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.Deleted...)
}
