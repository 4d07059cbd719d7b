package azure

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"strings"
	"sync"
)

// Operation names recorded by MockClient.
const (
	OpCreateResourceGroup    = "CreateResourceGroup"
	OpGetResourceGroup       = "GetResourceGroup"
	OpListResourceGroups     = "ListResourceGroups"
	OpDeleteResourceGroup    = "DeleteResourceGroup"
	OpCreateCache            = "CreateCache"
	OpListCaches             = "ListCaches"
	OpGetKeys                = "GetKeys"
	OpRegenerateKey          = "RegenerateKey"
	OpReboot                 = "Reboot"
	OpUpdateCache            = "UpdateCache"
	OpDeleteCache            = "DeleteCache"
	OpCreateOrUpdateSchedule = "CreateOrUpdateSchedule"
	OpListSchedules          = "ListSchedules"
)

// Call is one recorded MockClient invocation. Target is the resource group
// name, ID or cache name the call addressed.
type Call struct {
	Op     string
	Target string
}

func (c Call) String() string {
	return c.Op + "(" + c.Target + ")"
}

// MockClient is a mock implementation of Provider. Every call is recorded.
// Unset Func fields fall back to an in-memory behaviour: created caches are
// returned by ListCaches in name order and the last schedule written is
// returned by ListSchedules.
type MockClient struct {
	// Resource groups
	CreateResourceGroupFunc func(ctx context.Context, name, location string, tags map[string]string) (*ResourceGroup, error)
	GetResourceGroupFunc    func(ctx context.Context, id string) (*ResourceGroup, error)
	ListResourceGroupsFunc  func(ctx context.Context, tagName, tagValue string) ([]*ResourceGroup, error)
	DeleteResourceGroupFunc func(ctx context.Context, id string) error

	// Caches
	CreateCacheFunc   func(ctx context.Context, group, name string, spec CacheSpec) (*Cache, error)
	ListCachesFunc    func(ctx context.Context, group string) ([]*Cache, error)
	GetKeysFunc       func(ctx context.Context, cache *Cache) (*AccessKeys, error)
	RegenerateKeyFunc func(ctx context.Context, cache *Cache, slot KeySlot) (*AccessKeys, error)
	RebootFunc        func(ctx context.Context, cache *Cache, spec RebootSpec) error
	UpdateCacheFunc   func(ctx context.Context, cache *Cache, patch CachePatch) (*Cache, error)
	DeleteCacheFunc   func(ctx context.Context, cache *Cache) error

	// Patch schedules
	CreateOrUpdateScheduleFunc func(ctx context.Context, cache *Cache, entries []ScheduleEntry) (*Schedule, error)
	ListSchedulesFunc          func(ctx context.Context, cache *Cache) ([]*Schedule, error)

	mu        sync.Mutex
	calls     []Call
	caches    []*Cache
	schedules map[string]*Schedule
}

// Ensure interface compliance
var _ Provider = (*MockClient)(nil)

func (m *MockClient) record(op, target string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Op: op, Target: target})
}

// Calls returns a copy of the recorded calls in invocation order.
func (m *MockClient) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// CallsTo returns the recorded calls of one operation.
func (m *MockClient) CallsTo(op string) []Call {
	var result []Call
	for _, c := range m.Calls() {
		if c.Op == op {
			result = append(result, c)
		}
	}
	return result
}

// CallCount returns how often op was invoked.
func (m *MockClient) CallCount(op string) int {
	return len(m.CallsTo(op))
}

// Reset clears the recorded calls and the in-memory state.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.caches = nil
	m.schedules = nil
}

// CreateResourceGroup mocks resource group creation.
func (m *MockClient) CreateResourceGroup(ctx context.Context, name, location string, tags map[string]string) (*ResourceGroup, error) {
	m.record(OpCreateResourceGroup, name)
	if m.CreateResourceGroupFunc != nil {
		return m.CreateResourceGroupFunc(ctx, name, location, tags)
	}
	return &ResourceGroup{
		ID:       MockResourceGroupID(name),
		Name:     name,
		Location: location,
		Tags:     tags,
	}, nil
}

// GetResourceGroup mocks resource group lookup.
func (m *MockClient) GetResourceGroup(ctx context.Context, id string) (*ResourceGroup, error) {
	m.record(OpGetResourceGroup, id)
	if m.GetResourceGroupFunc != nil {
		return m.GetResourceGroupFunc(ctx, id)
	}
	name, err := ResourceGroupName(id)
	if err != nil {
		return nil, err
	}
	return &ResourceGroup{ID: id, Name: name}, nil
}

// ListResourceGroups mocks tag-filtered resource group listing.
func (m *MockClient) ListResourceGroups(ctx context.Context, tagName, tagValue string) ([]*ResourceGroup, error) {
	m.record(OpListResourceGroups, tagName+"="+tagValue)
	if m.ListResourceGroupsFunc != nil {
		return m.ListResourceGroupsFunc(ctx, tagName, tagValue)
	}
	return nil, nil
}

// DeleteResourceGroup mocks resource group deletion.
func (m *MockClient) DeleteResourceGroup(ctx context.Context, id string) error {
	m.record(OpDeleteResourceGroup, id)
	if m.DeleteResourceGroupFunc != nil {
		return m.DeleteResourceGroupFunc(ctx, id)
	}
	return nil
}

// CreateCache mocks cache creation.
func (m *MockClient) CreateCache(ctx context.Context, group, name string, spec CacheSpec) (*Cache, error) {
	m.record(OpCreateCache, name)

	var (
		cache *Cache
		err   error
	)
	if m.CreateCacheFunc != nil {
		cache, err = m.CreateCacheFunc(ctx, group, name, spec)
	} else {
		cache = &Cache{
			ID:                fmt.Sprintf("%s/providers/Microsoft.Cache/redis/%s", MockResourceGroupID(group), name),
			Name:              name,
			ResourceGroup:     group,
			Location:          spec.Location,
			Tier:              spec.Tier,
			Family:            spec.Family,
			Capacity:          spec.Capacity,
			ShardCount:        spec.ShardCount,
			HostName:          name + ".redis.cache.windows.net",
			ProvisioningState: "Succeeded",
		}
	}
	if err != nil || cache == nil {
		return cache, err
	}

	m.mu.Lock()
	m.caches = append(m.caches, cache)
	m.mu.Unlock()
	return cache, nil
}

// ListCaches mocks cache listing.
func (m *MockClient) ListCaches(ctx context.Context, group string) iter.Seq2[*Cache, error] {
	return func(yield func(*Cache, error) bool) {
		m.record(OpListCaches, group)

		var caches []*Cache
		if m.ListCachesFunc != nil {
			var err error
			caches, err = m.ListCachesFunc(ctx, group)
			if err != nil {
				yield(nil, err)
				return
			}
		} else {
			m.mu.Lock()
			for _, c := range m.caches {
				if c.ResourceGroup == group {
					caches = append(caches, c)
				}
			}
			m.mu.Unlock()
			slices.SortFunc(caches, func(a, b *Cache) int { return strings.Compare(a.Name, b.Name) })
		}

		for _, c := range caches {
			if !yield(c, nil) {
				return
			}
		}
	}
}

// GetKeys mocks access key retrieval.
func (m *MockClient) GetKeys(ctx context.Context, cache *Cache) (*AccessKeys, error) {
	m.record(OpGetKeys, cache.Name)
	if m.GetKeysFunc != nil {
		return m.GetKeysFunc(ctx, cache)
	}
	return &AccessKeys{PrimaryKey: "primary-key", SecondaryKey: "secondary-key"}, nil
}

// RegenerateKey mocks access key regeneration.
func (m *MockClient) RegenerateKey(ctx context.Context, cache *Cache, slot KeySlot) (*AccessKeys, error) {
	m.record(OpRegenerateKey, cache.Name)
	if m.RegenerateKeyFunc != nil {
		return m.RegenerateKeyFunc(ctx, cache, slot)
	}
	return &AccessKeys{PrimaryKey: "primary-key", SecondaryKey: "regenerated-key"}, nil
}

// Reboot mocks a forced reboot.
func (m *MockClient) Reboot(ctx context.Context, cache *Cache, spec RebootSpec) error {
	m.record(OpReboot, cache.Name)
	if m.RebootFunc != nil {
		return m.RebootFunc(ctx, cache, spec)
	}
	return nil
}

// UpdateCache mocks a cache update.
func (m *MockClient) UpdateCache(ctx context.Context, cache *Cache, patch CachePatch) (*Cache, error) {
	m.record(OpUpdateCache, cache.Name)
	if m.UpdateCacheFunc != nil {
		return m.UpdateCacheFunc(ctx, cache, patch)
	}
	updated := *cache
	if patch.ShardCount > 0 {
		updated.ShardCount = patch.ShardCount
	}
	updated.EnableNonSSLPort = patch.EnableNonSSLPort
	updated.RedisConfiguration = map[string]string{
		"maxmemory-policy":   patch.MaxMemoryPolicy,
		"maxmemory-reserved": patch.MaxMemoryReserved,
	}
	return &updated, nil
}

// DeleteCache mocks cache deletion.
func (m *MockClient) DeleteCache(ctx context.Context, cache *Cache) error {
	m.record(OpDeleteCache, cache.Name)
	if m.DeleteCacheFunc != nil {
		return m.DeleteCacheFunc(ctx, cache)
	}
	return nil
}

// CreateOrUpdateSchedule mocks patch schedule creation.
func (m *MockClient) CreateOrUpdateSchedule(ctx context.Context, cache *Cache, entries []ScheduleEntry) (*Schedule, error) {
	m.record(OpCreateOrUpdateSchedule, cache.Name)
	if m.CreateOrUpdateScheduleFunc != nil {
		return m.CreateOrUpdateScheduleFunc(ctx, cache, entries)
	}

	s := &Schedule{
		ID:      cache.ID + "/patchSchedules/default",
		Name:    cache.Name + "/default",
		Entries: append([]ScheduleEntry(nil), entries...),
	}
	m.mu.Lock()
	if m.schedules == nil {
		m.schedules = map[string]*Schedule{}
	}
	m.schedules[cache.Name] = s
	m.mu.Unlock()
	return s, nil
}

// ListSchedules mocks patch schedule listing.
func (m *MockClient) ListSchedules(ctx context.Context, cache *Cache) ([]*Schedule, error) {
	m.record(OpListSchedules, cache.Name)
	if m.ListSchedulesFunc != nil {
		return m.ListSchedulesFunc(ctx, cache)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.schedules[cache.Name]; ok {
		return []*Schedule{s}, nil
	}
	return nil, nil
}

// MockResourceGroupID builds the ARM ID MockClient assigns to a resource group.
func MockResourceGroupID(name string) string {
	return "/subscriptions/00000000-0000-0000-0000-000000000000/resourceGroups/" + name
}
