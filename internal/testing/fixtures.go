package testing

import (
	"context"
	"strings"

	"github.com/imamik/redisflow/internal/platform/azure"
)

// ProviderFixture configures a MockClient for common test scenarios.
// Unconfigured operations keep the MockClient's in-memory behaviour.
type ProviderFixture struct {
	mock *azure.MockClient
}

// NewProviderFixture creates a fixture around an empty MockClient.
func NewProviderFixture() *ProviderFixture {
	return &ProviderFixture{mock: &azure.MockClient{}}
}

// Mock returns the underlying MockClient for custom configuration.
func (f *ProviderFixture) Mock() *azure.MockClient {
	return f.mock
}

// FailResourceGroup makes resource group creation fail with err.
func (f *ProviderFixture) FailResourceGroup(err error) *ProviderFixture {
	f.mock.CreateResourceGroupFunc = func(_ context.Context, _, _ string, _ map[string]string) (*azure.ResourceGroup, error) {
		return nil, err
	}
	return f
}

// FailCacheCreate makes the creation of caches whose name starts with prefix
// fail with err. Other caches are created normally and remain listable.
func (f *ProviderFixture) FailCacheCreate(prefix string, err error) *ProviderFixture {
	f.mock.CreateCacheFunc = func(_ context.Context, group, name string, spec azure.CacheSpec) (*azure.Cache, error) {
		if strings.HasPrefix(name, prefix) {
			return nil, err
		}
		return NewCache(group, name, spec), nil
	}
	return f
}

// FailCacheDelete makes deleting caches whose name starts with prefix fail.
func (f *ProviderFixture) FailCacheDelete(prefix string, err error) *ProviderFixture {
	f.mock.DeleteCacheFunc = func(_ context.Context, cache *azure.Cache) error {
		if strings.HasPrefix(cache.Name, prefix) {
			return err
		}
		return nil
	}
	return f
}

// FailTeardown makes every resource group delete fail with err.
func (f *ProviderFixture) FailTeardown(err error) *ProviderFixture {
	f.mock.DeleteResourceGroupFunc = func(_ context.Context, _ string) error {
		return err
	}
	return f
}

// NewCache builds a provisioned cache handle the way MockClient does.
func NewCache(group, name string, spec azure.CacheSpec) *azure.Cache {
	return &azure.Cache{
		ID:                azure.MockResourceGroupID(group) + "/providers/Microsoft.Cache/redis/" + name,
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
