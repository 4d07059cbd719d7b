package azure

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/redis/armredis/v3"
)

// CreateCache creates a cache and waits until provisioning has finished.
func (c *RealClient) CreateCache(ctx context.Context, group, name string, spec CacheSpec) (_ *Cache, err error) {
	defer c.metrics.observe("cache_create", time.Now(), &err)

	props := &armredis.CreateProperties{
		SKU: &armredis.SKU{
			Name:     to.Ptr(armredis.SKUName(spec.Tier)),
			Family:   to.Ptr(armredis.SKUFamily(spec.Family)),
			Capacity: to.Ptr(spec.Capacity),
		},
	}
	if spec.ShardCount > 0 {
		props.ShardCount = to.Ptr(spec.ShardCount)
	}

	poller, err := c.caches.BeginCreate(ctx, group, name, armredis.CreateParameters{
		Location:   to.Ptr(spec.Location),
		Properties: props,
		Tags:       toAzureTags(spec.Tags),
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache %s: %w", name, err)
	}

	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for cache %s: %w", name, err)
	}

	return cacheFromARM(group, &resp.ResourceInfo), nil
}

// ListCaches yields every cache in a resource group. Pages are fetched as
// the sequence is consumed.
func (c *RealClient) ListCaches(ctx context.Context, group string) iter.Seq2[*Cache, error] {
	return func(yield func(*Cache, error) bool) {
		var err error
		defer c.metrics.observe("cache_list", time.Now(), &err)

		pager := c.caches.NewListByResourceGroupPager(group, nil)
		for pager.More() {
			var page armredis.ClientListByResourceGroupResponse
			page, err = pager.NextPage(ctx)
			if err != nil {
				err = fmt.Errorf("failed to list caches in %s: %w", group, err)
				yield(nil, err)
				return
			}
			for _, r := range page.Value {
				if !yield(cacheFromARM(group, r), nil) {
					return
				}
			}
		}
	}
}

// GetKeys returns the access keys of a cache.
func (c *RealClient) GetKeys(ctx context.Context, cache *Cache) (_ *AccessKeys, err error) {
	defer c.metrics.observe("cache_list_keys", time.Now(), &err)

	resp, err := c.caches.ListKeys(ctx, cache.ResourceGroup, cache.Name, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get access keys for %s: %w", cache.Name, err)
	}
	return accessKeysFromARM(&resp.AccessKeys), nil
}

// RegenerateKey regenerates one access key of a cache and returns the new keys.
func (c *RealClient) RegenerateKey(ctx context.Context, cache *Cache, slot KeySlot) (_ *AccessKeys, err error) {
	defer c.metrics.observe("cache_regenerate_key", time.Now(), &err)

	resp, err := c.caches.RegenerateKey(ctx, cache.ResourceGroup, cache.Name, armredis.RegenerateKeyParameters{
		KeyType: to.Ptr(armredis.RedisKeyType(slot)),
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to regenerate %s key for %s: %w", slot, cache.Name, err)
	}
	return accessKeysFromARM(&resp.AccessKeys), nil
}

// Reboot forces a reboot of the selected cache nodes.
func (c *RealClient) Reboot(ctx context.Context, cache *Cache, spec RebootSpec) (err error) {
	defer c.metrics.observe("cache_reboot", time.Now(), &err)

	_, err = c.caches.ForceReboot(ctx, cache.ResourceGroup, cache.Name, armredis.RebootParameters{
		RebootType: to.Ptr(armredis.RebootType(spec.Type)),
		ShardID:    to.Ptr(spec.ShardID),
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to reboot %s: %w", cache.Name, err)
	}
	return nil
}

// UpdateCache applies patch to a cache and waits for the update to finish.
func (c *RealClient) UpdateCache(ctx context.Context, cache *Cache, patch CachePatch) (_ *Cache, err error) {
	defer c.metrics.observe("cache_update", time.Now(), &err)

	props := &armredis.UpdateProperties{
		EnableNonSSLPort: to.Ptr(patch.EnableNonSSLPort),
	}
	if patch.ShardCount > 0 {
		props.ShardCount = to.Ptr(patch.ShardCount)
	}
	if patch.MaxMemoryPolicy != "" || patch.MaxMemoryReserved != "" {
		props.RedisConfiguration = &armredis.CommonPropertiesRedisConfiguration{}
		if patch.MaxMemoryPolicy != "" {
			props.RedisConfiguration.MaxmemoryPolicy = to.Ptr(patch.MaxMemoryPolicy)
		}
		if patch.MaxMemoryReserved != "" {
			props.RedisConfiguration.MaxmemoryReserved = to.Ptr(patch.MaxMemoryReserved)
		}
	}

	poller, err := c.caches.BeginUpdate(ctx, cache.ResourceGroup, cache.Name, armredis.UpdateParameters{
		Properties: props,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to update cache %s: %w", cache.Name, err)
	}

	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for update of %s: %w", cache.Name, err)
	}
	return cacheFromARM(cache.ResourceGroup, &resp.ResourceInfo), nil
}

// DeleteCache deletes a cache and waits for the deletion to finish.
// A cache that no longer exists is not an error.
func (c *RealClient) DeleteCache(ctx context.Context, cache *Cache) error {
	start := time.Now()
	poller, err := c.caches.BeginDelete(ctx, cache.ResourceGroup, cache.Name, nil)
	if err == nil {
		_, err = poller.PollUntilDone(ctx, nil)
	}
	// Observed before a missing cache is turned into success.
	c.metrics.observe("cache_delete", start, &err)
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to delete cache %s: %w", cache.Name, err)
	}
	return nil
}

func cacheFromARM(group string, r *armredis.ResourceInfo) *Cache {
	if r == nil {
		return nil
	}

	cache := &Cache{
		ID:            toValue(r.ID),
		Name:          toValue(r.Name),
		ResourceGroup: group,
		Location:      toValue(r.Location),
	}

	p := r.Properties
	if p == nil {
		return cache
	}

	if p.SKU != nil {
		cache.Tier = string(toValue(p.SKU.Name))
		cache.Family = string(toValue(p.SKU.Family))
		cache.Capacity = toValue(p.SKU.Capacity)
	}
	cache.ShardCount = toValue(p.ShardCount)
	cache.HostName = toValue(p.HostName)
	cache.EnableNonSSLPort = toValue(p.EnableNonSSLPort)
	cache.ProvisioningState = string(toValue(p.ProvisioningState))

	if cfg := p.RedisConfiguration; cfg != nil {
		cache.RedisConfiguration = map[string]string{}
		if cfg.MaxmemoryPolicy != nil {
			cache.RedisConfiguration["maxmemory-policy"] = *cfg.MaxmemoryPolicy
		}
		if cfg.MaxmemoryReserved != nil {
			cache.RedisConfiguration["maxmemory-reserved"] = *cfg.MaxmemoryReserved
		}
	}

	return cache
}

func accessKeysFromARM(k *armredis.AccessKeys) *AccessKeys {
	return &AccessKeys{
		PrimaryKey:   toValue(k.PrimaryKey),
		SecondaryKey: toValue(k.SecondaryKey),
	}
}
