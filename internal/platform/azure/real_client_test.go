package azure

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSubscription = "00000000-0000-0000-0000-000000000000"

type fakeCredential struct{}

func (fakeCredential) GetToken(_ context.Context, _ policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{Token: "test-token", ExpiresOn: time.Now().Add(time.Hour)}, nil
}

// fakeARM serves ARM requests in-process. Routes are matched on the
// lowercased method and path.
type fakeARM struct {
	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	requests []*http.Request
	bodies   map[string]string
}

func newFakeARM() *fakeARM {
	return &fakeARM{routes: map[string]http.HandlerFunc{}, bodies: map[string]string{}}
}

func (f *fakeARM) handle(method, path string, h http.HandlerFunc) {
	f.routes[strings.ToLower(method+" "+path)] = h
}

func (f *fakeARM) Do(req *http.Request) (*http.Response, error) {
	key := strings.ToLower(req.Method + " " + req.URL.Path)

	f.mu.Lock()
	f.requests = append(f.requests, req)
	if req.Body != nil {
		body, _ := io.ReadAll(req.Body)
		f.bodies[key] = string(body)
	}
	h, ok := f.routes[key]
	f.mu.Unlock()

	rec := httptest.NewRecorder()
	if !ok {
		jsonResponse(rec, http.StatusNotFound, map[string]any{
			"error": map[string]string{"code": "ResourceNotFound", "message": "not found: " + req.URL.Path},
		})
	} else {
		h(rec, req)
	}
	resp := rec.Result()
	resp.Request = req
	return resp, nil
}

func (f *fakeARM) body(method, path string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bodies[strings.ToLower(method+" "+path)]
}

func (f *fakeARM) realClient(t *testing.T, reg *prometheus.Registry) *RealClient {
	t.Helper()
	opts := &arm.ClientOptions{}
	opts.Transport = f
	opts.Retry = policy.RetryOptions{MaxRetries: -1}

	var clientOpts []ClientOption
	clientOpts = append(clientOpts, WithARMClientOptions(opts))
	if reg != nil {
		clientOpts = append(clientOpts, WithRegisterer(reg))
	}
	c, err := NewRealClient(testSubscription, fakeCredential{}, clientOpts...)
	require.NoError(t, err)
	return c
}

func jsonResponse(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

const (
	rgPath    = "/subscriptions/" + testSubscription + "/resourcegroups/RedisRGtest"
	cachePath = "/subscriptions/" + testSubscription + "/resourceGroups/RedisRGtest/providers/Microsoft.Cache/redis/rc2"
)

func premiumCacheBody() map[string]any {
	return map[string]any{
		"id":       cachePath,
		"name":     "rc2",
		"location": "centralus",
		"properties": map[string]any{
			"sku":               map[string]any{"name": "Premium", "family": "P", "capacity": 1},
			"shardCount":        3,
			"hostName":          "rc2.redis.cache.windows.net",
			"enableNonSslPort":  false,
			"provisioningState": "Succeeded",
			"redisConfiguration": map[string]any{
				"maxmemory-policy": "volatile-lru",
			},
		},
	}
}

func TestRealClient_ResourceGroups_WithHTTPMock(t *testing.T) {
	f := newFakeARM()
	group := map[string]any{
		"id":       rgPath,
		"name":     "RedisRGtest",
		"location": "centralus",
		"tags":     map[string]string{"redisflow-managed-by": "redisflow"},
	}
	f.handle(http.MethodPut, rgPath, func(w http.ResponseWriter, _ *http.Request) {
		jsonResponse(w, http.StatusCreated, group)
	})
	f.handle(http.MethodGet, rgPath, func(w http.ResponseWriter, _ *http.Request) {
		jsonResponse(w, http.StatusOK, group)
	})
	f.handle(http.MethodGet, "/subscriptions/"+testSubscription+"/resourcegroups", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tagName eq 'redisflow-managed-by' and tagValue eq 'redisflow'", r.URL.Query().Get("$filter"))
		jsonResponse(w, http.StatusOK, map[string]any{"value": []any{group}})
	})

	reg := prometheus.NewRegistry()
	c := f.realClient(t, reg)
	ctx := context.Background()

	rg, err := c.CreateResourceGroup(ctx, "RedisRGtest", "centralus", map[string]string{"redisflow-managed-by": "redisflow"})
	require.NoError(t, err)
	assert.Equal(t, rgPath, rg.ID)
	assert.Equal(t, "redisflow", rg.Tags["redisflow-managed-by"])
	assert.Contains(t, f.body(http.MethodPut, rgPath), `"location":"centralus"`)

	got, err := c.GetResourceGroup(ctx, rgPath)
	require.NoError(t, err)
	assert.Equal(t, "RedisRGtest", got.Name)

	groups, err := c.ListResourceGroups(ctx, "redisflow-managed-by", "redisflow")
	require.NoError(t, err)
	require.Len(t, groups, 1)

	calls, err := APICallCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRealClient_GetResourceGroup_NotFound(t *testing.T) {
	f := newFakeARM()
	c := f.realClient(t, nil)

	_, err := c.GetResourceGroup(context.Background(), rgPath)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	calls, err := c.APICalls()
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRealClient_DeleteMissing_WithHTTPMock(t *testing.T) {
	f := newFakeARM()
	c := f.realClient(t, nil)
	ctx := context.Background()

	assert.NoError(t, c.DeleteResourceGroup(ctx, rgPath))
	assert.NoError(t, c.DeleteCache(ctx, &Cache{Name: "rc2", ResourceGroup: "RedisRGtest"}))

	for _, op := range []string{"resource_group_delete", "cache_delete"} {
		assert.Equal(t, 1.0, testutil.ToFloat64(c.metrics.calls.WithLabelValues(op, resultNotFound)), op)
		assert.Equal(t, 0.0, testutil.ToFloat64(c.metrics.calls.WithLabelValues(op, resultSuccess)), op)
	}
}

func TestRealClient_DeleteCache_CountsSuccess(t *testing.T) {
	f := newFakeARM()
	f.handle(http.MethodDelete, cachePath, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	c := f.realClient(t, nil)

	require.NoError(t, c.DeleteCache(context.Background(), &Cache{Name: "rc2", ResourceGroup: "RedisRGtest"}))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.metrics.calls.WithLabelValues("cache_delete", resultSuccess)))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.metrics.calls.WithLabelValues("cache_delete", resultNotFound)))
}

func TestRealClient_DeleteResourceGroup_InvalidID(t *testing.T) {
	c := newFakeARM().realClient(t, nil)
	assert.Error(t, c.DeleteResourceGroup(context.Background(), "not-an-id"))
}

func TestRealClient_Caches_WithHTTPMock(t *testing.T) {
	f := newFakeARM()
	f.handle(http.MethodGet, "/subscriptions/"+testSubscription+"/resourceGroups/RedisRGtest/providers/Microsoft.Cache/redis",
		func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, http.StatusOK, map[string]any{"value": []any{premiumCacheBody()}})
		})
	f.handle(http.MethodPost, cachePath+"/listKeys", func(w http.ResponseWriter, _ *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]string{"primaryKey": "p1", "secondaryKey": "s1"})
	})
	f.handle(http.MethodPost, cachePath+"/regenerateKey", func(w http.ResponseWriter, _ *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]string{"primaryKey": "p1", "secondaryKey": "s2"})
	})
	f.handle(http.MethodPost, cachePath+"/forceReboot", func(w http.ResponseWriter, _ *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]string{"message": "ok"})
	})

	c := f.realClient(t, nil)
	ctx := context.Background()

	var caches []*Cache
	for cache, err := range c.ListCaches(ctx, "RedisRGtest") {
		require.NoError(t, err)
		caches = append(caches, cache)
	}
	require.Len(t, caches, 1)
	cache := caches[0]
	assert.Equal(t, "rc2", cache.Name)
	assert.Equal(t, "RedisRGtest", cache.ResourceGroup)
	assert.True(t, cache.IsPremium())
	assert.Equal(t, int32(3), cache.ShardCount)
	assert.Equal(t, "volatile-lru", cache.RedisConfiguration["maxmemory-policy"])

	keys, err := c.GetKeys(ctx, cache)
	require.NoError(t, err)
	assert.Equal(t, "s1", keys.SecondaryKey)

	keys, err = c.RegenerateKey(ctx, cache, KeySecondary)
	require.NoError(t, err)
	assert.Equal(t, "s2", keys.SecondaryKey)
	assert.Contains(t, f.body(http.MethodPost, cachePath+"/regenerateKey"), `"keyType":"Secondary"`)

	require.NoError(t, c.Reboot(ctx, cache, RebootSpec{Type: RebootAllNodes, ShardID: 1}))
	reboot := f.body(http.MethodPost, cachePath+"/forceReboot")
	assert.Contains(t, reboot, `"rebootType":"AllNodes"`)
	assert.Contains(t, reboot, `"shardId":1`)
}

func TestRealClient_ListCaches_Error(t *testing.T) {
	c := newFakeARM().realClient(t, nil)

	var errs []error
	for cache, err := range c.ListCaches(context.Background(), "RedisRGtest") {
		assert.Nil(t, cache)
		errs = append(errs, err)
	}
	require.Len(t, errs, 1)
	assert.True(t, IsNotFound(errs[0]))
}

func TestRealClient_Schedules_WithHTTPMock(t *testing.T) {
	f := newFakeARM()
	schedule := func(day string, hour int, window string) map[string]any {
		return map[string]any{
			"id":   cachePath + "/patchSchedules/default",
			"name": "rc2/default",
			"properties": map[string]any{
				"scheduleEntries": []any{
					map[string]any{"dayOfWeek": day, "startHourUtc": hour, "maintenanceWindow": window},
				},
			},
		}
	}
	f.handle(http.MethodPut, cachePath+"/patchSchedules/default", func(w http.ResponseWriter, _ *http.Request) {
		jsonResponse(w, http.StatusOK, schedule("Tuesday", 11, "PT11H"))
	})
	f.handle(http.MethodGet, cachePath+"/patchSchedules", func(w http.ResponseWriter, _ *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]any{"value": []any{schedule("Tuesday", 11, "PT11H")}})
	})

	c := f.realClient(t, nil)
	ctx := context.Background()
	cache := &Cache{Name: "rc2", ResourceGroup: "RedisRGtest"}

	s, err := c.CreateOrUpdateSchedule(ctx, cache, []ScheduleEntry{
		{Day: time.Tuesday, StartHourUTC: 11, MaintenanceWindow: 11 * time.Hour},
	})
	require.NoError(t, err)
	require.Len(t, s.Entries, 1)
	assert.Equal(t, time.Tuesday, s.Entries[0].Day)
	assert.Equal(t, 11*time.Hour, s.Entries[0].MaintenanceWindow)

	body := f.body(http.MethodPut, cachePath+"/patchSchedules/default")
	assert.Contains(t, body, `"dayOfWeek":"Tuesday"`)
	assert.Contains(t, body, `"maintenanceWindow":"PT11H"`)

	list, err := c.ListSchedules(ctx, cache)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "rc2/default", list[0].Name)
}

func TestResourceGroupName(t *testing.T) {
	t.Parallel()

	name, err := ResourceGroupName(MockResourceGroupID("RedisRGabcd1234"))
	require.NoError(t, err)
	assert.Equal(t, "RedisRGabcd1234", name)

	_, err = ResourceGroupName("/subscriptions/" + testSubscription)
	assert.Error(t, err)

	_, err = ResourceGroupName("garbage")
	assert.Error(t, err)
}

func TestWithRegisterer_SharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	f := newFakeARM()

	a := f.realClient(t, reg)
	b := f.realClient(t, reg)
	ctx := context.Background()

	_, _ = a.GetResourceGroup(ctx, rgPath)
	_, _ = b.GetResourceGroup(ctx, rgPath)

	calls, err := APICallCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
