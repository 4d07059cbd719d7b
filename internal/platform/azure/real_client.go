package azure

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/redis/armredis/v3"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/imamik/redisflow/internal/config"
)

// RealClient implements Provider using the Azure Resource Manager APIs.
type RealClient struct {
	groups    *armresources.ResourceGroupsClient
	caches    *armredis.Client
	schedules *armredis.PatchSchedulesClient
	metrics   *apiMetrics
	gatherer  prometheus.Gatherer
}

type clientOptions struct {
	arm        *arm.ClientOptions
	registerer prometheus.Registerer
}

// ClientOption configures a RealClient.
type ClientOption func(*clientOptions)

// WithARMClientOptions sets the options passed to every ARM client, such as
// a custom cloud or transport.
func WithARMClientOptions(o *arm.ClientOptions) ClientOption {
	return func(c *clientOptions) {
		c.arm = o
	}
}

// WithRegisterer registers the API metrics with reg.
// Without it the metrics are kept in a private registry.
func WithRegisterer(reg prometheus.Registerer) ClientOption {
	return func(c *clientOptions) {
		c.registerer = reg
	}
}

// NewCredential builds a client secret credential for the service principal.
func NewCredential(creds config.Credentials) (azcore.TokenCredential, error) {
	cred, err := azidentity.NewClientSecretCredential(creds.TenantID, creds.ClientID, creds.ClientSecret, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create client secret credential: %w", err)
	}
	return cred, nil
}

// NewRealClient creates the ARM clients for a subscription.
func NewRealClient(subscriptionID string, cred azcore.TokenCredential, opts ...ClientOption) (*RealClient, error) {
	o := &clientOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.registerer == nil {
		o.registerer = prometheus.NewRegistry()
	}
	gatherer, _ := o.registerer.(prometheus.Gatherer)

	groups, err := armresources.NewResourceGroupsClient(subscriptionID, cred, o.arm)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource groups client: %w", err)
	}

	caches, err := armredis.NewClient(subscriptionID, cred, o.arm)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}

	schedules, err := armredis.NewPatchSchedulesClient(subscriptionID, cred, o.arm)
	if err != nil {
		return nil, fmt.Errorf("failed to create patch schedules client: %w", err)
	}

	metrics, err := newAPIMetrics(o.registerer)
	if err != nil {
		return nil, err
	}

	return &RealClient{
		groups:    groups,
		caches:    caches,
		schedules: schedules,
		metrics:   metrics,
		gatherer:  gatherer,
	}, nil
}

// APICalls returns the number of ARM calls made so far. It reports zero when
// the metrics were registered with a Registerer that cannot be gathered.
func (c *RealClient) APICalls() (int, error) {
	if c.gatherer == nil {
		return 0, nil
	}
	return APICallCount(c.gatherer)
}

// NewRealClientFromCredentials creates a RealClient authenticated as the
// service principal in creds.
func NewRealClientFromCredentials(creds config.Credentials, opts ...ClientOption) (*RealClient, error) {
	cred, err := NewCredential(creds)
	if err != nil {
		return nil, err
	}
	return NewRealClient(creds.SubscriptionID, cred, opts...)
}

// Ensure interface compliance
var _ Provider = (*RealClient)(nil)
