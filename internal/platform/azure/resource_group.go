package azure

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
)

// CreateResourceGroup creates or updates a resource group.
func (c *RealClient) CreateResourceGroup(ctx context.Context, name, location string, tags map[string]string) (_ *ResourceGroup, err error) {
	defer c.metrics.observe("resource_group_create", time.Now(), &err)

	resp, err := c.groups.CreateOrUpdate(ctx, name, armresources.ResourceGroup{
		Location: to.Ptr(location),
		Tags:     toAzureTags(tags),
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource group %s: %w", name, err)
	}

	return resourceGroupFromARM(&resp.ResourceGroup), nil
}

// GetResourceGroup returns the resource group identified by its ARM ID.
func (c *RealClient) GetResourceGroup(ctx context.Context, id string) (_ *ResourceGroup, err error) {
	defer c.metrics.observe("resource_group_get", time.Now(), &err)

	name, err := ResourceGroupName(id)
	if err != nil {
		return nil, err
	}

	resp, err := c.groups.Get(ctx, name, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get resource group %s: %w", name, err)
	}

	return resourceGroupFromARM(&resp.ResourceGroup), nil
}

// ListResourceGroups returns all resource groups in the subscription that
// carry tagName=tagValue.
func (c *RealClient) ListResourceGroups(ctx context.Context, tagName, tagValue string) (_ []*ResourceGroup, err error) {
	defer c.metrics.observe("resource_group_list", time.Now(), &err)

	filter := fmt.Sprintf("tagName eq '%s' and tagValue eq '%s'", tagName, tagValue)
	pager := c.groups.NewListPager(&armresources.ResourceGroupsClientListOptions{
		Filter: to.Ptr(filter),
	})

	var result []*ResourceGroup
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list resource groups: %w", err)
		}
		for _, rg := range page.Value {
			result = append(result, resourceGroupFromARM(rg))
		}
	}
	return result, nil
}

// DeleteResourceGroup deletes the resource group with the given ARM ID and
// waits for the deletion to finish. A missing group is not an error.
func (c *RealClient) DeleteResourceGroup(ctx context.Context, id string) error {
	name, err := ResourceGroupName(id)
	if err != nil {
		return err
	}

	start := time.Now()
	poller, err := c.groups.BeginDelete(ctx, name, nil)
	if err == nil {
		_, err = poller.PollUntilDone(ctx, nil)
	}
	// Observed before a missing group is turned into success.
	c.metrics.observe("resource_group_delete", start, &err)
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to delete resource group %s: %w", name, err)
	}
	return nil
}

// ResourceGroupName extracts the resource group name from an ARM resource ID.
func ResourceGroupName(id string) (string, error) {
	rid, err := arm.ParseResourceID(id)
	if err != nil {
		return "", fmt.Errorf("invalid resource group ID %q: %w", id, err)
	}
	if rid.ResourceGroupName == "" {
		return "", fmt.Errorf("resource ID %q does not reference a resource group", id)
	}
	return rid.ResourceGroupName, nil
}

func resourceGroupFromARM(rg *armresources.ResourceGroup) *ResourceGroup {
	if rg == nil {
		return nil
	}
	return &ResourceGroup{
		ID:       toValue(rg.ID),
		Name:     toValue(rg.Name),
		Location: toValue(rg.Location),
		Tags:     fromAzureTags(rg.Tags),
	}
}

// toValue dereferences p, returning the zero value for nil.
func toValue[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

func toAzureTags(tags map[string]string) map[string]*string {
	if len(tags) == 0 {
		return nil
	}
	result := make(map[string]*string, len(tags))
	for k, v := range tags {
		result[k] = to.Ptr(v)
	}
	return result
}

func fromAzureTags(tags map[string]*string) map[string]string {
	if len(tags) == 0 {
		return nil
	}
	result := make(map[string]string, len(tags))
	for k, v := range tags {
		result[k] = toValue(v)
	}
	return result
}
