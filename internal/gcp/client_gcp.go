package gcp

import (
	"context"
	"errors"
	"fmt"

	compute "cloud.google.com/go/compute/apiv1"
	"cloud.google.com/go/compute/apiv1/computepb"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GCPComputeClient implements ComputeAPI using the GCP Compute Engine SDK.
type GCPComputeClient struct {
	disks                 DisksClient
	resourcePolicies      ResourcePoliciesClient
	instanceTemplates     InstanceTemplatesClient
	instanceGroupManagers InstanceGroupManagersClient
	machineTypes          MachineTypesClient
	firewalls             FirewallsClient
}

// NewComputeClient creates a ComputeAPI backed by Application Default Credentials,
// or by whatever credentials the options carry.
func NewComputeClient(ctx context.Context, opts ...option.ClientOption) (*GCPComputeClient, error) {
	var closers []func() error
	fail := func(what string, err error) (*GCPComputeClient, error) {
		for _, c := range closers {
			_ = c()
		}
		return nil, fmt.Errorf("create %s client: %w", what, err)
	}

	disks, err := compute.NewDisksRESTClient(ctx, opts...)
	if err != nil {
		return fail("disks", err)
	}
	closers = append(closers, disks.Close)

	policies, err := compute.NewResourcePoliciesRESTClient(ctx, opts...)
	if err != nil {
		return fail("resource policies", err)
	}
	closers = append(closers, policies.Close)

	templates, err := compute.NewInstanceTemplatesRESTClient(ctx, opts...)
	if err != nil {
		return fail("instance templates", err)
	}
	closers = append(closers, templates.Close)

	managers, err := compute.NewInstanceGroupManagersRESTClient(ctx, opts...)
	if err != nil {
		return fail("instance group managers", err)
	}
	closers = append(closers, managers.Close)

	machineTypes, err := compute.NewMachineTypesRESTClient(ctx, opts...)
	if err != nil {
		return fail("machine types", err)
	}
	closers = append(closers, machineTypes.Close)

	firewalls, err := compute.NewFirewallsRESTClient(ctx, opts...)
	if err != nil {
		return fail("firewalls", err)
	}

	return &GCPComputeClient{
		disks:                 disksClient{client: disks},
		resourcePolicies:      resourcePoliciesClient{client: policies},
		instanceTemplates:     instanceTemplatesClient{client: templates},
		instanceGroupManagers: instanceGroupManagersClient{client: managers},
		machineTypes:          machineTypesClient{client: machineTypes},
		firewalls:             firewallsClient{client: firewalls},
	}, nil
}

// Close releases all underlying client connections.
func (c *GCPComputeClient) Close() {
	_ = c.disks.Close()
	_ = c.resourcePolicies.Close()
	_ = c.instanceTemplates.Close()
	_ = c.instanceGroupManagers.Close()
	_ = c.machineTypes.Close()
	_ = c.firewalls.Close()
}

func (c *GCPComputeClient) ListDisks(ctx context.Context, project, zone string) ([]*computepb.Disk, error) {
	it := c.disks.List(ctx, &computepb.ListDisksRequest{Project: project, Zone: zone})
	disks, err := drain[*computepb.Disk](it)
	if err != nil {
		return nil, fmt.Errorf("list disks in %s: %w", zone, err)
	}
	return disks, nil
}

func (c *GCPComputeClient) ListResourcePolicies(ctx context.Context, project, region string) ([]*computepb.ResourcePolicy, error) {
	it := c.resourcePolicies.List(ctx, &computepb.ListResourcePoliciesRequest{Project: project, Region: region})
	policies, err := drain[*computepb.ResourcePolicy](it)
	if err != nil {
		return nil, fmt.Errorf("list resource policies in %s: %w", region, err)
	}
	return policies, nil
}

func (c *GCPComputeClient) ListInstanceTemplates(ctx context.Context, project string) ([]*computepb.InstanceTemplate, error) {
	it := c.instanceTemplates.List(ctx, &computepb.ListInstanceTemplatesRequest{Project: project})
	templates, err := drain[*computepb.InstanceTemplate](it)
	if err != nil {
		return nil, fmt.Errorf("list instance templates: %w", err)
	}
	return templates, nil
}

func (c *GCPComputeClient) ListInstanceGroupManagers(ctx context.Context, project string) ([]*computepb.InstanceGroupManager, error) {
	var result []*computepb.InstanceGroupManager
	it := c.instanceGroupManagers.AggregatedList(ctx, &computepb.AggregatedListInstanceGroupManagersRequest{Project: project})
	for {
		pair, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list instance group managers: %w", err)
		}
		result = append(result, pair.Value.GetInstanceGroupManagers()...)
	}
	return result, nil
}

func (c *GCPComputeClient) ListMachineTypes(ctx context.Context, project, zone string) ([]*computepb.MachineType, error) {
	it := c.machineTypes.List(ctx, &computepb.ListMachineTypesRequest{Project: project, Zone: zone})
	types, err := drain[*computepb.MachineType](it)
	if err != nil {
		return nil, fmt.Errorf("list machine types in %s: %w", zone, err)
	}
	return types, nil
}

func (c *GCPComputeClient) ListFirewalls(ctx context.Context, project string) ([]*computepb.Firewall, error) {
	it := c.firewalls.List(ctx, &computepb.ListFirewallsRequest{Project: project})
	rules, err := drain[*computepb.Firewall](it)
	if err != nil {
		return nil, fmt.Errorf("list firewalls: %w", err)
	}
	return rules, nil
}

// drain reads an SDK iterator to completion. Paging is handled by the iterator.
func drain[T any](it interface{ Next() (T, error) }) ([]T, error) {
	var result []T
	for {
		item, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return result, nil
		}
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
}
