package gcp

import (
	"context"

	compute "cloud.google.com/go/compute/apiv1"
	"cloud.google.com/go/compute/apiv1/computepb"
	"github.com/googleapis/gax-go/v2"
)

// The SDK clients return concrete iterator types that cannot be built outside
// the SDK, so each client is narrowed to an interface returning an iterator
// interface. Tests substitute fakes at this level.

// DiskIterator iterates over compute disks.
type DiskIterator interface {
	Next() (*computepb.Disk, error)
}

// DisksClient lists zonal persistent disks.
type DisksClient interface {
	List(ctx context.Context, req *computepb.ListDisksRequest, opts ...gax.CallOption) DiskIterator
	Close() error
}

type disksClient struct {
	client *compute.DisksClient
}

func (c disksClient) List(ctx context.Context, req *computepb.ListDisksRequest, opts ...gax.CallOption) DiskIterator {
	return c.client.List(ctx, req, opts...)
}

func (c disksClient) Close() error {
	return c.client.Close()
}

// ResourcePolicyIterator iterates over resource policies.
type ResourcePolicyIterator interface {
	Next() (*computepb.ResourcePolicy, error)
}

// ResourcePoliciesClient lists regional resource policies.
type ResourcePoliciesClient interface {
	List(ctx context.Context, req *computepb.ListResourcePoliciesRequest, opts ...gax.CallOption) ResourcePolicyIterator
	Close() error
}

type resourcePoliciesClient struct {
	client *compute.ResourcePoliciesClient
}

func (c resourcePoliciesClient) List(ctx context.Context, req *computepb.ListResourcePoliciesRequest, opts ...gax.CallOption) ResourcePolicyIterator {
	return c.client.List(ctx, req, opts...)
}

func (c resourcePoliciesClient) Close() error {
	return c.client.Close()
}

// InstanceTemplateIterator iterates over global instance templates.
type InstanceTemplateIterator interface {
	Next() (*computepb.InstanceTemplate, error)
}

// InstanceTemplatesClient lists global instance templates.
type InstanceTemplatesClient interface {
	List(ctx context.Context, req *computepb.ListInstanceTemplatesRequest, opts ...gax.CallOption) InstanceTemplateIterator
	Close() error
}

type instanceTemplatesClient struct {
	client *compute.InstanceTemplatesClient
}

func (c instanceTemplatesClient) List(ctx context.Context, req *computepb.ListInstanceTemplatesRequest, opts ...gax.CallOption) InstanceTemplateIterator {
	return c.client.List(ctx, req, opts...)
}

func (c instanceTemplatesClient) Close() error {
	return c.client.Close()
}

// InstanceGroupManagerPairIterator iterates over the per-scope pages of an aggregated list.
type InstanceGroupManagerPairIterator interface {
	Next() (compute.InstanceGroupManagersScopedListPair, error)
}

// InstanceGroupManagersClient lists managed instance groups across all zones.
type InstanceGroupManagersClient interface {
	AggregatedList(ctx context.Context, req *computepb.AggregatedListInstanceGroupManagersRequest, opts ...gax.CallOption) InstanceGroupManagerPairIterator
	Close() error
}

type instanceGroupManagersClient struct {
	client *compute.InstanceGroupManagersClient
}

func (c instanceGroupManagersClient) AggregatedList(ctx context.Context, req *computepb.AggregatedListInstanceGroupManagersRequest, opts ...gax.CallOption) InstanceGroupManagerPairIterator {
	return c.client.AggregatedList(ctx, req, opts...)
}

func (c instanceGroupManagersClient) Close() error {
	return c.client.Close()
}

// MachineTypeIterator iterates over machine types.
type MachineTypeIterator interface {
	Next() (*computepb.MachineType, error)
}

// MachineTypesClient lists the machine types offered in a zone.
type MachineTypesClient interface {
	List(ctx context.Context, req *computepb.ListMachineTypesRequest, opts ...gax.CallOption) MachineTypeIterator
	Close() error
}

type machineTypesClient struct {
	client *compute.MachineTypesClient
}

func (c machineTypesClient) List(ctx context.Context, req *computepb.ListMachineTypesRequest, opts ...gax.CallOption) MachineTypeIterator {
	return c.client.List(ctx, req, opts...)
}

func (c machineTypesClient) Close() error {
	return c.client.Close()
}

// FirewallIterator iterates over VPC firewall rules.
type FirewallIterator interface {
	Next() (*computepb.Firewall, error)
}

// FirewallsClient lists VPC firewall rules.
type FirewallsClient interface {
	List(ctx context.Context, req *computepb.ListFirewallsRequest, opts ...gax.CallOption) FirewallIterator
	Close() error
}

type firewallsClient struct {
	client *compute.FirewallsClient
}

func (c firewallsClient) List(ctx context.Context, req *computepb.ListFirewallsRequest, opts ...gax.CallOption) FirewallIterator {
	return c.client.List(ctx, req, opts...)
}

func (c firewallsClient) Close() error {
	return c.client.Close()
}
