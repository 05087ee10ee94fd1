package gcp

import (
	"context"
	"strings"

	"cloud.google.com/go/compute/apiv1/computepb"
)

// ComputeAPI abstracts the Compute Engine list operations the collectors need.
// Records are returned in the provider's raw shape.
type ComputeAPI interface {
	ListDisks(ctx context.Context, project, zone string) ([]*computepb.Disk, error)
	ListResourcePolicies(ctx context.Context, project, region string) ([]*computepb.ResourcePolicy, error)
	ListInstanceTemplates(ctx context.Context, project string) ([]*computepb.InstanceTemplate, error)
	ListInstanceGroupManagers(ctx context.Context, project string) ([]*computepb.InstanceGroupManager, error)
	ListMachineTypes(ctx context.Context, project, zone string) ([]*computepb.MachineType, error)
	ListFirewalls(ctx context.Context, project string) ([]*computepb.Firewall, error)
}

// RegionFromZone extracts the region from a GCP zone (e.g., "us-central1-a" -> "us-central1").
func RegionFromZone(zone string) string {
	parts := strings.Split(zone, "-")
	if len(parts) >= 3 {
		return strings.Join(parts[:len(parts)-1], "-")
	}
	return zone
}
