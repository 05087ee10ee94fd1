package inventory

import (
	"context"
	"errors"
	"testing"

	"cloud.google.com/go/compute/apiv1/computepb"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	"github.com/ppiankov/gcpinventory/internal/metadata"
)

const templateSelfLink = "https://www.googleapis.com/compute/v1/projects/p/global/instanceTemplates/web"

func webTemplate() *computepb.InstanceTemplate {
	return &computepb.InstanceTemplate{
		Id:                proto.Uint64(99),
		Name:              proto.String("web"),
		Description:       proto.String("frontend fleet"),
		SelfLink:          proto.String(templateSelfLink),
		CreationTimestamp: proto.String("2024-02-01T00:00:00Z"),
		Properties: &computepb.InstanceProperties{
			MachineType:  proto.String("e2-medium"),
			CanIpForward: proto.Bool(true),
			Metadata:     &computepb.Metadata{Fingerprint: proto.String("fp==")},
			Tags:         &computepb.Tags{Items: []string{"http-server"}},
			Labels:       map[string]string{"app": "web"},
			NetworkInterfaces: []*computepb.NetworkInterface{{
				Name:       proto.String("nic0"),
				Network:    proto.String("https://www.googleapis.com/compute/v1/projects/p/global/networks/default"),
				Subnetwork: proto.String("https://www.googleapis.com/compute/v1/projects/p/regions/us-central1/subnetworks/default"),
				Kind:       proto.String("compute#networkInterface"),
				AccessConfigs: []*computepb.AccessConfig{{
					Name:        proto.String("External NAT"),
					NetworkTier: proto.String("PREMIUM"),
				}},
			}},
			Disks: []*computepb.AttachedDisk{
				{
					Boot:       proto.Bool(true),
					AutoDelete: proto.Bool(true),
					DeviceName: proto.String("persistent-disk-0"),
					Index:      proto.Int32(0),
					Type:       proto.String("PERSISTENT"),
					InitializeParams: &computepb.AttachedDiskInitializeParams{
						DiskSizeGb:  proto.Int64(10),
						DiskType:    proto.String("pd-balanced"),
						SourceImage: proto.String("projects/debian-cloud/global/images/debian-12"),
					},
				},
				{
					DeviceName: proto.String("scratch"),
					Index:      proto.Int32(1),
					Type:       proto.String("SCRATCH"),
					DiskSizeGb: proto.Int64(375),
				},
			},
			ServiceAccounts: []*computepb.ServiceAccount{{
				Email:  proto.String("sa@p.iam.gserviceaccount.com"),
				Scopes: []string{"https://www.googleapis.com/auth/cloud-platform"},
			}},
		},
	}
}

func templateAPI() *mockComputeAPI {
	return &mockComputeAPI{
		templates: []*computepb.InstanceTemplate{webTemplate()},
		groupManagers: []*computepb.InstanceGroupManager{
			{Name: proto.String("web-mig"), InstanceTemplate: proto.String(templateSelfLink)},
			{Name: proto.String("api-mig"), InstanceTemplate: proto.String("https://www.googleapis.com/compute/v1/projects/p/global/instanceTemplates/api")},
		},
		machineTypes: map[string][]*computepb.MachineType{
			"us-central1-a": {{Name: proto.String("e2-medium"), GuestCpus: proto.Int32(2), MemoryMb: proto.Int32(4096)}},
		},
		firewalls: []*computepb.Firewall{
			{Name: proto.String("allow-http"), Network: proto.String("projects/p/global/networks/default"), TargetTags: []string{"http-server"}},
			{Name: proto.String("allow-internal"), Network: proto.String("projects/p/global/networks/default")},
			{Name: proto.String("allow-ssh-other-tag"), Network: proto.String("projects/p/global/networks/default"), TargetTags: []string{"ssh"}},
			{Name: proto.String("disabled"), Network: proto.String("projects/p/global/networks/default"), Disabled: proto.Bool(true)},
			{Name: proto.String("other-network"), Network: proto.String("projects/p/global/networks/vpc-2")},
		},
	}
}

func TestInstanceTemplateCollect(t *testing.T) {
	r := require.New(t)
	api := templateAPI()

	got, err := collectAll(t, NewInstanceTemplateManager(api).Collect(context.Background(), Params{
		ProjectID: "p",
		Zones:     []string{"us-central1-a", "us-central1-b"},
	}))
	r.NoError(err)
	r.Len(got, 1)

	resp := got[0]
	r.Equal(CloudServiceTypeInstanceTemplate, resp.Resource.CloudServiceType)
	r.Equal("global", resp.Resource.RegionCode)
	r.Same(&metadata.InstanceTemplateLayouts, resp.Resource.Metadata)
	r.Equal("https://console.cloud.google.com/compute/instanceTemplates/details/web?project=p", resp.Resource.Reference.ExternalLink)

	tmpl := resp.Resource.Data.(*InstanceTemplate)
	r.Equal("99", tmpl.ID)
	r.Equal("fp==", tmpl.Fingerprint)
	r.Equal([]string{"web-mig"}, tmpl.InUsedBy)
	r.Equal(MachineInfo{MachineType: "e2-medium", Core: 2, Memory: 4, MachineDisplay: "e2-medium : 2 vCPUs 4 GB RAM"}, tmpl.Machine)
	r.Equal([]string{"allow-http", "allow-internal"}, tmpl.AffectedRules)
	r.True(tmpl.IPForward)
	r.Equal("debian-12", tmpl.Image)
	r.Equal("pd-balanced", tmpl.DiskDisplay)
	r.Equal([]Label{{Key: "app", Value: "web"}}, tmpl.Labels)
	r.Equal(ServiceAccount{Email: "sa@p.iam.gserviceaccount.com", Scopes: []string{"cloud-platform"}}, tmpl.ServiceAccount)

	r.Equal([]NetworkInterface{{
		Name:        "nic0",
		Network:     "default",
		Subnetwork:  "default",
		Configs:     []string{"External NAT"},
		NetworkTier: []string{"PREMIUM"},
		Kind:        "compute#networkInterface",
	}}, tmpl.NetworkInterfaces)

	r.Len(tmpl.Disks, 2)
	boot := tmpl.Disks[0]
	r.Equal(10.0, boot.Size)
	r.Equal("pd-balanced", boot.Tags.DiskType)
	r.Equal(60.0, boot.Tags.ReadIOPS)
	r.Equal(60.0, boot.Tags.WriteIOPS)
	r.InDelta(2.8, boot.Tags.ReadThroughput, 1e-9)
	r.True(boot.Tags.AutoDelete)

	scratch := tmpl.Disks[1]
	r.Equal(int32(1), scratch.DeviceIndex)
	r.Equal(375.0, scratch.Size)
	r.Equal("local-ssd", scratch.Tags.DiskType)
	r.Zero(scratch.Tags.ReadIOPS)

	r.Equal(1, api.count("ListMachineTypes"))
	r.Equal(call{"ListMachineTypes", "us-central1-a"}, api.calls[len(api.calls)-1])
}

func TestInstanceTemplateCollectWithoutZones(t *testing.T) {
	api := templateAPI()
	got, err := collectAll(t, NewInstanceTemplateManager(api).Collect(context.Background(), Params{ProjectID: "p"}))
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Zero(t, api.count("ListMachineTypes"))

	machine := got[0].Resource.Data.(*InstanceTemplate).Machine
	require.Equal(t, MachineInfo{MachineType: "e2-medium", MachineDisplay: "e2-medium"}, machine)
}

func TestInstanceTemplateCollectNoTemplates(t *testing.T) {
	api := &mockComputeAPI{}
	got, err := collectAll(t, NewInstanceTemplateManager(api).Collect(context.Background(), Params{Zones: []string{"us-central1-a"}}))
	require.NoError(t, err)
	require.Empty(t, got)
	require.Equal(t, []call{{"ListInstanceTemplates", ""}}, api.calls)
}

func TestInstanceTemplateCollectError(t *testing.T) {
	boom := errors.New("list instance templates: forbidden")
	api := &mockComputeAPI{templatesErr: boom}
	_, err := collectAll(t, NewInstanceTemplateManager(api).Collect(context.Background(), Params{}))
	require.ErrorIs(t, err, boom)
}

func TestInstanceTemplateLayoutKeysResolve(t *testing.T) {
	got, err := collectAll(t, NewInstanceTemplateManager(templateAPI()).Collect(context.Background(), Params{
		ProjectID: "p",
		Zones:     []string{"us-central1-a"},
	}))
	require.NoError(t, err)
	assertLayoutKeysResolve(t, got[0], metadata.InstanceTemplateLayouts, metadata.InstanceTemplateType)
}
