package inventory

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"math"
	"time"

	"cloud.google.com/go/compute/apiv1/computepb"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/ppiankov/gcpinventory/internal/gcp"
	"github.com/ppiankov/gcpinventory/internal/metadata"
	"github.com/ppiankov/gcpinventory/internal/metrics"
	"github.com/ppiankov/gcpinventory/internal/rates"
)

const (
	templateConsoleURL = "https://console.cloud.google.com/compute/instanceTemplates/details/%s?project=%s"
	scratchDiskType    = "local-ssd"
)

// InstanceTemplate is an instance template with resolved machine details,
// attached disk estimates and the firewall rules that apply to it.
type InstanceTemplate struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Description       string             `json:"description,omitempty"`
	Fingerprint       string             `json:"fingerprint,omitempty"`
	SelfLink          string             `json:"self_link"`
	CreationTimestamp string             `json:"creation_timestamp,omitempty"`
	Project           string             `json:"project"`
	InUsedBy          []string           `json:"in_used_by"`
	Machine           MachineInfo        `json:"machine"`
	AffectedRules     []string           `json:"affected_rules"`
	IPForward         bool               `json:"ip_forward"`
	NetworkInterfaces []NetworkInterface `json:"network_interfaces"`
	Disks             []TemplateDisk     `json:"disks"`
	ServiceAccount    ServiceAccount     `json:"service_account"`
	Labels            []Label            `json:"labels"`
	Image             string             `json:"image"`
	DiskDisplay       string             `json:"disk_display"`
}

type MachineInfo struct {
	MachineType    string  `json:"machine_type"`
	Core           int32   `json:"core,omitempty"`
	Memory         float64 `json:"memory,omitempty"`
	MachineDisplay string  `json:"machine_display"`
}

type NetworkInterface struct {
	Name        string   `json:"name"`
	Network     string   `json:"network"`
	Subnetwork  string   `json:"subnetwork"`
	Configs     []string `json:"configs"`
	NetworkTier []string `json:"network_tier"`
	Kind        string   `json:"kind,omitempty"`
}

type TemplateDisk struct {
	DeviceIndex int32    `json:"device_index"`
	Device      string   `json:"device"`
	Size        float64  `json:"size"`
	Tags        DiskTags `json:"tags"`
}

type DiskTags struct {
	DiskType           string  `json:"disk_type"`
	SourceImageDisplay string  `json:"source_image_display"`
	ReadIOPS           float64 `json:"read_iops"`
	WriteIOPS          float64 `json:"write_iops"`
	ReadThroughput     float64 `json:"read_throughput"`
	WriteThroughput    float64 `json:"write_throughput"`
	AutoDelete         bool    `json:"auto_delete"`
}

type ServiceAccount struct {
	Email  string   `json:"email"`
	Scopes []string `json:"scopes"`
}

func (t *InstanceTemplate) Reference() Reference {
	return Reference{
		ResourceID:   t.SelfLink,
		ExternalLink: fmt.Sprintf(templateConsoleURL, t.Name, t.Project),
	}
}

// InstanceTemplateManager collects the project's instance templates. Templates
// are global; zones only select where machine types are resolved.
type InstanceTemplateManager struct {
	compute gcp.ComputeAPI
}

func NewInstanceTemplateManager(compute gcp.ComputeAPI) *InstanceTemplateManager {
	return &InstanceTemplateManager{compute: compute}
}

func (m *InstanceTemplateManager) CloudServiceType() string {
	return CloudServiceTypeInstanceTemplate
}

func (m *InstanceTemplateManager) Types() []metadata.CloudServiceType {
	return []metadata.CloudServiceType{metadata.InstanceTemplateType}
}

// templateLookups holds the project-wide records templates are joined with.
type templateLookups struct {
	groupManagers []*computepb.InstanceGroupManager
	firewalls     []*computepb.Firewall
	machineTypes  map[string]*computepb.MachineType
}

func (m *InstanceTemplateManager) Collect(ctx context.Context, params Params) iter.Seq2[*Response, error] {
	return func(yield func(*Response, error) bool) {
		start := time.Now()
		log := slog.With("run_id", uuid.NewString(), "cloud_service_type", CloudServiceTypeInstanceTemplate)
		log.Info("InstanceTemplate collection started", "project", params.ProjectID)

		var (
			count  int
			runErr error
		)
		defer func() {
			metrics.ObserveCollection(CloudServiceTypeInstanceTemplate, start, runErr)
			log.Info("InstanceTemplate collection finished",
				"resources", count,
				"elapsed_seconds", time.Since(start).Seconds())
		}()

		if err := ctx.Err(); err != nil {
			runErr = err
			yield(nil, err)
			return
		}

		metrics.IncConnectorCall("ListInstanceTemplates")
		templates, err := m.compute.ListInstanceTemplates(ctx, params.ProjectID)
		if err != nil {
			runErr = err
			yield(nil, err)
			return
		}
		if len(templates) == 0 {
			return
		}

		lookups, err := m.lookups(ctx, params)
		if err != nil {
			runErr = err
			yield(nil, err)
			return
		}

		for _, raw := range templates {
			tmpl := buildInstanceTemplate(params.ProjectID, raw, lookups)
			resp := NewResponse(CloudServiceTypeInstanceTemplate, tmpl.Name, regionGlobal, tmpl, &metadata.InstanceTemplateLayouts)
			count++
			metrics.IncCollected(CloudServiceTypeInstanceTemplate)
			if !yield(resp, nil) {
				return
			}
		}
	}
}

func (m *InstanceTemplateManager) lookups(ctx context.Context, params Params) (*templateLookups, error) {
	metrics.IncConnectorCall("ListInstanceGroupManagers")
	igms, err := m.compute.ListInstanceGroupManagers(ctx, params.ProjectID)
	if err != nil {
		return nil, err
	}

	metrics.IncConnectorCall("ListFirewalls")
	firewalls, err := m.compute.ListFirewalls(ctx, params.ProjectID)
	if err != nil {
		return nil, err
	}

	machineTypes := map[string]*computepb.MachineType{}
	if len(params.Zones) > 0 {
		metrics.IncConnectorCall("ListMachineTypes")
		mts, err := m.compute.ListMachineTypes(ctx, params.ProjectID, params.Zones[0])
		if err != nil {
			return nil, err
		}
		machineTypes = lo.KeyBy(mts, func(mt *computepb.MachineType) string { return mt.GetName() })
	}

	return &templateLookups{groupManagers: igms, firewalls: firewalls, machineTypes: machineTypes}, nil
}

func buildInstanceTemplate(project string, raw *computepb.InstanceTemplate, l *templateLookups) *InstanceTemplate {
	props := raw.GetProperties()
	disks := templateDisks(props.GetDisks())

	tmpl := &InstanceTemplate{
		ID:                fmt.Sprint(raw.GetId()),
		Name:              raw.GetName(),
		Description:       raw.GetDescription(),
		Fingerprint:       props.GetMetadata().GetFingerprint(),
		SelfLink:          raw.GetSelfLink(),
		CreationTimestamp: raw.GetCreationTimestamp(),
		Project:           project,
		InUsedBy:          templateUsers(raw.GetSelfLink(), l.groupManagers),
		Machine:           machineInfo(props.GetMachineType(), l.machineTypes),
		AffectedRules:     affectedRules(props, l.firewalls),
		IPForward:         props.GetCanIpForward(),
		NetworkInterfaces: networkInterfaces(props.GetNetworkInterfaces()),
		Disks:             disks,
		ServiceAccount:    serviceAccount(props.GetServiceAccounts()),
		Labels:            Labels(props.GetLabels()),
	}

	if boot, ok := lo.Find(props.GetDisks(), func(d *computepb.AttachedDisk) bool { return d.GetBoot() }); ok {
		tmpl.Image = ShortName(boot.GetInitializeParams().GetSourceImage())
		tmpl.DiskDisplay = attachedDiskType(boot)
	}
	return tmpl
}

// templateUsers names the instance group managers created from selfLink.
func templateUsers(selfLink string, igms []*computepb.InstanceGroupManager) []string {
	users := lo.FilterMap(igms, func(igm *computepb.InstanceGroupManager, _ int) (string, bool) {
		return igm.GetName(), igm.GetInstanceTemplate() == selfLink
	})
	return lo.Uniq(users)
}

func machineInfo(machineType string, types map[string]*computepb.MachineType) MachineInfo {
	info := MachineInfo{MachineType: machineType, MachineDisplay: machineType}
	mt, ok := types[machineType]
	if !ok {
		return info
	}
	info.Core = mt.GetGuestCpus()
	info.Memory = math.Round(float64(mt.GetMemoryMb())/1024*100) / 100
	info.MachineDisplay = fmt.Sprintf("%s : %d vCPUs %g GB RAM", machineType, info.Core, info.Memory)
	return info
}

// affectedRules names the enabled firewall rules on the template's networks
// that target all instances or share a network tag with the template.
func affectedRules(props *computepb.InstanceProperties, firewalls []*computepb.Firewall) []string {
	networks := lo.Map(props.GetNetworkInterfaces(), func(ni *computepb.NetworkInterface, _ int) string {
		return ShortName(ni.GetNetwork())
	})
	tags := props.GetTags().GetItems()

	return lo.FilterMap(firewalls, func(fw *computepb.Firewall, _ int) (string, bool) {
		if fw.GetDisabled() || !lo.Contains(networks, ShortName(fw.GetNetwork())) {
			return "", false
		}
		if len(fw.GetTargetTags()) > 0 && !lo.Some(fw.GetTargetTags(), tags) {
			return "", false
		}
		return fw.GetName(), true
	})
}

func networkInterfaces(nics []*computepb.NetworkInterface) []NetworkInterface {
	return lo.Map(nics, func(ni *computepb.NetworkInterface, _ int) NetworkInterface {
		return NetworkInterface{
			Name:       ni.GetName(),
			Network:    ShortName(ni.GetNetwork()),
			Subnetwork: ShortName(ni.GetSubnetwork()),
			Configs: lo.Map(ni.GetAccessConfigs(), func(ac *computepb.AccessConfig, _ int) string {
				return ac.GetName()
			}),
			NetworkTier: lo.Map(ni.GetAccessConfigs(), func(ac *computepb.AccessConfig, _ int) string {
				return ac.GetNetworkTier()
			}),
			Kind: ni.GetKind(),
		}
	})
}

func templateDisks(disks []*computepb.AttachedDisk) []TemplateDisk {
	return lo.Map(disks, func(d *computepb.AttachedDisk, _ int) TemplateDisk {
		size := float64(d.GetInitializeParams().GetDiskSizeGb())
		if size == 0 {
			size = float64(d.GetDiskSizeGb())
		}
		diskType := attachedDiskType(d)
		rt := rates.ParseDiskType(diskType)
		return TemplateDisk{
			DeviceIndex: d.GetIndex(),
			Device:      d.GetDeviceName(),
			Size:        size,
			Tags: DiskTags{
				DiskType:           diskType,
				SourceImageDisplay: ShortName(d.GetInitializeParams().GetSourceImage()),
				ReadIOPS:           rates.IOPS(rt, size, rates.Read),
				WriteIOPS:          rates.IOPS(rt, size, rates.Write),
				ReadThroughput:     rates.Throughput(rt, size),
				WriteThroughput:    rates.Throughput(rt, size),
				AutoDelete:         d.GetAutoDelete(),
			},
		}
	})
}

func attachedDiskType(d *computepb.AttachedDisk) string {
	if d.GetType() == computepb.AttachedDisk_SCRATCH.String() {
		return scratchDiskType
	}
	return ShortName(d.GetInitializeParams().GetDiskType())
}

func serviceAccount(accounts []*computepb.ServiceAccount) ServiceAccount {
	if len(accounts) == 0 {
		return ServiceAccount{Scopes: []string{}}
	}
	return ServiceAccount{
		Email:  accounts[0].GetEmail(),
		Scopes: ShortNames(accounts[0].GetScopes()),
	}
}
