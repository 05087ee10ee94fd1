package inventory

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"cloud.google.com/go/compute/apiv1/computepb"
	"github.com/google/uuid"

	"github.com/ppiankov/gcpinventory/internal/gcp"
	"github.com/ppiankov/gcpinventory/internal/metadata"
	"github.com/ppiankov/gcpinventory/internal/metrics"
	"github.com/ppiankov/gcpinventory/internal/rates"
)

const diskConsoleURL = "https://console.cloud.google.com/compute/disksDetail/zones/%s/disks/%s?project=%s"

// Disk is a persistent disk with derived display fields.
type Disk struct {
	ID                      string           `json:"id"`
	Name                    string           `json:"name"`
	Description             string           `json:"description,omitempty"`
	SelfLink                string           `json:"self_link"`
	Status                  string           `json:"status"`
	CreationTimestamp       string           `json:"creation_timestamp,omitempty"`
	LastAttachTimestamp     string           `json:"last_attach_timestamp,omitempty"`
	LastDetachTimestamp     string           `json:"last_detach_timestamp,omitempty"`
	Project                 string           `json:"project"`
	Zone                    string           `json:"zone"`
	Region                  string           `json:"region"`
	InUsedBy                []string         `json:"in_used_by"`
	SourceImageDisplay      string           `json:"source_image_display"`
	SourceImageID           string           `json:"source_image_id,omitempty"`
	SourceSnapshot          string           `json:"source_snapshot,omitempty"`
	DiskType                string           `json:"disk_type"`
	Labels                  []Label          `json:"labels"`
	SnapshotSchedule        []SnapshotPolicy `json:"snapshot_schedule"`
	SnapshotScheduleDisplay []string         `json:"snapshot_schedule_display"`
	Encryption              string           `json:"encryption"`
	SizeDisplay             string           `json:"size_display"`
	Size                    float64          `json:"size"`
	ReadIOPS                float64          `json:"read_iops"`
	WriteIOPS               float64          `json:"write_iops"`
	ReadThroughput          float64          `json:"read_throughput"`
	WriteThroughput         float64          `json:"write_throughput"`
	PhysicalBlockSizeBytes  int64            `json:"physical_block_size_bytes,omitempty"`
}

func (d *Disk) Reference() Reference {
	return Reference{
		ResourceID:   d.SelfLink,
		ExternalLink: fmt.Sprintf(diskConsoleURL, d.Zone, d.Name, d.Project),
	}
}

// DiskManager collects persistent disks zone by zone.
type DiskManager struct {
	compute gcp.ComputeAPI
}

func NewDiskManager(compute gcp.ComputeAPI) *DiskManager {
	return &DiskManager{compute: compute}
}

func (m *DiskManager) CloudServiceType() string {
	return CloudServiceTypeDisk
}

func (m *DiskManager) Types() []metadata.CloudServiceType {
	return []metadata.CloudServiceType{metadata.DiskType}
}

// Collect lists the disks of every zone in params, in zone order, and yields
// one response per disk. Resource policies are fetched once per region. The
// first error ends the sequence.
func (m *DiskManager) Collect(ctx context.Context, params Params) iter.Seq2[*Response, error] {
	return func(yield func(*Response, error) bool) {
		runID := uuid.NewString()
		start := time.Now()
		log := slog.With("run_id", runID, "cloud_service_type", CloudServiceTypeDisk)
		log.Info("Disk collection started", "project", params.ProjectID, "zones", len(params.Zones))

		var (
			count   int
			runErr  error
			cache   = NewPolicyCache()
			current string
		)
		defer func() {
			metrics.ObserveCollection(CloudServiceTypeDisk, start, runErr)
			log.Info("Disk collection finished",
				"resources", count,
				"elapsed_seconds", time.Since(start).Seconds())
		}()

		fail := func(err error) {
			runErr = err
			yield(nil, err)
		}

		for _, zone := range params.Zones {
			if err := ctx.Err(); err != nil {
				fail(err)
				return
			}
			log.Debug("Listing disks", "zone", zone)

			metrics.IncConnectorCall("ListDisks")
			disks, err := m.compute.ListDisks(ctx, params.ProjectID, zone)
			if err != nil {
				fail(err)
				return
			}

			if len(disks) > 0 {
				current = gcp.RegionFromZone(zone)
				if !cache.Has(current) {
					metrics.IncConnectorCall("ListResourcePolicies")
					policies, err := m.compute.ListResourcePolicies(ctx, params.ProjectID, current)
					if err != nil {
						fail(err)
						return
					}
					cache.Store(current, policies)
				}
			}

			for _, raw := range disks {
				disk, err := buildDisk(params.ProjectID, zone, current, raw, cache)
				if err != nil {
					fail(err)
					return
				}
				resp := NewResponse(CloudServiceTypeDisk, disk.Name, disk.Region, disk, &metadata.DiskLayouts)
				count++
				metrics.IncCollected(CloudServiceTypeDisk)
				if !yield(resp, nil) {
					return
				}
			}
		}
	}
}

func buildDisk(project, zone, region string, raw *computepb.Disk, cache *PolicyCache) (*Disk, error) {
	if raw.SizeGb == nil {
		return nil, &MalformedError{Resource: "disk " + raw.GetName(), Field: "sizeGb", Reason: "missing"}
	}
	size := float64(raw.GetSizeGb())
	diskType := ShortName(raw.GetType())
	rt := rates.ParseDiskType(diskType)

	snapshots, err := MatchSnapshotPolicies(region, raw, cache)
	if err != nil {
		return nil, fmt.Errorf("disk %s: %w", raw.GetName(), err)
	}

	return &Disk{
		ID:                      fmt.Sprint(raw.GetId()),
		Name:                    raw.GetName(),
		Description:             raw.GetDescription(),
		SelfLink:                raw.GetSelfLink(),
		Status:                  raw.GetStatus(),
		CreationTimestamp:       raw.GetCreationTimestamp(),
		LastAttachTimestamp:     raw.GetLastAttachTimestamp(),
		LastDetachTimestamp:     raw.GetLastDetachTimestamp(),
		Project:                 project,
		Zone:                    zone,
		Region:                  gcp.RegionFromZone(zone),
		InUsedBy:                InUsedBy(raw),
		SourceImageDisplay:      SourceImageDisplay(raw),
		SourceImageID:           raw.GetSourceImageId(),
		SourceSnapshot:          raw.GetSourceSnapshot(),
		DiskType:                diskType,
		Labels:                  Labels(raw.GetLabels()),
		SnapshotSchedule:        snapshots,
		SnapshotScheduleDisplay: SnapshotScheduleNames(raw),
		Encryption:              EncryptionKind(raw.GetDiskEncryptionKey()),
		SizeDisplay:             SizeDisplay(size),
		Size:                    size,
		ReadIOPS:                rates.IOPS(rt, size, rates.Read),
		WriteIOPS:               rates.IOPS(rt, size, rates.Write),
		ReadThroughput:          rates.Throughput(rt, size),
		WriteThroughput:         rates.Throughput(rt, size),
		PhysicalBlockSizeBytes:  raw.GetPhysicalBlockSizeBytes(),
	}, nil
}
