package inventory

import (
	"fmt"

	"cloud.google.com/go/compute/apiv1/computepb"
	gocache "github.com/patrickmn/go-cache"
	"github.com/samber/lo"
)

// PolicyCache holds the resource policies of each region seen during one
// collection run. Entries never expire; the cache is dropped with the run.
type PolicyCache struct {
	c *gocache.Cache
}

func NewPolicyCache() *PolicyCache {
	return &PolicyCache{c: gocache.New(gocache.NoExpiration, gocache.NoExpiration)}
}

func (p *PolicyCache) Has(region string) bool {
	_, ok := p.c.Get(region)
	return ok
}

func (p *PolicyCache) Store(region string, policies []*computepb.ResourcePolicy) {
	p.c.Set(region, policies, gocache.NoExpiration)
}

func (p *PolicyCache) Policies(region string) []*computepb.ResourcePolicy {
	v, ok := p.c.Get(region)
	if !ok {
		return nil
	}
	return v.([]*computepb.ResourcePolicy)
}

// Lookup finds the policy of region whose self link equals selfLink.
func (p *PolicyCache) Lookup(region, selfLink string) (*computepb.ResourcePolicy, bool) {
	return lo.Find(p.Policies(region), func(rp *computepb.ResourcePolicy) bool {
		return rp.GetSelfLink() == selfLink
	})
}

// SnapshotPolicy is a resource policy attached to a disk, reshaped for display.
type SnapshotPolicy struct {
	ID                     string                 `json:"id"`
	Name                   string                 `json:"name"`
	Description            string                 `json:"description,omitempty"`
	SelfLink               string                 `json:"self_link"`
	Status                 string                 `json:"status,omitempty"`
	Region                 string                 `json:"region"`
	CreationTimestamp      string                 `json:"creation_timestamp,omitempty"`
	Labels                 []Label                `json:"labels"`
	StorageLocations       []string               `json:"storage_locations"`
	SnapshotSchedulePolicy SnapshotSchedulePolicy `json:"snapshot_schedule_policy"`
}

type SnapshotSchedulePolicy struct {
	ScheduleDisplay []string        `json:"schedule_display"`
	Schedule        Schedule        `json:"schedule"`
	RetentionPolicy RetentionPolicy `json:"retention_policy"`
}

type RetentionPolicy struct {
	MaxRetentionDays        int32  `json:"max_retention_days"`
	OnSourceDiskDelete      string `json:"on_source_disk_delete,omitempty"`
	MaxRetentionDaysDisplay string `json:"max_retention_days_display"`
}

// MatchSnapshotPolicies resolves the disk's resource policy references against
// the cached policies of region, in reference order. References without a
// matching policy are dropped.
func MatchSnapshotPolicies(region string, disk *computepb.Disk, cache *PolicyCache) ([]SnapshotPolicy, error) {
	matched := []SnapshotPolicy{}
	for _, ref := range disk.GetResourcePolicies() {
		rp, ok := cache.Lookup(region, ref)
		if !ok {
			continue
		}
		sp, err := newSnapshotPolicy(rp)
		if err != nil {
			return nil, fmt.Errorf("policy %s: %w", rp.GetName(), err)
		}
		matched = append(matched, sp)
	}
	return matched, nil
}

func newSnapshotPolicy(rp *computepb.ResourcePolicy) (SnapshotPolicy, error) {
	ssp := rp.GetSnapshotSchedulePolicy()
	props := ssp.GetSnapshotProperties()
	retention := ssp.GetRetentionPolicy()

	schedule := convertSchedule(ssp.GetSchedule())
	display, err := ScheduleDisplay(schedule)
	if err != nil {
		return SnapshotPolicy{}, err
	}

	storage := props.GetStorageLocations()
	if storage == nil {
		storage = []string{}
	}

	return SnapshotPolicy{
		ID:                fmt.Sprint(rp.GetId()),
		Name:              rp.GetName(),
		Description:       rp.GetDescription(),
		SelfLink:          rp.GetSelfLink(),
		Status:            rp.GetStatus(),
		Region:            ShortName(rp.GetRegion()),
		CreationTimestamp: rp.GetCreationTimestamp(),
		Labels:            Labels(props.GetLabels()),
		StorageLocations:  storage,
		SnapshotSchedulePolicy: SnapshotSchedulePolicy{
			ScheduleDisplay: display,
			Schedule:        schedule,
			RetentionPolicy: RetentionPolicy{
				MaxRetentionDays:        retention.GetMaxRetentionDays(),
				OnSourceDiskDelete:      retention.GetOnSourceDiskDelete(),
				MaxRetentionDaysDisplay: retentionDisplay(retention),
			},
		},
	}, nil
}

func retentionDisplay(r *computepb.ResourcePolicySnapshotSchedulePolicyRetentionPolicy) string {
	if r == nil || r.MaxRetentionDays == nil {
		return ""
	}
	return fmt.Sprintf("%d days", r.GetMaxRetentionDays())
}
