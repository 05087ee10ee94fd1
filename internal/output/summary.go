package output

import (
	"fmt"

	"github.com/ppiankov/gcpinventory/internal/inventory"
)

// RunError is a failure recorded against a collection run.
type RunError struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

func (e RunError) String() string {
	return fmt.Sprintf("%s: %s", e.Stage, e.Message)
}

// Summary holds aggregated statistics about collected resources.
type Summary struct {
	TotalResources     int            `json:"total_resources"`
	ByCloudServiceType map[string]int `json:"by_cloud_service_type"`
	ByRegion           map[string]int `json:"by_region"`
	TotalDiskSizeGB    float64        `json:"total_disk_size_gb"`
	Errors             []RunError     `json:"errors,omitempty"`
}

func NewSummary() *Summary {
	return &Summary{
		ByCloudServiceType: make(map[string]int),
		ByRegion:           make(map[string]int),
	}
}

// Add counts one collected resource.
func (s *Summary) Add(resp *inventory.Response) {
	s.TotalResources++
	s.ByCloudServiceType[resp.Resource.CloudServiceType]++
	s.ByRegion[resp.Resource.RegionCode]++
	if d, ok := resp.Resource.Data.(*inventory.Disk); ok {
		s.TotalDiskSizeGB += d.Size
	}
}

func (s *Summary) AddError(stage string, err error) {
	s.Errors = append(s.Errors, RunError{Stage: stage, Message: err.Error()})
}
