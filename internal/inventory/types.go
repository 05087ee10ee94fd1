package inventory

import "github.com/ppiankov/gcpinventory/internal/metadata"

const (
	CloudServiceTypeDisk             = "Disk"
	CloudServiceTypeInstanceTemplate = "InstanceTemplate"

	resourceTypeCloudService = "inventory.CloudService"
	regionGlobal             = "global"
)

// Params selects what a collection run covers.
type Params struct {
	ProjectID string
	// Zones are visited in order; an empty list yields no zonal resources.
	Zones []string
	// CloudServiceTypes limits the managers that run; empty means all.
	CloudServiceTypes []string
	Exclude           Exclude
}

// Label is one entry of a resource's label map.
type Label struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Reference identifies a resource for deduplication and cross-linking.
type Reference struct {
	ResourceID   string `json:"resource_id"`
	ExternalLink string `json:"external_link"`
}

// Record is a normalized resource ready to be wrapped in a Response.
type Record interface {
	Reference() Reference
}

// Resource wraps a record with the fields the inventory platform indexes.
type Resource struct {
	CloudServiceGroup string                 `json:"cloud_service_group"`
	CloudServiceType  string                 `json:"cloud_service_type"`
	Provider          string                 `json:"provider"`
	Name              string                 `json:"name"`
	Data              Record                 `json:"data"`
	RegionCode        string                 `json:"region_code"`
	Reference         Reference              `json:"reference"`
	Metadata          *metadata.ResourceMeta `json:"metadata,omitempty"`
}

// Response is the envelope yielded once per collected resource.
type Response struct {
	State        string              `json:"state"`
	ResourceType string              `json:"resource_type"`
	MatchRules   map[string][]string `json:"match_rules"`
	Resource     Resource            `json:"resource"`
}

// NewResponse wraps a record in the envelope of its cloud service type.
func NewResponse(cloudServiceType, name, regionCode string, data Record, meta *metadata.ResourceMeta) *Response {
	return &Response{
		State:        "SUCCESS",
		ResourceType: resourceTypeCloudService,
		MatchRules: map[string][]string{
			"1": {"reference.resource_id", "provider", "cloud_service_type", "cloud_service_group"},
		},
		Resource: Resource{
			CloudServiceGroup: metadata.GroupComputeEngine,
			CloudServiceType:  cloudServiceType,
			Provider:          metadata.ProviderGoogleCloud,
			Name:              name,
			Data:              data,
			RegionCode:        regionCode,
			Reference:         data.Reference(),
			Metadata:          meta,
		},
	}
}
