package inventory

import "log/slog"

// Exclude drops collected resources by identity or label.
type Exclude struct {
	// ResourceIDs matches a resource's name, numeric ID or self link.
	ResourceIDs map[string]bool
	// Labels matches key=value pairs. An empty value matches any resource
	// carrying the key.
	Labels map[string]string
}

type labeled interface {
	labelMap() map[string]string
}

type identified interface {
	identifiers() []string
}

func (d *Disk) labelMap() map[string]string             { return labelMap(d.Labels) }
func (t *InstanceTemplate) labelMap() map[string]string { return labelMap(t.Labels) }

func (d *Disk) identifiers() []string             { return []string{d.ID, d.Name, d.SelfLink} }
func (t *InstanceTemplate) identifiers() []string { return []string{t.ID, t.Name, t.SelfLink} }

func labelMap(labels []Label) map[string]string {
	m := make(map[string]string, len(labels))
	for _, l := range labels {
		m[l.Key] = l.Value
	}
	return m
}

// Excludes reports whether resp should be dropped.
func (e Exclude) Excludes(resp *Response) bool {
	if len(e.ResourceIDs) > 0 {
		if r, ok := resp.Resource.Data.(identified); ok {
			for _, id := range r.identifiers() {
				if e.ResourceIDs[id] {
					slog.Debug("Excluding resource by ID", "id", id)
					return true
				}
			}
		}
	}
	if r, ok := resp.Resource.Data.(labeled); ok {
		return shouldExcludeLabels(r.labelMap(), e.Labels)
	}
	return false
}

// shouldExcludeLabels checks if a resource should be excluded based on label matching.
func shouldExcludeLabels(resourceLabels, excludeLabels map[string]string) bool {
	if len(excludeLabels) == 0 {
		return false
	}
	for k, v := range excludeLabels {
		resVal, exists := resourceLabels[k]
		if v == "" {
			if exists {
				slog.Debug("Excluding resource by label key", "key", k)
				return true
			}
		} else if exists && resVal == v {
			slog.Debug("Excluding resource by label", "key", k, "value", v)
			return true
		}
	}
	return false
}
