// Package metadata describes how collected resources render in the inventory
// console: dynamic fields, layouts and search fields per cloud service type.
package metadata

import "strings"

const (
	ProviderGoogleCloud = "google_cloud"
	GroupComputeEngine  = "ComputeEngine"
	ServiceCodeCompute  = "compute"

	computeEngineIcon = "https://spaceone-custom-assets.s3.ap-northeast-2.amazonaws.com/console-assets/icons/cloud-services/google_cloud/Compute_Engine.svg"
)

// FieldType is the renderer used for a dynamic field.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEnum     FieldType = "enum"
	FieldList     FieldType = "list"
	FieldDateTime FieldType = "datetime"
	FieldSize     FieldType = "size"
)

// Field is one rendered column or row, bound to a dotted data key.
type Field struct {
	Type    FieldType      `json:"type"`
	Name    string         `json:"name"`
	Key     string         `json:"key"`
	Options map[string]any `json:"options,omitempty"`
}

func TextField(name, key string) Field {
	return Field{Type: FieldText, Name: name, Key: key}
}

func DateTimeField(name, key string) Field {
	return Field{
		Type:    FieldDateTime,
		Name:    name,
		Key:     key,
		Options: map[string]any{"source_type": "iso8601"},
	}
}

// SizeField renders a numeric value with a unit (e.g. "GB").
func SizeField(name, key, unit string) Field {
	return Field{
		Type:    FieldSize,
		Name:    name,
		Key:     key,
		Options: map[string]any{"source_unit": unit, "display_unit": unit},
	}
}

// ListField renders each element as an outline badge, one per line.
func ListField(name, key string) Field {
	return Field{
		Type: FieldList,
		Name: name,
		Key:  key,
		Options: map[string]any{
			"delimiter": "<br>",
			"item":      map[string]any{"type": "badge", "options": map[string]any{"outline_color": "violet.500"}},
		},
	}
}

// EnumField colors values; badges maps a color to the values shown in it.
func EnumField(name, key string, badges map[string][]string) Field {
	items := make(map[string]any)
	for color, values := range badges {
		for _, v := range values {
			items[v] = map[string]any{"type": "badge", "options": map[string]any{"background_color": color}}
		}
	}
	return Field{Type: FieldEnum, Name: name, Key: key, Options: map[string]any{"items": items}}
}

// OutlineEnumField renders each of values as an outlined badge.
func OutlineEnumField(name, key string, values ...string) Field {
	items := make(map[string]any, len(values))
	for _, v := range values {
		items[v] = map[string]any{"type": "badge", "options": map[string]any{"outline_color": "violet.500"}}
	}
	return Field{Type: FieldEnum, Name: name, Key: key, Options: map[string]any{"items": items}}
}

// BoolEnumField renders "true"/"false" as indigo/coral badges.
func BoolEnumField(name, key string) Field {
	return EnumField(name, key, map[string][]string{
		"indigo.500": {"true"},
		"coral.600":  {"false"},
	})
}

// LayoutType selects how a layout arranges its fields.
type LayoutType string

const (
	LayoutItem  LayoutType = "item"
	LayoutTable LayoutType = "table"
	LayoutList  LayoutType = "list"
)

// Layout is one tab or section of a resource's detail view.
type Layout struct {
	Name    string        `json:"name"`
	Type    LayoutType    `json:"type"`
	Options LayoutOptions `json:"options"`
}

type LayoutOptions struct {
	RootPath string   `json:"root_path,omitempty"`
	Fields   []Field  `json:"fields,omitempty"`
	Layouts  []Layout `json:"layouts,omitempty"`
}

func ItemLayout(name, rootPath string, fields ...Field) Layout {
	return Layout{Name: name, Type: LayoutItem, Options: LayoutOptions{RootPath: rootPath, Fields: fields}}
}

// TableLayout renders one row per element of the list at rootPath.
func TableLayout(name, rootPath string, fields ...Field) Layout {
	return Layout{Name: name, Type: LayoutTable, Options: LayoutOptions{RootPath: rootPath, Fields: fields}}
}

func ListLayout(name string, layouts ...Layout) Layout {
	return Layout{Name: name, Type: LayoutList, Options: LayoutOptions{Layouts: layouts}}
}

// ResourceMeta is the detail view attached to every collected resource.
type ResourceMeta struct {
	Layouts []Layout `json:"layouts"`
}

// FieldPath is a field key resolved against its enclosing layout.
type FieldPath struct {
	// RootPath is the list the field is evaluated per element of; empty for item fields.
	RootPath string
	Key      string
}

// Paths flattens every field of every layout into resolved paths.
func (m ResourceMeta) Paths() []FieldPath {
	var paths []FieldPath
	for _, l := range m.Layouts {
		paths = appendPaths(paths, l)
	}
	return paths
}

func appendPaths(paths []FieldPath, l Layout) []FieldPath {
	for _, nested := range l.Options.Layouts {
		paths = appendPaths(paths, nested)
	}
	for _, f := range l.Options.Fields {
		switch {
		case l.Type == LayoutTable:
			paths = append(paths, FieldPath{RootPath: l.Options.RootPath, Key: f.Key})
		case l.Options.RootPath != "":
			paths = append(paths, FieldPath{Key: strings.Join([]string{l.Options.RootPath, f.Key}, ".")})
		default:
			paths = append(paths, FieldPath{Key: f.Key})
		}
	}
	return paths
}

// SearchField is a key offered in the console's search bar.
type SearchField struct {
	Name     string `json:"name"`
	Key      string `json:"key"`
	DataType string `json:"data_type,omitempty"`
}

// TypeMeta is the list view of a cloud service type.
type TypeMeta struct {
	Fields []Field       `json:"fields"`
	Search []SearchField `json:"search"`
}

// CloudServiceType registers one resource kind with the inventory.
type CloudServiceType struct {
	Name        string            `json:"name"`
	Provider    string            `json:"provider"`
	Group       string            `json:"group"`
	ServiceCode string            `json:"service_code"`
	IsPrimary   bool              `json:"is_primary"`
	IsMajor     bool              `json:"is_major"`
	Labels      []string          `json:"labels"`
	Tags        map[string]string `json:"tags"`
	Metadata    TypeMeta          `json:"metadata"`
}

func computeEngineType(name string, labels []string, meta TypeMeta) CloudServiceType {
	return CloudServiceType{
		Name:        name,
		Provider:    ProviderGoogleCloud,
		Group:       GroupComputeEngine,
		ServiceCode: ServiceCodeCompute,
		Labels:      labels,
		Tags:        map[string]string{"spaceone:icon": computeEngineIcon},
		Metadata:    meta,
	}
}
