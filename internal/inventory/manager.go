package inventory

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/samber/lo"

	"github.com/ppiankov/gcpinventory/internal/gcp"
	"github.com/ppiankov/gcpinventory/internal/metadata"
)

// Manager collects one cloud service type.
type Manager interface {
	CloudServiceType() string
	Types() []metadata.CloudServiceType
	Collect(ctx context.Context, params Params) iter.Seq2[*Response, error]
}

// Managers returns every manager in collection order.
func Managers(compute gcp.ComputeAPI) []Manager {
	return []Manager{
		NewDiskManager(compute),
		NewInstanceTemplateManager(compute),
	}
}

// CloudServiceTypes lists the names managers collect.
func CloudServiceTypes(managers []Manager) []string {
	return lo.Map(managers, func(m Manager, _ int) string { return m.CloudServiceType() })
}

// Select keeps the managers named in names, preserving registry order. An
// empty filter keeps all of them.
func Select(managers []Manager, names []string) ([]Manager, error) {
	if len(names) == 0 {
		return managers, nil
	}
	known := CloudServiceTypes(managers)
	if unknown, _ := lo.Difference(lo.Uniq(names), known); len(unknown) > 0 {
		return nil, fmt.Errorf("unknown cloud service type %s (known: %s)",
			strings.Join(unknown, ", "), strings.Join(known, ", "))
	}
	return lo.Filter(managers, func(m Manager, _ int) bool {
		return lo.Contains(names, m.CloudServiceType())
	}), nil
}

// Collect runs the managers selected by params one after another as a single
// sequence, dropping excluded resources. It stops at the first error.
func Collect(ctx context.Context, managers []Manager, params Params) (iter.Seq2[*Response, error], error) {
	selected, err := Select(managers, params.CloudServiceTypes)
	if err != nil {
		return nil, err
	}
	return func(yield func(*Response, error) bool) {
		for _, m := range selected {
			for resp, err := range m.Collect(ctx, params) {
				if err == nil && params.Exclude.Excludes(resp) {
					continue
				}
				if !yield(resp, err) || err != nil {
					return
				}
			}
		}
	}, nil
}
