package inventory

import (
	"context"

	"cloud.google.com/go/compute/apiv1/computepb"
)

type call struct {
	method string
	arg    string
}

// mockComputeAPI serves canned records and records every call.
type mockComputeAPI struct {
	disks         map[string][]*computepb.Disk
	policies      map[string][]*computepb.ResourcePolicy
	templates     []*computepb.InstanceTemplate
	groupManagers []*computepb.InstanceGroupManager
	machineTypes  map[string][]*computepb.MachineType
	firewalls     []*computepb.Firewall
	disksErr      error
	policiesErr   error
	templatesErr  error

	calls []call
}

func (m *mockComputeAPI) ListDisks(_ context.Context, _, zone string) ([]*computepb.Disk, error) {
	m.calls = append(m.calls, call{"ListDisks", zone})
	if m.disksErr != nil {
		return nil, m.disksErr
	}
	return m.disks[zone], nil
}

func (m *mockComputeAPI) ListResourcePolicies(_ context.Context, _, region string) ([]*computepb.ResourcePolicy, error) {
	m.calls = append(m.calls, call{"ListResourcePolicies", region})
	if m.policiesErr != nil {
		return nil, m.policiesErr
	}
	return m.policies[region], nil
}

func (m *mockComputeAPI) ListInstanceTemplates(_ context.Context, _ string) ([]*computepb.InstanceTemplate, error) {
	m.calls = append(m.calls, call{"ListInstanceTemplates", ""})
	if m.templatesErr != nil {
		return nil, m.templatesErr
	}
	return m.templates, nil
}

func (m *mockComputeAPI) ListInstanceGroupManagers(_ context.Context, _ string) ([]*computepb.InstanceGroupManager, error) {
	m.calls = append(m.calls, call{"ListInstanceGroupManagers", ""})
	return m.groupManagers, nil
}

func (m *mockComputeAPI) ListMachineTypes(_ context.Context, _, zone string) ([]*computepb.MachineType, error) {
	m.calls = append(m.calls, call{"ListMachineTypes", zone})
	return m.machineTypes[zone], nil
}

func (m *mockComputeAPI) ListFirewalls(_ context.Context, _ string) ([]*computepb.Firewall, error) {
	m.calls = append(m.calls, call{"ListFirewalls", ""})
	return m.firewalls, nil
}

func (m *mockComputeAPI) count(method string) int {
	n := 0
	for _, c := range m.calls {
		if c.method == method {
			n++
		}
	}
	return n
}
