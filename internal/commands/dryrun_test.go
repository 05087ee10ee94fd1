package commands

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/gcpinventory/internal/inventory"
)

func TestPrintDryRunText(t *testing.T) {
	plan := DryRunPlan{
		Project:           "my-project",
		Zones:             []string{"us-central1-a"},
		CloudServiceTypes: []string{"Disk", "InstanceTemplate"},
		Format:            "text",
		Output:            "stdout",
		Timeout:           "10m0s",
		ConfigPath:        "none",
	}

	var buf strings.Builder
	if err := printDryRunText(&buf, plan); err != nil {
		t.Fatalf("printDryRunText: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "Project: my-project") {
		t.Error("missing project")
	}
	if !strings.Contains(output, "  - us-central1-a") {
		t.Error("missing zone")
	}
	if !strings.Contains(output, "  - InstanceTemplate") {
		t.Error("missing cloud service type")
	}
	if !strings.Contains(output, "dry-run") {
		t.Error("missing dry-run header")
	}
	if strings.Contains(output, "pubsub-topic") {
		t.Error("pubsub-topic shown without a topic")
	}
}

func TestPrintDryRunTextNoZones(t *testing.T) {
	var buf strings.Builder
	if err := printDryRunText(&buf, DryRunPlan{Project: "p", ConfigPath: "none"}); err != nil {
		t.Fatalf("printDryRunText: %v", err)
	}
	if !strings.Contains(buf.String(), "disks will not be listed") {
		t.Error("expected note about missing zones")
	}
}

func TestPrintDryRunJSON(t *testing.T) {
	plan := DryRunPlan{
		Project:           "proj-a",
		Zones:             []string{"europe-west1-b", "europe-west1-c"},
		CloudServiceTypes: []string{"Disk"},
		Format:            "json",
		Output:            "inventory.json",
		PubsubTopic:       "inventory-records",
		Timeout:           "5m0s",
		Exclusions: DryRunExclusions{
			Labels: []string{"env=prod"},
		},
		ConfigPath: "none",
	}

	var buf strings.Builder
	if err := printDryRunJSON(&buf, plan); err != nil {
		t.Fatalf("printDryRunJSON: %v", err)
	}

	var parsed DryRunPlan
	if err := json.Unmarshal([]byte(buf.String()), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(parsed.Zones) != 2 {
		t.Errorf("zones = %d, want 2", len(parsed.Zones))
	}
	if parsed.PubsubTopic != "inventory-records" {
		t.Errorf("pubsub_topic = %q", parsed.PubsubTopic)
	}
	if len(parsed.Exclusions.Labels) != 1 {
		t.Errorf("exclusion labels = %v", parsed.Exclusions.Labels)
	}
}

func TestPrintDryRunTextWithExclusions(t *testing.T) {
	plan := DryRunPlan{
		Project: "proj",
		Exclusions: DryRunExclusions{
			ResourceIDs: []string{"123"},
			Labels:      []string{"env=prod"},
		},
		ConfigPath: "none",
	}

	var buf strings.Builder
	if err := printDryRunText(&buf, plan); err != nil {
		t.Fatalf("printDryRunText: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "resource-id: 123") {
		t.Error("missing resource ID exclusion")
	}
	if !strings.Contains(output, "label: env=prod") {
		t.Error("missing label exclusion")
	}
}

func TestBuildPlan(t *testing.T) {
	old := collectFlags
	defer func() { collectFlags = old }()

	collectFlags.format = "ndjson"
	collectFlags.outputFile = ""
	collectFlags.timeout = 2 * time.Minute

	plan, err := buildPlan(inventory.Params{
		ProjectID:         "p",
		Zones:             []string{"us-central1-a"},
		CloudServiceTypes: []string{"Disk"},
		Exclude: inventory.Exclude{
			ResourceIDs: map[string]bool{"b": true, "a": true},
			Labels:      map[string]string{"skip": "", "env": "dev"},
		},
	})
	if err != nil {
		t.Fatalf("buildPlan: %v", err)
	}
	if strings.Join(plan.CloudServiceTypes, ",") != "Disk" {
		t.Errorf("types = %v, want [Disk]", plan.CloudServiceTypes)
	}
	if plan.Output != "stdout" {
		t.Errorf("output = %q, want stdout", plan.Output)
	}
	if plan.Timeout != "2m0s" {
		t.Errorf("timeout = %q, want 2m0s", plan.Timeout)
	}
	if strings.Join(plan.Exclusions.ResourceIDs, ",") != "a,b" {
		t.Errorf("resource ids = %v, want [a b]", plan.Exclusions.ResourceIDs)
	}
	if strings.Join(plan.Exclusions.Labels, ",") != "env=dev,skip" {
		t.Errorf("labels = %v, want [env=dev skip]", plan.Exclusions.Labels)
	}
}

func TestBuildPlanUnknownType(t *testing.T) {
	if _, err := buildPlan(inventory.Params{ProjectID: "p", CloudServiceTypes: []string{"Snapshot"}}); err == nil {
		t.Fatal("expected error for unknown cloud service type")
	}
}
