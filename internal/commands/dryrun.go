package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ppiankov/gcpinventory/internal/inventory"
)

// DryRunPlan describes what a collection would do without executing.
type DryRunPlan struct {
	Project           string           `json:"project"`
	Zones             []string         `json:"zones"`
	CloudServiceTypes []string         `json:"cloud_service_types"`
	Format            string           `json:"format"`
	Output            string           `json:"output"`
	PubsubTopic       string           `json:"pubsub_topic,omitempty"`
	MetricsFile       string           `json:"metrics_file,omitempty"`
	Timeout           string           `json:"timeout"`
	Exclusions        DryRunExclusions `json:"exclusions"`
	ConfigPath        string           `json:"config_path"`
}

// DryRunExclusions describes configured exclusion rules.
type DryRunExclusions struct {
	ResourceIDs []string `json:"resource_ids,omitempty"`
	Labels      []string `json:"labels,omitempty"`
}

func printDryRun(cmd *cobra.Command, params inventory.Params) error {
	plan, err := buildPlan(params)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	if collectFlags.format == "json" {
		return printDryRunJSON(w, plan)
	}
	return printDryRunText(w, plan)
}

func buildPlan(params inventory.Params) (DryRunPlan, error) {
	selected, err := inventory.Select(inventory.Managers(nil), params.CloudServiceTypes)
	if err != nil {
		return DryRunPlan{}, err
	}
	out := collectFlags.outputFile
	if out == "" {
		out = "stdout"
	}
	plan := DryRunPlan{
		Project:           params.ProjectID,
		Zones:             params.Zones,
		CloudServiceTypes: inventory.CloudServiceTypes(selected),
		Format:            collectFlags.format,
		Output:            out,
		PubsubTopic:       collectFlags.pubsubTopic,
		MetricsFile:       collectFlags.metricsFile,
		Timeout:           collectFlags.timeout.String(),
		Exclusions: DryRunExclusions{
			ResourceIDs: sortedKeys(params.Exclude.ResourceIDs),
		},
		ConfigPath: findConfigPath(),
	}
	for k, v := range params.Exclude.Labels {
		if v == "" {
			plan.Exclusions.Labels = append(plan.Exclusions.Labels, k)
		} else {
			plan.Exclusions.Labels = append(plan.Exclusions.Labels, k+"="+v)
		}
	}
	sort.Strings(plan.Exclusions.Labels)
	return plan, nil
}

func sortedKeys(m map[string]bool) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func printDryRunJSON(w io.Writer, plan DryRunPlan) error {
	return writeJSON(w, plan)
}

func printDryRunText(w io.Writer, plan DryRunPlan) error {
	fmt.Fprintf(w, "Collection Plan (dry-run)\n\n")
	fmt.Fprintf(w, "Project: %s\n", plan.Project)
	fmt.Fprintf(w, "\nZones:\n")
	if len(plan.Zones) == 0 {
		fmt.Fprintf(w, "  (none, disks will not be listed)\n")
	}
	for _, z := range plan.Zones {
		fmt.Fprintf(w, "  - %s\n", z)
	}
	fmt.Fprintf(w, "\nCloud service types:\n")
	for _, s := range plan.CloudServiceTypes {
		fmt.Fprintf(w, "  - %s\n", s)
	}
	fmt.Fprintf(w, "\nSettings:\n")
	fmt.Fprintf(w, "  format:  %s\n", plan.Format)
	fmt.Fprintf(w, "  output:  %s\n", plan.Output)
	fmt.Fprintf(w, "  timeout: %s\n", plan.Timeout)
	if plan.PubsubTopic != "" {
		fmt.Fprintf(w, "  pubsub-topic: %s\n", plan.PubsubTopic)
	}
	if plan.MetricsFile != "" {
		fmt.Fprintf(w, "  metrics-file: %s\n", plan.MetricsFile)
	}
	if len(plan.Exclusions.ResourceIDs) > 0 || len(plan.Exclusions.Labels) > 0 {
		fmt.Fprintf(w, "\nExclusions:\n")
		for _, id := range plan.Exclusions.ResourceIDs {
			fmt.Fprintf(w, "  resource-id: %s\n", id)
		}
		for _, l := range plan.Exclusions.Labels {
			fmt.Fprintf(w, "  label: %s\n", l)
		}
	}
	fmt.Fprintf(w, "\nConfig: %s\n", plan.ConfigPath)
	return nil
}

func findConfigPath() string {
	candidates := []string{".gcpinventory.yaml", ".gcpinventory.yml"}
	for _, c := range candidates {
		abs, err := filepath.Abs(c)
		if err == nil {
			if fileExists(abs) {
				return abs
			}
		}
	}
	return "none"
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
