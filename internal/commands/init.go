package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initFlags struct {
	force bool
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate sample configuration file",
	Long:  `Creates a sample .gcpinventory.yaml configuration file with default settings.`,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initFlags.force, "force", false, "Overwrite existing files")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	configPath := ".gcpinventory.yaml"

	if err := writeIfNotExists(configPath, sampleConfig, initFlags.force); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Created %s\n", configPath)
	fmt.Fprintln(w, "\nNext steps:")
	fmt.Fprintln(w, "  1. Edit .gcpinventory.yaml to set your project ID and zones")
	fmt.Fprintln(w, "  2. Authenticate: gcloud auth application-default login")
	fmt.Fprintln(w, "  3. Run: gcpinventory collect")
	return nil
}

func writeIfNotExists(path, content string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return os.WriteFile(path, []byte(content), 0o644)
}

const sampleConfig = `# gcpinventory configuration
# Every key can also be set as GCPINVENTORY_<KEY>, e.g. GCPINVENTORY_PROJECT_ID.

# GCP project ID to collect (required)
project_id: ""

# Zones to list persistent disks from
zones:
  # - us-central1-a
  # - us-central1-b

# Cloud service types to collect (default: all)
# cloud_service_types:
#   - Disk
#   - InstanceTemplate

# Output format: json, ndjson, or text
format: json

# Output file (default: stdout)
# output: inventory.json

# Publish each record to a Pub/Sub topic
# pubsub_topic: inventory-records

# Write Prometheus metrics for node_exporter's textfile collector
# metrics_file: /var/lib/node_exporter/textfile/gcpinventory.prom

# Service account key file (default: Application Default Credentials)
# credentials_file: /path/to/key.json

# Collection timeout
timeout: 10m

# Exit non-zero when fewer resources are collected
min_resources: 0

# Resources to drop from the output
# exclude:
#   resource_ids:
#     - "1234567890"
#   labels:
#     - env=scratch
#     - do-not-inventory
`
