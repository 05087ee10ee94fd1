package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/api/option"

	"github.com/ppiankov/gcpinventory/internal/gcp"
	"github.com/ppiankov/gcpinventory/internal/inventory"
	"github.com/ppiankov/gcpinventory/internal/metrics"
	"github.com/ppiankov/gcpinventory/internal/output"
)

const defaultTimeout = 10 * time.Minute

var collectFlags struct {
	zones         []string
	types         []string
	format        string
	outputFile    string
	pubsubTopic   string
	metricsFile   string
	timeout       time.Duration
	excludeLabels []string
	excludeIDs    []string
	minResources  int
	dryRun        bool
}

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect inventory records for a project",
	Long: `Collect persistent disks and instance templates from one GCP project and
write one inventory record per resource.

Disks are listed zone by zone; snapshot schedule policies are fetched once per
region and matched to the disks that reference them.

Requires Application Default Credentials:
  gcloud auth application-default login`,
	RunE: runCollect,
}

func init() {
	collectCmd.Flags().StringSliceVar(&collectFlags.zones, "zone", nil, "Zone to collect disks from (repeatable)")
	collectCmd.Flags().StringSliceVar(&collectFlags.types, "type", nil, "Cloud service type to collect: Disk, InstanceTemplate (repeatable, default: all)")
	collectCmd.Flags().StringVar(&collectFlags.format, "format", output.FormatJSON, "Output format: "+strings.Join(output.Formats, ", "))
	collectCmd.Flags().StringVarP(&collectFlags.outputFile, "output", "o", "", "Output file path (default: stdout)")
	collectCmd.Flags().StringVar(&collectFlags.pubsubTopic, "pubsub-topic", "", "Also publish each record to this Pub/Sub topic")
	collectCmd.Flags().StringVar(&collectFlags.metricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile after the run")
	collectCmd.Flags().DurationVar(&collectFlags.timeout, "timeout", defaultTimeout, "Collection timeout")
	collectCmd.Flags().StringSliceVar(&collectFlags.excludeLabels, "exclude-label", nil, "Exclude resources by label (key=value or key-only, repeatable)")
	collectCmd.Flags().StringSliceVar(&collectFlags.excludeIDs, "exclude-id", nil, "Exclude resources by name, numeric ID or self link (repeatable)")
	collectCmd.Flags().IntVar(&collectFlags.minResources, "min-resources", 0, "Exit non-zero when fewer resources are collected")
	collectCmd.Flags().BoolVar(&collectFlags.dryRun, "dry-run", false, "Print collection plan without executing")

	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, _ []string) error {
	applyConfigDefaults()

	ctx := cmd.Context()
	if collectFlags.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, collectFlags.timeout)
		defer cancel()
	}

	params, err := resolveParams()
	if err != nil {
		return err
	}
	if _, err := inventory.Select(inventory.Managers(nil), params.CloudServiceTypes); err != nil {
		return err
	}
	slog.Info("Collecting inventory", "project", params.ProjectID, "zones", params.Zones)

	if collectFlags.dryRun {
		return printDryRun(cmd, params)
	}

	opts := clientOptions()
	computeClient, err := gcp.NewComputeClient(ctx, opts...)
	if err != nil {
		return enhanceError("initialize GCP Compute client", err)
	}
	defer computeClient.Close()

	run := output.RunInfo{
		Tool:      "gcpinventory",
		Version:   version,
		Timestamp: time.Now().UTC(),
		Project:   params.ProjectID,
		Zones:     params.Zones,
	}
	w, closeOutput, err := openOutput(collectFlags.outputFile, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeOutput()

	fileSink, err := selectSink(collectFlags.format, w, run)
	if err != nil {
		return err
	}
	sinks := output.MultiSink{fileSink}
	if collectFlags.pubsubTopic != "" {
		pub, err := gcp.NewPublisher(ctx, params.ProjectID, collectFlags.pubsubTopic, opts...)
		if err != nil {
			return enhanceError("initialize Pub/Sub publisher", err)
		}
		defer func() {
			if err := pub.Close(); err != nil {
				slog.Warn("Failed to close Pub/Sub publisher", "error", err)
			}
		}()
		sinks = append(sinks, output.NewPubSubSink(pub))
	}

	summary, collectErr := collectInto(ctx, inventory.Managers(computeClient), params, sinks)
	if err := sinks.Close(summary); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if collectFlags.metricsFile != "" {
		if err := metrics.WriteTextfile(collectFlags.metricsFile); err != nil {
			slog.Warn("Failed to write metrics textfile", "path", collectFlags.metricsFile, "error", err)
		}
	}

	if collectErr != nil {
		return enhanceError("collect resources", collectErr)
	}
	if exitCode := output.ComputeExitCode(summary, collectFlags.minResources); exitCode != 0 {
		return ExitCodeError{Code: exitCode}
	}
	return nil
}

// collectInto drains the collection into sink. A collection error is recorded
// in the summary and returned after the records produced before it.
func collectInto(ctx context.Context, managers []inventory.Manager, params inventory.Params, sink output.Sink) (*output.Summary, error) {
	summary := output.NewSummary()
	seq, err := inventory.Collect(ctx, managers, params)
	if err != nil {
		return summary, err
	}
	for resp, err := range seq {
		if err != nil {
			summary.AddError("collect", err)
			return summary, err
		}
		summary.Add(resp)
		if err := sink.Write(ctx, resp); err != nil {
			return summary, fmt.Errorf("write %s %s: %w", resp.Resource.CloudServiceType, resp.Resource.Name, err)
		}
	}
	return summary, nil
}

func resolveParams() (inventory.Params, error) {
	projectID := project
	if projectID == "" {
		projectID = cfg.ProjectID
	}
	if projectID == "" {
		return inventory.Params{}, fmt.Errorf("no project specified; use --project flag or set project_id in .gcpinventory.yaml")
	}
	return inventory.Params{
		ProjectID:         projectID,
		Zones:             firstNonEmpty(collectFlags.zones, cfg.Zones),
		CloudServiceTypes: firstNonEmpty(collectFlags.types, cfg.CloudServiceTypes),
		Exclude: inventory.Exclude{
			ResourceIDs: parseResourceIDs(mergeSlices(cfg.Exclude.ResourceIDs, collectFlags.excludeIDs)),
			Labels:      parseExcludeLabels(mergeSlices(cfg.Exclude.Labels, collectFlags.excludeLabels)),
		},
	}, nil
}

func applyConfigDefaults() {
	if collectFlags.format == output.FormatJSON && cfg.Format != "" {
		collectFlags.format = cfg.Format
	}
	if collectFlags.timeout == defaultTimeout && cfg.TimeoutDuration() > 0 {
		collectFlags.timeout = cfg.TimeoutDuration()
	}
	if collectFlags.outputFile == "" {
		collectFlags.outputFile = cfg.Output
	}
	if collectFlags.pubsubTopic == "" {
		collectFlags.pubsubTopic = cfg.PubsubTopic
	}
	if collectFlags.metricsFile == "" {
		collectFlags.metricsFile = cfg.MetricsFile
	}
	if collectFlags.minResources == 0 && cfg.MinResources > 0 {
		collectFlags.minResources = cfg.MinResources
	}
	if credentialsFile == "" {
		credentialsFile = cfg.CredentialsFile
	}
}

func clientOptions() []option.ClientOption {
	if credentialsFile == "" {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsFile(credentialsFile)}
}

func openOutput(path string, stdout io.Writer) (io.Writer, func(), error) {
	if path == "" {
		return stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}
	return f, func() {
		if err := f.Close(); err != nil {
			slog.Warn("Failed to close output file", "path", path, "error", err)
		}
	}, nil
}

func selectSink(format string, w io.Writer, run output.RunInfo) (output.Sink, error) {
	switch format {
	case output.FormatJSON:
		return output.NewJSONSink(w, run), nil
	case output.FormatNDJSON:
		return output.NewNDJSONSink(w), nil
	case output.FormatText:
		return output.NewTextSink(w, run), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (use %s)", format, strings.Join(output.Formats, ", "))
	}
}
