package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ppiankov/gcpinventory/internal/config"
	"github.com/ppiankov/gcpinventory/internal/logging"
)

var (
	verbose         bool
	project         string
	credentialsFile string
	version         string
	commit          string
	date            string
	cfg             config.Config
)

var rootCmd = &cobra.Command{
	Use:   "gcpinventory",
	Short: "gcpinventory: GCP Compute Engine inventory collector",
	Long: `gcpinventory collects persistent disks and instance templates from a GCP
project and emits one normalized inventory record per resource.

Disk records carry their snapshot schedules and estimated IOPS and
throughput. Records stream to JSON, NDJSON, a text table, or Pub/Sub.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Init(verbose)
		loaded, err := config.Load(".")
		if err != nil {
			slog.Warn("Failed to load config file", "error", err)
		} else {
			cfg = loaded
		}
		return config.ApplyEnv(&cfg)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with injected build info.
func Execute(v, c, d string) error {
	version = v
	commit = c
	date = d
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&project, "project", "", "GCP project ID")
	rootCmd.PersistentFlags().StringVar(&credentialsFile, "credentials-file", "", "Service account key file (default: Application Default Credentials)")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("gcpinventory %s (commit: %s, built: %s)\n", version, commit, date)
	},
}
