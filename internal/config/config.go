package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds gcpinventory configuration loaded from .gcpinventory.yaml and
// GCPINVENTORY_* environment variables.
type Config struct {
	ProjectID         string   `yaml:"project_id" envconfig:"GCPINVENTORY_PROJECT_ID"`
	Zones             []string `yaml:"zones" envconfig:"GCPINVENTORY_ZONES"`
	CloudServiceTypes []string `yaml:"cloud_service_types" envconfig:"GCPINVENTORY_CLOUD_SERVICE_TYPES"`
	Format            string   `yaml:"format" envconfig:"GCPINVENTORY_FORMAT"`
	Output            string   `yaml:"output" envconfig:"GCPINVENTORY_OUTPUT"`
	Timeout           string   `yaml:"timeout" envconfig:"GCPINVENTORY_TIMEOUT"`
	CredentialsFile   string   `yaml:"credentials_file" envconfig:"GCPINVENTORY_CREDENTIALS_FILE"`
	PubsubTopic       string   `yaml:"pubsub_topic" envconfig:"GCPINVENTORY_PUBSUB_TOPIC"`
	MetricsFile       string   `yaml:"metrics_file" envconfig:"GCPINVENTORY_METRICS_FILE"`
	MinResources      int      `yaml:"min_resources" envconfig:"GCPINVENTORY_MIN_RESOURCES"`
	Exclude           Exclude  `yaml:"exclude"`
}

// Exclude defines resources to drop from the output.
type Exclude struct {
	ResourceIDs []string `yaml:"resource_ids" envconfig:"GCPINVENTORY_EXCLUDE_RESOURCE_IDS"`
	Labels      []string `yaml:"labels" envconfig:"GCPINVENTORY_EXCLUDE_LABELS"`
}

// TimeoutDuration parses the timeout string as a duration.
func (c Config) TimeoutDuration() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Load searches for .gcpinventory.yaml or .gcpinventory.yml in the given directory
// and returns the parsed config. Returns an empty Config if no file is found.
func Load(dir string) (Config, error) {
	candidates := []string{
		filepath.Join(dir, ".gcpinventory.yaml"),
		filepath.Join(dir, ".gcpinventory.yml"),
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}

		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		return cfg, nil
	}

	return Config{}, nil
}

// ApplyEnv overrides fields of cfg with any GCPINVENTORY_* variables that are
// set. Unset variables leave the file values in place.
func ApplyEnv(cfg *Config) error {
	if err := envconfig.Process("", cfg); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	return nil
}
