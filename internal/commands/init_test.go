package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/gcpinventory/internal/config"
)

func TestWriteIfNotExists(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		rel      string
		force    bool
		wantErr  bool
		want     string
	}{
		{name: "new file", rel: "cfg.yaml", want: "generated"},
		{name: "nested directories created", rel: filepath.Join("a", "b", "cfg.yaml"), want: "generated"},
		{name: "existing file kept", existing: "hand edited", rel: "cfg.yaml", wantErr: true, want: "hand edited"},
		{name: "existing file forced", existing: "hand edited", rel: "cfg.yaml", force: true, want: "generated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.rel)
			if tt.existing != "" {
				if err := os.WriteFile(path, []byte(tt.existing), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			err := writeIfNotExists(path, "generated", tt.force)
			if (err != nil) != tt.wantErr {
				t.Fatalf("writeIfNotExists() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), "--force") {
				t.Errorf("error %q should suggest --force", err)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("content = %q, want %q", data, tt.want)
			}
		})
	}
}

func TestSampleConfigLoads(t *testing.T) {
	dir := t.TempDir()
	if err := writeIfNotExists(filepath.Join(dir, ".gcpinventory.yaml"), sampleConfig, false); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Format)
	}
	if cfg.Timeout != "10m" {
		t.Errorf("Timeout = %q, want 10m", cfg.Timeout)
	}
	if !strings.Contains(sampleConfig, "GCPINVENTORY_PROJECT_ID") {
		t.Error("sample config should mention the environment override")
	}
}
