package commands

import (
	"bytes"
	"context"
	"errors"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/gcpinventory/internal/config"
	"github.com/ppiankov/gcpinventory/internal/inventory"
	"github.com/ppiankov/gcpinventory/internal/metadata"
	"github.com/ppiankov/gcpinventory/internal/output"
)

type fakeManager struct {
	name  string
	items []*inventory.Response
	err   error
}

func (f fakeManager) CloudServiceType() string           { return f.name }
func (f fakeManager) Types() []metadata.CloudServiceType { return nil }

func (f fakeManager) Collect(_ context.Context, _ inventory.Params) iter.Seq2[*inventory.Response, error] {
	return func(yield func(*inventory.Response, error) bool) {
		for _, it := range f.items {
			if !yield(it, nil) {
				return
			}
		}
		if f.err != nil {
			yield(nil, f.err)
		}
	}
}

func diskResponse(name string, size float64) *inventory.Response {
	d := &inventory.Disk{ID: name, Name: name, Region: "us-central1", DiskType: "pd-standard", Size: size, SizeDisplay: inventory.SizeDisplay(size)}
	return inventory.NewResponse(inventory.CloudServiceTypeDisk, name, d.Region, d, nil)
}

type recordingSink struct {
	names []string
}

func (r *recordingSink) Write(_ context.Context, resp *inventory.Response) error {
	r.names = append(r.names, resp.Resource.Name)
	return nil
}

func (r *recordingSink) Close(*output.Summary) error { return nil }

func TestCollectInto(t *testing.T) {
	managers := []inventory.Manager{fakeManager{
		name:  inventory.CloudServiceTypeDisk,
		items: []*inventory.Response{diskResponse("data-1", 10), diskResponse("data-2", 20)},
	}}
	sink := &recordingSink{}

	summary, err := collectInto(context.Background(), managers, inventory.Params{ProjectID: "p"}, sink)
	if err != nil {
		t.Fatalf("collectInto: %v", err)
	}
	if strings.Join(sink.names, ",") != "data-1,data-2" {
		t.Errorf("written = %v", sink.names)
	}
	if summary.TotalResources != 2 || summary.TotalDiskSizeGB != 30 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestCollectIntoRecordsError(t *testing.T) {
	managers := []inventory.Manager{fakeManager{
		name:  inventory.CloudServiceTypeDisk,
		items: []*inventory.Response{diskResponse("data-1", 10)},
		err:   errors.New("list disks in us-central1-b: 403 Forbidden"),
	}}
	sink := &recordingSink{}

	summary, err := collectInto(context.Background(), managers, inventory.Params{ProjectID: "p"}, sink)
	if err == nil {
		t.Fatal("expected collection error")
	}
	if len(sink.names) != 1 {
		t.Errorf("records before the error should be written, got %v", sink.names)
	}
	if len(summary.Errors) != 1 || summary.Errors[0].Stage != "collect" {
		t.Errorf("summary errors = %v", summary.Errors)
	}
}

func TestCollectIntoUnknownType(t *testing.T) {
	managers := []inventory.Manager{fakeManager{name: inventory.CloudServiceTypeDisk}}
	_, err := collectInto(context.Background(), managers, inventory.Params{CloudServiceTypes: []string{"Bucket"}}, &recordingSink{})
	if err == nil || !strings.Contains(err.Error(), "unknown cloud service type Bucket") {
		t.Errorf("err = %v", err)
	}
}

func TestSelectSink(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"ndjson", false},
		{"text", false},
		{"sarif", true},
	}
	for _, tt := range tests {
		s, err := selectSink(tt.format, &bytes.Buffer{}, output.RunInfo{})
		if tt.wantErr {
			if err == nil {
				t.Errorf("selectSink(%q) expected error", tt.format)
			}
			continue
		}
		if err != nil || s == nil {
			t.Errorf("selectSink(%q) = %v, %v", tt.format, s, err)
		}
	}
}

func TestSelectSinkTypes(t *testing.T) {
	s, _ := selectSink("ndjson", &bytes.Buffer{}, output.RunInfo{})
	if _, ok := s.(*output.NDJSONSink); !ok {
		t.Errorf("ndjson format: expected NDJSONSink, got %T", s)
	}
	s, _ = selectSink("text", &bytes.Buffer{}, output.RunInfo{})
	if _, ok := s.(*output.TextSink); !ok {
		t.Errorf("text format: expected TextSink, got %T", s)
	}
}

func TestOpenOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ndjson")
	w, closeOutput, err := openOutput(path, os.Stdout)
	if err != nil {
		t.Fatalf("openOutput: %v", err)
	}
	if _, err := w.Write([]byte("{}\n")); err != nil {
		t.Fatal(err)
	}
	closeOutput()

	data, _ := os.ReadFile(path)
	if string(data) != "{}\n" {
		t.Errorf("content = %q", data)
	}
}

func TestOpenOutputStdout(t *testing.T) {
	var buf bytes.Buffer
	w, closeOutput, err := openOutput("", &buf)
	if err != nil {
		t.Fatalf("openOutput: %v", err)
	}
	defer closeOutput()
	if w != &buf {
		t.Error("expected the fallback writer")
	}
}

func TestResolveParams(t *testing.T) {
	oldProject, oldCfg, oldFlags := project, cfg, collectFlags
	defer func() { project, cfg, collectFlags = oldProject, oldCfg, oldFlags }()

	project = ""
	cfg = config.Config{
		ProjectID: "config-proj",
		Zones:     []string{"us-east1-b"},
		Exclude:   config.Exclude{Labels: []string{"env=dev"}, ResourceIDs: []string{"42"}},
	}
	collectFlags.zones = nil
	collectFlags.types = nil
	collectFlags.excludeLabels = []string{"skip"}
	collectFlags.excludeIDs = nil

	p, err := resolveParams()
	if err != nil {
		t.Fatalf("resolveParams: %v", err)
	}
	if p.ProjectID != "config-proj" {
		t.Errorf("ProjectID = %q, want config-proj", p.ProjectID)
	}
	if len(p.Zones) != 1 || p.Zones[0] != "us-east1-b" {
		t.Errorf("Zones = %v", p.Zones)
	}
	if p.Exclude.Labels["env"] != "dev" {
		t.Errorf("config label missing: %v", p.Exclude.Labels)
	}
	if v, ok := p.Exclude.Labels["skip"]; !ok || v != "" {
		t.Errorf("flag key-only label missing: %v", p.Exclude.Labels)
	}
	if !p.Exclude.ResourceIDs["42"] {
		t.Errorf("ResourceIDs = %v", p.Exclude.ResourceIDs)
	}

	project = "flag-proj"
	collectFlags.zones = []string{"us-central1-a"}
	p, _ = resolveParams()
	if p.ProjectID != "flag-proj" || p.Zones[0] != "us-central1-a" {
		t.Errorf("flags should win, got %+v", p)
	}

	project = ""
	cfg = config.Config{}
	if _, err := resolveParams(); err == nil {
		t.Error("expected error without a project")
	}
}

func TestApplyConfigDefaults(t *testing.T) {
	oldCfg, oldFlags, oldCreds := cfg, collectFlags, credentialsFile
	defer func() { cfg, collectFlags, credentialsFile = oldCfg, oldFlags, oldCreds }()

	cfg = config.Config{
		Format:          "text",
		Timeout:         "3m",
		Output:          "inventory.txt",
		PubsubTopic:     "records",
		MetricsFile:     "run.prom",
		MinResources:    5,
		CredentialsFile: "key.json",
	}
	collectFlags.format = output.FormatJSON
	collectFlags.timeout = defaultTimeout
	collectFlags.outputFile = ""
	collectFlags.pubsubTopic = ""
	collectFlags.metricsFile = ""
	collectFlags.minResources = 0
	credentialsFile = ""

	applyConfigDefaults()

	if collectFlags.format != "text" {
		t.Errorf("format = %q, want text", collectFlags.format)
	}
	if collectFlags.timeout != 3*time.Minute {
		t.Errorf("timeout = %v, want 3m", collectFlags.timeout)
	}
	if collectFlags.outputFile != "inventory.txt" || collectFlags.pubsubTopic != "records" || collectFlags.metricsFile != "run.prom" {
		t.Errorf("flags = %+v", collectFlags)
	}
	if collectFlags.minResources != 5 {
		t.Errorf("minResources = %d, want 5", collectFlags.minResources)
	}
	if credentialsFile != "key.json" {
		t.Errorf("credentialsFile = %q", credentialsFile)
	}
	if len(clientOptions()) != 1 {
		t.Error("expected a credentials client option")
	}
}

func TestApplyConfigDefaultsKeepsFlags(t *testing.T) {
	oldCfg, oldFlags := cfg, collectFlags
	defer func() { cfg, collectFlags = oldCfg, oldFlags }()

	cfg = config.Config{Format: "text", PubsubTopic: "records"}
	collectFlags.format = "ndjson"
	collectFlags.pubsubTopic = "other"

	applyConfigDefaults()

	if collectFlags.format != "ndjson" || collectFlags.pubsubTopic != "other" {
		t.Errorf("explicit flags overridden: %+v", collectFlags)
	}
}
