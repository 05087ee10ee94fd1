package output

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ppiankov/gcpinventory/internal/inventory"
)

// TextSink renders collected resources as a table followed by the summary.
// Rows are buffered until Close.
type TextSink struct {
	w   io.Writer
	run RunInfo
	t   table.Writer
}

func NewTextSink(w io.Writer, run RunInfo) *TextSink {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Type", "Name", "Region", "Details"})
	t.SetStyle(table.StyleLight)
	return &TextSink{w: w, run: run, t: t}
}

func (s *TextSink) Write(_ context.Context, resp *inventory.Response) error {
	s.t.AppendRow(table.Row{
		resp.Resource.CloudServiceType,
		resp.Resource.Name,
		resp.Resource.RegionCode,
		details(resp.Resource.Data),
	})
	return nil
}

func details(rec inventory.Record) string {
	switch r := rec.(type) {
	case *inventory.Disk:
		return fmt.Sprintf("%s %s, %.0f/%.0f IOPS, %d snapshot schedule(s)",
			r.DiskType, r.SizeDisplay, r.ReadIOPS, r.WriteIOPS, len(r.SnapshotSchedule))
	case *inventory.InstanceTemplate:
		return fmt.Sprintf("%s, %d disk(s), used by %d", r.Machine.MachineDisplay, len(r.Disks), len(r.InUsedBy))
	default:
		return ""
	}
}

func (s *TextSink) Close(summary *Summary) error {
	if _, err := fmt.Fprintf(s.w, "%s %s: project %s, %d zone(s)\n\n", s.run.Tool, s.run.Version, s.run.Project, len(s.run.Zones)); err != nil {
		return err
	}
	if summary.TotalResources > 0 {
		if _, err := fmt.Fprintln(s.w, s.t.Render()); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(s.w); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(s.w, "Resources: %d\n", summary.TotalResources); err != nil {
		return err
	}
	for _, cst := range slices.Sorted(maps.Keys(summary.ByCloudServiceType)) {
		if _, err := fmt.Fprintf(s.w, "  %s: %d\n", cst, summary.ByCloudServiceType[cst]); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(s.w, "Total disk size: %s\n", inventory.SizeDisplay(summary.TotalDiskSizeGB)); err != nil {
		return err
	}
	for _, e := range summary.Errors {
		if _, err := fmt.Fprintf(s.w, "Error: %s\n", e); err != nil {
			return err
		}
	}
	return nil
}
