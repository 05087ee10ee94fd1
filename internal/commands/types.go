package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/ppiankov/gcpinventory/internal/inventory"
	"github.com/ppiankov/gcpinventory/internal/metadata"
)

var typesFlags struct {
	format string
}

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "Print the cloud service types this tool registers",
	Long: `Prints each cloud service type with its group, provider and console
metadata (list fields and search keys).`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printTypes(cmd.OutOrStdout(), typesFlags.format, registeredTypes())
	},
}

func init() {
	typesCmd.Flags().StringVar(&typesFlags.format, "format", "text", "Output format: text, json")
	rootCmd.AddCommand(typesCmd)
}

func registeredTypes() []metadata.CloudServiceType {
	return lo.FlatMap(inventory.Managers(nil), func(m inventory.Manager, _ int) []metadata.CloudServiceType {
		return m.Types()
	})
}

func printTypes(w io.Writer, format string, types []metadata.CloudServiceType) error {
	switch format {
	case "json":
		return writeJSON(w, types)
	case "text":
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Name", "Group", "Provider", "Labels", "Fields", "Search"})
		for _, ct := range types {
			t.AppendRow(table.Row{
				ct.Name,
				ct.Group,
				ct.Provider,
				strings.Join(ct.Labels, ", "),
				len(ct.Metadata.Fields),
				strings.Join(lo.Map(ct.Metadata.Search, func(s metadata.SearchField, _ int) string { return s.Key }), ", "),
			})
		}
		t.Render()
		return nil
	default:
		return fmt.Errorf("unsupported format: %s (use text or json)", format)
	}
}
