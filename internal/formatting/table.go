// Package formatting renders CLI output for the offline commands.
package formatting

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"hostbridge/internal/api"
	"hostbridge/internal/registry"
)

// CapabilityTable renders the capability registry as a table: one row
// per capability with its contributing module and argument summary.
func CapabilityTable(out io.Writer, entries []registry.Entry) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"CAPABILITY", "MODULE", "ARGUMENTS", "DESCRIPTION"})

	for _, entry := range entries {
		t.AppendRow(table.Row{
			entry.Capability.Name,
			entry.Module,
			argSummary(entry.Capability.Args),
			entry.Capability.Description,
		})
	}

	t.Render()
	fmt.Fprintf(out, "%d capabilities\n", len(entries))
}

// argSummary compacts an argument schema into one cell: required
// arguments first as name:type, optional ones wrapped in brackets.
func argSummary(args []api.ArgSpec) string {
	if len(args) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		part := fmt.Sprintf("%s:%s", arg.Name, arg.Type)
		if len(arg.Enum) > 0 {
			part = fmt.Sprintf("%s:%s(%s)", arg.Name, arg.Type, strings.Join(arg.Enum, "|"))
		}
		if !arg.Required {
			part = "[" + part + "]"
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " ")
}
