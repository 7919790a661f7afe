package formatting

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"hostbridge/internal/api"
	"hostbridge/internal/registry"
)

func TestCapabilityTable(t *testing.T) {
	entries := []registry.Entry{
		{
			Capability: api.Capability{
				Name:        "create_database",
				Description: "Create a database.",
				Args: []api.ArgSpec{
					{Name: "package_id", Type: "string", Required: true},
					{Name: "type", Type: "string", Required: true, Enum: []string{"mysql", "mssql"}},
					{Name: "ttl", Type: "number", Required: false},
				},
			},
			Module: "databases",
		},
		{
			Capability: api.Capability{Name: "list_domains", Description: "List all domains."},
			Module:     "domains",
		},
	}

	var buf bytes.Buffer
	CapabilityTable(&buf, entries)
	out := buf.String()

	assert.Contains(t, out, "create_database")
	assert.Contains(t, out, "databases")
	assert.Contains(t, out, "package_id:string")
	assert.Contains(t, out, "type:string(mysql|mssql)")
	assert.Contains(t, out, "[ttl:number]")
	assert.Contains(t, out, "2 capabilities")
}

func TestArgSummaryEmpty(t *testing.T) {
	assert.Equal(t, "-", argSummary(nil))
}
