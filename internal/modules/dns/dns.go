// Package dns contributes zone and record capabilities.
package dns

import (
	"context"
	"fmt"
	"net/url"

	"hostbridge/internal/api"
	"hostbridge/internal/upstream"
	"hostbridge/internal/validate"
)

// recordTypes are the record kinds the upstream accepts.
var recordTypes = []string{"A", "AAAA", "CNAME", "MX", "TXT"}

// defaultTTL is advertised in the schema and applied when the caller
// omits a TTL.
const defaultTTL = 3600

// Module implements api.Module for DNS operations.
type Module struct {
	client *upstream.Client
}

// New constructs the module from an upstream client alone.
func New(client *upstream.Client) *Module {
	return &Module{client: client}
}

// Name implements api.Module.
func (m *Module) Name() string { return "dns" }

// Capabilities implements api.Module.
func (m *Module) Capabilities() []api.Capability {
	return []api.Capability{
		{
			Name:        "list_dns_zones",
			Description: "List all DNS zones on the account.",
		},
		{
			Name:        "add_dns_record",
			Description: "Add a record to a domain's DNS zone.",
			Args: []api.ArgSpec{
				{Name: "domain_id", Type: "string", Required: true, Description: "Identifier of the domain."},
				{Name: "type", Type: "string", Required: true, Description: "Record type.", Enum: recordTypes},
				{Name: "host", Type: "string", Required: true, Description: "Record host, relative to the zone ('@' for the apex)."},
				{Name: "value", Type: "string", Required: true, Description: "Record value."},
				{Name: "ttl", Type: "number", Required: false, Description: "Time to live in seconds.", Default: defaultTTL},
				{Name: "priority", Type: "number", Required: false, Description: "Priority, for MX records."},
			},
		},
		{
			Name:        "remove_dns_record",
			Description: "Remove a record from a domain's DNS zone.",
			Args: []api.ArgSpec{
				{Name: "domain_id", Type: "string", Required: true, Description: "Identifier of the domain."},
				{Name: "record_id", Type: "string", Required: true, Description: "Identifier of the record."},
			},
		},
	}
}

// Handlers implements api.Module.
func (m *Module) Handlers() map[string]api.Handler {
	return map[string]api.Handler{
		"list_dns_zones":    m.listZones,
		"add_dns_record":    m.addRecord,
		"remove_dns_record": m.removeRecord,
	}
}

func (m *Module) listZones(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	return m.client.Get(ctx, "/dns", upstream.EmptyDefault([]interface{}{}))
}

func (m *Module) addRecord(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	domainID, err := validate.String(args["domain_id"], "domain_id")
	if err != nil {
		return nil, err
	}
	recordType, err := validate.Enum(args["type"], recordTypes, "type")
	if err != nil {
		return nil, err
	}
	host, err := validate.String(args["host"], "host")
	if err != nil {
		return nil, err
	}
	value, err := validate.String(args["value"], "value")
	if err != nil {
		return nil, err
	}
	ttl, hasTTL, err := validate.Optional(args["ttl"], "ttl", validate.PositiveNumber)
	if err != nil {
		return nil, err
	}
	priority, hasPriority, err := validate.Optional(args["priority"], "priority", validate.PositiveNumber)
	if err != nil {
		return nil, err
	}

	body := map[string]interface{}{
		"type":  recordType,
		"host":  host,
		"value": value,
		"ttl":   defaultTTL,
	}
	if hasTTL {
		body["ttl"] = int(ttl)
	}
	if hasPriority {
		body["priority"] = int(priority)
	}

	path := fmt.Sprintf("/dns/%s/records", url.PathEscape(domainID))
	return m.client.Post(ctx, path, body, upstream.ScalarID())
}

func (m *Module) removeRecord(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	domainID, err := validate.String(args["domain_id"], "domain_id")
	if err != nil {
		return nil, err
	}
	recordID, err := validate.String(args["record_id"], "record_id")
	if err != nil {
		return nil, err
	}
	path := fmt.Sprintf("/dns/%s/records/%s", url.PathEscape(domainID), url.PathEscape(recordID))
	return m.client.Delete(ctx, path, upstream.EmptyDefault(map[string]interface{}{"deleted": true}))
}
