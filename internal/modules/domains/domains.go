// Package domains contributes the domain-management capabilities:
// listing and inspecting registered domains, availability checks,
// registration, and nameserver delegation.
package domains

import (
	"context"
	"fmt"
	"net/url"

	"hostbridge/internal/api"
	"hostbridge/internal/upstream"
	"hostbridge/internal/validate"
)

// Module implements api.Module for domain operations.
type Module struct {
	client *upstream.Client
}

// New constructs the module from an upstream client alone.
func New(client *upstream.Client) *Module {
	return &Module{client: client}
}

// Name implements api.Module.
func (m *Module) Name() string { return "domains" }

// Capabilities implements api.Module.
func (m *Module) Capabilities() []api.Capability {
	return []api.Capability{
		{
			Name:        "list_domains",
			Description: "List all domains on the account.",
		},
		{
			Name:        "get_domain_info",
			Description: "Get registration details for one domain.",
			Args: []api.ArgSpec{
				{Name: "domain_id", Type: "string", Required: true, Description: "Identifier of the domain."},
			},
		},
		{
			Name:        "check_domain_availability",
			Description: "Check whether a domain name is available for registration.",
			Args: []api.ArgSpec{
				{Name: "name", Type: "string", Required: true, Description: "Fully qualified domain name to check."},
			},
		},
		{
			Name:        "register_domain",
			Description: "Register a new domain.",
			Args: []api.ArgSpec{
				{Name: "name", Type: "string", Required: true, Description: "Fully qualified domain name to register."},
				{Name: "years", Type: "number", Required: true, Description: "Registration period in years."},
				{Name: "contact_email", Type: "string", Required: true, Description: "Registrant contact email address."},
				{Name: "privacy", Type: "boolean", Required: false, Description: "Enable WHOIS privacy.", Default: false},
				{Name: "contact", Type: "object", Required: false, Description: "Registrant contact details: name, organisation and phone."},
			},
		},
		{
			Name:        "get_dns_records",
			Description: "Get the DNS records of a domain.",
			Args: []api.ArgSpec{
				{Name: "domain_id", Type: "string", Required: true, Description: "Identifier of the domain."},
			},
		},
		{
			Name:        "update_nameservers",
			Description: "Replace the nameserver delegation of a domain.",
			Args: []api.ArgSpec{
				{Name: "domain_id", Type: "string", Required: true, Description: "Identifier of the domain."},
				{Name: "nameservers", Type: "array", Required: true, Description: "Nameserver hostnames, in delegation order."},
			},
		},
	}
}

// Handlers implements api.Module.
func (m *Module) Handlers() map[string]api.Handler {
	return map[string]api.Handler{
		"list_domains":              m.listDomains,
		"get_domain_info":           m.getDomainInfo,
		"check_domain_availability": m.checkDomainAvailability,
		"register_domain":           m.registerDomain,
		"get_dns_records":           m.getDNSRecords,
		"update_nameservers":        m.updateNameservers,
	}
}

func (m *Module) listDomains(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	return m.client.Get(ctx, "/domains", upstream.EmptyDefault([]interface{}{}))
}

func (m *Module) getDomainInfo(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	domainID, err := validate.String(args["domain_id"], "domain_id")
	if err != nil {
		return nil, err
	}
	return m.client.Get(ctx, "/domains/"+url.PathEscape(domainID), upstream.Singular())
}

func (m *Module) checkDomainAvailability(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	name, err := validate.DomainName(args["name"], "name")
	if err != nil {
		return nil, err
	}
	// The search endpoint answers with a one-element array for a
	// single-name query.
	return m.client.Get(ctx, "/domains/search/"+url.PathEscape(name), upstream.Singular())
}

func (m *Module) registerDomain(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	name, err := validate.DomainName(args["name"], "name")
	if err != nil {
		return nil, err
	}
	years, err := validate.PositiveNumber(args["years"], "years")
	if err != nil {
		return nil, err
	}
	contactEmail, err := validate.Email(args["contact_email"], "contact_email")
	if err != nil {
		return nil, err
	}
	privacy, _, err := validate.Optional(args["privacy"], "privacy", validate.Boolean)
	if err != nil {
		return nil, err
	}

	body := map[string]interface{}{
		"name":         name,
		"years":        int(years),
		"contactEmail": contactEmail,
		"privacy":      privacy,
	}
	if raw, present := args["contact"]; present {
		contact, err := validate.Object(raw, "contact")
		if err != nil {
			return nil, err
		}
		for _, field := range []string{"name", "organisation", "phone"} {
			if v, ok := contact[field]; ok {
				if _, err := validate.String(v, "contact."+field); err != nil {
					return nil, err
				}
			}
		}
		body["contact"] = contact
	}
	// Registration answers with a bare order reference on some TLDs.
	return m.client.Post(ctx, "/domains/register", body, upstream.ScalarID())
}

func (m *Module) getDNSRecords(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	domainID, err := validate.String(args["domain_id"], "domain_id")
	if err != nil {
		return nil, err
	}
	path := fmt.Sprintf("/domains/%s/dns", url.PathEscape(domainID))
	return m.client.Get(ctx, path, upstream.EmptyDefault(map[string]interface{}{"records": []interface{}{}}))
}

func (m *Module) updateNameservers(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	domainID, err := validate.String(args["domain_id"], "domain_id")
	if err != nil {
		return nil, err
	}
	nameservers, err := validate.StringArray(args["nameservers"], "nameservers")
	if err != nil {
		return nil, err
	}
	for i, ns := range nameservers {
		if _, err := validate.DomainName(ns, fmt.Sprintf("nameservers[%d]", i)); err != nil {
			return nil, err
		}
	}

	path := fmt.Sprintf("/domains/%s/nameservers", url.PathEscape(domainID))
	body := map[string]interface{}{"nameservers": nameservers}
	return m.client.Post(ctx, path, body, upstream.EmptyDefault(map[string]interface{}{"updated": true}))
}
