// Package packages contributes the hosting-package lifecycle
// capabilities.
package packages

import (
	"context"
	"fmt"
	"net/url"

	"hostbridge/internal/api"
	"hostbridge/internal/upstream"
	"hostbridge/internal/validate"
)

// Module implements api.Module for hosting package operations.
type Module struct {
	client *upstream.Client
}

// New constructs the module from an upstream client alone.
func New(client *upstream.Client) *Module {
	return &Module{client: client}
}

// Name implements api.Module.
func (m *Module) Name() string { return "packages" }

// Capabilities implements api.Module.
func (m *Module) Capabilities() []api.Capability {
	return []api.Capability{
		{
			Name:        "list_hosting_packages",
			Description: "List all hosting packages on the account.",
		},
		{
			Name:        "get_hosting_package_info",
			Description: "Get configuration and status of one hosting package.",
			Args: []api.ArgSpec{
				{Name: "package_id", Type: "string", Required: true, Description: "Identifier of the hosting package."},
			},
		},
		{
			Name:        "create_hosting_package",
			Description: "Provision a new hosting package.",
			Args: []api.ArgSpec{
				{Name: "domain_name", Type: "string", Required: true, Description: "Primary domain for the package."},
				{Name: "package_type", Type: "string", Required: true, Description: "Plan identifier to provision."},
				{Name: "username", Type: "string", Required: true, Description: "Control panel username."},
				{Name: "password", Type: "string", Required: true, Description: "Control panel password."},
			},
		},
		{
			Name:        "delete_hosting_package",
			Description: "Delete a hosting package and all of its data.",
			Args: []api.ArgSpec{
				{Name: "package_id", Type: "string", Required: true, Description: "Identifier of the hosting package."},
			},
		},
		{
			Name:        "get_package_limits",
			Description: "Get resource limits and current usage of a hosting package.",
			Args: []api.ArgSpec{
				{Name: "package_id", Type: "string", Required: true, Description: "Identifier of the hosting package."},
			},
		},
	}
}

// Handlers implements api.Module.
func (m *Module) Handlers() map[string]api.Handler {
	return map[string]api.Handler{
		"list_hosting_packages":    m.listPackages,
		"get_hosting_package_info": m.getPackageInfo,
		"create_hosting_package":   m.createPackage,
		"delete_hosting_package":   m.deletePackage,
		"get_package_limits":       m.getPackageLimits,
	}
}

func (m *Module) listPackages(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	return m.client.Get(ctx, "/packages", upstream.EmptyDefault([]interface{}{}))
}

func (m *Module) getPackageInfo(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	packageID, err := validate.String(args["package_id"], "package_id")
	if err != nil {
		return nil, err
	}
	return m.client.Get(ctx, "/packages/"+url.PathEscape(packageID), upstream.Singular())
}

func (m *Module) createPackage(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	domainName, err := validate.DomainName(args["domain_name"], "domain_name")
	if err != nil {
		return nil, err
	}
	packageType, err := validate.String(args["package_type"], "package_type")
	if err != nil {
		return nil, err
	}
	username, err := validate.String(args["username"], "username")
	if err != nil {
		return nil, err
	}
	password, err := validate.String(args["password"], "password")
	if err != nil {
		return nil, err
	}

	body := map[string]interface{}{
		"domainName": domainName,
		"type":       packageType,
		"username":   username,
		"password":   password,
	}
	// Provisioning answers with the bare package identifier.
	return m.client.Post(ctx, "/packages", body, upstream.ScalarID())
}

func (m *Module) deletePackage(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	packageID, err := validate.String(args["package_id"], "package_id")
	if err != nil {
		return nil, err
	}
	return m.client.Delete(ctx, "/packages/"+url.PathEscape(packageID),
		upstream.EmptyDefault(map[string]interface{}{"deleted": true}))
}

func (m *Module) getPackageLimits(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	packageID, err := validate.String(args["package_id"], "package_id")
	if err != nil {
		return nil, err
	}
	path := fmt.Sprintf("/packages/%s/limits", url.PathEscape(packageID))
	// Unlimited plans answer with an empty object.
	return m.client.Get(ctx, path, upstream.EmptyDefault(map[string]interface{}{
		"diskMB":      0,
		"bandwidthMB": 0,
		"mailboxes":   0,
		"databases":   0,
	}))
}
