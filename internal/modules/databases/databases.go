// Package databases contributes database and database-user
// capabilities scoped to a hosting package.
package databases

import (
	"context"
	"fmt"
	"net/url"

	"hostbridge/internal/api"
	"hostbridge/internal/upstream"
	"hostbridge/internal/validate"
)

// databaseTypes are the engines the upstream provisions.
var databaseTypes = []string{"mysql", "mssql"}

// Module implements api.Module for database operations.
type Module struct {
	client *upstream.Client
}

// New constructs the module from an upstream client alone.
func New(client *upstream.Client) *Module {
	return &Module{client: client}
}

// Name implements api.Module.
func (m *Module) Name() string { return "databases" }

// Capabilities implements api.Module.
func (m *Module) Capabilities() []api.Capability {
	typeArg := api.ArgSpec{
		Name: "type", Type: "string", Required: true,
		Description: "Database engine.",
		Enum:        databaseTypes,
	}
	packageArg := api.ArgSpec{
		Name: "package_id", Type: "string", Required: true,
		Description: "Identifier of the hosting package.",
	}

	return []api.Capability{
		{
			Name:        "list_databases",
			Description: "List the databases of a hosting package.",
			Args:        []api.ArgSpec{packageArg, typeArg},
		},
		{
			Name:        "create_database",
			Description: "Create a database on a hosting package.",
			Args: []api.ArgSpec{
				packageArg,
				typeArg,
				{Name: "name", Type: "string", Required: true, Description: "Database name."},
			},
		},
		{
			Name:        "delete_database",
			Description: "Delete a database and its contents.",
			Args: []api.ArgSpec{
				packageArg,
				typeArg,
				{Name: "database_id", Type: "string", Required: true, Description: "Identifier of the database."},
			},
		},
		{
			Name:        "list_database_users",
			Description: "List the database users of a hosting package.",
			Args:        []api.ArgSpec{packageArg, typeArg},
		},
		{
			Name:        "grant_database_user",
			Description: "Create a database user and grant it access to a database.",
			Args: []api.ArgSpec{
				packageArg,
				typeArg,
				{Name: "database_id", Type: "string", Required: true, Description: "Identifier of the database."},
				{Name: "username", Type: "string", Required: true, Description: "Username to create."},
				{Name: "password", Type: "string", Required: true, Description: "Password for the new user."},
			},
		},
	}
}

// Handlers implements api.Module.
func (m *Module) Handlers() map[string]api.Handler {
	return map[string]api.Handler{
		"list_databases":      m.listDatabases,
		"create_database":     m.createDatabase,
		"delete_database":     m.deleteDatabase,
		"list_database_users": m.listDatabaseUsers,
		"grant_database_user": m.grantDatabaseUser,
	}
}

// scope validates the package_id/type pair shared by every capability
// in this module and returns the endpoint prefix for it.
func (m *Module) scope(args map[string]interface{}) (string, error) {
	packageID, err := validate.String(args["package_id"], "package_id")
	if err != nil {
		return "", err
	}
	dbType, err := validate.Enum(args["type"], databaseTypes, "type")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("/packages/%s/database/%s", url.PathEscape(packageID), dbType), nil
}

func (m *Module) listDatabases(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	prefix, err := m.scope(args)
	if err != nil {
		return nil, err
	}
	return m.client.Get(ctx, prefix, upstream.EmptyDefault([]interface{}{}))
}

func (m *Module) createDatabase(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	prefix, err := m.scope(args)
	if err != nil {
		return nil, err
	}
	name, err := validate.String(args["name"], "name")
	if err != nil {
		return nil, err
	}
	return m.client.Post(ctx, prefix, map[string]interface{}{"name": name}, upstream.ScalarID())
}

func (m *Module) deleteDatabase(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	prefix, err := m.scope(args)
	if err != nil {
		return nil, err
	}
	databaseID, err := validate.String(args["database_id"], "database_id")
	if err != nil {
		return nil, err
	}
	return m.client.Delete(ctx, prefix+"/"+url.PathEscape(databaseID),
		upstream.EmptyDefault(map[string]interface{}{"deleted": true}))
}

func (m *Module) listDatabaseUsers(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	prefix, err := m.scope(args)
	if err != nil {
		return nil, err
	}
	return m.client.Get(ctx, prefix+"/users", upstream.EmptyDefault([]interface{}{}))
}

func (m *Module) grantDatabaseUser(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	prefix, err := m.scope(args)
	if err != nil {
		return nil, err
	}
	databaseID, err := validate.String(args["database_id"], "database_id")
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
		"databaseId": databaseID,
		"username":   username,
		"password":   password,
	}
	return m.client.Post(ctx, prefix+"/users", body, upstream.ScalarID())
}
