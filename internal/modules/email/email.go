// Package email contributes mailbox and forwarder capabilities scoped
// to a hosting package.
package email

import (
	"context"
	"fmt"
	"net/url"

	"hostbridge/internal/api"
	"hostbridge/internal/upstream"
	"hostbridge/internal/validate"
)

// Module implements api.Module for email operations.
type Module struct {
	client *upstream.Client
}

// New constructs the module from an upstream client alone.
func New(client *upstream.Client) *Module {
	return &Module{client: client}
}

// Name implements api.Module.
func (m *Module) Name() string { return "email" }

// Capabilities implements api.Module.
func (m *Module) Capabilities() []api.Capability {
	return []api.Capability{
		{
			Name:        "list_mailboxes",
			Description: "List the mailboxes of a hosting package.",
			Args: []api.ArgSpec{
				{Name: "package_id", Type: "string", Required: true, Description: "Identifier of the hosting package."},
			},
		},
		{
			Name:        "create_mailbox",
			Description: "Create a mailbox on a hosting package.",
			Args: []api.ArgSpec{
				{Name: "package_id", Type: "string", Required: true, Description: "Identifier of the hosting package."},
				{Name: "local_part", Type: "string", Required: true, Description: "Part of the address before the @."},
				{Name: "password", Type: "string", Required: true, Description: "Mailbox password."},
				{Name: "forward_to", Type: "string", Required: false, Description: "Also forward incoming mail to this address."},
			},
		},
		{
			Name:        "delete_mailbox",
			Description: "Delete a mailbox and its stored mail.",
			Args: []api.ArgSpec{
				{Name: "package_id", Type: "string", Required: true, Description: "Identifier of the hosting package."},
				{Name: "mailbox_id", Type: "string", Required: true, Description: "Identifier of the mailbox."},
			},
		},
		{
			Name:        "list_email_forwarders",
			Description: "List the email forwarders of a hosting package.",
			Args: []api.ArgSpec{
				{Name: "package_id", Type: "string", Required: true, Description: "Identifier of the hosting package."},
			},
		},
		{
			Name:        "create_email_forwarder",
			Description: "Create an email forwarder delivering to one or more destinations.",
			Args: []api.ArgSpec{
				{Name: "package_id", Type: "string", Required: true, Description: "Identifier of the hosting package."},
				{Name: "local_part", Type: "string", Required: true, Description: "Part of the address before the @."},
				{Name: "destinations", Type: "array", Required: true, Description: "Destination email addresses."},
			},
		},
	}
}

// Handlers implements api.Module.
func (m *Module) Handlers() map[string]api.Handler {
	return map[string]api.Handler{
		"list_mailboxes":         m.listMailboxes,
		"create_mailbox":         m.createMailbox,
		"delete_mailbox":         m.deleteMailbox,
		"list_email_forwarders":  m.listForwarders,
		"create_email_forwarder": m.createForwarder,
	}
}

func (m *Module) listMailboxes(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	packageID, err := validate.String(args["package_id"], "package_id")
	if err != nil {
		return nil, err
	}
	path := fmt.Sprintf("/packages/%s/email/mailboxes", url.PathEscape(packageID))
	return m.client.Get(ctx, path, upstream.EmptyDefault([]interface{}{}))
}

func (m *Module) createMailbox(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	packageID, err := validate.String(args["package_id"], "package_id")
	if err != nil {
		return nil, err
	}
	localPart, err := validate.String(args["local_part"], "local_part")
	if err != nil {
		return nil, err
	}
	password, err := validate.String(args["password"], "password")
	if err != nil {
		return nil, err
	}
	forwardTo, hasForward, err := validate.Optional(args["forward_to"], "forward_to", validate.Email)
	if err != nil {
		return nil, err
	}

	body := map[string]interface{}{
		"localPart": localPart,
		"password":  password,
	}
	if hasForward {
		body["forwardTo"] = forwardTo
	}
	path := fmt.Sprintf("/packages/%s/email/mailboxes", url.PathEscape(packageID))
	return m.client.Post(ctx, path, body, upstream.ScalarID())
}

func (m *Module) deleteMailbox(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	packageID, err := validate.String(args["package_id"], "package_id")
	if err != nil {
		return nil, err
	}
	mailboxID, err := validate.String(args["mailbox_id"], "mailbox_id")
	if err != nil {
		return nil, err
	}
	path := fmt.Sprintf("/packages/%s/email/mailboxes/%s", url.PathEscape(packageID), url.PathEscape(mailboxID))
	return m.client.Delete(ctx, path, upstream.EmptyDefault(map[string]interface{}{"deleted": true}))
}

func (m *Module) listForwarders(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	packageID, err := validate.String(args["package_id"], "package_id")
	if err != nil {
		return nil, err
	}
	path := fmt.Sprintf("/packages/%s/email/forwarders", url.PathEscape(packageID))
	return m.client.Get(ctx, path, upstream.EmptyDefault([]interface{}{}))
}

func (m *Module) createForwarder(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	packageID, err := validate.String(args["package_id"], "package_id")
	if err != nil {
		return nil, err
	}
	localPart, err := validate.String(args["local_part"], "local_part")
	if err != nil {
		return nil, err
	}
	destinations, err := validate.StringArray(args["destinations"], "destinations")
	if err != nil {
		return nil, err
	}
	for i, dest := range destinations {
		if _, err := validate.Email(dest, fmt.Sprintf("destinations[%d]", i)); err != nil {
			return nil, err
		}
	}

	body := map[string]interface{}{
		"localPart":    localPart,
		"destinations": destinations,
	}
	path := fmt.Sprintf("/packages/%s/email/forwarders", url.PathEscape(packageID))
	return m.client.Post(ctx, path, body, upstream.ScalarID())
}
