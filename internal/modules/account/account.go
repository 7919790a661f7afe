// Package account contributes account-level capabilities: balance,
// invoices, and stack user administration.
package account

import (
	"context"
	"net/url"

	"hostbridge/internal/api"
	"hostbridge/internal/upstream"
	"hostbridge/internal/validate"
)

// zeroBalance is the success payload for accounts the upstream reports
// with an empty body. A zero balance is valid data, not an error.
var zeroBalance = map[string]interface{}{
	"balance":  0,
	"currency": "USD",
}

// Module implements api.Module for account operations.
type Module struct {
	client *upstream.Client
}

// New constructs the module from an upstream client alone.
func New(client *upstream.Client) *Module {
	return &Module{client: client}
}

// Name implements api.Module.
func (m *Module) Name() string { return "account" }

// Capabilities implements api.Module.
func (m *Module) Capabilities() []api.Capability {
	return []api.Capability{
		{
			Name:        "get_account_balance",
			Description: "Get the current account balance.",
		},
		{
			Name:        "get_invoice",
			Description: "Get one invoice by its identifier.",
			Args: []api.ArgSpec{
				{Name: "invoice_id", Type: "string", Required: true, Description: "Identifier of the invoice."},
			},
		},
		{
			Name:        "list_stack_users",
			Description: "List the stack users that can be granted access to services.",
		},
		{
			Name:        "create_stack_user_token",
			Description: "Issue an access token for a stack user.",
			Args: []api.ArgSpec{
				{Name: "user_ref", Type: "string", Required: true, Description: "Reference of the stack user."},
			},
		},
	}
}

// Handlers implements api.Module.
func (m *Module) Handlers() map[string]api.Handler {
	return map[string]api.Handler{
		"get_account_balance":     m.getBalance,
		"get_invoice":             m.getInvoice,
		"list_stack_users":        m.listStackUsers,
		"create_stack_user_token": m.createStackUserToken,
	}
}

func (m *Module) getBalance(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	return m.client.Get(ctx, "/account/balance", upstream.EmptyDefault(zeroBalance))
}

func (m *Module) getInvoice(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	invoiceID, err := validate.String(args["invoice_id"], "invoice_id")
	if err != nil {
		return nil, err
	}
	// Settled invoices come back as a bare reference string.
	return m.client.Get(ctx, "/account/invoices/"+url.PathEscape(invoiceID),
		upstream.Singular(), upstream.ScalarID())
}

func (m *Module) listStackUsers(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	// Stack user endpoints authenticate with the combined service key.
	return m.client.Get(ctx, "/account/users", upstream.AsService(), upstream.EmptyDefault([]interface{}{}))
}

func (m *Module) createStackUserToken(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	userRef, err := validate.String(args["user_ref"], "user_ref")
	if err != nil {
		return nil, err
	}
	body := map[string]interface{}{
		"userRef":        userRef,
		"oauthClientKey": m.client.OAuthClientKey(),
	}
	return m.client.Post(ctx, "/account/users/token", body, upstream.AsService(), upstream.ScalarID())
}
