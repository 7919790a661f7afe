package dispatcher

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostbridge/internal/api"
)

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: struct {
			Name      string    `json:"name"`
			Arguments any       `json:"arguments,omitempty"`
			Meta      *mcp.Meta `json:"_meta,omitempty"`
		}{
			Name:      name,
			Arguments: args,
		},
	}
}

func TestBuildToolsAdvertisesSchema(t *testing.T) {
	module := &fakeModule{
		name: "m",
		caps: []api.Capability{{
			Name:        "create_database",
			Description: "Create a database.",
			Args: []api.ArgSpec{
				{Name: "package_id", Type: "string", Required: true, Description: "Package."},
				{Name: "type", Type: "string", Required: true, Description: "Engine.", Enum: []string{"mysql", "mssql"}},
				{Name: "ttl", Type: "number", Required: false, Description: "TTL.", Default: 3600},
			},
		}},
		handlers: map[string]api.Handler{
			"create_database": func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
				return nil, nil
			},
		},
	}
	d := newDispatcher(t, module)

	tools := d.buildTools()
	require.Len(t, tools, 1)

	tool := tools[0].Tool
	assert.Equal(t, "create_database", tool.Name)
	assert.Equal(t, "Create a database.", tool.Description)
	assert.Equal(t, "object", tool.InputSchema.Type)
	assert.ElementsMatch(t, []string{"package_id", "type"}, tool.InputSchema.Required)

	typeProp, ok := tool.InputSchema.Properties["type"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []string{"mysql", "mssql"}, typeProp["enum"])

	ttlProp, ok := tool.InputSchema.Properties["ttl"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 3600, ttlProp["default"])
}

func TestToolHandlerSerializesSuccess(t *testing.T) {
	d := newDispatcher(t, moduleWithHandler("m", "get_account_balance", func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		return map[string]interface{}{"balance": 12.5}, nil
	}))

	handler := d.toolHandler("get_account_balance")
	result, err := handler(context.Background(), callRequest("get_account_balance", nil))
	require.NoError(t, err)
	require.False(t, result.IsError)

	textContent, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(textContent.Text), &decoded))
	assert.Equal(t, 12.5, decoded["balance"])
}

func TestToolHandlerReturnsStructuredFailure(t *testing.T) {
	d := newDispatcher(t, moduleWithHandler("m", "cap", func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		return nil, api.NewInvocationError(api.KindUpstreamRejected, "quota exceeded")
	}))

	handler := d.toolHandler("cap")
	result, err := handler(context.Background(), callRequest("cap", map[string]interface{}{"x": 1}))
	// Capability failures are tool errors, not protocol errors.
	require.NoError(t, err)
	require.True(t, result.IsError)

	textContent, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)

	var failure invocationFailure
	require.NoError(t, json.Unmarshal([]byte(textContent.Text), &failure))
	assert.Equal(t, api.KindUpstreamRejected, failure.Kind)
	assert.Equal(t, "quota exceeded", failure.Message)
}

func TestToolHandlerUnknownCapabilityKind(t *testing.T) {
	d := newDispatcher(t)

	handler := d.toolHandler("ghost")
	result, err := handler(context.Background(), callRequest("ghost", nil))
	require.NoError(t, err)
	require.True(t, result.IsError)

	textContent, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)

	var failure invocationFailure
	require.NoError(t, json.Unmarshal([]byte(textContent.Text), &failure))
	assert.Equal(t, api.KindUnknownCapability, failure.Kind)
}
