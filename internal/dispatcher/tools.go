package dispatcher

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"hostbridge/internal/api"
)

// buildTools converts every registered capability into an MCP server
// tool: the descriptor becomes the advertised tool schema (discovery),
// the wrapped handler routes invocation through Invoke so the error
// translation applies on every transport.
func (d *Dispatcher) buildTools() []mcpserver.ServerTool {
	capabilities := d.registry.List()
	tools := make([]mcpserver.ServerTool, 0, len(capabilities))

	for _, capability := range capabilities {
		tools = append(tools, mcpserver.ServerTool{
			Tool: mcp.Tool{
				Name:        capability.Name,
				Description: capability.Description,
				InputSchema: toInputSchema(capability.Args),
			},
			Handler: d.toolHandler(capability.Name),
		})
	}

	return tools
}

// toolHandler adapts one capability to the mcp-go handler signature.
// Failures are returned as structured tool errors, never as transport
// errors: the protocol call itself succeeded, the capability did not.
func (d *Dispatcher) toolHandler(name string) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := make(map[string]interface{})
		if req.Params.Arguments != nil {
			if argsMap, ok := req.Params.Arguments.(map[string]interface{}); ok {
				args = argsMap
			}
		}

		result, err := d.Invoke(ctx, name, args)
		if err != nil {
			return errorResult(err), nil
		}

		encoded, marshalErr := json.Marshal(result)
		if marshalErr != nil {
			return errorResult(api.NewInvocationError(api.KindInternalError, "capability %q produced an unserializable result", name)), nil
		}
		return mcp.NewToolResultText(string(encoded)), nil
	}
}

// invocationFailure is the caller-visible encoding of an invocation
// error: machine-readable kind, human-readable message, optional cause.
type invocationFailure struct {
	Kind    api.ErrorKind `json:"kind"`
	Message string        `json:"message"`
	Cause   string        `json:"cause,omitempty"`
}

func errorResult(err error) *mcp.CallToolResult {
	invErr := api.AsInvocation(err)
	if invErr == nil {
		invErr = api.NewInvocationError(api.KindInternalError, "invocation failed")
	}
	encoded, marshalErr := json.Marshal(invocationFailure{
		Kind:    invErr.Kind,
		Message: invErr.Message,
		Cause:   invErr.Cause,
	})
	if marshalErr != nil {
		return mcp.NewToolResultError(invErr.Message)
	}
	return mcp.NewToolResultError(string(encoded))
}

// toInputSchema converts a capability's argument specs into the JSON
// Schema shape MCP clients expect, including enum constraints and
// advertised defaults for optional arguments.
func toInputSchema(args []api.ArgSpec) mcp.ToolInputSchema {
	properties := make(map[string]interface{})
	required := []string{}

	for _, arg := range args {
		propSchema := map[string]interface{}{
			"type":        arg.Type,
			"description": arg.Description,
		}
		if len(arg.Enum) > 0 {
			propSchema["enum"] = arg.Enum
		}
		if arg.Default != nil {
			propSchema["default"] = arg.Default
		}

		properties[arg.Name] = propSchema

		if arg.Required {
			required = append(required, arg.Name)
		}
	}

	return mcp.ToolInputSchema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}
