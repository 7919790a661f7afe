package dispatcher

import (
	"context"

	"github.com/google/uuid"

	"hostbridge/internal/api"
	"hostbridge/internal/registry"
	"hostbridge/internal/validate"
	"hostbridge/pkg/logging"
)

// Dispatcher answers the two protocol operations — discovery and
// invocation — against a frozen registry. It holds no state of its own
// beyond that registry, so concurrent invocations are independent: no
// invocation can affect the visible behavior of a later, unrelated one.
type Dispatcher struct {
	registry *registry.Registry
}

// New creates a dispatcher backed by a loaded registry.
func New(reg *registry.Registry) *Dispatcher {
	return &Dispatcher{registry: reg}
}

// Capabilities implements discovery: the full list of registered
// descriptors, sorted by name. An empty registry yields an empty list,
// not an error.
func (d *Dispatcher) Capabilities() []api.Capability {
	return d.registry.List()
}

// Invoke implements invocation: look up the capability by name, run
// its handler, and translate every failure into the InvocationError
// vocabulary. The returned error is always an *api.InvocationError.
//
// Validation failures are translated before any business logic effect
// is visible; unexpected handler faults (including panics) are logged
// server-side with full detail and surfaced with a single
// non-sensitive message.
func (d *Dispatcher) Invoke(ctx context.Context, name string, args map[string]interface{}) (result interface{}, err error) {
	entry, ok := d.registry.Get(name)
	if !ok {
		return nil, api.NewInvocationError(api.KindUnknownCapability, "unknown capability %q", name)
	}

	invocationID := uuid.NewString()
	logging.Debug("Dispatcher", "Invoking %s (invocation %s)", name, invocationID)

	defer func() {
		if r := recover(); r != nil {
			logging.Error("Dispatcher", nil, "Handler for %s panicked (invocation %s): %v", name, invocationID, r)
			result = nil
			err = api.NewInvocationError(api.KindInternalError, "capability %q failed internally", name)
		}
	}()

	result, handlerErr := entry.Handler(ctx, args)
	if handlerErr == nil {
		return result, nil
	}

	if argErr := validate.AsArgument(handlerErr); argErr != nil {
		return nil, &api.InvocationError{
			Kind:    api.KindInvalidArgument,
			Message: argErr.Error(),
			Cause:   argErr.Field,
		}
	}

	if invErr := api.AsInvocation(handlerErr); invErr != nil {
		if invErr.Kind == api.KindInternalError {
			logging.Error("Dispatcher", handlerErr, "Internal error in %s (invocation %s)", name, invocationID)
		}
		return nil, invErr
	}

	// Anything else is a fault the handler failed to classify. Keep
	// the detail in the server log only.
	logging.Error("Dispatcher", handlerErr, "Unclassified error in %s (invocation %s)", name, invocationID)
	return nil, api.NewInvocationError(api.KindInternalError, "capability %q failed internally", name)
}
