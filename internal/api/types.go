package api

import (
	"context"
)

// Handler executes a single capability. The arguments are the raw,
// caller-supplied named values from the invocation; the handler is
// responsible for validating every argument before performing any
// upstream call. On success it returns the payload to serialize back to
// the caller. On failure it returns an *InvocationError (or a
// validation error that the dispatcher translates into one).
type Handler func(ctx context.Context, args map[string]interface{}) (interface{}, error)

// ArgSpec declares one named argument of a capability. The set of
// ArgSpecs forms the argument schema advertised through discovery so a
// well-behaved caller can validate client-side before invoking.
type ArgSpec struct {
	Name        string
	Type        string // "string", "number", "boolean", "array", "object"
	Required    bool
	Description string

	// Enum restricts a string argument to a fixed set of values.
	// Advertised in the schema and enforced by the handler.
	Enum []string

	// Default is advertised in the schema for optional arguments.
	Default interface{}
}

// Capability is the immutable descriptor for one externally invocable
// operation. Created by a module at load time and never mutated.
type Capability struct {
	Name        string
	Description string
	Args        []ArgSpec
}

// Module bundles a cohesive set of capabilities with their handlers.
// Modules share no mutable state and must be constructible from an
// upstream client alone, which keeps them independently testable.
//
// Contract: for every Capability a module emits, Handlers() contains
// exactly one entry under the same name.
type Module interface {
	// Name identifies the module in collision reports and logs.
	Name() string

	// Capabilities returns the descriptors this module contributes.
	Capabilities() []Capability

	// Handlers returns the handler for each declared capability,
	// keyed by capability name.
	Handlers() map[string]Handler
}
