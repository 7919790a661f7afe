// Package api defines the contracts shared by every layer of the
// capability server: the Capability descriptor advertised through
// discovery, the Handler signature every module implements, the Module
// interface the registry folds together, and the InvocationError
// taxonomy that crosses the dispatcher boundary.
//
// The package deliberately contains no behavior beyond error
// construction. Layers depend on these types instead of on each other,
// which keeps modules constructible from an upstream client alone and
// independently testable.
package api
