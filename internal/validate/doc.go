// Package validate guards every handler's entry point so business
// logic never sees malformed input. Each check is synchronous,
// side-effect free, and either returns the type-narrowed value
// unchanged or exactly one *ArgumentError naming the offending field
// and the violated rule. Object-shaped arguments are validated
// field-by-field by calling the checks in sequence.
package validate
