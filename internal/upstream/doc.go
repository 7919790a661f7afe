// Package upstream is the single normalization boundary between the
// capability server and the external hosting API. The upstream service
// returns at least six observationally distinct encodings of the same
// semantic outcomes (success, empty success, and several failure
// classes); this package collapses all of them into one convention so
// the hundreds of capability handlers can each assume a two-branch
// result instead of re-implementing ad hoc shape sniffing.
//
// Handlers receive either (data, nil) or (nil, *api.InvocationError)
// with one of the upstream error kinds. Nothing transport-level leaks
// past this package.
package upstream
