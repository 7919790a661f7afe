package registry

import (
	"fmt"
	"sort"

	"hostbridge/internal/api"
	"hostbridge/pkg/logging"
)

// Entry pairs a capability descriptor with its handler and records the
// module that contributed it, for collision reports and logs.
type Entry struct {
	Capability api.Capability
	Handler    api.Handler
	Module     string
}

// DuplicateError reports two modules contributing the same capability
// name. A silent overwrite would make one module's capability
// unreachable with no symptom, so loading treats this as fatal.
type DuplicateError struct {
	Capability   string
	FirstModule  string
	SecondModule string
}

// Error implements the error interface.
func (e *DuplicateError) Error() string {
	return fmt.Sprintf("capability %q registered by both module %q and module %q", e.Capability, e.FirstModule, e.SecondModule)
}

// ContractError reports a module that violated the descriptor/handler
// pairing contract: a descriptor with no matching handler, or a
// handler with no matching descriptor.
type ContractError struct {
	Module     string
	Capability string
	Missing    string // "handler" or "descriptor"
}

// Error implements the error interface.
func (e *ContractError) Error() string {
	return fmt.Sprintf("module %q: capability %q has no %s", e.Module, e.Capability, e.Missing)
}

// Registry is the frozen dispatch table mapping capability name to its
// descriptor and handler. It is built once by Load and never mutated
// afterwards, so concurrent handlers may read it without
// synchronization.
type Registry struct {
	entries map[string]Entry
	names   []string
}

// Load folds the contributions of every module into one table.
// Modules are visited in the given order; within a module,
// capabilities are taken in declaration order. Any duplicate
// capability name across modules, and any descriptor/handler mismatch
// within a module, fails the load before the first request can be
// served.
func Load(modules ...api.Module) (*Registry, error) {
	entries := make(map[string]Entry)

	for _, mod := range modules {
		caps := mod.Capabilities()
		handlers := mod.Handlers()

		declared := make(map[string]bool, len(caps))
		for _, capability := range caps {
			declared[capability.Name] = true

			handler, ok := handlers[capability.Name]
			if !ok {
				return nil, &ContractError{Module: mod.Name(), Capability: capability.Name, Missing: "handler"}
			}
			if existing, ok := entries[capability.Name]; ok {
				return nil, &DuplicateError{
					Capability:   capability.Name,
					FirstModule:  existing.Module,
					SecondModule: mod.Name(),
				}
			}
			entries[capability.Name] = Entry{
				Capability: capability,
				Handler:    handler,
				Module:     mod.Name(),
			}
		}

		for name := range handlers {
			if !declared[name] {
				return nil, &ContractError{Module: mod.Name(), Capability: name, Missing: "descriptor"}
			}
		}

		logging.Debug("Registry", "Loaded module %s with %d capabilities", mod.Name(), len(caps))
	}

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	logging.Info("Registry", "Loaded %d capabilities from %d modules", len(entries), len(modules))

	return &Registry{entries: entries, names: names}, nil
}

// Get looks up a capability by name.
func (r *Registry) Get(name string) (Entry, bool) {
	entry, ok := r.entries[name]
	return entry, ok
}

// List returns every registered descriptor, sorted by capability name
// for stable discovery output. The returned slice is freshly allocated;
// callers may not reach the frozen table through it.
func (r *Registry) List() []api.Capability {
	out := make([]api.Capability, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.entries[name].Capability)
	}
	return out
}

// Entries returns every entry, sorted by capability name. Used by the
// CLI capability listing, which reports the contributing module next
// to each descriptor.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.entries[name])
	}
	return out
}

// Len returns the number of registered capabilities.
func (r *Registry) Len() int {
	return len(r.entries)
}
