// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package schema

import (
	"maps"
	"slices"
	"strings"
)

// Registry maps method names to their options. It is immutable once built;
// every accessor hands out copies.
type Registry struct {
	methods map[string]Method
}

// NewRegistry builds a registry from methods. Repeated method names merge
// their option lists in argument order.
func NewRegistry(methods ...Method) *Registry {
	r := &Registry{methods: make(map[string]Method, len(methods))}
	for _, m := range methods {
		m = m.clone()
		if prev, ok := r.methods[m.Name]; ok {
			prev.Options = append(prev.Options, m.Options...)
			m = prev
		}
		r.methods[m.Name] = m
	}
	return r
}

// Len returns the number of methods.
func (r *Registry) Len() int {
	return len(r.methods)
}

// Names returns every method name in sorted order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.methods))
}

// Has reports whether name is a known method.
func (r *Registry) Has(name string) bool {
	_, ok := r.methods[name]
	return ok
}

// Lookup returns a copy of the named method.
func (r *Registry) Lookup(name string) (Method, bool) {
	m, ok := r.methods[name]
	if !ok {
		return Method{}, false
	}
	return m.clone(), true
}

// Methods returns copies of all methods in name order.
func (r *Registry) Methods() []Method {
	names := r.Names()
	out := make([]Method, len(names))
	for i, n := range names {
		out[i] = r.methods[n].clone()
	}
	return out
}

// Pair names a runtime-option propagation from an open method into its
// companion reconfiguration method.
type Pair struct {
	From string
	To   string
}

// DefaultPairs are the propagations applied when the run configuration does
// not list its own.
var DefaultPairs = []Pair{
	{From: "connection.open", To: "connection.config"},
	{From: "session.open_cursor", To: "cursor.config"},
}

// Inherit returns a new registry in which, for each pair, every option of
// From flagged Runtime is appended to To in name order. Pairs naming an
// unknown method are skipped. reg is not modified.
func Inherit(reg *Registry, pairs []Pair) *Registry {
	out := &Registry{methods: make(map[string]Method, len(reg.methods))}
	for name, m := range reg.methods {
		out.methods[name] = m.clone()
	}

	for _, p := range pairs {
		from, ok := out.methods[p.From]
		if !ok {
			continue
		}
		to, ok := out.methods[p.To]
		if !ok {
			continue
		}

		src := slices.Clone(from.Options)
		slices.SortStableFunc(src, func(a, b ConfigItem) int {
			return strings.Compare(a.Name, b.Name)
		})
		for _, item := range src {
			if item.Flags.Runtime {
				to.Options = append(to.Options, item.clone())
			}
		}
		out.methods[p.To] = to
	}
	return out
}
