// SPDX-License-Identifier: MPL-2.0

package envvar

import "github.com/tidwall/btree"

// Environment is an environment mapping ordered by variable name.
//
// Clone is cheap (copy-on-write), so each level of a command walk can extend
// its own copy without affecting the parent's or a sibling's view.
type Environment struct {
	vars *btree.Map[string, string]
}

// NewEnvironment returns an empty Environment.
func NewEnvironment() *Environment {
	return &Environment{vars: btree.NewMap[string, string](0)}
}

// Set assigns value to name, overriding any previous value.
func (e *Environment) Set(name Name, value string) {
	e.vars.Set(string(name), value)
}

// Apply sets an encoded entry.
func (e *Environment) Apply(entry Entry) {
	e.Set(entry.Name, entry.Value)
}

// Get returns the value of name and whether it is set.
func (e *Environment) Get(name Name) (string, bool) {
	return e.vars.Get(string(name))
}

// Len returns the number of variables.
func (e *Environment) Len() int {
	return e.vars.Len()
}

// Clone returns an independent copy.
func (e *Environment) Clone() *Environment {
	return &Environment{vars: e.vars.Copy()}
}

// Each calls fn for every variable in name order until fn returns false.
func (e *Environment) Each(fn func(name Name, value string) bool) {
	e.vars.Scan(func(k, v string) bool {
		return fn(Name(k), v)
	})
}

// Names returns the variable names in order.
func (e *Environment) Names() []Name {
	names := make([]Name, 0, e.vars.Len())
	e.Each(func(name Name, _ string) bool {
		names = append(names, name)
		return true
	})
	return names
}

// Map returns the variables as a plain map.
func (e *Environment) Map() map[string]string {
	m := make(map[string]string, e.vars.Len())
	e.vars.Scan(func(k, v string) bool {
		m[k] = v
		return true
	})
	return m
}

// Environ returns the variables as "NAME=VALUE" strings in name order.
func (e *Environment) Environ() []string {
	out := make([]string, 0, e.vars.Len())
	e.vars.Scan(func(k, v string) bool {
		out = append(out, k+"="+v)
		return true
	})
	return out
}
