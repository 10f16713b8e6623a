// SPDX-License-Identifier: MPL-2.0

package grammar

import (
	"fmt"
	"strings"

	"github.com/shargs/shargs/pkg/document"
	"github.com/shargs/shargs/pkg/envvar"
)

// assignPositionals distributes args over the positional definitions in
// declaration order. Each positional takes as many values as its arity allows
// while leaving enough for the minimum of the positionals after it. The values
// of one positional form a single occurrence.
func assignPositionals(defs []*document.ArgDef, args []string) (map[string][]envvar.Occurrence, error) {
	out := make(map[string][]envvar.Occurrence, len(defs))

	reserved := make([]int, len(defs)+1)
	for i := len(defs) - 1; i >= 0; i-- {
		reserved[i] = reserved[i+1] + defs[i].MinValues()
	}

	rest := args
	for i, def := range defs {
		na := def.GetNumArgs()
		take := len(rest) - reserved[i+1]
		if na.Max != document.Unbounded {
			take = min(take, na.Max)
		}
		take = max(take, 0)

		if take == 0 {
			if def.Required {
				return nil, fmt.Errorf("missing required argument %s", placeholder(def))
			}
			continue
		}
		if take < na.Min {
			return nil, fmt.Errorf("argument %s expects at least %d values, got %d", placeholder(def), na.Min, take)
		}

		var occ envvar.Occurrence
		for _, v := range rest[:take] {
			occ = append(occ, splitValue(def, v)...)
		}
		out[def.ID] = []envvar.Occurrence{occ}
		rest = rest[take:]
	}

	if len(rest) > 0 {
		return nil, fmt.Errorf("unexpected argument %q", rest[0])
	}
	return out, nil
}

// placeholder renders a positional the way it appears in the usage line.
func placeholder(def *document.ArgDef) string {
	name := def.ValueName
	if name == "" {
		name = strings.ToUpper(def.ID)
	}
	if def.GetNumArgs().Max != 1 {
		name += "..."
	}
	if def.Required {
		return "<" + name + ">"
	}
	return "[" + name + "]"
}
