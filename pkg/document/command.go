// SPDX-License-Identifier: MPL-2.0

package document

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// CommandNode is one command of the Grammar Tree.
type CommandNode struct {
	Name      string   `mapstructure:"name"`
	About     string   `mapstructure:"about"`
	LongAbout string   `mapstructure:"long_about"`
	Version   string   `mapstructure:"version"`
	Aliases   []string `mapstructure:"aliases"`
	Hide      bool     `mapstructure:"hide"`

	// Args holds the argument definitions in declaration order.
	Args []ArgDef `mapstructure:"-"`
	// Subcommands holds the child commands in declaration order.
	Subcommands []*CommandNode `mapstructure:"-"`
}

// Subcommand returns the child command with the given name.
func (c *CommandNode) Subcommand(name string) (*CommandNode, bool) {
	for _, sub := range c.Subcommands {
		if sub.Name == name {
			return sub, true
		}
	}
	return nil, false
}

// Arg returns the argument definition with the given id.
func (c *CommandNode) Arg(id string) (*ArgDef, bool) {
	for i := range c.Args {
		if c.Args[i].ID == id {
			return &c.Args[i], true
		}
	}
	return nil, false
}

// Positionals returns the positional arguments in declaration order.
func (c *CommandNode) Positionals() []*ArgDef {
	var out []*ArgDef
	for i := range c.Args {
		if c.Args[i].IsPositional() {
			out = append(out, &c.Args[i])
		}
	}
	return out
}

// DecodeCommand decodes a residual grammar object (the output of Split) into
// a typed CommandNode tree. Unknown fields are rejected.
func DecodeCommand(grammar map[string]any) (*CommandNode, error) {
	name, _ := grammar[keyName].(string)
	return decodeCommand("", name, grammar)
}

func decodeCommand(path, name string, obj map[string]any) (*CommandNode, error) {
	fields := make(map[string]any, len(obj))
	for k, v := range obj {
		if k != keyArgs && k != keySubcommands {
			fields[k] = v
		}
	}

	node := &CommandNode{}
	if err := decodeStrict(fields, node); err != nil {
		return nil, malformed(path, err, "invalid command fields")
	}
	node.Name = name

	args, err := singleKeyEntries(joinPath(path, keyArgs), obj[keyArgs])
	if err != nil {
		return nil, err
	}
	flagNames := make(map[string]string)
	for i, e := range args {
		argPath := joinPath(indexPath(joinPath(path, keyArgs), i), e.key)
		def := ArgDef{}
		if e.value != nil {
			if err := decodeStrict(e.value, &def); err != nil {
				return nil, malformed(argPath, err, "invalid argument fields")
			}
		}
		def.ID = e.key
		if err := def.Validate(); err != nil {
			return nil, malformed(argPath, err, "invalid argument")
		}
		if err := claimFlagNames(flagNames, &def); err != nil {
			return nil, malformed(argPath, err, "conflicting flag name")
		}
		node.Args = append(node.Args, def)
	}
	if err := checkPositionalOrder(node); err != nil {
		return nil, malformed(joinPath(path, keyArgs), err, "invalid positional arguments")
	}

	subs, err := singleKeyEntries(joinPath(path, keySubcommands), obj[keySubcommands])
	if err != nil {
		return nil, err
	}
	for i, e := range subs {
		subPath := joinPath(indexPath(joinPath(path, keySubcommands), i), e.key)
		child, err := decodeCommand(subPath, e.key, orEmpty(e.value))
		if err != nil {
			return nil, err
		}
		node.Subcommands = append(node.Subcommands, child)
	}

	return node, nil
}

// claimFlagNames records the short and long names of a flag, failing on reuse.
// A flag without a long name is registered under its short letter, so that
// letter is claimed as a long name too.
func claimFlagNames(seen map[string]string, def *ArgDef) error {
	if def.IsPositional() {
		return nil
	}
	names := []string{"--" + def.FlagName()}
	if def.Short != "" {
		names = append(names, "-"+def.Short)
	}
	for _, n := range names {
		if owner, ok := seen[n]; ok {
			return fmt.Errorf("%s is already used by %q", n, owner)
		}
		seen[n] = def.ID
	}
	return nil
}

// checkPositionalOrder rejects optional positionals that follow an unbounded
// one: the unbounded positional consumes everything not reserved for later
// required positionals, so an optional one after it never receives a value.
func checkPositionalOrder(node *CommandNode) error {
	pos := node.Positionals()
	for i, p := range pos {
		if p.GetNumArgs().Max != Unbounded {
			continue
		}
		for _, later := range pos[i+1:] {
			if later.MinValues() == 0 {
				return fmt.Errorf("%q takes unbounded values but is followed by optional %q", p.ID, later.ID)
			}
		}
	}
	return nil
}

func decodeStrict(input map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: true,
		DecodeHook:  numArgsHook,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

var numArgsType = reflect.TypeOf(NumArgs{})

func numArgsHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != numArgsType {
		return data, nil
	}
	if na, ok := data.(NumArgs); ok {
		return na, nil
	}
	return ParseNumArgs(data)
}
