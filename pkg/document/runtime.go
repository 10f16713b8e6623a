// SPDX-License-Identifier: MPL-2.0

package document

import "github.com/shargs/shargs/pkg/envvar"

type (
	// ArgBinding is the runtime side of one argument: its id and optional
	// environment specification. A nil Env derives the variable name from ID.
	ArgBinding struct {
		ID  string
		Env *envvar.Spec
	}

	// RuntimeNode mirrors one CommandNode by name and position and carries
	// the executable and per-argument environment configuration.
	RuntimeNode struct {
		Name       string
		Executable string
		// Args holds one binding per grammar argument, in declaration order.
		Args []ArgBinding
		// Subcommands holds one node per grammar subcommand, in declaration order.
		Subcommands []*RuntimeNode
	}
)

// Arg returns the binding for the argument id.
func (n *RuntimeNode) Arg(id string) (ArgBinding, bool) {
	for _, b := range n.Args {
		if b.ID == id {
			return b, true
		}
	}
	return ArgBinding{}, false
}

// Subcommand returns the child node with the given name.
func (n *RuntimeNode) Subcommand(name string) (*RuntimeNode, bool) {
	for _, sub := range n.Subcommands {
		if sub.Name == name {
			return sub, true
		}
	}
	return nil, false
}

// HasExecutable reports whether the node can be launched.
func (n *RuntimeNode) HasExecutable() bool {
	return n.Executable != ""
}
