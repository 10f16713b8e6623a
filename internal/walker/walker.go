// SPDX-License-Identifier: MPL-2.0

package walker

import (
	"log/slog"
	"slices"

	"github.com/shargs/shargs/internal/grammar"
	"github.com/shargs/shargs/pkg/document"
	"github.com/shargs/shargs/pkg/envvar"
)

type (
	// Result is the outcome of a successful walk.
	Result struct {
		// Path is the invoked command path, root first.
		Path []string
		// Executable is the leaf's executable as written in the document.
		Executable string
		// Env holds the accumulated variables.
		Env *envvar.Environment
	}

	// Walker encodes arguments with a fixed set of default delimiters.
	Walker struct {
		encoder *envvar.Encoder
	}

	// Option configures a Walker.
	Option func(*Walker)
)

// WithEncoder replaces the encoder, e.g. to apply configured delimiters.
func WithEncoder(enc *envvar.Encoder) Option {
	return func(w *Walker) { w.encoder = enc }
}

// New creates a Walker.
func New(opts ...Option) *Walker {
	w := &Walker{encoder: envvar.NewEncoder(envvar.DefaultDelimiters())}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Walk runs a default Walker.
func Walk(cmd *document.CommandNode, rt *document.RuntimeNode, m *grammar.Match, env *envvar.Environment) (*Result, error) {
	return New().Walk(cmd, rt, m, env)
}

// Walk descends cmd, rt and m together. At each level every declared
// argument that occurred is encoded into a copy of the inherited environment,
// overriding inherited entries of the same name. The copy is passed to the
// invoked subcommand; at the leaf it is returned with the executable.
//
// env may be nil. It is never modified.
func (w *Walker) Walk(cmd *document.CommandNode, rt *document.RuntimeNode, m *grammar.Match, env *envvar.Environment) (*Result, error) {
	if env == nil {
		env = envvar.NewEnvironment()
	}
	return w.walk([]string{cmd.Name}, cmd, rt, m, env)
}

func (w *Walker) walk(path []string, cmd *document.CommandNode, rt *document.RuntimeNode, m *grammar.Match, inherited *envvar.Environment) (*Result, error) {
	env := inherited.Clone()

	for i := range cmd.Args {
		id := cmd.Args[i].ID
		binding, ok := rt.Arg(id)
		if !ok {
			return nil, &ShapeError{Path: path, Kind: KindArgument, Name: id, Missing: "runtime"}
		}
		entry, ok := w.encoder.Encode(id, binding.Env, m.Get(id))
		if !ok {
			continue
		}
		env.Apply(entry)
		slog.Debug("argument encoded", "command", cmd.Name, "arg", id, "var", entry.Name.String())
	}

	if m != nil && m.Subcommand != nil {
		name := m.Subcommand.Name
		childCmd, ok := cmd.Subcommand(name)
		if !ok {
			return nil, &ShapeError{Path: path, Kind: KindMatch, Name: name, Missing: "grammar"}
		}
		childRT, ok := rt.Subcommand(name)
		if !ok {
			return nil, &ShapeError{Path: path, Kind: KindSubcommand, Name: name, Missing: "runtime"}
		}
		return w.walk(append(slices.Clone(path), name), childCmd, childRT, m.Subcommand, env)
	}

	if !rt.HasExecutable() {
		return nil, &MissingExecutableError{Path: path}
	}
	return &Result{Path: path, Executable: rt.Executable, Env: env}, nil
}
