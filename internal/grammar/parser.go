// SPDX-License-Identifier: MPL-2.0

package grammar

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shargs/shargs/pkg/document"
	"github.com/shargs/shargs/pkg/envvar"
)

type (
	// Parser matches argument vectors against one Grammar Tree. A fresh
	// cobra command tree is built for every Parse call, so a Parser can be
	// reused.
	Parser struct {
		root   *document.CommandNode
		out    io.Writer
		errOut io.Writer
	}

	// Option configures a Parser.
	Option func(*Parser)

	// level is the matching state of one command during a single Parse.
	level struct {
		node        *document.CommandNode
		parent      *level
		cmd         *cobra.Command
		flags       map[string]*recorder
		positionals map[string][]envvar.Occurrence
	}
)

// WithOutput sets where help and usage are written (default stdout).
func WithOutput(w io.Writer) Option {
	return func(p *Parser) { p.out = w }
}

// WithErrorOutput sets where matching errors are written (default stderr).
func WithErrorOutput(w io.Writer) Option {
	return func(p *Parser) { p.errOut = w }
}

// Build prepares a Parser for the Grammar Tree rooted at root.
func Build(root *document.CommandNode, opts ...Option) *Parser {
	p := &Parser{root: root, out: os.Stdout, errOut: os.Stderr}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse matches args (without the program name) against the grammar.
//
// It returns ErrHelpShown when help or version output was requested and a
// *MatchError when the arguments do not satisfy the grammar. In both cases
// the output has already been written.
func (p *Parser) Parse(args []string) (*Match, error) {
	var reached *level
	root := p.newLevel(p.root, nil, &reached)
	root.cmd.TraverseChildren = true
	root.cmd.CompletionOptions.DisableDefaultCmd = true
	root.cmd.SetOut(p.out)
	root.cmd.SetErr(p.errOut)
	if args == nil {
		// cobra falls back to os.Args for a nil slice
		args = []string{}
	}
	root.cmd.SetArgs(args)

	cmd, err := root.cmd.ExecuteC()
	if err != nil {
		path := p.root.Name
		if cmd != nil {
			path = cmd.CommandPath()
		}
		return nil, &MatchError{Command: path, Err: err}
	}
	if reached == nil {
		return nil, ErrHelpShown
	}

	var m *Match
	for lv := reached; lv != nil; lv = lv.parent {
		m = lv.collect(m)
	}
	slog.Debug("arguments matched", "path", strings.Join(m.Path(), " "))
	return m, nil
}

func (p *Parser) newLevel(node *document.CommandNode, parent *level, reached **level) *level {
	lv := &level{
		node:   node,
		parent: parent,
		flags:  make(map[string]*recorder),
	}

	positionals := node.Positionals()
	use := []string{node.Name}
	for _, def := range positionals {
		use = append(use, placeholder(def))
	}

	lv.cmd = &cobra.Command{
		Use:     strings.Join(use, " "),
		Short:   node.About,
		Long:    node.LongAbout,
		Version: node.Version,
		Aliases: node.Aliases,
		Hidden:  node.Hide,
		Args: func(_ *cobra.Command, args []string) error {
			assigned, err := assignPositionals(positionals, args)
			if err != nil {
				return err
			}
			lv.positionals = assigned
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := lv.checkRequired(); err != nil {
				return err
			}
			*reached = lv
			return nil
		},
	}

	fs := lv.cmd.Flags()
	fs.SortFlags = false
	for i := range node.Args {
		def := &node.Args[i]
		if def.IsPositional() {
			continue
		}
		rec := newRecorder(def)
		f := fs.VarPF(rec, def.FlagName(), def.Short, def.Help)
		f.NoOptDefVal = rec.noOptDefVal()
		f.Hidden = def.Hide
		lv.flags[def.ID] = rec
	}

	for _, sub := range node.Subcommands {
		lv.cmd.AddCommand(p.newLevel(sub, lv, reached).cmd)
	}
	return lv
}

// checkRequired verifies the required flags of this level and every
// ancestor, since flags of traversed parents are not validated by cobra.
func (lv *level) checkRequired() error {
	var missing []string
	for l := lv; l != nil; l = l.parent {
		for i := range l.node.Args {
			def := &l.node.Args[i]
			if !def.Required || def.IsPositional() {
				continue
			}
			if len(l.flags[def.ID].occurrences) == 0 {
				missing = append(missing, def.FlagName())
			}
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf(`required flag(s) "%s" not set`, strings.Join(missing, `", "`))
	}
	return nil
}

func (lv *level) collect(child *Match) *Match {
	m := &Match{
		Name:        lv.node.Name,
		Occurrences: make(map[string][]envvar.Occurrence),
		Subcommand:  child,
	}
	for id, rec := range lv.flags {
		if len(rec.occurrences) > 0 {
			m.Occurrences[id] = rec.occurrences
		}
	}
	for id, occ := range lv.positionals {
		m.Occurrences[id] = occ
	}
	return m
}
