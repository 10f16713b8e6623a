// SPDX-License-Identifier: MPL-2.0

package walker

import (
	"slices"

	"github.com/shargs/shargs/pkg/document"
)

// CheckShape verifies that the two trees are shape-isomorphic: the same
// argument ids and subcommand names at every level, compared by name.
// The first difference is returned as a *ShapeError.
func CheckShape(cmd *document.CommandNode, rt *document.RuntimeNode) error {
	return checkShape([]string{cmd.Name}, cmd, rt)
}

func checkShape(path []string, cmd *document.CommandNode, rt *document.RuntimeNode) error {
	for i := range cmd.Args {
		if _, ok := rt.Arg(cmd.Args[i].ID); !ok {
			return &ShapeError{Path: path, Kind: KindArgument, Name: cmd.Args[i].ID, Missing: "runtime"}
		}
	}
	for _, b := range rt.Args {
		if _, ok := cmd.Arg(b.ID); !ok {
			return &ShapeError{Path: path, Kind: KindArgument, Name: b.ID, Missing: "grammar"}
		}
	}

	for _, sub := range rt.Subcommands {
		if _, ok := cmd.Subcommand(sub.Name); !ok {
			return &ShapeError{Path: path, Kind: KindSubcommand, Name: sub.Name, Missing: "grammar"}
		}
	}
	for _, sub := range cmd.Subcommands {
		child, ok := rt.Subcommand(sub.Name)
		if !ok {
			return &ShapeError{Path: path, Kind: KindSubcommand, Name: sub.Name, Missing: "runtime"}
		}
		if err := checkShape(append(slices.Clone(path), sub.Name), sub, child); err != nil {
			return err
		}
	}
	return nil
}
