// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/shargs/shargs/internal/launch"
	"github.com/shargs/shargs/internal/walker"
	"github.com/shargs/shargs/pkg/envvar"
)

// renderDryRun prints what would be launched: the command path, the resolved
// executable and the derived variables, shell-quoted. Inherited host
// variables are left out.
func renderDryRun(w io.Writer, res *walker.Result, plan *launch.Plan) error {
	fmt.Fprintln(w, TitleStyle.Render("Dry Run"))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s %s\n", VerboseHighlightStyle.Render("Command:"), strings.Join(res.Path, " "))
	fmt.Fprintf(w, "  %s %s\n", VerboseHighlightStyle.Render("Executable:"), plan.Path)

	if res.Env.Len() == 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, SubtitleStyle.Render("  No variables derived."))
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, VerboseHighlightStyle.Render("  Environment:"))

	var quoteErr error
	res.Env.Each(func(name envvar.Name, value string) bool {
		quoted, err := syntax.Quote(value, syntax.LangBash)
		if err != nil {
			quoteErr = fmt.Errorf("quote %s: %w", name, err)
			return false
		}
		fmt.Fprintf(w, "    %s=%s\n", name, quoted)
		return true
	})
	return quoteErr
}
