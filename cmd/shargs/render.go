// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/fang"

	"github.com/shargs/shargs/internal/issue"
)

// handleError is the fang error handler. Actionable errors are printed with
// their suggestions and, in verbose mode, the error chain and the catalog
// entry. Errors whose output was already written are not printed again.
func (a *app) handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Reported {
		return
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		fang.DefaultErrorHandler(w, styles, err)
		return
	}

	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, a.opts.verbose))
	if a.opts.verbose && ae.Issue != 0 {
		renderIssue(w, ae.Issue)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}

// renderIssue prints the catalog entry for id.
func renderIssue(w io.Writer, id issue.Id) {
	entry := issue.Get(id)
	if entry == nil {
		return
	}
	rendered, err := entry.Render("dark")
	if err != nil {
		slog.Warn("failed to render issue catalog entry", "issueID", id, "error", err)
		return
	}
	fmt.Fprint(w, rendered)
}
