// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/shargs/shargs/internal/config"
	"github.com/shargs/shargs/internal/grammar"
	"github.com/shargs/shargs/internal/issue"
	"github.com/shargs/shargs/internal/launch"
	"github.com/shargs/shargs/internal/walker"
	"github.com/shargs/shargs/pkg/document"
	"github.com/shargs/shargs/pkg/envvar"
)

// SelfEnvVar receives the path of shargs itself with --inject-self.
const SelfEnvVar envvar.Name = "SHARGS_BIN"

var errNoDocument = errors.New("no command-line document given")

// run loads the document, matches args against its grammar, derives the
// environment and launches the invoked command's executable.
func (a *app) run(ctx context.Context, args []string) error {
	cfg := a.loadConfig(ctx)

	doc, err := a.loadDocument()
	if err != nil {
		return err
	}
	slog.Debug("document split", "source", doc.Source, "commands", countCommands(doc.Command))

	if err := walker.CheckShape(doc.Command, doc.Runtime); err != nil {
		return walkError(err)
	}

	if a.opts.check {
		fmt.Fprintln(a.stdout, SuccessStyle.Render("✓")+" "+CmdStyle.Render(doc.Source)+" is valid")
		return nil
	}

	m, err := grammar.Build(doc.Command,
		grammar.WithOutput(a.stdout),
		grammar.WithErrorOutput(a.stderr),
	).Parse(args)
	switch {
	case errors.Is(err, grammar.ErrHelpShown):
		return nil
	case err != nil:
		return &ExitError{Code: ExitUsage, Err: err, Reported: true}
	}

	seed := envvar.NewEnvironment()
	if a.opts.injectSelf {
		self, err := a.self()
		if err != nil {
			return fmt.Errorf("failed to locate shargs executable: %w", err)
		}
		seed.Set(SelfEnvVar, self)
	}

	w := walker.New(walker.WithEncoder(envvar.NewEncoder(envvar.Delimiters{
		Value:      cfg.Delimiters.Value,
		Occurrence: cfg.Delimiters.Occurrence,
	})))
	res, err := w.Walk(doc.Command, doc.Runtime, m, seed)
	if err != nil {
		return walkError(err)
	}

	launcher := a.newLauncher(cfg, doc.BaseDir)
	plan, err := launcher.Prepare(res.Executable, res.Env)
	if err != nil {
		return launchError(err)
	}
	slog.Debug("executable resolved", "executable", res.Executable, "path", plan.Path)

	if a.opts.dryRun {
		return renderDryRun(a.stdout, res, plan)
	}

	if err := launcher.Launch(plan); err != nil {
		return launchError(err)
	}
	return nil
}

// loadConfig loads the configuration and sets up logging. Load failures are
// reported as warnings and the defaults are used.
func (a *app) loadConfig(ctx context.Context) *config.Config {
	cfg, err := a.config.Load(ctx, config.LoadOptions{ConfigFilePath: a.opts.configFile})
	if err != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, a.opts.verbose))
		cfg = config.DefaultConfig()
	}

	level := cfg.LogLevel.Level()
	if a.opts.verbose {
		level = config.LogLevelDebug.Level()
	}
	slog.SetDefault(newLogger(a.stderr, level))
	return cfg
}

func (a *app) loadDocument() (*document.Document, error) {
	format := document.Format(a.opts.format)
	if ok, errs := format.IsValid(); !ok {
		return nil, issue.NewErrorContext().
			WithOperation("parse document").
			WithSuggestion("Use one of: json, yaml, toml, cue").
			WithIssue(issue.DocumentParseErrorId).
			Wrap(errs[0]).
			BuildError()
	}

	var (
		doc *document.Document
		err error
	)
	switch {
	case a.opts.jsonFile != "" && a.opts.json != "":
		return nil, issue.NewErrorContext().
			WithOperation("load document").
			WithSuggestion("Pass either --json or --json-file, or unset " + config.EnvPrefix + "_JSON / " + config.EnvPrefix + "_JSON_FILE").
			WithIssue(issue.DocumentNotFoundId).
			Wrap(errors.New("both an inline document and a document file were given")).
			BuildError()
	case a.opts.jsonFile != "":
		doc, err = document.ParseFile(a.opts.jsonFile, format)
	case a.opts.json != "":
		doc, err = document.Parse([]byte(a.opts.json), format, document.InlineSource)
	default:
		return nil, issue.NewErrorContext().
			WithOperation("load document").
			WithSuggestions(
				"Pass the document inline with --json",
				"Pass a document file with --json-file",
			).
			WithIssue(issue.DocumentNotFoundId).
			Wrap(errNoDocument).
			BuildError()
	}
	if err == nil {
		return doc, nil
	}

	resource := a.opts.jsonFile
	if resource == "" {
		resource = document.InlineSource
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, issue.NewErrorContext().
			WithOperation("read document").
			WithResource(resource).
			WithSuggestion("Verify the file path is correct").
			WithIssue(issue.DocumentNotFoundId).
			Wrap(err).
			BuildError()
	}
	return nil, issue.NewErrorContext().
		WithOperation("parse document").
		WithResource(resource).
		WithSuggestion("Run with --check --verbose for details").
		WithIssue(issue.DocumentParseErrorId).
		Wrap(err).
		BuildError()
}

func (a *app) newLauncher(cfg *config.Config, baseDir string) *launch.Launcher {
	opts := []launch.Option{
		launch.WithBaseDir(baseDir),
		launch.WithEnviron(a.environ),
		launch.WithInherit(launch.Inherit{
			Mode:  launch.InheritMode(cfg.EnvInherit.Mode),
			Allow: cfg.EnvInherit.Allow,
			Deny:  cfg.EnvInherit.Deny,
		}),
	}
	if a.executor != nil {
		opts = append(opts, launch.WithExecutor(a.executor))
	}
	return launch.New(opts...)
}

func walkError(err error) error {
	ctx := issue.NewErrorContext().WithOperation("walk command tree")
	switch {
	case errors.Is(err, walker.ErrMissingExecutable):
		ctx.WithSuggestion(`Add an "executable" to the invoked command`).
			WithIssue(issue.ExecutableMissingId)
	case errors.Is(err, walker.ErrShapeMismatch):
		ctx.WithSuggestion("Run with --check to validate the document").
			WithIssue(issue.ShapeMismatchId)
	}
	return ctx.Wrap(err).BuildError()
}

func launchError(err error) error {
	var exitErr *launch.ExitCodeError
	if errors.As(err, &exitErr) {
		return &ExitError{Code: exitErr.Code, Err: err, Reported: true}
	}

	var le *launch.LaunchError
	resource := ""
	if errors.As(err, &le) {
		resource = le.Executable
	}
	return issue.NewErrorContext().
		WithOperation("launch executable").
		WithResource(resource).
		WithSuggestion("Check that the executable exists and is executable").
		WithSuggestion("Relative paths resolve against the document's directory").
		WithIssue(issue.LaunchFailedId).
		Wrap(err).
		BuildError()
}

func countCommands(c *document.CommandNode) int {
	n := 1
	for _, sub := range c.Subcommands {
		n += countCommands(sub)
	}
	return n
}
