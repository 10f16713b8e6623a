// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the shargs command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/shargs/shargs/internal/config"
	"github.com/shargs/shargs/internal/launch"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

type (
	// options holds the root flag values.
	options struct {
		json       string
		jsonFile   string
		format     string
		configFile string
		injectSelf bool
		dryRun     bool
		check      bool
		verbose    bool
	}

	// app holds the process-facing dependencies of a run so tests can
	// replace them.
	app struct {
		opts options

		stdout io.Writer
		stderr io.Writer
		// environ returns the host environment.
		environ func() []string
		// self returns the path of the running executable.
		self func() (string, error)
		// executor replaces the platform executor when set.
		executor launch.Executor
		config   config.Provider
	}
)

func newApp() *app {
	return &app{
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		environ: os.Environ,
		self:    os.Executable,
		config:  config.NewProvider(),
	}
}

func newRootCommand(a *app) *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "shargs (--json DOC | --json-file FILE) [flags] -- [ARGS...]",
		Short: "Parse command lines for shell scripts",
		Long: TitleStyle.Render("shargs") + SubtitleStyle.Render(" - Parse command lines for shell scripts") + `

shargs reads a declarative command-line document, matches the arguments
after "--" against it and launches the executable of the invoked command
with one environment variable per argument.

` + SubtitleStyle.Render("Examples:") + `
  shargs --json-file cli.json -- "$@"
  shargs --json-file cli.yaml --dry-run -- build --release
  shargs --json-file cli.cue --check`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.opts.json = v.GetString("json")
			a.opts.jsonFile = v.GetString("json_file")
			return a.run(cmd.Context(), args)
		},
	}
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	flags := rootCmd.Flags()
	// Everything after the first positional belongs to the document's grammar.
	flags.SetInterspersed(false)
	flags.StringVar(&a.opts.json, "json", "", "inline command-line document")
	flags.StringVar(&a.opts.jsonFile, "json-file", "", `command-line document file ("-" reads standard input)`)
	flags.StringVar(&a.opts.format, "format", "", "document format: json, yaml, toml or cue (default from the file extension, else json)")
	flags.BoolVar(&a.opts.injectSelf, "inject-self", false, "set SHARGS_BIN to the path of shargs itself")
	flags.BoolVar(&a.opts.dryRun, "dry-run", false, "print the resolved executable and environment instead of launching")
	flags.BoolVar(&a.opts.check, "check", false, "validate the document and exit")
	flags.BoolVarP(&a.opts.verbose, "verbose", "v", false, "enable verbose output")
	flags.StringVar(&a.opts.configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/shargs/config.cue)")
	rootCmd.MarkFlagsMutuallyExclusive("json", "json-file")

	// Flags win over SHARGS_JSON and SHARGS_JSON_FILE.
	_ = v.BindPFlag("json", flags.Lookup("json"))
	_ = v.BindPFlag("json_file", flags.Lookup("json-file"))
	_ = v.BindEnv("json", config.EnvPrefix+"_JSON")
	_ = v.BindEnv("json_file", config.EnvPrefix+"_JSON_FILE")

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the root command and exits with its status.
// This is called by main.main().
func Execute() {
	a := newApp()
	if err := fang.Execute(
		context.Background(),
		newRootCommand(a),
		fang.WithVersion(getVersionString()),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
		fang.WithErrorHandler(a.handleError),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(int(ExitFailure))
	}
}
