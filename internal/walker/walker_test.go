// SPDX-License-Identifier: MPL-2.0

package walker

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/shargs/shargs/internal/grammar"
	"github.com/shargs/shargs/pkg/document"
	"github.com/shargs/shargs/pkg/envvar"
)

const walkFixture = `{
  "name": "tool",
  "executable": "/bin/tool",
  "args": [
    {"count": {"long": "count", "action": "append"}},
    {"tag": {"long": "tag", "env_var": {"name": "TAGS", "value_delimiter": "+"}}},
    {"mode": {"long": "mode", "env_var": "MODE"}},
    {"3-count": {"long": "three"}}
  ],
  "subcommands": [
    {"build": {
      "executable": "/bin/build",
      "args": [{"mode": {"long": "mode", "env_var": "MODE"}}]
    }},
    {"test": {
      "executable": "/bin/test",
      "args": [{"only": {"long": "only"}}]
    }},
    {"lint": {
      "subcommands": [{"fix": {"executable": "/bin/fix"}}]
    }},
    {"orphan": {}}
  ]
}`

func mustDocument(t *testing.T, src string) *document.Document {
	t.Helper()
	doc, err := document.Parse([]byte(src), document.FormatJSON, "")
	if err != nil {
		t.Fatalf("document.Parse() error: %v", err)
	}
	return doc
}

func mustMatch(t *testing.T, doc *document.Document, args ...string) *grammar.Match {
	t.Helper()
	m, err := grammar.Build(doc.Command).Parse(args)
	if err != nil {
		t.Fatalf("Parse(%v) error: %v", args, err)
	}
	return m
}

func TestWalk_Scenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantExe string
		wantEnv map[string]string
	}{
		{
			name:    "occurrences joined with the occurrence delimiter",
			args:    []string{"--count", "1", "--count", "2"},
			wantExe: "/bin/tool",
			wantEnv: map[string]string{"COUNT": "1,2"},
		},
		{
			name:    "set action keeps the last occurrence",
			args:    []string{"--tag", "a", "--tag", "b"},
			wantExe: "/bin/tool",
			wantEnv: map[string]string{"TAGS": "b"},
		},
		{
			name:    "identifier transliterated",
			args:    []string{"--three", "x"},
			wantExe: "/bin/tool",
			wantEnv: map[string]string{"__COUNT": "x"},
		},
		{
			name:    "no arguments no entries",
			args:    nil,
			wantExe: "/bin/tool",
			wantEnv: map[string]string{},
		},
		{
			name:    "child overrides parent",
			args:    []string{"--mode", "root", "--count", "7", "build", "--mode", "child"},
			wantExe: "/bin/build",
			wantEnv: map[string]string{"MODE": "child", "COUNT": "7"},
		},
		{
			name:    "parent entry inherited when child is silent",
			args:    []string{"--mode", "root", "build"},
			wantExe: "/bin/build",
			wantEnv: map[string]string{"MODE": "root"},
		},
		{
			name:    "descends through a level without runtime data",
			args:    []string{"lint", "fix"},
			wantExe: "/bin/fix",
			wantEnv: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc := mustDocument(t, walkFixture)
			m := mustMatch(t, doc, tt.args...)

			res, err := Walk(doc.Command, doc.Runtime, m, nil)
			if err != nil {
				t.Fatalf("Walk() error: %v", err)
			}
			if res.Executable != tt.wantExe {
				t.Errorf("Executable = %q, want %q", res.Executable, tt.wantExe)
			}
			if diff := cmp.Diff(tt.wantEnv, res.Env.Map()); diff != "" {
				t.Errorf("environment mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWalk_ValueDelimiter(t *testing.T) {
	t.Parallel()

	doc := mustDocument(t, walkFixture)
	m := &grammar.Match{
		Name:        "tool",
		Occurrences: map[string][]envvar.Occurrence{"tag": {{"a", "b"}}},
	}

	res, err := Walk(doc.Command, doc.Runtime, m, nil)
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	if got, _ := res.Env.Get("TAGS"); got != "a+b" {
		t.Errorf("TAGS = %q, want %q", got, "a+b")
	}
}

func TestWalk_SiblingsIsolated(t *testing.T) {
	t.Parallel()

	doc := mustDocument(t, walkFixture)
	base := envvar.NewEnvironment()
	base.Set("SHARGS_BIN", "/usr/bin/shargs")

	build, err := Walk(doc.Command, doc.Runtime, mustMatch(t, doc, "build", "--mode", "fast"), base)
	if err != nil {
		t.Fatalf("Walk(build) error: %v", err)
	}
	test, err := Walk(doc.Command, doc.Runtime, mustMatch(t, doc, "test", "--only", "unit"), base)
	if err != nil {
		t.Fatalf("Walk(test) error: %v", err)
	}

	wantBuild := map[string]string{"SHARGS_BIN": "/usr/bin/shargs", "MODE": "fast"}
	if diff := cmp.Diff(wantBuild, build.Env.Map()); diff != "" {
		t.Errorf("build environment (-want +got):\n%s", diff)
	}
	wantTest := map[string]string{"SHARGS_BIN": "/usr/bin/shargs", "ONLY": "unit"}
	if diff := cmp.Diff(wantTest, test.Env.Map()); diff != "" {
		t.Errorf("test environment (-want +got):\n%s", diff)
	}
	if base.Len() != 1 {
		t.Errorf("inherited environment was modified: %v", base.Map())
	}
}

func TestWalk_Path(t *testing.T) {
	t.Parallel()

	doc := mustDocument(t, walkFixture)
	res, err := Walk(doc.Command, doc.Runtime, mustMatch(t, doc, "lint", "fix"), nil)
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	if diff := cmp.Diff([]string{"tool", "lint", "fix"}, res.Path); diff != "" {
		t.Errorf("Path mismatch (-want +got):\n%s", diff)
	}
}

func TestWalk_MissingExecutable(t *testing.T) {
	t.Parallel()

	doc := mustDocument(t, walkFixture)

	for _, args := range [][]string{{"orphan"}, {"lint"}} {
		res, err := Walk(doc.Command, doc.Runtime, mustMatch(t, doc, args...), nil)
		if res != nil {
			t.Errorf("Walk(%v) returned a result: %+v", args, res)
		}
		if !errors.Is(err, ErrMissingExecutable) {
			t.Errorf("Walk(%v) error = %v, want ErrMissingExecutable", args, err)
		}
	}
}

func TestWalk_WithEncoder(t *testing.T) {
	t.Parallel()

	doc := mustDocument(t, walkFixture)
	w := New(WithEncoder(envvar.NewEncoder(envvar.Delimiters{Value: ":", Occurrence: "|"})))

	res, err := w.Walk(doc.Command, doc.Runtime, mustMatch(t, doc, "--count", "1", "--count", "2"), nil)
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	if got, _ := res.Env.Get("COUNT"); got != "1|2" {
		t.Errorf("COUNT = %q, want %q", got, "1|2")
	}
}

func TestWalk_ShapeErrors(t *testing.T) {
	t.Parallel()

	cmd := &document.CommandNode{
		Name: "tool",
		Args: []document.ArgDef{{ID: "flag", Long: "flag"}},
		Subcommands: []*document.CommandNode{
			{Name: "build"},
		},
	}

	tests := []struct {
		name string
		rt   *document.RuntimeNode
		m    *grammar.Match
		want ShapeError
	}{
		{
			name: "argument missing from runtime",
			rt:   &document.RuntimeNode{Name: "tool", Executable: "/bin/x"},
			m:    &grammar.Match{Name: "tool"},
			want: ShapeError{Path: []string{"tool"}, Kind: KindArgument, Name: "flag", Missing: "runtime"},
		},
		{
			name: "subcommand missing from runtime",
			rt: &document.RuntimeNode{
				Name: "tool",
				Args: []document.ArgBinding{{ID: "flag"}},
			},
			m:    &grammar.Match{Name: "tool", Subcommand: &grammar.Match{Name: "build"}},
			want: ShapeError{Path: []string{"tool"}, Kind: KindSubcommand, Name: "build", Missing: "runtime"},
		},
		{
			name: "matched subcommand unknown to grammar",
			rt: &document.RuntimeNode{
				Name: "tool",
				Args: []document.ArgBinding{{ID: "flag"}},
			},
			m:    &grammar.Match{Name: "tool", Subcommand: &grammar.Match{Name: "deploy"}},
			want: ShapeError{Path: []string{"tool"}, Kind: KindMatch, Name: "deploy", Missing: "grammar"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Walk(cmd, tt.rt, tt.m, nil)
			if !errors.Is(err, ErrShapeMismatch) {
				t.Fatalf("Walk() error = %v, want ErrShapeMismatch", err)
			}
			var se *ShapeError
			if !errors.As(err, &se) {
				t.Fatalf("error should be *ShapeError, got %T", err)
			}
			if diff := cmp.Diff(tt.want, *se); diff != "" {
				t.Errorf("ShapeError mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
