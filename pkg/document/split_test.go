// SPDX-License-Identifier: MPL-2.0

package document

import (
	"encoding/json"
	"errors"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/shargs/shargs/pkg/envvar"
)

const splitFixture = `{
  "name": "tool",
  "about": "demo",
  "executable": "/bin/root",
  "args": [
    {"verbose": {"short": "v", "action": "count"}},
    {"config": {"long": "config", "env_var": "TOOL_CONFIG"}}
  ],
  "subcommands": [
    {"build": {
      "args": [{"target": {"required": true}}],
      "subcommands": [
        {"release": {"executable": "./release.sh",
          "args": [{"tag": {"long": "tag", "action": "append",
            "env_var": {"name": "TAGS", "value_delimiter": "+"}}}]}}
      ]
    }},
    {"clean": null}
  ]
}`

func mustDecodeJSON(t *testing.T, s string) any {
	t.Helper()
	var tree any
	if err := json.Unmarshal([]byte(s), &tree); err != nil {
		t.Fatalf("invalid test JSON: %v", err)
	}
	return tree
}

// grammarPaths lists every command path reachable in a residual grammar object.
func grammarPaths(prefix string, obj map[string]any) []string {
	paths := []string{prefix}
	subs, _ := obj[keySubcommands].([]any)
	for _, s := range subs {
		for name, v := range s.(map[string]any) {
			paths = append(paths, grammarPaths(prefix+"/"+name, v.(map[string]any))...)
		}
	}
	return paths
}

func runtimePaths(prefix string, n *RuntimeNode) []string {
	paths := []string{prefix}
	for _, sub := range n.Subcommands {
		paths = append(paths, runtimePaths(prefix+"/"+sub.Name, sub)...)
	}
	return paths
}

func TestSplit_RemovesRuntimeKeys(t *testing.T) {
	t.Parallel()

	grammar, rt, err := Split(mustDecodeJSON(t, splitFixture))
	if err != nil {
		t.Fatalf("Split() error: %v", err)
	}

	if _, ok := grammar[keyExecutable]; ok {
		t.Error("grammar still contains executable")
	}
	if grammar["about"] != "demo" {
		t.Errorf("grammar lost non-runtime key about: %v", grammar["about"])
	}

	args := grammar[keyArgs].([]any)
	config := args[1].(map[string]any)["config"].(map[string]any)
	if _, ok := config[keyEnvVar]; ok {
		t.Error("grammar argument still contains env_var")
	}
	if config["long"] != "config" {
		t.Errorf("grammar argument lost long: %v", config["long"])
	}

	if rt.Executable != "/bin/root" {
		t.Errorf("root executable = %q", rt.Executable)
	}
	wantArgs := []ArgBinding{
		{ID: "verbose"},
		{ID: "config", Env: &envvar.Spec{Name: "TOOL_CONFIG"}},
	}
	if diff := cmp.Diff(wantArgs, rt.Args); diff != "" {
		t.Errorf("root runtime args mismatch (-want +got):\n%s", diff)
	}

	build, ok := rt.Subcommand("build")
	if !ok {
		t.Fatal("runtime tree has no build node")
	}
	release, ok := build.Subcommand("release")
	if !ok {
		t.Fatal("runtime tree has no build/release node")
	}
	if release.Executable != "./release.sh" {
		t.Errorf("release executable = %q", release.Executable)
	}
	tag, ok := release.Arg("tag")
	if !ok || tag.Env == nil || tag.Env.Name != "TAGS" || *tag.Env.ValueDelimiter != "+" {
		t.Errorf("release tag binding = %+v", tag)
	}
}

func TestSplit_SubcommandWithoutRuntimeDataIsKept(t *testing.T) {
	t.Parallel()

	tree := mustDecodeJSON(t, `{"name": "tool", "subcommands": [{"build": {"about": "compile"}}]}`)
	_, rt, err := Split(tree)
	if err != nil {
		t.Fatalf("Split() error: %v", err)
	}

	build, ok := rt.Subcommand("build")
	if !ok {
		t.Fatal("build runtime node missing")
	}
	if build.HasExecutable() || len(build.Args) != 0 || len(build.Subcommands) != 0 {
		t.Errorf("build runtime node should be empty, got %+v", build)
	}
}

func TestSplit_ShapeIsomorphic(t *testing.T) {
	t.Parallel()

	grammar, rt, err := Split(mustDecodeJSON(t, splitFixture))
	if err != nil {
		t.Fatalf("Split() error: %v", err)
	}

	g := grammarPaths("", grammar)
	r := runtimePaths("", rt)
	sort.Strings(g)
	sort.Strings(r)
	if diff := cmp.Diff(g, r); diff != "" {
		t.Errorf("grammar and runtime paths differ (-grammar +runtime):\n%s", diff)
	}

	want := []string{"", "/build", "/build/release", "/clean"}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("runtime paths (-want +got):\n%s", diff)
	}
}

func TestSplit_EveryArgumentBound(t *testing.T) {
	t.Parallel()

	grammar, rt, err := Split(mustDecodeJSON(t, splitFixture))
	if err != nil {
		t.Fatalf("Split() error: %v", err)
	}
	cmd, err := DecodeCommand(grammar)
	if err != nil {
		t.Fatalf("DecodeCommand() error: %v", err)
	}

	var check func(c *CommandNode, r *RuntimeNode)
	check = func(c *CommandNode, r *RuntimeNode) {
		if len(c.Args) != len(r.Args) {
			t.Errorf("%s: %d grammar args, %d runtime args", c.Name, len(c.Args), len(r.Args))
		}
		for i := range c.Args {
			if _, ok := r.Arg(c.Args[i].ID); !ok {
				t.Errorf("%s: argument %q has no runtime binding", c.Name, c.Args[i].ID)
			}
		}
		for _, sub := range c.Subcommands {
			rsub, ok := r.Subcommand(sub.Name)
			if !ok {
				t.Errorf("%s: subcommand %q missing from runtime tree", c.Name, sub.Name)
				continue
			}
			check(sub, rsub)
		}
	}
	check(cmd, rt)
}

func TestSplit_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	tree := mustDecodeJSON(t, splitFixture)
	before := mustDecodeJSON(t, splitFixture)

	if _, _, err := Split(tree); err != nil {
		t.Fatalf("Split() error: %v", err)
	}
	if diff := cmp.Diff(before, tree); diff != "" {
		t.Errorf("Split() mutated its input (-before +after):\n%s", diff)
	}
}

func TestSplit_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		doc      any
		wantPath string
	}{
		{name: "document is not an object", doc: []any{}, wantPath: ""},
		{name: "executable not a string", doc: map[string]any{"executable": 3.0}, wantPath: "executable"},
		{name: "args not an array", doc: map[string]any{"args": map[string]any{}}, wantPath: "args"},
		{
			name:     "arg entry with two keys",
			doc:      map[string]any{"args": []any{map[string]any{"a": nil, "b": nil}}},
			wantPath: "args[0]",
		},
		{
			name:     "arg entry not an object",
			doc:      map[string]any{"args": []any{"verbose"}},
			wantPath: "args[0]",
		},
		{
			name:     "arg definition not an object",
			doc:      map[string]any{"args": []any{map[string]any{"a": "x"}}},
			wantPath: "args[0].a",
		},
		{
			name: "duplicate argument",
			doc: map[string]any{"args": []any{
				map[string]any{"a": nil},
				map[string]any{"a": nil},
			}},
			wantPath: "args[1]",
		},
		{
			name:     "empty argument id",
			doc:      map[string]any{"args": []any{map[string]any{"": map[string]any{"long": "x"}}}},
			wantPath: "args[0]",
		},
		{
			name:     "empty subcommand name",
			doc:      map[string]any{"subcommands": []any{map[string]any{"": nil}}},
			wantPath: "subcommands[0]",
		},
		{
			name: "bad env_var",
			doc: map[string]any{"args": []any{
				map[string]any{"a": map[string]any{"env_var": 1.0}},
			}},
			wantPath: "args[0].a.env_var",
		},
		{
			name: "nested subcommand error",
			doc: map[string]any{"subcommands": []any{
				map[string]any{"build": map[string]any{"executable": true}},
			}},
			wantPath: "subcommands[0].build.executable",
		},
		{
			name: "duplicate subcommand",
			doc: map[string]any{"subcommands": []any{
				map[string]any{"x": nil},
				map[string]any{"x": nil},
			}},
			wantPath: "subcommands[1]",
		},
		{
			name: "subcommand name mismatch",
			doc: map[string]any{"subcommands": []any{
				map[string]any{"x": map[string]any{"name": "y"}},
			}},
			wantPath: "subcommands[0].x.name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := Split(tt.doc)
			if err == nil {
				t.Fatal("Split() succeeded, want error")
			}
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("error should wrap ErrMalformed, got %v", err)
			}
			var me *MalformedError
			if !errors.As(err, &me) {
				t.Fatalf("error should be *MalformedError, got %T", err)
			}
			if me.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", me.Path, tt.wantPath)
			}
		})
	}
}

func TestSplit_EnvVarErrorWrapsCause(t *testing.T) {
	t.Parallel()

	doc := map[string]any{"args": []any{
		map[string]any{"a": map[string]any{"env_var": "BAD=NAME"}},
	}}
	_, _, err := Split(doc)
	if !errors.Is(err, envvar.ErrInvalidSpec) {
		t.Errorf("error should wrap envvar.ErrInvalidSpec, got %v", err)
	}
}
