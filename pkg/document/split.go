// SPDX-License-Identifier: MPL-2.0

package document

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/shargs/shargs/pkg/envvar"
)

const (
	keyName        = "name"
	keyExecutable  = "executable"
	keyArgs        = "args"
	keySubcommands = "subcommands"
	keyEnvVar      = "env_var"
)

// ErrMalformed is the sentinel error wrapped by MalformedError.
var ErrMalformed = errors.New("malformed document")

// MalformedError reports a document value that does not have the shape the
// splitter expects. Path is a JSON-path style location such as
// "subcommands[0].build.args[1].tag.env_var".
type MalformedError struct {
	Path   string
	Reason string
	Cause  error
}

// Error implements the error interface.
func (e *MalformedError) Error() string {
	loc := e.Path
	if loc == "" {
		loc = "<root>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", loc, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s: %s", loc, e.Reason)
}

// Unwrap returns both ErrMalformed and the cause, so errors.Is works for either.
func (e *MalformedError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrMalformed}
	}
	return []error{ErrMalformed, e.Cause}
}

func malformed(path string, cause error, format string, args ...any) *MalformedError {
	return &MalformedError{Path: path, Reason: fmt.Sprintf(format, args...), Cause: cause}
}

// Split partitions a generic document tree into the residual grammar object
// and the Runtime Tree.
//
// At every command object the runtime keys (executable, and env_var inside
// each argument) are removed from the grammar side and collected into the
// corresponding RuntimeNode. Every argument and every subcommand is emitted
// into both trees whether or not it carries runtime data. The input tree is
// not modified.
func Split(tree any) (map[string]any, *RuntimeNode, error) {
	obj, ok := tree.(map[string]any)
	if !ok {
		return nil, nil, malformed("", nil, "document must be an object, got %s", typeName(tree))
	}
	name, _ := obj[keyName].(string)
	return splitCommand("", name, obj)
}

func splitCommand(path, name string, obj map[string]any) (map[string]any, *RuntimeNode, error) {
	grammar := make(map[string]any, len(obj))
	rt := &RuntimeNode{Name: name}

	for _, k := range slices.Sorted(maps.Keys(obj)) {
		v := obj[k]
		switch k {
		case keyExecutable:
			s, ok := v.(string)
			if !ok {
				return nil, nil, malformed(joinPath(path, k), nil, "expected string, got %s", typeName(v))
			}
			rt.Executable = s

		case keyArgs:
			args, bindings, err := splitArgs(joinPath(path, k), v)
			if err != nil {
				return nil, nil, err
			}
			grammar[k] = args
			rt.Args = bindings

		case keySubcommands:
			subs, children, err := splitSubcommands(joinPath(path, k), v)
			if err != nil {
				return nil, nil, err
			}
			grammar[k] = subs
			rt.Subcommands = children

		default:
			grammar[k] = v
		}
	}

	if path != "" {
		if declared, ok := grammar[keyName]; ok && declared != name {
			return nil, nil, malformed(joinPath(path, keyName), nil, "name %v does not match key %q", declared, name)
		}
		grammar[keyName] = name
	}

	return grammar, rt, nil
}

func splitArgs(path string, v any) ([]any, []ArgBinding, error) {
	entries, err := singleKeyEntries(path, v)
	if err != nil {
		return nil, nil, err
	}

	grammar := make([]any, 0, len(entries))
	bindings := make([]ArgBinding, 0, len(entries))
	for i, e := range entries {
		argPath := joinPath(indexPath(path, i), e.key)

		def := make(map[string]any, len(e.value))
		var spec *envvar.Spec
		for k, fv := range e.value {
			if k != keyEnvVar {
				def[k] = fv
				continue
			}
			if fv == nil {
				continue
			}
			spec, err = envvar.ParseSpec(fv)
			if err != nil {
				return nil, nil, malformed(joinPath(argPath, keyEnvVar), err, "invalid env_var")
			}
		}

		grammar = append(grammar, map[string]any{e.key: def})
		bindings = append(bindings, ArgBinding{ID: e.key, Env: spec})
	}

	return grammar, bindings, nil
}

func splitSubcommands(path string, v any) ([]any, []*RuntimeNode, error) {
	entries, err := singleKeyEntries(path, v)
	if err != nil {
		return nil, nil, err
	}

	grammar := make([]any, 0, len(entries))
	children := make([]*RuntimeNode, 0, len(entries))
	for i, e := range entries {
		subPath := joinPath(indexPath(path, i), e.key)
		g, rt, err := splitCommand(subPath, e.key, orEmpty(e.value))
		if err != nil {
			return nil, nil, err
		}
		grammar = append(grammar, map[string]any{e.key: g})
		children = append(children, rt)
	}

	return grammar, children, nil
}

type entry struct {
	key   string
	value map[string]any
}

// singleKeyEntries reads an ordered sequence of single-key objects whose
// values are objects (or null). Keys must be unique within the sequence.
// A missing (nil) sequence is empty.
func singleKeyEntries(path string, v any) ([]entry, error) {
	if v == nil {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, malformed(path, nil, "expected array, got %s", typeName(v))
	}

	entries := make([]entry, 0, len(list))
	seen := make(map[string]int, len(list))
	for i, item := range list {
		itemPath := indexPath(path, i)
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, malformed(itemPath, nil, "expected single-key object, got %s", typeName(item))
		}
		if len(obj) != 1 {
			return nil, malformed(itemPath, nil, "expected single-key object, got %d keys", len(obj))
		}

		for key, raw := range obj {
			if key == "" {
				return nil, malformed(itemPath, nil, "empty name")
			}
			if first, dup := seen[key]; dup {
				return nil, malformed(itemPath, nil, "duplicate name %q (first at index %d)", key, first)
			}
			seen[key] = i

			var value map[string]any
			if raw != nil {
				value, ok = raw.(map[string]any)
				if !ok {
					return nil, malformed(joinPath(itemPath, key), nil, "expected object, got %s", typeName(raw))
				}
			}
			entries = append(entries, entry{key: key, value: value})
		}
	}

	return entries, nil
}

func orEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func indexPath(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	case float64, float32, int, int64, int32, uint64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
