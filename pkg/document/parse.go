// SPDX-License-Identifier: MPL-2.0

package document

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/shargs/shargs/pkg/cueutil"
)

const (
	// FormatJSON is the default document format.
	FormatJSON Format = "json"
	// FormatYAML decodes documents with gopkg.in/yaml.v3.
	FormatYAML Format = "yaml"
	// FormatTOML decodes documents with go-toml.
	FormatTOML Format = "toml"
	// FormatCUE compiles documents with CUE and unifies them with the schema.
	FormatCUE Format = "cue"

	// InlineSource names documents passed on the command line.
	InlineSource = "<inline>"
	// StdinSource is the file path that reads the document from standard input.
	StdinSource = "-"

	schemaRoot = "#Document"
)

//go:embed document_schema.cue
var schema []byte

type (
	// Format is a document encoding.
	Format string

	// InvalidFormatError is returned when a Format value is not recognized.
	InvalidFormatError struct {
		Value Format
	}

	// Document is a loaded, validated and split document.
	Document struct {
		// Source is the file path, "-" for stdin, or InlineSource.
		Source string
		// BaseDir is the directory relative executables are resolved against.
		BaseDir string
		// Grammar is the residual grammar object produced by Split.
		Grammar map[string]any
		// Command is the typed Grammar Tree.
		Command *CommandNode
		// Runtime is the Runtime Tree.
		Runtime *RuntimeNode
	}
)

// Error implements the error interface for InvalidFormatError.
func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid document format %q (valid: json, yaml, toml, cue)", e.Value)
}

// Unwrap returns ErrMalformed for errors.Is() compatibility.
func (e *InvalidFormatError) Unwrap() error { return ErrMalformed }

// IsValid returns whether the Format is one of the supported formats,
// and a list of validation errors if it is not. The zero value is valid
// and means "detect".
func (f Format) IsValid() (bool, []error) {
	switch f {
	case FormatJSON, FormatYAML, FormatTOML, FormatCUE, "":
		return true, nil
	default:
		return false, []error{&InvalidFormatError{Value: f}}
	}
}

// FormatFromPath infers the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	case ".cue":
		return FormatCUE
	default:
		return FormatJSON
	}
}

// ParseFile reads a document from path ("-" for stdin). An empty format is
// inferred from the file extension.
func ParseFile(path string, format Format) (*Document, error) {
	var (
		data []byte
		err  error
	)
	if path == StdinSource {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	if format == "" {
		format = FormatFromPath(path)
	}

	doc, err := Parse(data, format, path)
	if err != nil {
		return nil, err
	}

	if path != StdinSource {
		if abs, absErr := filepath.Abs(path); absErr == nil {
			doc.BaseDir = filepath.Dir(abs)
		}
	}
	return doc, nil
}

// Parse decodes, validates and splits a document. Source is used in error
// messages; relative executables of inline documents resolve against the
// working directory.
func Parse(data []byte, format Format, source string) (*Document, error) {
	if ok, errs := format.IsValid(); !ok {
		return nil, errs[0]
	}
	if format == "" {
		format = FormatJSON
	}
	if source == "" {
		source = InlineSource
	}

	tree, err := decodeTree(data, format, source)
	if err != nil {
		return nil, err
	}
	slog.Debug("document decoded", "source", source, "format", string(format))

	return FromTree(tree, source)
}

// FromTree splits and decodes an already validated generic tree.
func FromTree(tree any, source string) (*Document, error) {
	grammar, rt, err := Split(tree)
	if err != nil {
		return nil, err
	}

	cmd, err := DecodeCommand(grammar)
	if err != nil {
		return nil, err
	}

	cwd, _ := os.Getwd()
	return &Document{
		Source:  source,
		BaseDir: cwd,
		Grammar: grammar,
		Command: cmd,
		Runtime: rt,
	}, nil
}

func decodeTree(data []byte, format Format, source string) (any, error) {
	opts := []cueutil.Option{cueutil.WithFilename(source)}

	if format == FormatCUE {
		unified, err := cueutil.Unify(schema, data, schemaRoot, opts...)
		if err != nil {
			return nil, err
		}
		return cueutil.ToGeneric(unified, source)
	}

	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, source); err != nil {
		return nil, err
	}

	var tree any
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &tree)
	case FormatTOML:
		err = toml.Unmarshal(data, &tree)
	default:
		err = json.Unmarshal(data, &tree)
	}
	if err != nil {
		return nil, malformed("", err, "cannot decode %s document %s", format, source)
	}

	if err := cueutil.ValidateGo(schema, schemaRoot, tree, opts...); err != nil {
		return nil, err
	}
	return tree, nil
}
