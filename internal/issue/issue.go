// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

const (
	DocumentNotFoundId Id = iota + 1
	DocumentParseErrorId
	ShapeMismatchId
	ExecutableMissingId
	LaunchFailedId
	ConfigLoadFailedId
)

type (
	// Id identifies a catalog entry.
	Id int

	// MarkdownMsg is the Markdown body of an issue.
	MarkdownMsg string

	// HttpLink is a documentation URL.
	HttpLink string

	// Issue is one catalog entry.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
		extLinks []HttpLink
	}
)

// render is swapped in tests.
var render = glamour.Render

func (i *Issue) Id() Id { return i.id }

func (i *Issue) MarkdownMsg() MarkdownMsg { return i.mdMsg }

func (i *Issue) DocLinks() []HttpLink { return slices.Clone(i.docLinks) }

func (i *Issue) ExtLinks() []HttpLink { return slices.Clone(i.extLinks) }

// Render renders the Markdown body, followed by the links, with the glamour
// style at stylePath ("dark", "light", "notty", or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, links := range [][]HttpLink{i.docLinks, i.extLinks} {
			for _, link := range links {
				md.WriteString("\n- <" + string(link) + ">")
			}
		}
	}
	return render(md.String(), stylePath)
}

var issues = map[Id]*Issue{
	DocumentNotFoundId: {
		id: DocumentNotFoundId,
		mdMsg: `
# Document not found!

The command-line document could not be read.

## Things you can try:
- Check the path given to ` + "`--json-file`" + `
- Pass the document inline instead:
~~~
$ shargs --json '{"name": "tool", "executable": "./tool.sh"}' -- "$@"
~~~
- Read it from standard input with ` + "`--json-file -`",
	},
	DocumentParseErrorId: {
		id: DocumentParseErrorId,
		mdMsg: `
# Failed to parse the document!

The document has a syntax error or does not match the expected shape.

## Common issues:
- ` + "`args`" + ` and ` + "`subcommands`" + ` must be arrays of single-key objects
- ` + "`executable`" + ` must be a string
- ` + "`env_var`" + ` must be a string or an object with a ` + "`name`" + `
- Unknown field names (check for typos such as ` + "`shrot`" + `)

## Example:
~~~json
{
  "name": "tool",
  "args": [{"count": {"long": "count", "env_var": "COUNT"}}],
  "subcommands": [{"build": {"executable": "./build.sh"}}]
}
~~~

Validate without running anything:
~~~
$ shargs --json-file cli.json --check
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/tour/"},
	},
	ShapeMismatchId: {
		id: ShapeMismatchId,
		mdMsg: `
# Grammar and runtime do not match!

A command or argument exists in the grammar but has no runtime counterpart,
or the other way around. Documents split by shargs always match, so this
points to a document assembled by other means.

## Things you can try:
- Run ` + "`shargs --check`" + ` to find the first mismatch
- Declare runtime settings next to the grammar entry they belong to`,
	},
	ExecutableMissingId: {
		id: ExecutableMissingId,
		mdMsg: `
# No executable for this command!

The invoked command has no ` + "`executable`" + ` configured, so there is nothing
to launch.

## Things you can try:
- Add an ` + "`executable`" + ` to the command you invoked
- Invoke one of its subcommands instead
- Preview what would run:
~~~
$ shargs --json-file cli.json --dry-run -- build
~~~`,
	},
	LaunchFailedId: {
		id: LaunchFailedId,
		mdMsg: `
# Failed to launch the executable!

## Common causes:
- The path does not exist (relative paths resolve against the document's directory)
- The file is not executable:
~~~
$ chmod +x ./build.sh
~~~
- A script lacks a valid ` + "`#!`" + ` line
- A bare name is not on ` + "`PATH`",
	},
	ConfigLoadFailedId: {
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load the configuration!

shargs continues with its defaults.

## Things you can try:
- Check the CUE syntax of your config file
- Valid fields are ` + "`log_level`" + `, ` + "`delimiters`" + ` and ` + "`env_inherit`" + `
- Point to another file with ` + "`--config`",
	},
}

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return out
}

// Get returns the entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
