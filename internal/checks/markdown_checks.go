package checks

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// markdownTags maps the --tag names accepted by CountMarkdownTags to goldmark
// node kinds.
var markdownTags = map[string]ast.NodeKind{
	"heading":           ast.KindHeading,
	"paragraph":         ast.KindParagraph,
	"code_block":        ast.KindCodeBlock,
	"fenced_code_block": ast.KindFencedCodeBlock,
	"list":              ast.KindList,
	"list_item":         ast.KindListItem,
	"link":              ast.KindLink,
	"image":             ast.KindImage,
	"emphasis":          ast.KindEmphasis,
	"blockquote":        ast.KindBlockquote,
}

// countNodes parses markdown source and counts the nodes of the given kind.
func countNodes(source []byte, kind ast.NodeKind) int {
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	count := 0
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && n.Kind() == kind {
			count++
		}
		return ast.WalkContinue, nil
	})
	return count
}

// countFileParagraphs counts the markdown paragraphs in --file. Headings,
// code blocks and tight list items are not paragraphs.
type countFileParagraphs struct {
	opts Options
}

func (c *countFileParagraphs) Name() string { return "CountFileParagraphs" }

func (c *countFileParagraphs) Run(ctx context.Context, args []string) (Result, error) {
	var (
		fa fileArgs
		ca countArgs
	)

	fs := newFlagSet(c.Name())
	fa.register(fs)
	ca.register(fs)

	if err := parseArgs(fs, args, "file", "count"); err != nil {
		return Result{}, err
	}
	if err := ca.validate(); err != nil {
		return Result{}, err
	}

	content, failure, err := readTarget(c.opts, &fa)
	if err != nil || failure != nil {
		return derefResult(failure), err
	}

	return ca.result(countNodes(content, ast.KindParagraph), "paragraph(s)", displayPath(&fa)), nil
}

// countMarkdownTags counts markdown elements of type --tag in --file.
type countMarkdownTags struct {
	opts Options
}

func (c *countMarkdownTags) Name() string { return "CountMarkdownTags" }

func (c *countMarkdownTags) Run(ctx context.Context, args []string) (Result, error) {
	var (
		fa  fileArgs
		ca  countArgs
		tag string
	)

	fs := newFlagSet(c.Name())
	fa.register(fs)
	ca.register(fs)
	fs.StringVar(&tag, "tag", "", "markdown element to count")

	if err := parseArgs(fs, args, "file", "tag", "count"); err != nil {
		return Result{}, err
	}
	if err := ca.validate(); err != nil {
		return Result{}, err
	}

	kind, ok := markdownTags[strings.ToLower(tag)]
	if !ok {
		return Result{}, fmt.Errorf("%w: unknown --tag %q, expected one of %s", ErrInvalidArguments, tag, strings.Join(markdownTagNames(), ", "))
	}

	content, failure, err := readTarget(c.opts, &fa)
	if err != nil || failure != nil {
		return derefResult(failure), err
	}

	return ca.result(countNodes(content, kind), tag+" tag(s)", displayPath(&fa)), nil
}

func markdownTagNames() []string {
	names := make([]string, 0, len(markdownTags))
	for name := range markdownTags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
