package checks

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reflection = "# Reflection\n\n" +
	"This is the first paragraph of my reflection.\n\n" +
	"This is the second paragraph, with a [link](https://example.com).\n\n" +
	"## Code\n\n" +
	"```go\nfmt.Println(\"hi\")\n```\n\n" +
	"- one\n- two\n"

func newWritingRepo(t *testing.T) *Registry {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "writing"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "writing", "reflection.md"), []byte(reflection), 0644))
	return NewDefaultRegistry(Options{RootDir: root})
}

func TestCountNodes(t *testing.T) {
	tests := []struct {
		tag  string
		want int
	}{
		{tag: "heading", want: 2},
		{tag: "paragraph", want: 2},
		{tag: "fenced_code_block", want: 1},
		{tag: "link", want: 1},
		{tag: "list", want: 1},
		{tag: "list_item", want: 2},
		{tag: "image", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			assert.Equal(t, tt.want, countNodes([]byte(reflection), markdownTags[tt.tag]))
		})
	}
}

func TestCountFileParagraphs(t *testing.T) {
	r := newWritingRepo(t)

	res, err := runCheck(t, r, "CountFileParagraphs", "--directory", "writing", "--file", "reflection.md", "--count", "2")
	require.NoError(t, err)
	assert.True(t, res.Passed)

	res, err = runCheck(t, r, "CountFileParagraphs", "--directory", "writing", "--file", "reflection.md", "--count", "3")
	require.NoError(t, err)
	assert.False(t, res.Passed)
	assert.Equal(t, "Found 2 paragraph(s) in writing/reflection.md, expected at least 3", res.Diagnostic)

	_, err = runCheck(t, r, "CountFileParagraphs", "--directory", "writing", "--file", "reflection.md")
	assert.True(t, errors.Is(err, ErrInvalidArguments), "--count is required")
}

func TestCountMarkdownTags(t *testing.T) {
	r := newWritingRepo(t)

	res, err := runCheck(t, r, "CountMarkdownTags", "--directory", "writing", "--file", "reflection.md", "--tag", "Heading", "--count", "2", "--exact")
	require.NoError(t, err)
	assert.True(t, res.Passed)

	res, err = runCheck(t, r, "CountMarkdownTags", "--directory", "writing", "--file", "reflection.md", "--tag", "image", "--count", "1")
	require.NoError(t, err)
	assert.False(t, res.Passed)

	_, err = runCheck(t, r, "CountMarkdownTags", "--directory", "writing", "--file", "reflection.md", "--tag", "table", "--count", "1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArguments))
	assert.Contains(t, err.Error(), "blockquote, code_block")
}
