package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tinyq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listHTML = `<html><body><ul><li>1</li><li class="x">2</li><li>3</li></ul>
<script type="text/template" id="row"><b>{name}</b></script>
</body></html>`

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := newRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestQueryCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.cmd")
	defer teardown()
	//
	dir := writeFiles(t, map[string]string{"list.html": listHTML})
	page := filepath.Join(dir, "list.html")
	out, err := run(t, "query", page, "li", "--filter", "@odd")
	require.NoError(t, err)
	assert.Equal(t, "<li>1</li>\n<li>3</li>\n", out)
	//
	out, err = run(t, "query", page, "li", "--one")
	require.NoError(t, err)
	assert.Equal(t, "<li>1</li>\n", out)
	//
	out, err = run(t, "query", page, "li.x", "--tree")
	require.NoError(t, err)
	assert.Contains(t, out, "li.x (1)")
	assert.Contains(t, out, "<ul> > <li .x>")
	//
	_, err = run(t, "query", page, "li[")
	assert.True(t, errors.Is(err, tinyq.ErrSyntax))
	_, err = run(t, "query", filepath.Join(dir, "missing.html"), "li")
	assert.Error(t, err)
}

func TestExpandCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.cmd")
	defer teardown()
	//
	dir := writeFiles(t, map[string]string{"nav.txt": "ul\n\tli: hi\n"})
	out, err := run(t, "expand", filepath.Join(dir, "nav.txt"))
	require.NoError(t, err)
	assert.Equal(t, "<ul><li>hi</li></ul>\n", out)
}

func TestRenderCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.cmd")
	defer teardown()
	//
	dir := writeFiles(t, map[string]string{
		"list.tmpl": "{?items}<i>{.}</i>{/?items} {$hi} {n}",
		"data.yaml": "items: [a, b]\nn: 1234.5\n",
		"en.yaml":   "hi: Hello\n",
		"row.json":  `{"name": "A", "user": {"id": 7}}`,
		"page.html": listHTML,
	})
	out, err := run(t, "render", filepath.Join(dir, "list.tmpl"),
		"--data", filepath.Join(dir, "data.yaml"), "--lang", filepath.Join(dir, "en.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "<i>a</i><i>b</i> Hello 1,234.5", out)
	//
	out, err = run(t, "render", "#row", "--html", filepath.Join(dir, "page.html"),
		"--data", filepath.Join(dir, "row.json"))
	require.NoError(t, err)
	assert.Equal(t, "<b>A</b>", out)
	//
	_, err = run(t, "render", "#nope", "--html", filepath.Join(dir, "page.html"))
	assert.True(t, errors.Is(err, tinyq.ErrReference))
	_, err = run(t, "render", "#row", "--objects", "all")
	assert.Error(t, err)
}

func TestTraceFlag(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.cmd")
	defer teardown()
	//
	dir := writeFiles(t, map[string]string{"p.txt": "p"})
	_, err := run(t, "--trace", "verbose", "expand", filepath.Join(dir, "p.txt"))
	assert.Error(t, err)
	out, err := run(t, "--trace", "debug", "expand", filepath.Join(dir, "p.txt"))
	require.NoError(t, err)
	assert.Equal(t, "<p></p>\n", out)
}
