package templates

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Embedded(t *testing.T) {
	tmpls, err := Load(FS)
	require.NoError(t, err)

	require.Contains(t, tmpls, "posts.html")
	assert.NotContains(t, tmpls, "base.html")
	assert.NotContains(t, tmpls, "partials.html")
}

func TestLoad_Dir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	write("base.html", `<html>{{template "content" .}}</html>`)
	write("partials.html", `{{define "greeting"}}hi {{.}}{{end}}`)
	write("page.html", `{{define "content"}}{{template "greeting" .}}{{end}}`)
	write("notes.txt", "ignored")

	tmpls, err := Load(os.DirFS(dir))
	require.NoError(t, err)
	require.Len(t, tmpls, 1)

	var buf bytes.Buffer
	require.NoError(t, tmpls["page.html"].Execute(&buf, "there"))
	assert.Equal(t, "<html>hi there</html>", buf.String())
}

func TestLoad_ParseError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.html"), []byte(`{{template "content" .}}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "partials.html"), []byte(``), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.html"), []byte(`{{define "content"}}{{if}}{{end}}`), 0o644))

	_, err := Load(os.DirFS(dir))
	assert.Error(t, err)
}

func TestDict(t *testing.T) {
	m, err := dict("a", 1, "b", "two")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1, "b": "two"}, m)

	_, err = dict("a")
	assert.Error(t, err)

	_, err = dict(1, 2)
	assert.Error(t, err)
}
