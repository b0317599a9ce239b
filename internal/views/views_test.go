package views

import (
	"bytes"
	"testing"
	"testing/fstest"
	"time"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadEngine(t *testing.T) *Engine {
	t.Helper()
	e := New()
	require.NoError(t, e.Load())
	return e
}

func render(t *testing.T, e *Engine, name string, data map[string]interface{}) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, e.Render(&buf, name, data))
	return buf.String()
}

func TestEngine_LoadsAllPages(t *testing.T) {
	t.Parallel()
	e := loadEngine(t)

	for _, name := range []string{
		"index", "login", "signup", "account", "user_edit", "about", "comments",
		"messages", "message", "create", "courses", "create_course",
		"posts", "create_post", "post_edit", "404", "500",
	} {
		assert.True(t, e.Has(name), name)
	}
	assert.False(t, e.Has("base"), "layout is not a page")
}

func TestEngine_RendersLayoutAndFlashes(t *testing.T) {
	t.Parallel()
	e := loadEngine(t)

	out := render(t, e, "login", map[string]interface{}{
		"Flashes": []string{"Username is required!"},
	})

	assert.Contains(t, out, "<title>Log in | Quill</title>")
	assert.Contains(t, out, "<li>Username is required!</li>")
	assert.Contains(t, out, `href="/signup/"`)
}

func TestEngine_EscapesContent(t *testing.T) {
	t.Parallel()
	e := loadEngine(t)

	out := render(t, e, "posts", map[string]interface{}{
		"Posts": []models.Post{{ID: 1, Title: "<script>x</script>", Content: "c", CreatedAt: time.Now()}},
	})

	assert.NotContains(t, out, "<script>x</script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, `href="/posts/1/edit/"`)
}

func TestEngine_SignedInNav(t *testing.T) {
	t.Parallel()
	e := loadEngine(t)

	out := render(t, e, "index", map[string]interface{}{"Username": "alice"})
	assert.Contains(t, out, "Welcome, alice!")
	assert.Contains(t, out, `href="/logout/"`)
	assert.NotContains(t, out, `href="/login/"`)
}

func TestEngine_RenderUnknownView(t *testing.T) {
	t.Parallel()
	e := loadEngine(t)

	var buf bytes.Buffer
	assert.Error(t, e.Render(&buf, "nope", nil))
}

func TestEngine_LoadFromFS(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"templates/base.html": {Data: []byte(`{{define "base"}}[{{template "content" .}}]{{end}}`)},
		"templates/hi.html":   {Data: []byte(`{{define "content"}}hi {{.Name}}{{end}}`)},
	}
	e := NewFromFS(fsys)
	require.NoError(t, e.Load())

	var buf bytes.Buffer
	require.NoError(t, e.Render(&buf, "hi.html", map[string]string{"Name": "bob"}))
	assert.Equal(t, "[hi bob]", buf.String())
}
