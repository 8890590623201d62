package mailer

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	fs := fstest.MapFS{
		"layouts/base.html": &fstest.MapFile{Data: []byte(`<main>{{.Content}}</main>`)},
		"list.md": &fstest.MapFile{
			Data: []byte("{{range .}}- {{escape .}}\n{{end}}"),
		},
		"broken.md":          &fstest.MapFile{Data: []byte("{{.Unclosed")},
		"layouts/broken.htm": &fstest.MapFile{Data: []byte("{{if}}")},
	}

	t.Run("escapes untrusted text", func(t *testing.T) {
		t.Parallel()

		r := NewRenderer(fs)
		res, err := r.Render("base.html", "list.md", []string{"*bold*", "<script>alert(1)</script>"})
		require.NoError(t, err)
		require.Contains(t, res.HTML, "<li>*bold*</li>")
		require.NotContains(t, res.HTML, "<script>")
		require.NotContains(t, res.HTML, "<em>")
	})

	t.Run("caches parsed templates", func(t *testing.T) {
		t.Parallel()

		r := NewRenderer(fs)
		_, err := r.Render("base.html", "list.md", []string{"a"})
		require.NoError(t, err)
		require.Len(t, r.templates, 1)
		require.Len(t, r.layouts, 1)

		_, err = r.Render("base.html", "list.md", []string{"b"})
		require.NoError(t, err)
		require.Len(t, r.templates, 1)
	})

	t.Run("missing layout", func(t *testing.T) {
		t.Parallel()

		_, err := NewRenderer(fs).Render("nope.html", "list.md", nil)
		require.ErrorIs(t, err, ErrLayoutNotFound)
	})

	t.Run("invalid template syntax", func(t *testing.T) {
		t.Parallel()

		_, err := NewRenderer(fs).Render("base.html", "broken.md", nil)
		require.ErrorIs(t, err, ErrRenderFailed)
	})

	t.Run("invalid layout syntax", func(t *testing.T) {
		t.Parallel()

		_, err := NewRenderer(fs).Render("broken.htm", "list.md", []string{"a"})
		require.ErrorIs(t, err, ErrRenderFailed)
	})
}

func TestTemplateFuncs_Escape(t *testing.T) {
	t.Parallel()

	escape := TemplateFuncs()["escape"].(func(string) string)
	require.Equal(t, `a\\b`, escape(`a\b`))
	require.Equal(t, `\*\_a\_\*`, escape(`*_a_*`))
	require.Equal(t, `\[x\]`, escape(`[x]`))
	require.Equal(t, "NROL-69", escape("NROL-69"))
}

func TestAddress(t *testing.T) {
	t.Parallel()

	require.Equal(t, "ops@example.com", Address("", "ops@example.com"))
	require.Equal(t, `"Launch Digest" <ops@example.com>`, Address("Launch Digest", "ops@example.com"))
	require.Equal(t, "=?utf-8?q?=C3=89quipe_Lancement?= <ops@example.com>", Address("Équipe Lancement", "ops@example.com"))
}
