package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pollenlabs/wayfind/pkg/locale"
	"github.com/pollenlabs/wayfind/pkg/routes"
)

func TestExport_MaterializesEveryRoute(t *testing.T) {
	t.Parallel()

	content := fstest.MapFS{
		"en/index.md": {Data: []byte("# Welcome\n\nEnglish landing copy.")},
		"en/a.md":     {Data: []byte("# Variant A\n\nDedicated copy.")},
		"es/index.md": {Data: []byte("# Bienvenido\n\nCopia en español.")},
	}

	table := routes.NewTable(locale.MustSet("en", "es"), "A", "B")
	outDir := t.TempDir()

	e := New(content, WithSiteName("Acme"))
	require.NoError(t, e.Export(context.Background(), table, outDir))

	for _, rt := range table.All() {
		target := filepath.Join(outDir, filepath.FromSlash(rt.Path), "index.html")
		data, err := os.ReadFile(target)
		require.NoError(t, err, "page for %s", rt.Path)
		assert.Contains(t, string(data), `<html lang="`+rt.Locale+`">`)
		assert.Contains(t, string(data), "<title>Acme</title>")
	}

	// en/a has dedicated copy; everything else inherits the landing page.
	variantA, err := os.ReadFile(filepath.Join(outDir, "en", "a", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(variantA), "Variant A")

	variantB, err := os.ReadFile(filepath.Join(outDir, "en", "b", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(variantB), "Welcome")
}

func TestExport_MissingLandingCopyFailsBuild(t *testing.T) {
	t.Parallel()

	content := fstest.MapFS{
		"en/index.md": {Data: []byte("# Welcome")},
		// es has no index.md, so its routes cannot be materialized.
	}

	table := routes.NewTable(locale.MustSet("en", "es"), "A")
	outDir := t.TempDir()

	err := New(content).Export(context.Background(), table, outDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "es/index.md")
}

func TestExport_RendersMarkdown(t *testing.T) {
	t.Parallel()

	content := fstest.MapFS{
		"en/index.md": {Data: []byte("# Heading\n\nSome **bold** text.")},
	}

	table := routes.NewTable(locale.MustSet("en"))
	outDir := t.TempDir()

	require.NoError(t, New(content).Export(context.Background(), table, outDir))

	data, err := os.ReadFile(filepath.Join(outDir, "en", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<h1>Heading</h1>")
	assert.Contains(t, string(data), "<strong>bold</strong>")
}

func TestExport_CancelledContext(t *testing.T) {
	t.Parallel()

	content := fstest.MapFS{
		"en/index.md": {Data: []byte("# Welcome")},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(content).Export(ctx, routes.NewTable(locale.MustSet("en")), t.TempDir())
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewS3Publisher_ValidatesConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  PublishConfig
	}{
		{"missing bucket", PublishConfig{AccessKey: "k", SecretKey: "s"}},
		{"missing access key", PublishConfig{Bucket: "b", SecretKey: "s"}},
		{"missing secret key", PublishConfig{Bucket: "b", AccessKey: "k"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewS3Publisher(tc.cfg, nil)
			require.ErrorIs(t, err, ErrInvalidPublishConfig)
		})
	}
}

func TestPublish_MissingDir(t *testing.T) {
	t.Parallel()

	p, err := NewS3Publisher(PublishConfig{
		Bucket:    "site",
		AccessKey: "k",
		SecretKey: "s",
	}, nil)
	require.NoError(t, err)

	err = p.Publish(context.Background(), filepath.Join(t.TempDir(), "never-exported"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "walk", "the walk failure is reported")
}

func TestContentTypeFor(t *testing.T) {
	t.Parallel()

	assert.Contains(t, contentTypeFor("en/index.html"), "text/html")
	assert.Equal(t, "image/png", contentTypeFor("share/abc.png"))
	assert.Equal(t, "application/octet-stream", contentTypeFor("build/manifest"))
}
