// Package export materializes the static site: one HTML page per
// enumerated route, rendered ahead of time so serving needs no per-request
// computation, plus a publisher that uploads the result to object storage.
package export

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"golang.org/x/sync/errgroup"

	"github.com/pollenlabs/wayfind/pkg/routes"
)

// defaultParallelism bounds concurrent page materialization.
const defaultParallelism = 8

// pageShell wraps rendered copy in a minimal HTML document. Layout and
// styling live with the design system, not here; the export only needs a
// valid, language-tagged document per route.
var pageShell = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
</head>
<body>
{{.Body}}
</body>
</html>
`))

type pageData struct {
	Lang  string
	Title string
	Body  template.HTML
}

// Exporter renders every route in a Table to an output directory.
// Content is markdown, one file per page: {locale}/index.md for the landing
// page and {locale}/{variant}.md for a variant, falling back to the
// locale's index copy when a variant has no dedicated file.
type Exporter struct {
	content     fs.FS
	md          goldmark.Markdown
	siteName    string
	parallelism int
	log         *slog.Logger
}

// Option configures the Exporter.
type Option func(*Exporter)

// WithSiteName sets the document title prefix.
func WithSiteName(name string) Option {
	return func(e *Exporter) {
		e.siteName = name
	}
}

// WithParallelism bounds how many pages render concurrently.
func WithParallelism(n int) Option {
	return func(e *Exporter) {
		if n > 0 {
			e.parallelism = n
		}
	}
}

// WithLogger sets the diagnostic sink.
func WithLogger(log *slog.Logger) Option {
	return func(e *Exporter) {
		e.log = log
	}
}

// New creates an Exporter over a markdown content tree.
func New(content fs.FS, opts ...Option) *Exporter {
	e := &Exporter{
		content:     content,
		md:          goldmark.New(),
		siteName:    "wayfind",
		parallelism: defaultParallelism,
		log:         slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export materializes every enumerated route under outDir. Each page lands
// at {outDir}/{route path}/index.html. The run is all-or-nothing: any page
// failure aborts the build so a partial export is never published.
func (e *Exporter) Export(ctx context.Context, table routes.Table, outDir string) error {
	buildID := uuid.NewString()
	all := table.All()
	start := time.Now()

	e.log.InfoContext(ctx, "export started",
		slog.String("build_id", buildID),
		slog.Int("pages", len(all)),
		slog.String("out", outDir),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)

	for _, rt := range all {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := e.exportPage(rt, outDir); err != nil {
				return fmt.Errorf("export %s: %w", rt.Path, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		e.log.ErrorContext(ctx, "export failed",
			slog.String("build_id", buildID),
			slog.String("error", err.Error()))
		return err
	}

	e.log.InfoContext(ctx, "export finished",
		slog.String("build_id", buildID),
		slog.Int("pages", len(all)),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

func (e *Exporter) exportPage(rt routes.Route, outDir string) error {
	src, err := e.pageSource(rt)
	if err != nil {
		return err
	}

	var body bytes.Buffer
	if err := e.md.Convert(src, &body); err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}

	var doc bytes.Buffer
	err = pageShell.Execute(&doc, pageData{
		Lang:  rt.Locale,
		Title: e.siteName,
		Body:  template.HTML(body.String()),
	})
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	target := filepath.Join(outDir, filepath.FromSlash(rt.Path), "index.html")
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	return os.WriteFile(target, doc.Bytes(), 0o644)
}

// pageSource reads the markdown for a route. A variant without its own
// file inherits the locale's landing copy; a locale without landing copy
// is a build error.
func (e *Exporter) pageSource(rt routes.Route) ([]byte, error) {
	if rt.Variant != "" {
		// Content files are named after the path slug, not the declared
		// identifier, so the content tree mirrors the output tree.
		name := path.Join(rt.Locale, strings.ToLower(rt.Variant)+".md")
		if data, err := fs.ReadFile(e.content, name); err == nil {
			return data, nil
		}
	}

	name := path.Join(rt.Locale, "index.md")
	data, err := fs.ReadFile(e.content, name)
	if err != nil {
		return nil, fmt.Errorf("content %s: %w", name, err)
	}
	return data, nil
}
