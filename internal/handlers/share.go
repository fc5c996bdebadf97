package handlers

import (
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/pollenlabs/wayfind/pkg/sharecard"
)

// shareShell is the placeholder served to humans while the actual artifact
// is produced asynchronously by the rendering service. Crawlers only read
// the head tags.
var shareShell = template.Must(template.New("share").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Meta.Title}}</title>
<meta name="description" content="{{.Meta.Description}}">
<meta property="og:title" content="{{.Meta.Title}}">
<meta property="og:description" content="{{.Meta.Description}}">
<meta property="og:type" content="{{.Meta.OpenGraph.Type}}">
{{range .Meta.OpenGraph.Images}}<meta property="og:image" content="{{.}}">
{{end}}<meta name="twitter:card" content="{{.Meta.Twitter.Card}}">
{{range .Meta.Twitter.Images}}<meta name="twitter:image" content="{{.}}">
{{end}}</head>
<body>
<main>
<h1>{{.Meta.Title}}</h1>
<p>Loading your result&hellip;</p>
</main>
</body>
</html>
`))

// Share serves the human-facing share page and the image redirect endpoint.
type Share struct {
	resolver  *sharecard.Resolver
	imageBase string
	log       *slog.Logger
}

// NewShare creates the share handlers. imageBase is where the external
// rendering service publishes generated images, e.g. a CDN origin.
func NewShare(resolver *sharecard.Resolver, imageBase string, log *slog.Logger) *Share {
	return &Share{resolver: resolver, imageBase: imageBase, log: log}
}

// Page serves GET /share/{id}: a minimal loading shell whose head carries
// the resolved preview metadata. Always 200: unknown IDs get fallback
// metadata, never an error page, so stale links still unfurl.
func (h *Share) Page(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	meta := h.resolver.ResolveMetadata(r.Context(), id)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := shareShell.Execute(w, struct {
		Meta sharecard.Metadata
	}{Meta: meta}); err != nil {
		h.log.ErrorContext(r.Context(), "share shell render failed",
			slog.String("share_id", id),
			slog.String("error", err.Error()))
	}
}

// Image serves GET /api/share/{id}/image: a 308 Permanent Redirect to the
// generated image asset. The image itself is immutable once generated, so
// the permanent status is part of the wire contract and callers may cache
// the redirect.
func (h *Share) Image(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	target := h.imageBase + "/" + url.PathEscape(id) + ".png"
	http.Redirect(w, r, target, http.StatusPermanentRedirect)
}
