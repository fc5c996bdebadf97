package handlers

import (
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pollenlabs/wayfind/pkg/routes"
)

// Pages serves the statically exported locale and variant pages from an
// fs.FS produced by the export step. There is no per-request rendering:
// a page either exists in the export or the route is a 404.
type Pages struct {
	table routes.Table
	fsys  fs.FS
	log   *slog.Logger
}

// NewPages creates the exported-page handler over the export output tree.
func NewPages(table routes.Table, fsys fs.FS, log *slog.Logger) *Pages {
	return &Pages{table: table, fsys: fsys, log: log}
}

// Locale serves GET /{locale}, the locale's landing page.
func (h *Pages) Locale(w http.ResponseWriter, r *http.Request) {
	code := strings.ToLower(chi.URLParam(r, "locale"))
	h.serve(w, r, code, path.Join(code, "index.html"))
}

// Variant serves GET /{locale}/{variant}, one A/B variant page.
func (h *Pages) Variant(w http.ResponseWriter, r *http.Request) {
	code := strings.ToLower(chi.URLParam(r, "locale"))
	variant := strings.ToLower(chi.URLParam(r, "variant"))

	if !h.knownVariant(variant) {
		http.NotFound(w, r)
		return
	}
	h.serve(w, r, code, path.Join(code, variant, "index.html"))
}

func (h *Pages) serve(w http.ResponseWriter, r *http.Request, code, name string) {
	found := false
	for _, c := range h.table.Locales() {
		if c == code {
			found = true
			break
		}
	}
	if !found {
		http.NotFound(w, r)
		return
	}

	f, err := h.fsys.Open(name)
	if err != nil {
		// Enumerated but not materialized: the export is stale.
		h.log.WarnContext(r.Context(), "exported page missing",
			slog.String("page", name),
			slog.String("error", err.Error()))
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Language", code)
	_, _ = io.Copy(w, f)
}

func (h *Pages) knownVariant(v string) bool {
	for _, known := range h.table.Variants() {
		if strings.ToLower(known) == v {
			return true
		}
	}
	return false
}
