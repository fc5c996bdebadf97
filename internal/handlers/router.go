package handlers

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pollenlabs/wayfind/internal/middleware"
	"github.com/pollenlabs/wayfind/pkg/cookie"
	"github.com/pollenlabs/wayfind/pkg/redirect"
	"github.com/pollenlabs/wayfind/pkg/routes"
	"github.com/pollenlabs/wayfind/pkg/sharecard"
)

// Deps holds everything the HTTP surface needs. All fields are required
// except Log, which defaults to a discard logger.
type Deps struct {
	Orchestrator *redirect.Orchestrator
	Cookies      *cookie.Manager
	Table        routes.Table
	Pages        fs.FS
	Resolver     *sharecard.Resolver
	ImageBase    string
	Log          *slog.Logger
}

// NewRouter assembles the site router: root redirect, exported pages, and
// share endpoints, behind request ID, recovery, and access-log middleware.
func NewRouter(d Deps) http.Handler {
	log := d.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	home := NewHome(d.Orchestrator, d.Cookies)
	pages := NewPages(d.Table, d.Pages, log)
	share := NewShare(d.Resolver, d.ImageBase, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recover(log))
	r.Use(middleware.Logging(log))

	r.Get("/", home.ServeHTTP)
	r.Get("/share/{id}", share.Page)
	r.Get("/api/share/{id}/image", share.Image)
	r.Get("/{locale}", pages.Locale)
	r.Get("/{locale}/{variant}", pages.Variant)

	return r
}
