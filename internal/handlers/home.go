// Package handlers wires the resolution subsystem to its HTTP routes: the
// unlocalized root redirect, the exported locale/variant pages, and the
// share card endpoints.
package handlers

import (
	"net/http"

	"github.com/pollenlabs/wayfind/pkg/cookie"
	"github.com/pollenlabs/wayfind/pkg/locale"
	"github.com/pollenlabs/wayfind/pkg/redirect"
)

// Home serves the unlocalized root route. Every hit runs the redirect
// orchestrator: resolve the visitor's locale, then answer with a replacing
// redirect to the locale-prefixed path.
type Home struct {
	orch    *redirect.Orchestrator
	cookies *cookie.Manager
}

// NewHome creates the root-route handler.
func NewHome(orch *redirect.Orchestrator, cookies *cookie.Manager) *Home {
	return &Home{orch: orch, cookies: cookies}
}

// ServeHTTP resolves the locale and redirects. 303 See Other carries the
// replacing semantics: the unlocalized root is not left behind as a
// cacheable or history-worthy entry.
func (h *Home) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	prefs := locale.NewCookiePreferences(h.cookies, w, r)

	act := redirect.Activation{
		URL:    r.URL.String(),
		Path:   r.URL.Path,
		Signal: r.Header.Get("Accept-Language"),
	}

	var target string
	nav := redirect.NavigatorFunc(func(path string) {
		target = path
	})

	decision := h.orch.Activate(r.Context(), act, prefs, nav)

	if target == "" {
		// Navigation was cancelled: the client went away mid-delay.
		return
	}

	// Persist the inferred choice so the next visit skips negotiation.
	// An existing valid preference is left untouched.
	if decision.Source != locale.SourcePreference {
		_ = prefs.Set(r.Context(), decision.Code)
	}

	http.Redirect(w, r, target, http.StatusSeeOther)
}
