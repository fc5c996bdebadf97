package handlers_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pollenlabs/wayfind/internal/handlers"
	"github.com/pollenlabs/wayfind/pkg/cookie"
	"github.com/pollenlabs/wayfind/pkg/locale"
	"github.com/pollenlabs/wayfind/pkg/redirect"
	"github.com/pollenlabs/wayfind/pkg/routes"
	"github.com/pollenlabs/wayfind/pkg/sharecard"
)

// stubRecords serves share records from memory.
type stubRecords map[string]sharecard.Record

func (s stubRecords) Record(_ context.Context, id string) (sharecard.Record, error) {
	rec, ok := s[id]
	if !ok {
		return sharecard.Record{}, sharecard.ErrNotFound
	}
	return rec, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	set := locale.MustSet("en", "es")

	pages := fstest.MapFS{
		"en/index.html":   {Data: []byte("<h1>english landing</h1>")},
		"es/index.html":   {Data: []byte("<h1>aterrizaje</h1>")},
		"en/a/index.html": {Data: []byte("<h1>english variant a</h1>")},
		"es/a/index.html": {Data: []byte("<h1>variante a</h1>")},
		"en/b/index.html": {Data: []byte("<h1>english variant b</h1>")},
		"es/b/index.html": {Data: []byte("<h1>variante b</h1>")},
	}

	resolver := sharecard.NewResolver(stubRecords{
		"card-1": {ID: "card-1", Title: "A result", Caption: "worth sharing"},
	}, sharecard.WithSiteName("Acme"))

	return handlers.NewRouter(handlers.Deps{
		Orchestrator: redirect.New(set, redirect.WithDelay(time.Millisecond)),
		Cookies:      cookie.New(),
		Table:        routes.NewTable(set, "A", "B"),
		Pages:        pages,
		Resolver:     resolver,
		ImageBase:    "https://cdn.example.com/share",
	})
}

func TestRoot_RedirectsToResolvedLocale(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Accept-Language", "es-AR")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code, "replacing redirect")
	assert.Equal(t, "/es", w.Header().Get("Location"))

	// The inferred choice is persisted for the next visit.
	var found bool
	for _, c := range w.Result().Cookies() {
		if c.Name == locale.PreferenceCookieName {
			found = true
			assert.Equal(t, "es", c.Value)
		}
	}
	assert.True(t, found, "locale preference cookie set after signal-based decision")
}

func TestRoot_PreferenceWinsOverSignal(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Accept-Language", "en-US")
	r.AddCookie(&http.Cookie{Name: locale.PreferenceCookieName, Value: "es"})
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/es", w.Header().Get("Location"))

	for _, c := range w.Result().Cookies() {
		assert.NotEqual(t, locale.PreferenceCookieName, c.Name,
			"an existing valid preference is not rewritten")
	}
}

func TestRoot_UnmatchedSignalFallsToDefault(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Accept-Language", "de-DE")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/en", w.Header().Get("Location"))
}

func TestPages(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
		wantLang   string
	}{
		{"locale landing", "/es", http.StatusOK, "aterrizaje", "es"},
		{"locale landing uppercase", "/ES", http.StatusOK, "aterrizaje", "es"},
		{"variant page", "/en/a", http.StatusOK, "english variant a", "en"},
		{"variant slug is case-insensitive", "/en/B", http.StatusOK, "english variant b", "en"},
		{"unsupported locale", "/fr", http.StatusNotFound, "", ""},
		{"unknown variant", "/en/z", http.StatusNotFound, "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))

			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.wantBody != "" {
				body, _ := io.ReadAll(w.Result().Body)
				assert.Contains(t, string(body), tc.wantBody)
				assert.Equal(t, tc.wantLang, w.Header().Get("Content-Language"))
			}
		})
	}
}

func TestSharePage(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	t.Run("known id carries preview metadata", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/share/card-1", nil))

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `property="og:image" content="/api/share/card-1/image"`)
		assert.Contains(t, body, `name="twitter:card" content="summary_large_image"`)
		assert.Contains(t, body, "A result")
	})

	t.Run("unknown id still renders with fallback metadata", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/share/unknown-id-123", nil))

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.NotContains(t, body, "og:image", "fallback metadata has no image reference")
		assert.Contains(t, body, "Acme")
	})
}

func TestShareImage_PermanentRedirect(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/share/card-1/image", nil))

	assert.Equal(t, http.StatusPermanentRedirect, w.Code,
		"the 308 status is part of the wire contract")
	assert.Equal(t, "https://cdn.example.com/share/card-1.png", w.Header().Get("Location"))
}
