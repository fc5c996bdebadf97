package locale

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/pollenlabs/wayfind/pkg/cookie"
)

// PreferenceCookieName is the cookie carrying the visitor's locale choice.
const PreferenceCookieName = "lang"

// preferenceMaxAge keeps the cookie effectively permanent; the preference
// never expires automatically, only an explicit new choice replaces it.
const preferenceMaxAge = 10 * 365 * 24 * 60 * 60

// PreferenceStore is the capability for reading and writing the visitor's
// persisted locale preference. Get returns ErrStorageUnavailable (possibly
// wrapped) when the backing facility cannot be read; callers treat any
// failure as "no preference".
type PreferenceStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, code string) error
}

// CookiePreferences stores the preference in a plain cookie scoped to the
// visitor's client. It is bound to a single request/response pair.
type CookiePreferences struct {
	manager *cookie.Manager
	w       http.ResponseWriter
	r       *http.Request
}

// NewCookiePreferences creates a PreferenceStore over the given cookie
// manager for one request lifecycle.
func NewCookiePreferences(m *cookie.Manager, w http.ResponseWriter, r *http.Request) *CookiePreferences {
	return &CookiePreferences{manager: m, w: w, r: r}
}

// Get returns the stored locale code, or "" with a nil error when no
// preference cookie exists. Any other read fault wraps
// ErrStorageUnavailable.
func (p *CookiePreferences) Get(_ context.Context) (string, error) {
	v, err := p.manager.Get(p.r, PreferenceCookieName)
	if err != nil {
		if errors.Is(err, cookie.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return v, nil
}

// Set persists the locale code for future visits.
func (p *CookiePreferences) Set(_ context.Context, code string) error {
	p.manager.Set(p.w, PreferenceCookieName, normalizeCode(code), preferenceMaxAge)
	return nil
}
