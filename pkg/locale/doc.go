// Package locale decides which locale a visitor sees.
//
// The package is built around an immutable Set of supported locale codes
// and a pure resolution function. Resolution follows a strict priority
// order: a stored visitor preference (validated against the set), then the
// browser language signal matched by language prefix in set order, then the
// set's default. The resolver is total: it always returns a member of the
// set, regardless of how malformed the inputs are.
//
// Preference storage is abstracted behind the PreferenceStore capability so
// resolution never depends on a concrete storage facility. A store that is
// unavailable or holds a stale value is treated as holding no preference.
//
// Example:
//
//	set, _ := locale.NewSet("en", "es", "pt")
//	prefs := locale.NewCookiePreferences(manager, w, r)
//	decision := locale.Resolve(ctx, set, r.Header.Get("Accept-Language"), prefs)
//	// decision.Code is always one of "en", "es", "pt"
package locale
