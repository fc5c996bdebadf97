// Package routes enumerates the static routes the export step must
// materialize.
//
// The table is always derived from the live locale set, never maintained by
// hand, so adding a locale to the set automatically extends the enumeration
// and pages cannot drift out of existence.
package routes

import (
	"path"
	"strings"

	"github.com/pollenlabs/wayfind/pkg/locale"
)

// Route is one statically materialized page: a locale landing page when
// Variant is empty, or one A/B variant page otherwise.
type Route struct {
	Locale  string
	Variant string
	Path    string
}

// Table enumerates the locale × variant cross product for the export step.
// It is immutable after construction and safe for concurrent use.
type Table struct {
	set      locale.Set
	variants []string
}

// NewTable builds a Table over the supported locale set and the opaque
// variant identifiers. Variants are deduplicated by their path slug,
// preserving first occurrence, so identifiers differing only in case
// cannot enumerate the same path twice. An empty variant list yields a
// locale-only table.
func NewTable(set locale.Set, variants ...string) Table {
	deduped := make([]string, 0, len(variants))
	seen := make(map[string]bool, len(variants))
	for _, v := range variants {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		slug := variantSlug(v)
		if seen[slug] {
			continue
		}
		seen[slug] = true
		deduped = append(deduped, v)
	}
	return Table{set: set, variants: deduped}
}

// Locales returns the supported locale codes in declared order.
func (t Table) Locales() []string {
	return t.set.Codes()
}

// Variants returns the variant identifiers in declared order.
func (t Table) Variants() []string {
	out := make([]string, len(t.variants))
	copy(out, t.variants)
	return out
}

// LocalePaths returns one path per supported locale, in set order.
func (t Table) LocalePaths() []string {
	codes := t.set.Codes()
	paths := make([]string, 0, len(codes))
	for _, code := range codes {
		paths = append(paths, "/"+code)
	}
	return paths
}

// VariantPaths returns the full locale × variant cross product in
// locale-major, variant-minor order. Every entry's locale is a member of
// the set and no combination appears twice.
func (t Table) VariantPaths() []Route {
	codes := t.set.Codes()
	out := make([]Route, 0, len(codes)*len(t.variants))
	for _, code := range codes {
		for _, v := range t.variants {
			out = append(out, Route{
				Locale:  code,
				Variant: v,
				Path:    path.Join("/", code, variantSlug(v)),
			})
		}
	}
	return out
}

// All returns every route the export step must produce: each locale's
// landing page followed by its variant pages.
func (t Table) All() []Route {
	codes := t.set.Codes()
	out := make([]Route, 0, len(codes)*(1+len(t.variants)))
	for _, code := range codes {
		out = append(out, Route{Locale: code, Path: "/" + code})
		for _, v := range t.variants {
			out = append(out, Route{
				Locale:  code,
				Variant: v,
				Path:    path.Join("/", code, variantSlug(v)),
			})
		}
	}
	return out
}

// variantSlug lowercases a variant identifier for use as a path segment.
func variantSlug(v string) string {
	return strings.ToLower(v)
}
