package locale

import "context"

// Source identifies which resolution rule produced a decision.
type Source string

const (
	// SourcePreference means a valid stored preference was found.
	SourcePreference Source = "preference"
	// SourceSignal means the browser language signal matched a supported code.
	SourceSignal Source = "signal"
	// SourceDefault means neither rule matched and the set default was used.
	SourceDefault Source = "default"
)

// Decision is the outcome of a locale resolution.
// Code is always a member of the set the resolution ran against.
type Decision struct {
	// Code is the resolved locale code.
	Code string
	// Source records which rule won, for diagnostics.
	Source Source
	// PreferenceErr holds the swallowed preference-read fault, if any.
	// It never affects the decision; callers may log it.
	PreferenceErr error
}

// Resolve picks exactly one locale from set, in strict priority order:
//
//  1. A stored preference that is a member of set.
//  2. The signal, lowercased and matched by language prefix against each
//     supported code in declared set order; the first match wins.
//  3. The set default.
//
// Resolve cannot fail. A nil or faulting preference store is treated as
// holding no preference; the fault is surfaced on the Decision for the
// caller to log, never returned as an error.
func Resolve(ctx context.Context, set Set, signal string, prefs PreferenceStore) Decision {
	if set.IsZero() {
		return Decision{Source: SourceDefault}
	}

	var prefErr error
	if prefs != nil {
		stored, err := prefs.Get(ctx)
		if err == nil && stored != "" && set.Contains(stored) {
			return Decision{Code: normalizeCode(stored), Source: SourcePreference}
		}
		// Malformed or unavailable storage falls through to the signal rule.
		prefErr = err
	}

	if code, ok := matchSignal(set, signal); ok {
		return Decision{Code: code, Source: SourceSignal, PreferenceErr: prefErr}
	}

	return Decision{Code: set.Default(), Source: SourceDefault, PreferenceErr: prefErr}
}

// matchSignal matches signal candidates against the set. Supported codes
// are tried in declared order so the set controls tie-breaking; within one
// code, candidates are tried in descending quality order.
func matchSignal(set Set, signal string) (string, bool) {
	candidates := signalCandidates(signal)
	if len(candidates) == 0 {
		return "", false
	}

	for _, code := range set.codes {
		prefix := baseTag(code)
		for _, c := range candidates {
			if baseTag(c.tag) == prefix {
				return code, true
			}
		}
	}

	return "", false
}
