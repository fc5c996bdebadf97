package locale

import (
	"fmt"
	"strings"
)

// Set is an ordered, immutable collection of supported locale codes.
// The first code is the designated default. Order matters: signal matching
// tries codes in declared order, so earlier codes win ties.
type Set struct {
	codes []string
}

// NewSet creates a Set with def as the default locale followed by the other
// codes in the given order. Codes are lowercased and trimmed. Returns an
// error on empty or duplicate codes so a misconfigured set fails at startup
// rather than at resolution time.
func NewSet(def string, others ...string) (Set, error) {
	all := append([]string{def}, others...)

	codes := make([]string, 0, len(all))
	seen := make(map[string]bool, len(all))

	for _, code := range all {
		code = normalizeCode(code)
		if code == "" {
			return Set{}, ErrEmptyCode
		}
		if seen[code] {
			return Set{}, fmt.Errorf("%w: %q", ErrDuplicateCode, code)
		}
		seen[code] = true
		codes = append(codes, code)
	}

	if len(codes) == 0 {
		return Set{}, ErrEmptySet
	}

	return Set{codes: codes}, nil
}

// MustSet is like NewSet but panics on error. Intended for package-level
// configuration values fixed at build time.
func MustSet(def string, others ...string) Set {
	s, err := NewSet(def, others...)
	if err != nil {
		panic(err)
	}
	return s
}

// Default returns the designated default locale code.
func (s Set) Default() string {
	if len(s.codes) == 0 {
		return ""
	}
	return s.codes[0]
}

// Contains reports whether code is a member of the set.
// The check is case-insensitive.
func (s Set) Contains(code string) bool {
	code = normalizeCode(code)
	for _, c := range s.codes {
		if c == code {
			return true
		}
	}
	return false
}

// Codes returns the locale codes in declared order.
// The returned slice is a copy; mutating it does not affect the set.
func (s Set) Codes() []string {
	out := make([]string, len(s.codes))
	copy(out, s.codes)
	return out
}

// Len returns the number of codes in the set.
func (s Set) Len() int {
	return len(s.codes)
}

// IsZero reports whether the set was never initialized.
func (s Set) IsZero() bool {
	return len(s.codes) == 0
}

func normalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
