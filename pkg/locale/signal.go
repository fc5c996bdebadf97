package locale

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// maxSignalLength prevents DoS attacks through oversized Accept-Language headers.
const maxSignalLength = 4096

// candidate is a parsed language tag with its quality value.
type candidate struct {
	tag     string
	quality float64
}

// signalCandidates parses a raw language signal into normalized candidate
// tags ordered by descending quality. The signal may be a single tag
// ("es-AR") or a full Accept-Language header ("en-US,en;q=0.9,pl;q=0.8").
// Wildcards, empty parts, and zero-quality tags are dropped.
func signalCandidates(signal string) []candidate {
	if len(signal) > maxSignalLength {
		signal = signal[:maxSignalLength]
	}

	var tags []candidate

	for part := range strings.SplitSeq(signal, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		quality := 1.0
		langPart, qPart, hasQuality := strings.Cut(part, ";")
		langPart = strings.TrimSpace(langPart)

		if hasQuality {
			qPart = strings.TrimSpace(qPart)

			if strings.HasPrefix(qPart, "q=") {
				if q, err := strconv.ParseFloat(qPart[2:], 64); err == nil && q >= 0 && q <= 1 {
					quality = q
				}
			}
		}

		// q=0 means "not acceptable" (RFC 9110), so the tag is no candidate.
		if quality == 0 {
			continue
		}

		if langPart != "" && langPart != "*" {
			tags = append(tags, candidate{
				tag:     normalizeCode(langPart),
				quality: quality,
			})
		}
	}

	slices.SortStableFunc(tags, func(a, b candidate) int {
		return cmp.Compare(b.quality, a.quality)
	})

	return tags
}

// baseTag strips the region from a language tag ("en-us" becomes "en").
// Underscore separators are tolerated for signals like "en_US".
func baseTag(tag string) string {
	if i := strings.IndexAny(tag, "-_"); i > 0 {
		return tag[:i]
	}
	return tag
}
