package lexicon

import "strings"

// Match returns every stored term that occurs as a substring of the
// normalized text, in sorted order. Matching is intentionally permissive:
// terms embedded inside compound words count, word boundaries do not.
// Case/script handling is the normalizer's job, upstream.
func (s *Store) Match(normalizedText string) []string {
	if normalizedText == "" {
		return nil
	}
	var matched []string
	for _, term := range s.terms {
		if strings.Contains(normalizedText, term) {
			matched = append(matched, term)
		}
	}
	return matched
}

// ContainsAny reports whether any stored term occurs in the normalized
// text, stopping at the first hit. Callers that only gate on a hit can use
// this instead of Match.
func (s *Store) ContainsAny(normalizedText string) bool {
	if normalizedText == "" {
		return false
	}
	for _, term := range s.terms {
		if strings.Contains(normalizedText, term) {
			return true
		}
	}
	return false
}
