// Package lexicon implements the lexical detection stage: an immutable,
// process-lifetime store of known abusive terms and substring matching
// against normalized text.
package lexicon

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/purgo-project/purgo-detector/pkg/observability/logging"
)

// Store holds the term set loaded at startup. It is never mutated after
// Load and is safe for concurrent readers without synchronization.
type Store struct {
	terms []string // sorted, for deterministic match order
}

// Load reads a line-delimited term file. Each line's content before the
// first comma is a candidate term; blanks after trimming are dropped and
// duplicates collapse. A missing or unreadable file is an error: the
// service must not start with an empty term set.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open term file: %w", err)
	}
	defer f.Close()

	seen := make(map[string]struct{})
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		term, _, _ := strings.Cut(scanner.Text(), ",")
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		seen[term] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read term file: %w", err)
	}

	terms := make([]string, 0, len(seen))
	for term := range seen {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	logging.Infof("Loaded %d lexical terms from %s", len(terms), path)
	return &Store{terms: terms}, nil
}

// NewStore builds a Store from an in-memory term list. Intended for tests.
func NewStore(terms []string) *Store {
	seen := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term != "" {
			seen[term] = struct{}{}
		}
	}
	deduped := make([]string, 0, len(seen))
	for term := range seen {
		deduped = append(deduped, term)
	}
	sort.Strings(deduped)
	return &Store{terms: deduped}
}

// Len returns the number of stored terms.
func (s *Store) Len() int { return len(s.terms) }
