// Package ngram implements the offline word-n-gram classifier trainer.
//
// The trainer runs out-of-band: it reads labeled samples, fits a log-odds
// model, and writes a JSON artifact. The serving lexical stage does NOT
// consume this artifact; it matches against a static term list. The two
// detectors are deliberately independent.
package ngram

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Model is a binary log-odds n-gram classifier. Scores holds per-n-gram
// log-odds weights (abusive-positive); Bias is the class prior log-odds.
type Model struct {
	NgramSize int                `json:"ngram_size"`
	Bias      float64            `json:"bias"`
	Scores    map[string]float64 `json:"scores"`
}

// Predict scores text and returns the predicted label (0 neutral, 1
// abusive) with the probability mass of the chosen class.
func (m *Model) Predict(text string) (int, float64) {
	grams := Ngrams(text, m.NgramSize)
	scores := make([]float64, 0, len(grams)+1)
	scores = append(scores, m.Bias)
	for _, g := range grams {
		if s, ok := m.Scores[g]; ok {
			scores = append(scores, s)
		}
	}

	pAbusive := 1 / (1 + math.Exp(-floats.Sum(scores)))
	if pAbusive > 0.5 {
		return 1, round4(pAbusive)
	}
	return 0, round4(1 - pAbusive)
}

// TopTerms returns the k unigrams with the highest abusive weight, for use
// as candidate entries in a curated term list.
func (m *Model) TopTerms(k int) []string {
	type weighted struct {
		gram  string
		score float64
	}
	var unigrams []weighted
	for g, s := range m.Scores {
		if !strings.Contains(g, " ") && s > 0 {
			unigrams = append(unigrams, weighted{g, s})
		}
	}
	sort.Slice(unigrams, func(i, j int) bool {
		if unigrams[i].score != unigrams[j].score {
			return unigrams[i].score > unigrams[j].score
		}
		return unigrams[i].gram < unigrams[j].gram
	})

	if k > len(unigrams) {
		k = len(unigrams)
	}
	terms := make([]string, k)
	for i := 0; i < k; i++ {
		terms[i] = unigrams[i].gram
	}
	return terms
}

// Save writes the model artifact as JSON.
func (m *Model) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal model: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write model artifact: %w", err)
	}
	return nil
}

// LoadModel reads a model artifact written by Save.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}
	m := &Model{}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("failed to parse model artifact: %w", err)
	}
	if m.Scores == nil {
		m.Scores = map[string]float64{}
	}
	return m, nil
}

// Ngrams splits text on whitespace and returns all word n-grams up to the
// given size, joined with single spaces.
func Ngrams(text string, size int) []string {
	tokens := strings.Fields(text)
	if size < 1 {
		size = 1
	}
	var grams []string
	for n := 1; n <= size; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			grams = append(grams, strings.Join(tokens[i:i+n], " "))
		}
	}
	return grams
}

func round4(p float64) float64 {
	return math.Round(p*10000) / 10000
}
