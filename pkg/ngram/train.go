package ngram

import (
	"fmt"
	"math"

	"github.com/purgo-project/purgo-detector/pkg/observability/logging"
)

// Sample is one labeled training row.
type Sample struct {
	Text  string
	Label int // 0 neutral, 1 abusive
}

// TrainOptions control model fitting.
type TrainOptions struct {
	// NgramSize is the maximum word-n-gram length (default 2).
	NgramSize int
	// MinCount drops n-grams seen fewer times than this across both
	// classes (default 1, keep everything).
	MinCount int
}

// Train fits a log-odds n-gram model with add-one smoothing over the
// labeled samples. Samples with empty text are skipped.
func Train(samples []Sample, opts TrainOptions) (*Model, error) {
	if opts.NgramSize < 1 {
		opts.NgramSize = 2
	}
	if opts.MinCount < 1 {
		opts.MinCount = 1
	}

	abusiveCounts := make(map[string]int)
	neutralCounts := make(map[string]int)
	var abusiveDocs, neutralDocs int
	var abusiveTotal, neutralTotal int

	for _, s := range samples {
		grams := Ngrams(s.Text, opts.NgramSize)
		if len(grams) == 0 {
			continue
		}
		switch s.Label {
		case 1:
			abusiveDocs++
			for _, g := range grams {
				abusiveCounts[g]++
				abusiveTotal++
			}
		case 0:
			neutralDocs++
			for _, g := range grams {
				neutralCounts[g]++
				neutralTotal++
			}
		default:
			return nil, fmt.Errorf("ngram: label must be 0 or 1, got %d", s.Label)
		}
	}

	if abusiveDocs == 0 || neutralDocs == 0 {
		return nil, fmt.Errorf("ngram: training needs samples of both classes (abusive=%d, neutral=%d)", abusiveDocs, neutralDocs)
	}

	vocab := make(map[string]struct{}, len(abusiveCounts)+len(neutralCounts))
	for g := range abusiveCounts {
		vocab[g] = struct{}{}
	}
	for g := range neutralCounts {
		vocab[g] = struct{}{}
	}
	vocabSize := float64(len(vocab))

	scores := make(map[string]float64, len(vocab))
	for g := range vocab {
		ac, nc := abusiveCounts[g], neutralCounts[g]
		if ac+nc < opts.MinCount {
			continue
		}
		pAbusive := (float64(ac) + 1) / (float64(abusiveTotal) + vocabSize)
		pNeutral := (float64(nc) + 1) / (float64(neutralTotal) + vocabSize)
		scores[g] = math.Log(pAbusive) - math.Log(pNeutral)
	}

	model := &Model{
		NgramSize: opts.NgramSize,
		Bias:      math.Log(float64(abusiveDocs)) - math.Log(float64(neutralDocs)),
		Scores:    scores,
	}
	logging.Infof("Trained n-gram model: samples=%d, vocab=%d, kept=%d", len(samples), len(vocab), len(scores))
	return model, nil
}
