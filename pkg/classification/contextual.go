// Package classification wraps the pretrained contextual (KoBERT) scorer
// behind a small interface so the decision fuser never touches the native
// binding directly.
package classification

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/purgo-project/purgo-detector/kobertbinding"
	"github.com/purgo-project/purgo-detector/pkg/config"
	"github.com/purgo-project/purgo-detector/pkg/observability/logging"
)

// Labels of the binary contextual verdict.
const (
	LabelNeutral = 0
	LabelAbusive = 1
)

// ContextualVerdict is the output of the contextual stage: a binary label
// and the probability mass assigned to it, rounded to 4 decimal digits for
// reporting stability.
type ContextualVerdict struct {
	Label      int
	Confidence float64
}

// ContextualClassifier scores raw (non-normalized) text. Implementations
// must be deterministic given identical weights and input, and must be safe
// for concurrent use.
type ContextualClassifier interface {
	Classify(text string) (ContextualVerdict, error)
}

// inferenceFunc produces raw per-class logits for a text. Split out so
// tests can inject a fake scorer in place of the native binding.
type inferenceFunc func(text string) ([]float32, error)

// KoBertClassifier is the KoBERT-backed ContextualClassifier. The binding
// owns tokenization and the forward pass; this wrapper applies softmax over
// the two classes and selects the argmax class as the verdict.
type KoBertClassifier struct {
	infer inferenceFunc
}

// NewKoBertClassifier loads the pretrained weights per cfg and returns the
// classifier. A load failure is returned to the caller so startup can fail
// fast; the service must not serve without its contextual stage.
func NewKoBertClassifier(cfg config.ClassifierConfig) (*KoBertClassifier, error) {
	if err := kobertbinding.Init(cfg.ModelPath, cfg.MaxSequenceLength, cfg.UseCPU); err != nil {
		return nil, fmt.Errorf("failed to initialize contextual classifier: %w", err)
	}
	logging.Infof("Initialized KoBERT contextual classifier (model=%s, max_length=%d, use_cpu=%v)",
		cfg.ModelPath, cfg.MaxSequenceLength, cfg.UseCPU)
	return &KoBertClassifier{infer: kobertbinding.InferLogits}, nil
}

// Classify scores the raw text and returns the argmax class with its
// probability. Inference failure propagates to the caller; it is never
// converted into a neutral verdict.
func (c *KoBertClassifier) Classify(text string) (ContextualVerdict, error) {
	logits, err := c.infer(text)
	if err != nil {
		return ContextualVerdict{}, fmt.Errorf("contextual inference failed: %w", err)
	}
	if len(logits) != 2 {
		return ContextualVerdict{}, fmt.Errorf("contextual inference returned %d logits, want 2", len(logits))
	}

	probs := softmax(logits)
	label := LabelNeutral
	if probs[LabelAbusive] > probs[LabelNeutral] {
		label = LabelAbusive
	}
	return ContextualVerdict{
		Label:      label,
		Confidence: RoundConfidence(probs[label]),
	}, nil
}

// softmax converts logits to probabilities. Shifting by LogSumExp keeps the
// exponentials in range for large logits.
func softmax(logits []float32) []float64 {
	scores := make([]float64, len(logits))
	for i, l := range logits {
		scores[i] = float64(l)
	}
	lse := floats.LogSumExp(scores)
	probs := make([]float64, len(scores))
	for i, s := range scores {
		probs[i] = math.Exp(s - lse)
	}
	return probs
}

// RoundConfidence rounds a probability to 4 decimal digits.
func RoundConfidence(p float64) float64 {
	return math.Round(p*10000) / 10000
}
