package detection

import (
	"time"

	"github.com/purgo-project/purgo-detector/pkg/classification"
	"github.com/purgo-project/purgo-detector/pkg/lexicon"
	"github.com/purgo-project/purgo-detector/pkg/normalize"
	"github.com/purgo-project/purgo-detector/pkg/observability/logging"
	"github.com/purgo-project/purgo-detector/pkg/observability/metrics"
)

// fuseState enumerates the stages of one analysis. The explicit state
// machine keeps the short-circuit contract testable on its own rather than
// buried in nested conditionals.
type fuseState int

const (
	stateStart fuseState = iota
	stateLexicalCheck
	stateShortCircuitAbusive
	stateContextualCheck
	stateFinal
)

// Fuser orchestrates the two-stage pipeline: normalize, match against the
// term store, and only when the lexical stage comes up empty, invoke the
// contextual classifier on the raw text. The lexical stage is authoritative
// and always wins when it fires.
//
// All referenced state (normalizer, term store, classifier weights) is
// immutable after construction, so a single Fuser is safe for concurrent
// requests.
type Fuser struct {
	normalizer *normalize.Normalizer
	store      *lexicon.Store
	contextual classification.ContextualClassifier
}

// NewFuser assembles the pipeline from its already-initialized stages.
func NewFuser(normalizer *normalize.Normalizer, store *lexicon.Store, contextual classification.ContextualClassifier) *Fuser {
	return &Fuser{
		normalizer: normalizer,
		store:      store,
		contextual: contextual,
	}
}

// Analyze runs text through the pipeline and returns the fused verdict.
// Errors: ErrEmptyText for blank input, *ClassifierUnavailableError when
// the contextual stage was needed but its scorer failed.
func (f *Fuser) Analyze(text string) (*AnalysisResult, error) {
	result := &AnalysisResult{
		FastText: LexicalReport{DetectedWords: []string{}},
		Result: RewriteReport{
			OriginalText:  text,
			RewrittenText: text, // passthrough, no redaction
		},
		FinalDecision: DecisionNeutral,
	}

	state := stateStart
	for state != stateFinal {
		switch state {
		case stateStart:
			if text == "" {
				metrics.RecordAnalysisRequest(metrics.OutcomeValidationError)
				return nil, ErrEmptyText
			}
			state = stateLexicalCheck

		case stateLexicalCheck:
			start := time.Now()
			matched := f.store.Match(f.normalizer.Normalize(text))
			metrics.RecordStageLatency("lexical", time.Since(start).Seconds())

			if len(matched) > 0 {
				result.FastText.IsBad = 1
				result.FastText.DetectedWords = matched
				state = stateShortCircuitAbusive
			} else {
				state = stateContextualCheck
			}

		case stateShortCircuitAbusive:
			// Lexical certainty wins; the contextual fields stay null and
			// the expensive model call is skipped.
			result.FinalDecision = DecisionAbusive
			logging.Debugf("Lexical stage matched %v, short-circuiting", result.FastText.DetectedWords)
			metrics.RecordLexicalMatches(len(result.FastText.DetectedWords))
			metrics.RecordAnalysisRequest(metrics.OutcomeLexicalHit)
			state = stateFinal

		case stateContextualCheck:
			start := time.Now()
			verdict, err := f.contextual.Classify(text)
			metrics.RecordStageLatency("contextual", time.Since(start).Seconds())
			if err != nil {
				metrics.RecordAnalysisRequest(metrics.OutcomeClassifierError)
				return nil, &ClassifierUnavailableError{Err: err}
			}

			label := verdict.Label
			confidence := verdict.Confidence
			result.KoBert.IsBad = &label
			result.KoBert.Confidence = &confidence
			result.FinalDecision = label

			logging.Debugf("Contextual verdict: label=%d confidence=%.4f", label, confidence)
			metrics.RecordContextualConfidence(confidence)
			if label == classification.LabelAbusive {
				metrics.RecordAnalysisRequest(metrics.OutcomeContextualAbusive)
			} else {
				metrics.RecordAnalysisRequest(metrics.OutcomeContextualNeutral)
			}
			state = stateFinal
		}
	}

	return result, nil
}
