// Package detection fuses the lexical and contextual detectors into one
// final verdict with an auditable per-stage trail.
package detection

import (
	"errors"
	"fmt"
)

// Final decisions.
const (
	DecisionNeutral = 0
	DecisionAbusive = 1
)

// ErrEmptyText is returned when an analysis request carries no text.
var ErrEmptyText = errors.New("text must not be empty")

// ClassifierUnavailableError reports that the contextual stage's scorer
// failed at call time. It is kept distinct from a neutral verdict so callers
// can never mistake an outage for a clean result.
type ClassifierUnavailableError struct {
	Err error
}

func (e *ClassifierUnavailableError) Error() string {
	return fmt.Sprintf("contextual classifier unavailable: %v", e.Err)
}

func (e *ClassifierUnavailableError) Unwrap() error { return e.Err }

// LexicalReport is the lexical stage's portion of the audit trail.
type LexicalReport struct {
	IsBad         int      `json:"is_bad"`
	DetectedWords []string `json:"detected_words"`
}

// ContextualReport is the contextual stage's portion of the audit trail.
// Both fields are null when the lexical stage short-circuited.
type ContextualReport struct {
	IsBad      *int     `json:"is_bad"`
	Confidence *float64 `json:"confidence"`
}

// RewriteReport echoes the input text. RewrittenText is passthrough in the
// current design; no redaction is applied.
type RewriteReport struct {
	OriginalText  string `json:"original_text"`
	RewrittenText string `json:"rewritten_text"`
}

// AnalysisResult is the full response payload for one analyzed text.
//
// Invariants: when the lexical stage finds at least one term the contextual
// fields are null and FinalDecision is 1; when it finds none the contextual
// fields are populated and FinalDecision equals the contextual label.
type AnalysisResult struct {
	FastText      LexicalReport    `json:"fasttext"`
	KoBert        ContextualReport `json:"kobert"`
	Result        RewriteReport    `json:"result"`
	FinalDecision int              `json:"final_decision"`
}
