// Package services wires the detection pipeline together and exposes it as
// a process-wide service for the API layer.
package services

import (
	"fmt"

	"github.com/purgo-project/purgo-detector/pkg/classification"
	"github.com/purgo-project/purgo-detector/pkg/config"
	"github.com/purgo-project/purgo-detector/pkg/detection"
	"github.com/purgo-project/purgo-detector/pkg/lexicon"
	"github.com/purgo-project/purgo-detector/pkg/normalize"
)

// Global analysis service instance, set once at startup before the API
// server accepts traffic and read-only afterwards.
var globalAnalysisService *AnalysisService

// AnalysisService owns the assembled detection pipeline. All of its state
// is immutable after construction and shared safely across requests.
type AnalysisService struct {
	fuser *detection.Fuser
}

// NewAnalysisService builds the full pipeline from configuration: the
// normalizer, the term store, and the KoBERT contextual classifier. Any
// load failure is returned so the caller can abort startup; the service
// never starts in a silently degraded mode.
func NewAnalysisService(cfg *config.DetectorConfig) (*AnalysisService, error) {
	normalizer, err := normalize.New(cfg.Normalizer.Scripts)
	if err != nil {
		return nil, fmt.Errorf("failed to build normalizer: %w", err)
	}

	store, err := lexicon.Load(cfg.Lexicon.TermFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load term store: %w", err)
	}

	contextual, err := classification.NewKoBertClassifier(cfg.Classifier)
	if err != nil {
		return nil, err
	}

	return newService(detection.NewFuser(normalizer, store, contextual)), nil
}

// NewAnalysisServiceWithFuser wraps an already-built fuser. Intended for
// tests that inject a fake contextual classifier.
func NewAnalysisServiceWithFuser(fuser *detection.Fuser) *AnalysisService {
	return newService(fuser)
}

func newService(fuser *detection.Fuser) *AnalysisService {
	service := &AnalysisService{fuser: fuser}
	globalAnalysisService = service
	return service
}

// GetGlobalAnalysisService returns the process-wide service, or nil before
// initialization.
func GetGlobalAnalysisService() *AnalysisService {
	return globalAnalysisService
}

// Analyze runs one text through the two-stage pipeline.
func (s *AnalysisService) Analyze(text string) (*detection.AnalysisResult, error) {
	return s.fuser.Analyze(text)
}
