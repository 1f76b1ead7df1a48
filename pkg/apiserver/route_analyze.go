package apiserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/purgo-project/purgo-detector/pkg/detection"
	"github.com/purgo-project/purgo-detector/pkg/observability/logging"
)

// AnalyzeRequest is the request body of POST /analyze.
type AnalyzeRequest struct {
	Text string `json:"text"`
}

// handleAnalyze runs one text through the detection pipeline.
//
// Error mapping: a missing/empty text field is a 400, a contextual-stage
// outage is a 503 (distinguishable from any genuine verdict), anything else
// is a 500.
func (s *AnalysisAPIServer) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	start := time.Now()

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "INVALID_INPUT", "Request body must be JSON with a 'text' field")
		return
	}

	result, err := s.analysisSvc.Analyze(req.Text)
	if err != nil {
		var unavailable *detection.ClassifierUnavailableError
		switch {
		case errors.Is(err, detection.ErrEmptyText):
			s.writeErrorResponse(w, http.StatusBadRequest, "INVALID_INPUT", "The 'text' field is required and must not be empty")
		case errors.As(err, &unavailable):
			logging.Errorf("Analysis request %s: contextual classifier unavailable: %v", requestID, err)
			s.writeErrorResponse(w, http.StatusServiceUnavailable, "CLASSIFIER_UNAVAILABLE", "The contextual classifier is unavailable; no verdict was produced")
		default:
			logging.Errorf("Analysis request %s failed: %v", requestID, err)
			s.writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected internal failure")
		}
		return
	}

	logging.Infof("Analysis request %s: final_decision=%d lexical_hits=%d latency=%s",
		requestID, result.FinalDecision, len(result.FastText.DetectedWords), time.Since(start))
	s.writeJSONResponse(w, http.StatusOK, result)
}
