// Package apiserver serves the analysis HTTP API.
package apiserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/purgo-project/purgo-detector/pkg/observability/logging"
	"github.com/purgo-project/purgo-detector/pkg/services"
)

// AnalysisAPIServer handles analysis API requests.
type AnalysisAPIServer struct {
	analysisSvc *services.AnalysisService
}

// Init starts the API server on the given port and blocks until it exits.
// The analysis service must be fully initialized before calling Init; the
// server never serves with a partially loaded pipeline.
func Init(port int) error {
	svc := services.GetGlobalAnalysisService()
	if svc == nil {
		return fmt.Errorf("analysis service not initialized")
	}

	apiServer := &AnalysisAPIServer{analysisSvc: svc}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      apiServer.setupRoutes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logging.Infof("Analysis API server listening on port %d", port)
	return server.ListenAndServe()
}

// setupRoutes configures all API routes.
func (s *AnalysisAPIServer) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", methodHandler(http.MethodGet, s.handleHealth))
	mux.HandleFunc("/analyze", methodHandler(http.MethodPost, s.handleAnalyze))

	return mux
}

// methodHandler restricts h to a single HTTP method (plus HEAD for GET),
// replicating Go 1.22+ ServeMux method patterns on the Go 1.21 toolchain
// this module is built with.
func methodHandler(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method && !(method == http.MethodGet && r.Method == http.MethodHead) {
			w.Header().Set("Allow", method)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}

// handleHealth reports service liveness.
func (s *AnalysisAPIServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSONResponse(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *AnalysisAPIServer) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Errorf("Failed to encode JSON response: %v", err)
	}
}

func (s *AnalysisAPIServer) writeErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string) {
	errorResponse := map[string]interface{}{
		"error": map[string]interface{}{
			"code":      errorCode,
			"message":   message,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	}

	s.writeJSONResponse(w, statusCode, errorResponse)
}
