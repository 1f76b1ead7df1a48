package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purgo-project/purgo-detector/pkg/detection"
)

// fakeAnalyzeServer returns canned verdicts: texts containing "바보" get a
// lexical hit, texts containing "고장" get a 503, everything else a neutral
// contextual verdict.
func fakeAnalyzeServer(t *testing.T) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		var req struct {
			Text string `json:"text"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if strings.Contains(req.Text, "고장") {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		result := detection.AnalysisResult{
			FastText: detection.LexicalReport{DetectedWords: []string{}},
			Result:   detection.RewriteReport{OriginalText: req.Text, RewrittenText: req.Text},
		}
		if strings.Contains(req.Text, "바보") {
			result.FastText.IsBad = 1
			result.FastText.DetectedWords = []string{"바보"}
			result.FinalDecision = detection.DecisionAbusive
		} else {
			label := 0
			confidence := 0.91
			result.KoBert.IsBad = &label
			result.KoBert.Confidence = &confidence
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func newTestClient(url string) *Client {
	c := NewClient(url)
	c.MaxRetries = 2
	c.RetryBase = time.Millisecond
	return c
}

func TestRun(t *testing.T) {
	srv, _ := fakeAnalyzeServer(t)
	c := newTestClient(srv.URL)

	rows, summary, err := c.Run(context.Background(), []string{
		"너는 바보야",
		"안녕하세요",
		"서버 고장 문장",
	})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Rows come back in input order regardless of completion order.
	assert.Equal(t, StatusOK, rows[0].Status)
	assert.Equal(t, 1, rows[0].LexicalHits)
	require.NotNil(t, rows[0].FinalDecision)
	assert.Equal(t, detection.DecisionAbusive, *rows[0].FinalDecision)
	assert.Nil(t, rows[0].ContextualBad)

	assert.Equal(t, StatusOK, rows[1].Status)
	require.NotNil(t, rows[1].Confidence)
	assert.Equal(t, 0.91, *rows[1].Confidence)

	assert.Equal(t, StatusError, rows[2].Status)
	assert.Nil(t, rows[2].FinalDecision, "an error row must carry no verdict")
	assert.NotEmpty(t, rows[2].Err)

	// Errors are their own bucket, never folded into neutral.
	assert.Equal(t, Summary{Total: 3, Abusive: 1, Neutral: 1, Errors: 1, Elapsed: summary.Elapsed}, summary)
}

func TestRun_RetriesTransientFailures(t *testing.T) {
	var attempts atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		label, confidence := 0, 0.8
		json.NewEncoder(w).Encode(detection.AnalysisResult{
			FastText: detection.LexicalReport{DetectedWords: []string{}},
			KoBert:   detection.ContextualReport{IsBad: &label, Confidence: &confidence},
		})
	}))
	t.Cleanup(srv.Close)

	rows, summary, err := newTestClient(srv.URL).Run(context.Background(), []string{"안녕"})
	require.NoError(t, err)
	assert.Equal(t, StatusOK, rows[0].Status)
	assert.Equal(t, 1, summary.Neutral)
	assert.GreaterOrEqual(t, attempts.Load(), int64(2))
}

func TestRun_BadRowIsNotRetried(t *testing.T) {
	var attempts atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	t.Cleanup(srv.Close)

	rows, _, err := newTestClient(srv.URL).Run(context.Background(), []string{""})
	require.NoError(t, err)
	assert.Equal(t, StatusError, rows[0].Status)
	assert.Equal(t, int64(1), attempts.Load(), "a 4xx row cannot succeed on retry")
}

func TestSaveRun(t *testing.T) {
	srv, _ := fakeAnalyzeServer(t)
	c := newTestClient(srv.URL)

	rows, summary, err := c.Run(context.Background(), []string{"너는 바보야", "안녕하세요", "서버 고장"})
	require.NoError(t, err)

	db, err := InitDB(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	defer db.Close()

	runID, err := SaveRun(db, srv.URL, summary, rows)
	require.NoError(t, err)
	assert.Positive(t, runID)

	var total, errors int
	require.NoError(t, db.QueryRow(
		`SELECT total, errors FROM evaluation_runs WHERE id = ?`, runID).Scan(&total, &errors))
	assert.Equal(t, 3, total)
	assert.Equal(t, 1, errors)

	var rowCount int
	require.NoError(t, db.QueryRow(
		`SELECT COUNT(*) FROM evaluation_rows WHERE run_id = ?`, runID).Scan(&rowCount))
	assert.Equal(t, 3, rowCount)
}

func TestWriteHTML(t *testing.T) {
	decision := detection.DecisionAbusive
	rows := []RowResult{
		{Index: 0, Text: "너는 바보야", Status: StatusOK, LexicalHits: 1, FinalDecision: &decision},
		{Index: 1, Text: "요청 실패 문장", Status: StatusError, Err: "analyze returned status 503"},
	}
	summary := Summary{Total: 2, Abusive: 1, Errors: 1}

	path := filepath.Join(t.TempDir(), "report.html")
	require.NoError(t, WriteHTML(path, summary, rows))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	data := string(raw)
	assert.Contains(t, data, "너는 바보야")
	assert.Contains(t, data, "실패")
	assert.Contains(t, data, "욕설 판정: 1")
	assert.Contains(t, data, "요청 실패: 1")
}

func TestRowResult_Verdict(t *testing.T) {
	abusive, neutral := detection.DecisionAbusive, detection.DecisionNeutral
	assert.Equal(t, "욕설", RowResult{Status: StatusOK, FinalDecision: &abusive}.Verdict())
	assert.Equal(t, "정상", RowResult{Status: StatusOK, FinalDecision: &neutral}.Verdict())
	assert.Equal(t, "-", RowResult{Status: StatusError}.Verdict(), "error rows must not render as verdicts")
}
