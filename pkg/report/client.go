// Package report implements the batch evaluation client: it drives the
// analyze endpoint over a dataset, aggregates verdicts, persists rows, and
// renders a report.
//
// Error rows are tracked as a third outcome, strictly separate from
// abusive/neutral verdicts. A failed request is never recorded as a
// confidence-0 neutral.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"

	"github.com/purgo-project/purgo-detector/pkg/detection"
	"github.com/purgo-project/purgo-detector/pkg/observability/logging"
)

// Row outcome statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// RowResult is the outcome of analyzing one dataset row. Verdict fields
// are nil when Status is "error".
type RowResult struct {
	Index         int
	Text          string
	Status        string
	LexicalHits   int
	ContextualBad *int
	Confidence    *float64
	FinalDecision *int
	RewrittenText string
	Err           string
}

// Summary aggregates a batch run. Errors is counted on its own; it never
// folds into Neutral.
type Summary struct {
	Total   int
	Abusive int
	Neutral int
	Errors  int
	Elapsed time.Duration
}

// Client calls the analyze endpoint for each dataset row with bounded
// concurrency and per-row retry on transport failure.
type Client struct {
	BaseURL     string
	HTTPClient  *http.Client
	Concurrency int
	MaxRetries  uint64
	RetryBase   time.Duration
}

// NewClient returns a Client with sensible defaults for batch evaluation.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:     baseURL,
		HTTPClient:  &http.Client{Timeout: 30 * time.Second},
		Concurrency: 4,
		MaxRetries:  3,
		RetryBase:   500 * time.Millisecond,
	}
}

// Run analyzes every text and returns per-row results in input order plus
// the aggregate summary.
func (c *Client) Run(ctx context.Context, texts []string) ([]RowResult, Summary, error) {
	start := time.Now()
	results := make([]RowResult, len(texts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Concurrency)
	for i, text := range texts {
		i, text := i, text
		g.Go(func() error {
			results[i] = c.analyzeRow(ctx, i, text)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Summary{}, err
	}

	summary := Summary{Total: len(results), Elapsed: time.Since(start)}
	for _, r := range results {
		switch {
		case r.Status == StatusError:
			summary.Errors++
		case r.FinalDecision != nil && *r.FinalDecision == detection.DecisionAbusive:
			summary.Abusive++
		default:
			summary.Neutral++
		}
	}
	logging.Infof("Batch run finished: total=%d abusive=%d neutral=%d errors=%d elapsed=%s",
		summary.Total, summary.Abusive, summary.Neutral, summary.Errors, summary.Elapsed)
	return results, summary, nil
}

// analyzeRow calls the endpoint for one row, retrying transient failures
// with Fibonacci backoff. A row that still fails becomes an error row, not
// a verdict.
func (c *Client) analyzeRow(ctx context.Context, index int, text string) RowResult {
	row := RowResult{Index: index, Text: text, Status: StatusError}

	var result detection.AnalysisResult
	b := retry.NewFibonacci(c.RetryBase)
	err := retry.Do(ctx, retry.WithMaxRetries(c.MaxRetries, b), func(ctx context.Context) error {
		r, err := c.postAnalyze(ctx, text)
		if err != nil {
			return err
		}
		result = *r
		return nil
	})
	if err != nil {
		row.Err = err.Error()
		return row
	}

	row.Status = StatusOK
	row.LexicalHits = len(result.FastText.DetectedWords)
	row.ContextualBad = result.KoBert.IsBad
	row.Confidence = result.KoBert.Confidence
	decision := result.FinalDecision
	row.FinalDecision = &decision
	row.RewrittenText = result.Result.RewrittenText
	return row
}

func (c *Client) postAnalyze(ctx context.Context, text string) (*detection.AnalysisResult, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		// Network failures are worth retrying.
		return nil, retry.RetryableError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 500:
		// Server-side failures (including classifier outages) may clear.
		io.Copy(io.Discard, resp.Body)
		return nil, retry.RetryableError(fmt.Errorf("analyze returned status %d", resp.StatusCode))
	default:
		// 4xx is a bad row; retrying cannot fix it.
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("analyze returned status %d", resp.StatusCode)
	}

	result := &detection.AnalysisResult{}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return nil, fmt.Errorf("failed to decode analyze response: %w", err)
	}
	return result, nil
}
