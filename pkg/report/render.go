package report

import (
	"fmt"
	"html/template"
	"os"

	"github.com/purgo-project/purgo-detector/pkg/detection"
)

// Verdict renders the row's final decision for display. Error rows render
// as "-" so they can never be misread as a neutral verdict.
func (r RowResult) Verdict() string {
	if r.Status != StatusOK || r.FinalDecision == nil {
		return "-"
	}
	if *r.FinalDecision == detection.DecisionAbusive {
		return "욕설"
	}
	return "정상"
}

// VerdictClass is the CSS class for the row's verdict cell.
func (r RowResult) VerdictClass() string {
	if r.Status != StatusOK || r.FinalDecision == nil {
		return "error"
	}
	if *r.FinalDecision == detection.DecisionAbusive {
		return "abusive"
	}
	return "neutral"
}

// ContextualCell renders the contextual label and confidence, or "-" when
// the lexical stage short-circuited or the row errored.
func (r RowResult) ContextualCell() string {
	if r.ContextualBad == nil || r.Confidence == nil {
		return "-"
	}
	return fmt.Sprintf("%d (%.4f)", *r.ContextualBad, *r.Confidence)
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="ko">
<head>
<meta charset="utf-8">
<title>욕설 탐지 평가 리포트</title>
<style>
  body { font-family: sans-serif; margin: 2em; }
  table { border-collapse: collapse; width: 100%; }
  th, td { border: 1px solid #ccc; padding: 6px 10px; text-align: left; }
  th { background: #f0f0f0; }
  .abusive { color: #b00020; }
  .neutral { color: #2e7d32; }
  .error { color: #e65100; font-weight: bold; }
  .summary li { margin: 4px 0; }
</style>
</head>
<body>
<h1>욕설 탐지 평가 리포트</h1>
<ul class="summary">
  <li>전체 문장: {{.Summary.Total}}</li>
  <li>욕설 판정: {{.Summary.Abusive}}</li>
  <li>정상 판정: {{.Summary.Neutral}}</li>
  <li>요청 실패: {{.Summary.Errors}}</li>
  <li>소요 시간: {{.Summary.Elapsed}}</li>
</ul>
<table>
<tr><th>#</th><th>문장</th><th>상태</th><th>단어 탐지 수</th><th>문맥 판정 (신뢰도)</th><th>최종 판정</th></tr>
{{range .Rows}}
<tr>
  <td>{{.Index}}</td>
  <td>{{.Text}}</td>
  {{if eq .Status "error"}}
  <td class="error">실패: {{.Err}}</td>
  <td>-</td>
  <td>-</td>
  {{else}}
  <td>{{.Status}}</td>
  <td>{{.LexicalHits}}</td>
  <td>{{.ContextualCell}}</td>
  {{end}}
  <td class="{{.VerdictClass}}">{{.Verdict}}</td>
</tr>
{{end}}
</table>
</body>
</html>
`))

// WriteHTML renders the batch run as an HTML report file.
func WriteHTML(path string, summary Summary, rows []RowResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	data := struct {
		Summary Summary
		Rows    []RowResult
	}{summary, rows}
	if err := reportTemplate.Execute(f, data); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}
