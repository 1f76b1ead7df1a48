package report

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// InitDB opens (creating if needed) the sqlite database that stores batch
// evaluation runs.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS evaluation_runs (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		server_url  TEXT NOT NULL,
		total       INTEGER NOT NULL,
		abusive     INTEGER NOT NULL,
		neutral     INTEGER NOT NULL,
		errors      INTEGER NOT NULL,
		elapsed_ms  INTEGER NOT NULL,
		created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS evaluation_rows (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id         INTEGER NOT NULL,
		row_index      INTEGER NOT NULL,
		text           TEXT NOT NULL,
		status         TEXT NOT NULL,
		lexical_hits   INTEGER DEFAULT 0,
		contextual_bad INTEGER,
		confidence     REAL,
		final_decision INTEGER,
		error          TEXT DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_eval_rows_run ON evaluation_rows(run_id);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}
	return db, nil
}

// SaveRun persists one batch run and its rows, returning the run ID.
func SaveRun(db *sql.DB, serverURL string, summary Summary, rows []RowResult) (int64, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO evaluation_runs (server_url, total, abusive, neutral, errors, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		serverURL, summary.Total, summary.Abusive, summary.Neutral, summary.Errors,
		summary.Elapsed.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO evaluation_rows (run_id, row_index, text, status, lexical_hits, contextual_bad, confidence, final_decision, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.Exec(runID, row.Index, row.Text, row.Status,
			row.LexicalHits, row.ContextualBad, row.Confidence, row.FinalDecision, row.Err); err != nil {
			return 0, fmt.Errorf("failed to insert row %d: %w", row.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}
