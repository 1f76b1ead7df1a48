package commands

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/purgo-project/purgo-detector/pkg/cli"
	"github.com/purgo-project/purgo-detector/pkg/report"
)

// NewReportCmd creates the report command: batch-evaluate a CSV dataset
// against a running detector and render the results.
func NewReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Evaluate a dataset against a running detector",
		Long: `Read a CSV of texts, call the detector's analyze endpoint for each row,
and write an HTML report. Failed requests are reported as error rows,
separate from abusive/neutral verdicts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("input")
			server, _ := cmd.Flags().GetString("server")
			htmlOut, _ := cmd.Flags().GetString("html")
			dbPath, _ := cmd.Flags().GetString("db")
			concurrency, _ := cmd.Flags().GetInt("concurrency")
			output, _ := cmd.Flags().GetString("output")

			texts, err := readTextColumn(input)
			if err != nil {
				return err
			}
			cli.Infof("Evaluating %d rows against %s", len(texts), server)

			client := report.NewClient(server)
			if concurrency > 0 {
				client.Concurrency = concurrency
			}
			rows, summary, err := client.Run(context.Background(), texts)
			if err != nil {
				return err
			}

			if htmlOut != "" {
				if err := report.WriteHTML(htmlOut, summary, rows); err != nil {
					return err
				}
				cli.Success(fmt.Sprintf("HTML report written to %s", htmlOut))
			}

			if dbPath != "" {
				db, err := report.InitDB(dbPath)
				if err != nil {
					return fmt.Errorf("failed to open results database: %w", err)
				}
				defer db.Close()
				runID, err := report.SaveRun(db, server, summary, rows)
				if err != nil {
					return err
				}
				cli.Success(fmt.Sprintf("Run %d saved to %s", runID, dbPath))
			}

			return printSummary(output, summary)
		},
	}

	cmd.Flags().StringP("input", "i", "", "CSV dataset with texts (first column or 'text' column)")
	cmd.Flags().StringP("server", "s", "http://localhost:8080", "Base URL of the detector")
	cmd.Flags().String("html", "", "Write an HTML report to this path")
	cmd.Flags().String("db", "", "Persist run results to this sqlite database")
	cmd.Flags().Int("concurrency", 4, "Concurrent analyze requests")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// readTextColumn reads the dataset's text column: the column named "text"
// when a header row declares one, the first column otherwise.
func readTextColumn(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset %s is empty", path)
	}

	col := 0
	start := 0
	for i, name := range records[0] {
		if name == "text" {
			col = i
			start = 1
			break
		}
	}

	var texts []string
	for _, record := range records[start:] {
		if col < len(record) && record[col] != "" {
			texts = append(texts, record[col])
		}
	}
	return texts, nil
}

func printSummary(format string, summary report.Summary) error {
	switch format {
	case "json":
		return cli.PrintJSON(summary)
	case "yaml":
		return cli.PrintYAML(summary)
	default:
		cli.PrintTable(
			[]string{"TOTAL", "ABUSIVE", "NEUTRAL", "ERRORS", "ELAPSED"},
			[][]string{{
				strconv.Itoa(summary.Total),
				strconv.Itoa(summary.Abusive),
				strconv.Itoa(summary.Neutral),
				strconv.Itoa(summary.Errors),
				summary.Elapsed.String(),
			}},
		)
		if summary.Errors > 0 {
			cli.Error(fmt.Sprintf("%d rows failed; they are NOT counted as neutral", summary.Errors))
		}
		return nil
	}
}
