package commands

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/purgo-project/purgo-detector/pkg/cli"
	"github.com/purgo-project/purgo-detector/pkg/ngram"
)

// NewTrainCmd creates the train command: fit the offline n-gram model from
// a labeled CSV and write its artifacts.
//
// The model artifact is not consumed by the serving lexical stage; exported
// terms are candidates for the curated term list, reviewed by hand.
func NewTrainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the offline n-gram classifier",
		Long: `Read a labeled CSV (columns: text,label with label 0 or 1), train a
word-n-gram log-odds model, and write the model artifact. Optionally export
the top abusive-weighted unigrams as a candidate term list.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("input")
			modelOut, _ := cmd.Flags().GetString("model")
			termsOut, _ := cmd.Flags().GetString("terms")
			topTerms, _ := cmd.Flags().GetInt("top-terms")
			ngramSize, _ := cmd.Flags().GetInt("ngram")
			minCount, _ := cmd.Flags().GetInt("min-count")

			samples, err := readLabeledCSV(input)
			if err != nil {
				return err
			}
			cli.Infof("Training on %d labeled samples", len(samples))

			model, err := ngram.Train(samples, ngram.TrainOptions{
				NgramSize: ngramSize,
				MinCount:  minCount,
			})
			if err != nil {
				return err
			}

			if err := model.Save(modelOut); err != nil {
				return err
			}
			cli.Success(fmt.Sprintf("Model artifact written to %s", modelOut))

			if termsOut != "" {
				terms := model.TopTerms(topTerms)
				if err := os.WriteFile(termsOut, []byte(strings.Join(terms, "\n")+"\n"), 0o644); err != nil {
					return fmt.Errorf("failed to write term candidates: %w", err)
				}
				cli.Success(fmt.Sprintf("%d candidate terms written to %s (review before serving)", len(terms), termsOut))
			}
			return nil
		},
	}

	cmd.Flags().StringP("input", "i", "", "Labeled CSV (text,label)")
	cmd.Flags().StringP("model", "m", "ngram_model.json", "Output path for the model artifact")
	cmd.Flags().String("terms", "", "Export top abusive unigrams as a candidate term list")
	cmd.Flags().Int("top-terms", 100, "How many candidate terms to export")
	cmd.Flags().Int("ngram", 2, "Maximum word-n-gram size")
	cmd.Flags().Int("min-count", 1, "Drop n-grams seen fewer times than this")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// readLabeledCSV parses rows of (text, label). A header row naming the
// columns is skipped; column order follows the header when present.
func readLabeledCSV(path string) ([]ngram.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open training data: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse training data: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("training data %s is empty", path)
	}

	textCol, labelCol, start := 0, 1, 0
	for i, name := range records[0] {
		switch name {
		case "text":
			textCol, start = i, 1
		case "label":
			labelCol, start = i, 1
		}
	}

	var samples []ngram.Sample
	for i, record := range records[start:] {
		if len(record) <= textCol || len(record) <= labelCol {
			continue
		}
		text := strings.TrimSpace(record[textCol])
		if text == "" {
			continue
		}
		label, err := strconv.Atoi(strings.TrimSpace(record[labelCol]))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid label %q", i+start+1, record[labelCol])
		}
		samples = append(samples, ngram.Sample{Text: text, Label: label})
	}
	return samples, nil
}
