package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/corey/stylo/internal/adapters/lexical"
	"github.com/corey/stylo/internal/domain/styleprof"
	"github.com/spf13/cobra"
)

var (
	recordAccount    string
	recordBodyFile   string
	recordSampleFile string
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Fold one email sample into an account's profile",
	Long:  "Reads a raw email body (run through the built-in lexical extractor) or a pre-extracted sample JSON, and folds it into the account's style profile.",
	RunE:  runRecord,
}

func init() {
	recordCmd.Flags().StringVar(&recordAccount, "account", "", "Account ID (required)")
	recordCmd.Flags().StringVar(&recordBodyFile, "body-file", "", "File holding a raw email body")
	recordCmd.Flags().StringVar(&recordSampleFile, "sample-file", "", "File holding a pre-extracted sample JSON")
	recordCmd.MarkFlagRequired("account")
}

// sampleFile is the on-disk shape of a pre-extracted sample: an open metrics
// map so that missing or unknown keys fail validation instead of silently
// becoming zero.
type sampleFile struct {
	Metrics  map[string]float64 `json:"metrics"`
	Greeting string             `json:"greeting,omitempty"`
	SignOff  string             `json:"sign_off,omitempty"`
}

func runRecord(cmd *cobra.Command, args []string) error {
	if (recordBodyFile == "") == (recordSampleFile == "") {
		return fmt.Errorf("exactly one of --body-file or --sample-file is required")
	}

	sample, err := loadSample(cmd.Context())
	if err != nil {
		return err
	}

	rec, closeStore, err := openRecorder()
	if err != nil {
		return err
	}
	defer closeStore()

	if err := rec.RecordSample(cmd.Context(), recordAccount, sample); err != nil {
		return err
	}

	p, err := rec.GetProfile(cmd.Context(), recordAccount)
	if err != nil {
		return err
	}
	fmt.Printf("%s✓ sample folded%s │ %s │ %d samples\n", colorGreen, colorReset, recordAccount, p.SampleCount)
	return nil
}

func loadSample(ctx context.Context) (styleprof.Sample, error) {
	if recordBodyFile != "" {
		body, err := os.ReadFile(recordBodyFile)
		if err != nil {
			return styleprof.Sample{}, err
		}
		return lexical.New().Extract(ctx, string(body))
	}

	data, err := os.ReadFile(recordSampleFile)
	if err != nil {
		return styleprof.Sample{}, err
	}
	var sf sampleFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return styleprof.Sample{}, fmt.Errorf("parse sample file: %w", err)
	}
	metrics, err := styleprof.MetricVectorFromMap(sf.Metrics)
	if err != nil {
		return styleprof.Sample{}, err
	}
	return styleprof.Sample{Metrics: metrics, Greeting: sf.Greeting, SignOff: sf.SignOff}, nil
}
