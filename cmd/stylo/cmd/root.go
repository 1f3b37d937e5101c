package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/corey/stylo/internal/adapters/bbolt"
	"github.com/corey/stylo/internal/domain/styleprof"
	"github.com/corey/stylo/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagDB       string
	flagPolicy   string
	flagTopK     int
	flagCoverage float64
	flagVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "stylo",
	Short: "stylo — incremental email writing-style profiles",
	Long:  "Folds extracted email samples into per-account style fingerprints: running mean/variance per metric plus bounded greeting and sign-off habits.",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", defaultDBPath(), "Path to the profile database")
	rootCmd.PersistentFlags().StringVar(&flagPolicy, "policy", styleprof.PolicyTopK, "Categorical pruning policy: top-k or coverage")
	rootCmd.PersistentFlags().IntVar(&flagTopK, "k", styleprof.DefaultTopK, "Retained labels for the top-k policy")
	rootCmd.PersistentFlags().Float64Var(&flagCoverage, "coverage", styleprof.DefaultCoverageThreshold, "Threshold for the coverage policy")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(accountsCmd)
	rootCmd.AddCommand(wipeCmd)
	rootCmd.AddCommand(watchCmd)
}

// defaultDBPath keeps the database under .stylo in the working directory.
func defaultDBPath() string {
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	return filepath.Join(dir, ".stylo", "stylo.db")
}

// pruneConfig builds the engine configuration from the persistent flags.
func pruneConfig() styleprof.Config {
	return styleprof.Config{
		Policy:            flagPolicy,
		TopK:              flagTopK,
		CoverageThreshold: flagCoverage,
	}
}

// newLogger returns a dev logger in verbose mode, nop otherwise.
func newLogger() *zap.Logger {
	if !flagVerbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// openRecorder opens the store and wires the recorder. The returned cleanup
// closes the store.
func openRecorder() (*service.Recorder, func(), error) {
	store, err := bbolt.NewStore(flagDB)
	if err != nil {
		return nil, nil, err
	}
	rec, err := service.NewRecorder(store, pruneConfig(), newLogger())
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return rec, func() { store.Close() }, nil
}
