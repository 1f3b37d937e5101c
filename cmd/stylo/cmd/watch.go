package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/corey/stylo/internal/adapters/lexical"
	"github.com/corey/stylo/internal/adapters/spool"
	"github.com/spf13/cobra"
)

var watchSpoolDir string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Ingest samples dropped into a spool directory",
	Long:  "Watches a directory for sample JSON files (pre-extracted metrics or raw bodies), folds each into its account's profile, and deletes it. Runs until interrupted.",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchSpoolDir, "spool", "spool", "Directory to watch for sample files")
}

func runWatch(cmd *cobra.Command, args []string) error {
	rec, closeStore, err := openRecorder()
	if err != nil {
		return err
	}
	defer closeStore()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("%s⚡ watching%s %s (policy %s)\n", colorBold, colorReset, watchSpoolDir, flagPolicy)

	w := spool.NewWatcher(rec, lexical.New(), newLogger())
	if err := w.Run(ctx, watchSpoolDir); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	fmt.Println("stopped")
	return nil
}
