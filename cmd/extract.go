// Package cmd — extract command.
// This is the batch run: read the hash manifest, assemble every selected
// lesson, check its hash and write the split file.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/gaurav-prasanna/dwlg/core/batch"
	"github.com/gaurav-prasanna/dwlg/core/manifest"
	"github.com/gaurav-prasanna/dwlg/core/output"
	"github.com/gaurav-prasanna/dwlg/internal/config"
	"github.com/spf13/cobra"
)

var (
	flagSplitsDir   string
	flagMetricsFile string
)

var extractCmd = &cobra.Command{
	Use:   "extract <hashfile> <split>",
	Short: "Write the split file for every lesson selected by a hash file",
	Long: `Extract reads a hash file mapping lesson IDs to their expected content hash
(or null), assembles each lesson from its raw file and writes one JSON line
per lesson to <splits-dir>/<split>.jsonl, in hash file order.

The key "*" in the hash file adds every lesson found in --raw-dir. A lesson
whose hash differs from the hash file is reported as a warning; a raw file
that breaks the expected schema aborts the run.

Examples:
  dwlg extract data/hashes/train.json train
  dwlg extract data/hashes/all.json all --metrics-file dwlg.prom`,
	Args: cobra.ExactArgs(2),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&flagSplitsDir, "splits-dir", config.Getenv(config.EnvSplitsDir, config.DefaultSplitsDir), "Directory the split file is written to")
	extractCmd.Flags().StringVar(&flagMetricsFile, "metrics-file", "", "Write run counters in Prometheus textfile format")
}

func runExtract(cmd *cobra.Command, args []string) error {
	hashFile, split := args[0], args[1]

	p, err := newPipeline()
	if err != nil {
		return err
	}
	defer p.log.Sync()

	m, err := manifest.Load(hashFile)
	if err != nil {
		return err
	}

	writer, err := output.New(flagSplitsDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	driver := &batch.Driver{
		RawDir:  flagRawDir,
		Source:  p.extractor,
		Writer:  writer,
		Log:     p.log,
		Metrics: p.metrics,
	}
	report, err := driver.Run(ctx, m, split)
	if err != nil {
		return err
	}

	if flagMetricsFile != "" {
		if err := p.metrics.WriteTextfile(flagMetricsFile); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}

	fmt.Fprintf(os.Stdout, "✓ Written: %s (%d lessons, %d hash mismatches)\n", report.Path, report.Written, len(report.Mismatches))
	return nil
}
