// Package cmd implements the CLI commands for dwlg using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/gaurav-prasanna/dwlg/core/extract"
	"github.com/gaurav-prasanna/dwlg/internal/config"
	"github.com/gaurav-prasanna/dwlg/internal/logger"
	"github.com/gaurav-prasanna/dwlg/internal/metrics"
	"github.com/spf13/cobra"
)

// Persistent flag variables.
var (
	flagRawDir  string
	flagPolicy  string
	flagLogMode string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "dwlg",
	Short: "dwlg — build the lesson dataset from scraped raw files",
	Long: `dwlg turns the raw lesson files written by the scraper into a
normalized, hashed JSON-lines dataset.

Usage:
  dwlg extract <hashfile> <split>
  dwlg hash <hashfile>
  dwlg render <lesson-id> [flags]`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "loading .env: %v\n", err)
	}

	rootCmd.PersistentFlags().StringVar(&flagRawDir, "raw-dir", config.Getenv(config.EnvRawDir, config.DefaultRawDir), "Directory holding lesson-<id>.json files")
	rootCmd.PersistentFlags().StringVar(&flagPolicy, "policy", config.Getenv(config.EnvPolicy, ""), "YAML file overriding the extraction policy")
	rootCmd.PersistentFlags().StringVar(&flagLogMode, "log-mode", config.Getenv(config.EnvLogMode, "dev"), "Log encoding: dev or prod")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log skipped items and other debug details")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// pipeline holds what every command needs to assemble lessons.
type pipeline struct {
	log       *logger.Logger
	metrics   *metrics.Metrics
	extractor *extract.Extractor
}

func newPipeline() (*pipeline, error) {
	log, err := logger.New(flagLogMode, flagVerbose)
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	policy, err := config.LoadPolicy(flagPolicy)
	if err != nil {
		return nil, err
	}
	if policy != extract.DefaultPolicy() {
		log.Warn("using a non-default policy, hashes will not match published splits", "policy", policy)
	}

	m := metrics.New()
	return &pipeline{
		log:       log,
		metrics:   m,
		extractor: extract.New(flagRawDir, policy, log, m),
	}, nil
}
