// Package cmd — hash command.
// Recomputes the content hash of every lesson in a hash file and stores it.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/gaurav-prasanna/dwlg/core/batch"
	"github.com/gaurav-prasanna/dwlg/core/manifest"
	"github.com/spf13/cobra"
)

var flagDryRun bool

var hashCmd = &cobra.Command{
	Use:   "hash <hashfile>",
	Short: "Store the current content hash of every lesson in a hash file",
	Long: `Hash assembles every lesson selected by the hash file and records its
current content hash, so later extract runs can detect upstream changes.
The "*" key is kept and still adds new lessons on the next run.

Examples:
  dwlg hash data/hashes/train.json
  dwlg hash data/hashes/train.json --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runHash,
}

func init() {
	rootCmd.AddCommand(hashCmd)

	hashCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Report changed hashes without rewriting the file")
}

func runHash(cmd *cobra.Command, args []string) error {
	hashFile := args[0]

	p, err := newPipeline()
	if err != nil {
		return err
	}
	defer p.log.Sync()

	m, err := manifest.Load(hashFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	driver := &batch.Driver{RawDir: flagRawDir, Source: p.extractor, Log: p.log}
	changed, err := driver.Rehash(ctx, m)
	if err != nil {
		return err
	}

	if flagDryRun {
		fmt.Fprintf(os.Stdout, "%d of %d hashes would change\n", len(changed), len(m.Entries))
		return nil
	}
	if err := m.Save(hashFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Updated: %s (%d of %d hashes changed)\n", hashFile, len(changed), len(m.Entries))
	return nil
}
