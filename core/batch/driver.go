// Package batch runs the extraction pipeline over every lesson of a
// manifest and writes the resulting split.
package batch

import (
	"context"

	"github.com/gaurav-prasanna/dwlg/core"
	"github.com/gaurav-prasanna/dwlg/core/canonical"
	"github.com/gaurav-prasanna/dwlg/core/manifest"
	"github.com/gaurav-prasanna/dwlg/core/output"
	"github.com/gaurav-prasanna/dwlg/internal/logger"
	"github.com/gaurav-prasanna/dwlg/internal/metrics"
)

// Driver processes manifests one lesson at a time.
type Driver struct {
	// RawDir is scanned when a manifest carries the wildcard key.
	RawDir  string
	Source  core.LessonSource
	Writer  *output.Writer
	Log     *logger.Logger
	Metrics *metrics.Metrics
}

// Report summarizes a run.
type Report struct {
	Split      string
	Path       string
	Written    int
	Discovered int
	Unverified int      // lessons without a known hash
	Mismatches []string // lesson IDs whose hash changed
}

// Run writes one record per manifest entry, in manifest order, to the split
// file. A hash that differs from the manifest is logged and counted but
// does not stop the run; any other error does.
func (d *Driver) Run(ctx context.Context, m *manifest.Manifest, split string) (report *Report, err error) {
	log := d.logger().With("split", split)

	added, err := m.Expand(d.RawDir)
	if err != nil {
		return nil, err
	}
	if len(added) > 0 {
		log.Info("added lessons found on disk", "count", len(added))
	}

	out, err := d.Writer.CreateSplit(split)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	report = &Report{Split: split, Path: out.Path, Discovered: len(added)}
	for _, entry := range m.Entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		lesson, err := d.Source.Load(entry.ID)
		if err != nil {
			return report, err
		}

		if entry.Hash == nil {
			report.Unverified++
		} else {
			hash, err := canonical.Hash(lesson)
			if err != nil {
				return report, err
			}
			if hash != *entry.Hash {
				log.Warn("hash mismatch", "lesson", entry.ID, "expected", *entry.Hash, "actual", hash)
				d.Metrics.HashMismatch(split)
				report.Mismatches = append(report.Mismatches, entry.ID)
			}
		}

		line, err := canonical.Line(lesson, split)
		if err != nil {
			return report, err
		}
		if err := out.WriteLine(line); err != nil {
			return report, err
		}
		d.Metrics.LessonWritten(split)
		report.Written++
	}

	log.Info("split written", "path", out.Path, "lessons", report.Written, "mismatches", len(report.Mismatches))
	return report, nil
}

// Rehash computes the hash of every manifest entry and stores it in m.
// It returns the IDs whose stored hash was missing or different.
func (d *Driver) Rehash(ctx context.Context, m *manifest.Manifest) ([]string, error) {
	if _, err := m.Expand(d.RawDir); err != nil {
		return nil, err
	}

	var changed []string
	for _, entry := range m.Entries {
		if err := ctx.Err(); err != nil {
			return changed, err
		}
		lesson, err := d.Source.Load(entry.ID)
		if err != nil {
			return changed, err
		}
		hash, err := canonical.Hash(lesson)
		if err != nil {
			return changed, err
		}
		if entry.Hash == nil || *entry.Hash != hash {
			if entry.Hash != nil {
				d.logger().Warn("hash changed", "lesson", entry.ID, "old", *entry.Hash, "new", hash)
			}
			m.Set(entry.ID, &hash)
			changed = append(changed, entry.ID)
		}
	}
	return changed, nil
}

func (d *Driver) logger() *logger.Logger {
	if d.Log == nil {
		return logger.Nop()
	}
	return d.Log
}
