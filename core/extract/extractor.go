// Package extract turns the raw lesson files written by the scraper into
// core.Lesson values.
//
// Parsing trusts the upstream schema. Where the pipeline relies on a shape
// assumption (a single audio track, a single sub-inquiry per association
// item, MM:SS durations) a violation is reported as ErrSchema and must be
// investigated rather than patched over.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gaurav-prasanna/dwlg/core"
	"github.com/gaurav-prasanna/dwlg/internal/logger"
	"github.com/gaurav-prasanna/dwlg/internal/metrics"
)

// fetchDateLayout matches the naive ISO timestamps written by the scraper.
// Fractional seconds are accepted without being named in the layout.
const fetchDateLayout = "2006-01-02T15:04:05"

// Extractor assembles lessons from raw files in RawDir.
type Extractor struct {
	RawDir string
	Policy Policy

	log     *logger.Logger
	metrics *metrics.Metrics
}

// New creates an Extractor. m may be nil.
func New(rawDir string, policy Policy, log *logger.Logger, m *metrics.Metrics) *Extractor {
	if log == nil {
		log = logger.Nop()
	}
	return &Extractor{
		RawDir:  rawDir,
		Policy:  policy,
		log:     log,
		metrics: m,
	}
}

// RawPath returns the path of the raw file for lesson id inside dir.
func RawPath(dir, id string) string {
	return filepath.Join(dir, "lesson-"+id+".json")
}

// Load reads and assembles the lesson with the given id. It implements
// core.LessonSource.
func (e *Extractor) Load(id string) (*core.Lesson, error) {
	lesson, err := e.LoadFile(RawPath(e.RawDir, id))
	if err != nil {
		return nil, fmt.Errorf("lesson %s: %w", id, err)
	}
	return lesson, nil
}

// LoadFile reads and assembles the lesson stored at path.
func (e *Extractor) LoadFile(path string) (*core.Lesson, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading raw lesson: %w", err)
	}

	var raw RawLesson
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return e.Lesson(&raw)
}

// Lesson assembles a lesson from its raw payload.
func (e *Extractor) Lesson(raw *RawLesson) (*core.Lesson, error) {
	info := raw.Lesson
	lesson := &core.Lesson{
		ID:     info.ID,
		Course: raw.Course,
		Name:   info.Name,
	}
	log := e.log.With("lesson", info.ID)

	if info.MainContentImage != nil {
		image := ParseImage(*info.MainContentImage)
		lesson.Image = &image
	}

	if len(info.Audios) > 1 {
		return nil, fmt.Errorf("%w: %d audio entries, want at most 1", ErrSchema, len(info.Audios))
	}
	for _, rawAudio := range info.Audios {
		audio, err := ParseAudio(rawAudio)
		if err != nil {
			return nil, err
		}
		lesson.Audio = &audio
	}

	lesson.Manuscript = ParseManuscript(raw.Manuscript)

	var items []core.Item
	for _, rawExercise := range raw.Exercises {
		exercise, skipped, err := ParseExercise(rawExercise, e.Policy.Origin)
		if err != nil {
			return nil, err
		}
		for _, s := range skipped {
			log.Debug("skipping inquiry", "exercise", exercise.Name, "reason", s)
			var se *SkippedError
			if errors.As(s, &se) {
				e.metrics.ItemSkipped(se.InquiryType, se.SelectionType)
			}
		}
		if len(exercise.Items) == 0 {
			e.metrics.ExerciseDropped()
			continue
		}
		items = append(items, exercise.Items...)
	}
	if e.Policy.MaxItems > 0 && len(items) > e.Policy.MaxItems {
		items = items[:e.Policy.MaxItems]
	}
	lesson.Items = items

	lesson.OriginalURL = originalArticle(raw.Extras.ExternalLinks, e.Policy.OriginalArticleMarker, e.Policy.OriginalArticlePrefix)

	if info.FetchDate != "" {
		fetchedAt, err := time.Parse(fetchDateLayout, info.FetchDate)
		if err != nil {
			log.Debug("ignoring fetch date", "value", info.FetchDate, "error", err)
		} else {
			lesson.FetchedAt = fetchedAt
		}
	}

	return lesson, nil
}
