package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/gaurav-prasanna/dwlg/core"
	"github.com/gaurav-prasanna/dwlg/core/normalize"
)

var (
	durationPattern = regexp.MustCompile(`^(\d+):(\d+)$`)
	leadingDots     = regexp.MustCompile(`^\.+[` + normalize.SpaceClass + `]*`)
)

// ParseImage copies the image fields.
func ParseImage(raw RawImage) core.Image {
	return core.Image{URL: raw.StaticURL, Name: raw.Name}
}

// ParseAudio reads an audio entry. The duration must be "MM:SS".
func ParseAudio(raw RawAudio) (core.Audio, error) {
	m := durationPattern.FindStringSubmatch(raw.FormattedDuration)
	if m == nil {
		return core.Audio{}, fmt.Errorf("%w: audio duration %q is not MM:SS", ErrSchema, raw.FormattedDuration)
	}
	minutes, err := strconv.Atoi(m[1])
	if err != nil {
		return core.Audio{}, fmt.Errorf("%w: audio minutes: %v", ErrSchema, err)
	}
	seconds, err := strconv.Atoi(m[2])
	if err != nil {
		return core.Audio{}, fmt.Errorf("%w: audio seconds: %v", ErrSchema, err)
	}

	return core.Audio{
		URL:      raw.MP3Src,
		Name:     normalize.Text(raw.Name, false),
		Duration: time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second,
	}, nil
}

// ParseManuscript keeps the teaser as delivered and flattens the manuscript
// HTML into paragraphs separated by blank lines.
func ParseManuscript(raw RawManuscript) core.Manuscript {
	m := core.Manuscript{Teaser: raw.Teaser}
	if raw.Manuscript != nil && *raw.Manuscript != "" {
		text := normalize.Text(normalize.RemoveHTML(*raw.Manuscript, true), true)
		m.Text = &text
		m.HTML = *raw.Manuscript
	}
	return m
}

// ParseAnswer normalizes an alternative and strips leading ellipsis markers.
func ParseAnswer(raw RawAlternative) core.Answer {
	text := normalize.Text(raw.AlternativeText, false)
	text = leadingDots.ReplaceAllString(text, "")
	return core.Answer{Text: text, Correct: raw.IsCorrect}
}

// ParseExercise reads an exercise and the items it can map. Inquiries
// without a mapped kind are returned in skipped, wrapping ErrSkipped.
func ParseExercise(raw RawExercise, origin string) (ex core.Exercise, skipped []error, err error) {
	ex = core.Exercise{
		URL:         ResolveURL(raw.NamedURL, origin),
		Name:        normalize.Text(raw.Name, false),
		Description: normalize.RemoveHTML(raw.Description, false),
	}

	for i, inquiry := range raw.Inquiries {
		item, err := ParseItem(inquiry)
		if errors.Is(err, ErrSkipped) {
			skipped = append(skipped, err)
			continue
		}
		if err != nil {
			return core.Exercise{}, nil, fmt.Errorf("inquiry %d of %q: %w", i, ex.Name, err)
		}
		ex.Items = append(ex.Items, item)
	}
	return ex, skipped, nil
}
