// Package render — JSON renderer.
// Dumps the whole assembled lesson, including the media and links that the
// dataset record leaves out, together with its content hash.
package render

import (
	"fmt"

	"github.com/gaurav-prasanna/dwlg/core"
	"github.com/gaurav-prasanna/dwlg/core/canonical"
)

// JSONRenderer produces a JSON document describing one lesson.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render encodes the lesson with the canonical encoder.
func (r *JSONRenderer) Render(lesson *core.Lesson) ([]byte, error) {
	items := make([]any, 0, len(lesson.Items))
	for _, item := range lesson.Items {
		obj, err := canonical.ItemRecord(item)
		if err != nil {
			return nil, err
		}
		items = append(items, obj)
	}

	hash, err := canonical.Hash(lesson)
	if err != nil {
		return nil, fmt.Errorf("hashing lesson: %w", err)
	}

	var image, audio, fetchedAt any
	if lesson.Image != nil {
		image = canonical.Object{
			{Key: "url", Value: lesson.Image.URL},
			{Key: "name", Value: lesson.Image.Name},
		}
	}
	if lesson.Audio != nil {
		audio = canonical.Object{
			{Key: "url", Value: lesson.Audio.URL},
			{Key: "name", Value: lesson.Audio.Name},
			{Key: "duration", Value: lesson.Audio.Duration},
		}
	}
	if !lesson.FetchedAt.IsZero() {
		fetchedAt = lesson.FetchedAt
	}

	doc := canonical.Object{
		{Key: "id", Value: lesson.ID},
		{Key: "course", Value: lesson.Course},
		{Key: "name", Value: lesson.Name},
		{Key: "image", Value: image},
		{Key: "audio", Value: audio},
		{Key: "manuscript", Value: canonical.Object{
			{Key: "teaser", Value: lesson.Manuscript.Teaser},
			{Key: "text", Value: lesson.Manuscript.Text},
		}},
		{Key: "items", Value: items},
		{Key: "original_url", Value: lesson.OriginalURL},
		{Key: "fetched_at", Value: fetchedAt},
		{Key: "hash", Value: hash},
	}

	data, err := canonical.Encoder{}.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
