// Package render provides per-lesson renderers used to inspect what the
// pipeline extracted. This file implements the Markdown renderer, which the
// PDF renderer builds on.
package render

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/dwlg/core"
	"github.com/gaurav-prasanna/dwlg/core/normalize"
)

// noiseSelectors are removed from the manuscript HTML before conversion.
var noiseSelectors = []string{
	"script", "style", "noscript",
	"img", "picture", "figure",
	"iframe", "video", "audio",
	"svg", "form", "button",
}

// MarkdownRenderer writes a readable Markdown view of a lesson.
type MarkdownRenderer struct {
	normalizer *normalize.MarkdownNormalizer
}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{normalizer: normalize.New()}
}

// Render builds the Markdown document for lesson.
func (r *MarkdownRenderer) Render(lesson *core.Lesson) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", lesson.Name)
	fmt.Fprintf(&b, "*%s* · Lektion %d\n\n", lesson.Course, lesson.ID)

	if lesson.Manuscript.Teaser != nil && *lesson.Manuscript.Teaser != "" {
		fmt.Fprintf(&b, "> %s\n\n", *lesson.Manuscript.Teaser)
	}
	if lesson.Image != nil {
		fmt.Fprintf(&b, "Bild: [%s](%s)\n\n", lesson.Image.Name, lesson.Image.URL)
	}
	if lesson.Audio != nil {
		fmt.Fprintf(&b, "Audio: [%s](%s) (%s)\n\n", lesson.Audio.Name, lesson.Audio.URL, lesson.Audio.Duration)
	}

	manuscript, err := r.manuscript(lesson.Manuscript)
	if err != nil {
		return nil, fmt.Errorf("lesson %d manuscript: %w", lesson.ID, err)
	}
	if manuscript != "" {
		b.WriteString("## Manuskript\n\n")
		b.WriteString(manuscript)
		b.WriteString("\n\n")
	}

	if len(lesson.Items) > 0 {
		b.WriteString("## Fragen\n\n")
		for i, item := range lesson.Items {
			writeItem(&b, i+1, item)
		}
	}

	if lesson.OriginalURL != nil {
		fmt.Fprintf(&b, "Originalartikel: [%s](%s)\n", *lesson.OriginalURL, *lesson.OriginalURL)
	}

	return []byte(b.String()), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// manuscript converts the raw manuscript HTML, falling back to the
// normalized text when no markup was kept.
func (r *MarkdownRenderer) manuscript(m core.Manuscript) (string, error) {
	if m.HTML == "" {
		if m.Text == nil {
			return "", nil
		}
		return *m.Text, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(m.HTML))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}
	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}
	fragment, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("serializing content: %w", err)
	}

	md, err := r.normalizer.Normalize(fragment)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(md), nil
}

func writeItem(b *strings.Builder, n int, item core.Item) {
	switch item := item.(type) {
	case core.AssociationItem:
		mode := "eine Antwort"
		if item.Multiple {
			mode = "mehrere Antworten"
		}
		fmt.Fprintf(b, "%d. %s (%s)\n", n, item.Question, mode)
		for _, a := range item.Answers {
			mark := " "
			if a.Correct {
				mark = "x"
			}
			fmt.Fprintf(b, "   - [%s] %s\n", mark, a.Text)
		}
		b.WriteString("\n")
	default:
		fmt.Fprintf(b, "%d. (%s)\n\n", n, item.Kind())
	}
}
