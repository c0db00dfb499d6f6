// Package render — PDF renderer.
// Lays out the Markdown view of a lesson as a PDF using gofpdf.
// Handles headings (variable font sizes), quotes, paragraphs and lists.
package render

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/dwlg/core"
	"github.com/jung-kurt/gofpdf"
)

// PDFRenderer renders a lesson as a PDF document.
type PDFRenderer struct {
	markdown *MarkdownRenderer
}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{markdown: NewMarkdownRenderer()}
}

var (
	numberedItem = regexp.MustCompile(`^\d+\.\s`)
	boldMarkers  = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicMarker = regexp.MustCompile(`(?:^|\s)\*([^*]+)\*(?:\s|$)`)
	linkSyntax   = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)
)

// Render converts the lesson into PDF bytes.
func (r *PDFRenderer) Render(lesson *core.Lesson) ([]byte, error) {
	md, err := r.markdown.Render(lesson)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(lesson.Name, true)
	pdf.AddPage()

	// Core fonts are cp1252; translate so umlauts survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, line := range strings.Split(string(md), "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			pdf.Ln(3)

		case strings.HasPrefix(line, "#"):
			level := len(line) - len(strings.TrimLeft(line, "#"))
			renderHeading(pdf, tr(cleanInlineMarkdown(strings.TrimLeft(line, "# "))), level)

		case strings.HasPrefix(trimmed, "> "):
			pdf.SetFont("Helvetica", "I", 10)
			pdf.SetTextColor(80, 80, 80)
			pdf.MultiCell(0, 5, tr(cleanInlineMarkdown(trimmed[2:])), "", "L", false)
			pdf.SetTextColor(0, 0, 0)

		case strings.HasPrefix(trimmed, "- "):
			pdf.SetFont("Helvetica", "", 10)
			text := strings.TrimSpace(trimmed[2:])
			text = strings.Replace(text, "[x]", "(richtig)", 1)
			text = strings.Replace(text, "[ ]", "", 1)
			pdf.SetX(pdf.GetX() + 6)
			pdf.MultiCell(0, 5, tr("- "+cleanInlineMarkdown(text)), "", "L", false)

		case numberedItem.MatchString(trimmed):
			pdf.SetFont("Helvetica", "B", 10)
			pdf.MultiCell(0, 5, tr(cleanInlineMarkdown(trimmed)), "", "L", false)

		default:
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(cleanInlineMarkdown(line)), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// renderHeading sets the font size based on heading level and writes text.
func renderHeading(pdf *gofpdf.Fpdf, text string, level int) {
	sizes := map[int]float64{1: 18, 2: 14, 3: 12}
	size, ok := sizes[level]
	if !ok {
		size = 11
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, text, "", "L", false)
	pdf.Ln(2)
}

// cleanInlineMarkdown strips inline Markdown formatting for PDF rendering.
func cleanInlineMarkdown(text string) string {
	text = boldMarkers.ReplaceAllString(text, "$1")
	text = italicMarker.ReplaceAllString(text, " $1 ")
	// Keep link text and target, PDF readers cannot follow Markdown links.
	text = linkSyntax.ReplaceAllString(text, "$1 <$2>")
	return strings.TrimSpace(text)
}
