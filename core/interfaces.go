// Package core defines the lesson data model and the pipeline interfaces for dwlg.
// Each stage of the pipeline is a clean, testable interface.
package core

// LessonSource builds a Lesson for a lesson ID.
type LessonSource interface {
	Load(id string) (*Lesson, error)
}

// Renderer converts an assembled Lesson into a final output format.
type Renderer interface {
	Render(lesson *Lesson) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
