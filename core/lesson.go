package core

import "time"

// Image is the main content image of a lesson.
type Image struct {
	URL  string
	Name string
}

// Audio is the single audio track attached to a lesson.
type Audio struct {
	URL      string
	Name     string
	Duration time.Duration
}

// Manuscript holds the lesson text. Teaser and Text are nil when the
// source has none. HTML keeps the raw markup for the renderers and is
// never part of a dataset record.
type Manuscript struct {
	Teaser *string
	Text   *string
	HTML   string
}

// Answer is one alternative of a multiple-choice item.
type Answer struct {
	Text    string
	Correct bool
}

// Item is a single gradable question. AssociationItem is the only
// variant built today.
type Item interface {
	Kind() string
}

// AssociationItem is a multiple-choice question. Multiple reports whether
// more than one answer may be selected.
type AssociationItem struct {
	Question string
	Answers  []Answer
	Multiple bool
}

// Kind implements Item.
func (AssociationItem) Kind() string { return "association" }

// Exercise is a quiz container holding the items kept for the dataset.
type Exercise struct {
	URL         string
	Name        string
	Description string
	Items       []Item
}

// Lesson is the assembled, immutable lesson aggregate.
type Lesson struct {
	ID          int64
	Course      string
	Name        string
	Image       *Image
	Audio       *Audio
	Manuscript  Manuscript
	Items       []Item
	OriginalURL *string
	FetchedAt   time.Time // zero when the scraper recorded no fetch date
}
