package extract

// The types below mirror the lesson files written by the scraper. Only the
// fields the pipeline reads are declared; everything else is ignored.

// RawLesson is the top-level content of a lesson-<id>.json file.
type RawLesson struct {
	Course     string        `json:"course"`
	Lesson     RawLessonInfo `json:"lesson"`
	Manuscript RawManuscript `json:"manuscript"`
	Exercises  []RawExercise `json:"exercises"`
	Extras     RawExtras     `json:"extras"`
}

type RawLessonInfo struct {
	ID               int64            `json:"id"`
	Name             string           `json:"name"`
	MainContentImage *RawImage        `json:"mainContentImage"`
	Audios           []RawAudio       `json:"audios"`
	FetchDate        string           `json:"__fetch_date"`
}

type RawImage struct {
	StaticURL string `json:"staticUrl"`
	Name      string `json:"name"`
}

type RawAudio struct {
	MP3Src            string `json:"mp3Src"`
	Name              string `json:"name"`
	FormattedDuration string `json:"formattedDuration"`
}

type RawManuscript struct {
	Teaser     *string `json:"teaser"`
	Manuscript *string `json:"manuscript"`
}

type RawExercise struct {
	NamedURL    string       `json:"namedUrl"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Inquiries   []RawInquiry `json:"inquiries"`
}

type RawInquiry struct {
	InquiryType   string          `json:"inquiryType"`
	SelectionType string          `json:"selectionType"`
	InquiryText   string          `json:"inquiryText"`
	SubInquiries  []RawSubInquiry `json:"subInquiries"`
}

type RawSubInquiry struct {
	Alternatives []RawAlternative `json:"alternatives"`
}

type RawAlternative struct {
	AlternativeText string `json:"alternativeText"`
	IsCorrect       bool   `json:"isCorrect"`
}

type RawExtras struct {
	ExternalLinks []RawLink `json:"externalLinks"`
}

type RawLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
