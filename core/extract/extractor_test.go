package extract

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/gaurav-prasanna/dwlg/core"
	"github.com/gaurav-prasanna/dwlg/internal/metrics"
	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func association(question string, answers ...RawAlternative) RawInquiry {
	return RawInquiry{
		InquiryType:   "ASSOCIATION",
		SelectionType: "SINGLE",
		InquiryText:   question,
		SubInquiries:  []RawSubInquiry{{Alternatives: answers}},
	}
}

func TestLoadFile(t *testing.T) {
	m := metrics.New()
	lesson, err := New("testdata", DefaultPolicy(), nil, m).Load("42")
	require.NoError(t, err)

	text := "Allein reisen ist beliebt.\n\nViele Menschen sind zufrieden ...\nAndere nicht."
	teaser := "Immer mehr Menschen reisen allein."
	original := "https://www.dw.com/de/singlereisen/a-3"
	want := &core.Lesson{
		ID:     42,
		Course: "top-thema",
		Name:   "Singlereisen liegen im Trend",
		Image:  &core.Image{URL: "https://static.dw.com/image/42_302.jpg", Name: "Frau mit Koffer"},
		Audio: &core.Audio{
			URL:      "https://radiodownloaddw-a.akamaihd.net/42.mp3",
			Name:     "Singlereisen liegen im Trend",
			Duration: 3*time.Minute + 25*time.Second,
		},
		Manuscript: core.Manuscript{
			Teaser: &teaser,
			Text:   &text,
			HTML:   "<p>Allein reisen ist beliebt.</p>\n<p>Viele Menschen  sind&nbsp;zufrieden …<br />Andere nicht.</p>",
		},
		Items: []core.Item{
			core.AssociationItem{
				Question: "Wer reist gern allein?",
				Answers:  []core.Answer{{Text: "Viele Menschen", Correct: true}, {Text: "niemand"}},
			},
			core.AssociationItem{
				Question: "Sie ist ___ zufrieden.",
				Answers:  []core.Answer{{Text: "sehr", Correct: true}, {Text: "ziemlich", Correct: true}, {Text: "grün"}},
				Multiple: true,
			},
		},
		OriginalURL: &original,
		FetchedAt:   time.Date(2024, 3, 1, 10, 15, 30, 123456000, time.UTC),
	}
	if diff := cmp.Diff(want, lesson); diff != "" {
		t.Fatalf("lesson mismatch (-want +got):\n%s", diff)
	}

	require.Equal(t, 1.0, testutil.ToFloat64(m.ExercisesDropped))
	require.Equal(t, 1.0, testutil.ToFloat64(m.ItemsSkipped.WithLabelValues("GAP_FILLING", "TEXT")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.ItemsSkipped.WithLabelValues("SORTING", "SINGLE")))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := New("testdata", DefaultPolicy(), nil, nil).Load("7")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrSchema)
}

func TestLessonTruncatesItems(t *testing.T) {
	raw := &RawLesson{Course: "top-thema", Lesson: RawLessonInfo{ID: 1, Name: "Fünf Übungen"}}
	for i := 0; i < 5; i++ {
		raw.Exercises = append(raw.Exercises, RawExercise{
			NamedURL:  fmt.Sprintf("/de/e-%d", i),
			Name:      fmt.Sprintf("Übung %d", i),
			Inquiries: []RawInquiry{association(fmt.Sprintf("Frage %d", i), RawAlternative{AlternativeText: "ja", IsCorrect: true})},
		})
	}

	lesson, err := New("", DefaultPolicy(), nil, nil).Lesson(raw)
	require.NoError(t, err)
	require.Len(t, lesson.Items, 3)
	for i, item := range lesson.Items {
		require.Equal(t, fmt.Sprintf("Frage %d", i), item.(core.AssociationItem).Question)
	}

	policy := DefaultPolicy()
	policy.MaxItems = 0
	lesson, err = New("", policy, nil, nil).Lesson(raw)
	require.NoError(t, err)
	require.Len(t, lesson.Items, 5)
}

func TestLessonSchemaViolations(t *testing.T) {
	audio := RawAudio{MP3Src: "a.mp3", Name: "a", FormattedDuration: "01:00"}

	cases := map[string]*RawLesson{
		"two audios": {
			Lesson: RawLessonInfo{ID: 1, Audios: []RawAudio{audio, audio}},
		},
		"bad duration": {
			Lesson: RawLessonInfo{ID: 1, Audios: []RawAudio{{FormattedDuration: "1:00:00"}}},
		},
		"two sub-inquiries": {
			Lesson: RawLessonInfo{ID: 1},
			Exercises: []RawExercise{{Inquiries: []RawInquiry{{
				InquiryType:   "ASSOCIATION",
				SelectionType: "MULTIPLE",
				SubInquiries:  []RawSubInquiry{{}, {}},
			}}}},
		},
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := New("", DefaultPolicy(), nil, nil).Lesson(raw)
			require.ErrorIs(t, err, ErrSchema)
		})
	}
}

func TestLessonOptionalParts(t *testing.T) {
	raw := &RawLesson{
		Lesson: RawLessonInfo{ID: 9, Name: "Leer", FetchDate: "gestern"},
		Extras: RawExtras{ExternalLinks: []RawLink{{Name: "Originalartikel", URL: "http://www.dw.com/a"}}},
	}
	lesson, err := New("", DefaultPolicy(), nil, nil).Lesson(raw)
	require.NoError(t, err)
	require.Nil(t, lesson.Image)
	require.Nil(t, lesson.Audio)
	require.Nil(t, lesson.Manuscript.Text)
	require.Nil(t, lesson.Manuscript.Teaser)
	require.Nil(t, lesson.OriginalURL)
	require.Empty(t, lesson.Items)
	require.True(t, lesson.FetchedAt.IsZero())
}

func TestParseItem(t *testing.T) {
	item, err := ParseItem(association("Er ist ...... zufrieden."))
	require.NoError(t, err)
	require.Equal(t, "Er ist ___ zufrieden.", item.(core.AssociationItem).Question)

	item, err = ParseItem(association("Er ist …… zufrieden und … froh."))
	require.NoError(t, err)
	require.Equal(t, "Er ist ___ zufrieden und ___ froh.", item.(core.AssociationItem).Question)

	item, err = ParseItem(association("Ende."))
	require.NoError(t, err)
	require.Equal(t, "Ende.", item.(core.AssociationItem).Question)

	_, err = ParseItem(RawInquiry{InquiryType: "ASSOCIATION", SelectionType: "TEXT"})
	require.ErrorIs(t, err, ErrSkipped)
	var skipped *SkippedError
	require.True(t, errors.As(err, &skipped))
	require.Equal(t, "TEXT", skipped.SelectionType)

	_, err = ParseItem(RawInquiry{InquiryType: "ASSOCIATION", SelectionType: "SINGLE"})
	require.ErrorIs(t, err, ErrSchema)
}

func TestParseAnswer(t *testing.T) {
	require.Equal(t, core.Answer{Text: "gut", Correct: true}, ParseAnswer(RawAlternative{AlternativeText: "...  gut", IsCorrect: true}))
	require.Equal(t, core.Answer{Text: "gut"}, ParseAnswer(RawAlternative{AlternativeText: "…gut"}))
	require.Equal(t, core.Answer{Text: "gut..."}, ParseAnswer(RawAlternative{AlternativeText: " gut… "}))

	for _, in := range []string{"...\u202fgut", "…\u2009gut", "..\u3000gut", "..\vgut"} {
		require.Equal(t, "gut", ParseAnswer(RawAlternative{AlternativeText: in}).Text, "input %q", in)
	}
}

func TestParseAudio(t *testing.T) {
	audio, err := ParseAudio(RawAudio{MP3Src: "x.mp3", Name: " Titel ", FormattedDuration: "12:07"})
	require.NoError(t, err)
	require.Equal(t, core.Audio{URL: "x.mp3", Name: "Titel", Duration: 12*time.Minute + 7*time.Second}, audio)

	for _, bad := range []string{"", "3m", "1:2:3", " 01:00", "aa:bb"} {
		_, err := ParseAudio(RawAudio{FormattedDuration: bad})
		require.ErrorIs(t, err, ErrSchema, "duration %q", bad)
	}
}

func TestParseExercise(t *testing.T) {
	ex, skipped, err := ParseExercise(RawExercise{
		NamedURL:    "/de/uebung/e-1",
		Name:        " Übung  1 ",
		Description: "<p>Lies den <i>Text</i>.</p>",
		Inquiries: []RawInquiry{
			{InquiryType: "CLOZE", SelectionType: "TEXT"},
			association("Frage?", RawAlternative{AlternativeText: "Antwort"}),
		},
	}, "https://learngerman.dw.com")
	require.NoError(t, err)
	require.Equal(t, "https://learngerman.dw.com/de/uebung/e-1", ex.URL)
	require.Equal(t, "Übung 1", ex.Name)
	require.Equal(t, "Lies den Text.", ex.Description)
	require.Len(t, ex.Items, 1)
	require.Len(t, skipped, 1)

	require.Equal(t, "https://example.com/x", ResolveURL("https://example.com/x", "https://learngerman.dw.com"))
}

func TestParseManuscript(t *testing.T) {
	empty := ""
	require.Nil(t, ParseManuscript(RawManuscript{Manuscript: &empty}).Text)
	require.Nil(t, ParseManuscript(RawManuscript{}).Text)

	html := "<p>A</p><p>B</p>"
	m := ParseManuscript(RawManuscript{Manuscript: &html})
	require.Equal(t, "A\n\nB", *m.Text)
	require.Equal(t, html, m.HTML)
}
