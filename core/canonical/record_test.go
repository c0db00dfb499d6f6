package canonical

import (
	"testing"
	"time"

	"github.com/gaurav-prasanna/dwlg/core"
	"github.com/stretchr/testify/require"
)

func fixtureLesson() *core.Lesson {
	text := "Straße\n\nZweiter \"Absatz\" <b>&\u0001\t"
	return &core.Lesson{
		ID:         42,
		Course:     "top-thema",
		Name:       "Zufriedenheit",
		Manuscript: core.Manuscript{Text: &text},
		Items: []core.Item{
			core.AssociationItem{
				Question: "Er ist ___ zufrieden.",
				Answers:  []core.Answer{{Text: "sehr", Correct: true}, {Text: "kaum"}},
			},
		},
	}
}

// Expected bytes and digests were produced by Python's json.dumps with
// ensure_ascii=False, which is what older splits were hashed with.
func TestLine(t *testing.T) {
	line, err := Line(fixtureLesson(), "train")
	require.NoError(t, err)
	require.Equal(t,
		`{"text": "Straße\n\nZweiter \"Absatz\" <b>&\u0001\t", "items": [{"question": "Er ist ___ zufrieden.", "answers": [{"text": "sehr", "correct": true}, {"text": "kaum", "correct": false}], "multiple": false}], "metadata": {"dataset": "dwlg", "split": "train", "extra": {"id": 42, "course": "top-thema", "name": "Zufriedenheit"}}}`,
		string(line))
}

func TestHash(t *testing.T) {
	hash, err := Hash(fixtureLesson())
	require.NoError(t, err)
	require.Equal(t, "b62e3303e7289ea1f01d54aec43a68f5133188c7", hash)

	hash, err = Hash(&core.Lesson{ID: 1})
	require.NoError(t, err)
	require.Equal(t, "264af674e6d9ca4e679702f31180239fd240a3de", hash)
}

func TestHashIgnoresMetadata(t *testing.T) {
	base, err := Hash(fixtureLesson())
	require.NoError(t, err)

	other := fixtureLesson()
	other.ID = 77
	other.Course = "video-thema"
	other.Name = "Anders"
	hash, err := Hash(other)
	require.NoError(t, err)
	require.Equal(t, base, hash)

	for _, split := range []string{"", "train", "test"} {
		record, err := Record(fixtureLesson(), split)
		require.NoError(t, err)
		hash, err := HashRecord(record)
		require.NoError(t, err)
		require.Equal(t, base, hash)
	}
}

func TestHashTracksContent(t *testing.T) {
	base, err := Hash(fixtureLesson())
	require.NoError(t, err)

	changedText := fixtureLesson()
	text := "Straße"
	changedText.Manuscript.Text = &text

	changedAnswer := fixtureLesson()
	changedAnswer.Items = []core.Item{core.AssociationItem{
		Question: "Er ist ___ zufrieden.",
		Answers:  []core.Answer{{Text: "sehr", Correct: true}, {Text: "kaum", Correct: true}},
	}}

	noItems := fixtureLesson()
	noItems.Items = nil

	for _, lesson := range []*core.Lesson{changedText, changedAnswer, noItems} {
		hash, err := Hash(lesson)
		require.NoError(t, err)
		require.NotEqual(t, base, hash)
	}
}

type fakeItem struct{}

func (fakeItem) Kind() string { return "fake" }

func TestRecordRejectsUnknownItem(t *testing.T) {
	_, err := Record(&core.Lesson{Items: []core.Item{fakeItem{}}}, "train")
	require.ErrorContains(t, err, `"fake"`)
}

func TestEncoder(t *testing.T) {
	data, err := Encoder{SortKeys: true}.Marshal(Object{
		{"z", []any{1, int64(2), 2.5, 3.0, nil}},
		{"a", map[string]any{"y": true, "b": "ü"}},
		{"d", 2*time.Minute + 3*time.Second},
		{"t", time.Date(2024, 3, 1, 10, 15, 30, 123456000, time.UTC)},
	})
	require.NoError(t, err)
	require.Equal(t, `{"a": {"b": "ü", "y": true}, "d": "0:02:03", "t": "2024-03-01T10:15:30.123456", "z": [1, 2, 2.5, 3.0, null]}`, string(data))

	_, err = Encoder{}.Marshal(Object{{"bad", struct{}{}}})
	require.Error(t, err)
}

func TestTimedelta(t *testing.T) {
	require.Equal(t, "0:03:25", timedelta(3*time.Minute+25*time.Second))
	require.Equal(t, "2 days, 1:00:00.000005", timedelta(49*time.Hour+5*time.Microsecond))
	require.Equal(t, "1 day, 0:00:00", timedelta(24*time.Hour))
	require.Equal(t, "2024-03-01T10:15:30", isoformat(time.Date(2024, 3, 1, 10, 15, 30, 0, time.UTC)))
}
