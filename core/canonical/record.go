// Package canonical builds the dataset record of a lesson, encodes it as a
// JSON line and computes its content hash.
//
// The hash covers everything except the metadata block, so a lesson hashes
// the same in every split and across re-runs. It changes only when the
// manuscript text or the items change upstream.
package canonical

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"

	"github.com/gaurav-prasanna/dwlg/core"
)

// Dataset is the dataset name stamped into every record.
const Dataset = "dwlg"

// Record returns the dataset record of lesson for split.
func Record(lesson *core.Lesson, split string) (Object, error) {
	items := make([]any, 0, len(lesson.Items))
	for _, item := range lesson.Items {
		obj, err := ItemRecord(item)
		if err != nil {
			return nil, fmt.Errorf("lesson %d: %w", lesson.ID, err)
		}
		items = append(items, obj)
	}

	return Object{
		{"text", lesson.Manuscript.Text},
		{"items", items},
		{"metadata", Object{
			{"dataset", Dataset},
			{"split", split},
			{"extra", Object{
				{"id", lesson.ID},
				{"course", lesson.Course},
				{"name", lesson.Name},
			}},
		}},
	}, nil
}

// ItemRecord returns the dataset layout of item.
func ItemRecord(item core.Item) (Object, error) {
	switch item := item.(type) {
	case core.AssociationItem:
		answers := make([]any, 0, len(item.Answers))
		for _, a := range item.Answers {
			answers = append(answers, Object{
				{"text", a.Text},
				{"correct", a.Correct},
			})
		}
		return Object{
			{"question", item.Question},
			{"answers", answers},
			{"multiple", item.Multiple},
		}, nil
	default:
		return nil, fmt.Errorf("no record layout for item kind %q", item.Kind())
	}
}

// Line encodes the record of lesson for split as one JSON line, without the
// trailing newline.
func Line(lesson *core.Lesson, split string) ([]byte, error) {
	record, err := Record(lesson, split)
	if err != nil {
		return nil, err
	}
	return Encoder{}.Marshal(record)
}

// Hash returns the hex SHA-1 of the record of lesson with the metadata
// block removed and keys sorted.
func Hash(lesson *core.Lesson) (string, error) {
	record, err := Record(lesson, "")
	if err != nil {
		return "", err
	}
	return HashRecord(record)
}

// HashRecord hashes an already built record. Only the content fields count.
func HashRecord(record Object) (string, error) {
	data, err := Encoder{SortKeys: true}.Marshal(record.Without("metadata"))
	if err != nil {
		return "", fmt.Errorf("encoding record for hashing: %w", err)
	}
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:]), nil
}
