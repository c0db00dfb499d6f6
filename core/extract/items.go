package extract

import (
	"fmt"
	"regexp"

	"github.com/gaurav-prasanna/dwlg/core"
	"github.com/gaurav-prasanna/dwlg/core/normalize"
)

// Blank is the placeholder for a fill-in slot in a cloze question.
const Blank = "___"

var blankRun = regexp.MustCompile(`\.{2,}`)

type itemKey struct {
	inquiryType   string
	selectionType string
}

type itemBuilder func(raw RawInquiry) (core.Item, error)

// itemBuilders maps the (inquiryType, selectionType) tags of a raw inquiry
// to the builder of its item kind.
var itemBuilders = map[itemKey]itemBuilder{
	{"ASSOCIATION", "SINGLE"}:   buildAssociation,
	{"ASSOCIATION", "MULTIPLE"}: buildAssociation,
}

// ParseItem classifies a raw inquiry by its type tags and builds the item.
// Unmapped tags yield a *SkippedError.
func ParseItem(raw RawInquiry) (core.Item, error) {
	build, ok := itemBuilders[itemKey{raw.InquiryType, raw.SelectionType}]
	if !ok {
		return nil, &SkippedError{InquiryType: raw.InquiryType, SelectionType: raw.SelectionType}
	}
	return build(raw)
}

func buildAssociation(raw RawInquiry) (core.Item, error) {
	if len(raw.SubInquiries) != 1 {
		return nil, fmt.Errorf("%w: association inquiry has %d sub-inquiries, want 1", ErrSchema, len(raw.SubInquiries))
	}

	question := normalize.Text(raw.InquiryText, false)
	question = blankRun.ReplaceAllString(question, Blank)

	alternatives := raw.SubInquiries[0].Alternatives
	answers := make([]core.Answer, 0, len(alternatives))
	for _, alt := range alternatives {
		answers = append(answers, ParseAnswer(alt))
	}

	return core.AssociationItem{
		Question: question,
		Answers:  answers,
		Multiple: raw.SelectionType == "MULTIPLE",
	}, nil
}
