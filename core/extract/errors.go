package extract

import (
	"errors"
	"fmt"
)

var (
	// ErrSchema marks input that breaks an assumption about the upstream
	// payload shape. A batch run stops on it.
	ErrSchema = errors.New("unexpected lesson schema")

	// ErrSkipped marks a raw inquiry without a mapped item kind.
	ErrSkipped = errors.New("item kind not mapped")
)

// SkippedError reports the type tags of an inquiry that was not mapped to
// an item kind. It matches ErrSkipped with errors.Is.
type SkippedError struct {
	InquiryType   string
	SelectionType string
}

func (e *SkippedError) Error() string {
	return fmt.Sprintf("%v: %s/%s", ErrSkipped, e.InquiryType, e.SelectionType)
}

func (e *SkippedError) Unwrap() error { return ErrSkipped }
