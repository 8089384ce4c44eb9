package document

import (
	"errors"
	"fmt"
)

// Validation errors are user-correctable and map to 400
var (
	ErrNoFile        = errors.New("no file provided")
	ErrEmptyFilename = errors.New("empty filename")
)

// Extraction causes. Responses stay generic; the cause is kept for logs and the journal.
var (
	ErrUnreadableImage = errors.New("image could not be read")
	ErrScan            = errors.New("extraction service call failed")
	ErrParse           = errors.New("extraction service answer could not be parsed")
)

// ExtractionError is returned by the Extractor for any failure after the image is materialized
type ExtractionError struct {
	Cause error
	Err   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%v: %v", e.Cause, e.Err)
}

func (e *ExtractionError) Unwrap() []error {
	return []error{e.Cause, e.Err}
}

// CauseName returns a short label for the extraction cause of err, or ""
func CauseName(err error) string {
	switch {
	case errors.Is(err, ErrUnreadableImage):
		return "image"
	case errors.Is(err, ErrScan):
		return "scan"
	case errors.Is(err, ErrParse):
		return "parse"
	}
	return ""
}
