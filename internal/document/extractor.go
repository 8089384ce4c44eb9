package document

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/zombor/document-extractor/internal/scanning"
)

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Extractor turns an image into a Record for a given document type
type Extractor struct {
	scanner    scanning.Scanner
	schemas    map[DocumentType]*scanning.Schema
	timeout    time.Duration
	timeSource TimeSource
}

// NewExtractor creates an Extractor. A zero timeout leaves the scanner call
// bounded only by the caller's context.
func NewExtractor(scanner scanning.Scanner, timeout time.Duration) (*Extractor, error) {
	return NewExtractorWithDeps(scanner, timeout, &defaultTimeSource{})
}

// NewExtractorWithDeps creates an Extractor with a custom time source for testing
func NewExtractorWithDeps(scanner scanning.Scanner, timeout time.Duration, timeSrc TimeSource) (*Extractor, error) {
	schemas := make(map[DocumentType]*scanning.Schema)
	for _, d := range Documents() {
		s, err := scanning.ObjectSchema(string(d.Type), d.Fields)
		if err != nil {
			return nil, fmt.Errorf("building %s schema: %w", d.Type, err)
		}
		schemas[d.Type] = s
	}

	return &Extractor{
		scanner:    scanner,
		schemas:    schemas,
		timeout:    timeout,
		timeSource: timeSrc,
	}, nil
}

// Extract runs the document prompt against the image and builds the record.
// Failures after the descriptor is resolved are returned as *ExtractionError.
func (e *Extractor) Extract(ctx context.Context, doc *Descriptor, imageData []byte, contentType string) (Record, error) {
	schema, ok := e.schemas[doc.Type]
	if !ok {
		return nil, fmt.Errorf("unknown document type %q", doc.Type)
	}

	img, err := scanning.PrepareImage(imageData, contentType)
	if err != nil {
		return nil, &ExtractionError{Cause: ErrUnreadableImage, Err: err}
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	text, err := e.scanner.Generate(ctx, doc.Prompt, img)
	if err != nil {
		return nil, &ExtractionError{Cause: ErrScan, Err: err}
	}

	fields, err := schema.Decode(text)
	if err != nil {
		slog.Debug("Unparseable model answer", "document_type", doc.Type, "answer", text)
		return nil, &ExtractionError{Cause: ErrParse, Err: err}
	}

	record := doc.build(fields, e.timeSource.Now().Format(time.RFC3339))

	slog.Info("Extracted document", append([]any{"document_type", record.Type()}, doc.summary(record)...)...)

	return record, nil
}
