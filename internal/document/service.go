package document

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/zombor/document-extractor/internal/scanning"
)

// IDGenerator generates unique prefixes for temporary files
type IDGenerator interface {
	Generate() string
}

// uuidGenerator generates random UUIDs
type uuidGenerator struct{}

func (g *uuidGenerator) Generate() string {
	return uuid.NewString()
}

// Rasterizer renders the first page of a PDF as a JPEG
type Rasterizer func(pdf []byte, dpi float64) (jpeg []byte, pages int, err error)

// Service materializes an upload as an image, extracts it and cleans up
type Service struct {
	extractor   *Extractor
	storage     Storage
	rasterize   Rasterizer
	dpi         float64
	idGenerator IDGenerator
}

// NewService creates a new Service rendering PDFs with go-fitz
func NewService(extractor *Extractor, storage Storage, dpi float64) *Service {
	return NewServiceWithDeps(extractor, storage, dpi, scanning.RasterizeFirstPage, &uuidGenerator{})
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(extractor *Extractor, storage Storage, dpi float64, rasterize Rasterizer, idGen IDGenerator) *Service {
	if dpi <= 0 {
		dpi = scanning.DefaultDPI
	}
	return &Service{
		extractor:   extractor,
		storage:     storage,
		rasterize:   rasterize,
		dpi:         dpi,
		idGenerator: idGen,
	}
}

var (
	unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9\s\-_]`)
	repeatedSpaces      = regexp.MustCompile(`\s+`)
)

// sanitizeFilename strips path separators and special characters and bounds the length
func sanitizeFilename(filename string) string {
	filename = filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filename, filepath.Ext(filename))

	base = unsafeFilenameChars.ReplaceAllString(base, "")
	base = repeatedSpaces.ReplaceAllString(base, "_")
	base = strings.Trim(base, "_ ")

	if len(base) > 50 {
		base = base[:50]
	}
	if base == "" {
		base = "upload"
	}
	if unsafeFilenameChars.MatchString(strings.TrimPrefix(ext, ".")) {
		ext = ""
	}

	return base + ext
}

// Process saves the upload, rasterizes page 1 of a PDF, extracts the record and
// removes every temporary file whatever the outcome. Extraction failures are
// *ExtractionError; anything else is an unexpected server-side failure.
func (s *Service) Process(ctx context.Context, doc *Descriptor, filename string, data []byte, contentType string) (Record, error) {
	name := fmt.Sprintf("%s_%s", s.idGenerator.Generate(), sanitizeFilename(filename))

	uploadKey, err := s.storage.Save(name, data)
	if err != nil {
		return nil, fmt.Errorf("saving upload: %w", err)
	}
	defer s.remove(uploadKey)

	imageKey := uploadKey
	imageType := contentType
	if scanning.IsPDF(filename, data) {
		page, pages, err := s.rasterize(data, s.dpi)
		if err != nil {
			return nil, fmt.Errorf("rasterizing PDF: %w", err)
		}
		if pages > 1 {
			slog.Info("Only the first PDF page is inspected", "filename", filename, "pages", pages)
		}

		imageKey, err = s.storage.Save(uploadKey+"_page1.jpg", page)
		if err != nil {
			return nil, fmt.Errorf("saving rasterized page: %w", err)
		}
		defer s.remove(imageKey)
		imageType = "image/jpeg"
	}

	imageData, err := s.storage.Get(imageKey)
	if err != nil {
		return nil, fmt.Errorf("loading image: %w", err)
	}

	record, err := s.extractor.Extract(ctx, doc, imageData, imageType)
	if err != nil {
		slog.Error("Failed to extract document",
			"document_type", doc.Type,
			"filename", filename,
			"content_type", contentType,
			"file_size", len(data),
			"cause", CauseName(err),
			"error", err,
		)
		return nil, err
	}

	return record, nil
}

// remove deletes a temporary file; failures are only logged
func (s *Service) remove(key string) {
	if err := s.storage.Delete(key); err != nil {
		slog.Warn("Failed to delete temporary file", "file", key, "error", err)
	}
}
