package document

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500

	// multipart parts beyond this are spooled to disk by net/http
	multipartMemory = 8 << 20
)

// envelope is the body of every API response
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

type statusResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Message   string            `json:"message,omitempty"`
	Endpoints map[string]string `json:"endpoints"`
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

var serverError = envelope{
	Success: false,
	Error:   "Server error",
	Message: "An unexpected error occurred while processing the upload",
}

func writeServerError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, serverError)
}

func (s *Server) status() statusResponse {
	endpoints := make(map[string]string)
	for _, doc := range Documents() {
		endpoints[doc.Slug] = "/api/extract/" + doc.Slug
	}
	return statusResponse{
		Status:    "running",
		Service:   serviceName,
		Version:   s.config.Version,
		Endpoints: endpoints,
	}
}

// handleIndex describes the service and links the status endpoint
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	resp := s.status()
	resp.Message = "API is running successfully"
	resp.Endpoints["status"] = "/api/status"
	writeJSON(w, http.StatusOK, resp)
}

// handleStatus describes the service
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.status())
}

// handleExtract handles an upload for one document type
func (s *Server) handleExtract(doc *Descriptor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		entry := &JournalEntry{DocumentType: doc.Type, CreatedAt: start.UTC()}

		r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)
		code, body := s.extract(r, doc, entry)

		entry.DurationMS = time.Since(start).Milliseconds()
		s.record(entry)
		writeJSON(w, code, body)
	}
}

// extract runs one upload through the service and fills in the journal entry
func (s *Server) extract(r *http.Request, doc *Descriptor, entry *JournalEntry) (int, envelope) {
	header, err := uploadedFile(r)
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}
	if err != nil {
		entry.Outcome = OutcomeInvalidRequest
		return uploadError(doc, err)
	}
	entry.Filename = header.Filename

	f, err := header.Open()
	if err != nil {
		slog.Error("Error opening uploaded file", "filename", header.Filename, "error", err)
		entry.Outcome = OutcomeServerError
		return http.StatusInternalServerError, serverError
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("Error reading file data", "error", err, "filename", header.Filename)
		entry.Outcome = OutcomeServerError
		return http.StatusInternalServerError, serverError
	}

	contentType := detectContentType(header)
	slog.Info("Received upload",
		"document_type", doc.Type,
		"filename", header.Filename,
		"content_type", contentType,
		"file_size", len(data),
	)

	record, err := s.service.Process(r.Context(), doc, header.Filename, data, contentType)
	if err != nil {
		var extractionErr *ExtractionError
		if errors.As(err, &extractionErr) {
			entry.Outcome = OutcomeExtractionFailed
			entry.Cause = CauseName(err)
			return http.StatusInternalServerError, envelope{
				Success: false,
				Error:   "Extraction failed",
				Message: doc.FailureMessage(),
			}
		}

		slog.Error("Error processing upload", "document_type", doc.Type, "filename", header.Filename, "error", err)
		entry.Outcome = OutcomeServerError
		return http.StatusInternalServerError, serverError
	}

	entry.Outcome = OutcomeSuccess
	return http.StatusOK, envelope{
		Success: true,
		Message: doc.SuccessMessage(),
		Data:    record,
	}
}

// uploadedFile parses the form and returns the "file" part.
// A part sent with filename="" lands in the form values, which is how an
// empty filename is told apart from a missing part.
func uploadedFile(r *http.Request) (*multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return nil, err
	}

	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		if _, ok := r.MultipartForm.Value["file"]; ok {
			return nil, ErrEmptyFilename
		}
		return nil, ErrNoFile
	}
	if files[0].Filename == "" {
		return nil, ErrEmptyFilename
	}
	return files[0], nil
}

func uploadError(doc *Descriptor, err error) (int, envelope) {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		slog.Warn("Upload too large", "document_type", doc.Type, "limit", maxBytesErr.Limit)
		return http.StatusRequestEntityTooLarge, envelope{
			Success: false,
			Error:   "File too large",
			Message: "Maximum upload size is " + strconv.FormatInt(maxBytesErr.Limit>>20, 10) + " MB",
		}
	case errors.Is(err, ErrEmptyFilename):
		return http.StatusBadRequest, envelope{
			Success: false,
			Error:   "Empty filename",
			Message: "No file selected",
		}
	default:
		if !errors.Is(err, ErrNoFile) {
			slog.Warn("Error parsing multipart form", "document_type", doc.Type, "error", err)
		}
		return http.StatusBadRequest, envelope{
			Success: false,
			Error:   "No file provided",
			Message: doc.NoFileMessage(),
		}
	}
}

// detectContentType uses the part header, falling back to the file extension
func detectContentType(header *multipart.FileHeader) string {
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		switch strings.ToLower(filepath.Ext(header.Filename)) {
		case ".jpg", ".jpeg":
			contentType = "image/jpeg"
		case ".png":
			contentType = "image/png"
		case ".gif":
			contentType = "image/gif"
		case ".pdf":
			contentType = "application/pdf"
		case ".heic":
			contentType = "image/heic"
		case ".heif":
			contentType = "image/heif"
		default:
			contentType = "application/octet-stream"
		}
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

// handleListExtractions returns the newest journal entries
func (s *Server) handleListExtractions(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, envelope{
				Success: false,
				Error:   "Invalid limit",
				Message: "limit must be a positive integer",
			})
			return
		}
		limit = min(n, maxListLimit)
	}

	entries, err := s.journal.List(limit)
	if err != nil {
		slog.Error("Error listing extractions", "error", err)
		writeServerError(w)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: strconv.Itoa(len(entries)) + " extractions",
		Data:    entries,
	})
}

// record journals an entry; failures never change the response
func (s *Server) record(entry *JournalEntry) {
	if err := s.journal.Record(entry); err != nil {
		slog.Warn("Failed to journal extraction", "document_type", entry.DocumentType, "error", err)
	}
}
