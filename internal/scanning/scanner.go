package scanning

import "context"

// Image is an image ready to be handed to a Scanner
type Image struct {
	Data     []byte
	MIMEType string // image/jpeg or image/png once prepared
}

// Scanner defines the interface for multimodal extraction services
type Scanner interface {
	// Generate sends the prompt and image to the model and returns its raw text answer
	Generate(ctx context.Context, prompt string, img Image) (string, error)
	// Close closes the scanner and releases resources
	Close() error
}
