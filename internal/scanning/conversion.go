package scanning

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/gen2brain/heic"
)

const (
	// DefaultDPI is the resolution PDF pages are rendered at
	DefaultDPI = 300

	jpegQuality = 95
)

// ErrUnsupportedImage is returned when the upload is not a decodable image
var ErrUnsupportedImage = errors.New("unsupported image format")

var pdfMagic = []byte("%PDF-")

// IsPDF reports whether an upload should be rasterized before scanning
func IsPDF(filename string, data []byte) bool {
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return true
	}
	return bytes.HasPrefix(data, pdfMagic)
}

// RasterizeFirstPage renders page 1 of a PDF at the given DPI and encodes it as JPEG.
// Remaining pages are ignored.
func RasterizeFirstPage(pdfData []byte, dpi float64) ([]byte, int, error) {
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return nil, 0, fmt.Errorf("opening PDF: %w", err)
	}
	defer doc.Close()

	pages := doc.NumPage()
	if pages == 0 {
		return nil, 0, fmt.Errorf("PDF has no pages")
	}

	img, err := doc.ImageDPI(0, dpi)
	if err != nil {
		return nil, pages, fmt.Errorf("rendering PDF page: %w", err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, pages, fmt.Errorf("encoding JPEG: %w", err)
	}

	return buf.Bytes(), pages, nil
}

// isHEICFormat checks if the image data is in HEIC/HEIF format
// HEIC files carry an ftyp box at offset 4 with a heic/heif/mif1/msf1 brand
func isHEICFormat(data []byte) bool {
	if len(data) < 12 {
		return false
	}
	if string(data[4:8]) != "ftyp" {
		return false
	}
	brand := string(data[8:12])
	return brand == "heic" || brand == "heif" || brand == "mif1" || brand == "msf1"
}

// isHEICMimeType checks if the MIME type indicates HEIC/HEIF format
func isHEICMimeType(mimeType string) bool {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	return strings.Contains(mimeType, "heic") || strings.Contains(mimeType, "heif")
}

// decodeImage decodes GIF and HEIC/HEIF data
func decodeImage(data []byte, mimeType string) (image.Image, error) {
	if isHEICFormat(data) || isHEICMimeType(mimeType) {
		img, err := heic.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decoding HEIC/HEIF image: %w", err)
		}
		return img, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}

// PrepareImage readies an uploaded or rasterized image for a Scanner.
// JPEG and PNG pass through untouched; GIF and HEIC/HEIF are transcoded to JPEG.
func PrepareImage(data []byte, contentType string) (Image, error) {
	if len(data) == 0 {
		return Image{}, fmt.Errorf("%w: empty image", ErrUnsupportedImage)
	}

	mimeType := strings.ToLower(strings.TrimSpace(contentType))
	if isHEICFormat(data) || isHEICMimeType(mimeType) {
		return transcodeJPEG(data, mimeType)
	}

	// Only the header is read; the bytes sent on are the upload itself
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return Image{}, fmt.Errorf("%w (supported: JPEG, PNG, GIF, HEIC, HEIF, PDF): %v", ErrUnsupportedImage, err)
		}
		return Image{}, fmt.Errorf("%w: reading image header: %v", ErrUnsupportedImage, err)
	}

	switch format {
	case "jpeg":
		return Image{Data: data, MIMEType: "image/jpeg"}, nil
	case "png":
		return Image{Data: data, MIMEType: "image/png"}, nil
	default:
		return transcodeJPEG(data, mimeType)
	}
}

// transcodeJPEG decodes formats that are not sent as-is and re-encodes them as JPEG
func transcodeJPEG(data []byte, mimeType string) (Image, error) {
	img, err := decodeImage(data, mimeType)
	if err != nil {
		return Image{}, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Image{}, fmt.Errorf("encoding JPEG: %w", err)
	}

	return Image{Data: buf.Bytes(), MIMEType: "image/jpeg"}, nil
}
