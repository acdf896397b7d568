// Package ocr extracts text from scanned or digital documents. PDFs
// with an embedded text layer are read directly; scanned PDFs fall
// back to image extraction plus Tesseract OCR.
package ocr

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/otiai10/gosseract/v2"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/gautam-rahul-09/genai-verification-system/internal/model"
)

// ErrNotFound signals a missing input file
var ErrNotFound = errors.New("document not found")

// ErrUnsupportedFormat signals a file extension outside the supported
// set
var ErrUnsupportedFormat = errors.New("unsupported document format")

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tiff": true,
}

// Engine extracts text from PDF and image documents
type Engine struct {
	config model.OCRConfig
}

// NewEngine creates an OCR engine
func NewEngine(config model.OCRConfig) *Engine {
	if len(config.Languages) == 0 {
		config.Languages = []string{"eng"}
	}
	return &Engine{config: config}
}

// ProcessDocument extracts text from a PDF or image file
func (e *Engine) ProcessDocument(filePath string) (string, error) {
	if _, err := os.Stat(filePath); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, filePath)
		}
		return "", fmt.Errorf("stat %s: %w", filePath, err)
	}

	ext := strings.ToLower(filepath.Ext(filePath))

	switch {
	case ext == ".pdf":
		return e.extractFromPDF(filePath)
	case imageExtensions[ext]:
		return e.ocrImage(filePath)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// extractFromPDF reads the embedded text layer; if the PDF carries no
// usable text it is treated as scanned and goes through OCR
func (e *Engine) extractFromPDF(filePath string) (string, error) {
	text, err := e.extractTextLayer(filePath)
	if err == nil && strings.TrimSpace(text) != "" {
		return strings.TrimSpace(text), nil
	}

	text, err = e.ocrPDFPages(filePath)
	if err != nil {
		return "", fmt.Errorf("OCR fallback for %s: %w", filePath, err)
	}
	return strings.TrimSpace(text), nil
}

// extractTextLayer pulls text directly from the PDF's text layer
func (e *Engine) extractTextLayer(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer func() { _ = f.Close() }()

	var sb strings.Builder
	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			for _, word := range row.Content {
				sb.WriteString(word.S)
			}
			sb.WriteString("\n")
		}
	}

	return sb.String(), nil
}

// ocrPDFPages extracts the page images of a scanned PDF and runs OCR
// over each
func (e *Engine) ocrPDFPages(filePath string) (string, error) {
	tempDir, err := os.MkdirTemp("", "ltv_pdf_images")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(tempDir) }()

	if err := api.ExtractImagesFile(filePath, tempDir, nil, nil); err != nil {
		return "", fmt.Errorf("extract page images: %w", err)
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		return "", fmt.Errorf("read temp dir: %w", err)
	}

	var sb strings.Builder
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		pageText, err := e.ocrImage(filepath.Join(tempDir, entry.Name()))
		if err != nil {
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// ocrImage runs Tesseract over a single image file
func (e *Engine) ocrImage(imagePath string) (string, error) {
	client := gosseract.NewClient()
	defer func() { _ = client.Close() }()

	if e.config.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(e.config.TessdataPrefix); err != nil {
			return "", fmt.Errorf("set tessdata prefix: %w", err)
		}
	}
	if err := client.SetLanguage(e.config.Languages...); err != nil {
		return "", fmt.Errorf("set OCR language: %w", err)
	}
	if err := client.SetImage(imagePath); err != nil {
		return "", fmt.Errorf("set OCR image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR extraction failed: %w", err)
	}

	return strings.TrimSpace(text), nil
}
