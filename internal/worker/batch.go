package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gautam-rahul-09/genai-verification-system/internal/model"
)

// Extractor extracts the monetary field of a single document: text,
// classification, then dual-model consensus
type Extractor interface {
	ExtractDocument(ctx context.Context, path string) (model.DocumentType, *model.ReconciledField, error)
}

// DocumentJob extracts one document file
type DocumentJob struct {
	Path      string
	Extractor Extractor
}

// Execute runs the extraction job
func (j *DocumentJob) Execute(ctx context.Context) Result {
	docType, field, err := j.Extractor.ExtractDocument(ctx, j.Path)
	return &DocumentResult{
		Path:    j.Path,
		DocType: docType,
		Field:   field,
		Error:   err,
	}
}

// DocumentResult is the outcome of one document extraction
type DocumentResult struct {
	Path    string
	DocType model.DocumentType
	Field   *model.ReconciledField
	Error   error
}

// GetError returns the error from the extraction result
func (r *DocumentResult) GetError() error {
	return r.Error
}

// BatchProcessor extracts multiple documents concurrently
type BatchProcessor struct {
	extractor   Extractor
	concurrency int
}

// NewBatchProcessor creates a batch processor with the given
// concurrency
func NewBatchProcessor(extractor Extractor, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		extractor:   extractor,
		concurrency: concurrency,
	}
}

// ProcessPaths extracts the given document files concurrently.
// Results keep the submission order of the paths.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*DocumentResult {
	if len(paths) == 0 {
		return []*DocumentResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&DocumentJob{
			Path:      path,
			Extractor: b.extractor,
		})
	}

	results := pool.Wait()

	byPath := make(map[string]*DocumentResult, len(results))
	for _, result := range results {
		dr := result.(*DocumentResult)
		byPath[dr.Path] = dr
	}

	ordered := make([]*DocumentResult, 0, len(paths))
	for _, path := range paths {
		if dr, ok := byPath[path]; ok {
			ordered = append(ordered, dr)
		}
	}
	return ordered
}

// ProcessDir lists the documents in a directory and extracts them
// concurrently
func (b *BatchProcessor) ProcessDir(ctx context.Context, dir string) ([]*DocumentResult, error) {
	paths, err := ListDocuments(dir)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	return b.ProcessPaths(ctx, paths), nil
}

// documentExtensions are the file types the OCR engine accepts
var documentExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tiff": true,
}

// ListDocuments returns the processable document files directly under
// dir, sorted by name
func ListDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if documentExtensions[ext] {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(paths)
	return paths, nil
}
