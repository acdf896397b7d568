package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gautam-rahul-09/genai-verification-system/internal/model"
)

type fakeExtractor struct {
	failOn string
}

func (f *fakeExtractor) ExtractDocument(_ context.Context, path string) (model.DocumentType, *model.ReconciledField, error) {
	if f.failOn != "" && strings.Contains(path, f.failOn) {
		return model.DocTypeUnknown, nil, errors.New("unreadable document")
	}
	value := 6300000.0
	return model.DocTypeSaleDeed, &model.ReconciledField{
		Status:     model.StatusAgreement,
		FinalValue: &value,
		Agreement:  true,
	}, nil
}

func TestBatchProcessPathsKeepsOrder(t *testing.T) {
	b := NewBatchProcessor(&fakeExtractor{}, 4)
	paths := []string{"a.pdf", "b.pdf", "c.pdf", "d.pdf"}

	results := b.ProcessPaths(context.Background(), paths)

	if len(results) != len(paths) {
		t.Fatalf("results = %d, want %d", len(results), len(paths))
	}
	for i, r := range results {
		if r.Path != paths[i] {
			t.Errorf("results[%d].Path = %q, want %q", i, r.Path, paths[i])
		}
		if r.Error != nil {
			t.Errorf("results[%d] unexpected error: %v", i, r.Error)
		}
		if r.Field == nil || r.Field.FinalValue == nil || *r.Field.FinalValue != 6300000 {
			t.Errorf("results[%d] missing reconciled value", i)
		}
	}
}

func TestBatchProcessPathsCapturesErrors(t *testing.T) {
	b := NewBatchProcessor(&fakeExtractor{failOn: "bad"}, 2)

	results := b.ProcessPaths(context.Background(), []string{"good.pdf", "bad.pdf"})

	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].Error != nil {
		t.Errorf("good.pdf: unexpected error %v", results[0].Error)
	}
	if results[1].Error == nil {
		t.Error("bad.pdf: expected an error")
	}
}

func TestBatchProcessPathsEmpty(t *testing.T) {
	b := NewBatchProcessor(&fakeExtractor{}, 2)

	results := b.ProcessPaths(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("results = %d, want 0", len(results))
	}
}

func TestListDocuments(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"deed.pdf", "loan.PDF", "card.png", "notes.txt", "rules.yaml"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}

	paths, err := ListDocuments(dir)
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}

	want := []string{
		filepath.Join(dir, "card.png"),
		filepath.Join(dir, "deed.pdf"),
		filepath.Join(dir, "loan.PDF"),
	}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestListDocumentsMissingDir(t *testing.T) {
	if _, err := ListDocuments("/nonexistent/path"); err == nil {
		t.Error("expected an error for a missing directory")
	}
}
