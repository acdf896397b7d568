package compliance

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gautam-rahul-09/genai-verification-system/internal/model"
)

func TestEvaluate_Compliant(t *testing.T) {
	v, err := Evaluate(5000000, 10000000, 0.75)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if v.LTV != 0.5 {
		t.Errorf("Expected LTV 0.5, got %v", v.LTV)
	}
	if !v.Compliant {
		t.Error("Expected compliant verdict")
	}
}

func TestEvaluate_Violation(t *testing.T) {
	v, err := Evaluate(8000000, 10000000, 0.75)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if v.LTV != 0.8 {
		t.Errorf("Expected LTV 0.8, got %v", v.LTV)
	}
	if v.Compliant {
		t.Error("Expected non-compliant verdict")
	}
}

func TestEvaluate_ExactlyAtCeiling(t *testing.T) {
	v, err := Evaluate(7500000, 10000000, 0.75)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !v.Compliant {
		t.Error("Expected LTV equal to ceiling to be compliant")
	}
}

func TestEvaluate_ZeroPropertyValue(t *testing.T) {
	_, err := Evaluate(5000000, 0, 0.75)
	if !errors.Is(err, ErrZeroPropertyValue) {
		t.Errorf("Expected ErrZeroPropertyValue, got %v", err)
	}
}

func TestParsePercentage(t *testing.T) {
	tests := []struct {
		input string
		want  *float64
	}{
		{"75%", floatPtr(0.75)},
		{"LTV capped at 80 %", floatPtr(0.80)},
		{"no percentage here", nil},
		{"", nil},
	}

	for _, tt := range tests {
		got := ParsePercentage(tt.input)
		if tt.want == nil {
			if got != nil {
				t.Errorf("ParsePercentage(%q) = %v, want nil", tt.input, *got)
			}
			continue
		}
		if got == nil || *got != *tt.want {
			t.Errorf("ParsePercentage(%q) = %v, want %v", tt.input, got, *tt.want)
		}
	}
}

func TestLoadRules_MissingFileUsesDefaults(t *testing.T) {
	store, err := LoadRules(model.RulesConfig{
		Path:                  filepath.Join(t.TempDir(), "absent.yaml"),
		DefaultMaxLTVGeneral:  0.80,
		DefaultMaxLTVAbove75L: 0.75,
	})
	if err != nil {
		t.Fatalf("Expected no error for missing file, got %v", err)
	}
	if store.MaxLTVAbove75L != 0.75 || store.MaxLTVGeneral != 0.80 {
		t.Errorf("Expected defaults, got %v / %v", store.MaxLTVGeneral, store.MaxLTVAbove75L)
	}
}

func TestLoadRules_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := "max_ltv_general: \"80%\"\nmax_ltv_above_75L: \"75%\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := LoadRules(model.RulesConfig{
		Path:                  path,
		DefaultMaxLTVGeneral:  0.9,
		DefaultMaxLTVAbove75L: 0.9,
	})
	if err != nil {
		t.Fatalf("LoadRules failed: %v", err)
	}
	if store.MaxLTVGeneral != 0.80 {
		t.Errorf("Expected 0.80, got %v", store.MaxLTVGeneral)
	}
	if store.MaxLTVAbove75L != 0.75 {
		t.Errorf("Expected 0.75, got %v", store.MaxLTVAbove75L)
	}
}

func TestLoadRules_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	content := `{"max_ltv_above_75L": "75%"}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := LoadRules(model.RulesConfig{
		Path:                  path,
		DefaultMaxLTVGeneral:  0.80,
		DefaultMaxLTVAbove75L: 0.9,
	})
	if err != nil {
		t.Fatalf("LoadRules failed: %v", err)
	}
	if store.MaxLTVAbove75L != 0.75 {
		t.Errorf("Expected 0.75 from file, got %v", store.MaxLTVAbove75L)
	}
	if store.MaxLTVGeneral != 0.80 {
		t.Errorf("Expected default 0.80, got %v", store.MaxLTVGeneral)
	}
}

func TestSaveRules_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	general := "80%"
	rules := model.RegulatoryRules{
		MaxLTVGeneral:   &general,
		RiskWeightRules: []string{"50% risk weight for LTV below 80%"},
	}

	if err := SaveRules(rules, path); err != nil {
		t.Fatalf("SaveRules failed: %v", err)
	}

	store, err := LoadRules(model.RulesConfig{Path: path, DefaultMaxLTVAbove75L: 0.75})
	if err != nil {
		t.Fatalf("LoadRules failed: %v", err)
	}
	if store.MaxLTVGeneral != 0.80 {
		t.Errorf("Expected 0.80 after round trip, got %v", store.MaxLTVGeneral)
	}
}

func TestCeilingFor(t *testing.T) {
	store := &RuleStore{MaxLTVGeneral: 0.80, MaxLTVAbove75L: 0.75}

	if got := store.CeilingFor(5000000); got != 0.80 {
		t.Errorf("CeilingFor(50L) = %v, want 0.80", got)
	}
	if got := store.CeilingFor(7500000); got != 0.80 {
		t.Errorf("CeilingFor(exactly 75L) = %v, want 0.80", got)
	}
	if got := store.CeilingFor(8000000); got != 0.75 {
		t.Errorf("CeilingFor(80L) = %v, want 0.75", got)
	}
}

func floatPtr(f float64) *float64 { return &f }
