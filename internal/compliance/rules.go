package compliance

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/gautam-rahul-09/genai-verification-system/internal/model"
)

var percentageRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)

// ParsePercentage extracts a percentage from a rule string and
// converts it to a 0-1 fraction: "75%" → 0.75. Returns nil when no
// percentage is present.
func ParsePercentage(text string) *float64 {
	m := percentageRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	n /= 100
	return &n
}

// RuleStore holds the regulatory ceilings for a run. Loaded once at
// startup and injected read-only into the compliance decision.
type RuleStore struct {
	MaxLTVGeneral  float64
	MaxLTVAbove75L float64

	// Raw rules carried along for reporting
	Rules model.RegulatoryRules
}

// LoadRules reads the extracted-rules file (YAML or JSON by
// extension) and resolves the LTV ceilings, falling back to the
// configured defaults for rules that are absent or unparseable.
// A missing file is not an error: defaults apply.
func LoadRules(cfg model.RulesConfig) (*RuleStore, error) {
	store := &RuleStore{
		MaxLTVGeneral:  cfg.DefaultMaxLTVGeneral,
		MaxLTVAbove75L: cfg.DefaultMaxLTVAbove75L,
	}

	if cfg.Path == "" {
		return store, nil
	}

	data, err := os.ReadFile(cfg.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return store, nil
		}
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var rules model.RegulatoryRules
	switch filepath.Ext(cfg.Path) {
	case ".json":
		if err := json.Unmarshal(data, &rules); err != nil {
			return nil, fmt.Errorf("parse rules file %s: %w", cfg.Path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &rules); err != nil {
			return nil, fmt.Errorf("parse rules file %s: %w", cfg.Path, err)
		}
	}

	store.Rules = rules

	if rules.MaxLTVGeneral != nil {
		if p := ParsePercentage(*rules.MaxLTVGeneral); p != nil {
			store.MaxLTVGeneral = *p
		}
	}
	if rules.MaxLTVAbove75L != nil {
		if p := ParsePercentage(*rules.MaxLTVAbove75L); p != nil {
			store.MaxLTVAbove75L = *p
		}
	}

	return store, nil
}

// seventyFiveLakh is the loan size above which the stricter ceiling
// applies
const seventyFiveLakh = 7500000

// CeilingFor selects the LTV ceiling for a loan of the given size
func (s *RuleStore) CeilingFor(loanAmount float64) float64 {
	if loanAmount > seventyFiveLakh {
		return s.MaxLTVAbove75L
	}
	return s.MaxLTVGeneral
}

// SaveRules writes extracted rules to disk in YAML or JSON by
// extension
func SaveRules(rules model.RegulatoryRules, path string) error {
	var (
		data []byte
		err  error
	)
	switch filepath.Ext(path) {
	case ".json":
		data, err = json.MarshalIndent(rules, "", "  ")
	default:
		data, err = yaml.Marshal(rules)
	}
	if err != nil {
		return fmt.Errorf("marshal rules: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write rules file: %w", err)
	}
	return nil
}
