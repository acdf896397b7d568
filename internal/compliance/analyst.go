package compliance

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/gautam-rahul-09/genai-verification-system/internal/llm"
	"github.com/gautam-rahul-09/genai-verification-system/internal/model"
)

// Analyst extracts regulatory rules from housing finance circular
// text. The local model does the structured extraction; when it is
// unavailable or returns garbage, a rule-based pass over the text
// fills in what it can.
type Analyst struct {
	model *llm.Checked
}

// NewAnalyst creates an analyst over the given model collaborator
func NewAnalyst(m *llm.Checked) *Analyst {
	return &Analyst{model: m}
}

// ExtractRules pulls the LTV ceilings, risk weight, provisioning, and
// condition rules out of circular text
func (a *Analyst) ExtractRules(ctx context.Context, documentText string) (model.RegulatoryRules, error) {
	raw, err := a.model.ExtractJSON(ctx, llm.ExtractRequest{Prompt: llm.RulesPrompt(documentText)})
	if err == nil {
		var rules model.RegulatoryRules
		if jerr := json.Unmarshal(raw, &rules); jerr == nil {
			return rules, nil
		}
	}

	return FallbackRules(documentText), nil
}

var (
	ltvPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)%.*loan to value`),
		regexp.MustCompile(`(?i)LTV.*?(\d+)%`),
		regexp.MustCompile(`(?i)loan to value.*?(\d+)%`),
	}

	above75Patterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)above.*?75.*?lakhs?.*?(\d+)%`),
		regexp.MustCompile(`(?i)₹75.*?lakhs?.*?(\d+)%`),
		regexp.MustCompile(`(?i)exceeding.*?75.*?lakhs?.*?(\d+)%`),
	}

	riskWeightPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)risk weight.*?(\d+)%?`),
		regexp.MustCompile(`(?i)(\d+)%?.*?risk weight`),
	}

	sentenceSplitRe = regexp.MustCompile(`[.!?]+`)
)

var (
	provisioningKeywords = []string{"provisioning", "provision", "capital adequacy", "capital requirement"}
	conditionKeywords    = []string{"condition", "exception", "subject to", "provided that", "however"}
)

// FallbackRules runs the rule-based extraction over raw circular text
func FallbackRules(documentText string) model.RegulatoryRules {
	var rules model.RegulatoryRules

	for _, re := range ltvPatterns {
		if m := re.FindStringSubmatch(documentText); m != nil {
			v := m[1] + "%"
			rules.MaxLTVGeneral = &v
			break
		}
	}

	for _, re := range above75Patterns {
		if m := re.FindStringSubmatch(documentText); m != nil {
			v := m[1] + "%"
			rules.MaxLTVAbove75L = &v
			break
		}
	}

	seen := make(map[string]bool)
	for _, re := range riskWeightPatterns {
		for _, m := range re.FindAllStringSubmatch(documentText, -1) {
			v := m[1] + "%"
			if !seen[v] {
				seen[v] = true
				rules.RiskWeightRules = append(rules.RiskWeightRules, v)
			}
		}
	}

	rules.ProvisioningRules = sentencesContaining(documentText, provisioningKeywords)
	rules.ImportantConditions = sentencesContaining(documentText, conditionKeywords)

	return rules
}

// sentencesContaining returns each sentence of the text that mentions
// one of the keywords
func sentencesContaining(text string, keywords []string) []string {
	lower := strings.ToLower(text)

	var anyPresent bool
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			anyPresent = true
			break
		}
	}
	if !anyPresent {
		return nil
	}

	var out []string
	seen := make(map[string]bool)
	for _, sentence := range sentenceSplitRe.Split(text, -1) {
		trimmed := strings.TrimSpace(sentence)
		if trimmed == "" || seen[trimmed] {
			continue
		}
		lowerSentence := strings.ToLower(trimmed)
		for _, kw := range keywords {
			if strings.Contains(lowerSentence, kw) {
				seen[trimmed] = true
				out = append(out, trimmed)
				break
			}
		}
	}
	return out
}

// ExtractAndSave runs the extraction and writes the rules file
func (a *Analyst) ExtractAndSave(ctx context.Context, documentText, outputPath string) (model.RegulatoryRules, error) {
	rules, err := a.ExtractRules(ctx, documentText)
	if err != nil {
		return rules, err
	}
	if err := SaveRules(rules, outputPath); err != nil {
		return rules, fmt.Errorf("save rules: %w", err)
	}
	return rules, nil
}
