// Package pipeline orchestrates a verification run: document text
// extraction, classification, dual-model consensus, identity
// matching, and the regulatory compliance decision.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gautam-rahul-09/genai-verification-system/internal/cache"
	"github.com/gautam-rahul-09/genai-verification-system/internal/classify"
	"github.com/gautam-rahul-09/genai-verification-system/internal/compliance"
	"github.com/gautam-rahul-09/genai-verification-system/internal/consensus"
	"github.com/gautam-rahul-09/genai-verification-system/internal/identity"
	"github.com/gautam-rahul-09/genai-verification-system/internal/llm"
	"github.com/gautam-rahul-09/genai-verification-system/internal/model"
	"github.com/gautam-rahul-09/genai-verification-system/internal/ocr"
)

// TextExtractor turns a document file into text. Satisfied by the
// OCR engine.
type TextExtractor interface {
	ProcessDocument(path string) (string, error)
}

// Pipeline wires the collaborators behind one verification run
type Pipeline struct {
	ocr      TextExtractor
	engine   *consensus.Engine
	modelA   *llm.Checked
	modelB   *llm.Checked
	rules    *compliance.RuleStore
	cache    cache.Cache
	renderer *Renderer
	config   *model.Config
}

// NewPipeline constructs a pipeline from configuration. Model
// backends that cannot be constructed or reached come up in the
// unavailable state rather than failing the whole pipeline; the
// consensus engine routes their documents to human review.
func NewPipeline(ctx context.Context, cfg *model.Config, limiter consensus.Limiter) (*Pipeline, error) {
	return NewPipelineWithModels(cfg,
		checkedProvider(ctx, cfg.ModelA),
		checkedProvider(ctx, cfg.ModelB),
		limiter)
}

// NewPipelineWithModels builds a pipeline around already-constructed
// model collaborators. Used where the caller controls availability
// probing.
func NewPipelineWithModels(cfg *model.Config, modelA, modelB *llm.Checked, limiter consensus.Limiter) (*Pipeline, error) {
	rules, err := compliance.LoadRules(cfg.Rules)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}

	var textCache cache.Cache
	if cfg.Cache.Enabled {
		textCache = cache.NewLayeredCache(cfg.Cache.TTL, cacheDir(), cfg.Cache.TTL)
	}

	return &Pipeline{
		ocr:      ocr.NewEngine(cfg.OCR),
		engine:   consensus.NewEngine(modelA, modelB, limiter),
		modelA:   modelA,
		modelB:   modelB,
		rules:    rules,
		cache:    textCache,
		renderer: NewRenderer(cfg.Output.Verbose),
		config:   cfg,
	}, nil
}

func checkedProvider(ctx context.Context, cfg model.LLMConfig) *llm.Checked {
	provider, err := llm.NewProvider(ctx, llm.ConfigFromModel(cfg))
	if err != nil {
		name := cfg.Provider
		if name == "" {
			name = "model"
		}
		return llm.NewCheckedUnavailable(name)
	}
	return llm.NewChecked(ctx, provider)
}

func cacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "ltvverify")
}

// Rules exposes the loaded regulatory rule store
func (p *Pipeline) Rules() *compliance.RuleStore {
	return p.rules
}

// documentText returns the document's extracted text, from cache when
// the file is unchanged since the last run
func (p *Pipeline) documentText(path string) (string, error) {
	if p.cache == nil {
		return p.ocr.ProcessDocument(path)
	}

	key, err := cache.DocumentKey(path)
	if err != nil {
		return "", err
	}

	if val, found := p.cache.Get(key); found {
		return string(val), nil
	}

	text, err := p.ocr.ProcessDocument(path)
	if err != nil {
		return "", err
	}

	_ = p.cache.Set(key, []byte(text), p.config.Cache.TTL)
	return text, nil
}

func (p *Pipeline) usable(text string) bool {
	return len(strings.TrimSpace(text)) >= p.config.OCR.MinTextLength
}

// ExtractDocument extracts the monetary field of one document: text,
// classification, dual-model consensus. Batch mode runs this per file.
func (p *Pipeline) ExtractDocument(ctx context.Context, path string) (model.DocumentType, *model.ReconciledField, error) {
	text, err := p.documentText(path)
	if err != nil {
		return model.DocTypeUnknown, nil, err
	}
	if !p.usable(text) {
		return model.DocTypeUnknown, nil, fmt.Errorf("unreadable document: %s", path)
	}

	docType := classify.Detect(text)
	if docType == model.DocTypeUnknown {
		return docType, nil, fmt.Errorf("unrecognized document type: %s", path)
	}

	field, err := p.engine.ExtractFinancials(ctx, text, docType)
	if err != nil {
		return docType, nil, err
	}
	return docType, field, nil
}

// VerifyRun executes the full three-document verification flow and
// always returns a report; every failure mode becomes a terminal
// pending-review report carrying the reason verbatim.
func (p *Pipeline) VerifyRun(ctx context.Context, saleDeedPath, loanDocPath, aadhaarPath string) (*model.Report, error) {
	report := model.NewReport()
	report.ModelsUsed = model.ModelsUsed{
		ModelA: p.modelA.Available(),
		ModelB: p.modelB.Available(),
	}

	// 1. Text extraction with readability checks
	saleText, ok := p.readDocument(report, saleDeedPath)
	if !ok {
		return report, nil
	}
	loanText, ok := p.readDocument(report, loanDocPath)
	if !ok {
		return report, nil
	}
	aadhaarText, ok := p.readDocument(report, aadhaarPath)
	if !ok {
		return report, nil
	}

	// 2. Classification must confirm each document's claimed role
	if got := classify.Detect(saleText); got != model.DocTypeSaleDeed {
		report.MarkPendingReview(fmt.Sprintf("%s not recognized as a sale deed", saleDeedPath))
		return report, nil
	}
	if got := classify.Detect(loanText); got != model.DocTypeLoanDoc {
		report.MarkPendingReview(fmt.Sprintf("%s not recognized as a loan document", loanDocPath))
		return report, nil
	}

	// 3. Dual-model extraction of both monetary fields
	propertyField, err := p.engine.ExtractFinancials(ctx, saleText, model.DocTypeSaleDeed)
	if err != nil {
		return nil, fmt.Errorf("extract sale deed: %w", err)
	}
	report.PropertyField = propertyField
	if propertyField.Status != model.StatusAgreement {
		report.MarkPendingReview(propertyField.Reason)
		return report, nil
	}

	loanField, err := p.engine.ExtractFinancials(ctx, loanText, model.DocTypeLoanDoc)
	if err != nil {
		return nil, fmt.Errorf("extract loan document: %w", err)
	}
	report.LoanField = loanField
	if loanField.Status != model.StatusAgreement {
		report.MarkPendingReview(loanField.Reason)
		return report, nil
	}

	// 4. Identity extraction
	aadhaar, err := p.engine.ExtractAadhaar(ctx, aadhaarText)
	if err != nil {
		return nil, fmt.Errorf("extract aadhaar: %w", err)
	}
	if aadhaar.Status != model.StatusAgreement {
		report.MarkPendingReview(aadhaar.Reason)
		return report, nil
	}
	if aadhaar.Name == "" {
		report.MarkPendingReview("aadhaar holder name missing")
		return report, nil
	}

	// 5. The Aadhaar holder must be the loan applicant and a party
	// to the sale
	summary := &model.IdentitySummary{
		AadhaarName:    aadhaar.Name,
		AadhaarDOB:     aadhaar.DOB,
		AadhaarMasked:  identity.MaskAadhaar(aadhaar.AadhaarNumber),
		ApplicantName:  loanField.ApplicantName,
		VendorName:     propertyField.VendorName,
		VendeeName:     propertyField.VendeeName,
		ApplicantMatch: identity.NamesMatch(aadhaar.Name, loanField.ApplicantName),
		VendorMatch:    identity.NamesMatch(aadhaar.Name, propertyField.VendorName),
		VendeeMatch:    identity.NamesMatch(aadhaar.Name, propertyField.VendeeName),
	}
	report.Identity = summary

	if !summary.ApplicantMatch || !(summary.VendorMatch || summary.VendeeMatch) {
		report.MarkPendingReview("identity mismatch: aadhaar holder not matched across documents")
		return report, nil
	}

	// 6. Compliance decision
	loanAmount := *loanField.FinalValue
	propertyValue := *propertyField.FinalValue

	verdict, err := compliance.Evaluate(loanAmount, propertyValue, p.rules.CeilingFor(loanAmount))
	if err != nil {
		report.MarkPendingReview(err.Error())
		return report, nil
	}

	report.LoanAmount = &loanAmount
	report.PropertyValue = &propertyValue
	report.Verdict = &verdict
	report.Confidence = model.ConfidenceHigh
	report.HumanReviewRequired = false

	if verdict.Compliant {
		report.FinalDecision = model.DecisionCompliant
	} else {
		report.FinalDecision = model.DecisionViolation
		report.Reason = fmt.Sprintf("LTV %.2f exceeds ceiling %.2f", verdict.LTV, verdict.Threshold)
	}

	return report, nil
}

// readDocument extracts a document's text, marking the report for
// human review when the file is missing or unreadable
func (p *Pipeline) readDocument(report *model.Report, path string) (string, bool) {
	text, err := p.documentText(path)
	if err != nil {
		report.MarkPendingReview(fmt.Sprintf("cannot read document %s: %v", path, err))
		return "", false
	}
	if !p.usable(text) {
		report.MarkPendingReview(fmt.Sprintf("unreadable document: %s", path))
		return "", false
	}
	return text, true
}

// RenderReport writes the report JSON and prints the stdout summary
func (p *Pipeline) RenderReport(report *model.Report, jsonPath string) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if p.config.Output.Verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	p.renderer.RenderSummary(report)
	return nil
}
