package consensus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/gautam-rahul-09/genai-verification-system/internal/identity"
	"github.com/gautam-rahul-09/genai-verification-system/internal/llm"
	"github.com/gautam-rahul-09/genai-verification-system/internal/model"
	"github.com/gautam-rahul-09/genai-verification-system/internal/parse"
)

// ErrUnknownDocumentType signals that no extraction schema exists for
// the classified document type
var ErrUnknownDocumentType = errors.New("no extraction schema for document type")

// Limiter throttles model calls per provider. Matched by the worker
// package's rate limiter.
type Limiter interface {
	Wait(ctx context.Context, key string) error
}

// Engine runs the same extraction prompt through both models and
// reconciles their answers. Each reconciliation is a pure function of
// the two extraction results; the engine holds no per-document state.
type Engine struct {
	modelA  *llm.Checked
	modelB  *llm.Checked
	limiter Limiter
}

// NewEngine creates a consensus engine over the two checked model
// collaborators. limiter may be nil to disable throttling.
func NewEngine(modelA, modelB *llm.Checked, limiter Limiter) *Engine {
	return &Engine{
		modelA:  modelA,
		modelB:  modelB,
		limiter: limiter,
	}
}

// queryBoth sends the prompt to both models concurrently. Both calls
// must finish before reconciliation proceeds; there is no
// partial-result path.
func (e *Engine) queryBoth(ctx context.Context, prompt string) (rawA, rawB []byte, errA, errB error) {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := e.wait(gctx, e.modelA.Name()); err != nil {
			errA = err
			return nil
		}
		rawA, errA = e.modelA.ExtractJSON(gctx, llm.ExtractRequest{Prompt: prompt})
		return nil
	})
	g.Go(func() error {
		if err := e.wait(gctx, e.modelB.Name()); err != nil {
			errB = err
			return nil
		}
		rawB, errB = e.modelB.ExtractJSON(gctx, llm.ExtractRequest{Prompt: prompt})
		return nil
	})

	_ = g.Wait()
	return rawA, rawB, errA, errB
}

func (e *Engine) wait(ctx context.Context, key string) error {
	if e.limiter == nil {
		return nil
	}
	return e.limiter.Wait(ctx, key)
}

// reviewRequired builds the terminal human-review result for model
// failures
func reviewRequired(errA, errB error) *model.ReconciledField {
	reason := "one model unavailable"
	if !errors.Is(errA, llm.ErrUnavailable) && !errors.Is(errB, llm.ErrUnavailable) {
		err := errA
		if err == nil {
			err = errB
		}
		reason = fmt.Sprintf("model error: %v", err)
	}
	return &model.ReconciledField{
		Status: model.StatusHumanReviewRequired,
		Reason: reason,
	}
}

// ExtractFinancials extracts the document's monetary field through
// both models and reconciles the results into a single trusted value,
// or a DISAGREEMENT / HUMAN_REVIEW_REQUIRED outcome
func (e *Engine) ExtractFinancials(ctx context.Context, documentText string, docType model.DocumentType) (*model.ReconciledField, error) {
	switch docType {
	case model.DocTypeSaleDeed:
		return e.extractSaleDeed(ctx, documentText)
	case model.DocTypeLoanDoc:
		return e.extractLoanDoc(ctx, documentText)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDocumentType, docType)
	}
}

func (e *Engine) extractSaleDeed(ctx context.Context, documentText string) (*model.ReconciledField, error) {
	rawA, rawB, errA, errB := e.queryBoth(ctx, llm.SaleDeedPrompt(documentText))
	if errA != nil || errB != nil {
		return reviewRequired(errA, errB), nil
	}

	var extA, extB model.SaleDeedExtraction
	if err := json.Unmarshal(rawA, &extA); err != nil {
		return reviewRequired(fmt.Errorf("model-a returned malformed JSON: %w", err), nil), nil
	}
	if err := json.Unmarshal(rawB, &extB); err != nil {
		return reviewRequired(nil, fmt.Errorf("model-b returned malformed JSON: %w", err)), nil
	}

	field := e.reconcileAmounts("property value",
		extA.PropertyValueNumeric, extA.PropertyValueWords,
		extB.PropertyValueNumeric, extB.PropertyValueWords)

	if field.Status == model.StatusAgreement {
		field.VendorName = preferB(extB.VendorName, extA.VendorName)
		field.VendeeName = preferB(extB.VendeeName, extA.VendeeName)
	}
	return field, nil
}

func (e *Engine) extractLoanDoc(ctx context.Context, documentText string) (*model.ReconciledField, error) {
	rawA, rawB, errA, errB := e.queryBoth(ctx, llm.LoanDocPrompt(documentText))
	if errA != nil || errB != nil {
		return reviewRequired(errA, errB), nil
	}

	var extA, extB model.LoanDocExtraction
	if err := json.Unmarshal(rawA, &extA); err != nil {
		return reviewRequired(fmt.Errorf("model-a returned malformed JSON: %w", err), nil), nil
	}
	if err := json.Unmarshal(rawB, &extB); err != nil {
		return reviewRequired(nil, fmt.Errorf("model-b returned malformed JSON: %w", err)), nil
	}

	field := e.reconcileAmounts("loan amount",
		extA.LoanAmountNumeric, extA.LoanAmountWords,
		extB.LoanAmountNumeric, extB.LoanAmountWords)

	if field.Status == model.StatusAgreement {
		field.ApplicantName = preferB(extB.ApplicantName, extA.ApplicantName)
	}
	return field, nil
}

// reconcileAmounts runs the per-model numeric/words cross-check, then
// the inter-model agreement check, and blends the agreed candidates
func (e *Engine) reconcileAmounts(fieldName string,
	numericA model.Scalar, wordsA *string,
	numericB model.Scalar, wordsB *string,
) *model.ReconciledField {
	valA := parse.Amount(numericA)
	valB := parse.Amount(numericB)

	var wordsNumA, wordsNumB *float64
	if wordsA != nil {
		wordsNumA = parse.Words(*wordsA)
	}
	if wordsB != nil {
		wordsNumB = parse.Words(*wordsB)
	}

	finalA := Reconcile(valA, wordsNumA)
	finalB := Reconcile(valB, wordsNumB)

	// A nil candidate means the model's own numeric and words forms
	// could not be reconciled (or nothing was extracted). The raw
	// numeric values go into the result for diagnostics.
	if finalA == nil || finalB == nil {
		return &model.ReconciledField{
			Status:      model.StatusDisagreement,
			Reason:      fmt.Sprintf("%s mismatch between numeric and words", fieldName),
			ModelAValue: valA,
			ModelBValue: valB,
			Agreement:   false,
		}
	}

	if RelativeDifference(*finalA, *finalB) > DefaultTolerance {
		return &model.ReconciledField{
			Status:      model.StatusDisagreement,
			Reason:      fmt.Sprintf("%s mismatch between models", fieldName),
			ModelAValue: finalA,
			ModelBValue: finalB,
			ModelAUnit:  identity.FormatIndianUnits(*finalA),
			ModelBUnit:  identity.FormatIndianUnits(*finalB),
			Agreement:   false,
		}
	}

	// Models agree: blend to the integer average
	final := float64(int64((*finalA + *finalB) / 2))

	return &model.ReconciledField{
		Status:      model.StatusAgreement,
		FinalValue:  &final,
		ModelAValue: finalA,
		ModelBValue: finalB,
		ModelAUnit:  identity.FormatIndianUnits(*finalA),
		ModelBUnit:  identity.FormatIndianUnits(*finalB),
		FinalUnit:   identity.FormatIndianUnits(final),
		Agreement:   true,
	}
}

// AadhaarResult is the dual-model identity extraction outcome. The
// identity sub-fields pass through without numeric reconciliation;
// the cloud model's answer wins, the local model is the fallback.
type AadhaarResult struct {
	Status model.FieldStatus
	Reason string

	Name          string
	DOB           string
	AadhaarNumber string

	ModelA model.AadhaarExtraction
	ModelB model.AadhaarExtraction
}

// ExtractAadhaar extracts identity details through both models
func (e *Engine) ExtractAadhaar(ctx context.Context, documentText string) (*AadhaarResult, error) {
	rawA, rawB, errA, errB := e.queryBoth(ctx, llm.AadhaarPrompt(documentText))
	if errA != nil || errB != nil {
		review := reviewRequired(errA, errB)
		return &AadhaarResult{Status: review.Status, Reason: review.Reason}, nil
	}

	var extA, extB model.AadhaarExtraction
	if err := json.Unmarshal(rawA, &extA); err != nil {
		return &AadhaarResult{
			Status: model.StatusHumanReviewRequired,
			Reason: fmt.Sprintf("model error: model-a returned malformed JSON: %v", err),
		}, nil
	}
	if err := json.Unmarshal(rawB, &extB); err != nil {
		return &AadhaarResult{
			Status: model.StatusHumanReviewRequired,
			Reason: fmt.Sprintf("model error: model-b returned malformed JSON: %v", err),
		}, nil
	}

	return &AadhaarResult{
		Status:        model.StatusAgreement,
		Name:          preferB(extB.Name, extA.Name),
		DOB:           preferB(extB.DOB, extA.DOB),
		AadhaarNumber: preferB(scalarString(extB.AadhaarNumber), scalarString(extA.AadhaarNumber)),
		ModelA:        extA,
		ModelB:        extB,
	}, nil
}

// preferB picks the cloud model's value, falling back to the local
// model's
func preferB(b, a *string) string {
	if b != nil && *b != "" {
		return *b
	}
	if a != nil {
		return *a
	}
	return ""
}

// scalarString renders a scalar field (models return Aadhaar numbers
// as strings or bare numbers) as text
func scalarString(s model.Scalar) *string {
	if s.Str != nil {
		return s.Str
	}
	if s.Num != nil {
		str := fmt.Sprintf("%.0f", *s.Num)
		return &str
	}
	return nil
}
