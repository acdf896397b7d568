package consensus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gautam-rahul-09/genai-verification-system/internal/llm"
	"github.com/gautam-rahul-09/genai-verification-system/internal/model"
)

// stubProvider returns a canned response for every extraction call
type stubProvider struct {
	name     string
	response string
	err      error
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) ExtractJSON(_ context.Context, _ llm.ExtractRequest) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []byte(s.response), nil
}

func (s *stubProvider) IsAvailable(_ context.Context) bool { return true }

func newTestEngine(respA, respB string) *Engine {
	a := llm.NewChecked(context.Background(), &stubProvider{name: "model-a", response: respA})
	b := llm.NewChecked(context.Background(), &stubProvider{name: "model-b", response: respB})
	return NewEngine(a, b, nil)
}

func TestExtractFinancials_BothModelsAgree(t *testing.T) {
	resp := `{"property_value_numeric": 6300000, "property_value_words": null, "vendor_name": "Suresh Patel", "vendee_name": "Rahul Sharma"}`
	e := newTestEngine(resp, resp)

	field, err := e.ExtractFinancials(context.Background(), "sale deed text", model.DocTypeSaleDeed)
	require.NoError(t, err)
	require.NotNil(t, field)

	assert.Equal(t, model.StatusAgreement, field.Status)
	require.NotNil(t, field.FinalValue)
	assert.Equal(t, 6300000.0, *field.FinalValue)
	assert.True(t, field.Agreement)
	assert.Equal(t, "Suresh Patel", field.VendorName)
	assert.Equal(t, "Rahul Sharma", field.VendeeName)
}

func TestExtractFinancials_ModelAUnavailable(t *testing.T) {
	a := llm.NewCheckedUnavailable("model-a")
	b := llm.NewChecked(context.Background(), &stubProvider{
		name:     "model-b",
		response: `{"property_value_numeric": 6300000, "property_value_words": null, "vendor_name": null, "vendee_name": null}`,
	})
	e := NewEngine(a, b, nil)

	field, err := e.ExtractFinancials(context.Background(), "sale deed text", model.DocTypeSaleDeed)
	require.NoError(t, err)
	require.NotNil(t, field)

	assert.Equal(t, model.StatusHumanReviewRequired, field.Status)
	assert.Equal(t, "one model unavailable", field.Reason)
	assert.Nil(t, field.FinalValue)
}

func TestExtractFinancials_ModelCallError(t *testing.T) {
	a := llm.NewChecked(context.Background(), &stubProvider{name: "model-a", err: errors.New("connection refused")})
	b := llm.NewChecked(context.Background(), &stubProvider{
		name:     "model-b",
		response: `{"loan_amount_numeric": 5000000, "loan_amount_words": null, "applicant_name": null}`,
	})
	e := NewEngine(a, b, nil)

	field, err := e.ExtractFinancials(context.Background(), "loan doc text", model.DocTypeLoanDoc)
	require.NoError(t, err)

	assert.Equal(t, model.StatusHumanReviewRequired, field.Status)
	assert.Contains(t, field.Reason, "model error")
	assert.Contains(t, field.Reason, "connection refused")
}

func TestExtractFinancials_MalformedJSON(t *testing.T) {
	e := newTestEngine(`not json at all`, `{"property_value_numeric": 6300000}`)

	field, err := e.ExtractFinancials(context.Background(), "sale deed text", model.DocTypeSaleDeed)
	require.NoError(t, err)

	assert.Equal(t, model.StatusHumanReviewRequired, field.Status)
	assert.Contains(t, field.Reason, "malformed JSON")
}

func TestExtractFinancials_InterModelDisagreement(t *testing.T) {
	// 5000000 vs 6300000 is over the 5% tolerance
	e := newTestEngine(
		`{"loan_amount_numeric": 5000000, "loan_amount_words": null, "applicant_name": "Rahul Sharma"}`,
		`{"loan_amount_numeric": 6300000, "loan_amount_words": null, "applicant_name": "Rahul Sharma"}`,
	)

	field, err := e.ExtractFinancials(context.Background(), "loan doc text", model.DocTypeLoanDoc)
	require.NoError(t, err)

	assert.Equal(t, model.StatusDisagreement, field.Status)
	assert.Contains(t, field.Reason, "mismatch between models")
	assert.Nil(t, field.FinalValue)
	assert.False(t, field.Agreement)
	require.NotNil(t, field.ModelAValue)
	require.NotNil(t, field.ModelBValue)
	assert.Equal(t, 5000000.0, *field.ModelAValue)
	assert.Equal(t, 6300000.0, *field.ModelBValue)
	assert.Equal(t, "50 lakh", field.ModelAUnit)
	assert.Equal(t, "63 lakh", field.ModelBUnit)
	// Names are never attached to a disagreed field
	assert.Empty(t, field.ApplicantName)
}

func TestExtractFinancials_ScaleMisreadResolvedByWords(t *testing.T) {
	// Model A dropped a digit group in the numeric form; the words
	// form carries the true value and wins the per-model cross-check
	e := newTestEngine(
		`{"property_value_numeric": 630000, "property_value_words": "Sixty Three Lakh Rupees Only", "vendor_name": null, "vendee_name": null}`,
		`{"property_value_numeric": 6300000, "property_value_words": null, "vendor_name": null, "vendee_name": null}`,
	)

	field, err := e.ExtractFinancials(context.Background(), "sale deed text", model.DocTypeSaleDeed)
	require.NoError(t, err)

	assert.Equal(t, model.StatusAgreement, field.Status)
	require.NotNil(t, field.FinalValue)
	assert.Equal(t, 6300000.0, *field.FinalValue)
}

func TestExtractFinancials_IrreconcilableWithinOneModel(t *testing.T) {
	// Numeric and words disagree by a factor no rule explains
	e := newTestEngine(
		`{"property_value_numeric": 100, "property_value_words": "Five Hundred", "vendor_name": null, "vendee_name": null}`,
		`{"property_value_numeric": 6300000, "property_value_words": null, "vendor_name": null, "vendee_name": null}`,
	)

	field, err := e.ExtractFinancials(context.Background(), "sale deed text", model.DocTypeSaleDeed)
	require.NoError(t, err)

	assert.Equal(t, model.StatusDisagreement, field.Status)
	assert.Contains(t, field.Reason, "mismatch between numeric and words")
}

func TestExtractFinancials_NumericAsString(t *testing.T) {
	// Models sometimes return the amount as formatted text
	e := newTestEngine(
		`{"loan_amount_numeric": "₹63,00,000", "loan_amount_words": null, "applicant_name": "Rahul Sharma"}`,
		`{"loan_amount_numeric": 6300000, "loan_amount_words": null, "applicant_name": null}`,
	)

	field, err := e.ExtractFinancials(context.Background(), "loan doc text", model.DocTypeLoanDoc)
	require.NoError(t, err)

	assert.Equal(t, model.StatusAgreement, field.Status)
	require.NotNil(t, field.FinalValue)
	assert.Equal(t, 6300000.0, *field.FinalValue)
	// Cloud model returned no name; local model's answer is the fallback
	assert.Equal(t, "Rahul Sharma", field.ApplicantName)
}

func TestExtractFinancials_BlendWithinTolerance(t *testing.T) {
	// 2% apart: agreement, blended to the integer average
	e := newTestEngine(
		`{"loan_amount_numeric": 5000000, "loan_amount_words": null, "applicant_name": null}`,
		`{"loan_amount_numeric": 5100000, "loan_amount_words": null, "applicant_name": null}`,
	)

	field, err := e.ExtractFinancials(context.Background(), "loan doc text", model.DocTypeLoanDoc)
	require.NoError(t, err)

	assert.Equal(t, model.StatusAgreement, field.Status)
	require.NotNil(t, field.FinalValue)
	assert.Equal(t, 5050000.0, *field.FinalValue)
}

func TestExtractFinancials_UnknownDocumentType(t *testing.T) {
	e := newTestEngine(`{}`, `{}`)

	_, err := e.ExtractFinancials(context.Background(), "text", model.DocTypeUnknown)
	assert.ErrorIs(t, err, ErrUnknownDocumentType)
}

func TestExtractAadhaar_PrefersCloudModel(t *testing.T) {
	e := newTestEngine(
		`{"name": "RAHUL SHARMA", "dob": null, "aadhaar_number": "1234 5678 9012"}`,
		`{"name": "Rahul Kumar Sharma", "dob": "01/01/1990", "aadhaar_number": "123456789012"}`,
	)

	res, err := e.ExtractAadhaar(context.Background(), "aadhaar text")
	require.NoError(t, err)

	assert.Equal(t, model.StatusAgreement, res.Status)
	assert.Equal(t, "Rahul Kumar Sharma", res.Name)
	assert.Equal(t, "01/01/1990", res.DOB)
	assert.Equal(t, "123456789012", res.AadhaarNumber)
}

func TestExtractAadhaar_FallsBackToLocalModel(t *testing.T) {
	e := newTestEngine(
		`{"name": "RAHUL SHARMA", "dob": "01/01/1990", "aadhaar_number": "123456789012"}`,
		`{"name": null, "dob": null, "aadhaar_number": null}`,
	)

	res, err := e.ExtractAadhaar(context.Background(), "aadhaar text")
	require.NoError(t, err)

	assert.Equal(t, "RAHUL SHARMA", res.Name)
	assert.Equal(t, "01/01/1990", res.DOB)
	assert.Equal(t, "123456789012", res.AadhaarNumber)
}

func TestExtractAadhaar_Unavailable(t *testing.T) {
	a := llm.NewCheckedUnavailable("model-a")
	b := llm.NewChecked(context.Background(), &stubProvider{
		name:     "model-b",
		response: `{"name": "Rahul Sharma", "dob": null, "aadhaar_number": null}`,
	})
	e := NewEngine(a, b, nil)

	res, err := e.ExtractAadhaar(context.Background(), "aadhaar text")
	require.NoError(t, err)

	assert.Equal(t, model.StatusHumanReviewRequired, res.Status)
	assert.Empty(t, res.Name)
}
