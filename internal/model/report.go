package model

import "time"

// Decision is the terminal state of a verification run
type Decision string

const (
	DecisionCompliant     Decision = "RBI_COMPLIANT"
	DecisionViolation     Decision = "RBI_VIOLATION"
	DecisionPendingReview Decision = "PENDING_REVIEW"
)

// Confidence expresses how much of the automated pipeline completed
type Confidence string

const (
	ConfidenceUnknown Confidence = "UNKNOWN"
	ConfidenceLow     Confidence = "LOW"
	ConfidenceHigh    Confidence = "HIGH"
)

// ModelsUsed records which independent AI checks actually ran
type ModelsUsed struct {
	ModelA bool `json:"model_a"`
	ModelB bool `json:"model_b"`
}

// Report is the user- and audit-facing summary of one verification run
type Report struct {
	Timestamp           time.Time  `json:"timestamp"`
	ModelsUsed          ModelsUsed `json:"models_used"`
	Confidence          Confidence `json:"confidence"`
	FinalDecision       Decision   `json:"final_decision"`
	HumanReviewRequired bool       `json:"human_review_required"`
	Reason              string     `json:"reason,omitempty"`

	// Populated only when the run got far enough
	LoanAmount    *float64 `json:"loan_amount,omitempty"`
	PropertyValue *float64 `json:"property_value,omitempty"`
	Verdict       *Verdict `json:"verdict,omitempty"`

	PropertyField *ReconciledField `json:"property_field,omitempty"`
	LoanField     *ReconciledField `json:"loan_field,omitempty"`

	Identity *IdentitySummary `json:"identity,omitempty"`
}

// IdentitySummary records the cross-document identity checks
type IdentitySummary struct {
	AadhaarName    string `json:"aadhaar_name,omitempty"`
	AadhaarDOB     string `json:"aadhaar_dob,omitempty"`
	AadhaarMasked  string `json:"aadhaar_masked,omitempty"`
	ApplicantName  string `json:"applicant_name,omitempty"`
	VendorName     string `json:"vendor_name,omitempty"`
	VendeeName     string `json:"vendee_name,omitempty"`
	ApplicantMatch bool   `json:"applicant_match"`
	VendorMatch    bool   `json:"vendor_match"`
	VendeeMatch    bool   `json:"vendee_match"`
}

// NewReport creates a report in its initial pending state
func NewReport() *Report {
	return &Report{
		Timestamp:     time.Now().UTC(),
		Confidence:    ConfidenceUnknown,
		FinalDecision: DecisionPendingReview,
	}
}

// MarkPendingReview flags the run as needing manual adjudication,
// recording the reason verbatim for the outermost caller to report
func (r *Report) MarkPendingReview(reason string) {
	r.HumanReviewRequired = true
	r.Confidence = ConfidenceLow
	r.FinalDecision = DecisionPendingReview
	r.Reason = reason
}
