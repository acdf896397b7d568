package model

// DocumentType classifies a source document by its textual content
type DocumentType string

const (
	DocTypeSaleDeed DocumentType = "SALE_DEED"
	DocTypeLoanDoc  DocumentType = "LOAN_DOC"
	DocTypeUnknown  DocumentType = "UNKNOWN"
)

// FieldStatus is the outcome of reconciling one financial field
// across the two extraction models
type FieldStatus string

const (
	StatusAgreement           FieldStatus = "AGREEMENT"
	StatusDisagreement        FieldStatus = "DISAGREEMENT"
	StatusHumanReviewRequired FieldStatus = "HUMAN_REVIEW_REQUIRED"
)

// ReconciledField is the result of combining two independent model
// extractions for one document. Created per document per verification
// run and consumed immediately; never persisted.
type ReconciledField struct {
	Status FieldStatus `json:"status"`
	Reason string      `json:"reason,omitempty"`

	// FinalValue is set only when Status is AGREEMENT
	FinalValue *float64 `json:"final_value,omitempty"`

	// Per-model candidate values. On a numeric/words mismatch these
	// hold the raw pre-reconciliation numeric values for diagnostics.
	ModelAValue *float64 `json:"model_a_value,omitempty"`
	ModelBValue *float64 `json:"model_b_value,omitempty"`

	// Human-readable lakh/crore annotations
	ModelAUnit string `json:"model_a_unit,omitempty"`
	ModelBUnit string `json:"model_b_unit,omitempty"`
	FinalUnit  string `json:"final_unit,omitempty"`

	Agreement bool `json:"agreement"`

	// Identity sub-fields passed through without reconciliation.
	// Cloud model wins, local model is the fallback.
	VendorName    string `json:"vendor_name,omitempty"`
	VendeeName    string `json:"vendee_name,omitempty"`
	ApplicantName string `json:"applicant_name,omitempty"`
}

// IdentityRole tags which document a name claim came from
type IdentityRole string

const (
	RoleVendor        IdentityRole = "vendor"
	RoleVendee        IdentityRole = "vendee"
	RoleApplicant     IdentityRole = "applicant"
	RoleAadhaarHolder IdentityRole = "aadhaar_holder"
)

// Verdict is the regulatory LTV compliance decision. Derived, not stored.
type Verdict struct {
	LTV       float64 `json:"ltv"`
	Threshold float64 `json:"threshold"`
	Compliant bool    `json:"compliant"`
}
