package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Scalar holds a JSON value that a model may return as a number, a
// string, or null. Extraction prompts ask for numbers but models
// routinely answer with formatted strings ("₹63,00,000"), so the
// wire type stays flexible while the extraction structs stay typed.
type Scalar struct {
	Num *float64
	Str *string
}

// UnmarshalJSON accepts number, string or null
func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		s.Str = &str
		return nil
	}
	var num float64
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("scalar must be number, string or null: %w", err)
	}
	s.Num = &num
	return nil
}

// MarshalJSON renders the scalar back in the form it arrived in
func (s Scalar) MarshalJSON() ([]byte, error) {
	if s.Num != nil {
		return json.Marshal(*s.Num)
	}
	if s.Str != nil {
		return json.Marshal(*s.Str)
	}
	return []byte("null"), nil
}

// IsNull reports whether the scalar carried no value
func (s Scalar) IsNull() bool {
	return s.Num == nil && s.Str == nil
}

// SaleDeedExtraction is one model's structured reading of a sale deed
type SaleDeedExtraction struct {
	PropertyValueNumeric Scalar  `json:"property_value_numeric"`
	PropertyValueWords   *string `json:"property_value_words"`
	VendorName           *string `json:"vendor_name"`
	VendeeName           *string `json:"vendee_name"`
}

// LoanDocExtraction is one model's structured reading of a loan
// sanction letter
type LoanDocExtraction struct {
	LoanAmountNumeric Scalar  `json:"loan_amount_numeric"`
	LoanAmountWords   *string `json:"loan_amount_words"`
	ApplicantName     *string `json:"applicant_name"`
}

// AadhaarExtraction is one model's structured reading of an Aadhaar
// identity document
type AadhaarExtraction struct {
	Name          *string `json:"name"`
	DOB           *string `json:"dob"`
	AadhaarNumber Scalar  `json:"aadhaar_number"`
}

// RegulatoryRules is the structured output of RBI circular analysis.
// Percentage fields stay as raw strings ("75%"); compliance parses
// them into fractions.
type RegulatoryRules struct {
	MaxLTVGeneral       *string  `json:"max_ltv_general" yaml:"max_ltv_general"`
	MaxLTVAbove75L      *string  `json:"max_ltv_above_75L" yaml:"max_ltv_above_75L"`
	RiskWeightRules     []string `json:"risk_weight_rules,omitempty" yaml:"risk_weight_rules,omitempty"`
	ProvisioningRules   []string `json:"provisioning_rules,omitempty" yaml:"provisioning_rules,omitempty"`
	ImportantConditions []string `json:"important_conditions,omitempty" yaml:"important_conditions,omitempty"`
}
