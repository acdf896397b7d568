package llm

import "fmt"

// SaleDeedPrompt builds the extraction prompt for a sale deed
func SaleDeedPrompt(documentText string) string {
	return fmt.Sprintf(`You are a strict BFSI financial extraction AI.

Extract ONLY property value from this SALE DEED.

Return STRICT JSON only:
{
  "property_value_numeric": number_or_null,
  "property_value_words": string_or_null,
  "vendor_name": string_or_null,
  "vendee_name": string_or_null
}

Rules:
- Use sale consideration / market value if clearly mentioned.
- Extract numeric amount exactly.
- Extract value in words if present (e.g. "Thirty Five Lakhs").
- Do NOT guess.
- If missing return null.

Text:
%s`, documentText)
}

// LoanDocPrompt builds the extraction prompt for a loan sanction
// letter
func LoanDocPrompt(documentText string) string {
	return fmt.Sprintf(`You are a strict BFSI loan extraction AI.

Extract ONLY sanctioned loan amount from this LOAN document.

Return STRICT JSON only:
{
  "loan_amount_numeric": number_or_null,
  "loan_amount_words": string_or_null,
  "applicant_name": string_or_null
}

Rules:
- Must be explicitly mentioned as sanctioned loan amount.
- Extract numeric amount exactly.
- Extract amount in words if present (e.g. "Thirty Five Lakhs").
- Do NOT guess.
- If missing return null.

Text:
%s`, documentText)
}

// AadhaarPrompt builds the extraction prompt for an Aadhaar identity
// document
func AadhaarPrompt(documentText string) string {
	return fmt.Sprintf(`Extract Aadhaar card identity details.

Return strict JSON:
{
  "name": string_or_null,
  "dob": string_or_null,
  "aadhaar_number": string_or_null
}

Rules:
- Aadhaar number should be 12 digits if present.
- If missing return null.
- Do not guess.

Text:
%s`, documentText)
}

// RulesPrompt builds the regulatory rule extraction prompt for an RBI
// housing finance circular
func RulesPrompt(documentText string) string {
	return fmt.Sprintf(`You are an RBI compliance analyst AI. Read the following RBI Housing Finance circular and extract regulatory rules in strict JSON format.

Extract these fields:
1. max_ltv_general - Maximum Loan to Value ratio allowed.
2. max_ltv_above_75L - LTV limit when loan amount is above Rs 75 lakh.
3. risk_weight_rules - Any risk weight rules related to LTV.
4. provisioning_rules - Any provisioning or capital requirement mentioned.
5. important_conditions - Any special conditions or exceptions.

Return output strictly in valid JSON.
Do NOT add explanation or commentary.
Do NOT include markdown.
Only return JSON.

Document Text:
%s`, documentText)
}
