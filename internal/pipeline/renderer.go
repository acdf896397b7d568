package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gautam-rahul-09/genai-verification-system/internal/identity"
	"github.com/gautam-rahul-09/genai-verification-system/internal/model"
)

// Renderer formats verification reports for files and the terminal
type Renderer struct {
	verbose bool
}

// NewRenderer creates a renderer
func NewRenderer(verbose bool) *Renderer {
	return &Renderer{verbose: verbose}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderSummary prints a human-readable decision summary to stdout
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Println()
	fmt.Println("=== Loan Verification Summary ===")
	fmt.Printf("Decision:   %s\n", report.FinalDecision)
	fmt.Printf("Confidence: %s\n", report.Confidence)

	if report.HumanReviewRequired {
		fmt.Printf("Human review required: %s\n", report.Reason)
	}

	if report.LoanAmount != nil {
		fmt.Printf("Loan amount:    ₹%.0f (%s)\n", *report.LoanAmount, identity.FormatIndianUnits(*report.LoanAmount))
	}
	if report.PropertyValue != nil {
		fmt.Printf("Property value: ₹%.0f (%s)\n", *report.PropertyValue, identity.FormatIndianUnits(*report.PropertyValue))
	}
	if report.Verdict != nil {
		fmt.Printf("LTV: %.2f%% (ceiling %.2f%%)\n", report.Verdict.LTV*100, report.Verdict.Threshold*100)
	}

	if r.verbose && report.Identity != nil {
		id := report.Identity
		fmt.Printf("Aadhaar holder: %s", id.AadhaarName)
		if id.AadhaarMasked != "" {
			fmt.Printf(" (%s)", id.AadhaarMasked)
		}
		fmt.Println()
		fmt.Printf("  applicant match: %v, vendor match: %v, vendee match: %v\n",
			id.ApplicantMatch, id.VendorMatch, id.VendeeMatch)
	}

	fmt.Printf("Models used: local=%v cloud=%v\n", report.ModelsUsed.ModelA, report.ModelsUsed.ModelB)
	fmt.Println()
}
