package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gautam-rahul-09/genai-verification-system/internal/compliance"
	"github.com/gautam-rahul-09/genai-verification-system/internal/llm"
	"github.com/gautam-rahul-09/genai-verification-system/internal/ocr"
)

var (
	rulesOut     string
	rulesTimeout time.Duration
)

// rulesCmd represents the rules command
var rulesCmd = &cobra.Command{
	Use:   "rules <circular.pdf>",
	Short: "Extract regulatory rules from an RBI circular",
	Long: `Rules reads a housing finance circular, extracts the LTV ceilings,
risk weight, provisioning, and condition rules through the local model,
and writes them to a rules file that verify and batch runs load.

When the local model is unavailable a rule-based text scan fills in
what it can.

Example:
  ltvverify rules 73MCF02072012.pdf
  ltvverify rules circular.pdf --out data/policies/extracted_rules.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)

	rulesCmd.Flags().StringVar(&rulesOut, "out", "extracted_rules.yaml", "output rules file (.yaml or .json)")
	rulesCmd.Flags().DurationVar(&rulesTimeout, "timeout", 5*time.Minute, "extraction timeout")
	rulesCmd.Flags().StringSliceVar(&ocrLanguages, "ocr-lang", []string{"eng"}, "OCR languages")
	rulesCmd.Flags().StringVar(&localProvider, "local-provider", "ollama", "local model provider")
	rulesCmd.Flags().StringVar(&localModel, "local-model", "llama3:8b", "local model name")
}

func runRules(cmd *cobra.Command, args []string) error {
	circular := args[0]

	ctx, cancel := context.WithTimeout(context.Background(), rulesTimeout)
	defer cancel()

	cfg := buildConfig()

	fmt.Fprintf(os.Stderr, "Extracting circular text from %s...\n", circular)

	engine := ocr.NewEngine(cfg.OCR)
	text, err := engine.ProcessDocument(circular)
	if err != nil {
		return fmt.Errorf("read circular: %w", err)
	}

	fmt.Fprintln(os.Stderr, "Extracting structured rules...")

	provider, err := llm.NewProvider(ctx, llm.ConfigFromModel(cfg.ModelA))
	var checked *llm.Checked
	if err != nil {
		checked = llm.NewCheckedUnavailable(cfg.ModelA.Provider)
	} else {
		checked = llm.NewChecked(ctx, provider)
	}

	analyst := compliance.NewAnalyst(checked)
	rules, err := analyst.ExtractAndSave(ctx, text, rulesOut)
	if err != nil {
		return fmt.Errorf("extract rules: %w", err)
	}

	fmt.Printf("✓ Wrote rules: %s\n", rulesOut)
	if rules.MaxLTVGeneral != nil {
		fmt.Printf("  max LTV (general):    %s\n", *rules.MaxLTVGeneral)
	}
	if rules.MaxLTVAbove75L != nil {
		fmt.Printf("  max LTV (above 75L):  %s\n", *rules.MaxLTVAbove75L)
	}
	if len(rules.RiskWeightRules) > 0 {
		fmt.Printf("  risk weight rules:    %d\n", len(rules.RiskWeightRules))
	}

	return nil
}
