package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/gautam-rahul-09/genai-verification-system/internal/compliance"
	"github.com/gautam-rahul-09/genai-verification-system/internal/identity"
	"github.com/gautam-rahul-09/genai-verification-system/internal/model"
	"github.com/gautam-rahul-09/genai-verification-system/internal/pipeline"
	"github.com/gautam-rahul-09/genai-verification-system/internal/worker"
)

var (
	concurrency  int
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Scan a case directory and decide LTV from its documents",
	Long: `Batch scans every document in a directory concurrently:
- Extract text and classify each file as sale deed or loan document
- Extract the monetary field of each through the dual-model consensus
- Decide LTV from the first reconciled property value and loan amount

Example:
  ltvverify batch ./case-42
  ltvverify batch ./case-42 --workers 8 --rules extracted_rules.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "workers", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the extracted-text cache")
	batchCmd.Flags().StringVar(&rulesPath, "rules", "", "path to the extracted regulatory rules file")
	batchCmd.Flags().StringSliceVar(&ocrLanguages, "ocr-lang", []string{"eng"}, "OCR languages")
	batchCmd.Flags().StringVar(&localProvider, "local-provider", "ollama", "local model provider")
	batchCmd.Flags().StringVar(&localModel, "local-model", "llama3:8b", "local model name")
	batchCmd.Flags().StringVar(&cloudProvider, "cloud-provider", "openai", "cloud model provider (openai, azure, gemini)")
	batchCmd.Flags().StringVar(&cloudModel, "cloud-model", "gpt-4o-mini", "cloud model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := buildConfig()
	cfg.Concurrency.Workers = concurrency

	limiter := worker.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.BurstSize)

	p, err := pipeline.NewPipeline(ctx, cfg, limiter)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Scanning %s with %d workers...\n", dir, concurrency)

	processor := worker.NewBatchProcessor(p, concurrency)
	results, err := processor.ProcessDir(ctx, dir)
	if err != nil {
		return fmt.Errorf("process directory: %w", err)
	}
	if len(results) == 0 {
		return fmt.Errorf("no processable documents in %s", dir)
	}

	// First reconciled value per document role wins
	var propertyValue, loanAmount *float64

	for _, result := range results {
		if result.Error != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}
		if result.Field == nil {
			fmt.Fprintf(os.Stderr, "✗ %s: no reconciled field\n", result.Path)
			continue
		}
		if result.Field.FinalValue == nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %s\n", result.Path, result.Field.Reason)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ %s: %s ₹%.0f (%s)\n",
			result.Path, result.DocType, *result.Field.FinalValue,
			identity.FormatIndianUnits(*result.Field.FinalValue))

		switch result.DocType {
		case model.DocTypeSaleDeed:
			if propertyValue == nil {
				propertyValue = result.Field.FinalValue
			}
		case model.DocTypeLoanDoc:
			if loanAmount == nil {
				loanAmount = result.Field.FinalValue
			}
		}
	}

	if propertyValue == nil || loanAmount == nil {
		return fmt.Errorf("need both a sale deed and a loan document with reconciled amounts; human review required")
	}

	verdict, err := compliance.Evaluate(*loanAmount, *propertyValue, p.Rules().CeilingFor(*loanAmount))
	if err != nil {
		return fmt.Errorf("evaluate LTV: %w", err)
	}

	fmt.Println()
	fmt.Println("=== Batch LTV Decision ===")
	fmt.Printf("Loan amount:    ₹%.0f (%s)\n", *loanAmount, identity.FormatIndianUnits(*loanAmount))
	fmt.Printf("Property value: ₹%.0f (%s)\n", *propertyValue, identity.FormatIndianUnits(*propertyValue))
	fmt.Printf("LTV: %.2f%% (ceiling %.2f%%)\n", verdict.LTV*100, verdict.Threshold*100)
	if verdict.Compliant {
		fmt.Println("Decision: RBI_COMPLIANT")
	} else {
		fmt.Println("Decision: RBI_VIOLATION")
	}
	fmt.Println()

	return nil
}
