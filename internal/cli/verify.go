package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gautam-rahul-09/genai-verification-system/internal/model"
	"github.com/gautam-rahul-09/genai-verification-system/internal/pipeline"
	"github.com/gautam-rahul-09/genai-verification-system/internal/worker"
)

var (
	outJSON       string
	timeout       time.Duration
	noCache       bool
	rulesPath     string
	localProvider string
	localModel    string
	cloudProvider string
	cloudModel    string
	ocrLanguages  []string
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <sale-deed> <loan-doc> <aadhaar>",
	Short: "Verify one loan case against the LTV ceiling",
	Long: `Verify runs the full three-document check for a single loan case:
- Extract text from the sale deed, loan sanction letter, and Aadhaar card
- Extract the property value and loan amount through two independent models
- Cross-check numeric and words forms of each amount
- Match the Aadhaar holder against the loan applicant and sale parties
- Compute the LTV decision against the regulatory ceiling

Example:
  ltvverify verify deed.pdf sanction.pdf aadhaar.pdf
  ltvverify verify deed.pdf sanction.pdf aadhaar.pdf --json case42.json
  ltvverify verify deed.pdf sanction.pdf aadhaar.pdf --cloud-provider gemini --cloud-model gemini-1.5-flash`,
	Args: cobra.ExactArgs(3),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	// Output flags
	verifyCmd.Flags().StringVar(&outJSON, "json", "verification_report.json", "output JSON path")

	verifyCmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "overall verification timeout")
	verifyCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the extracted-text cache")
	verifyCmd.Flags().StringVar(&rulesPath, "rules", "", "path to the extracted regulatory rules file")
	verifyCmd.Flags().StringSliceVar(&ocrLanguages, "ocr-lang", []string{"eng"}, "OCR languages")

	// Model flags
	verifyCmd.Flags().StringVar(&localProvider, "local-provider", "ollama", "local model provider")
	verifyCmd.Flags().StringVar(&localModel, "local-model", "llama3:8b", "local model name")
	verifyCmd.Flags().StringVar(&cloudProvider, "cloud-provider", "openai", "cloud model provider (openai, azure, gemini)")
	verifyCmd.Flags().StringVar(&cloudModel, "cloud-model", "gpt-4o-mini", "cloud model name")
}

func runVerify(cmd *cobra.Command, args []string) error {
	saleDeed, loanDoc, aadhaar := args[0], args[1], args[2]

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Sale deed: %s\n", saleDeed)
		fmt.Fprintf(os.Stderr, "Loan doc:  %s\n", loanDoc)
		fmt.Fprintf(os.Stderr, "Aadhaar:   %s\n", aadhaar)
		fmt.Fprintln(os.Stderr)
	}

	cfg := buildConfig()

	limiter := worker.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.BurstSize)

	p, err := pipeline.NewPipeline(ctx, cfg, limiter)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	report, err := p.VerifyRun(ctx, saleDeed, loanDoc, aadhaar)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	if err := p.RenderReport(report, outJSON); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

// buildConfig assembles the run configuration from flags and the
// environment. Cloud credentials come only from the environment or
// config file; a missing key makes the cloud model unavailable rather
// than aborting the run.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()

	cfg.OCR.Languages = ocrLanguages
	if prefix := os.Getenv("TESSDATA_PREFIX"); prefix != "" {
		cfg.OCR.TessdataPrefix = prefix
	}

	cfg.ModelA.Provider = localProvider
	cfg.ModelA.Model = localModel
	if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
		cfg.ModelA.BaseURL = baseURL
	}

	cfg.ModelB.Provider = cloudProvider
	cfg.ModelB.Model = cloudModel
	switch cloudProvider {
	case "openai", "azure":
		cfg.ModelB.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.ModelB.APIKey == "" {
			cfg.ModelB.APIKey = os.Getenv("AZURE_OPENAI_API_KEY")
		}
		if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
			cfg.ModelB.BaseURL = baseURL
		}
	case "gemini":
		cfg.ModelB.APIKey = os.Getenv("GEMINI_API_KEY")
		if cfg.ModelB.APIKey == "" {
			cfg.ModelB.APIKey = os.Getenv("GOOGLE_API_KEY")
		}
	}

	cfg.Rules.Path = rulesPath
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose

	return cfg
}
