package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ppiankov/halidex/internal/service"
	"github.com/spf13/cobra"
)

var (
	analyzeFile      string
	analyzeThreshold float64
	analyzeWeights   string
	analyzeTimeout   time.Duration
	outJSON          string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Score a text for hallucination risk",
	Long: `Analyze segments the text into claims and scores each one against
the evidence using five signals: contradiction, lack of support,
paraphrase instability, speculative language, and numeric sanity.

Without evidence the text is scored against itself, which still
surfaces internal contradictions, hedging, and implausible numbers.

Example:
  halidex analyze "The company reported a 500% profit increase in one day."
  halidex analyze --file claims.txt --evidence-url https://example.com/report
  halidex analyze "Revenue grew 15% in Q2." --evidence "Q2 revenue rose 15%." --json result.json
  halidex analyze "..." --provider openai --model gpt-4o-mini`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Input flags
	analyzeCmd.Flags().StringVar(&analyzeFile, "file", "", "read input text from file instead of argument")
	analyzeCmd.Flags().StringVar(&evidenceText, "evidence", "", "inline evidence text")
	analyzeCmd.Flags().StringVar(&evidenceFile, "evidence-file", "", "read evidence from file")
	analyzeCmd.Flags().StringVar(&evidenceURL, "evidence-url", "", "fetch evidence from URL")

	// Scoring flags
	analyzeCmd.Flags().Float64Var(&analyzeThreshold, "threshold", 0, "binary-label threshold in [0.3, 0.7] (default 0.5)")
	analyzeCmd.Flags().StringVar(&analyzeWeights, "weights", "", "comma-separated fusion weights, five values (normalized)")
	analyzeCmd.Flags().StringVar(&rulesPath, "rules", "", "rules file path (default: embedded rules)")

	// Provider flags
	analyzeCmd.Flags().StringVar(&providerName, "provider", "", "inference provider (openai, ollama; empty disables)")
	analyzeCmd.Flags().StringVar(&providerModel, "model", "", "classification model name")
	analyzeCmd.Flags().StringVar(&embeddingModel, "embedding-model", "", "embedding model name")
	analyzeCmd.Flags().StringVar(&providerURL, "base-url", "", "provider base URL override")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable response caching")

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "write full JSON response to path (\"-\" for stdout)")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 2*time.Minute, "overall analysis timeout")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text, err := readInput(args)
	if err != nil {
		return err
	}

	weights, err := parseWeights(analyzeWeights)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	cfg := buildConfig()

	ev, err := resolveEvidence(ctx, cfg)
	if err != nil {
		return fmt.Errorf("resolve evidence: %w", err)
	}

	svc, err := buildService(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Provider: %s\n", providerLabel(cfg.Provider.Name))
		fmt.Fprintf(os.Stderr, "Claims scored against: %s\n", evidenceLabel(ev))
		fmt.Fprintln(os.Stderr)
	}

	resp := svc.Analyze(ctx, service.AnalyzeRequest{
		Text:      text,
		Evidence:  ev,
		Threshold: analyzeThreshold,
		Weights:   weights,
	})
	if !resp.Success {
		return fmt.Errorf("analysis failed: %s", resp.Error)
	}

	if err := writeJSON(outJSON, resp); err != nil {
		return err
	}
	if outJSON != "-" {
		printSummary(resp)
	}
	return nil
}

func readInput(args []string) (string, error) {
	if analyzeFile != "" {
		data, err := os.ReadFile(analyzeFile)
		if err != nil {
			return "", fmt.Errorf("read input file: %w", err)
		}
		return string(data), nil
	}
	if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
		return args[0], nil
	}
	return "", fmt.Errorf("provide text as an argument or via --file")
}

func parseWeights(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	weights := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("parse weights: %w", err)
		}
		weights = append(weights, v)
	}
	return weights, nil
}

func writeJSON(path string, v any) error {
	if path == "" {
		return nil
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	if path == "-" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
	}
	return nil
}

func printSummary(resp service.AnalyzeResponse) {
	r := resp.DocumentResult
	fmt.Printf("Overall THI:  %.4f (%s)\n", r.OverallTHI, riskLabel(r.BinaryLabel))
	fmt.Printf("Threshold:    %.2f\n", r.ThresholdUsed)
	fmt.Printf("Claims:       %d (high %d / medium %d / low %d)\n",
		r.TotalClaims, r.Summary.HighRisk, r.Summary.MediumRisk, r.Summary.LowRisk)
	fmt.Println()

	for i, claim := range r.Claims {
		fmt.Printf("%2d. [%.4f] %s\n", i+1, claim.THIScore, claim.Claim)
		if verbose {
			c := claim.Components
			fmt.Printf("      contradiction=%.4f support=%.4f instability=%.4f speculative=%.4f numeric=%.4f\n",
				c.Contradiction, c.Support, c.Instability, c.Speculative, c.NumericSanity)
			if flags, ok := claim.Explanation["numeric_flags"]; ok {
				fmt.Printf("      flags: %s\n", flags)
			}
			if matches, ok := claim.Explanation["speculative_matches"]; ok {
				fmt.Printf("      %s\n", matches)
			}
		}
	}
}

func riskLabel(flagged bool) string {
	if flagged {
		return "likely hallucinated"
	}
	return "below threshold"
}

func providerLabel(name string) string {
	if name == "" {
		return "none (neutral contradiction/support defaults)"
	}
	return name
}

func evidenceLabel(ev string) string {
	if ev == "" {
		return "input text (no external evidence)"
	}
	return fmt.Sprintf("%d bytes of evidence", len(ev))
}
