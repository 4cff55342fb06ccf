package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	batchConcurrency int
	batchThreshold   float64
	batchTimeout     time.Duration
	batchOutJSON     string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Score multiple texts from a file in parallel",
	Long: `Batch reads texts from a file (one per line, blank lines and lines
starting with # skipped) and scores each independently against the
shared evidence. One text failing does not abort the rest.

Example:
  halidex batch claims.txt
  halidex batch claims.txt --concurrency 8 --evidence-file report.txt
  halidex batch claims.txt --threshold 0.6 --json results.json`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().Float64Var(&batchThreshold, "threshold", 0, "binary-label threshold in [0.3, 0.7] (default 0.5)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVar(&batchOutJSON, "json", "", "write full JSON response to path (\"-\" for stdout)")

	batchCmd.Flags().StringVar(&evidenceText, "evidence", "", "inline evidence text shared by all texts")
	batchCmd.Flags().StringVar(&evidenceFile, "evidence-file", "", "read shared evidence from file")
	batchCmd.Flags().StringVar(&evidenceURL, "evidence-url", "", "fetch shared evidence from URL")
	batchCmd.Flags().StringVar(&rulesPath, "rules", "", "rules file path (default: embedded rules)")

	batchCmd.Flags().StringVar(&providerName, "provider", "", "inference provider (openai, ollama; empty disables)")
	batchCmd.Flags().StringVar(&providerModel, "model", "", "classification model name")
	batchCmd.Flags().StringVar(&embeddingModel, "embedding-model", "", "embedding model name")
	batchCmd.Flags().StringVar(&providerURL, "base-url", "", "provider base URL override")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable response caching")
}

func runBatch(cmd *cobra.Command, args []string) error {
	texts, err := readTexts(args[0])
	if err != nil {
		return err
	}
	if len(texts) == 0 {
		return fmt.Errorf("no texts found in %s", args[0])
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := buildConfig()
	if batchConcurrency > 0 {
		cfg.Concurrency.BatchWorkers = batchConcurrency
	}

	ev, err := resolveEvidence(ctx, cfg)
	if err != nil {
		return fmt.Errorf("resolve evidence: %w", err)
	}

	svc, err := buildService(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Scoring %d texts with %d workers...\n\n", len(texts), cfg.Concurrency.BatchWorkers)

	resp := svc.BatchAnalyze(ctx, texts, ev, batchThreshold)

	successCount := 0
	failureCount := 0
	for _, item := range resp.Results {
		if item.Error != "" {
			failureCount++
			fmt.Printf("✗ %s: %s\n", truncate(item.Text, 60), item.Error)
			continue
		}
		successCount++
		fmt.Printf("✓ [%.4f] %s (claims: %d, high risk: %d)\n",
			item.THIScore, truncate(item.Text, 60), item.TotalClaims, item.Summary.HighRisk)
	}

	fmt.Fprintf(os.Stderr, "\nTotal: %d  Success: %d  Failures: %d  (%.1fms)\n",
		resp.TotalTexts, successCount, failureCount, resp.ProcessingTimeMS)

	return writeJSON(batchOutJSON, resp)
}

// readTexts loads one text per line, skipping blanks and # comments
func readTexts(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texts file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var texts []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		texts = append(texts, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read texts file: %w", err)
	}
	return texts, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
