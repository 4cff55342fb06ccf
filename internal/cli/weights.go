package cli

import (
	"fmt"
	"strings"

	"github.com/ppiankov/halidex/internal/engine"
	"github.com/ppiankov/halidex/internal/service"
	"github.com/spf13/cobra"
)

// weightsCmd represents the weights command
var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Inspect and validate fusion weights",
	Long: `The five fusion weights blend the signals in order: contradiction,
lack of support, instability, speculative language, numeric sanity.
Weights are normalized to sum to 1 before use.`,
}

var weightsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the default fusion weight vector",
	Run: func(cmd *cobra.Command, args []string) {
		svc := service.New(engine.New(engine.Options{}), 1)
		printWeights(svc.GetWeights())
	},
}

var weightsSetCmd = &cobra.Command{
	Use:   "set <w0,w1,w2,w3,w4>",
	Short: "Validate and normalize a weight vector",
	Long: `Validates a comma-separated weight vector and prints the normalized
result that analyze --weights would use.

Example:
  halidex weights set 0.7,0.6,0.3,0.2,0.2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		weights, err := parseWeights(args[0])
		if err != nil {
			return err
		}
		svc := service.New(engine.New(engine.Options{}), 1)
		normalized, err := svc.SetWeights(weights)
		if err != nil {
			return err
		}
		printWeights(normalized)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(weightsCmd)
	weightsCmd.AddCommand(weightsGetCmd)
	weightsCmd.AddCommand(weightsSetCmd)
}

func printWeights(w []float64) {
	names := []string{"contradiction", "lack_of_support", "instability", "speculative", "numeric_sanity"}
	parts := make([]string, 0, len(w))
	for i, v := range w {
		fmt.Printf("%-16s %.4f\n", names[i], v)
		parts = append(parts, fmt.Sprintf("%.4f", v))
	}
	fmt.Printf("\nvector: [%s]\n", strings.Join(parts, ", "))
}
