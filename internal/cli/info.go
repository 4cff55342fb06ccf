package cli

import (
	"fmt"

	"github.com/ppiankov/halidex/internal/engine"
	"github.com/ppiankov/halidex/internal/service"
	"github.com/spf13/cobra"
)

// componentsCmd represents the components command
var componentsCmd = &cobra.Command{
	Use:   "components",
	Short: "Describe the five fused signals",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.New(engine.New(engine.Options{}), 1)
		info := svc.Components()

		if outJSON != "" {
			return writeJSON(outJSON, info)
		}

		// Stable display order matching the weight vector
		for _, name := range []string{"contradiction", "support", "instability", "speculative", "numeric_sanity"} {
			c := info.Components[name]
			fmt.Printf("%-16s weight=%.2f  %s\n", name, c.Weight, c.Description)
			fmt.Printf("%-16s method: %s\n\n", "", c.Method)
		}
		fmt.Println(info.Formula)
		return nil
	},
}

// examplesCmd represents the examples command
var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "Show demo texts spanning the risk buckets",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.New(engine.New(engine.Options{}), 1)
		examples := svc.Examples()

		if outJSON != "" {
			return writeJSON(outJSON, examples)
		}

		for _, ex := range examples {
			fmt.Printf("%s\n  %s\n  > %s\n\n", ex.Name, ex.Description, ex.Text)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(componentsCmd)
	rootCmd.AddCommand(examplesCmd)

	componentsCmd.Flags().StringVar(&outJSON, "json", "", "write JSON to path (\"-\" for stdout)")
	examplesCmd.Flags().StringVar(&outJSON, "json", "", "write JSON to path (\"-\" for stdout)")
}
