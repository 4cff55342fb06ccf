package cli

import (
	"fmt"
	"os"

	"github.com/ppiankov/halidex/internal/model"
	"github.com/ppiankov/halidex/internal/rules"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage Halidex configuration",
	Long: `Manage Halidex configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (HALIDEX_*)
3. Config file (~/.halidex/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := model.DefaultConfig()

		configFile := viper.ConfigFileUsed()
		if configFile != "" {
			fmt.Fprintf(os.Stderr, "Configuration file: %s\n\n", configFile)
		} else {
			fmt.Fprintf(os.Stderr, "No configuration file found (using defaults)\n\n")
		}

		yamlData, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		fmt.Println(string(yamlData))

		fmt.Println("Configuration hierarchy (highest to lowest priority):")
		fmt.Println("  1. CLI flags")
		fmt.Println("  2. Environment variables (HALIDEX_*, OPENAI_API_KEY, OLLAMA_BASE_URL)")
		fmt.Println("  3. Config file (~/.halidex/config.yaml)")
		fmt.Println("  4. Defaults (shown above)")
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize default configuration file",
	Long:  `Create a default configuration file at ~/.halidex/config.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("find home directory: %w", err)
		}

		configDir := home + "/.halidex"
		configPath := configDir + "/config.yaml"

		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config file already exists: %s\nUse 'halidex config show' to view it, or delete it first to recreate", configPath)
		}
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}

		yamlData, err := yaml.Marshal(model.DefaultConfig())
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}

		header := "# Halidex Configuration File\n" +
			"# See https://github.com/ppiankov/halidex for full documentation\n" +
			"#\n" +
			"# Configuration hierarchy (highest to lowest priority):\n" +
			"#   1. CLI flags\n" +
			"#   2. Environment variables (HALIDEX_*)\n" +
			"#   3. This config file\n" +
			"#   4. Built-in defaults\n\n"
		footer := "\n# API keys are read from the environment:\n" +
			"#   export OPENAI_API_KEY=sk-...\n" +
			"#   export OLLAMA_BASE_URL=http://localhost:11434\n"

		if err := os.WriteFile(configPath, []byte(header+string(yamlData)+footer), 0644); err != nil {
			return fmt.Errorf("write config file: %w", err)
		}

		fmt.Printf("Created default configuration: %s\n", configPath)
		fmt.Printf("\nTo view the configuration:\n  halidex config show\n")
		return nil
	},
}

var rulesOutPath string

var configRulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Write the embedded rule set to a file for customization",
	Long: `Dump the embedded rules (hedge/absolute lexicons, sanity thresholds,
synonym table) as YAML. Edit the file and pass it back with --rules.

Example:
  halidex config rules --out rules.yaml
  halidex analyze "..." --rules rules.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		yamlData, err := yaml.Marshal(rules.Default())
		if err != nil {
			return fmt.Errorf("marshal rules: %w", err)
		}
		if rulesOutPath == "" || rulesOutPath == "-" {
			fmt.Print(string(yamlData))
			return nil
		}
		if _, err := os.Stat(rulesOutPath); err == nil {
			return fmt.Errorf("file already exists: %s", rulesOutPath)
		}
		if err := os.WriteFile(rulesOutPath, yamlData, 0644); err != nil {
			return fmt.Errorf("write rules file: %w", err)
		}
		fmt.Printf("Wrote embedded rules to %s\n", rulesOutPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configRulesCmd)

	configRulesCmd.Flags().StringVar(&rulesOutPath, "out", "", "output path (default: stdout)")
}
