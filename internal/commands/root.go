// Package commands provides the ideaforge CLI.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ideaforge-backend/internal/assistant"
	"ideaforge-backend/internal/config"
	"ideaforge-backend/internal/llm"
)

var (
	// Global flags
	modelFlag   string
	promptsFlag string
	streamFlag  bool

	// Version info (set at build time)
	Version = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:   "ideaforge",
	Short: "Personal idea assistant for business and service ideas",
	Long: `ideaforge forwards your requests for business ideas, service ideas,
names and slogans to a hosted language model and shows the reply.

Examples:
  ideaforge serve                       Start the HTTP chat API
  ideaforge chat                        Start an interactive chat
  ideaforge ask "5 names for a bakery"  Send a single message`,
	Version:      Version,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "Model to use (default from MODEL_NAME)")
	rootCmd.PersistentFlags().StringVar(&promptsFlag, "prompts", "", "YAML file overriding the built-in prompts")
	rootCmd.PersistentFlags().BoolVar(&streamFlag, "stream", false, "Use the streaming completion API")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(askCmd)
}

// loadConfig reads the environment and applies global flag overrides.
func loadConfig() config.Config {
	cfg := config.Load()
	if modelFlag != "" {
		cfg.Model = modelFlag
	}
	if promptsFlag != "" {
		cfg.PromptsFile = promptsFlag
	}
	if streamFlag {
		cfg.Stream = true
	}
	return cfg
}

func newGenerator(cfg config.Config) (*assistant.Generator, error) {
	prompts, err := assistant.LoadPrompts(cfg.PromptsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompts: %w", err)
	}
	model := llm.NewOpenAIClient(cfg.APIKey, cfg.BaseURL, cfg.Stream)
	return assistant.NewGenerator(model, cfg.Model, prompts), nil
}
