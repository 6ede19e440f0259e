package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:           "review-cli",
	Short:         "review-cli runs code reviews from the terminal.",
	Long:          `A CLI for the code review API. It reviews local files with the same prompt and model backend as the HTTP service.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("provider", "", "LLM provider (gemini or ollama)")
	flags.String("model", "", "Gemini model ID")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")

	bindings := map[string]string{
		"LLM_PROVIDER": "provider",
		"GEMINI_MODEL": "model",
		"LOG_LEVEL":    "log-level",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			slog.Error("Error binding flag", "flag", flag, "error", err)
			os.Exit(1)
		}
	}
}

// initConfig keeps log output off stdout, which carries the review itself.
func initConfig() {
	if os.Getenv("LOG_OUTPUT") == "" {
		_ = os.Setenv("LOG_OUTPUT", "stderr")
	}
	if os.Getenv("LOG_LEVEL") == "" && !rootCmd.PersistentFlags().Changed("log-level") {
		_ = os.Setenv("LOG_LEVEL", "warn")
	}
}
