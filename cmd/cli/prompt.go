package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/codesphere-app/review-api/internal/llm"
)

var promptLanguage string

var promptCmd = &cobra.Command{
	Use:   "prompt [file]",
	Short: "Print the review prompt for a source file without calling the model",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		req, err := readSource(path, promptLanguage, cmd.InOrStdin())
		if err != nil {
			return err
		}

		pm, err := llm.NewPromptManager()
		if err != nil {
			return fmt.Errorf("failed to load prompts: %w", err)
		}

		provider := llm.DefaultProvider
		if p := viper.GetString("LLM_PROVIDER"); p != "" {
			provider = llm.ModelProvider(p)
		}

		prompt, err := pm.BuildPrompt(provider, req.Language, req.Code)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), prompt)
		return err
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	promptCmd.Flags().StringVarP(&promptLanguage, "language", "l", "", "Language of the source (default: detect from extension)")
	rootCmd.AddCommand(promptCmd)
}
