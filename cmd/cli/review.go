package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codesphere-app/review-api/internal/core"
	"github.com/codesphere-app/review-api/internal/wire"
)

var (
	reviewLanguage string
	rawOutput      bool
	wrapWidth      int
)

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	dimColor     = color.New(color.FgHiBlack)
)

var reviewCmd = &cobra.Command{
	Use:   "review [file]",
	Short: "Review a source file",
	Long: `Review a source file with the configured model and print the feedback.

Reads from stdin when no file (or "-") is given. The language is detected from
the file extension unless --language is set.

Examples:
  review-cli review main.go
  cat script.py | review-cli review --language python
  review-cli review --raw --model gemini-2.5-pro internal/server/server.go`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReview,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	reviewCmd.Flags().StringVarP(&reviewLanguage, "language", "l", "", "Language of the source (default: detect from extension)")
	reviewCmd.Flags().BoolVar(&rawOutput, "raw", false, "Print feedback without markdown rendering")
	reviewCmd.Flags().IntVar(&wrapWidth, "width", 100, "Word wrap width for rendered output")
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	req, err := readSource(path, reviewLanguage, cmd.InOrStdin())
	if err != nil {
		return err
	}

	tooling, cleanup, err := wire.InitializeTooling(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize review service: %w\n\nTip: set GEMINI_API_KEY or add it to .env", err)
	}
	defer cleanup()

	titleColor.Fprintf(os.Stderr, "Reviewing %s code", req.Language)
	dimColor.Fprintf(os.Stderr, " (%d chars, %s)\n", len(req.Code), tooling.Config.GeneratorModel())

	start := time.Now()
	result := tooling.Reviewer.Review(ctx, req)
	elapsed := time.Since(start).Round(time.Millisecond)

	switch result.Outcome {
	case core.OutcomeSuccess:
		successColor.Fprintf(os.Stderr, "Review complete (%s)\n\n", elapsed)
	case core.OutcomeNoResponse:
		warnColor.Fprintf(os.Stderr, "Model returned no candidates (%s)\n\n", elapsed)
	default:
		errorColor.Fprintf(os.Stderr, "Review failed (%s)\n\n", elapsed)
	}

	if err := printFeedback(cmd, result.Feedback()); err != nil {
		return err
	}
	if result.Outcome == core.OutcomeFailed {
		return result.Err
	}
	return nil
}

func printFeedback(cmd *cobra.Command, feedback string) error {
	out := cmd.OutOrStdout()
	if rawOutput {
		_, err := fmt.Fprintln(out, feedback)
		return err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrapWidth),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	rendered, err := renderer.Render(feedback)
	if err != nil {
		_, err = fmt.Fprintln(out, feedback)
		return err
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}
