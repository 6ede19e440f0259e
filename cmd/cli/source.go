package main

import (
	"fmt"
	"io"
	"os"

	"github.com/codesphere-app/review-api/internal/core"
	"github.com/codesphere-app/review-api/internal/llm"
)

// readSource builds a review request from a file path, or stdin when path is "" or "-".
func readSource(path, language string, stdin io.Reader) (*core.ReviewRequest, error) {
	var (
		code []byte
		err  error
	)
	if path == "" || path == "-" {
		code, err = io.ReadAll(stdin)
	} else {
		code, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}

	if language == "" && path != "" && path != "-" {
		language = llm.LanguageForPath(path)
	}
	if language == "" {
		return nil, fmt.Errorf("could not detect language for %q\n\nTip: pass --language", path)
	}

	return &core.ReviewRequest{Language: language, Code: string(code)}, nil
}
