package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matsen/insp/internal/inspire"
)

// Title truncation length in human-readable listings.
const ListTitleMaxLen = 70

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...any) {
	fmt.Printf(format, args...)
}

// output writes v as JSON, or calls human when --human is set.
func output(v any, human func()) error {
	if humanOutput {
		human()
		return nil
	}
	return outputJSON(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// exitWithAPIError maps an INSPIRE client error to its exit code.
func exitWithAPIError(context string, err error) {
	switch {
	case inspire.IsNotFound(err):
		exitWithError(ExitNotFound, "%s: not found", context)
	case inspire.IsRateLimited(err), inspire.IsCircuitOpen(err):
		exitWithError(ExitAPIError, "%s: %v", context, err)
	default:
		exitWithError(ExitError, "%s: %v", context, err)
	}
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a generic response for commands that write files.
type StatusResponse struct {
	Status string   `json:"status"`
	Paths  []string `json:"paths,omitempty"`
	Count  int      `json:"count"`
}

// TextResponse wraps rendered text in JSON output.
type TextResponse struct {
	Format string `json:"format"`
	Count  int    `json:"count"`
	Text   string `json:"text"`
}

// truncateString truncates s to maxLen runes, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
