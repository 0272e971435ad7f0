package ui

import (
	"encoding/json"
	"fmt"
	"os"
)

// Error prints a styled error message to stderr.
func Error(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorIcon, ErrorStyle.Render(fmt.Sprintf(format, args...)))
}

// Warning prints a styled warning message to stderr.
func Warning(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s %s\n", WarningIcon, WarningStyle.Render(fmt.Sprintf(format, args...)))
}

// JSON prints v as a single line of JSON on stdout. Tool results always go
// through here so output stays parseable by the next script in a pipeline.
func JSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
