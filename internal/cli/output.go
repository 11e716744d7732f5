package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// Error codes reported in JSON output.
const (
	ErrCodeGeneric        = "E001"
	ErrCodeInput          = "E002"
	ErrCodeSessionExpired = "E003"
	ErrCodeBackend        = "E004"
)

// OutputFormatter writes command results as text or a JSON envelope.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  *CLIError   `json:"error,omitempty"`
}

type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success writes data as JSON, or calls text to render it for humans.
func (f *OutputFormatter) Success(data interface{}, text func(w io.Writer) error) error {
	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(CLIResponse{Status: "ok", Data: data})
	}
	return text(f.Writer)
}

// Error writes a failure and returns err so the command exits non-zero.
func (f *OutputFormatter) Error(code string, err error) error {
	if f.Format == "json" {
		json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: err.Error()},
		})
		return err
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, err)
	return err
}

func newFormatter(opts *RootOptions, w io.Writer) *OutputFormatter {
	return &OutputFormatter{Format: opts.Format, Writer: w}
}
