package jjx

import (
	"fmt"
	"strings"
)

const (
	binaryNotFoundTemplateConstant = "could not find jj binary at %q: is jj installed and on your PATH?"
	commandFailedTemplateConstant  = "jj command failed (exit %d): %s: %s"
	parseFailureTemplateConstant   = "parsing %s output failed: %s"
)

// NotFoundError reports that the configured jj binary could not be resolved
// at construction time. The condition is permanent; runners never re-check.
type NotFoundError struct {
	BinaryPath string
}

// Error describes the missing binary.
func (notFoundError NotFoundError) Error() string {
	return fmt.Sprintf(binaryNotFoundTemplateConstant, notFoundError.BinaryPath)
}

// CommandError reports a jj invocation that exited with a non-zero status. It
// carries the full argument vector, the exit code, and the trimmed stderr.
type CommandError struct {
	Command  []string
	ExitCode int
	Stderr   string
}

// Error describes the failed command.
func (commandError CommandError) Error() string {
	return fmt.Sprintf(commandFailedTemplateConstant, commandError.ExitCode, strings.Join(commandError.Command, " "), commandError.Stderr)
}

// RepoNotFoundError is a CommandError raised when jj reports that no
// repository exists at the resolved location. It matches errors.As for both
// RepoNotFoundError and CommandError.
type RepoNotFoundError struct {
	CommandError
}

// Unwrap exposes the underlying CommandError for errors.As classification.
func (repoNotFoundError RepoNotFoundError) Unwrap() error {
	return repoNotFoundError.CommandError
}

// ParseError reports that jj output for a specific payload kind could not be
// decoded into its structured form.
type ParseError struct {
	Kind  string
	Cause error
}

// Error describes the decoding failure.
func (parseError ParseError) Error() string {
	return fmt.Sprintf(parseFailureTemplateConstant, parseError.Kind, parseError.Cause)
}

// Unwrap exposes the underlying decoding error.
func (parseError ParseError) Unwrap() error {
	return parseError.Cause
}
