package execshell

import (
	"context"
	"errors"
)

const emptyCommandMessageConstant = "command arguments must not be empty"

// ErrEmptyCommand indicates a runner received an empty argument vector.
var ErrEmptyCommand = errors.New(emptyCommandMessageConstant)

// ExecutionResult captures the outcome of executing a command.
//
// Arguments always reports the argument vector the caller supplied, even when
// a transport wraps it in its own invocation syntax before spawning.
type ExecutionResult struct {
	Arguments      []string
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner executes an argument vector and captures its output.
//
// A non-zero exit status is reported through ExecutionResult.ExitCode, not
// through the error return. An error return means the process could not be
// executed at all.
type CommandRunner interface {
	Run(executionContext context.Context, commandArguments []string) (ExecutionResult, error)
}
