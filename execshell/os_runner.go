package execshell

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// OSCommandRunner executes commands using the operating system facilities.
type OSCommandRunner struct{}

// NewOSCommandRunner constructs a runner backed by os/exec.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{}
}

// Run executes the supplied argument vector via os/exec, capturing both
// output streams fully. Cancelling the context terminates the subprocess.
func (runner *OSCommandRunner) Run(executionContext context.Context, commandArguments []string) (ExecutionResult, error) {
	if len(commandArguments) == 0 {
		return ExecutionResult{}, ErrEmptyCommand
	}

	executable := exec.CommandContext(executionContext, commandArguments[0], commandArguments[1:]...)

	var standardOutputBuffer bytes.Buffer
	var standardErrorBuffer bytes.Buffer
	executable.Stdout = &standardOutputBuffer
	executable.Stderr = &standardErrorBuffer

	runError := executable.Run()
	if runError != nil {
		exitError := &exec.ExitError{}
		if errors.As(runError, &exitError) {
			return ExecutionResult{
				Arguments:      commandArguments,
				StandardOutput: standardOutputBuffer.String(),
				StandardError:  standardErrorBuffer.String(),
				ExitCode:       exitError.ExitCode(),
			}, nil
		}
		return ExecutionResult{}, runError
	}

	return ExecutionResult{
		Arguments:      commandArguments,
		StandardOutput: standardOutputBuffer.String(),
		StandardError:  standardErrorBuffer.String(),
		ExitCode:       0,
	}, nil
}
