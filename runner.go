package jjx

import (
	"context"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/jjx/execshell"
)

const (
	commandStartMessageConstant        = "running jj command"
	commandFinishMessageConstant       = "jj command finished"
	commandSpawnFailureMessageConstant = "jj command could not be executed"
	commandArgumentsFieldConstant      = "arguments"
	exitCodeFieldConstant              = "exit_code"
)

// repoNotFoundHints are the stderr fragments jj emits when no repository
// exists at the resolved location. The matching is heuristic and tracks
// human-readable tool output, so the list may need extension across jj
// versions.
var repoNotFoundHints = []string{
	"There is no jj repo",
	"No repo found",
	"is not a valid jj repo",
}

type settings struct {
	binaryPath string
	transport  execshell.CommandRunner
	logger     *zap.Logger
}

// Option customizes runner and repository construction.
type Option func(*settings)

// WithBinaryPath overrides the jj binary resolved on the search path.
func WithBinaryPath(binaryPath string) Option {
	return func(configuration *settings) {
		configuration.binaryPath = binaryPath
	}
}

// WithTransport overrides how argument vectors are executed, for example to
// run jj inside a container via execshell.DockerCommandRunner.
func WithTransport(transport execshell.CommandRunner) Option {
	return func(configuration *settings) {
		configuration.transport = transport
	}
}

// WithLogger enables structured command logging. Without it the client stays
// silent.
func WithLogger(logger *zap.Logger) Option {
	return func(configuration *settings) {
		configuration.logger = logger
	}
}

func newSettings(options []Option) settings {
	configuration := settings{
		binaryPath: defaultBinaryNameConstant,
		transport:  execshell.NewOSCommandRunner(),
		logger:     zap.NewNop(),
	}
	for _, option := range options {
		option(&configuration)
	}
	return configuration
}

// Runner builds full jj argument vectors and executes them through a
// transport, classifying non-zero exits into typed errors.
type Runner struct {
	binaryPath     string
	repositoryPath string
	transport      execshell.CommandRunner
	logger         *zap.Logger
}

// NewRunner constructs a runner, optionally bound to a repository path. An
// empty repositoryPath leaves the runner unbound, so jj resolves the
// repository from the process working directory. The configured binary must
// be resolvable on the search path; otherwise construction fails with
// NotFoundError and is never retried.
func NewRunner(repositoryPath string, options ...Option) (*Runner, error) {
	configuration := newSettings(options)

	if _, lookupError := exec.LookPath(configuration.binaryPath); lookupError != nil {
		return nil, NotFoundError{BinaryPath: configuration.binaryPath}
	}

	return &Runner{
		binaryPath:     configuration.binaryPath,
		repositoryPath: repositoryPath,
		transport:      configuration.transport,
		logger:         configuration.logger,
	}, nil
}

// BinaryPath reports the configured jj binary.
func (runner *Runner) BinaryPath() string {
	return runner.binaryPath
}

// RepositoryPath reports the bound repository path, empty when unbound.
func (runner *Runner) RepositoryPath() string {
	return runner.repositoryPath
}

// Run executes a jj subcommand. The full argument vector is always
// [binary, --no-pager, --color, never, (--repository, path)?, args...].
//
// With check set, a non-zero exit becomes a RepoNotFoundError when stderr
// matches a known no-repository hint and a CommandError otherwise. Without
// check the raw result is returned regardless of exit status.
func (runner *Runner) Run(executionContext context.Context, commandArguments []string, check bool) (execshell.ExecutionResult, error) {
	fullArguments := []string{runner.binaryPath, noPagerFlagConstant, colorFlagConstant, colorNeverValueConstant}
	if len(runner.repositoryPath) > 0 {
		fullArguments = append(fullArguments, repositoryFlagConstant, runner.repositoryPath)
	}
	fullArguments = append(fullArguments, commandArguments...)

	runner.logger.Debug(commandStartMessageConstant, zap.Strings(commandArgumentsFieldConstant, fullArguments))

	executionResult, executionError := runner.transport.Run(executionContext, fullArguments)
	if executionError != nil {
		runner.logger.Error(commandSpawnFailureMessageConstant, zap.Strings(commandArgumentsFieldConstant, fullArguments), zap.Error(executionError))
		return execshell.ExecutionResult{}, executionError
	}

	runner.logger.Debug(commandFinishMessageConstant, zap.Int(exitCodeFieldConstant, executionResult.ExitCode))

	if check && executionResult.ExitCode != 0 {
		return execshell.ExecutionResult{}, runner.classifyFailure(fullArguments, executionResult)
	}

	return executionResult, nil
}

func (runner *Runner) classifyFailure(fullArguments []string, executionResult execshell.ExecutionResult) error {
	trimmedStandardError := strings.TrimSpace(executionResult.StandardError)
	commandError := CommandError{
		Command:  fullArguments,
		ExitCode: executionResult.ExitCode,
		Stderr:   trimmedStandardError,
	}
	for _, repoNotFoundHint := range repoNotFoundHints {
		if strings.Contains(trimmedStandardError, repoNotFoundHint) {
			return RepoNotFoundError{CommandError: commandError}
		}
	}
	return commandError
}
