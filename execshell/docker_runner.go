package execshell

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	defaultDockerPathConstant        = "docker"
	dockerRunSubcommandConstant      = "run"
	dockerExecSubcommandConstant     = "exec"
	dockerStopSubcommandConstant     = "stop"
	dockerDetachFlagConstant         = "-d"
	dockerRemoveFlagConstant         = "--rm"
	dockerWorkingDirectoryFlag       = "-w"
	dockerUserFlagConstant           = "-u"
	dockerEnvironmentFlagConstant    = "-e"
	dockerVolumeFlagConstant         = "-v"
	dockerPortFlagConstant           = "-p"
	dockerKeepAliveCommandConstant   = "sleep"
	dockerKeepAliveDurationConstant  = "infinity"
	environmentAssignmentTemplate    = "%s=%s"
	volumeMappingTemplateConstant    = "%s:%s"
	portMappingTemplateConstant      = "%d:%d"
	containerStartFailureTemplate    = "starting container from image %q failed (exit %d): %s"
	containerImageRequiredConstant   = "container image must not be empty"
	containerCallbackRequiredMessage = "container callback must not be nil"
)

// ErrContainerImageRequired indicates StartContainer was called without an image.
var ErrContainerImageRequired = errors.New(containerImageRequiredConstant)

// ErrContainerCallbackRequired indicates WithContainer was called without a callback.
var ErrContainerCallbackRequired = errors.New(containerCallbackRequiredMessage)

// ContainerStartError reports a failed container provisioning attempt.
type ContainerStartError struct {
	Image    string
	ExitCode int
	Stderr   string
}

// Error describes the provisioning failure.
func (startError ContainerStartError) Error() string {
	return fmt.Sprintf(containerStartFailureTemplate, startError.Image, startError.ExitCode, startError.Stderr)
}

// ContainerOptions configure a Docker-backed runner.
//
// Image, Volumes, and Ports apply only when starting a fresh container;
// WorkingDirectory, User, and Environment additionally apply to every
// executed command. Runner overrides how the docker binary itself is
// invoked and defaults to OSCommandRunner.
type ContainerOptions struct {
	Image            string
	WorkingDirectory string
	User             string
	Environment      map[string]string
	Volumes          map[string]string
	Ports            map[int]int
	DockerPath       string
	Runner           CommandRunner
}

func (options ContainerOptions) dockerPath() string {
	if len(options.DockerPath) > 0 {
		return options.DockerPath
	}
	return defaultDockerPathConstant
}

func (options ContainerOptions) processRunner() CommandRunner {
	if options.Runner != nil {
		return options.Runner
	}
	return NewOSCommandRunner()
}

// DockerCommandRunner executes commands inside a Docker container.
//
// It either attaches to an existing container or owns one it provisioned via
// StartContainer. Stop tears down only containers the runner itself started.
type DockerCommandRunner struct {
	containerIdentifier string
	workingDirectory    string
	user                string
	environment         map[string]string
	dockerPath          string
	ownsContainer       bool
	processRunner       CommandRunner
}

// AttachContainer binds a runner to a pre-existing container. Stop is a no-op
// for attached runners.
func AttachContainer(containerIdentifier string, options ContainerOptions) *DockerCommandRunner {
	return &DockerCommandRunner{
		containerIdentifier: containerIdentifier,
		workingDirectory:    options.WorkingDirectory,
		user:                options.User,
		environment:         options.Environment,
		dockerPath:          options.dockerPath(),
		ownsContainer:       false,
		processRunner:       options.processRunner(),
	}
}

// StartContainer provisions a fresh container from the configured image and
// returns a runner bound to it. Provisioning failures surface immediately
// with the captured stderr; there is no retry.
func StartContainer(executionContext context.Context, options ContainerOptions) (*DockerCommandRunner, error) {
	if len(options.Image) == 0 {
		return nil, ErrContainerImageRequired
	}

	startArguments := []string{options.dockerPath(), dockerRunSubcommandConstant, dockerDetachFlagConstant, dockerRemoveFlagConstant}
	if len(options.WorkingDirectory) > 0 {
		startArguments = append(startArguments, dockerWorkingDirectoryFlag, options.WorkingDirectory)
	}
	if len(options.User) > 0 {
		startArguments = append(startArguments, dockerUserFlagConstant, options.User)
	}
	startArguments = append(startArguments, environmentArguments(options.Environment)...)
	for _, hostPath := range sortedStringKeys(options.Volumes) {
		startArguments = append(startArguments, dockerVolumeFlagConstant, fmt.Sprintf(volumeMappingTemplateConstant, hostPath, options.Volumes[hostPath]))
	}
	for _, hostPort := range sortedIntegerKeys(options.Ports) {
		startArguments = append(startArguments, dockerPortFlagConstant, fmt.Sprintf(portMappingTemplateConstant, hostPort, options.Ports[hostPort]))
	}
	startArguments = append(startArguments, options.Image, dockerKeepAliveCommandConstant, dockerKeepAliveDurationConstant)

	processRunner := options.processRunner()
	startResult, startError := processRunner.Run(executionContext, startArguments)
	if startError != nil {
		return nil, startError
	}
	if startResult.ExitCode != 0 {
		return nil, ContainerStartError{Image: options.Image, ExitCode: startResult.ExitCode, Stderr: strings.TrimSpace(startResult.StandardError)}
	}

	return &DockerCommandRunner{
		containerIdentifier: strings.TrimSpace(startResult.StandardOutput),
		workingDirectory:    options.WorkingDirectory,
		user:                options.User,
		environment:         options.Environment,
		dockerPath:          options.dockerPath(),
		ownsContainer:       true,
		processRunner:       processRunner,
	}, nil
}

// WithContainer provisions a container, invokes the callback with a runner
// bound to it, and guarantees teardown on every exit path.
func WithContainer(executionContext context.Context, options ContainerOptions, callback func(*DockerCommandRunner) error) (callbackError error) {
	if callback == nil {
		return ErrContainerCallbackRequired
	}

	containerRunner, startError := StartContainer(executionContext, options)
	if startError != nil {
		return startError
	}
	defer func() {
		stopError := containerRunner.Stop(executionContext)
		callbackError = errors.Join(callbackError, stopError)
	}()

	return callback(containerRunner)
}

// ContainerIdentifier reports the container the runner is bound to.
func (runner *DockerCommandRunner) ContainerIdentifier() string {
	return runner.containerIdentifier
}

// OwnsContainer reports whether Stop will tear the container down.
func (runner *DockerCommandRunner) OwnsContainer() bool {
	return runner.ownsContainer
}

// Stop tears down the container when the runner provisioned it; attached
// runners leave the container untouched.
func (runner *DockerCommandRunner) Stop(executionContext context.Context) error {
	if !runner.ownsContainer {
		return nil
	}
	_, stopError := runner.processRunner.Run(executionContext, []string{runner.dockerPath, dockerStopSubcommandConstant, runner.containerIdentifier})
	if stopError != nil {
		return stopError
	}
	runner.ownsContainer = false
	return nil
}

// Run executes the supplied argument vector inside the container via
// docker exec. The returned result reports the original argument vector, not
// the docker-wrapped one.
func (runner *DockerCommandRunner) Run(executionContext context.Context, commandArguments []string) (ExecutionResult, error) {
	if len(commandArguments) == 0 {
		return ExecutionResult{}, ErrEmptyCommand
	}

	executionResult, executionError := runner.processRunner.Run(executionContext, runner.wrappedArguments(commandArguments))
	if executionError != nil {
		return ExecutionResult{}, executionError
	}

	executionResult.Arguments = commandArguments
	return executionResult, nil
}

func (runner *DockerCommandRunner) wrappedArguments(commandArguments []string) []string {
	wrapped := []string{runner.dockerPath, dockerExecSubcommandConstant}
	if len(runner.workingDirectory) > 0 {
		wrapped = append(wrapped, dockerWorkingDirectoryFlag, runner.workingDirectory)
	}
	if len(runner.user) > 0 {
		wrapped = append(wrapped, dockerUserFlagConstant, runner.user)
	}
	wrapped = append(wrapped, environmentArguments(runner.environment)...)
	wrapped = append(wrapped, runner.containerIdentifier)
	return append(wrapped, commandArguments...)
}

func environmentArguments(environment map[string]string) []string {
	var arguments []string
	for _, environmentKey := range sortedStringKeys(environment) {
		arguments = append(arguments, dockerEnvironmentFlagConstant, fmt.Sprintf(environmentAssignmentTemplate, environmentKey, environment[environmentKey]))
	}
	return arguments
}

func sortedStringKeys(mapping map[string]string) []string {
	keys := make([]string, 0, len(mapping))
	for key := range mapping {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func sortedIntegerKeys(mapping map[int]int) []int {
	keys := make([]int, 0, len(mapping))
	for key := range mapping {
		keys = append(keys, key)
	}
	sort.Ints(keys)
	return keys
}

var _ CommandRunner = (*DockerCommandRunner)(nil)
var _ CommandRunner = (*OSCommandRunner)(nil)
