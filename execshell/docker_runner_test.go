package execshell_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/jjx/execshell"
)

const (
	testContainerIdentifierConstant = "test-container"
	testContainerImageConstant      = "jj-sandbox-image"
	testWorkingDirectoryConstant    = "/repo"
	testContainerUserConstant       = "nobody"
)

type scriptedCommandRunner struct {
	queuedResults      []execshell.ExecutionResult
	runError           error
	recordedArguments  [][]string
}

func (runner *scriptedCommandRunner) Run(executionContext context.Context, commandArguments []string) (execshell.ExecutionResult, error) {
	runner.recordedArguments = append(runner.recordedArguments, commandArguments)
	if runner.runError != nil {
		return execshell.ExecutionResult{}, runner.runError
	}
	if len(runner.queuedResults) == 0 {
		return execshell.ExecutionResult{Arguments: commandArguments}, nil
	}
	nextResult := runner.queuedResults[0]
	runner.queuedResults = runner.queuedResults[1:]
	if nextResult.Arguments == nil {
		nextResult.Arguments = commandArguments
	}
	return nextResult, nil
}

func TestDockerCommandRunnerWrapsArguments(testInstance *testing.T) {
	processRunner := &scriptedCommandRunner{queuedResults: []execshell.ExecutionResult{{StandardOutput: "output"}}}
	containerRunner := execshell.AttachContainer(testContainerIdentifierConstant, execshell.ContainerOptions{
		WorkingDirectory: testWorkingDirectoryConstant,
		User:             testContainerUserConstant,
		Environment:      map[string]string{"FOO": "bar"},
		Runner:           processRunner,
	})

	executionResult, executionError := containerRunner.Run(context.Background(), []string{"jj", "log"})
	require.NoError(testInstance, executionError)

	expectedWrappedArguments := []string{
		"docker", "exec",
		"-w", testWorkingDirectoryConstant,
		"-u", testContainerUserConstant,
		"-e", "FOO=bar",
		testContainerIdentifierConstant,
		"jj", "log",
	}
	require.Equal(testInstance, [][]string{expectedWrappedArguments}, processRunner.recordedArguments)

	require.Equal(testInstance, []string{"jj", "log"}, executionResult.Arguments)
	require.Equal(testInstance, "output", executionResult.StandardOutput)
}

func TestDockerCommandRunnerRejectsEmptyArguments(testInstance *testing.T) {
	containerRunner := execshell.AttachContainer(testContainerIdentifierConstant, execshell.ContainerOptions{Runner: &scriptedCommandRunner{}})
	_, executionError := containerRunner.Run(context.Background(), nil)
	require.ErrorIs(testInstance, executionError, execshell.ErrEmptyCommand)
}

func TestStartContainerBuildsRunArguments(testInstance *testing.T) {
	processRunner := &scriptedCommandRunner{queuedResults: []execshell.ExecutionResult{{StandardOutput: "container123\n"}}}
	containerRunner, startError := execshell.StartContainer(context.Background(), execshell.ContainerOptions{
		Image:            testContainerImageConstant,
		WorkingDirectory: testWorkingDirectoryConstant,
		User:             testContainerUserConstant,
		Environment:      map[string]string{"KEY": "val"},
		Volumes:          map[string]string{"/host": "/container"},
		Ports:            map[int]int{8080: 80},
		Runner:           processRunner,
	})
	require.NoError(testInstance, startError)

	expectedStartArguments := []string{
		"docker", "run", "-d", "--rm",
		"-w", testWorkingDirectoryConstant,
		"-u", testContainerUserConstant,
		"-e", "KEY=val",
		"-v", "/host:/container",
		"-p", "8080:80",
		testContainerImageConstant, "sleep", "infinity",
	}
	require.Equal(testInstance, [][]string{expectedStartArguments}, processRunner.recordedArguments)

	require.Equal(testInstance, "container123", containerRunner.ContainerIdentifier())
	require.True(testInstance, containerRunner.OwnsContainer())
}

func TestStartContainerRequiresImage(testInstance *testing.T) {
	_, startError := execshell.StartContainer(context.Background(), execshell.ContainerOptions{Runner: &scriptedCommandRunner{}})
	require.ErrorIs(testInstance, startError, execshell.ErrContainerImageRequired)
}

func TestStartContainerFailsImmediatelyOnNonZeroExit(testInstance *testing.T) {
	processRunner := &scriptedCommandRunner{queuedResults: []execshell.ExecutionResult{{StandardError: "error starting\n", ExitCode: 1}}}
	_, startError := execshell.StartContainer(context.Background(), execshell.ContainerOptions{Image: testContainerImageConstant, Runner: processRunner})

	startFailure := execshell.ContainerStartError{}
	require.ErrorAs(testInstance, startError, &startFailure)
	require.Equal(testInstance, testContainerImageConstant, startFailure.Image)
	require.Equal(testInstance, 1, startFailure.ExitCode)
	require.Equal(testInstance, "error starting", startFailure.Stderr)
	require.Len(testInstance, processRunner.recordedArguments, 1)
}

func TestStopTearsDownOwnedContainerOnce(testInstance *testing.T) {
	processRunner := &scriptedCommandRunner{queuedResults: []execshell.ExecutionResult{{StandardOutput: "c1\n"}}}
	containerRunner, startError := execshell.StartContainer(context.Background(), execshell.ContainerOptions{Image: testContainerImageConstant, Runner: processRunner})
	require.NoError(testInstance, startError)

	require.NoError(testInstance, containerRunner.Stop(context.Background()))
	require.Equal(testInstance, []string{"docker", "stop", "c1"}, processRunner.recordedArguments[1])
	require.False(testInstance, containerRunner.OwnsContainer())

	require.NoError(testInstance, containerRunner.Stop(context.Background()))
	require.Len(testInstance, processRunner.recordedArguments, 2)
}

func TestStopIsNoOpForAttachedContainer(testInstance *testing.T) {
	processRunner := &scriptedCommandRunner{}
	containerRunner := execshell.AttachContainer(testContainerIdentifierConstant, execshell.ContainerOptions{Runner: processRunner})

	require.NoError(testInstance, containerRunner.Stop(context.Background()))
	require.Empty(testInstance, processRunner.recordedArguments)
}

func TestWithContainerStopsOnEveryExitPath(testInstance *testing.T) {
	callbackFailure := errors.New("callback failure")

	testCases := []struct {
		name          string
		callbackError error
	}{
		{name: "callback_success", callbackError: nil},
		{name: "callback_failure", callbackError: callbackFailure},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			processRunner := &scriptedCommandRunner{queuedResults: []execshell.ExecutionResult{{StandardOutput: "scoped-container\n"}}}

			scopeError := execshell.WithContainer(context.Background(), execshell.ContainerOptions{Image: testContainerImageConstant, Runner: processRunner}, func(containerRunner *execshell.DockerCommandRunner) error {
				require.Equal(testInstance, "scoped-container", containerRunner.ContainerIdentifier())
				return testCase.callbackError
			})

			if testCase.callbackError != nil {
				require.ErrorIs(testInstance, scopeError, testCase.callbackError)
			} else {
				require.NoError(testInstance, scopeError)
			}

			lastArguments := processRunner.recordedArguments[len(processRunner.recordedArguments)-1]
			require.Equal(testInstance, []string{"docker", "stop", "scoped-container"}, lastArguments)
		})
	}
}

func TestWithContainerRequiresCallback(testInstance *testing.T) {
	scopeError := execshell.WithContainer(context.Background(), execshell.ContainerOptions{Image: testContainerImageConstant, Runner: &scriptedCommandRunner{}}, nil)
	require.ErrorIs(testInstance, scopeError, execshell.ErrContainerCallbackRequired)
}
