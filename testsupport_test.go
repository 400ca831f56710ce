package jjx_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/jjx"
	"github.com/temirov/jjx/execshell"
)

const (
	testFakeBinaryScriptConstant = "#!/bin/sh\nexit 0\n"
	testAuthorNameConstant       = "Alice"
	testAuthorEmailConstant      = "alice@example.com"
	testAwareTimestampConstant   = "2025-01-15T10:30:00+00:00"
)

// scriptedTransport records every argument vector and replays queued results
// in order, answering unqueued calls with an empty success.
type scriptedTransport struct {
	queuedResults     []execshell.ExecutionResult
	runError          error
	recordedArguments [][]string
}

func (transport *scriptedTransport) Run(executionContext context.Context, commandArguments []string) (execshell.ExecutionResult, error) {
	transport.recordedArguments = append(transport.recordedArguments, commandArguments)
	if transport.runError != nil {
		return execshell.ExecutionResult{}, transport.runError
	}
	if len(transport.queuedResults) == 0 {
		return execshell.ExecutionResult{Arguments: commandArguments}, nil
	}
	nextResult := transport.queuedResults[0]
	transport.queuedResults = transport.queuedResults[1:]
	if nextResult.Arguments == nil {
		nextResult.Arguments = commandArguments
	}
	return nextResult, nil
}

func (transport *scriptedTransport) queue(executionResult execshell.ExecutionResult) {
	transport.queuedResults = append(transport.queuedResults, executionResult)
}

func (transport *scriptedTransport) lastArguments() []string {
	return transport.recordedArguments[len(transport.recordedArguments)-1]
}

// fakeBinaryPath writes an executable stand-in for jj so construction-time
// binary resolution succeeds without jj on the test host.
func fakeBinaryPath(testInstance *testing.T) string {
	testInstance.Helper()
	binaryPath := filepath.Join(testInstance.TempDir(), "jj")
	require.NoError(testInstance, os.WriteFile(binaryPath, []byte(testFakeBinaryScriptConstant), 0o755))
	return binaryPath
}

func newTestRunner(testInstance *testing.T, transport *scriptedTransport, repositoryPath string) *jjx.Runner {
	testInstance.Helper()
	runner, runnerError := jjx.NewRunner(repositoryPath, jjx.WithBinaryPath(fakeBinaryPath(testInstance)), jjx.WithTransport(transport))
	require.NoError(testInstance, runnerError)
	return runner
}

func newTestRepo(testInstance *testing.T, transport *scriptedTransport, repositoryPath string) *jjx.Repo {
	testInstance.Helper()
	repository, constructionError := jjx.New(repositoryPath, jjx.WithBinaryPath(fakeBinaryPath(testInstance)), jjx.WithTransport(transport))
	require.NoError(testInstance, constructionError)
	return repository
}

// subcommandArguments strips the fixed global prefix the runner prepends for
// an unbound repository: [binary, --no-pager, --color, never].
func subcommandArguments(testInstance *testing.T, fullArguments []string) []string {
	testInstance.Helper()
	require.GreaterOrEqual(testInstance, len(fullArguments), 4)
	require.Equal(testInstance, []string{"--no-pager", "--color", "never"}, fullArguments[1:4])
	return fullArguments[4:]
}

// repositorySubcommandArguments strips the global prefix of a repository-bound
// runner, asserting the --repository flag carries the expected path.
func repositorySubcommandArguments(testInstance *testing.T, repositoryPath string, fullArguments []string) []string {
	testInstance.Helper()
	require.GreaterOrEqual(testInstance, len(fullArguments), 6)
	require.Equal(testInstance, []string{"--no-pager", "--color", "never", "--repository", repositoryPath}, fullArguments[1:6])
	return fullArguments[6:]
}

func makeSignaturePayload(timestampText string) map[string]any {
	return map[string]any{
		"name":      testAuthorNameConstant,
		"email":     testAuthorEmailConstant,
		"timestamp": timestampText,
	}
}

type changePayloadOverrides func(basePayload map[string]any, fullPayload map[string]any)

func makeChangePayload(changeIdentifier string, overrides ...changePayloadOverrides) map[string]any {
	basePayload := map[string]any{
		"change_id":   changeIdentifier,
		"commit_id":   "commit-" + changeIdentifier,
		"parents":     []any{"parent-" + changeIdentifier},
		"description": "description of " + changeIdentifier,
		"author":      makeSignaturePayload(testAwareTimestampConstant),
		"committer":   makeSignaturePayload(testAwareTimestampConstant),
	}
	fullPayload := map[string]any{
		"base":            basePayload,
		"bookmarks":       []any{},
		"local_bookmarks": []any{},
		"tags":            []any{},
		"empty":           false,
		"conflict":        false,
		"hidden":          false,
	}
	for _, override := range overrides {
		override(basePayload, fullPayload)
	}
	return fullPayload
}

func changeJSON(testInstance *testing.T, payload map[string]any) string {
	testInstance.Helper()
	encodedPayload, encodeError := json.Marshal(payload)
	require.NoError(testInstance, encodeError)
	return string(encodedPayload)
}

// changesOutput renders payloads the way ChangeListTemplate emits them, with
// a separator terminating every entry.
func changesOutput(testInstance *testing.T, payloads ...map[string]any) string {
	testInstance.Helper()
	renderedOutput := ""
	for _, payload := range payloads {
		renderedOutput += changeJSON(testInstance, payload) + jjx.Separator
	}
	return renderedOutput
}
