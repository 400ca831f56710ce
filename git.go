package jjx

import (
	"context"
	"strings"

	"github.com/temirov/jjx/execshell"
)

// GitManager drives the jj git subcommand family plus the plumbing-level
// bundle operations jj does not expose natively.
type GitManager struct {
	runner *Runner
}

// GitPushOptions configure Push. Each field maps to one flag; zero values
// omit the flag.
type GitPushOptions struct {
	Remote       string
	Bookmark     string
	AllBookmarks bool
	Change       string
}

// GitFetchOptions configure Fetch.
type GitFetchOptions struct {
	Remote     string
	AllRemotes bool
}

// GitUnbundleOptions configure BundleUnbundle. An empty Refspec maps all
// bundle refs into the local ref namespace.
type GitUnbundleOptions struct {
	Refspec string
}

func (options GitUnbundleOptions) refspec() string {
	if len(options.Refspec) > 0 {
		return options.Refspec
	}
	return defaultBundleRefspecConstant
}

// Push pushes to a git remote and returns the command output (jj reports
// push progress on stderr).
func (manager *GitManager) Push(executionContext context.Context, options GitPushOptions) (string, error) {
	commandArguments := []string{gitSubcommandConstant, pushSubcommandConstant}
	if len(options.Remote) > 0 {
		commandArguments = append(commandArguments, remoteFlagConstant, options.Remote)
	}
	if len(options.Bookmark) > 0 {
		commandArguments = append(commandArguments, branchFlagConstant, options.Bookmark)
	}
	if options.AllBookmarks {
		commandArguments = append(commandArguments, allFlagConstant)
	}
	if len(options.Change) > 0 {
		commandArguments = append(commandArguments, changeFlagConstant, options.Change)
	}
	executionResult, executionError := manager.runner.Run(executionContext, commandArguments, true)
	if executionError != nil {
		return "", executionError
	}
	return executionResult.StandardError + executionResult.StandardOutput, nil
}

// Fetch fetches from a git remote and returns the command output.
func (manager *GitManager) Fetch(executionContext context.Context, options GitFetchOptions) (string, error) {
	commandArguments := []string{gitSubcommandConstant, fetchSubcommandConstant}
	if len(options.Remote) > 0 {
		commandArguments = append(commandArguments, remoteFlagConstant, options.Remote)
	}
	if options.AllRemotes {
		commandArguments = append(commandArguments, allRemotesFlagConstant)
	}
	executionResult, executionError := manager.runner.Run(executionContext, commandArguments, true)
	if executionError != nil {
		return "", executionError
	}
	return executionResult.StandardError + executionResult.StandardOutput, nil
}

// RemoteAdd adds a git remote.
func (manager *GitManager) RemoteAdd(executionContext context.Context, remoteName string, remoteURL string) error {
	_, executionError := manager.runner.Run(executionContext, []string{gitSubcommandConstant, remoteSubcommandConstant, addSubcommandConstant, remoteName, remoteURL}, true)
	return executionError
}

// RemoteRemove removes a git remote.
func (manager *GitManager) RemoteRemove(executionContext context.Context, remoteName string) error {
	_, executionError := manager.runner.Run(executionContext, []string{gitSubcommandConstant, remoteSubcommandConstant, removeSubcommandConstant, remoteName}, true)
	return executionError
}

// RemoteRename renames a git remote.
func (manager *GitManager) RemoteRename(executionContext context.Context, currentName string, newName string) error {
	_, executionError := manager.runner.Run(executionContext, []string{gitSubcommandConstant, remoteSubcommandConstant, renameSubcommandConstant, currentName, newName}, true)
	return executionError
}

// RemoteSetURL changes the URL of a git remote.
func (manager *GitManager) RemoteSetURL(executionContext context.Context, remoteName string, remoteURL string) error {
	_, executionError := manager.runner.Run(executionContext, []string{gitSubcommandConstant, remoteSubcommandConstant, setURLSubcommandConstant, remoteName, remoteURL}, true)
	return executionError
}

// RemoteList returns the configured git remotes as a name-to-URL mapping.
func (manager *GitManager) RemoteList(executionContext context.Context) (map[string]string, error) {
	executionResult, executionError := manager.runner.Run(executionContext, []string{gitSubcommandConstant, remoteSubcommandConstant, listSubcommandConstant}, true)
	if executionError != nil {
		return nil, executionError
	}
	return ParseRemoteList(executionResult.StandardOutput), nil
}

// Export exports jj refs to the underlying git repository.
func (manager *GitManager) Export(executionContext context.Context) error {
	_, executionError := manager.runner.Run(executionContext, []string{gitSubcommandConstant, exportSubcommandConstant}, true)
	return executionError
}

// Import imports git refs into jj.
func (manager *GitManager) Import(executionContext context.Context) error {
	_, executionError := manager.runner.Run(executionContext, []string{gitSubcommandConstant, importSubcommandConstant}, true)
	return executionError
}

// workspaceRoot resolves the working-root path bundle commands operate on.
func (manager *GitManager) workspaceRoot(executionContext context.Context) (string, error) {
	executionResult, executionError := manager.runner.Run(executionContext, []string{workspaceSubcommandConstant, rootSubcommandConstant}, true)
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// gitCommand runs the plumbing git binary against the workspace root through
// the runner's transport, bypassing the jj argument vector entirely.
func (manager *GitManager) gitCommand(executionContext context.Context, gitArguments []string) (execshell.ExecutionResult, error) {
	workspaceRootPath, rootError := manager.workspaceRoot(executionContext)
	if rootError != nil {
		return execshell.ExecutionResult{}, rootError
	}
	fullArguments := append([]string{gitBinaryNameConstant, gitDirectoryFlagConstant, workspaceRootPath}, gitArguments...)
	return manager.runner.transport.Run(executionContext, fullArguments)
}

// gitCommandError replicates the runner's error shaping for plumbing-level
// invocations that never pass through Run.
func gitCommandError(gitArguments []string, executionResult execshell.ExecutionResult) error {
	return CommandError{
		Command:  append([]string{gitBinaryNameConstant}, gitArguments...),
		ExitCode: executionResult.ExitCode,
		Stderr:   strings.TrimSpace(executionResult.StandardError),
	}
}

// BundleCreate exports jj refs to the underlying git repository, then writes
// a bundle file. Without an explicit ref list the bundle carries all refs.
// The bundle file path is returned.
func (manager *GitManager) BundleCreate(executionContext context.Context, bundlePath string, refs ...string) (string, error) {
	if exportError := manager.Export(executionContext); exportError != nil {
		return "", exportError
	}

	gitArguments := []string{bundleSubcommandConstant, createSubcommandConstant, bundlePath}
	if len(refs) > 0 {
		gitArguments = append(gitArguments, refs...)
	} else {
		gitArguments = append(gitArguments, allFlagConstant)
	}

	executionResult, executionError := manager.gitCommand(executionContext, gitArguments)
	if executionError != nil {
		return "", executionError
	}
	if executionResult.ExitCode != 0 {
		return "", gitCommandError(gitArguments, executionResult)
	}
	return bundlePath, nil
}

// BundleUnbundle fetches refs and objects from a bundle file into the
// underlying git repository, then imports them into jj. The fetch uses a
// refspec so the bundle's refs are created locally, not merely unpacked.
func (manager *GitManager) BundleUnbundle(executionContext context.Context, bundlePath string, options GitUnbundleOptions) error {
	gitArguments := []string{fetchSubcommandConstant, bundlePath, options.refspec()}
	executionResult, executionError := manager.gitCommand(executionContext, gitArguments)
	if executionError != nil {
		return executionError
	}
	if executionResult.ExitCode != 0 {
		return gitCommandError(gitArguments, executionResult)
	}
	return manager.Import(executionContext)
}

// BundleVerify verifies a bundle file and returns the verification output.
func (manager *GitManager) BundleVerify(executionContext context.Context, bundlePath string) (string, error) {
	gitArguments := []string{bundleSubcommandConstant, verifySubcommandConstant, bundlePath}
	executionResult, executionError := manager.gitCommand(executionContext, gitArguments)
	if executionError != nil {
		return "", executionError
	}
	if executionResult.ExitCode != 0 {
		return "", gitCommandError(gitArguments, executionResult)
	}
	return strings.TrimSpace(executionResult.StandardOutput + executionResult.StandardError), nil
}

// Clone clones a git repository through jj and returns a Repo bound to the
// clone. Without an explicit destination the directory name derives from the
// URL's final path segment with a trailing ".git" stripped.
func Clone(executionContext context.Context, repositoryURL string, destination string, options ...Option) (*Repo, error) {
	unboundRunner, runnerError := NewRunner("", options...)
	if runnerError != nil {
		return nil, runnerError
	}

	commandArguments := []string{gitSubcommandConstant, cloneSubcommandConstant, repositoryURL}
	if len(destination) > 0 {
		commandArguments = append(commandArguments, destination)
	}
	if _, executionError := unboundRunner.Run(executionContext, commandArguments, true); executionError != nil {
		return nil, executionError
	}

	clonePath := destination
	if len(clonePath) == 0 {
		clonePath = cloneDirectoryName(repositoryURL)
	}
	return New(clonePath, options...)
}

func cloneDirectoryName(repositoryURL string) string {
	trimmedURL := strings.TrimRight(repositoryURL, "/")
	finalSegment := trimmedURL
	if separatorIndex := strings.LastIndex(trimmedURL, "/"); separatorIndex >= 0 {
		finalSegment = trimmedURL[separatorIndex+1:]
	}
	return strings.TrimSuffix(finalSegment, ".git")
}
