package jjx

import (
	"context"
	"strings"
)

// WorkspaceManager drives the jj workspace subcommand family.
type WorkspaceManager struct {
	runner *Runner
}

// WorkspaceAddOptions configure Add.
type WorkspaceAddOptions struct {
	Name string
}

// Add creates a new workspace at the given path.
func (manager *WorkspaceManager) Add(executionContext context.Context, workspacePath string, options WorkspaceAddOptions) error {
	commandArguments := []string{workspaceSubcommandConstant, addSubcommandConstant, workspacePath}
	if len(options.Name) > 0 {
		commandArguments = append(commandArguments, nameFlagConstant, options.Name)
	}
	_, executionError := manager.runner.Run(executionContext, commandArguments, true)
	return executionError
}

// Forget forgets workspaces.
func (manager *WorkspaceManager) Forget(executionContext context.Context, workspaceNames ...string) error {
	commandArguments := append([]string{workspaceSubcommandConstant, forgetSubcommandConstant}, workspaceNames...)
	_, executionError := manager.runner.Run(executionContext, commandArguments, true)
	return executionError
}

// List returns the names of the repository's workspaces.
func (manager *WorkspaceManager) List(executionContext context.Context) ([]string, error) {
	executionResult, executionError := manager.runner.Run(executionContext, []string{workspaceSubcommandConstant, listSubcommandConstant}, true)
	if executionError != nil {
		return nil, executionError
	}
	return ParseWorkspaceList(executionResult.StandardOutput), nil
}

// Root returns the root path of the current workspace.
func (manager *WorkspaceManager) Root(executionContext context.Context) (string, error) {
	executionResult, executionError := manager.runner.Run(executionContext, []string{workspaceSubcommandConstant, rootSubcommandConstant}, true)
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// UpdateStale updates a stale workspace.
func (manager *WorkspaceManager) UpdateStale(executionContext context.Context) error {
	_, executionError := manager.runner.Run(executionContext, []string{workspaceSubcommandConstant, updateStaleSubcommandConstant}, true)
	return executionError
}
