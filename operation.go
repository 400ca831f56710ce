package jjx

import (
	"context"
	"strconv"
)

// OperationManager drives the jj operation subcommand family.
type OperationManager struct {
	runner *Runner
}

// OperationLogOptions configure Log queries. A zero Limit leaves the result
// count unrestricted.
type OperationLogOptions struct {
	Limit int
}

// Log returns operation log entries, newest first per the tool's emission
// order.
func (manager *OperationManager) Log(executionContext context.Context, options OperationLogOptions) ([]Operation, error) {
	commandArguments := []string{operationSubcommandConstant, logSubcommandConstant, noGraphFlagConstant}
	if options.Limit > 0 {
		commandArguments = append(commandArguments, limitFlagConstant, strconv.Itoa(options.Limit))
	}
	executionResult, executionError := manager.runner.Run(executionContext, commandArguments, true)
	if executionError != nil {
		return nil, executionError
	}
	return ParseOperationLog(executionResult.StandardOutput), nil
}

// Restore restores the repository to a previous operation.
func (manager *OperationManager) Restore(executionContext context.Context, operationIdentifier string) error {
	_, executionError := manager.runner.Run(executionContext, []string{operationSubcommandConstant, restoreSubcommandConstant, operationIdentifier}, true)
	return executionError
}

// Revert applies the inverse of an operation.
func (manager *OperationManager) Revert(executionContext context.Context, operationIdentifier string) error {
	_, executionError := manager.runner.Run(executionContext, []string{operationSubcommandConstant, undoSubcommandConstant, operationIdentifier}, true)
	return executionError
}
