package jjx

import "context"

// BookmarkManager drives the jj bookmark subcommand family. It shares the
// repository's runner and owns no resources of its own.
type BookmarkManager struct {
	runner *Runner
}

// BookmarkListOptions configure List queries.
type BookmarkListOptions struct {
	AllRemotes bool
}

// BookmarkCreateOptions configure Create.
type BookmarkCreateOptions struct {
	Revision string
}

// BookmarkMoveOptions configure Move.
type BookmarkMoveOptions struct {
	To string
}

// BookmarkSetOptions configure Set.
type BookmarkSetOptions struct {
	Revision string
}

// BookmarkTrackOptions configure Track and Untrack. Remote defaults to
// "origin".
type BookmarkTrackOptions struct {
	Remote string
}

func (options BookmarkTrackOptions) remoteName() string {
	if len(options.Remote) > 0 {
		return options.Remote
	}
	return defaultRemoteNameConstant
}

// List returns the repository's bookmarks, optionally including
// remote-tracking entries.
func (manager *BookmarkManager) List(executionContext context.Context, options BookmarkListOptions) ([]Bookmark, error) {
	commandArguments := []string{bookmarkSubcommandConstant, listSubcommandConstant}
	if options.AllRemotes {
		commandArguments = append(commandArguments, allRemotesFlagConstant)
	}
	executionResult, executionError := manager.runner.Run(executionContext, commandArguments, true)
	if executionError != nil {
		return nil, executionError
	}
	return ParseBookmarkList(executionResult.StandardOutput), nil
}

// Create creates a new bookmark, optionally at a specific revision.
func (manager *BookmarkManager) Create(executionContext context.Context, bookmarkName string, options BookmarkCreateOptions) error {
	commandArguments := []string{bookmarkSubcommandConstant, createSubcommandConstant, bookmarkName}
	if len(options.Revision) > 0 {
		commandArguments = append(commandArguments, revisionFlagConstant, options.Revision)
	}
	_, executionError := manager.runner.Run(executionContext, commandArguments, true)
	return executionError
}

// Delete deletes bookmarks.
func (manager *BookmarkManager) Delete(executionContext context.Context, bookmarkNames ...string) error {
	commandArguments := append([]string{bookmarkSubcommandConstant, deleteSubcommandConstant}, bookmarkNames...)
	_, executionError := manager.runner.Run(executionContext, commandArguments, true)
	return executionError
}

// Forget forgets bookmarks, removing local and remote tracking state.
func (manager *BookmarkManager) Forget(executionContext context.Context, bookmarkNames ...string) error {
	commandArguments := append([]string{bookmarkSubcommandConstant, forgetSubcommandConstant}, bookmarkNames...)
	_, executionError := manager.runner.Run(executionContext, commandArguments, true)
	return executionError
}

// Move moves a bookmark to a different revision.
func (manager *BookmarkManager) Move(executionContext context.Context, bookmarkName string, options BookmarkMoveOptions) error {
	commandArguments := []string{bookmarkSubcommandConstant, moveSubcommandConstant, bookmarkName}
	if len(options.To) > 0 {
		commandArguments = append(commandArguments, toFlagConstant, options.To)
	}
	_, executionError := manager.runner.Run(executionContext, commandArguments, true)
	return executionError
}

// Set creates or moves a bookmark, optionally at a specific revision.
func (manager *BookmarkManager) Set(executionContext context.Context, bookmarkName string, options BookmarkSetOptions) error {
	commandArguments := []string{bookmarkSubcommandConstant, setSubcommandConstant, bookmarkName}
	if len(options.Revision) > 0 {
		commandArguments = append(commandArguments, revisionFlagConstant, options.Revision)
	}
	_, executionError := manager.runner.Run(executionContext, commandArguments, true)
	return executionError
}

// Rename renames a bookmark.
func (manager *BookmarkManager) Rename(executionContext context.Context, currentName string, newName string) error {
	_, executionError := manager.runner.Run(executionContext, []string{bookmarkSubcommandConstant, renameSubcommandConstant, currentName, newName}, true)
	return executionError
}

// Track starts tracking a remote bookmark.
func (manager *BookmarkManager) Track(executionContext context.Context, bookmarkName string, options BookmarkTrackOptions) error {
	remoteBookmarkName := bookmarkName + remoteBookmarkSeparatorConstant + options.remoteName()
	_, executionError := manager.runner.Run(executionContext, []string{bookmarkSubcommandConstant, trackSubcommandConstant, remoteBookmarkName}, true)
	return executionError
}

// Untrack stops tracking a remote bookmark.
func (manager *BookmarkManager) Untrack(executionContext context.Context, bookmarkName string, options BookmarkTrackOptions) error {
	remoteBookmarkName := bookmarkName + remoteBookmarkSeparatorConstant + options.remoteName()
	_, executionError := manager.runner.Run(executionContext, []string{bookmarkSubcommandConstant, untrackSubcommandConstant, remoteBookmarkName}, true)
	return executionError
}
