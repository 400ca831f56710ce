package jjx

import (
	"context"
	"strconv"
	"strings"

	"github.com/temirov/jjx/execshell"
)

// Repo is the entry point for interacting with a jj repository. It owns one
// runner shared by the feature managers exposed as fields. Every query
// re-runs jj; nothing is cached.
type Repo struct {
	runner    *Runner
	Bookmark  *BookmarkManager
	Git       *GitManager
	Workspace *WorkspaceManager
	Op        *OperationManager
}

// New constructs a repository client bound to the given path. An empty path
// leaves the client unbound, so jj resolves the repository from the process
// working directory.
func New(repositoryPath string, options ...Option) (*Repo, error) {
	runner, runnerError := NewRunner(repositoryPath, options...)
	if runnerError != nil {
		return nil, runnerError
	}
	return &Repo{
		runner:    runner,
		Bookmark:  &BookmarkManager{runner: runner},
		Git:       &GitManager{runner: runner},
		Workspace: &WorkspaceManager{runner: runner},
		Op:        &OperationManager{runner: runner},
	}, nil
}

// Path reports the repository path the client is bound to, empty when
// unbound.
func (repository *Repo) Path() string {
	return repository.runner.RepositoryPath()
}

// Run executes an arbitrary jj subcommand, bypassing all typed wrappers.
// Failures are observable only through the returned exit code; no exit
// status ever becomes an error here.
func (repository *Repo) Run(executionContext context.Context, commandArguments []string) (execshell.ExecutionResult, error) {
	return repository.runner.Run(executionContext, commandArguments, false)
}

// LogOptions configure Log queries. An empty Revset selects the working
// copy; a zero Limit leaves the result count unrestricted.
type LogOptions struct {
	Revset string
	Limit  int
}

// DiffOptions select what a diff covers. Each field maps to one flag; zero
// values omit the flag.
type DiffOptions struct {
	Revision string
	From     string
	To       string
}

// FileListOptions configure FileList queries.
type FileListOptions struct {
	Revision string
}

// NewChangeOptions configure NewChange.
type NewChangeOptions struct {
	Message      string
	InsertBefore bool
	InsertAfter  bool
}

// DescribeOptions configure Describe.
type DescribeOptions struct {
	ResetAuthor bool
}

// SquashOptions configure Squash.
type SquashOptions struct {
	Revision string
	Into     string
	Message  string
}

// SplitOptions configure Split.
type SplitOptions struct {
	Revision string
}

// RebaseOptions configure Rebase beyond the required destination.
type RebaseOptions struct {
	Revision string
	Source   string
	Branch   string
}

// RestoreOptions configure Restore.
type RestoreOptions struct {
	Revision string
	From     string
	To       string
}

// Log returns the changes matching a revset.
func (repository *Repo) Log(executionContext context.Context, options LogOptions) ([]Change, error) {
	revsetExpression := options.Revset
	if len(revsetExpression) == 0 {
		revsetExpression = workingCopyRevisionConstant
	}
	commandArguments := []string{logSubcommandConstant, noGraphFlagConstant, templateFlagConstant, ChangeListTemplate, revisionFlagConstant, revsetExpression}
	if options.Limit > 0 {
		commandArguments = append(commandArguments, limitFlagConstant, strconv.Itoa(options.Limit))
	}
	executionResult, executionError := repository.runner.Run(executionContext, commandArguments, true)
	if executionError != nil {
		return nil, executionError
	}
	return ParseChanges(executionResult.StandardOutput)
}

// Show returns a single change. An empty revision selects the working copy.
func (repository *Repo) Show(executionContext context.Context, revision string) (Change, error) {
	if len(revision) == 0 {
		revision = workingCopyRevisionConstant
	}
	commandArguments := []string{logSubcommandConstant, noGraphFlagConstant, templateFlagConstant, ChangeTemplate, revisionFlagConstant, revision, limitFlagConstant, "1"}
	executionResult, executionError := repository.runner.Run(executionContext, commandArguments, true)
	if executionError != nil {
		return Change{}, executionError
	}
	return ParseChange(executionResult.StandardOutput)
}

func diffArguments(formatFlag string, options DiffOptions) []string {
	commandArguments := []string{diffSubcommandConstant, formatFlag}
	if len(options.Revision) > 0 {
		commandArguments = append(commandArguments, revisionFlagConstant, options.Revision)
	}
	if len(options.From) > 0 {
		commandArguments = append(commandArguments, fromFlagConstant, options.From)
	}
	if len(options.To) > 0 {
		commandArguments = append(commandArguments, toFlagConstant, options.To)
	}
	return commandArguments
}

// Diff returns a parsed diff summary.
func (repository *Repo) Diff(executionContext context.Context, options DiffOptions) (DiffSummary, error) {
	executionResult, executionError := repository.runner.Run(executionContext, diffArguments(summaryFlagConstant, options), true)
	if executionError != nil {
		return DiffSummary{}, executionError
	}
	return ParseDiffSummary(executionResult.StandardOutput), nil
}

// DiffGit returns a raw git-format diff.
func (repository *Repo) DiffGit(executionContext context.Context, options DiffOptions) (string, error) {
	executionResult, executionError := repository.runner.Run(executionContext, diffArguments(gitFormatFlagConstant, options), true)
	if executionError != nil {
		return "", executionError
	}
	return executionResult.StandardOutput, nil
}

// Status returns the working copy change and its diff summary. The two are
// separate jj invocations with no transactional guarantee between them; a
// concurrent mutation can make the halves inconsistent.
func (repository *Repo) Status(executionContext context.Context) (Status, error) {
	workingCopyChange, showError := repository.Show(executionContext, workingCopyRevisionConstant)
	if showError != nil {
		return Status{}, showError
	}
	diffSummary, diffError := repository.Diff(executionContext, DiffOptions{})
	if diffError != nil {
		return Status{}, diffError
	}
	return Status{WorkingCopy: workingCopyChange, Diff: diffSummary}, nil
}

// FileList lists tracked files, optionally at a specific revision.
func (repository *Repo) FileList(executionContext context.Context, options FileListOptions) ([]string, error) {
	commandArguments := []string{fileSubcommandConstant, listSubcommandConstant}
	if len(options.Revision) > 0 {
		commandArguments = append(commandArguments, revisionFlagConstant, options.Revision)
	}
	executionResult, executionError := repository.runner.Run(executionContext, commandArguments, true)
	if executionError != nil {
		return nil, executionError
	}
	var filePaths []string
	for _, outputLine := range strings.Split(strings.TrimSpace(executionResult.StandardOutput), "\n") {
		if len(outputLine) > 0 {
			filePaths = append(filePaths, outputLine)
		}
	}
	return filePaths, nil
}

// NewChange creates a new change on top of the given revisions and returns
// the resulting working copy change.
func (repository *Repo) NewChange(executionContext context.Context, revisions []string, options NewChangeOptions) (Change, error) {
	commandArguments := append([]string{newSubcommandConstant}, revisions...)
	if len(options.Message) > 0 {
		commandArguments = append(commandArguments, messageFlagConstant, options.Message)
	}
	if options.InsertBefore {
		commandArguments = append(commandArguments, insertBeforeFlagConstant)
	}
	if options.InsertAfter {
		commandArguments = append(commandArguments, insertAfterFlagConstant)
	}
	if _, executionError := repository.runner.Run(executionContext, commandArguments, true); executionError != nil {
		return Change{}, executionError
	}
	return repository.Show(executionContext, workingCopyRevisionConstant)
}

// Describe sets the description of a change and returns the described
// change. An empty revision selects the working copy.
func (repository *Repo) Describe(executionContext context.Context, revision string, message string, options DescribeOptions) (Change, error) {
	if len(revision) == 0 {
		revision = workingCopyRevisionConstant
	}
	commandArguments := []string{describeSubcommandConstant, revision, messageFlagConstant, message}
	if options.ResetAuthor {
		commandArguments = append(commandArguments, resetAuthorFlagConstant)
	}
	if _, executionError := repository.runner.Run(executionContext, commandArguments, true); executionError != nil {
		return Change{}, executionError
	}
	return repository.Show(executionContext, revision)
}

// Commit finalizes the working copy into a described commit, starts a new
// change, and returns the finalized commit.
func (repository *Repo) Commit(executionContext context.Context, message string) (Change, error) {
	if _, executionError := repository.runner.Run(executionContext, []string{commitSubcommandConstant, messageFlagConstant, message}, true); executionError != nil {
		return Change{}, executionError
	}
	return repository.Show(executionContext, workingCopyParentRevisionConstant)
}

// Edit sets the working copy to the given revision.
func (repository *Repo) Edit(executionContext context.Context, revision string) error {
	_, executionError := repository.runner.Run(executionContext, []string{editSubcommandConstant, revision}, true)
	return executionError
}

// Squash squashes a change into its parent, or into a specific revision.
func (repository *Repo) Squash(executionContext context.Context, options SquashOptions) error {
	commandArguments := []string{squashSubcommandConstant}
	if len(options.Revision) > 0 {
		commandArguments = append(commandArguments, revisionFlagConstant, options.Revision)
	}
	if len(options.Into) > 0 {
		commandArguments = append(commandArguments, intoFlagConstant, options.Into)
	}
	if len(options.Message) > 0 {
		commandArguments = append(commandArguments, messageFlagConstant, options.Message)
	}
	_, executionError := repository.runner.Run(executionContext, commandArguments, true)
	return executionError
}

// Split splits a change by file paths. Interactive splitting is not
// supported.
func (repository *Repo) Split(executionContext context.Context, filePaths []string, options SplitOptions) error {
	commandArguments := []string{splitSubcommandConstant}
	if len(options.Revision) > 0 {
		commandArguments = append(commandArguments, revisionFlagConstant, options.Revision)
	}
	commandArguments = append(commandArguments, pathSeparatorConstant)
	commandArguments = append(commandArguments, filePaths...)
	_, executionError := repository.runner.Run(executionContext, commandArguments, true)
	return executionError
}

// Rebase rebases revisions onto a destination.
func (repository *Repo) Rebase(executionContext context.Context, destination string, options RebaseOptions) error {
	commandArguments := []string{rebaseSubcommandConstant, destinationFlagConstant, destination}
	if len(options.Revision) > 0 {
		commandArguments = append(commandArguments, revisionFlagConstant, options.Revision)
	}
	if len(options.Source) > 0 {
		commandArguments = append(commandArguments, sourceFlagConstant, options.Source)
	}
	if len(options.Branch) > 0 {
		commandArguments = append(commandArguments, branchFlagConstant, options.Branch)
	}
	_, executionError := repository.runner.Run(executionContext, commandArguments, true)
	return executionError
}

// Abandon abandons revisions, defaulting to the working copy.
func (repository *Repo) Abandon(executionContext context.Context, revisions ...string) error {
	commandArguments := []string{abandonSubcommandConstant}
	if len(revisions) > 0 {
		commandArguments = append(commandArguments, revisions...)
	} else {
		commandArguments = append(commandArguments, workingCopyRevisionConstant)
	}
	_, executionError := repository.runner.Run(executionContext, commandArguments, true)
	return executionError
}

// Restore restores file contents from another revision.
func (repository *Repo) Restore(executionContext context.Context, options RestoreOptions) error {
	commandArguments := []string{restoreSubcommandConstant}
	if len(options.Revision) > 0 {
		commandArguments = append(commandArguments, revisionFlagConstant, options.Revision)
	}
	if len(options.From) > 0 {
		commandArguments = append(commandArguments, fromFlagConstant, options.From)
	}
	if len(options.To) > 0 {
		commandArguments = append(commandArguments, toFlagConstant, options.To)
	}
	_, executionError := repository.runner.Run(executionContext, commandArguments, true)
	return executionError
}

// Duplicate duplicates revisions, defaulting to the working copy, and
// returns the duplicates.
func (repository *Repo) Duplicate(executionContext context.Context, revisions ...string) ([]Change, error) {
	commandArguments := []string{duplicateSubcommandConstant}
	if len(revisions) > 0 {
		commandArguments = append(commandArguments, revisions...)
	} else {
		commandArguments = append(commandArguments, workingCopyRevisionConstant)
	}
	if _, executionError := repository.runner.Run(executionContext, commandArguments, true); executionError != nil {
		return nil, executionError
	}

	duplicateCount := len(revisions)
	if duplicateCount == 0 {
		duplicateCount = 1
	}
	return repository.Log(executionContext, LogOptions{Revset: latestDuplicatesRevsetConstant, Limit: duplicateCount})
}

// Undo undoes the last operation.
func (repository *Repo) Undo(executionContext context.Context) error {
	_, executionError := repository.runner.Run(executionContext, []string{undoSubcommandConstant}, true)
	return executionError
}
