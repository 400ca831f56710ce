package jjx

// jj global invocation surface.
const (
	defaultBinaryNameConstant = "jj"
	noPagerFlagConstant       = "--no-pager"
	colorFlagConstant         = "--color"
	colorNeverValueConstant   = "never"
	repositoryFlagConstant    = "--repository"
)

// jj subcommands.
const (
	logSubcommandConstant         = "log"
	diffSubcommandConstant        = "diff"
	fileSubcommandConstant        = "file"
	listSubcommandConstant        = "list"
	newSubcommandConstant         = "new"
	describeSubcommandConstant    = "describe"
	commitSubcommandConstant      = "commit"
	editSubcommandConstant        = "edit"
	squashSubcommandConstant      = "squash"
	splitSubcommandConstant       = "split"
	rebaseSubcommandConstant      = "rebase"
	abandonSubcommandConstant     = "abandon"
	restoreSubcommandConstant     = "restore"
	duplicateSubcommandConstant   = "duplicate"
	undoSubcommandConstant        = "undo"
	bookmarkSubcommandConstant    = "bookmark"
	createSubcommandConstant      = "create"
	deleteSubcommandConstant      = "delete"
	forgetSubcommandConstant      = "forget"
	moveSubcommandConstant        = "move"
	setSubcommandConstant         = "set"
	renameSubcommandConstant      = "rename"
	trackSubcommandConstant       = "track"
	untrackSubcommandConstant     = "untrack"
	gitSubcommandConstant         = "git"
	pushSubcommandConstant        = "push"
	fetchSubcommandConstant       = "fetch"
	cloneSubcommandConstant       = "clone"
	remoteSubcommandConstant      = "remote"
	addSubcommandConstant         = "add"
	removeSubcommandConstant      = "remove"
	setURLSubcommandConstant      = "set-url"
	exportSubcommandConstant      = "export"
	importSubcommandConstant      = "import"
	workspaceSubcommandConstant   = "workspace"
	rootSubcommandConstant        = "root"
	updateStaleSubcommandConstant = "update-stale"
	operationSubcommandConstant   = "operation"
)

// jj flags shared across operations.
const (
	noGraphFlagConstant      = "--no-graph"
	templateFlagConstant     = "-T"
	revisionFlagConstant     = "-r"
	limitFlagConstant        = "-n"
	messageFlagConstant      = "-m"
	summaryFlagConstant      = "--summary"
	gitFormatFlagConstant    = "--git"
	fromFlagConstant         = "--from"
	toFlagConstant           = "--to"
	insertBeforeFlagConstant = "--insert-before"
	insertAfterFlagConstant  = "--insert-after"
	resetAuthorFlagConstant  = "--reset-author"
	intoFlagConstant         = "--into"
	destinationFlagConstant  = "-d"
	sourceFlagConstant       = "-s"
	branchFlagConstant       = "-b"
	allFlagConstant          = "--all"
	allRemotesFlagConstant   = "--all-remotes"
	remoteFlagConstant       = "--remote"
	changeFlagConstant       = "-c"
	nameFlagConstant         = "--name"
	pathSeparatorConstant    = "--"
)

// Plumbing-level git surface used by bundle operations.
const (
	gitBinaryNameConstant       = "git"
	gitDirectoryFlagConstant    = "-C"
	bundleSubcommandConstant    = "bundle"
	verifySubcommandConstant    = "verify"
	defaultBundleRefspecConstant = "+refs/*:refs/*"
)

// Revset expressions and defaults shared across operations.
const (
	workingCopyRevisionConstant       = "@"
	workingCopyParentRevisionConstant = "@-"
	latestDuplicatesRevsetConstant    = "latest(@-..)"
	defaultRemoteNameConstant         = "origin"
	remoteBookmarkSeparatorConstant   = "@"
)
