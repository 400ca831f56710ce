// Package jjx provides a typed Go client over the jj (Jujutsu) version
// control CLI for scripting and automation.
//
// Repo is the main entry point: it composes a Runner, which builds jj
// argument vectors and executes them through an execshell.CommandRunner
// transport, with one manager per subcommand family (bookmarks, git remotes
// and bundles, workspaces, the operation log). Command output is parsed into
// immutable value records; every query re-runs jj and nothing is cached.
//
// The client performs no retries and enforces no timeouts. Each call spawns
// one subprocess and waits for it; cancelling the call's context terminates
// the subprocess. Concurrent calls are independent processes serialized only
// by jj's own on-disk locking.
package jjx
