// Package execshell provides structured helpers for invoking external tools.
//
// It defines CommandRunner, the transport abstraction used to execute an
// argument vector and capture its output, together with OSCommandRunner for
// direct process execution and DockerCommandRunner for executing commands
// inside a Docker container. Implementations never treat a non-zero exit
// status as an error; classification belongs to the caller.
package execshell
