package shell

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"

	"github.com/josephlewis42/minishell/core/builtins"
	"github.com/josephlewis42/minishell/core/vos"
)

const (
	// StatusCannotExecute is returned when a command exists but couldn't be
	// started.
	StatusCannotExecute = 126

	// StatusNotFound is returned when a command couldn't be found.
	StatusNotFound = 127
)

// Executor runs commands that aren't builtins.
type Executor interface {
	// Exec runs the command and returns its exit status, args[0] is the
	// command name.
	Exec(ctx context.Context, args []string) int
}

// HostExecutor runs commands as processes on the host, in the OS working
// directory and with the virtual OS environment and I/O.
type HostExecutor struct {
	OS    vos.VOS
	State *builtins.State
	Name  string
}

var _ Executor = (*HostExecutor)(nil)

// Exec implements Executor.
func (e *HostExecutor) Exec(ctx context.Context, args []string) int {
	if len(args) == 0 {
		return 0
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = e.workingDir()
	cmd.Env = e.OS.Environ()
	cmd.Stdin = e.OS.Stdin()
	cmd.Stdout = e.OS.Stdout()
	cmd.Stderr = e.OS.Stderr()

	err := cmd.Run()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return 0

	case errors.As(err, &exitErr):
		if code := exitErr.ExitCode(); code >= 0 {
			return code
		}
		return 1 // Killed by a signal.

	case errors.Is(err, exec.ErrNotFound):
		e.errorf(args[0], "command not found")
		return StatusNotFound

	case errors.Is(err, fs.ErrNotExist):
		e.errorf(args[0], "%v", osErrorText(err))
		return StatusNotFound

	default:
		e.errorf(args[0], "%v", err)
		return StatusCannotExecute
	}
}

// workingDir asks the OS where the shell is, the cached directory can be
// stale after a cd whose re-query failed.
func (e *HostExecutor) workingDir() string {
	if wd, err := e.OS.Getwd(); err == nil {
		return wd
	}
	return e.State.CurrentDir
}

func (e *HostExecutor) errorf(name string, format string, a ...interface{}) {
	prefix := e.Name
	if prefix == "" {
		prefix = builtins.DefaultName
	}
	fmt.Fprintf(e.OS.Stderr(), "%s: %s: %s\n", prefix, name, fmt.Sprintf(format, a...))
}

func osErrorText(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}
