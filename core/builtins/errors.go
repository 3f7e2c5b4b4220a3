package builtins

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/josephlewis42/minishell/core/vos"
)

var (
	// ErrTooManyArguments is a usage error for extra arguments.
	ErrTooManyArguments = errors.New("too many arguments")

	// ErrVarNotSet is a usage error for a required environment variable that
	// isn't defined.
	ErrVarNotSet = errors.New("not set")

	// ErrPathTooLong is returned when the OS reports a working directory
	// longer than MaxPathLength.
	ErrPathTooLong = fmt.Errorf("path longer than %d bytes", MaxPathLength)

	// ErrNoHelp is returned by help for names that aren't builtins.
	ErrNoHelp = errors.New("no help found")
)

func varNotSet(name string) error {
	return fmt.Errorf("%s %w", name, ErrVarNotSet)
}

// osErrorText returns the system error text of err, without the operation
// and path that fs.PathError adds.
func osErrorText(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}
	return err.Error()
}

// getwd queries the OS for the working directory, rejecting paths that don't
// fit in MaxPathLength.
func getwd(dir vos.VDir) (string, error) {
	wd, err := dir.Getwd()
	if err != nil {
		return "", err
	}
	if len(wd) > MaxPathLength {
		return "", ErrPathTooLong
	}
	return wd, nil
}
