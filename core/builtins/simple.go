package builtins

import (
	"fmt"
	"strings"
)

// Echo writes its arguments separated by spaces, including the command name
// itself, followed by a newline.
func Echo(ctx *Context, cmd *Command) int {
	fmt.Fprintln(ctx.OS.Stdout(), strings.Join(cmd.Args, " "))
	return 0
}

// Exit asks the interpreter to stop after the current command. It accepts one
// optional argument which is ignored.
func Exit(ctx *Context, cmd *Command) int {
	if cmd.Len() > 2 {
		return ctx.invalid(cmd, ErrTooManyArguments)
	}

	ctx.State.Running = false
	return 0
}

// Pwd prints the working directory as reported by the OS.
func Pwd(ctx *Context, cmd *Command) int {
	if cmd.Len() > 1 {
		return ctx.invalid(cmd, ErrTooManyArguments)
	}

	wd, err := getwd(ctx.OS)
	if err != nil {
		ctx.errorf(cmd, "%s", osErrorText(err))
		return 1
	}

	fmt.Fprintln(ctx.OS.Stdout(), wd)
	return 0
}
