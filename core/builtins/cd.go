package builtins

import "fmt"

// Cd changes the working directory and keeps OLDPWD, PWD and
// State.CurrentDir in sync with it.
//
//	cd        go to $HOME
//	cd ~      go to $HOME
//	cd -      go to $OLDPWD and print it
//	cd DIR    go to DIR
func Cd(ctx *Context, cmd *Command) int {
	var target string
	announce := false

	switch {
	case cmd.Len() > 2:
		return ctx.invalid(cmd, ErrTooManyArguments)

	case cmd.Len() == 1 || cmd.Args[1] == "~":
		home, ok := ctx.OS.LookupEnv(EnvHome)
		if !ok {
			return ctx.invalid(cmd, varNotSet(EnvHome))
		}
		target = home

	case cmd.Args[1] == "-":
		oldPwd, ok := ctx.OS.LookupEnv(EnvOldPWD)
		if !ok {
			return ctx.invalid(cmd, varNotSet(EnvOldPWD))
		}
		target = oldPwd
		announce = true

	default:
		target = cmd.Args[1]
	}

	old, err := getwd(ctx.OS)
	if err != nil {
		ctx.errorf(cmd, "%s", osErrorText(err))
		return 1
	}

	if err := ctx.OS.Chdir(target); err != nil {
		ctx.errorf(cmd, "unable to navigate to %s: %s", target, osErrorText(err))
		return 1
	}

	if announce {
		fmt.Fprintln(ctx.OS.Stdout(), target)
	}

	if err := ctx.OS.Setenv(EnvOldPWD, old); err != nil {
		ctx.errorf(cmd, "%s: %v", EnvOldPWD, err)
	}

	// The directory already changed, a failed lookup only leaves the cache
	// stale.
	if wd, err := getwd(ctx.OS); err == nil {
		if err := ctx.OS.Setenv(EnvPWD, wd); err != nil {
			ctx.errorf(cmd, "%s: %v", EnvPWD, err)
		}
		ctx.State.CurrentDir = wd
	}

	return 0
}
