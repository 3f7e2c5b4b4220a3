// Package builtins holds the commands the interpreter runs itself instead of
// starting an external executable.
//
// The registry is a fixed, ordered table. Execute is tried first for every
// command line; a NotFound result tells the caller to fall back to running an
// external process.
package builtins

import (
	"fmt"

	"github.com/josephlewis42/minishell/core/vos"
)

const (
	// NotFound is returned by Execute for empty commands and commands that
	// aren't builtins.
	NotFound = -1

	// MaxPathLength is the longest working directory the builtins accept from
	// the OS.
	MaxPathLength = 4096

	// DefaultName is the interpreter name used to prefix diagnostics.
	DefaultName = "minishell"
)

// Environment variables read and written by the builtins.
const (
	EnvHome   = "HOME"
	EnvPWD    = "PWD"
	EnvOldPWD = "OLDPWD"
)

// Command is a parsed command line, Args[0] is the command name.
type Command struct {
	Args []string
}

// NewCommand creates a command from its name and arguments.
func NewCommand(args ...string) *Command {
	return &Command{Args: args}
}

// Len returns the number of arguments including the command name.
func (c *Command) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Args)
}

// Name returns the command name or the empty string for an empty command.
func (c *Command) Name() string {
	if c.Len() == 0 {
		return ""
	}
	return c.Args[0]
}

// State is the interpreter-wide state the builtins mutate.
type State struct {
	// Running is cleared by exit; the main loop stops once it's false.
	Running bool
	// CurrentDir caches the working directory after the last successful cd.
	CurrentDir string
}

// NewState returns the state of a freshly started interpreter.
func NewState() *State {
	return &State{Running: true}
}

// InvocationLogger records commands that were called incorrectly.
type InvocationLogger interface {
	LogInvalidInvocation(args []string, err error)
}

// Context is passed to every handler. The State is shared with the rest of
// the interpreter and isn't owned by the builtins.
type Context struct {
	OS    vos.VOS
	State *State

	// Name prefixes diagnostics, DefaultName is used if blank.
	Name string

	// Events is optional.
	Events InvocationLogger
}

func (ctx *Context) name() string {
	if ctx.Name == "" {
		return DefaultName
	}
	return ctx.Name
}

// errorf writes a "name: command: message" diagnostic to stderr.
func (ctx *Context) errorf(cmd *Command, format string, a ...interface{}) {
	fmt.Fprintf(ctx.OS.Stderr(), "%s: %s: %s\n", ctx.name(), cmd.Name(), fmt.Sprintf(format, a...))
}

// invalid reports a usage error and returns the failure status.
func (ctx *Context) invalid(cmd *Command, err error) int {
	if ctx.Events != nil {
		ctx.Events.LogInvalidInvocation(cmd.Args, err)
	}
	ctx.errorf(cmd, "%v", err)
	return 1
}

// HandlerFunc runs a builtin and returns its exit status.
type HandlerFunc func(ctx *Context, cmd *Command) int

// Entry is a single registered builtin.
type Entry struct {
	Name    string
	Help    string
	Handler HandlerFunc
}

// registry holds the builtins in listing order, it's never modified after
// init.
var registry []Entry

// All returns a copy of the registered builtins in declaration order.
func All() []Entry {
	out := make([]Entry, len(registry))
	copy(out, registry)
	return out
}

// Lookup finds the first builtin with the given name.
func Lookup(name string) (Entry, bool) {
	for _, entry := range registry {
		if entry.Name == name {
			return entry, true
		}
	}
	return Entry{}, false
}

// IsBuiltin reports whether name exactly matches a registered builtin.
func IsBuiltin(name string) bool {
	if name == "" {
		return false
	}
	_, ok := Lookup(name)
	return ok
}

// Execute runs cmd if it names a builtin and returns the handler's status
// verbatim. It returns NotFound without side effects if cmd is nil, empty or
// not a builtin.
func Execute(ctx *Context, cmd *Command) int {
	if cmd.Len() == 0 {
		return NotFound
	}

	entry, ok := Lookup(cmd.Args[0])
	if !ok {
		return NotFound
	}

	return entry.Handler(ctx, cmd)
}

func init() {
	registry = []Entry{
		{"cd", "Change directory. Usage: cd [directory|~|-]", Cd},
		{"exit", "Exit the shell. Usage: exit", Exit},
		{"pwd", "Print current working directory. Usage: pwd", Pwd},
		{"echo", "Display a line of text. Usage: echo [text...]", Echo},
		{"help", "Display information about built-in commands. Usage: help [command]", Help},
	}
}
