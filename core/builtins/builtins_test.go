package builtins

import (
	"testing"

	"github.com/josephlewis42/minishell/core/vos/vostest"
	"github.com/stretchr/testify/assert"
)

type invalidInvocation struct {
	args []string
	err  error
}

type recordingLogger struct {
	invalid []invalidInvocation
}

func (r *recordingLogger) LogInvalidInvocation(args []string, err error) {
	r.invalid = append(r.invalid, invalidInvocation{args, err})
}

func newTestContext(t *testing.T, env []string, dirs ...string) (*Context, *vostest.TestOS, *recordingLogger) {
	t.Helper()

	testOS := vostest.NewTestOS(t, env, dirs...)
	events := &recordingLogger{}
	return &Context{
		OS:     testOS,
		State:  NewState(),
		Events: events,
	}, testOS, events
}

func TestAll(t *testing.T) {
	var names []string
	for _, entry := range All() {
		names = append(names, entry.Name)
		assert.NotEmpty(t, entry.Help, entry.Name)
		assert.NotNil(t, entry.Handler, entry.Name)
	}

	assert.Equal(t, []string{"cd", "exit", "pwd", "echo", "help"}, names)

	t.Run("returns a copy", func(t *testing.T) {
		all := All()
		all[0].Name = "changed"
		assert.Equal(t, "cd", All()[0].Name)
	})
}

func TestIsBuiltin(t *testing.T) {
	for _, entry := range All() {
		assert.True(t, IsBuiltin(entry.Name), entry.Name)
	}

	for _, name := range []string{"", "CD", "Echo", "ls", "cd ", " cd", "help2", "minishell"} {
		assert.False(t, IsBuiltin(name), "%q", name)
	}
}

func TestLookup_firstMatchWins(t *testing.T) {
	orig := registry
	t.Cleanup(func() { registry = orig })

	first := func(*Context, *Command) int { return 10 }
	second := func(*Context, *Command) int { return 20 }
	registry = []Entry{
		{"dup", "first", first},
		{"dup", "second", second},
	}

	entry, ok := Lookup("dup")
	assert.True(t, ok)
	assert.Equal(t, "first", entry.Help)
	assert.Equal(t, 10, Execute(&Context{}, NewCommand("dup")))
}

func TestExecute_notFound(t *testing.T) {
	cases := map[string]*Command{
		"nil":          nil,
		"no-args":      {},
		"empty-args":   {Args: []string{}},
		"unknown":      NewCommand("ls", "-l"),
		"wrong-case":   NewCommand("EXIT"),
		"empty-string": NewCommand(""),
	}

	for tn, cmd := range cases {
		t.Run(tn, func(t *testing.T) {
			ctx, testOS, events := newTestContext(t, []string{"HOME=/home"}, "/home")
			envBefore := testOS.Environ()

			assert.Equal(t, NotFound, Execute(ctx, cmd))

			assert.True(t, ctx.State.Running)
			assert.Empty(t, ctx.State.CurrentDir)
			assert.Equal(t, envBefore, testOS.Environ())
			assert.Equal(t, "/", testOS.MustGetwd(t))
			assert.Empty(t, testOS.Out.String())
			assert.Empty(t, testOS.Err.String())
			assert.Empty(t, events.invalid)
		})
	}
}

func TestExecute_returnsHandlerStatus(t *testing.T) {
	ctx, testOS, _ := newTestContext(t, nil)

	assert.Equal(t, 0, Execute(ctx, NewCommand("pwd")))
	assert.Equal(t, "/\n", testOS.Out.String())

	assert.Equal(t, 1, Execute(ctx, NewCommand("pwd", "extra")))
	assert.Equal(t, "minishell: pwd: too many arguments\n", testOS.Err.String())
}

func TestCommand(t *testing.T) {
	var nilCmd *Command
	assert.Equal(t, 0, nilCmd.Len())
	assert.Equal(t, "", nilCmd.Name())

	cmd := NewCommand("cd", "/tmp")
	assert.Equal(t, 2, cmd.Len())
	assert.Equal(t, "cd", cmd.Name())
}

func TestContext_name(t *testing.T) {
	ctx, testOS, _ := newTestContext(t, nil)
	ctx.Name = "sh"

	assert.Equal(t, 1, Execute(ctx, NewCommand("exit", "a", "b")))
	assert.Equal(t, "sh: exit: too many arguments\n", testOS.Err.String())
}
