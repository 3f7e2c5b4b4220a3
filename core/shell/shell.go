// Package shell is the read-eval loop around the builtins: it tokenizes each
// line, runs builtins in-process and hands everything else to an Executor.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/abiosoft/readline"
	"github.com/anmitsu/go-shlex"
	"github.com/josephlewis42/minishell/core/builtins"
	"github.com/josephlewis42/minishell/core/logger"
	"github.com/josephlewis42/minishell/core/metrics"
	"github.com/josephlewis42/minishell/core/vos"
	"github.com/sirupsen/logrus"
)

const (
	// StatusSyntaxError is the status of a line that couldn't be tokenized.
	StatusSyntaxError = 2
)

// Options configures a Shell, the zero value is usable.
type Options struct {
	// Name prefixes diagnostics, builtins.DefaultName is used if blank.
	Name string
	// Prompt is the PS1 style template, DefaultPrompt is used if blank.
	Prompt string
	// Color is one of config.ColorAlways, config.ColorAuto or config.ColorNever.
	Color string
	// Hostname is substituted for \h in the prompt.
	Hostname string

	// Executor runs non-builtin commands, a HostExecutor is used if nil.
	Executor Executor
	// Session records events, they're discarded if nil.
	Session *logger.SessionLogger
	// Metrics counts commands, a private set is created if nil.
	Metrics *metrics.Metrics
	// Log receives internal errors, logrus' standard logger is used if nil.
	Log logrus.FieldLogger
}

// LineReader supplies input lines to Run.
type LineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
	Close() error
}

type Shell struct {
	VirtualOS vos.VOS
	State     *builtins.State

	// LastStatus is the status of the last command that ran.
	LastStatus int

	opts    Options
	ctx     *builtins.Context
	session *logger.SessionLogger
	metrics *metrics.Metrics
	log     logrus.FieldLogger
}

// NewShell creates a shell running on virtOS. PWD and the cached current
// directory are initialized from the OS working directory.
func NewShell(virtOS vos.VOS, opts Options) (*Shell, error) {
	wd, err := virtOS.Getwd()
	if err != nil {
		return nil, fmt.Errorf("couldn't determine working directory: %w", err)
	}
	if err := virtOS.Setenv(builtins.EnvPWD, wd); err != nil {
		return nil, err
	}

	if opts.Name == "" {
		opts.Name = builtins.DefaultName
	}
	if opts.Prompt == "" {
		opts.Prompt = DefaultPrompt
	}

	s := &Shell{
		VirtualOS: virtOS,
		State:     builtins.NewState(),
		opts:      opts,
		session:   opts.Session,
		metrics:   opts.Metrics,
		log:       opts.Log,
	}
	s.State.CurrentDir = wd

	if s.session == nil {
		s.session = logger.NewNopLogger().NewSession()
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	if s.opts.Executor == nil {
		s.opts.Executor = &HostExecutor{
			OS:    virtOS,
			State: s.State,
			Name:  opts.Name,
		}
	}

	s.ctx = &builtins.Context{
		OS:     virtOS,
		State:  s.State,
		Name:   opts.Name,
		Events: s.session,
	}

	return s, nil
}

// Session returns the event logger for the shell.
func (s *Shell) Session() *logger.SessionLogger {
	return s.session
}

// Metrics returns the command counters for the shell.
func (s *Shell) Metrics() *metrics.Metrics {
	return s.metrics
}

// NewLineReader picks an input source for Run: a line editor for terminals
// and a plain line scanner otherwise.
func (s *Shell) NewLineReader() (LineReader, error) {
	if !IsTerminal(s.VirtualOS.Stdin()) {
		stdin := readline.NewCancelableStdin(s.VirtualOS.Stdin())
		return &scanReader{stdin: stdin, scanner: bufio.NewScanner(stdin)}, nil
	}

	cfg := &readline.Config{
		Stdin:  readline.NewCancelableStdin(s.VirtualOS.Stdin()),
		Stdout: s.VirtualOS.Stdout(),
		Stderr: s.VirtualOS.Stderr(),
		FuncIsTerminal: func() bool {
			return true
		},
	}
	if err := cfg.Init(); err != nil {
		return nil, err
	}

	return readline.NewEx(cfg)
}

// Run reads and executes lines until the input ends, exit is run or ctx is
// cancelled. Cancelling ctx closes lines to unblock a pending read. It returns
// the status of the last command.
func (s *Shell) Run(ctx context.Context, lines LineReader) int {
	var closeOnce sync.Once
	closeLines := func() {
		closeOnce.Do(func() { _ = lines.Close() })
	}
	defer closeLines()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			closeLines()
		case <-stop:
		}
	}()

	for s.State.Running && ctx.Err() == nil {
		lines.SetPrompt(s.Prompt())
		line, err := lines.Readline()

		switch {
		case ctx.Err() != nil:
			return s.LastStatus // Cancelled while reading.

		case err == io.EOF:
			return s.LastStatus // Input closed, quit.

		case err == readline.ErrInterrupt:
			continue // Discard the partial line.

		case err != nil:
			s.log.WithError(err).Error("couldn't read line")
			return s.LastStatus
		}

		s.RunLine(ctx, line)
	}

	return s.LastStatus
}

// RunLine tokenizes and executes a single line. Blank lines leave the last
// status unchanged.
func (s *Shell) RunLine(ctx context.Context, line string) int {
	tokens, err := shlex.Split(line, true)
	if err != nil {
		fmt.Fprintf(s.VirtualOS.Stderr(), "%s: syntax error: %v\n", s.opts.Name, err)
		s.LastStatus = StatusSyntaxError
		return s.LastStatus
	}

	if len(tokens) == 0 {
		return s.LastStatus
	}

	builtin := true
	status := builtins.Execute(s.ctx, builtins.NewCommand(tokens...))
	if status == builtins.NotFound {
		builtin = false
		status = s.opts.Executor.Exec(ctx, tokens)
	}

	s.LastStatus = status
	s.session.RunCommand(tokens, builtin, status)
	s.metrics.ObserveCommand(tokens[0], builtin, status)

	return status
}

// scanReader reads lines from non-terminal input without echoing a prompt.
type scanReader struct {
	stdin   *readline.CancelableStdin
	scanner *bufio.Scanner
}

var _ LineReader = (*scanReader)(nil)

func (*scanReader) SetPrompt(string) {}

func (r *scanReader) Readline() (string, error) {
	if r.scanner.Scan() {
		return r.scanner.Text(), nil
	}
	if err := r.scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return "", io.EOF
}

// Close unblocks a pending Readline, the underlying input stays open.
func (r *scanReader) Close() error {
	return r.stdin.Close()
}
