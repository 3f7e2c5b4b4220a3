package shell

import (
	"strings"

	"github.com/fatih/color"
	"github.com/josephlewis42/minishell/core/config"
	"github.com/mattn/go-isatty"
)

const (
	EnvUser = "USER"

	DefaultPrompt = `\u@\h:\w\$ `
)

type fder interface {
	Fd() uintptr
}

// IsTerminal reports whether the stream is backed by a terminal.
func IsTerminal(stream interface{}) bool {
	f, ok := stream.(fder)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// colorEnabled resolves the configured color mode against the output stream.
func (s *Shell) colorEnabled() bool {
	switch s.opts.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return IsTerminal(s.VirtualOS.Stdout())
	}
}

func (s *Shell) paint(c *color.Color, text string) string {
	if s.colorEnabled() {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(text)
}

// Prompt expands the prompt template. \u is the user, \h the short hostname,
// \w the working directory with $HOME abbreviated to ~ and \$ is # for root
// and $ otherwise.
func (s *Shell) Prompt() string {
	user, _ := s.VirtualOS.LookupEnv(EnvUser)
	host := s.opts.Hostname
	if idx := strings.IndexByte(host, '.'); idx >= 0 {
		host = host[:idx]
	}

	sign := "$"
	if user == "root" {
		sign = "#"
	}

	userHost := color.New(color.FgGreen, color.Bold)
	dir := color.New(color.FgBlue, color.Bold)

	replacer := strings.NewReplacer(
		`\u`, s.paint(userHost, user),
		`\h`, s.paint(userHost, host),
		`\w`, s.paint(dir, s.displayDir()),
		`\$`, sign,
	)

	return replacer.Replace(s.opts.Prompt)
}

func (s *Shell) displayDir() string {
	pwd := s.State.CurrentDir
	home, err := s.VirtualOS.UserHomeDir()
	if err != nil || home == "/" {
		return pwd
	}

	home = strings.TrimSuffix(home, "/")
	switch {
	case pwd == home:
		return "~"
	case strings.HasPrefix(pwd, home+"/"):
		return "~" + strings.TrimPrefix(pwd, home)
	default:
		return pwd
	}
}
