package cmd

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/josephlewis42/minishell/core/config"
	"github.com/josephlewis42/minishell/core/logger"
	"github.com/josephlewis42/minishell/core/shell"
	"github.com/josephlewis42/minishell/core/vos"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	cfgPath       string
	commandString string
	colorFlag     string

	// exitStatus is the status of the last shell run by rootCmd.
	exitStatus int
)

func loadConfig(log logrus.FieldLogger) (*config.Configuration, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}

	configuration, err := config.Load(afero.NewOsFs(), cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn("Couldn't load config: did you run init?")
	}

	return configuration, err
}

func newLogger(w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return log
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "minishell",
	Short: "A minimal interactive command interpreter",
	Long: `A minimal command interpreter with cd, exit, pwd, echo and help built in.
Everything else runs as an external program.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		log := newLogger(cmd.ErrOrStderr())

		cfg, err := loadConfig(log)
		if err != nil {
			return err
		}
		if colorFlag != "" {
			cfg.Color = colorFlag
			if err := cfg.Validate(); err != nil {
				return err
			}
		}

		status, err := runShell(cmd, cfg, log)
		if err != nil {
			return err
		}

		exitStatus = status
		return nil
	},
}

func runShell(cmd *cobra.Command, cfg *config.Configuration, log *logrus.Logger) (int, error) {
	hostOS := vos.NewHostOS(vos.NewVIOAdapter(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()))

	if err := preloadEnv(hostOS, cfg); err != nil {
		return 0, err
	}

	eventLog := logger.NewNopLogger()
	if cfg.EventLog != "" {
		fd, err := cfg.OpenEventLog()
		if err != nil {
			return 0, err
		}
		defer fd.Close()
		eventLog = logger.NewJSONLinesLogger(fd)
	}
	session := eventLog.NewSession()

	hostname, _ := os.Hostname()
	sh, err := shell.NewShell(hostOS, shell.Options{
		Name:     cfg.Name,
		Prompt:   cfg.Prompt,
		Color:    cfg.Color,
		Hostname: hostname,
		Session:  session,
		Log:      log,
	})
	if err != nil {
		return 0, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	interactive := commandString == "" && shell.IsTerminal(hostOS.Stdin())
	session.SessionStart(sh.State.CurrentDir, interactive)

	var status int
	if commandString != "" {
		for _, line := range strings.Split(commandString, "\n") {
			if !sh.State.Running {
				break
			}
			status = sh.RunLine(ctx, line)
		}
	} else {
		lines, err := sh.NewLineReader()
		if err != nil {
			return 0, err
		}
		status = sh.Run(ctx, lines)
	}

	session.SessionEnd(status)

	if path := cfg.MetricsTextfilePath(); path != "" {
		if err := sh.Metrics().WriteTextfile(path); err != nil {
			log.WithError(err).WithField("path", path).Error("Couldn't write metrics")
		}
	}

	return status, nil
}

// preloadEnv sets variables from the configured env file that aren't already
// in the environment.
func preloadEnv(env vos.VEnv, cfg *config.Configuration) error {
	vars, err := cfg.ReadEnvFile()
	if err != nil {
		return err
	}

	for k, v := range vars {
		if _, ok := env.LookupEnv(k); ok {
			continue
		}
		if err := env.Setenv(k, v); err != nil {
			return err
		}
	}
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
	os.Exit(exitStatus)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config directory, the built-in configuration is used if unset")
	rootCmd.Flags().StringVarP(&commandString, "command", "c", "", "run the given commands and exit")
	rootCmd.Flags().StringVar(&colorFlag, "color", "", "override the prompt color mode (always, auto, never)")
}
