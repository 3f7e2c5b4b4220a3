package config

import (
	"io"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestBuiltinConfig(t *testing.T) {
	rawConfig := make(map[string]interface{})
	assert.Nil(t, yaml.Unmarshal(defaultConfigData, &rawConfig))

	knownFields := make(map[string]bool)
	rt := reflect.TypeOf(Configuration{})
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		assert.NotEmpty(t, jsonTag)
		jsonField := strings.Split(jsonTag, ",")[0]
		knownFields[jsonField] = true

		if _, ok := rawConfig[jsonField]; !ok {
			assert.False(t, true, "default config missing field: %q", jsonField)
		}
	}

	for k := range rawConfig {
		_, ok := knownFields[k]
		assert.True(t, ok, "default config contains invalid field: %q", k)
	}
}

func TestDefaultConfig(t *testing.T) {
	// Will panic() on load failure because it should never happen at runtime.
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "minishell", cfg.Name)
	assert.Equal(t, `\u@\h:\w\$ `, cfg.Prompt)
	assert.Equal(t, ColorAuto, cfg.Color)
}

func TestValidate(t *testing.T) {
	cases := map[string]struct {
		mutate  func(*Configuration)
		wantErr string
	}{
		"default":       {func(*Configuration) {}, ""},
		"bad-color":     {func(c *Configuration) { c.Color = "sometimes" }, "color"},
		"no-name":       {func(c *Configuration) { c.Name = "" }, "name"},
		"name-with-sep": {func(c *Configuration) { c.Name = "mini: shell" }, "name"},
		"no-prompt":     {func(c *Configuration) { c.Prompt = "" }, "prompt"},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/minishell/config.yaml", []byte(`
name: msh
prompt: '> '
color: never
env_file: dev.env
event_log: /var/log/minishell.log
metrics_textfile: metrics/minishell.prom
`), 0600))

	for _, path := range []string{"/etc/minishell", "/etc/minishell/config.yaml"} {
		t.Run(path, func(t *testing.T) {
			cfg, err := Load(fs, path)
			require.NoError(t, err)

			assert.Equal(t, "msh", cfg.Name)
			assert.Equal(t, "> ", cfg.Prompt)
			assert.Equal(t, ColorNever, cfg.Color)
			assert.Equal(t, "/etc/minishell", cfg.Dir())
			assert.Equal(t, filepath.Join("/etc/minishell", "dev.env"), cfg.ResolvePath(cfg.EnvFile))
			assert.Equal(t, "/var/log/minishell.log", cfg.ResolvePath(cfg.EventLog))
			assert.Equal(t, filepath.Join("/etc/minishell", "metrics", "minishell.prom"), cfg.MetricsTextfilePath())
		})
	}
}

func TestLoad_errors(t *testing.T) {
	cases := map[string]string{
		"unknown-field": "name: msh\nprompt: '> '\ncolor: auto\nbogus: true\n",
		"invalid":       "name: msh\nprompt: '> '\ncolor: rainbow\n",
		"not-yaml":      "name: [",
	}

	for tn, contents := range cases {
		t.Run(tn, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "/cfg/config.yaml", []byte(contents), 0600))

			_, err := Load(fs, "/cfg")
			assert.Error(t, err)
		})
	}

	t.Run("missing", func(t *testing.T) {
		_, err := Load(afero.NewMemMapFs(), "/nowhere")
		assert.Error(t, err)
	})
}

func TestInitialize(t *testing.T) {
	fs := afero.NewMemMapFs()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg, err := Initialize(fs, "/home/joseph/.minishell", logger)
	require.NoError(t, err)
	assert.Equal(t, Default().Name, cfg.Name)

	written, err := afero.ReadFile(fs, "/home/joseph/.minishell/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, defaultConfigData, written)

	t.Run("keeps existing", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(fs, "/home/joseph/.minishell/config.yaml", []byte("name: msh\nprompt: '$ '\ncolor: never\n"), 0600))

		cfg, err := Initialize(fs, "/home/joseph/.minishell", logger)
		require.NoError(t, err)
		assert.Equal(t, "msh", cfg.Name)
	})
}

func TestReadEnvFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg/config.yaml", []byte("name: msh\nprompt: '> '\ncolor: auto\nenv_file: dev.env\n"), 0600))
	require.NoError(t, afero.WriteFile(fs, "/cfg/dev.env", []byte("# comment\nHOME=/home/joseph\nOLDPWD=\"/tmp\"\nexport EDITOR=vi\n"), 0600))

	cfg, err := Load(fs, "/cfg")
	require.NoError(t, err)

	env, err := cfg.ReadEnvFile()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"HOME":   "/home/joseph",
		"OLDPWD": "/tmp",
		"EDITOR": "vi",
	}, env)

	t.Run("unset", func(t *testing.T) {
		env, err := Default().ReadEnvFile()
		require.NoError(t, err)
		assert.Empty(t, env)
	})

	t.Run("missing", func(t *testing.T) {
		require.NoError(t, fs.Remove("/cfg/dev.env"))
		_, err := cfg.ReadEnvFile()
		assert.Error(t, err)
	})
}

func TestOpenEventLog(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg/config.yaml", []byte("name: msh\nprompt: '> '\ncolor: auto\nevent_log: events.log\n"), 0600))
	cfg, err := Load(fs, "/cfg")
	require.NoError(t, err)

	for _, line := range []string{"one\n", "two\n"} {
		fd, err := cfg.OpenEventLog()
		require.NoError(t, err)
		_, err = io.WriteString(fd, line)
		require.NoError(t, err)
		require.NoError(t, fd.Close())
	}

	contents, err := afero.ReadFile(fs, "/cfg/events.log")
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(contents))
}
