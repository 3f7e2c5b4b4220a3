package config

import (
	"bytes"
	_ "embed"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"

	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

type Configuration struct {
	configFs  afero.Fs
	configDir string

	Name            string `json:"name" validate:"required,excludesall= :"`
	Prompt          string `json:"prompt" validate:"required"`
	Color           string `json:"color" validate:"oneof=always auto never"`
	EnvFile         string `json:"env_file"`
	EventLog        string `json:"event_log"`
	MetricsTextfile string `json:"metrics_textfile"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

func (c *Configuration) fs() afero.Fs {
	if c.configFs == nil {
		return afero.NewOsFs()
	}
	return c.configFs
}

// Dir returns the directory the configuration was loaded from.
func (c *Configuration) Dir() string {
	if c.configDir == "" {
		return "."
	}
	return c.configDir
}

// ResolvePath resolves a path from the configuration file against the
// configuration directory. Absolute and empty paths are returned unchanged.
func (c *Configuration) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir(), p)
}

// OpenEventLog opens the event log in an append only state.
func (c *Configuration) OpenEventLog() (afero.File, error) {
	return c.fs().OpenFile(c.ResolvePath(c.EventLog), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// MetricsTextfilePath returns the resolved metrics output path, or the empty
// string if metrics are disabled.
func (c *Configuration) MetricsTextfilePath() string {
	return c.ResolvePath(c.MetricsTextfile)
}

// ReadEnvFile parses the dotenv file named by EnvFile. It returns an empty
// map if no file is configured.
func (c *Configuration) ReadEnvFile() (map[string]string, error) {
	if c.EnvFile == "" {
		return map[string]string{}, nil
	}

	contents, err := afero.ReadFile(c.fs(), c.ResolvePath(c.EnvFile))
	if err != nil {
		return nil, err
	}
	return godotenv.Parse(bytes.NewReader(contents))
}

// Default returns the built-in configuration.
func Default() *Configuration {
	out, err := parse(defaultConfigData)
	if err != nil {
		panic(err)
	}
	return out
}

func parse(data []byte) (*Configuration, error) {
	var out Configuration
	if err := yaml.UnmarshalStrict(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
