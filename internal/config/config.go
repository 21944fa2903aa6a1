package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	cmerrors "github.com/Dicklesworthstone/coremeter/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. COREMETER_INTERVAL.
	EnvPrefix = "COREMETER"
	// ConfigDir is the directory under $XDG_CONFIG_HOME holding the config file.
	ConfigDir = "coremeter"
	// ConfigName is the config file name without extension.
	ConfigName = "coremeter"
)

// Meter holds the flags that change how per-CPU meters format their values.
type Meter struct {
	ShowUsage       bool `mapstructure:"show_usage"`
	ShowFrequency   bool `mapstructure:"show_frequency"`
	ShowTemperature bool `mapstructure:"show_temperature"`
	Detailed        bool `mapstructure:"detailed"`
	Fahrenheit      bool `mapstructure:"fahrenheit"`
	CountFromOne    bool `mapstructure:"count_from_one"`
}

// Config carries runtime options for coremeter.
type Config struct {
	Interval time.Duration `mapstructure:"interval"`
	Meters   []string      `mapstructure:"meters"`
	Mode     string        `mapstructure:"mode"`
	LogFile  string        `mapstructure:"log_file"`
	LogLevel string        `mapstructure:"log_level"`
	Meter    `mapstructure:",squash"`
}

// Modes accepted by the mode key.
var Modes = []string{"bar", "text", "graph"}

func Default() Config {
	return Config{
		Interval: time.Second,
		Meters:   []string{"CPU", "AllCPUs2"},
		Mode:     "bar",
		LogFile:  "",
		LogLevel: "info",
		Meter: Meter{
			ShowUsage:       true,
			ShowFrequency:   false,
			ShowTemperature: false,
			Detailed:        false,
			Fahrenheit:      false,
			CountFromOne:    true,
		},
	}
}

// flag name -> viper key
var flagKeys = map[string]string{
	"interval":         "interval",
	"meters":           "meters",
	"mode":             "mode",
	"log-file":         "log_file",
	"log-level":        "log_level",
	"show-usage":       "show_usage",
	"show-frequency":   "show_frequency",
	"show-temperature": "show_temperature",
	"detailed":         "detailed",
	"fahrenheit":       "fahrenheit",
	"count-from-one":   "count_from_one",
}

// BindFlags registers every config flag on fs with its default value.
func BindFlags(fs *pflag.FlagSet) {
	cfg := Default()
	fs.Duration("interval", cfg.Interval, "refresh interval")
	fs.StringSlice("meters", cfg.Meters, "meters to show, top to bottom (see 'coremeter variants')")
	fs.String("mode", cfg.Mode, "meter mode: "+strings.Join(Modes, "|"))
	fs.String("log-file", cfg.LogFile, "write logs to this file")
	fs.String("log-level", cfg.LogLevel, "log level: debug|info|warn|error")
	fs.Bool("show-usage", cfg.ShowUsage, "show usage percent in CPU meters")
	fs.Bool("show-frequency", cfg.ShowFrequency, "show CPU frequency in CPU meters")
	fs.Bool("show-temperature", cfg.ShowTemperature, "show CPU temperature in CPU meters")
	fs.Bool("detailed", cfg.Detailed, "detailed CPU time breakdown")
	fs.Bool("fahrenheit", cfg.Fahrenheit, "show temperatures in Fahrenheit")
	fs.Bool("count-from-one", cfg.CountFromOne, "number CPUs from 1 instead of 0")
}

// Load merges defaults, the config file, COREMETER_* environment variables
// and any flags set on fs, in increasing priority. An empty path searches
// $XDG_CONFIG_HOME/coremeter and the working directory; a missing file is
// not an error unless path was given explicitly.
func Load(path string, fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, cmerrors.WrapWithCode(err, cmerrors.ErrConfig,
						"Failed to bind flag --"+name, "")
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(filepath.Join(configHome(), ConfigDir))
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		switch {
		case path == "" && notFound:
		case os.IsNotExist(err):
			return Config{}, cmerrors.WrapWithCode(err, cmerrors.ErrConfig,
				"Config file not found: "+path,
				"Check the path passed to --config")
		default:
			return Config{}, cmerrors.WrapWithCode(err, cmerrors.ErrConfig,
				"Failed to read config file",
				"Check the file is valid YAML, TOML or JSON")
		}
	}

	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, cmerrors.WrapWithCode(err, cmerrors.ErrConfig,
			"Invalid config format",
			"Check value types in "+v.ConfigFileUsed())
	}
	cfg.Mode = strings.ToLower(strings.TrimSpace(cfg.Mode))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the dashboard cannot run with.
func (c Config) Validate() error {
	if c.Interval <= 0 {
		return cmerrors.New(cmerrors.ErrConfig,
			"Invalid interval: "+c.Interval.String(),
			"Use a positive duration such as 500ms or 2s")
	}
	if !validMode(c.Mode) {
		return cmerrors.New(cmerrors.ErrConfig,
			"Unknown meter mode: "+c.Mode,
			"Use one of: "+strings.Join(Modes, ", "))
	}
	if len(c.Meters) == 0 {
		return cmerrors.New(cmerrors.ErrConfig,
			"No meters configured",
			"Set meters, e.g. --meters CPU,AllCPUs2")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	cfg := Default()
	v.SetDefault("interval", cfg.Interval)
	v.SetDefault("meters", cfg.Meters)
	v.SetDefault("mode", cfg.Mode)
	v.SetDefault("log_file", cfg.LogFile)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("show_usage", cfg.ShowUsage)
	v.SetDefault("show_frequency", cfg.ShowFrequency)
	v.SetDefault("show_temperature", cfg.ShowTemperature)
	v.SetDefault("detailed", cfg.Detailed)
	v.SetDefault("fahrenheit", cfg.Fahrenheit)
	v.SetDefault("count_from_one", cfg.CountFromOne)
}

func validMode(mode string) bool {
	for _, m := range Modes {
		if m == mode {
			return true
		}
	}
	return false
}

func configHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config")
}
