package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/YuminosukeSato/stepreg/pkg/errors"
)

// FileConfig mirrors Config with pointer fields where zero is a valid value.
type FileConfig struct {
	Input             string  `toml:"input"`
	Delimiter         string  `toml:"delimiter"`
	FirstColumn       *int    `toml:"first_column"`
	LastColumn        *int    `toml:"last_column"`
	ResponseColumn    *int    `toml:"response_column"`
	MaxRows           *int    `toml:"max_rows"`
	SkipRows          *int    `toml:"skip_rows"`
	HasHeader         *bool   `toml:"header"`
	DecimalComma      *bool   `toml:"decimal_comma"`
	Missing           string  `toml:"missing"`
	Alpha             float64 `toml:"alpha"`
	Rule              string  `toml:"rule"`
	ParallelThreshold *int    `toml:"parallel_threshold"`
	PlotPath          string  `toml:"plot"`
	LogLevel          string  `toml:"log_level"`
	LogFormat         string  `toml:"log_format"`
}

// LoadFileConfig reads and parses a TOML config file.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, errors.Wrapf(err, "read config %s", path)
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, errors.Wrapf(err, "parse config %s", path)
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.stepreg/config.toml, or "" without a home directory.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".stepreg", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) {
	s := newConfigSetter(changed)

	s.setString("input", fc.Input, &cfg.Input)
	s.setString("delimiter", fc.Delimiter, &cfg.Delimiter)
	s.setString("missing", fc.Missing, &cfg.Missing)
	s.setString("rule", fc.Rule, &cfg.Rule)
	s.setString("plot", fc.PlotPath, &cfg.PlotPath)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("log-format", fc.LogFormat, &cfg.LogFormat)

	s.setInt("first-column", fc.FirstColumn, &cfg.FirstColumn)
	s.setInt("last-column", fc.LastColumn, &cfg.LastColumn)
	s.setInt("response-column", fc.ResponseColumn, &cfg.ResponseColumn)
	s.setInt("max-rows", fc.MaxRows, &cfg.MaxRows)
	s.setInt("skip-rows", fc.SkipRows, &cfg.SkipRows)
	s.setInt("parallel-threshold", fc.ParallelThreshold, &cfg.ParallelThreshold)

	s.setFloat("alpha", fc.Alpha, &cfg.Alpha)

	s.setBool("header", fc.HasHeader, &cfg.HasHeader)
	s.setBool("decimal-comma", fc.DecimalComma, &cfg.DecimalComma)
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
