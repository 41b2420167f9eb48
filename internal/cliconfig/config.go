// Package cliconfig layers the stepreg command configuration: defaults, a
// TOML file, STEPREG_* environment variables and explicitly set flags, in
// increasing order of precedence.
package cliconfig

import (
	"strconv"
	"unicode/utf8"

	"github.com/YuminosukeSato/stepreg/dataset"
	"github.com/YuminosukeSato/stepreg/pkg/errors"
	"github.com/YuminosukeSato/stepreg/pkg/log"
	"github.com/YuminosukeSato/stepreg/significance"
	"github.com/YuminosukeSato/stepreg/stepwise"
)

// Config is the resolved configuration of one stepreg invocation.
type Config struct {
	Input string

	Delimiter      string
	FirstColumn    int
	LastColumn     int
	ResponseColumn int
	MaxRows        int
	SkipRows       int
	HasHeader      bool
	DecimalComma   bool
	Missing        string

	Alpha             float64
	Rule              string
	ParallelThreshold int

	PlotPath  string
	LogLevel  string
	LogFormat string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	d := dataset.DefaultOptions()
	s := stepwise.DefaultConfig()
	return Config{
		Delimiter:         string(d.Delimiter),
		FirstColumn:       d.FirstColumn,
		LastColumn:        d.LastColumn,
		ResponseColumn:    d.ResponseColumn,
		MaxRows:           d.MaxRows,
		SkipRows:          d.SkipRows,
		HasHeader:         d.HasHeader,
		DecimalComma:      d.DecimalComma,
		Missing:           d.Missing.String(),
		Alpha:             s.Alpha,
		Rule:              s.Rule.String(),
		ParallelThreshold: s.ParallelThreshold,
		LogLevel:          "info",
		LogFormat:         log.FormatConsole,
	}
}

// Validate checks every field that can be checked without reading the input.
func (c Config) Validate() error {
	if c.Input == "" {
		return errors.NewValidationError("input", "no input file given", c.Input)
	}
	if _, err := c.DatasetOptions(nil); err != nil {
		return err
	}
	if _, err := c.SelectorConfig(nil); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case log.FormatConsole, log.FormatJSON, log.FormatText:
	default:
		return errors.NewValidationError("log_format", "must be console, json or text", c.LogFormat)
	}
	return nil
}

// DatasetOptions converts the loader fields into dataset.Options.
func (c Config) DatasetOptions(logger log.Logger) (dataset.Options, error) {
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return dataset.Options{}, errors.NewValidationError("delimiter", "must be a single character", c.Delimiter)
	}
	delim, _ := utf8.DecodeRuneInString(c.Delimiter)

	missing, err := dataset.ParseMissingPolicy(c.Missing)
	if err != nil {
		return dataset.Options{}, err
	}

	opts := dataset.Options{
		Delimiter:      delim,
		FirstColumn:    c.FirstColumn,
		LastColumn:     c.LastColumn,
		ResponseColumn: c.ResponseColumn,
		MaxRows:        c.MaxRows,
		SkipRows:       c.SkipRows,
		HasHeader:      c.HasHeader,
		DecimalComma:   c.DecimalComma,
		Missing:        missing,
		Logger:         logger,
	}
	if err := opts.Validate(); err != nil {
		return dataset.Options{}, err
	}
	return opts, nil
}

// SelectorConfig converts the selection fields into stepwise.Config.
func (c Config) SelectorConfig(logger log.Logger) (stepwise.Config, error) {
	rule, err := significance.ParseRule(c.Rule)
	if err != nil {
		return stepwise.Config{}, err
	}
	sc := stepwise.Config{
		Alpha:             c.Alpha,
		Rule:              rule,
		ParallelThreshold: c.ParallelThreshold,
		Logger:            logger,
	}
	if sc.Logger == nil {
		sc.Logger = log.NewNopLogger()
	}
	if err := sc.Validate(); err != nil {
		return stepwise.Config{}, err
	}
	return sc, nil
}

// configSetter helps apply configuration values while respecting flag precedence.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value from a pointer if not nil and flag not changed.
// Zero is a meaningful value for column offsets and row counts.
func (s *configSetter) setInt(flag string, value *int, dst *int) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setFloat sets a float64 value if positive and flag not changed.
func (s *configSetter) setFloat(flag string, value float64, dst *float64) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return errors.Wrapf(err, "parse %s", flag)
	}
	*dst = i
	return nil
}

// setFloatFromString parses a string to float64 and sets the destination if valid.
func (s *configSetter) setFloatFromString(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return errors.Wrapf(err, "parse %s", flag)
	}
	*dst = f
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return errors.Wrapf(err, "parse %s", flag)
	}
	*dst = b
	return nil
}
