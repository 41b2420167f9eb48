package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (STEPREG_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("input", os.Getenv("STEPREG_INPUT"), &cfg.Input)
	s.setString("delimiter", os.Getenv("STEPREG_DELIMITER"), &cfg.Delimiter)
	s.setString("missing", os.Getenv("STEPREG_MISSING"), &cfg.Missing)
	s.setString("rule", os.Getenv("STEPREG_RULE"), &cfg.Rule)
	s.setString("plot", os.Getenv("STEPREG_PLOT"), &cfg.PlotPath)
	s.setString("log-level", os.Getenv("STEPREG_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-format", os.Getenv("STEPREG_LOG_FORMAT"), &cfg.LogFormat)

	ints := []struct {
		flag, env string
		dst       *int
	}{
		{"first-column", "STEPREG_FIRST_COLUMN", &cfg.FirstColumn},
		{"last-column", "STEPREG_LAST_COLUMN", &cfg.LastColumn},
		{"response-column", "STEPREG_RESPONSE_COLUMN", &cfg.ResponseColumn},
		{"max-rows", "STEPREG_MAX_ROWS", &cfg.MaxRows},
		{"skip-rows", "STEPREG_SKIP_ROWS", &cfg.SkipRows},
		{"parallel-threshold", "STEPREG_PARALLEL_THRESHOLD", &cfg.ParallelThreshold},
	}
	for _, f := range ints {
		if err := s.setIntFromString(f.flag, os.Getenv(f.env), f.dst); err != nil {
			return err
		}
	}

	if err := s.setFloatFromString("alpha", os.Getenv("STEPREG_ALPHA"), &cfg.Alpha); err != nil {
		return err
	}

	if err := s.setBoolFromString("header", os.Getenv("STEPREG_HEADER"), &cfg.HasHeader); err != nil {
		return err
	}
	if err := s.setBoolFromString("decimal-comma", os.Getenv("STEPREG_DECIMAL_COMMA"), &cfg.DecimalComma); err != nil {
		return err
	}

	return nil
}
