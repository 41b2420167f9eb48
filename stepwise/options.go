package stepwise

import (
	"github.com/YuminosukeSato/stepreg/pkg/errors"
	"github.com/YuminosukeSato/stepreg/pkg/log"
	"github.com/YuminosukeSato/stepreg/significance"
)

// 候補数がこの値を超えると候補の評価を並列化する
const defaultParallelThreshold = 4

// Config holds everything a selection run depends on. There is no package
// level state; two selectors with different configs can run concurrently.
type Config struct {
	Alpha             float64
	Rule              significance.Rule
	ParallelThreshold int
	Logger            log.Logger
}

// DefaultConfig returns alpha 0.05, the critical-value rule and a silent logger.
func DefaultConfig() Config {
	return Config{
		Alpha:             significance.DefaultAlpha,
		Rule:              significance.RuleCriticalValue,
		ParallelThreshold: defaultParallelThreshold,
		Logger:            log.NewNopLogger(),
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := (significance.Tester{Alpha: c.Alpha, Rule: c.Rule}).Validate(); err != nil {
		return err
	}
	if c.ParallelThreshold < 0 {
		return errors.NewValidationError("parallel_threshold", "must be non-negative", c.ParallelThreshold)
	}
	return nil
}

// Option is a function that configures a Selector
type Option func(*Config)

// WithAlpha sets the significance level of every partial F-test
func WithAlpha(alpha float64) Option {
	return func(c *Config) {
		c.Alpha = alpha
	}
}

// WithRule sets the decision rule
func WithRule(rule significance.Rule) Option {
	return func(c *Config) {
		c.Rule = rule
	}
}

// WithParallelThreshold sets the candidate count above which scoring fans out
func WithParallelThreshold(n int) Option {
	return func(c *Config) {
		c.ParallelThreshold = n
	}
}

// WithLogger sets the logger; nil keeps the silent default
func WithLogger(logger log.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// WithConfig replaces the whole configuration
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		logger := c.Logger
		*c = cfg
		if c.Logger == nil {
			c.Logger = logger
		}
	}
}
