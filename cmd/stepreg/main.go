package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/YuminosukeSato/stepreg/dataset"
	"github.com/YuminosukeSato/stepreg/internal/cliconfig"
	"github.com/YuminosukeSato/stepreg/pkg/errors"
	"github.com/YuminosukeSato/stepreg/pkg/log"
	"github.com/YuminosukeSato/stepreg/report"
	"github.com/YuminosukeSato/stepreg/stepwise"
)

const longHelp = `Forward-stepwise variable selection for linear regression.

Reads a delimited file (the UCI air-quality layout by default), prepends an
intercept column and grows a subset of predictors one partial F-test at a
time, pruning predictors that lose significance. Prints every decision, the
selected columns and the refitted model; optionally plots R², adjusted R²,
AIC and Cp along the accepted models.

Configuration is read from $HOME/.stepreg/config.toml, then STEPREG_*
environment variables, then flags.`

var exampleUsage = strings.TrimSpace(`
  stepreg AirQualityUCI.csv
  stepreg --alpha 0.01 --rule p-value --plot criteria.png AirQualityUCI.csv
  stepreg --config ./stepreg.toml --log-format json
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "stepreg: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:           "stepreg [flags] <csv>",
		Short:         "Forward-stepwise linear-regression variable selection",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })
			if len(args) == 1 {
				cfg.Input = args[0]
				changed["input"] = true
			}

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return errors.Wrap(err, "load config")
				}
				cliconfig.ApplyFileConfig(&cfg, fc, changed)
			}
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return errors.Wrap(err, "environment")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := log.SetupLogger(stderr, cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			errors.SetZerologWarnFunc(func(w error) {
				logger.Warn("Warning", "error", w)
			})
			defer errors.SetZerologWarnFunc(nil)

			return run(cmd.Context(), cfg, logger, stdout)
		},
	}

	f := root.Flags()
	f.StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.stepreg/config.toml)")
	f.StringVar(&cfg.Delimiter, "delimiter", cfg.Delimiter, "field delimiter")
	f.IntVar(&cfg.FirstColumn, "first-column", cfg.FirstColumn, "first field of the selected range")
	f.IntVar(&cfg.LastColumn, "last-column", cfg.LastColumn, "field after the selected range")
	f.IntVar(&cfg.ResponseColumn, "response-column", cfg.ResponseColumn, "offset of the response inside the range")
	f.IntVar(&cfg.MaxRows, "max-rows", cfg.MaxRows, "maximum data rows to read (0 reads all)")
	f.IntVar(&cfg.SkipRows, "skip-rows", cfg.SkipRows, "data rows to discard after reading")
	f.BoolVar(&cfg.HasHeader, "header", cfg.HasHeader, "first line holds column names")
	f.BoolVar(&cfg.DecimalComma, "decimal-comma", cfg.DecimalComma, `accept "2,6" as 2.6`)
	f.StringVar(&cfg.Missing, "missing", cfg.Missing, "missing-value policy for -200: drop, keep or error")
	f.Float64Var(&cfg.Alpha, "alpha", cfg.Alpha, "significance level of the partial F-tests")
	f.StringVar(&cfg.Rule, "rule", cfg.Rule, "decision rule: critical-value, p-value or legacy-cdf")
	f.IntVar(&cfg.ParallelThreshold, "parallel-threshold", cfg.ParallelThreshold, "candidate count above which scoring runs in parallel")
	f.StringVar(&cfg.PlotPath, "plot", cfg.PlotPath, "write the criteria chart to this PNG file")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	f.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "console, json or text")

	return root
}

// run loads the dataset, selects the predictors and writes the report.
func run(ctx context.Context, cfg cliconfig.Config, logger log.Logger, stdout io.Writer) error {
	opts, err := cfg.DatasetOptions(logger)
	if err != nil {
		return err
	}
	ds, err := dataset.LoadFile(cfg.Input, opts)
	if err != nil {
		return err
	}
	for _, s := range ds.Describe() {
		logger.Debug("Column summary",
			"column", s.Name,
			"mean", s.Mean,
			"stddev", s.StdDev,
			"min", s.Min,
			"max", s.Max,
		)
	}

	sc, err := cfg.SelectorConfig(logger)
	if err != nil {
		return err
	}
	selector, err := stepwise.New(stepwise.WithConfig(sc))
	if err != nil {
		return err
	}
	res, err := selector.Run(ctx, ds.Design, ds.Response)
	if err != nil {
		logger.Error("Selection failed", err, log.PathKey, cfg.Input)
		return err
	}

	fmt.Fprintf(stdout, "Response: %s\n", ds.ResponseName)
	if err := report.WriteSummary(stdout, res, ds.Response, ds.Names); err != nil {
		return err
	}

	if cfg.PlotPath != "" {
		if err := report.PlotCriteria(cfg.PlotPath, res); err != nil {
			return err
		}
		logger.Info("Criteria chart written", log.PathKey, cfg.PlotPath)
	}
	return nil
}
