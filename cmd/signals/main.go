package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap/zapcore"

	"github.com/rxtech-lab/signal-engine/internal/logger"
	"github.com/rxtech-lab/signal-engine/internal/params"
	"github.com/rxtech-lab/signal-engine/internal/provider"
	"github.com/rxtech-lab/signal-engine/internal/runner"
	"github.com/rxtech-lab/signal-engine/internal/store"
	"github.com/rxtech-lab/signal-engine/internal/strategy"
	"github.com/rxtech-lab/signal-engine/internal/validation"
)

func loadCatalog(cmd *cli.Command) (*strategy.Catalog, error) {
	if path := cmd.String("catalog"); path != "" {
		return strategy.LoadCatalog(path)
	}

	return strategy.DefaultCatalog()
}

func openStore(cmd *cli.Command, log *logger.Logger) (store.Store, error) {
	if path := cmd.String("db"); path != "" {
		return store.NewDuckDBStore(path, log)
	}

	return store.NewMemoryStore(), nil
}

func parseParams(pairs []string) (map[string]float64, error) {
	out := make(map[string]float64, len(pairs))

	for _, pair := range pairs {
		name, value, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("parameter %q must be name=value", pair)
		}

		var parsed float64
		if _, err := fmt.Sscanf(value, "%g", &parsed); err != nil {
			return nil, fmt.Errorf("parameter %q has a non-numeric value: %w", pair, err)
		}

		out[strings.TrimSpace(name)] = parsed
	}

	return out, nil
}

// runAction evaluates the full strategy catalog over a universe of symbols
// and persists the resulting signals under a fresh run.
func runAction(ctx context.Context, cmd *cli.Command) error {
	level, err := zapcore.ParseLevel(cmd.String("log-level"))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cmd.String("log-level"), err)
	}

	zapLogger, err := logger.NewLoggerWithLevel(level)
	if err != nil {
		return err
	}
	defer zapLogger.Sync()

	catalog, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	st, err := openStore(cmd, zapLogger)
	if err != nil {
		return err
	}
	defer st.Close()

	overrides, err := parseParams(cmd.StringSlice("param"))
	if err != nil {
		return err
	}

	manager := params.NewManager(st, catalog, zapLogger)

	paramSet, err := manager.GetOrCreate(cmd.String("param-set-name"), overrides)
	if err != nil {
		return err
	}

	symbols := cmd.StringSlice("symbol")
	if len(symbols) == 0 {
		return fmt.Errorf("at least one --symbol is required")
	}

	var prov provider.Provider = provider.NewCSVProvider(cmd.String("data"), zapLogger)
	prov = provider.NewRetryProvider(prov, cmd.Uint("retries"), zapLogger)

	r := runner.NewRunner(st, prov, catalog, int(cmd.Int("concurrency")), zapLogger)

	bar := progressbar.NewOptions(len(symbols),
		progressbar.OptionSetDescription("Evaluating"),
		progressbar.OptionShowCount())
	r.SetProgressFunc(func(string) {
		bar.Add(1)
	})

	report, err := r.Execute(ctx, runner.RunRequest{
		ParamSet:     paramSet,
		Symbols:      symbols,
		UniverseName: cmd.String("universe"),
		Start:        cmd.Timestamp("start"),
		End:          cmd.Timestamp("end"),
		Notes:        cmd.String("notes"),
	})
	if err != nil {
		return err
	}

	fmt.Printf("\nrun %s: %d symbols evaluated, %d signals, %d skipped\n",
		report.RunID, report.Evaluated, report.Signals, len(report.Skipped))

	for _, skip := range report.Skipped {
		fmt.Printf("  skipped %s: %s\n", skip.Symbol, skip.Reason)
	}

	return nil
}

// validateAction checks signal codes against the catalog and prints the
// structured result for each.
func validateAction(ctx context.Context, cmd *cli.Command) error {
	catalog, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	codes := cmd.Args().Slice()
	if len(codes) == 0 {
		return fmt.Errorf("at least one signal code argument is required")
	}

	validator := validation.NewValidator(catalog)
	failures := 0

	for _, code := range codes {
		result := validator.ValidateSignalCode(code)

		status := "ok"
		if !result.Valid {
			status = "invalid"
			failures++
		}

		fmt.Printf("%s: %s\n", code, status)

		for _, msg := range result.Errors {
			fmt.Printf("  error: %s\n", msg)
		}

		for _, msg := range result.Warnings {
			fmt.Printf("  warning: %s\n", msg)
		}

		for _, msg := range result.Suggestions {
			fmt.Printf("  suggestion: %s\n", msg)
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d codes failed validation", failures, len(codes))
	}

	return nil
}

func main() {
	dateConfig := cli.TimestampConfig{Layouts: []string{"2006-01-02"}}

	cmd := &cli.Command{
		Name:  "signals",
		Usage: "Compute graded trading signals from daily price history",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "catalog",
				Usage: "Path to a strategy catalog YAML (defaults to the embedded catalog)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
				Value: "info",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Evaluate the strategy catalog over a universe of symbols",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "data",
						Aliases: []string{"d"},
						Usage:   "Directory containing {symbol}.csv price files",
						Value:   "data",
					},
					&cli.StringFlag{
						Name:  "db",
						Usage: "DuckDB database path (in-memory store when empty)",
					},
					&cli.StringSliceFlag{
						Name:     "symbol",
						Aliases:  []string{"t"},
						Usage:    "Symbol to evaluate (repeatable)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "universe",
						Usage: "Universe label recorded on the run",
						Value: "adhoc",
					},
					&cli.TimestampFlag{
						Name:     "start",
						Aliases:  []string{"s"},
						Usage:    "Start date in `YYYY-MM-DD` format",
						Required: true,
						Config:   dateConfig,
					},
					&cli.TimestampFlag{
						Name:    "end",
						Aliases: []string{"e"},
						Usage:   "End date in `YYYY-MM-DD` format. Defaults to today.",
						Value:   time.Now(),
						Config:  dateConfig,
					},
					&cli.StringSliceFlag{
						Name:    "param",
						Aliases: []string{"p"},
						Usage:   "Parameter override as name=value (repeatable)",
					},
					&cli.StringFlag{
						Name:  "param-set-name",
						Usage: "Label for the parameter set",
						Value: "default",
					},
					&cli.IntFlag{
						Name:    "concurrency",
						Aliases: []string{"c"},
						Usage:   "Maximum symbols evaluated in parallel",
						Value:   4,
					},
					&cli.UintFlag{
						Name:  "retries",
						Usage: "Price-history fetch retries per symbol",
						Value: 3,
					},
					&cli.StringFlag{
						Name:  "notes",
						Usage: "Free-form note recorded on the run",
					},
				},
				Action: runAction,
			},
			{
				Name:      "validate",
				Usage:     "Validate signal codes, e.g. signals validate BBRK7 SMRV3",
				ArgsUsage: "CODE [CODE...]",
				Action:    validateAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
