// ledger replays a CSV stream of deposit/withdrawal/dispute/resolve/
// chargeback events and prints the resulting per-client account
// summaries to stdout.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"github.com/urfave/cli/v2"

	"github.com/luxfi/ledger/cmd/ledger/config"
	"github.com/luxfi/ledger/engine"
	"github.com/luxfi/ledger/ingest"
	"github.com/luxfi/ledger/internal/support"
	"github.com/luxfi/ledger/report"
	"github.com/luxfi/ledger/telemetry"
)

var clock support.Clock = support.RealClock{}

var app = &cli.App{
	Name:      "ledger",
	Usage:     "replay a transaction CSV into per-client account summaries",
	Version:   config.Version,
	ArgsUsage: "<input.csv>",
	// All flag parsing is delegated to config.BuildFlagSet's pflag.FlagSet:
	// urfave/cli only supplies the surrounding command shell, so it must
	// not try to interpret flags itself.
	SkipFlagParsing: true,
}

func init() {
	app.Action = run
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cliCtx *cli.Context) error {
	fs := config.BuildFlagSet()
	v, err := config.BuildViper(fs, cliCtx.Args().Slice())
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("configuring flags: %w", err)
	}

	cfg, err := config.BuildConfig(v)
	if err != nil {
		return err
	}

	if v.GetBool(config.VersionKey) {
		fmt.Println(config.Version)
		return nil
	}

	if err := initTelemetry(cfg); err != nil {
		return fmt.Errorf("configuring logging: %w", err)
	}
	started := clock.Now()

	// The input path is whatever positional argument pflag didn't
	// consume as a flag or flag value.
	inputs := fs.Args()
	if len(inputs) != 1 {
		return errors.New("exactly one input CSV path is required")
	}

	f, err := os.Open(inputs[0])
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}

	src := ingest.NewSource()
	sink := &report.CSVSink{SortByClient: cfg.Sort}
	if err := runPipeline(context.Background(), src, f, eng, sink, os.Stdout); err != nil {
		return err
	}

	stats := eng.Stats()
	telemetry.Info("run complete",
		"engine", cfg.Engine,
		"events_processed", stats.EventsProcessed,
		"accounts_frozen", stats.AccountsFrozen,
		"parse_errors", stats.ParseErrors,
		"elapsed", clock.Now().Sub(started),
	)
	return nil
}

// runPipeline wires a source, an engine, and a sink into one pass: read
// events, drive them through the engine, write the resulting summaries.
// It depends on the ingest.EventSource and report.Sink interfaces
// rather than their concrete implementations so a test can substitute
// a mock that fails partway through a stream, something an on-disk CSV
// fixture can't easily do for a mid-read I/O error or a sink that
// rejects a short write.
func runPipeline(ctx context.Context, src ingest.EventSource, r io.Reader, eng engine.Engine, sink report.Sink, w io.Writer) error {
	events, err := src.Read(r)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	if err := eng.Process(ctx, events); err != nil {
		return fmt.Errorf("processing events: %w", err)
	}

	if err := sink.Write(w, eng.Output()); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

func newEngine(cfg config.Config) (engine.Engine, error) {
	switch cfg.Engine {
	case config.EngineBasic:
		return engine.NewBasic(), nil
	case config.EngineSharded:
		return engine.NewSharded(cfg.Workers), nil
	case config.EnginePerClient:
		return engine.NewPerClient(), nil
	default:
		return nil, fmt.Errorf("unknown engine flavor %q", cfg.Engine)
	}
}

func initTelemetry(cfg config.Config) error {
	level, err := telemetry.LevelFromString(cfg.LogLevel)
	if err != nil {
		return err
	}

	handler := telemetry.NewTerminalHandlerWithLevel(os.Stderr, level, true)
	glog, ok := handler.(*telemetry.GlogHandler)
	if ok {
		if err := glog.Vmodule(cfg.Vmodule); err != nil {
			return err
		}
	}

	if cfg.LogFile != "" {
		fileHandler := telemetry.NewRotatingFileHandler(cfg.LogFile, 50, 3, 28)
		handler = telemetry.NewMultiHandler(handler, fileHandler)
	}

	telemetry.SetDefault(telemetry.New(handler))
	return nil
}
