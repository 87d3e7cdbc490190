// Command robokittyctl boots the governance engine against a config file and
// keeps a snapshot of aggregate state on disk between runs. It does not
// implement a scripting surface; replaying a sequence of commands from a
// script is left to whatever embeds this engine, per the command package's
// own scoping.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/yearn/robokitty-sub000/governance/aggregate"
	"github.com/yearn/robokitty-sub000/governance/command"
	"github.com/yearn/robokitty-sub000/governance/config"
	"github.com/yearn/robokitty-sub000/governance/metrics"
	"github.com/yearn/robokitty-sub000/observability/logging"
)

func main() {
	configFile := flag.String("config", "./robokitty.toml", "Path to the configuration file")
	statePath := flag.String("state", "./robokitty.snapshot.json", "Path to the aggregate snapshot file")
	env := flag.String("env", "dev", "Deployment environment label for log lines")
	flag.Parse()

	logger := logging.Setup("robokittyctl", *env)

	cfg, err := config.Load(*configFile)
	if err != nil {
		logger.Error("failed to load configuration", "error", err, "path", *configFile)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err, "path", *configFile)
		os.Exit(1)
	}

	agg := aggregate.New()
	if err := loadSnapshot(agg, *statePath); err != nil {
		logger.Error("failed to load snapshot", "error", err, "path", *statePath)
		os.Exit(1)
	}

	// engine is constructed here so boot-time wiring errors surface
	// immediately; the process exits after persisting the snapshot since
	// this binary is a state-migration and health-check entry point, not
	// a long-running server.
	engine := command.New(agg,
		command.WithLogger(logger),
		command.WithMetrics(metrics.Default()),
	)

	logger.Info("governance engine ready",
		"future_block_offset", cfg.FutureBlockOffset,
		"default_total_counted_seats", cfg.DefaultTotalCountedSeats,
		"state_path", *statePath,
		"teams", len(agg.Teams),
		"epochs", len(agg.Epochs),
	)
	_ = engine

	if err := saveSnapshot(agg, *statePath); err != nil {
		logger.Error("failed to persist snapshot", "error", err, "path", *statePath)
		os.Exit(1)
	}
}

func loadSnapshot(agg *aggregate.Aggregate, path string) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()
	return agg.Load(f)
}

func saveSnapshot(agg *aggregate.Aggregate, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer f.Close()
	return agg.Save(f)
}

var _ = slog.Default
