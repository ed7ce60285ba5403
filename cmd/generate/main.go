// Command generate synthesizes daily supply-chain documents. By default
// it runs once over the configured date range and exits; with
// SIM_DAILY_CRON set it stays resident and generates each new yesterday
// on schedule.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/freightforge/supplychain-simdata-go/internal/config"
	"github.com/freightforge/supplychain-simdata-go/internal/storage"
	"github.com/freightforge/supplychain-simdata-go/pkg/logger"
	"github.com/freightforge/supplychain-simdata-go/simdata"
)

const scheduledDayTimeout = 10 * time.Minute

func main() {
	var (
		envFile   string
		startDate string
		endDate   string
		seed      int64
		dailyCron string
	)

	flag.StringVar(&envFile, "env", "", "path to an optional dotenv file")
	flag.StringVar(&startDate, "start", "", "first simulated date (YYYY-MM-DD), overrides SIM_START_DATE")
	flag.StringVar(&endDate, "end", "", "last simulated date (YYYY-MM-DD), overrides SIM_END_DATE")
	flag.Int64Var(&seed, "seed", simdata.DefaultSeed, "random seed, overrides SIM_SEED")
	flag.StringVar(&dailyCron, "daily-cron", "", "cron spec for resident daily generation, overrides SIM_DAILY_CRON")
	flag.Parse()

	cfg, err := config.Load(envFile)
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.NewAtLevel(cfg.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	applyFlagOverrides(cfg, startDate, endDate, seed, dailyCron, baseLogger)

	if err := cfg.Validate(); err != nil {
		baseLogger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backends, err := storage.Connect(ctx, cfg.Storage, logger.NewBridge(logger.Named(baseLogger, "storage")))
	if err != nil {
		baseLogger.Fatal("failed to connect storage backend", zap.Error(err))
	}
	defer backends.Close()

	if cfg.Generation.DailyCron == "" {
		if err := runOnce(ctx, cfg.Generation, backends.Store, baseLogger); err != nil {
			baseLogger.Fatal("generation run failed", zap.Error(err))
		}

		return
	}

	if err := runScheduled(ctx, cfg.Generation, backends.Store, baseLogger); err != nil {
		baseLogger.Fatal("scheduler failed", zap.Error(err))
	}
}

// applyFlagOverrides lets command-line flags win over environment values.
// Only flags the user actually set are applied.
func applyFlagOverrides(
	cfg *config.Config,
	startDate string,
	endDate string,
	seed int64,
	dailyCron string,
	log *zap.Logger,
) {
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["start"] {
		parsed, err := time.Parse(simdata.DateLayout, startDate)
		if err != nil {
			log.Fatal("invalid -start flag", zap.String("value", startDate), zap.Error(err))
		}

		cfg.Generation.StartDate = parsed
	}

	if set["end"] {
		parsed, err := time.Parse(simdata.DateLayout, endDate)
		if err != nil {
			log.Fatal("invalid -end flag", zap.String("value", endDate), zap.Error(err))
		}

		cfg.Generation.EndDate = parsed
	}

	if set["seed"] {
		cfg.Generation.Seed = seed
	}

	if set["daily-cron"] {
		cfg.Generation.DailyCron = dailyCron
	}
}

// runOnce generates the configured date range in a single pass.
func runOnce(
	ctx context.Context,
	gen config.GenerationConfig,
	store simdata.PartitionStore,
	log *zap.Logger,
) error {
	simulator, err := simdata.BuildSimulator(
		gen.RunConfig(),
		store,
		simdata.WithLogger(logger.NewBridge(logger.Named(log, "simulator"))),
	)
	if err != nil {
		return err
	}

	totals, err := simulator.Run(ctx)
	if err != nil {
		return err
	}

	log.Info("generation finished",
		zap.Int("days", totals.Days),
		zap.Int("shipments", totals.Shipments),
		zap.Int("purchase_orders", totals.PurchaseOrders),
		zap.Int("inventory_records", totals.InventoryRecords),
	)

	return nil
}

// runScheduled stays resident and generates yesterday's documents on the
// configured cron schedule until the process is signalled to stop.
func runScheduled(
	ctx context.Context,
	gen config.GenerationConfig,
	store simdata.PartitionStore,
	log *zap.Logger,
) error {
	scheduler := cron.New()

	_, err := scheduler.AddFunc(gen.DailyCron, func() {
		generateYesterday(ctx, gen, store, log)
	})
	if err != nil {
		return err
	}

	log.Info("daily generation scheduled", zap.String("cron", gen.DailyCron))
	scheduler.Start()

	<-ctx.Done()
	log.Info("shutdown signal received")

	// Stop returns a context that completes once running jobs finish.
	<-scheduler.Stop().Done()

	return nil
}

// generateYesterday runs a single-day simulation for yesterday. Failed
// writes are retried with backoff, a rerun overwrites the same partition
// so retrying is safe.
func generateYesterday(
	ctx context.Context,
	gen config.GenerationConfig,
	store simdata.PartitionStore,
	log *zap.Logger,
) {
	yesterday := simdata.ToDateOnly(time.Now().AddDate(0, 0, -1))
	date := yesterday.Format(simdata.DateLayout)

	dayConfig := gen.RunConfig()
	dayConfig.StartDate = yesterday
	dayConfig.EndDate = yesterday
	// Each calendar day draws from its own stream so consecutive days do
	// not repeat the same record values.
	dayConfig.Seed = simdata.DeriveSeed(gen.Seed, date)

	jobCtx, cancel := context.WithTimeout(ctx, scheduledDayTimeout)
	defer cancel()

	err := retryWithBackoff(jobCtx, log, defaultRetryPolicy, func(attemptCtx context.Context) error {
		simulator, buildErr := simdata.BuildSimulator(
			dayConfig,
			store,
			simdata.WithLogger(logger.NewBridge(logger.Named(log, "simulator"))),
		)
		if buildErr != nil {
			return buildErr
		}

		_, runErr := simulator.Run(attemptCtx)

		return runErr
	})
	if err != nil {
		log.Error("scheduled generation failed", zap.String("date", date), zap.Error(err))
		return
	}

	log.Info("scheduled generation finished", zap.String("date", date))
}
