package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ougirez/demostats/internal/app"
	"github.com/ougirez/demostats/internal/pkg/config"
	"github.com/ougirez/demostats/internal/pkg/constants"
	"github.com/ougirez/demostats/internal/pkg/logger"
	"github.com/spf13/pflag"
)

func main() {
	flags := pflag.NewFlagSet("collector", pflag.ExitOnError)
	configFile := flags.String("config", "", "path to a YAML config file")
	only := flags.StringSlice("indicator", nil, "collect only these indicator names (repeatable)")
	flags.String("output-dir", "data", "directory receiving one CSV table per indicator")
	flags.Int("workers", 3, "indicators fetched concurrently")
	flags.Int("start-year", 1960, "first year requested")
	flags.Int("end-year", 0, "last year requested, current year when 0")
	flags.String("log-level", "info", "debug, info, warn or error")
	_ = flags.Parse(os.Args[1:])

	v, err := config.NewViper(*configFile)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	for key, name := range map[string]string{
		constants.ViperCollectorOutputDir: "output-dir",
		constants.ViperCollectorWorkers:   "workers",
		constants.ViperCollectorStartYear: "start-year",
		constants.ViperCollectorEndYear:   "end-year",
		constants.ViperLogLevel:           "log-level",
	} {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			log.Fatalf("bind flag %s: %v", name, err)
		}
	}

	cfg, err := config.New(v)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Development); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	indicators, err := app.SelectIndicators(cfg, *only)
	if err != nil {
		logger.Fatal(ctx, err)
	}

	svc := app.NewCollectorService(cfg, app.NewStore(cfg), indicators)

	logger.Infof(ctx, "starting collection of world demographic data")
	reports, err := svc.CollectAll(ctx)
	if err != nil {
		logger.Errorf(ctx, "collection interrupted: %s", err.Error())
	}

	for _, r := range reports {
		if r.Error != "" {
			logger.Warnf(ctx, "%s: %d observations, %s", r.Indicator, r.Observations, r.Error)
			continue
		}
		logger.Infof(ctx, "%s: %d observations -> %s", r.Indicator, r.Observations, r.Path)
	}
	logger.Infof(ctx, "collection done")
}
