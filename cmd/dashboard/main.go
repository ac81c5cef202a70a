package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ougirez/demostats/internal/api"
	"github.com/ougirez/demostats/internal/app"
	"github.com/ougirez/demostats/internal/pkg/config"
	"github.com/ougirez/demostats/internal/pkg/constants"
	"github.com/ougirez/demostats/internal/pkg/logger"
	"github.com/spf13/pflag"
)

func main() {
	flags := pflag.NewFlagSet("dashboard", pflag.ExitOnError)
	configFile := flags.String("config", "", "path to a YAML config file")
	flags.String("addr", ":8050", "listen address")
	flags.String("data-dir", "data", "directory holding the indicator tables")
	flags.String("collect-schedule", "", "cron spec for background re-collection, disabled when empty")
	flags.String("log-level", "info", "debug, info, warn or error")
	_ = flags.Parse(os.Args[1:])

	v, err := config.NewViper(*configFile)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	for key, name := range map[string]string{
		constants.ViperServerAddr:            "addr",
		constants.ViperCollectorOutputDir:    "data-dir",
		constants.ViperServerCollectSchedule: "collect-schedule",
		constants.ViperLogLevel:              "log-level",
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

	st := app.NewStore(cfg)
	collectorService := app.NewCollectorService(cfg, st, cfg.Indicators)
	dashboardService := app.NewDashboardService(cfg, st)

	available, err := dashboardService.Indicators(ctx)
	if err != nil {
		logger.Fatal(ctx, err)
	}
	for _, ind := range available {
		logger.Infof(ctx, "indicator %s (%s): available=%t", ind.Name, ind.Label(), ind.Available)
	}

	if cfg.Server.CollectSchedule != "" {
		c, err := collectorService.Schedule(ctx, cfg.Server.CollectSchedule)
		if err != nil {
			logger.Fatal(ctx, err)
		}
		defer c.Stop()
		logger.Infof(ctx, "background collection scheduled: %s", cfg.Server.CollectSchedule)
	}

	svc, err := api.NewAPIService(dashboardService, collectorService, api.Options{
		AllowOrigins: cfg.Server.AllowOrigins,
		DefaultYear:  cfg.Dashboard.DefaultYear,
	})
	if err != nil {
		logger.Fatal(ctx, err)
	}

	go svc.Serve(cfg.Server.Addr)
	logger.Infof(ctx, "dashboard API listening on %s", cfg.Server.Addr)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := svc.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(shutdownCtx, "shutdown: %s", err.Error())
	}
}
