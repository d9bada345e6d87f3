package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Amine-Ecssr/event-management-system-sub000/internal/config"
	"github.com/Amine-Ecssr/event-management-system-sub000/internal/logging"
	"github.com/Amine-Ecssr/event-management-system-sub000/internal/services"
)

func main() {
	runFull := flag.Bool("full", false, "Run a full reindex and exit")
	runIncremental := flag.Bool("incremental", false, "Run an incremental sync and exit")
	runOrphans := flag.Bool("orphans", false, "Run orphan cleanup and exit")
	runOptimize := flag.Bool("optimize", false, "Force-merge indices and exit")
	showStatus := flag.Bool("status", false, "Print sync status and exit")
	entity := flag.String("entity", "", "Reindex a single entity type and exit")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.Close()

	oneShot := *runFull || *runIncremental || *runOrphans || *runOptimize || *showStatus || *entity != ""

	opts := services.Options{
		RunScheduler:  !oneShot,
		RunRetryQueue: !oneShot,
		RunConsumer:   !oneShot,
		WaitForSearch: oneShot,
	}
	mgr := services.NewManager(cfg, opts, slog.Default())

	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer initCancel()
	if err := mgr.Init(initCtx); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	if oneShot {
		code := runOnce(mgr, *runFull, *runIncremental, *runOrphans, *runOptimize, *showStatus, *entity)
		shutdown(mgr)
		logging.Close()
		os.Exit(code)
	}

	bgCtx, bgCancel := context.WithCancel(context.Background())
	defer bgCancel()
	if err := mgr.Start(bgCtx); err != nil {
		log.Fatalf("Failed to start services: %v", err)
	}
	slog.Info("search sync daemon started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down")

	bgCancel()
	shutdown(mgr)
}

func shutdown(mgr *services.Manager) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	mgr.Shutdown(ctx)
}

// runOnce executes exactly one admin operation and reports its outcome.
func runOnce(mgr *services.Manager, full, incremental, orphans, optimize, status bool, entity string) int {
	ctx := context.Background()
	o := mgr.Orchestrator()

	switch {
	case status:
		return printJSON(o.Status())
	case full:
		res, err := o.ReindexAll(ctx)
		return report(res, err)
	case incremental:
		res, err := o.SyncIncremental(ctx, nil)
		return report(res, err)
	case entity != "":
		res, err := o.ReindexEntity(ctx, entity)
		return report(res, err)
	case orphans:
		res, err := o.CleanupOrphans(ctx)
		return report(res, err)
	case optimize:
		if err := o.OptimizeIndices(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Println("Indices optimized.")
		return 0
	}
	return 0
}

func report(res any, err error) int {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return printJSON(res)
}

func printJSON(v any) int {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Println(string(out))
	return 0
}
