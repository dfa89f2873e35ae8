package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"prioq/internal/job"
	"prioq/internal/sched"
)

func main() {
	// Read the configuration
	cfg := sched.Load("config.yml")
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	logger.Info("loaded config",
		"feeder_count", cfg.FeederCount,
		"feeder_interval", cfg.FeederInterval(),
		"drain_schedule", cfg.DrainSchedule,
		"max_queue_depth", cfg.MaxQueueDepth,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	metrics, err := sched.NewMetrics("prioq", reg)
	if err != nil {
		logger.Error("metrics registration failed", "error", err)
		os.Exit(1)
	}
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	queue := sched.NewPriorityQueue()
	mailbox := sched.NewMailbox()
	delay := cfg.HandlerDelay()

	// Seed the queue before the loops start.
	for _, s := range cfg.Seeds {
		t := sched.NewTask(job.NewCombine(s.A, s.B, delay), s.Priority)
		queue.Push(t)
		logger.Info("seed task queued", "task_id", t.ID, "priority", t.Priority)
	}

	feeder := sched.NewFeeder(mailbox, cfg.FeederCount, cfg.FeederInterval(),
		func(gen int) sched.Handler {
			return job.NewCombine(gen, gen+1, delay)
		}, logger)

	intake := sched.NewIntake(queue, mailbox,
		func(result int) sched.Handler {
			return job.NewCombine(result, result+1, delay)
		}, logger, sched.IntakeOptions{
			Retry:         cfg.Retry(),
			MaxQueueDepth: cfg.MaxQueueDepth,
			Metrics:       metrics,
		})

	dispatcher := sched.NewDispatcher(queue, logger, metrics)

	// Periodic drains keep the queue from growing between feedback pushes.
	c := cron.New()
	if _, err := c.AddFunc(cfg.DrainSchedule, func() { dispatcher.Drain(ctx) }); err != nil {
		logger.Error("bad drain schedule", "schedule", cfg.DrainSchedule, "error", err)
		os.Exit(1)
	}
	c.Start()

	go func() {
		if err := feeder.Run(ctx); err != nil {
			logger.Error("feeder stopped", "error", err)
		}
	}()

	intakeDone := make(chan struct{})
	go func() {
		defer close(intakeDone)
		if err := intake.Run(ctx); err != nil {
			logger.Error("intake stopped", "error", err)
		}
	}()

	select {
	case <-intakeDone:
	case <-ctx.Done():
		<-intakeDone
	}

	// Final pass: drain whatever the feedback loop queued, then wait for
	// the in-flight executions before exiting.
	<-c.Stop().Done()
	dispatcher.Drain(context.Background())
	dispatcher.Wait()
	logger.Info("all loops completed")
}
