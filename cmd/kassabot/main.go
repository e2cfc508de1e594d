package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"kassabot/internal/amqp"
	"kassabot/internal/backend"
	"kassabot/internal/bot"
	"kassabot/internal/chart"
	"kassabot/internal/config"
	"kassabot/internal/log"
	"kassabot/internal/metrics"
	"kassabot/internal/ops"
	"kassabot/internal/report"
	"kassabot/internal/session"
)

func main() {
	// Missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	logger := log.New(log.Config{Component: "kassabot"})
	log.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Service stopped", "error", err)
		os.Exit(1)
	}
}

func run(logger *log.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	metrics.Init()

	store, err := backend.Open(ctx, backend.Config{
		Type:         backend.Type(cfg.Backend),
		SQLiteDBPath: cfg.SQLiteDBPath,
		PostgresURL:  cfg.PostgresURL,
	}, logger.Logger)
	if err != nil {
		return err
	}
	defer store.Close()

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPInboundQueue, cfg.AMQPReplyQueue)
	if err != nil {
		return err
	}
	defer client.Close()

	var charts report.ChartRenderer
	if cfg.ChartServiceURL != "" {
		charts = chart.NewHTTPRenderer(cfg.ChartServiceURL)
		logger.Info("Chart delivery enabled", "service_url", cfg.ChartServiceURL)
	} else {
		logger.Info("Chart delivery disabled")
	}

	sessions := session.NewMemoryStore(cfg.SessionTTL)
	dispatcher := bot.NewDispatcher(sessions, store, report.NewBuilder(store), charts, client, logger)

	opsServer := &http.Server{
		Addr:              ":" + cfg.OpsPort,
		Handler:           ops.NewRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Ops server listening", "port", cfg.OpsPort)
		if err := opsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return opsServer.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		err := client.ConsumeEvents(ctx, dispatcher.HandleEvent)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	if cfg.SessionTTL > 0 {
		g.Go(func() error {
			ticker := time.NewTicker(cfg.SessionSweepInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					if removed := sessions.CleanExpired(); removed > 0 {
						logger.Debug("Expired sessions removed", "count", removed)
					}
				}
			}
		})
	}

	logger.Info("Service started",
		"backend", cfg.Backend,
		"exchange", cfg.AMQPExchange,
		"inbound_queue", cfg.AMQPInboundQueue,
		"reply_queue", cfg.AMQPReplyQueue,
		"session_ttl", cfg.SessionTTL)

	return g.Wait()
}
