package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	mid "Tickfunds/internal/middleware"
	"Tickfunds/internal/usecase"
	"Tickfunds/pkg/config"
	xhttp "Tickfunds/pkg/http"
	pkgkafka "Tickfunds/pkg/kafka"
	applogger "Tickfunds/pkg/logger"
	"Tickfunds/pkg/queue"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	httpServer *xhttp.Server
	pipeline   *mid.ActivityPipeline
	consumer   *pkgkafka.Consumer
	sink       pkgkafka.MessageHandler
	queue      *queue.RedisQueue
	verifier   *usecase.InlineVerifier

	ActivityProc *usecase.ActivityProcessor
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, l *applogger.Logger, httpServer *xhttp.Server, pipeline *mid.ActivityPipeline) *App {
	if l == nil {
		l = applogger.NewNop()
	}
	return &App{
		cfg:        cfg,
		log:        l,
		httpServer: httpServer,
		pipeline:   pipeline,
	}
}

// WithConsumer runs h on the activity topic alongside the HTTP server.
func (a *App) WithConsumer(c *pkgkafka.Consumer, h pkgkafka.MessageHandler) {
	a.consumer, a.sink = c, h
}

// WithQueue runs the job queue workers.
func (a *App) WithQueue(q *queue.RedisQueue) { a.queue = q }

// WithVerifier stops pending in-process checks on shutdown.
func (a *App) WithVerifier(v *usecase.InlineVerifier) { a.verifier = v }

// Start launches every background component and the HTTP server.
func (a *App) Start(ctx context.Context) error {
	if a.pipeline != nil {
		a.pipeline.Start(ctx)
		a.log.Info("activity pipeline started", applogger.String("backend", a.cfg.Activity.Backend))
	}

	if a.queue != nil {
		if err := a.queue.Start(); err != nil {
			return err
		}
		a.log.Info("job queue started", applogger.Int("workers", a.cfg.Queue.Workers))
	}

	if a.consumer != nil && a.sink != nil {
		a.consumer.RegisterHandler(a.sink)
		if err := a.consumer.Start(ctx); err != nil {
			return err
		}
		a.log.Info("kafka consumer started", applogger.String("topic", a.sink.Topic()))
	}

	return a.httpServer.Start()
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := a.Start(ctx); err != nil {
		a.log.Error("start failed", applogger.Error(err))
		_ = a.Shutdown(context.Background())
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.Shutdown(context.Background())
}

// Shutdown stops intake first, then drains what is buffered. Infrastructure
// clients are closed by the DI cleanup afterwards.
func (a *App) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	if a.verifier != nil {
		_ = a.verifier.Close()
	}
	if a.queue != nil {
		if err := a.queue.Stop(ctx); err != nil {
			a.log.Warn("job queue stop error", applogger.Error(err))
		}
	}

	if a.pipeline != nil {
		if err := a.pipeline.Stop(ctx); err != nil {
			a.log.Warn("activity pipeline stop error", applogger.Error(err))
		}
	}
	if a.ActivityProc != nil {
		a.ActivityProc.Close()
	}

	if a.consumer != nil {
		if err := a.consumer.Stop(ctx); err != nil {
			a.log.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
