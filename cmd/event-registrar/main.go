package main

import (
	"context"
	"errors"
	"eventRegistrar/internal/config"
	"eventRegistrar/internal/http-server/handlers/event/createEvent"
	"eventRegistrar/internal/http-server/handlers/event/createRange"
	"eventRegistrar/internal/http-server/handlers/event/getEventInfo"
	"eventRegistrar/internal/http-server/handlers/event/setRangeEnd"
	"eventRegistrar/internal/http-server/handlers/payment/importPayments"
	"eventRegistrar/internal/http-server/handlers/registration/cancelRegistration"
	"eventRegistrar/internal/http-server/handlers/registration/createRegistration"
	"eventRegistrar/internal/http-server/handlers/registration/simulateRegistration"
	"eventRegistrar/internal/http-server/middleware/mwlogger"
	"eventRegistrar/internal/lib/logger/handlers/slogpretty"
	"eventRegistrar/internal/lib/logger/sl"
	"eventRegistrar/internal/notifier"
	"eventRegistrar/internal/registry"
	"eventRegistrar/internal/storage/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting event registrar", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	storage, err := postgres.InitDB(&cfg.Database)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	reg := registry.New(log)
	reg.UseStore(storage)
	reg.UseNotifier(notifier.New(log, notifier.LogSender{Log: log}))

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Post("/events", createEvent.New(log, reg))
	router.Get("/events/{id}", getEventInfo.New(log, reg))
	router.Post("/events/{id}/ranges", createRange.New(log, reg))
	router.Patch("/ranges/{rangeID}/end", setRangeEnd.New(log, reg))
	router.Post("/ranges/{rangeID}/simulate", simulateRegistration.New(log, reg))
	router.Post("/ranges/{rangeID}/register", createRegistration.New(log, reg))
	router.Delete("/participants/{id}", cancelRegistration.New(log, reg))
	router.Post("/payments/import", importPayments.New(log, reg))

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err = reg.UpdateAllUsage(); err != nil {
					log.Error("failed to recompute usage counters", sl.Err(err))
				}
			case <-stop:
				return
			}
		}
	}()

	go func() {
		if err = srv.ListenAndServe(); err != nil && !errors.Is(http.ErrServerClosed, err) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	if err = srv.Shutdown(context.Background()); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	log.Info("application stopped")

	if err = storage.Close(); err != nil {
		log.Error("failed to close postgres connection", sl.Err(err))
	}

	log.Info("postgres connection closed")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
