package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/psy_practice_bot/internal/app"
	"github.com/Freeeeeet/psy_practice_bot/internal/config"
	"github.com/Freeeeeet/psy_practice_bot/internal/controller"
	"github.com/Freeeeeet/psy_practice_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/psy_practice_bot/internal/controller/handlers"
	"github.com/Freeeeeet/psy_practice_bot/internal/controller/state"
	"github.com/Freeeeeet/psy_practice_bot/internal/generation"
	"github.com/Freeeeeet/psy_practice_bot/internal/httpapi"
	"github.com/Freeeeeet/psy_practice_bot/internal/metrics"
	"github.com/Freeeeeet/psy_practice_bot/internal/service"
	"github.com/go-telegram/bot"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Sugar().Infow("Starting psy practice bot",
		"environment", cfg.Environment,
		"timezone", cfg.Location().String(),
		"postgres", cfg.UsePostgres(),
		"redis", cfg.UseRedis())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}
	logger.Info("Bot stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	m := metrics.New()

	storage, err := app.OpenStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer storage.Close()

	appointments := service.NewAppointmentService(storage.Appointments, storage.Patients, cfg.Location(), m, logger)
	patients := service.NewPatientService(storage.Patients, m, logger)

	runner := generation.NewRunner(generation.NewSimulatedGenerator(cfg.GenerationDelay), m, logger)
	defer runner.Shutdown()
	analysis := service.NewAnalysisService(runner, storage.Scratch, logger)

	if cfg.SeedFixtures {
		if err := service.SeedFixtures(ctx, storage.Patients, storage.Appointments, appointments.Now(), logger); err != nil {
			return err
		}
	}

	base := common.NewHandler(appointments, patients, analysis, state.NewManager(), m, logger)
	cmdHandlers := handlers.NewHandlers(base)

	b, err := bot.New(cfg.TelegramToken, bot.WithMiddlewares(cmdHandlers.Observe))
	if err != nil {
		return err
	}

	botController := controller.NewBotController(b, base, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		// Без меню команд бот работает
		logger.Warn("Commands menu not set", zap.Error(err))
	}

	var server *http.Server
	if cfg.HTTPAddr != "" {
		server = &http.Server{
			Addr: cfg.HTTPAddr,
			Handler: httpapi.New(httpapi.Config{
				Appointments: appointments,
				Metrics:      m.Handler(),
				Renders:      m,
				Health:       storage.Health,
				Logger:       logger,
			}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("HTTP API listening", zap.String("addr", cfg.HTTPAddr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("HTTP server failed", zap.Error(err))
			}
		}()
	}

	botController.Start(ctx)

	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown failed", zap.Error(err))
		}
	}
	return nil
}
