package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"transmissionbot/internal/app"
	"transmissionbot/internal/bot"
	"transmissionbot/internal/metrics"
	"transmissionbot/internal/telemetry"
	"transmissionbot/internal/transmission"
)

func main() {
	cfg := app.LoadConfig()
	logger := newLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	metrics.Register(prometheus.DefaultRegisterer)

	if cfg.BotToken == "" {
		logger.Error("BOT_TOKEN is not set")
		os.Exit(1)
	}
	if cfg.OperatorID == 0 {
		logger.Error("BOT_OPERATOR_ID is not set")
		os.Exit(1)
	}

	shutdownTracer, err := telemetry.Init(context.Background(), "transmission-bot")
	if err != nil {
		logger.Warn("otel init failed", slog.String("error", err.Error()))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	logger.Info("configuration loaded",
		slog.String("service", "transmission-bot"),
		slog.Int64("operatorId", cfg.OperatorID),
		slog.String("daemonHost", cfg.DaemonHost),
		slog.Int("daemonPort", cfg.DaemonPort),
		slog.String("daemonRpcPath", cfg.DaemonRPCPath),
		slog.String("logLevel", cfg.LogLevel),
		slog.String("logFormat", cfg.LogFormat),
		slog.String("metricsAddr", cfg.MetricsAddr),
	)

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(rootCtx, 10*time.Second)
	defer cancel()
	gateway, err := transmission.New(connectCtx, transmission.Config{
		Host:     cfg.DaemonHost,
		Port:     cfg.DaemonPort,
		Username: cfg.DaemonUsername,
		Password: cfg.DaemonPassword,
		RPCPath:  cfg.DaemonRPCPath,
		Logger:   logger,
	})
	if err != nil {
		logger.Error("transmission connect failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		logger.Error("telegram init failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("telegram authorized", slog.String("userName", api.Self.UserName))

	b := bot.New(api, gateway, bot.Config{
		OperatorID:     cfg.OperatorID,
		Logger:         logger,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	var metricsSrv *http.Server
	errCh := make(chan error, 2)
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		metricsSrv = &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
		logger.Info("metrics server started", slog.String("addr", cfg.MetricsAddr))
	}

	go func() {
		errCh <- b.Run(rootCtx)
	}()

	select {
	case <-rootCtx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logger.Error("bot stopped with error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	if metricsSrv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics server shutdown error", slog.String("error", err.Error()))
		}
	}

	logger.Info("bot stopped")
}

func newLogger(levelRaw, formatRaw string) *slog.Logger {
	level := parseLogLevel(levelRaw)
	options := &slog.HandlerOptions{Level: level}
	format := strings.ToLower(strings.TrimSpace(formatRaw))
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, options))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, options))
}

func parseLogLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
