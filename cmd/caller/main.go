package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/central-university-dev/go-bed-caller/internal/callgw"
	"github.com/central-university-dev/go-bed-caller/internal/common/metrics"
	"github.com/central-university-dev/go-bed-caller/internal/config"
	"github.com/central-university-dev/go-bed-caller/internal/notifier"
	"github.com/central-university-dev/go-bed-caller/internal/service"
	"github.com/central-university-dev/go-bed-caller/internal/storage"
	"github.com/central-university-dev/go-bed-caller/internal/telegram"
	"github.com/central-university-dev/go-bed-caller/internal/ticker"
	"github.com/central-university-dev/go-bed-caller/pkg"
)

func gracefulShutdown(
	poller *telegram.Poller,
	alarmTicker *ticker.Ticker,
	webhook *callgw.WebhookServer,
	metricsServer *metrics.MetricsServer,
	stopCh <-chan struct{},
	appLogger *slog.Logger,
) {
	<-stopCh
	appLogger.Info("Получен сигнал завершения")

	poller.Stop()
	alarmTicker.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := webhook.Stop(ctx); err != nil {
		appLogger.Error("Ошибка при остановке приёмника событий звонков",
			"error", err,
		)
	}

	if err := metricsServer.Stop(ctx); err != nil {
		appLogger.Error("Ошибка при остановке сервера метрик",
			"error", err,
		)
	}

	appLogger.Info("Сервис успешно остановлен")
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка запуска сервиса: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	appLogger := pkg.NewLogger(os.Stdout)

	cfg := config.LoadConfig()

	snapshot := storage.NewFileSnapshot(cfg.StateFile)

	store, err := storage.NewStore(snapshot, appLogger)
	if err != nil {
		appLogger.Error("Ошибка при загрузке состояния",
			"error", err,
		)

		return fmt.Errorf("ошибка загрузки состояния: %w", err)
	}

	telegramClient, err := telegram.NewClient(cfg.TelegramBotToken, cfg.SendRateLimit, appLogger)
	if err != nil {
		appLogger.Error("Ошибка при создании Telegram клиента",
			"error", err,
		)

		return fmt.Errorf("ошибка создания Telegram клиента: %w", err)
	}

	callClient := callgw.NewClient(cfg, appLogger)

	dispatcher := notifier.NewDispatcher(telegramClient, telegramClient, callClient, appLogger)

	alarmService := service.NewAlarmService(store, dispatcher, cfg.RetryDelay, cfg.CancelWindow, appLogger)

	alarmTicker := ticker.NewTicker(alarmService, cfg.TickInterval, appLogger)
	alarmTicker.Start()

	poller := telegram.NewPoller(telegramClient, alarmService, appLogger)
	poller.Start()

	webhook := callgw.NewWebhookServer(cfg.CallWebhookPort, alarmService, appLogger)
	webhook.Start()

	metricsServer := metrics.NewMetricsServer(cfg.MetricsPort, appLogger)
	metricsServer.Start()

	stopCh := make(chan struct{})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		appLogger.Info("Получен системный сигнал",
			"signal", sig.String(),
		)
		close(stopCh)
	}()

	gracefulShutdown(poller, alarmTicker, webhook, metricsServer, stopCh, appLogger)

	return nil
}
