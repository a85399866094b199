package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m04kA/SMC-SchedulingClient/internal/config"
	"github.com/m04kA/SMC-SchedulingClient/internal/schedmock"
	"github.com/m04kA/SMC-SchedulingClient/pkg/logger"
	"github.com/m04kA/SMC-SchedulingClient/pkg/metrics"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting schedmock...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем хранилище и сервис
	store := schedmock.NewStore(cfg.Mock.SlotStartHour, cfg.Mock.SlotEndHour)
	svc := schedmock.NewService(store, log, cfg.Mock.LatencyMs, cfg.Mock.ErrorRate)
	log.Info("Stub scheduling service initialized (slots %02d:00-%02d:00, latency=%dms, error_rate=%.2f)",
		cfg.Mock.SlotStartHour, cfg.Mock.SlotEndHour, cfg.Mock.LatencyMs, cfg.Mock.ErrorRate)

	// Настраиваем обработчик; metrics endpoint живёт вне fault-инъекции
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
		log.Info("Prometheus metrics endpoint exposed at %s", metricsPath)
	}
	handler := svc.Handler(metricsAdapter(metricsCollector), metricsPath)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

// metricsAdapter прячет nil-коллектор за nil-интерфейсом, чтобы роутер не
// вешал middleware при выключенных метриках
func metricsAdapter(m *metrics.Metrics) schedmock.Metrics {
	if m == nil {
		return nil
	}
	return m
}
