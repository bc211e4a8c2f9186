package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"tech-digest/internal/observability"
)

// GracefulShutdown запускает мониторинг OS сигналов и возвращает context для отмены
func GracefulShutdown(logger *observability.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	// Канал для сигналов ОС
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel() // Отменяем context при получении сигнала
	}()

	return ctx, cancel
}
