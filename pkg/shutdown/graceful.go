// Package shutdown ожидает SIGINT/SIGTERM и выполняет хуки остановки в пределах таймаута.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"sharenote/pkg/logger"
)

const (
	logSignalReceived = "shutdown signal received"
	logHookFailed     = "shutdown hook failed"
	logTimeout        = "shutdown timed out before all hooks finished"
)

// Hook освобождает один ресурс процесса.
type Hook func(ctx context.Context) error

// Wait блокируется до получения SIGINT или SIGTERM, затем параллельно
// выполняет хуки и ждет их завершения не дольше timeout.
func Wait(ctx context.Context, timeout time.Duration, hooks ...Hook) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	sig := <-sigCh
	logger.Log(ctx).Info(ctx, logSignalReceived, zap.String("signal", sig.String()))

	Run(ctx, timeout, hooks...)
}

// Run выполняет хуки без ожидания сигнала.
func Run(ctx context.Context, timeout time.Duration, hooks ...Hook) {
	log := logger.Log(ctx)

	hookCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	var wg sync.WaitGroup
	for _, hook := range hooks {
		wg.Add(1)
		go func(fn Hook) {
			defer wg.Done()
			if err := fn(hookCtx); err != nil {
				log.Error(hookCtx, logHookFailed, zap.Error(err))
			}
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-hookCtx.Done():
		log.Warn(ctx, logTimeout, zap.Duration("timeout", timeout))
	}
}
