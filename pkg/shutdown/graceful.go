// Package shutdown ожидает SIGINT/SIGTERM и выполняет хуки завершения.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// Hook действие при завершении процесса.
type Hook func(context.Context) error

// Wait блокируется до SIGINT или SIGTERM, затем параллельно выполняет хуки
// и возвращает их ошибки. Хуки, не уложившиеся в timeout, бросаются.
func Wait(timeout time.Duration, hooks ...Hook) []error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	<-sigCh

	return Run(timeout, hooks...)
}

// Run выполняет хуки без ожидания сигнала.
func Run(timeout time.Duration, hooks ...Hook) []error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var (
		mu   sync.Mutex
		errs []error
		wg   sync.WaitGroup
	)
	for _, hook := range hooks {
		wg.Add(1)
		go func(fn Hook) {
			defer wg.Done()
			if err := fn(ctx); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
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
	case <-ctx.Done():
		mu.Lock()
		errs = append(errs, ctx.Err())
		mu.Unlock()
	}

	mu.Lock()
	defer mu.Unlock()
	return append([]error(nil), errs...)
}

