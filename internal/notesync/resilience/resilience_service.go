package resilience

import (
	"context"

	"go.uber.org/zap"

	"notesync/pkg/logger"
)

// ServiceResilience объединяет circuit breaker и повторы для одного удаленного сервиса.
type ServiceResilience struct {
	serviceName    string
	circuitBreaker *CircuitBreaker
	retry          *Retry
}

// NewServiceResilience создает обертку отказоустойчивости.
func NewServiceResilience(serviceName string, breaker CircuitBreakerConfig, retry RetryConfig) *ServiceResilience {
	return &ServiceResilience{
		serviceName:    serviceName,
		circuitBreaker: NewCircuitBreaker(serviceName, breaker),
		retry:          NewRetry(serviceName, retry),
	}
}

// NewDefaultServiceResilience создает обертку с настройками по умолчанию.
func NewDefaultServiceResilience(serviceName string) *ServiceResilience {
	return NewServiceResilience(serviceName, DefaultCircuitBreakerConfig(), DefaultRetryConfig())
}

// ExecuteWithResilience выполняет операцию через circuit breaker с повторами.
func (r *ServiceResilience) ExecuteWithResilience(ctx context.Context, operationName string, operation func() error) error {
	logger.Log(ctx).Debug(ctx, "executing operation with resilience",
		zap.String("service", r.serviceName),
		zap.String("operation", operationName))

	return r.circuitBreaker.Execute(ctx, func() error {
		return r.retry.Execute(ctx, operation)
	})
}

// ExecuteWithBreaker выполняет операцию через circuit breaker без повторов.
// Используется для неидемпотентных вызовов.
func (r *ServiceResilience) ExecuteWithBreaker(ctx context.Context, operationName string, operation func() error) error {
	logger.Log(ctx).Debug(ctx, "executing operation without retries",
		zap.String("service", r.serviceName),
		zap.String("operation", operationName))

	return r.circuitBreaker.Execute(ctx, operation)
}

// State возвращает состояние circuit breaker.
func (r *ServiceResilience) State() CircuitState {
	return r.circuitBreaker.GetState()
}

// Execute выполняет операцию с результатом через ExecuteWithResilience.
func Execute[T any](ctx context.Context, r *ServiceResilience, operationName string, operation func() (T, error)) (T, error) {
	return collect(func(op func() error) error {
		return r.ExecuteWithResilience(ctx, operationName, op)
	}, operation)
}

// ExecuteOnce выполняет операцию с результатом через ExecuteWithBreaker.
func ExecuteOnce[T any](ctx context.Context, r *ServiceResilience, operationName string, operation func() (T, error)) (T, error) {
	return collect(func(op func() error) error {
		return r.ExecuteWithBreaker(ctx, operationName, op)
	}, operation)
}

func collect[T any](run func(func() error) error, operation func() (T, error)) (T, error) {
	var result T
	err := run(func() error {
		value, err := operation()
		if err != nil {
			return err
		}
		result = value
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
