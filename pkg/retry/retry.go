package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Пакет retry - ограниченные повторные попытки с фиксированным интервалом
//
// Используется для опроса внешних хранилищ (результаты задач уведомлений)
// и для повторов нестабильных сетевых вызовов.
//
// Комбинатор параметризуется (MaxAttempts, Interval); при исчерпании
// попыток возвращается типизированная ошибка ErrExhausted, которую
// вызывающий код может распознать через errors.Is.

// ErrExhausted возвращается после исчерпания всех попыток
var ErrExhausted = errors.New("retry attempts exhausted")

// Config - конфигурация повторных попыток
type Config struct {
	// MaxAttempts - количество попыток, включая первую
	// 0 или отрицательное значение трактуется как 1
	MaxAttempts int

	// Interval - фиксированная задержка между попытками
	Interval time.Duration

	// RetryIf определяет, нужно ли повторять после данной ошибки
	// nil = повторять любые ошибки
	RetryIf func(error) bool

	// OnRetry вызывается перед каждой повторной попыткой (для логирования)
	OnRetry func(attempt int, err error)
}

// PollConfig возвращает конфигурацию опроса хранилища результатов задач:
// 10 попыток с шагом 100ms, суммарный бюджет около секунды.
func PollConfig() Config {
	return Config{
		MaxAttempts: 10,
		Interval:    100 * time.Millisecond,
	}
}

// validate нормализует конфигурацию
func (c *Config) validate() {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 1
	}
	if c.Interval < 0 {
		c.Interval = 0
	}
}

// Do выполняет операцию с повторными попытками
//
// Возвращает nil при успехе; при исчерпании попыток - последнюю ошибку,
// обёрнутую в ErrExhausted. Контекст проверяется перед каждой попыткой
// и во время ожидания между ними.
func Do(ctx context.Context, operation func() error, cfg Config) error {
	cfg.validate()

	var lastErr error

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			if lastErr != nil {
				return lastErr
			}
			return ctx.Err()
		default:
		}

		err := operation()
		if err == nil {
			return nil
		}
		lastErr = err

		if cfg.RetryIf != nil && !cfg.RetryIf(err) {
			return err
		}

		if attempt == cfg.MaxAttempts {
			break
		}

		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, err)
		}

		select {
		case <-time.After(cfg.Interval):
		case <-ctx.Done():
			return lastErr
		}
	}

	return fmt.Errorf("%w after %d attempts: %v", ErrExhausted, cfg.MaxAttempts, lastErr)
}

// DoWithResult выполняет операцию с результатом и повторными попытками
func DoWithResult[T any](ctx context.Context, operation func() (T, error), cfg Config) (T, error) {
	var result T
	err := Do(ctx, func() error {
		var opErr error
		result, opErr = operation()
		return opErr
	}, cfg)
	return result, err
}

// errNotPresent - внутренний маркер "значение еще не появилось"
var errNotPresent = errors.New("value not present yet")

// UntilPresent опрашивает внешнее хранилище, пока значение не появится
//
// lookup возвращает (значение, найдено, ошибка). Отсутствие значения и
// транзиентная ошибка чтения равнозначны - опрос продолжается до
// исчерпания бюджета попыток. Ожидание кооперативное: горутина
// приостанавливается на Interval, не занимая воркера.
func UntilPresent[T any](ctx context.Context, lookup func(ctx context.Context) (T, bool, error), cfg Config) (T, error) {
	return DoWithResult(ctx, func() (T, error) {
		value, ok, err := lookup(ctx)
		if err != nil {
			return value, err
		}
		if !ok {
			return value, errNotPresent
		}
		return value, nil
	}, cfg)
}
