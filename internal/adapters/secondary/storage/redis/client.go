package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/admin/astro/kundali-engine/internal/ports/cache"
)

// Client обёртка над redis.Client для работы с кэшем.
// Реализует интерфейс cache.Cache. Вызовы идут через circuit breaker:
// при недоступном Redis запросы сразу получают ошибку и расчёт идёт без кэша.
type Client struct {
	client  redis.UniversalClient
	breaker *gobreaker.CircuitBreaker[string]
}

// NewClient создаёт новый Redis-клиент
func NewClient(client redis.UniversalClient, cfg BreakerConfig, log *slog.Logger) *Client {
	settings := gobreaker.Settings{
		Name:        "redis-cache",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, cache.ErrNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	}

	return &Client{
		client:  client,
		breaker: gobreaker.NewCircuitBreaker[string](settings),
	}
}

// Get получает значение по ключу
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	return c.breaker.Execute(func() (string, error) {
		val, err := c.client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("%w: %s", cache.ErrNotFound, key)
		}
		if err != nil {
			return "", fmt.Errorf("redis get failed: %w", err)
		}
		return val, nil
	})
}

// Set устанавливает значение с TTL
func (c *Client) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	_, err := c.breaker.Execute(func() (string, error) {
		if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
			return "", fmt.Errorf("redis set failed: %w", err)
		}
		return "", nil
	})
	return err
}

// Delete удаляет значение по ключу
func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.breaker.Execute(func() (string, error) {
		if err := c.client.Del(ctx, key).Err(); err != nil {
			return "", fmt.Errorf("redis delete failed: %w", err)
		}
		return "", nil
	})
	return err
}

// Exists проверяет существование ключа
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.breaker.Execute(func() (string, error) {
		count, err := c.client.Exists(ctx, key).Result()
		if err != nil {
			return "", fmt.Errorf("redis exists failed: %w", err)
		}
		if count > 0 {
			return "1", nil
		}
		return "", nil
	})
	return n == "1", err
}

// Ping проверка доступности для /ready
func (c *Client) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// State состояние circuit breaker
func (c *Client) State() string {
	return c.breaker.State().String()
}

// Close закрывает подключение к кэшу
func (c *Client) Close() error {
	return c.client.Close()
}

var _ cache.Cache = (*Client)(nil)
