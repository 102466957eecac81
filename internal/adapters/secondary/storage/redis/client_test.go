package redis

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	gobreaker "github.com/sony/gobreaker/v2"
)

func TestClientBreakerOpens(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
	c := NewClient(rdb, BreakerConfig{MaxRequests: 1, Interval: time.Minute, Timeout: time.Minute, FailureThreshold: 2},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer c.Close()

	ctx := context.Background()
	for range 2 {
		if _, err := c.Get(ctx, "k"); err == nil {
			t.Fatal("expected connection error")
		}
	}

	if c.State() != gobreaker.StateOpen.String() {
		t.Fatalf("breaker state = %s, want open", c.State())
	}
	if err := c.Set(ctx, "k", "v", time.Minute); !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("err = %v, want ErrOpenState", err)
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}
	if cfg.IsEnabled() {
		t.Error("redis without host must be disabled")
	}
	cfg.Host = "redis"
	if !cfg.IsEnabled() {
		t.Error("redis with host must be enabled")
	}
}
