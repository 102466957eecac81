package jobs

import (
	"context"
	"log/slog"
	"time"
)

const cacheJanitorName = "cache-janitor"

// Cleaner кэш, который умеет удалять истёкшие ключи
type Cleaner interface {
	Cleanup() int
}

// CacheJanitor периодически чистит in-memory кэш от истёкших карт
type CacheJanitor struct {
	cache    Cleaner
	interval time.Duration
	log      *slog.Logger
}

func NewCacheJanitor(cache Cleaner, interval time.Duration, log *slog.Logger) *CacheJanitor {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &CacheJanitor{
		cache:    cache,
		interval: interval,
		log:      log,
	}
}

func (j *CacheJanitor) Name() string {
	return cacheJanitorName
}

func (j *CacheJanitor) NextRun(now time.Time) time.Time {
	return now.Add(j.interval)
}

func (j *CacheJanitor) Run(_ context.Context) error {
	if removed := j.cache.Cleanup(); removed > 0 {
		j.log.Debug("expired cache entries removed", "count", removed)
	}
	return nil
}
