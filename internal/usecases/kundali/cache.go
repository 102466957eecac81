package kundali

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/goccy/go-json"

	"github.com/admin/astro/kundali-engine/internal/domain"
	"github.com/admin/astro/kundali-engine/internal/ports/cache"
)

const (
	chartKeyPrefix = "kundali:chart:"
	positionsKey   = "kundali:positions:current"
)

// chartKey sha256 от нормализованного запроса и имени эфемериды
func chartKey(req domain.ChartRequest, ephemeris string) (string, error) {
	payload, err := json.Marshal(struct {
		Request   domain.ChartRequest `json:"request"`
		Ephemeris string              `json:"ephemeris"`
	}{req, ephemeris})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return chartKeyPrefix + hex.EncodeToString(sum[:]), nil
}

// loadCached ошибки кэша не ломают расчёт, только пишутся в лог
func (s *Service) loadCached(ctx context.Context, key string, dst any) bool {
	if s.Cache == nil {
		return false
	}

	raw, err := s.Cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			s.Metrics.RecordCache("miss")
		} else {
			s.Metrics.RecordCache("error")
			s.Log.Warn("failed to read cache", "key", key, "error", err)
		}
		return false
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.Metrics.RecordCache("error")
		s.Log.Warn("failed to decode cached value", "key", key, "error", err)
		return false
	}

	s.Metrics.RecordCache("hit")
	return true
}

func (s *Service) storeCached(ctx context.Context, key string, value any, ttl time.Duration) {
	if s.Cache == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		s.Log.Warn("failed to encode value for cache", "key", key, "error", err)
		return
	}
	if err := s.Cache.Set(ctx, key, string(raw), ttl); err != nil {
		s.Log.Warn("failed to write cache", "key", key, "error", err)
	}
}
