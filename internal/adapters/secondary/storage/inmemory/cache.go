package inmemory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/admin/astro/kundali-engine/internal/ports/cache"
)

type entry struct {
	value     string
	expiresAt time.Time // нулевое значение - без TTL
}

// DefaultMaxEntries предел записей по умолчанию
const DefaultMaxEntries = 10000

type Config struct {
	MaxEntries int `envconfig:"MAX_ENTRIES" default:"10000"`
}

// Cache in-memory реализация cache.Cache с TTL и пределом числа записей.
// Используется, когда Redis не сконфигурирован, и в тестах.
type Cache struct {
	mu         sync.RWMutex
	items      map[string]entry
	maxEntries int
	now        func() time.Time
}

// NewCache создаёт новый in-memory кэш на DefaultMaxEntries записей
func NewCache() *Cache {
	return NewCacheWithLimit(DefaultMaxEntries)
}

// NewCacheWithLimit кэш не больше maxEntries записей (<= 0 - DefaultMaxEntries)
func NewCacheWithLimit(maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Cache{
		items:      make(map[string]entry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get получает значение по ключу
func (c *Cache) Get(_ context.Context, key string) (string, error) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	if !ok || c.expired(e) {
		return "", fmt.Errorf("%w: %s", cache.ErrNotFound, key)
	}
	return e.value, nil
}

// Set устанавливает значение с TTL (ttl <= 0 - без истечения)
func (c *Cache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[key]; !ok && len(c.items) >= c.maxEntries {
		c.evict()
	}
	c.items[key] = e
	return nil
}

// evict освобождает место: сначала истёкшие, иначе запись, которая истекает раньше всех.
// Записи без TTL вытесняются последними. Вызывается под c.mu.
func (c *Cache) evict() {
	if c.removeExpired() > 0 {
		return
	}

	var (
		victim  string
		soonest time.Time
		found   bool
	)
	for key, e := range c.items {
		switch {
		case !found:
			victim, soonest, found = key, e.expiresAt, true
		case e.expiresAt.IsZero():
		case soonest.IsZero() || e.expiresAt.Before(soonest):
			victim, soonest = key, e.expiresAt
		}
	}
	if found {
		delete(c.items, victim)
	}
}

// Len число записей, включая ещё не вычищенные истёкшие
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Delete удаляет значение по ключу
func (c *Cache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

// Exists проверяет существование ключа
func (c *Cache) Exists(_ context.Context, key string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.items[key]
	return ok && !c.expired(e), nil
}

// Cleanup удаляет истёкшие записи, возвращает сколько удалено
func (c *Cache) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.removeExpired()
}

func (c *Cache) removeExpired() int {
	removed := 0
	for key, e := range c.items {
		if c.expired(e) {
			delete(c.items, key)
			removed++
		}
	}
	return removed
}

func (c *Cache) Ping(_ context.Context) error {
	return nil
}

func (c *Cache) Close() error {
	return nil
}

func (c *Cache) expired(e entry) bool {
	return !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt)
}

var _ cache.Cache = (*Cache)(nil)
