package healthcheckController

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/admin/astro/kundali-engine/internal/astro/julian"
	"github.com/admin/astro/kundali-engine/internal/ports/cache"
	"github.com/admin/astro/kundali-engine/internal/ports/service"
)

const pingTimeout = 2 * time.Second

type HealthCheckController struct {
	ephemeris service.IEphemerisService
	cache     cache.Cache // может быть nil
	log       *slog.Logger
	now       func() time.Time
}

func New(ephemeris service.IEphemerisService, chartCache cache.Cache, log *slog.Logger) *HealthCheckController {
	return &HealthCheckController{
		ephemeris: ephemeris,
		cache:     chartCache,
		log:       log,
		now:       time.Now,
	}
}

func (c *HealthCheckController) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", c.health)
	r.GET("/ready", c.ready)
}

// health базовая проверка (всегда возвращает 200)
func (c *HealthCheckController) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "kundali-engine",
	})
}

// ready эфемерида покрывает текущий момент; кэш опционален и готовность не блокирует
func (c *HealthCheckController) ready(ctx *gin.Context) {
	epoch := julian.FromTime(c.now())
	if !c.ephemeris.Covers(epoch.JDE) {
		c.log.Error("ephemeris not ready", "backend", c.ephemeris.Name(), "jde", epoch.JDE)
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"error":  "ephemeris does not cover current date",
		})
		return
	}

	cacheStatus := "disabled"
	if c.cache != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), pingTimeout)
		defer cancel()

		cacheStatus = "up"
		if err := c.cache.Ping(pingCtx); err != nil {
			c.log.Warn("cache not ready", "error", err)
			cacheStatus = "down"
		}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"ephemeris": c.ephemeris.Name(),
		"cache":     cacheStatus,
	})
}
