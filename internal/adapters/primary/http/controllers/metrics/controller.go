package metricsController

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Controller отдаёт метрики Prometheus на /metrics
type Controller struct {
	gatherer prometheus.Gatherer
}

func New(gatherer prometheus.Gatherer) *Controller {
	return &Controller{gatherer: gatherer}
}

func (c *Controller) RegisterRoutes(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})))
}
