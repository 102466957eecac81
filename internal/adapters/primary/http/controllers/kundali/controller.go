package kundaliController

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/admin/astro/kundali-engine/internal/adapters/primary/http/middlewares"
	"github.com/admin/astro/kundali-engine/internal/domain"
	"github.com/admin/astro/kundali-engine/internal/ports/usecase"
)

type Controller struct {
	Kundali usecase.IKundaliUsecase
	Log     *slog.Logger
}

func New(kundali usecase.IKundaliUsecase, log *slog.Logger) *Controller {
	return &Controller{
		Kundali: kundali,
		Log:     log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		v1.POST("/kundali", c.handleChart)
		v1.POST("/kundali/dasha", c.handleDasha)
		v1.POST("/kundali/matching", c.handleMatching)
		v1.GET("/positions/current", c.handleCurrentPositions)
	}
}

func (c *Controller) handleChart(ctx *gin.Context) {
	req, ok := c.bindChart(ctx)
	if !ok {
		return
	}

	chart, err := c.Kundali.Calculate(ctx.Request.Context(), req)
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"data": chart})
}

func (c *Controller) handleDasha(ctx *gin.Context) {
	req, ok := c.bindChart(ctx)
	if !ok {
		return
	}

	periods, err := c.Kundali.Dasha(ctx.Request.Context(), req)
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"data": periods})
}

func (c *Controller) handleMatching(ctx *gin.Context) {
	var body MatchReq
	if err := ctx.ShouldBindJSON(&body); err != nil {
		c.badRequest(ctx, err)
		return
	}
	req, err := body.ToDomain()
	if err != nil {
		c.badRequest(ctx, err)
		return
	}

	result, err := c.Kundali.Match(ctx.Request.Context(), req)
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"data": result})
}

func (c *Controller) handleCurrentPositions(ctx *gin.Context) {
	snapshot, err := c.Kundali.CurrentPositions(ctx.Request.Context())
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"data": snapshot})
}

func (c *Controller) bindChart(ctx *gin.Context) (domain.ChartRequest, bool) {
	var body ChartReq
	if err := ctx.ShouldBindJSON(&body); err != nil {
		c.badRequest(ctx, err)
		return domain.ChartRequest{}, false
	}
	req, err := body.ToDomain()
	if err != nil {
		c.badRequest(ctx, err)
		return domain.ChartRequest{}, false
	}
	return req, true
}

func (c *Controller) badRequest(ctx *gin.Context, err error) {
	c.Log.Debug("invalid request",
		"path", ctx.FullPath(),
		"request_id", ctx.GetString(middlewares.RequestIDKey),
		"error", err,
	)
	ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// writeError: входные данные -> 400, невозможный расчёт -> 422, остальное -> 500
func (c *Controller) writeError(ctx *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		c.Log.Error("request failed",
			"path", ctx.FullPath(),
			"request_id", ctx.GetString(middlewares.RequestIDKey),
			"error", err,
		)
		ctx.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case domain.IsValidationError(err):
		return http.StatusBadRequest
	case domain.IsCalculationError(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
