package usecase

import (
	"context"

	"github.com/admin/astro/kundali-engine/internal/domain"
)

// IKundaliUsecase расчёты, доступные транспорту (HTTP, Kafka)
type IKundaliUsecase interface {
	Calculate(ctx context.Context, req domain.ChartRequest) (*domain.Chart, error)
	Dasha(ctx context.Context, req domain.ChartRequest) ([]domain.DashaPeriod, error)
	Match(ctx context.Context, req domain.MatchRequest) (*domain.MatchResult, error)
	CurrentPositions(ctx context.Context) (*domain.PositionsSnapshot, error)
}
