package jobs

import (
	"context"
	"log/slog"
	"time"
)

const positionsUpdaterName = "positions-updater"

// PositionsRefresher пересчитывает текущие позиции и кладёт их в кэш
type PositionsRefresher interface {
	UpdateCachedPositions(ctx context.Context, at time.Time) error
}

// PositionsUpdater джоба для обновления позиций планет в кэше, каждый день в заданный час
type PositionsUpdater struct {
	refresher PositionsRefresher
	log       *slog.Logger
	hour      int
	location  *time.Location
	now       func() time.Time
}

// NewPositionsUpdater создаёт новую джобу для обновления позиций планет
func NewPositionsUpdater(refresher PositionsRefresher, cfg Config, log *slog.Logger) *PositionsUpdater {
	hour := cfg.Hour
	if hour < 0 || hour > 23 {
		hour = 0
	}

	return &PositionsUpdater{
		refresher: refresher,
		log:       log,
		hour:      hour,
		location:  cfg.Location(),
		now:       time.Now,
	}
}

func (j *PositionsUpdater) Name() string {
	return positionsUpdaterName
}

// NextRun ближайший запуск в hour:00 по location
func (j *PositionsUpdater) NextRun(now time.Time) time.Time {
	local := now.In(j.location)

	next := time.Date(local.Year(), local.Month(), local.Day(), j.hour, 0, 0, 0, j.location)
	if !next.After(local) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Run выполняет обновление текущих позиций планет в кэше
func (j *PositionsUpdater) Run(ctx context.Context) error {
	return j.refresher.UpdateCachedPositions(ctx, j.now())
}
