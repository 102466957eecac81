package app

import (
	"context"
	"fmt"

	"log/slog"

	"github.com/admin/astro/kundali-engine/internal/pkg/logger"
)

type App struct {
	Name string
	Cfg  *Config
	Log  *slog.Logger
}

func New(name string, cfg *Config) *App {
	log := logger.New(name, cfg.Log)
	logger.SetDefault(log)

	return &App{
		Name: name,
		Cfg:  cfg,
		Log:  log,
	}
}

func (a *App) Run(ctx context.Context) error {
	a.Log.Info("running kundali engine",
		"ephemeris", a.Cfg.Ephemeris.Backend,
		"zodiac", a.Cfg.Engine.Zodiac,
		"house_system", a.Cfg.Engine.HouseSystem,
	)

	deps, err := a.initDependencies()
	if err != nil {
		return fmt.Errorf("failed to init dependencies: %w", err)
	}

	return a.runServices(ctx, deps)
}
