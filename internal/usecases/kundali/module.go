package kundali

import (
	"log/slog"
	"time"

	"github.com/admin/astro/kundali-engine/internal/astro/dasha"
	"github.com/admin/astro/kundali-engine/internal/domain"
	"github.com/admin/astro/kundali-engine/internal/ports/cache"
	"github.com/admin/astro/kundali-engine/internal/ports/metrics"
	"github.com/admin/astro/kundali-engine/internal/ports/service"
)

// Config настройки расчёта по умолчанию
type Config struct {
	Zodiac          domain.ZodiacType  `envconfig:"ZODIAC" default:"sidereal"`
	HouseSystem     domain.HouseSystem `envconfig:"HOUSE_SYSTEM" default:"whole_sign"`
	DashaYears      float64            `envconfig:"DASHA_YEARS" default:"120"`
	MaxDashaPeriods int                `envconfig:"MAX_DASHA_PERIODS" default:"0"`
	// CacheTTL время жизни карты в кэше
	CacheTTL time.Duration `envconfig:"CACHE_TTL" default:"24h"`
	// PositionsTTL время жизни текущих позиций
	PositionsTTL time.Duration `envconfig:"POSITIONS_TTL" default:"25h"`
	// Reference место, для которого считаются текущие позиции (лагна транзита)
	ReferenceLatitude  float64 `envconfig:"REFERENCE_LATITUDE" default:"28.6139"`
	ReferenceLongitude float64 `envconfig:"REFERENCE_LONGITUDE" default:"77.2090"`
}

// Service бизнес-логика расчёта кундали
type Service struct {
	Ephemeris service.IEphemerisService
	Cache     cache.Cache // может быть nil
	Metrics   metrics.IRecorder
	Cfg       Config
	Log       *slog.Logger

	now func() time.Time
}

// New создаёт сервис расчёта
func New(
	ephemeris service.IEphemerisService,
	chartCache cache.Cache,
	recorder metrics.IRecorder,
	cfg Config,
	log *slog.Logger,
) *Service {
	if recorder == nil {
		recorder = metrics.Noop{}
	}
	if !cfg.Zodiac.IsValid() {
		cfg.Zodiac = domain.ZodiacSidereal
	}
	if !cfg.HouseSystem.IsValid() {
		cfg.HouseSystem = domain.HouseWholeSign
	}
	if cfg.DashaYears <= 0 {
		cfg.DashaYears = dasha.DefaultHorizonYears
	}

	return &Service{
		Ephemeris: ephemeris,
		Cache:     chartCache,
		Metrics:   recorder,
		Cfg:       cfg,
		Log:       log,
		now:       time.Now,
	}
}
