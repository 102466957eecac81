package kundali

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/admin/astro/kundali-engine/internal/astro/ascendant"
	"github.com/admin/astro/kundali-engine/internal/astro/dasha"
	"github.com/admin/astro/kundali-engine/internal/astro/julian"
	"github.com/admin/astro/kundali-engine/internal/astro/zodiac"
	"github.com/admin/astro/kundali-engine/internal/domain"
)

const opChart = "chart"

// Calculate строит карту: эпоха, долготы, лагна, позиции, дома, даши.
// Любая ошибка прерывает расчёт, частичной карты не бывает.
func (s *Service) Calculate(ctx context.Context, req domain.ChartRequest) (*domain.Chart, error) {
	started := time.Now()
	req = s.withDefaults(req)

	if err := req.Validate(); err != nil {
		s.Metrics.RecordError(opChart, "validation")
		return nil, err
	}

	key, err := chartKey(req, s.Ephemeris.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to build cache key: %w", err)
	}

	var cached domain.Chart
	if s.loadCached(ctx, key, &cached) {
		return &cached, nil
	}

	chart, err := s.assemble(req)
	if err != nil {
		kind := errorKind(err)
		s.Metrics.RecordError(opChart, kind)
		s.Log.Warn("chart calculation failed",
			"birth", req.Birth.String(),
			"latitude", req.Location.Latitude,
			"longitude", req.Location.Longitude,
			"kind", kind,
			"error", err,
		)
		return nil, domain.WrapBusinessError(err)
	}

	s.storeCached(ctx, key, chart, s.Cfg.CacheTTL)

	s.Metrics.RecordCalculation(opChart, chart.Ephemeris)
	s.Metrics.RecordLatency(opChart, time.Since(started))
	s.Log.Debug("chart calculated",
		"birth", req.Birth.String(),
		"ascendant", chart.Ascendant.Longitude,
		"duration", time.Since(started),
	)

	return chart, nil
}

// Dasha таймлайн махадаш с антардашами для момента рождения
func (s *Service) Dasha(ctx context.Context, req domain.ChartRequest) ([]domain.DashaPeriod, error) {
	req.WithAntardashas = true
	chart, err := s.Calculate(ctx, req)
	if err != nil {
		return nil, err
	}
	return chart.Dashas, nil
}

func (s *Service) withDefaults(req domain.ChartRequest) domain.ChartRequest {
	if req.Zodiac == "" {
		req.Zodiac = s.Cfg.Zodiac
	}
	if req.HouseSystem == "" {
		req.HouseSystem = s.Cfg.HouseSystem
	}
	if req.DashaYears <= 0 {
		req.DashaYears = s.Cfg.DashaYears
	}
	return req
}

func (s *Service) assemble(req domain.ChartRequest) (*domain.Chart, error) {
	epoch := julian.FromBirthMoment(req.Birth)

	longitudes, aya, err := s.Ephemeris.LongitudesAt(epoch, req.Zodiac)
	if err != nil {
		return nil, fmt.Errorf("failed to get longitudes: %w", err)
	}

	asc, ascPos, err := ascendantAt(epoch, req.Location, aya, req.HouseSystem)
	if err != nil {
		return nil, err
	}

	placed, err := place(longitudes, asc, req.HouseSystem)
	if err != nil {
		return nil, err
	}

	birthUTC := req.Birth.UTC()
	moon := longitudeOf(longitudes, domain.Moon)
	periods, err := dasha.Timeline(birthUTC, moon, dasha.Horizon{Years: req.DashaYears, MaxPeriods: s.Cfg.MaxDashaPeriods})
	if err != nil {
		return nil, fmt.Errorf("failed to build dasha timeline: %w", err)
	}
	if req.WithAntardashas {
		periods = dasha.WithAntardashas(periods)
	}

	chartHouses := houses(asc, placed, req.HouseSystem)

	return &domain.Chart{
		Birth:       req.Birth,
		BirthUTC:    birthUTC,
		Location:    req.Location,
		Epoch:       epoch,
		Zodiac:      req.Zodiac,
		HouseSystem: req.HouseSystem,
		Ayanamsa:    aya,
		Ephemeris:   s.Ephemeris.Name(),
		Ascendant:   domain.Ascendant{Longitude: asc, Position: ascPos},
		Planets:     placed,
		Houses:      chartHouses,
		Charts:      vargas(ascPos, chartHouses, placed),
		Dashas:      periods,
	}, nil
}

func ascendantAt(epoch domain.Epoch, geo domain.GeoCoordinate, aya float64, system domain.HouseSystem) (float64, domain.ChartPosition, error) {
	asc, err := ascendant.Longitude(epoch, geo, aya)
	if err != nil {
		return 0, domain.ChartPosition{}, fmt.Errorf("failed to calculate ascendant: %w", err)
	}
	pos, err := zodiac.Classify(asc, asc, system)
	if err != nil {
		return 0, domain.ChartPosition{}, fmt.Errorf("failed to classify ascendant: %w", err)
	}
	return asc, pos, nil
}

func place(longitudes []domain.PlanetLongitude, asc float64, system domain.HouseSystem) ([]domain.PlacedPlanet, error) {
	placed := make([]domain.PlacedPlanet, 0, len(longitudes))
	for _, pl := range longitudes {
		pos, err := zodiac.Classify(pl.Longitude, asc, system)
		if err != nil {
			return nil, fmt.Errorf("failed to classify %s: %w", pl.Planet, err)
		}
		placed = append(placed, domain.PlacedPlanet{
			PlanetLongitude: pl,
			Position:        pos,
			Benefic:         pl.Planet.IsBenefic(),
		})
	}
	return placed, nil
}

// houses 12 домов со знаком на куспиде и планетами внутри
func houses(asc float64, placed []domain.PlacedPlanet, system domain.HouseSystem) []domain.House {
	ascSign, _ := zodiac.Rashi(asc)

	out := make([]domain.House, 12)
	for i := range out {
		sign := ascSign.Add(i)
		if system == domain.HouseEqual {
			cusp, _ := zodiac.Normalize(asc + float64(i)*zodiac.SignSpan)
			sign, _ = zodiac.Rashi(cusp)
		}
		out[i] = domain.House{Number: i + 1, Rashi: sign, Planets: []domain.Planet{}}
	}
	for _, p := range placed {
		h := p.Position.House - 1
		out[h].Planets = append(out[h].Planets, p.Planet)
	}
	return out
}

func longitudeOf(longitudes []domain.PlanetLongitude, p domain.Planet) float64 {
	for _, pl := range longitudes {
		if pl.Planet == p {
			return pl.Longitude
		}
	}
	return 0
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrEphemerisUnavailable):
		return "ephemeris_unavailable"
	case errors.Is(err, domain.ErrAscendantUndefined):
		return "ascendant_undefined"
	case errors.Is(err, domain.ErrInvalidLongitude):
		return "invalid_longitude"
	case domain.IsValidationError(err):
		return "validation"
	default:
		return "internal"
	}
}
