package kundali

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/admin/astro/kundali-engine/internal/astro/julian"
	"github.com/admin/astro/kundali-engine/internal/domain"
)

// CurrentPositions положения грах на сейчас, из кэша или свежим расчётом
func (s *Service) CurrentPositions(ctx context.Context) (*domain.PositionsSnapshot, error) {
	var cached domain.PositionsSnapshot
	if s.loadCached(ctx, positionsKey, &cached) {
		return &cached, nil
	}

	snapshot, err := s.PositionsAt(s.now())
	if err != nil {
		return nil, err
	}
	s.storeCached(ctx, positionsKey, snapshot, s.Cfg.PositionsTTL)
	return snapshot, nil
}

// UpdateCachedPositions пересчитывает текущие позиции и кладёт их в кэш
func (s *Service) UpdateCachedPositions(ctx context.Context, at time.Time) error {
	if s.Cache == nil {
		s.Log.Warn("cache is not configured, skipping positions update")
		return nil
	}

	snapshot, err := s.PositionsAt(at)
	if err != nil {
		return fmt.Errorf("failed to calculate positions: %w", err)
	}

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode positions: %w", err)
	}
	if err := s.Cache.Set(ctx, positionsKey, string(raw), s.Cfg.PositionsTTL); err != nil {
		return fmt.Errorf("failed to cache positions: %w", err)
	}

	s.Log.Info("positions updated", "at", at.UTC().Format(time.RFC3339))
	return nil
}

// PositionsAt сидерические позиции и лагна опорного места на момент at
func (s *Service) PositionsAt(at time.Time) (*domain.PositionsSnapshot, error) {
	utc := at.UTC()
	birth := domain.BirthMoment{
		Year: utc.Year(), Month: int(utc.Month()), Day: utc.Day(),
		Hour: utc.Hour(), Minute: utc.Minute(), Second: utc.Second(),
	}
	geo := domain.GeoCoordinate{Latitude: s.Cfg.ReferenceLatitude, Longitude: s.Cfg.ReferenceLongitude}

	epoch := julian.FromBirthMoment(birth)
	longitudes, aya, err := s.Ephemeris.LongitudesAt(epoch, s.Cfg.Zodiac)
	if err != nil {
		s.Metrics.RecordError("positions", errorKind(err))
		return nil, domain.WrapBusinessError(fmt.Errorf("failed to get longitudes: %w", err))
	}

	asc, ascPos, err := ascendantAt(epoch, geo, aya, s.Cfg.HouseSystem)
	if err != nil {
		s.Metrics.RecordError("positions", errorKind(err))
		return nil, domain.WrapBusinessError(err)
	}

	placed, err := place(longitudes, asc, s.Cfg.HouseSystem)
	if err != nil {
		return nil, domain.WrapBusinessError(err)
	}

	s.Metrics.RecordCalculation("positions", s.Ephemeris.Name())
	return &domain.PositionsSnapshot{
		At:        utc,
		Epoch:     epoch,
		Ayanamsa:  aya,
		Ephemeris: s.Ephemeris.Name(),
		Location:  geo,
		Ascendant: domain.Ascendant{Longitude: asc, Position: ascPos},
		Planets:   placed,
	}, nil
}
