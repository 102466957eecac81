package ephemeris

import (
	"fmt"

	"github.com/admin/astro/kundali-engine/internal/astro/ayanamsa"
	"github.com/admin/astro/kundali-engine/internal/astro/zodiac"
	"github.com/admin/astro/kundali-engine/internal/domain"
	"github.com/admin/astro/kundali-engine/internal/ports/ephemeris"
	"github.com/admin/astro/kundali-engine/internal/ports/service"
)

var bodyPlanets = map[domain.Body]domain.Planet{
	domain.BodySun:     domain.Sun,
	domain.BodyMoon:    domain.Moon,
	domain.BodyMercury: domain.Mercury,
	domain.BodyVenus:   domain.Venus,
	domain.BodyMars:    domain.Mars,
	domain.BodyJupiter: domain.Jupiter,
	domain.BodySaturn:  domain.Saturn,
}

// Service реализует IEphemerisService поверх одного бэкенда
type Service struct {
	backend ephemeris.IBackend
}

// New создаёт сервис эфемерид
func New(backend ephemeris.IBackend) service.IEphemerisService {
	return &Service{backend: backend}
}

func (s *Service) Name() string {
	return s.backend.Name()
}

func (s *Service) Covers(jde float64) bool {
	start, end := s.backend.Range()
	return jde >= start && jde <= end
}

// LongitudesAt опрашивает бэкенд по всем телам, останавливается на первой ошибке.
// Раху - средний восходящий узел, Кету - ровно напротив.
func (s *Service) LongitudesAt(epoch domain.Epoch, zodiacType domain.ZodiacType) ([]domain.PlanetLongitude, float64, error) {
	aya := 0.0
	if zodiacType != domain.ZodiacTropical {
		aya = ayanamsa.Lahiri(epoch.JDE)
	}

	byPlanet := make(map[domain.Planet]domain.PlanetLongitude, len(domain.Planets()))
	for _, body := range domain.Bodies() {
		raw, speed, err := s.backend.Longitude(epoch.JDE, body)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to get %s longitude: %w", body, err)
		}
		lon, err := zodiac.Normalize(raw - aya)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", body, err)
		}

		if body == domain.BodyMeanNode {
			ketu, _ := zodiac.Normalize(lon + 180)
			byPlanet[domain.Rahu] = domain.PlanetLongitude{Planet: domain.Rahu, Longitude: lon, Speed: speed, Retrograde: true}
			byPlanet[domain.Ketu] = domain.PlanetLongitude{Planet: domain.Ketu, Longitude: ketu, Speed: speed, Retrograde: true}
			continue
		}

		planet := bodyPlanets[body]
		byPlanet[planet] = domain.PlanetLongitude{Planet: planet, Longitude: lon, Speed: speed, Retrograde: speed < 0}
	}

	out := make([]domain.PlanetLongitude, 0, len(byPlanet))
	for _, p := range domain.Planets() {
		out = append(out, byPlanet[p])
	}
	return out, aya, nil
}
