package kundali

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/admin/astro/kundali-engine/internal/adapters/secondary/ephemeris/analytic"
	"github.com/admin/astro/kundali-engine/internal/adapters/secondary/storage/inmemory"
	"github.com/admin/astro/kundali-engine/internal/astro/coord"
	"github.com/admin/astro/kundali-engine/internal/domain"
	"github.com/admin/astro/kundali-engine/internal/ports/cache"
	ephemerisService "github.com/admin/astro/kundali-engine/internal/services/ephemeris"
)

var ajmerRequest = domain.ChartRequest{
	Birth:    domain.BirthMoment{Year: 2005, Month: 11, Day: 27, Hour: 7, Minute: 30, UTCOffsetHours: 5.5},
	Location: domain.GeoCoordinate{Latitude: 26.4499, Longitude: 74.6399},
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(c cache.Cache) *Service {
	return New(ephemerisService.New(analytic.New()), c, nil, Config{}, discardLogger())
}

func TestCalculateAjmer(t *testing.T) {
	chart, err := newService(nil).Calculate(context.Background(), ajmerRequest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d := math.Abs(chart.Ascendant.Longitude - 226.74); d > 0.1 {
		t.Errorf("ascendant = %.4f, want ~226.74", chart.Ascendant.Longitude)
	}
	if chart.Ascendant.Position.Rashi != domain.Scorpio || chart.Ascendant.Position.House != 1 {
		t.Errorf("ascendant position = %+v", chart.Ascendant.Position)
	}

	want := map[domain.Planet]struct {
		lon   float64
		house int
	}{
		domain.Sun:     {220.99, 1},
		domain.Moon:    {165.78, 11},
		domain.Mercury: {215.33, 1},
		domain.Venus:   {265.47, 2},
		domain.Mars:    {15.44, 6},
		domain.Jupiter: {192.9, 12},
		domain.Saturn:  {107.34, 9},
		domain.Rahu:    {346.9, 5},
		domain.Ketu:    {166.9, 11},
	}
	for planet, w := range want {
		p, ok := chart.Planet(planet)
		if !ok {
			t.Fatalf("%s missing", planet)
		}
		if d := math.Abs(coord.AngularDelta(p.Longitude, w.lon)); d > 0.5 {
			t.Errorf("%s = %.4f, want ~%.2f", planet, p.Longitude, w.lon)
		}
		if p.Position.House != w.house {
			t.Errorf("%s house = %d, want %d", planet, p.Position.House, w.house)
		}
	}

	moon, _ := chart.Planet(domain.Moon)
	if moon.Position.Rashi != domain.Virgo || moon.Position.Nakshatra.Name != "Hasta" {
		t.Errorf("moon position = %+v", moon.Position)
	}
	if len(chart.Dashas) == 0 || chart.Dashas[0].Lord != domain.Moon {
		t.Fatalf("first dasha must be Moon, got %+v", chart.Dashas)
	}
	if !chart.Dashas[0].Start.Equal(ajmerRequest.Birth.UTC()) {
		t.Errorf("first dasha start = %v", chart.Dashas[0].Start)
	}
}

func TestCalculateChartProperties(t *testing.T) {
	chart, err := newService(nil).Calculate(context.Background(), ajmerRequest)
	if err != nil {
		t.Fatal(err)
	}

	if len(chart.Planets) != len(domain.Planets()) {
		t.Fatalf("got %d planets", len(chart.Planets))
	}
	for _, p := range chart.Planets {
		if p.Longitude < 0 || p.Longitude >= 360 {
			t.Errorf("%s longitude %v outside [0,360)", p.Planet, p.Longitude)
		}
		if p.Position.House < 1 || p.Position.House > 12 {
			t.Errorf("%s house %d", p.Planet, p.Position.House)
		}
		if p.Position.Nakshatra.Pada < 1 || p.Position.Nakshatra.Pada > 4 {
			t.Errorf("%s pada %d", p.Planet, p.Position.Nakshatra.Pada)
		}
	}

	rahu, _ := chart.Planet(domain.Rahu)
	ketu, _ := chart.Planet(domain.Ketu)
	if d := math.Abs(coord.AngularDelta(rahu.Longitude, ketu.Longitude)); math.Abs(d-180) > 1e-9 {
		t.Errorf("rahu/ketu are %v apart", d)
	}

	if len(chart.Houses) != 12 {
		t.Fatalf("got %d houses", len(chart.Houses))
	}
	placed := 0
	for i, h := range chart.Houses {
		if h.Number != i+1 {
			t.Errorf("house %d numbered %d", i+1, h.Number)
		}
		placed += len(h.Planets)
	}
	if placed != len(chart.Planets) {
		t.Errorf("houses hold %d planets, want %d", placed, len(chart.Planets))
	}
	if chart.Houses[0].Rashi != chart.Ascendant.Position.Rashi {
		t.Errorf("first house sign %v != ascendant sign %v", chart.Houses[0].Rashi, chart.Ascendant.Position.Rashi)
	}

	for i := 1; i < len(chart.Dashas); i++ {
		if !chart.Dashas[i].Start.Equal(chart.Dashas[i-1].End) {
			t.Errorf("dasha %d is not continuous", i)
		}
	}
}

func TestCalculateDeterministic(t *testing.T) {
	s := newService(nil)
	first, err := s.Calculate(context.Background(), ajmerRequest)
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Calculate(context.Background(), ajmerRequest)
	if err != nil {
		t.Fatal(err)
	}
	if first.Ascendant != second.Ascendant {
		t.Errorf("ascendant differs: %+v vs %+v", first.Ascendant, second.Ascendant)
	}
	for i := range first.Planets {
		if first.Planets[i] != second.Planets[i] {
			t.Errorf("planet %d differs", i)
		}
	}
}

func TestCalculateLongDashaHorizon(t *testing.T) {
	for _, years := range []float64{120, 290, 300, 500, 1000} {
		req := ajmerRequest
		req.DashaYears = years

		chart, err := newService(nil).Calculate(context.Background(), req)
		if err != nil {
			t.Fatalf("dasha_years=%v: %v", years, err)
		}
		if len(chart.Dashas) == 0 {
			t.Fatalf("dasha_years=%v: empty timeline", years)
		}

		covered := 0.0
		for _, p := range chart.Dashas {
			covered += p.Years
		}
		if covered < years {
			t.Errorf("dasha_years=%v: timeline covers only %v years", years, covered)
		}
	}
}

func TestCalculateTropicalEqual(t *testing.T) {
	req := ajmerRequest
	req.Zodiac = domain.ZodiacTropical
	req.HouseSystem = domain.HouseEqual

	chart, err := newService(nil).Calculate(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if chart.Ayanamsa != 0 {
		t.Errorf("ayanamsa = %v, want 0", chart.Ayanamsa)
	}
	sun, _ := chart.Planet(domain.Sun)
	if d := math.Abs(sun.Longitude - 244.92); d > 0.05 {
		t.Errorf("tropical sun = %v, want ~244.92", sun.Longitude)
	}
	if chart.Ascendant.Position.House != 1 {
		t.Errorf("ascendant house = %d", chart.Ascendant.Position.House)
	}
}

func TestCalculateErrors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*domain.ChartRequest)
		want     error
		business bool
	}{
		{"polar latitude", func(r *domain.ChartRequest) { r.Location.Latitude = 89.95 }, domain.ErrAscendantUndefined, true},
		{"out of ephemeris range", func(r *domain.ChartRequest) { r.Birth.Year = 1700 }, domain.ErrEphemerisUnavailable, true},
		{"bad month", func(r *domain.ChartRequest) { r.Birth.Month = 13 }, domain.ErrInvalidBirthMoment, false},
		{"bad coordinates", func(r *domain.ChartRequest) { r.Location.Longitude = 200 }, domain.ErrInvalidCoordinates, false},
		{"bad house system", func(r *domain.ChartRequest) { r.HouseSystem = "placidus" }, domain.ErrInvalidOption, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := ajmerRequest
			tt.mutate(&req)
			chart, err := newService(nil).Calculate(context.Background(), req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if chart != nil {
				t.Error("no partial chart on error")
			}
			if domain.IsBusinessError(err) != tt.business {
				t.Errorf("business error = %v, want %v", domain.IsBusinessError(err), tt.business)
			}
		})
	}
}

type countingCache struct {
	*inmemory.Cache
	gets, sets int
}

func (c *countingCache) Get(ctx context.Context, key string) (string, error) {
	c.gets++
	return c.Cache.Get(ctx, key)
}

func (c *countingCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.sets++
	return c.Cache.Set(ctx, key, value, ttl)
}

func TestCalculateCached(t *testing.T) {
	c := &countingCache{Cache: inmemory.NewCache()}
	s := newService(c)

	first, err := s.Calculate(context.Background(), ajmerRequest)
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Calculate(context.Background(), ajmerRequest)
	if err != nil {
		t.Fatal(err)
	}

	if c.sets != 1 || c.gets != 2 {
		t.Errorf("cache gets=%d sets=%d, want 2 and 1", c.gets, c.sets)
	}
	if second.Ascendant.Longitude != first.Ascendant.Longitude {
		t.Errorf("cached ascendant %v != %v", second.Ascendant.Longitude, first.Ascendant.Longitude)
	}
	if !second.BirthUTC.Equal(first.BirthUTC) || len(second.Dashas) != len(first.Dashas) {
		t.Error("cached chart differs from calculated")
	}
	if second.Ascendant.Position.Rashi != domain.Scorpio {
		t.Errorf("cached rashi = %v", second.Ascendant.Position.Rashi)
	}
}

type brokenCache struct{ inmemory.Cache }

func (b *brokenCache) Get(context.Context, string) (string, error) {
	return "", errors.New("connection refused")
}

func (b *brokenCache) Set(context.Context, string, string, time.Duration) error {
	return errors.New("connection refused")
}

func TestCalculateCacheFailureIgnored(t *testing.T) {
	chart, err := newService(&brokenCache{}).Calculate(context.Background(), ajmerRequest)
	if err != nil || chart == nil {
		t.Fatalf("cache failure must not break calculation: %v", err)
	}
}

func TestDashaWithAntardashas(t *testing.T) {
	periods, err := newService(nil).Dasha(context.Background(), ajmerRequest)
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range periods {
		if len(p.Antardashas) == 0 {
			t.Fatalf("period %d has no antardashas", i)
		}
		if !p.Antardashas[len(p.Antardashas)-1].End.Equal(p.End) {
			t.Errorf("period %d antardashas do not end with it", i)
		}
	}
}

func TestPositionsCached(t *testing.T) {
	c := inmemory.NewCache()
	s := newService(c)
	s.now = func() time.Time { return time.Date(2026, 10, 14, 6, 0, 0, 0, time.UTC) }

	if err := s.UpdateCachedPositions(context.Background(), s.now()); err != nil {
		t.Fatal(err)
	}
	ok, _ := c.Exists(context.Background(), positionsKey)
	if !ok {
		t.Fatal("positions must be cached")
	}

	snapshot, err := s.CurrentPositions(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !snapshot.At.Equal(s.now()) || len(snapshot.Planets) != len(domain.Planets()) {
		t.Errorf("unexpected snapshot: %+v", snapshot)
	}
}

func TestUpdatePositionsWithoutCache(t *testing.T) {
	if err := newService(nil).UpdateCachedPositions(context.Background(), time.Now()); err != nil {
		t.Errorf("err = %v, want nil when cache is disabled", err)
	}
}
