// Package ascendant считает лагну: точку эклиптики, восходящую на востоке.
package ascendant

import (
	"fmt"
	"math"

	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/sidereal"

	"github.com/admin/astro/kundali-engine/internal/astro/zodiac"
	"github.com/admin/astro/kundali-engine/internal/domain"
)

// MaxLatitude выше этой широты (по модулю) асцендент не определён
const MaxLatitude = 89.9

// Longitude сидерическая долгота асцендента: тропическая минус айанамша.
// Для тропического зодиака передаётся ayanamsa = 0.
func Longitude(epoch domain.Epoch, geo domain.GeoCoordinate, ayanamsa float64) (float64, error) {
	tropical, err := Tropical(epoch, geo)
	if err != nil {
		return 0, err
	}
	return zodiac.Normalize(tropical - ayanamsa)
}

// Tropical тропическая долгота асцендента
func Tropical(epoch domain.Epoch, geo domain.GeoCoordinate) (float64, error) {
	if math.IsNaN(geo.Latitude) || math.Abs(geo.Latitude) >= MaxLatitude {
		return 0, fmt.Errorf("%w: latitude %.4f", domain.ErrAscendantUndefined, geo.Latitude)
	}

	theta := LocalSiderealDegrees(epoch.JD, geo.Longitude) * math.Pi / 180
	eps := TrueObliquity(epoch.JDE) * math.Pi / 180
	phi := geo.Latitude * math.Pi / 180

	lambda := math.Atan2(math.Cos(theta), -(math.Sin(theta)*math.Cos(eps) + math.Tan(phi)*math.Sin(eps)))
	deg := lambda * 180 / math.Pi
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0, fmt.Errorf("%w: non-finite result at latitude %.4f", domain.ErrAscendantUndefined, geo.Latitude)
	}

	lon, err := zodiac.Normalize(deg)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrAscendantUndefined, err)
	}
	return lon, nil
}

// LocalSiderealDegrees местное истинное звёздное время в градусах [0,360)
func LocalSiderealDegrees(jd, longitude float64) float64 {
	gast := sidereal.Apparent(jd).Hour()
	lst := math.Mod(gast+longitude/15, 24)
	if lst < 0 {
		lst += 24
	}
	return lst * 15
}

// TrueObliquity истинный наклон эклиптики в градусах
func TrueObliquity(jde float64) float64 {
	_, deltaEps := nutation.Nutation(jde)
	return (nutation.MeanObliquity(jde) + deltaEps).Deg()
}
