// Package analytic эфемерида на аналитических рядах: Миус для Солнца, Луны и узла,
// кеплеровы элементы JPL для планет. Внешних файлов не требует.
package analytic

import (
	"fmt"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/solar"

	"github.com/admin/astro/kundali-engine/internal/astro/coord"
	"github.com/admin/astro/kundali-engine/internal/domain"
	"github.com/admin/astro/kundali-engine/internal/ports/ephemeris"
)

const (
	Name = "analytic"

	// 1800-01-01 .. 2050-12-31, область применимости элементов
	StartJD = 2378496.5
	EndJD   = 2470172.5

	// полушаг численной производной, сутки
	speedStep = 0.5
)

// Backend аналитическая эфемерида. Без состояния, безопасна для конкурентного использования.
type Backend struct{}

// New создаёт аналитический бэкенд
func New() ephemeris.IBackend {
	return &Backend{}
}

func (b *Backend) Name() string {
	return Name
}

func (b *Backend) Range() (float64, float64) {
	return StartJD, EndJD
}

// Longitude видимая тропическая долгота и скорость тела
func (b *Backend) Longitude(jde float64, body domain.Body) (float64, float64, error) {
	if jde < StartJD || jde > EndJD {
		return 0, 0, fmt.Errorf("%w: %s at JDE %.5f outside %.1f..%.1f",
			domain.ErrEphemerisUnavailable, body, jde, StartJD, EndJD)
	}

	position, err := positionFunc(body)
	if err != nil {
		return 0, 0, err
	}

	lon := position(jde)
	speed := coord.AngularDelta(position(jde-speedStep), position(jde+speedStep)) / (2 * speedStep)
	return lon, speed, nil
}

func (b *Backend) Close() error {
	return nil
}

func positionFunc(body domain.Body) (func(float64) float64, error) {
	switch body {
	case domain.BodySun:
		return sun, nil
	case domain.BodyMoon:
		return moon, nil
	case domain.BodyMeanNode:
		return meanNode, nil
	}

	el, ok := planetElements[body]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported body %q", domain.ErrEphemerisUnavailable, body)
	}
	return func(jde float64) float64 {
		return coord.ApparentOfDate(geocentricJ2000(el, jde), jde)
	}, nil
}

func sun(jde float64) float64 {
	return coord.Wrap(solar.ApparentLongitude(base.J2000Century(jde)).Deg())
}

func moon(jde float64) float64 {
	lon, _, _ := moonposition.Position(jde)
	return coord.Wrap(lon.Deg() + coord.NutationInLongitude(jde))
}

func meanNode(jde float64) float64 {
	return coord.Wrap(moonposition.Node(jde).Deg())
}
