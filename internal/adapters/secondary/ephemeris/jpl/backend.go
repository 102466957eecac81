// Package jpl эфемерида по бинарным файлам JPL DE через github.com/mshafiee/jpleph.
package jpl

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/mshafiee/jpleph"
	"github.com/soniakeys/meeus/v3/moonposition"

	"github.com/admin/astro/kundali-engine/internal/astro/coord"
	"github.com/admin/astro/kundali-engine/internal/domain"
	"github.com/admin/astro/kundali-engine/internal/ports/ephemeris"
)

const Name = "jpl"

// reader то, что нужно от *jpleph.Ephemeris
type reader interface {
	CalculatePV(et float64, target jpleph.Planet, center jpleph.CenterBody, calcVelocity bool) (jpleph.Position, jpleph.Velocity, error)
	GetEphemerisDouble(valueType jpleph.ValueType) float64
	Close() error
}

var targets = map[domain.Body]jpleph.Planet{
	domain.BodySun:     jpleph.Sun,
	domain.BodyMoon:    jpleph.Moon,
	domain.BodyMercury: jpleph.Mercury,
	domain.BodyVenus:   jpleph.Venus,
	domain.BodyMars:    jpleph.Mars,
	domain.BodyJupiter: jpleph.Jupiter,
	domain.BodySaturn:  jpleph.Saturn,
}

// Backend чтение DE-файла. Ридер держит кэш записей, поэтому доступ под мьютексом.
type Backend struct {
	mu      sync.Mutex
	eph     reader
	startJD float64
	endJD   float64
}

// New открывает DE-файл
func New(cfg Config) (ephemeris.IBackend, error) {
	eph, err := jpleph.NewEphemeris(cfg.Path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open JPL ephemeris %s: %w", cfg.Path, err)
	}
	return newBackend(eph), nil
}

func newBackend(eph reader) *Backend {
	return &Backend{
		eph:     eph,
		startJD: eph.GetEphemerisDouble(jpleph.EphemerisStartJD),
		endJD:   eph.GetEphemerisDouble(jpleph.EphemerisEndJD),
	}
}

func (b *Backend) Name() string {
	return Name
}

func (b *Backend) Range() (float64, float64) {
	return b.startJD, b.endJD
}

// Longitude видимая геоцентрическая долгота даты и скорость из векторов скоростей
func (b *Backend) Longitude(jde float64, body domain.Body) (float64, float64, error) {
	if jde < b.startJD || jde > b.endJD {
		return 0, 0, fmt.Errorf("%w: %s at JDE %.5f outside %.1f..%.1f",
			domain.ErrEphemerisUnavailable, body, jde, b.startJD, b.endJD)
	}

	if body == domain.BodyMeanNode {
		// средний узел аналитический, DE его не содержит
		lon := coord.Wrap(moonposition.Node(jde).Deg())
		next := coord.Wrap(moonposition.Node(jde + 1).Deg())
		return lon, coord.AngularDelta(lon, next), nil
	}

	target, ok := targets[body]
	if !ok {
		return 0, 0, fmt.Errorf("%w: unsupported body %q", domain.ErrEphemerisUnavailable, body)
	}

	b.mu.Lock()
	pos, vel, err := b.geocentric(jde, target)
	b.mu.Unlock()
	if err != nil {
		if errors.Is(err, jpleph.ErrOutsideRange) {
			return 0, 0, fmt.Errorf("%w: %s at JDE %.5f: %w", domain.ErrEphemerisUnavailable, body, jde, err)
		}
		return 0, 0, fmt.Errorf("failed to read %s at JDE %.5f: %w", body, jde, err)
	}

	ecl := coord.EquatorialToEcliptic(pos)
	eclVel := coord.EquatorialToEcliptic(vel)

	lon := coord.ApparentOfDate(ecl.Longitude(), jde)

	// dλ/dt = (x*vy - y*vx) / (x² + y²), рад/сутки
	rate := (ecl.X*eclVel.Y - ecl.Y*eclVel.X) / (ecl.X*ecl.X + ecl.Y*ecl.Y)
	speed := rate*180/math.Pi + coord.GeneralPrecession(jde+1) - coord.GeneralPrecession(jde)

	return lon, speed, nil
}

// geocentric вектор от Земли к телу с учётом времени распространения света, экватор ICRF
func (b *Backend) geocentric(jde float64, target jpleph.Planet) (coord.Vec3, coord.Vec3, error) {
	if target == jpleph.Moon {
		// Луна близко: Земля-центричный вектор напрямую
		p, v, err := b.eph.CalculatePV(jde, target, jpleph.CenterEarth, true)
		if err != nil {
			return coord.Vec3{}, coord.Vec3{}, err
		}
		pos, vel := vec(p, v)
		tau := pos.Len() / coord.LightAUPerDay
		return pos.Sub(vel.Scale(tau)), vel, nil
	}

	ep, ev, err := b.eph.CalculatePV(jde, jpleph.Earth, jpleph.CenterSolarSystemBarycenter, true)
	if err != nil {
		return coord.Vec3{}, coord.Vec3{}, err
	}
	earthPos, earthVel := vec(ep, ev)

	var pos, vel coord.Vec3
	tau := 0.0
	for range 3 {
		p, v, err := b.eph.CalculatePV(jde-tau, target, jpleph.CenterSolarSystemBarycenter, true)
		if err != nil {
			return coord.Vec3{}, coord.Vec3{}, err
		}
		bodyPos, bodyVel := vec(p, v)
		pos = bodyPos.Sub(earthPos)
		vel = bodyVel.Sub(earthVel)
		tau = pos.Len() / coord.LightAUPerDay
	}

	// годичная аберрация, первый порядок
	return pos.Add(earthVel.Scale(tau)), vel, nil
}

func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.eph.Close()
}

func vec(p jpleph.Position, v jpleph.Velocity) (coord.Vec3, coord.Vec3) {
	return coord.Vec3{X: p.X, Y: p.Y, Z: p.Z}, coord.Vec3{X: v.DX, Y: v.DY, Z: v.DZ}
}
