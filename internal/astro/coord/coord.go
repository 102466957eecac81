// Package coord преобразования систем координат, общие для бэкендов эфемерид.
package coord

import (
	"math"

	"github.com/soniakeys/meeus/v3/nutation"

	"github.com/admin/astro/kundali-engine/internal/astro/julian"
)

const (
	// LightAUPerDay скорость света в а.е./сутки
	LightAUPerDay = 173.1446326846693
	// ObliquityJ2000 наклон эклиптики J2000.0 (IAU 1976), градусы
	ObliquityJ2000 = 23.4392911
)

const deg = math.Pi / 180

// Vec3 декартов вектор в а.е.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Scale(k float64) Vec3 {
	return Vec3{v.X * k, v.Y * k, v.Z * k}
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Longitude эклиптическая долгота вектора, [0,360)
func (v Vec3) Longitude() float64 {
	lon := math.Atan2(v.Y, v.X) / deg
	if lon < 0 {
		lon += 360
	}
	return lon
}

// EquatorialToEcliptic поворот экваториального вектора ICRF/J2000 на наклон J2000
func EquatorialToEcliptic(v Vec3) Vec3 {
	c, s := math.Cos(ObliquityJ2000*deg), math.Sin(ObliquityJ2000*deg)
	return Vec3{
		X: v.X,
		Y: c*v.Y + s*v.Z,
		Z: -s*v.Y + c*v.Z,
	}
}

// GeneralPrecession общая прецессия по долготе от J2000 до даты, градусы
func GeneralPrecession(jde float64) float64 {
	t := julian.CenturiesSinceJ2000(jde)
	return (5029.0966*t + 1.11113*t*t) / 3600
}

// NutationInLongitude Δψ в градусах
func NutationInLongitude(jde float64) float64 {
	dpsi, _ := nutation.Nutation(jde)
	return dpsi.Deg()
}

// ApparentOfDate долгота J2000 -> видимая долгота равноденствия даты
func ApparentOfDate(lonJ2000, jde float64) float64 {
	return Wrap(lonJ2000 + GeneralPrecession(jde) + NutationInLongitude(jde))
}

// Wrap угол в [0,360)
func Wrap(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a = 0
	}
	return a
}

// AngularDelta разность углов b-a в (-180,180]
func AngularDelta(a, b float64) float64 {
	d := math.Mod(b-a, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}
