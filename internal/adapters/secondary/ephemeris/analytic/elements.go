package analytic

import (
	"math"

	"github.com/admin/astro/kundali-engine/internal/astro/coord"
	"github.com/admin/astro/kundali-engine/internal/astro/julian"
	"github.com/admin/astro/kundali-engine/internal/domain"
)

// elements средние кеплеровы элементы J2000 и их скорости за столетие
// (Standish, JPL, "Keplerian Elements for Approximate Positions", 1800-2050)
type elements struct {
	a, aDot       float64 // а.е.
	e, eDot       float64
	i, iDot       float64 // градусы
	l, lDot       float64 // средняя долгота
	peri, periDot float64 // долгота перигелия
	node, nodeDot float64 // долгота восходящего узла
}

var (
	earthMoonBarycenter = elements{
		1.00000261, 0.00000562, 0.01671123, -0.00004392, -0.00001531, -0.01294668,
		100.46457166, 35999.37244981, 102.93768193, 0.32327364, 0, 0,
	}

	planetElements = map[domain.Body]elements{
		domain.BodyMercury: {
			0.38709927, 0.00000037, 0.20563593, 0.00001906, 7.00497902, -0.00594749,
			252.25032350, 149472.67411175, 77.45779628, 0.16047689, 48.33076593, -0.12534081,
		},
		domain.BodyVenus: {
			0.72333566, 0.00000390, 0.00677672, -0.00004107, 3.39467605, -0.00078890,
			181.97909950, 58517.81538729, 131.60246718, 0.00268329, 76.67984255, -0.27769418,
		},
		domain.BodyMars: {
			1.52371034, 0.00001847, 0.09339410, 0.00007882, 1.84969142, -0.00813131,
			-4.55343205, 19140.30268499, -23.94362959, 0.44441088, 49.55953891, -0.29257343,
		},
		domain.BodyJupiter: {
			5.20288700, -0.00011607, 0.04838624, -0.00013253, 1.30439695, -0.00183714,
			34.39644051, 3034.74612775, 14.72847983, 0.21252668, 100.47390909, 0.20469106,
		},
		domain.BodySaturn: {
			9.53667594, -0.00125060, 0.05386179, -0.00050991, 2.48599187, 0.00193609,
			49.95424423, 1222.49362201, 92.59887831, -0.41897216, 113.66242448, -0.28867794,
		},
	}
)

const rad = math.Pi / 180

// heliocentric гелиоцентрический вектор в эклиптике J2000
func (el elements) heliocentric(jde float64) coord.Vec3 {
	t := julian.CenturiesSinceJ2000(jde)
	a := el.a + el.aDot*t
	e := el.e + el.eDot*t
	inc := (el.i + el.iDot*t) * rad
	l := el.l + el.lDot*t
	peri := el.peri + el.periDot*t
	node := (el.node + el.nodeDot*t) * rad

	m := math.Mod(l-peri, 360) * rad
	omega := peri*rad - node
	ecc := solveKepler(m, e)

	xp := a * (math.Cos(ecc) - e)
	yp := a * math.Sqrt(1-e*e) * math.Sin(ecc)

	cw, sw := math.Cos(omega), math.Sin(omega)
	cn, sn := math.Cos(node), math.Sin(node)
	ci, si := math.Cos(inc), math.Sin(inc)

	return coord.Vec3{
		X: (cw*cn-sw*sn*ci)*xp + (-sw*cn-cw*sn*ci)*yp,
		Y: (cw*sn+sw*cn*ci)*xp + (-sw*sn+cw*cn*ci)*yp,
		Z: (sw*si)*xp + (cw*si)*yp,
	}
}

// solveKepler E - e*sin(E) = M, Ньютон
func solveKepler(m, e float64) float64 {
	ecc := m + e*math.Sin(m)
	for range 30 {
		d := (m - (ecc - e*math.Sin(ecc))) / (1 - e*math.Cos(ecc))
		ecc += d
		if math.Abs(d) < 1e-12 {
			break
		}
	}
	return ecc
}

// geocentricJ2000 геоцентрическая долгота J2000 с поправкой за время распространения света
func geocentricJ2000(el elements, jde float64) float64 {
	earth := earthMoonBarycenter.heliocentric(jde)
	tau := 0.0
	var rel coord.Vec3
	for range 3 {
		rel = el.heliocentric(jde - tau).Sub(earth)
		tau = rel.Len() / coord.LightAUPerDay
	}
	return rel.Longitude()
}
