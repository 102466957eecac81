package kundali

import "github.com/admin/astro/kundali-engine/internal/domain"

// vargas D1 повторяет дома карты, остальные считаются целыми знаками от своей лагны
func vargas(asc domain.ChartPosition, d1 []domain.House, placed []domain.PlacedPlanet) domain.Vargas {
	lagna := asc.Rashi
	if moon, ok := findPlaced(placed, domain.Moon); ok {
		lagna = moon.Position.Rashi
	}

	return domain.Vargas{
		D1: domain.VargaChart{Lagna: asc.Rashi, Houses: d1},
		Chandra: signChart(lagna, placed, func(p domain.PlacedPlanet) domain.Rashi {
			return p.Position.Rashi
		}),
		D9: signChart(asc.Navamsa, placed, func(p domain.PlacedPlanet) domain.Rashi {
			return p.Position.Navamsa
		}),
		D10: signChart(asc.Dashamsa, placed, func(p domain.PlacedPlanet) domain.Rashi {
			return p.Position.Dashamsa
		}),
	}
}

// signChart дом грахи = (знак - лагна + 12) % 12 + 1
func signChart(lagna domain.Rashi, placed []domain.PlacedPlanet, signOf func(domain.PlacedPlanet) domain.Rashi) domain.VargaChart {
	out := make([]domain.House, 12)
	for i := range out {
		out[i] = domain.House{Number: i + 1, Rashi: lagna.Add(i), Planets: []domain.Planet{}}
	}
	for _, p := range placed {
		h := (int(signOf(p))-int(lagna)+12)%12 + 1
		out[h-1].Planets = append(out[h-1].Planets, p.Planet)
	}
	return domain.VargaChart{Lagna: lagna, Houses: out}
}

func findPlaced(placed []domain.PlacedPlanet, planet domain.Planet) (domain.PlacedPlanet, bool) {
	for _, p := range placed {
		if p.Planet == planet {
			return p, true
		}
	}
	return domain.PlacedPlanet{}, false
}
