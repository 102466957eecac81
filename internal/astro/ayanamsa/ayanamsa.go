// Package ayanamsa считает поправку сидерического зодиака.
package ayanamsa

import "github.com/admin/astro/kundali-engine/internal/astro/julian"

// значение Лахири на J2000.0 и общая прецессия по долготе ("/столетие)
const (
	lahiriAtJ2000 = 23.857092
	precessionT1  = 5028.796195
	precessionT2  = 1.1054348
)

// Lahiri айанамша Лахири (Читрапакша) в градусах на JDE
func Lahiri(jde float64) float64 {
	t := julian.CenturiesSinceJ2000(jde)
	return lahiriAtJ2000 + (precessionT1*t+precessionT2*t*t)/3600
}
