package service

import "github.com/admin/astro/kundali-engine/internal/domain"

// IEphemerisService долготы всех грах карты на эпоху
type IEphemerisService interface {
	// LongitudesAt долготы в порядке domain.Planets() и айанамша (0 для тропического зодиака)
	LongitudesAt(epoch domain.Epoch, zodiac domain.ZodiacType) ([]domain.PlanetLongitude, float64, error)
	// Covers попадает ли JDE в диапазон эфемериды
	Covers(jde float64) bool
	Name() string
}
