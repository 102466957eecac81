package domain

import (
	"fmt"
	"time"
)

// DashaPeriod период управления планеты (махадаша или антардаша)
type DashaPeriod struct {
	Lord        Planet        `json:"lord"`
	Start       time.Time     `json:"start"`
	End         time.Time     `json:"end"`
	Years       float64       `json:"years"`
	Partial     bool          `json:"partial"`
	Antardashas []DashaPeriod `json:"antardashas,omitempty"`
}

// Contains попадает ли момент в период [Start, End)
func (p DashaPeriod) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// PlacedPlanet планета с долготой и производными позициями
type PlacedPlanet struct {
	PlanetLongitude
	Position ChartPosition `json:"position"`
	Benefic  bool          `json:"benefic"`
}

// Ascendant лагна
type Ascendant struct {
	Longitude float64       `json:"longitude"`
	Position  ChartPosition `json:"position"`
}

// House дом карты: знак и планеты в нём
type House struct {
	Number  int      `json:"number"`
	Rashi   Rashi    `json:"rashi"`
	Planets []Planet `json:"planets"`
}

// VargaChart раскладка грах по 12 домам от своей лагны: дом = знак от лагны
type VargaChart struct {
	Lagna  Rashi   `json:"lagna"`
	Houses []House `json:"houses"`
}

// Vargas карты от разных лагн: D1 от асцендента, чандра-лагна от Луны,
// D9 и D10 от навамши и дашамши асцендента
type Vargas struct {
	D1      VargaChart `json:"d1"`
	Chandra VargaChart `json:"chandra"`
	D9      VargaChart `json:"d9"`
	D10     VargaChart `json:"d10"`
}

// Chart корневой агрегат расчёта. Своей идентичности не имеет.
type Chart struct {
	Birth       BirthMoment    `json:"birth"`
	BirthUTC    time.Time      `json:"birth_utc"`
	Location    GeoCoordinate  `json:"location"`
	Epoch       Epoch          `json:"epoch"`
	Zodiac      ZodiacType     `json:"zodiac"`
	HouseSystem HouseSystem    `json:"house_system"`
	Ayanamsa    float64        `json:"ayanamsa"`
	Ephemeris   string         `json:"ephemeris"`
	Ascendant   Ascendant      `json:"ascendant"`
	Planets     []PlacedPlanet `json:"planets"`
	Houses      []House        `json:"houses"`
	Charts      Vargas         `json:"charts"`
	Dashas      []DashaPeriod  `json:"dashas"`
}

// Planet ищет планету в карте
func (c *Chart) Planet(p Planet) (PlacedPlanet, bool) {
	for _, placed := range c.Planets {
		if placed.Planet == p {
			return placed, true
		}
	}
	return PlacedPlanet{}, false
}

// CurrentDasha махадаша, идущая в момент t
func (c *Chart) CurrentDasha(t time.Time) (DashaPeriod, bool) {
	for _, period := range c.Dashas {
		if period.Contains(t) {
			return period, true
		}
	}
	return DashaPeriod{}, false
}

// ChartRequest входные данные для расчёта
type ChartRequest struct {
	Birth       BirthMoment   `json:"birth"`
	Location    GeoCoordinate `json:"location"`
	Zodiac      ZodiacType    `json:"zodiac,omitempty"`
	HouseSystem HouseSystem   `json:"house_system,omitempty"`
	// DashaYears горизонт таймлайна в годах от рождения (0 - по умолчанию)
	DashaYears float64 `json:"dasha_years,omitempty"`
	// WithAntardashas считать под-периоды
	WithAntardashas bool `json:"with_antardashas,omitempty"`
}

// Validate проверяет входные данные
func (r ChartRequest) Validate() error {
	if err := r.Birth.Validate(); err != nil {
		return err
	}
	if err := r.Location.Validate(); err != nil {
		return err
	}
	if r.Zodiac != "" && !r.Zodiac.IsValid() {
		return fmt.Errorf("%w: zodiac %q", ErrInvalidOption, r.Zodiac)
	}
	if r.HouseSystem != "" && !r.HouseSystem.IsValid() {
		return fmt.Errorf("%w: house system %q", ErrInvalidOption, r.HouseSystem)
	}
	if r.DashaYears < 0 || r.DashaYears > 1000 {
		return fmt.Errorf("%w: dasha years %v", ErrInvalidOption, r.DashaYears)
	}
	return nil
}
