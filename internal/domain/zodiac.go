package domain

import "fmt"

// Rashi знак зодиака, индекс 0 (Овен) .. 11 (Рыбы)
type Rashi int

const (
	Aries Rashi = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var rashiNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// управители знаков
var rashiLords = [12]Planet{Mars, Venus, Mercury, Moon, Sun, Mercury, Venus, Mars, Jupiter, Saturn, Saturn, Jupiter}

func (r Rashi) String() string {
	if r < 0 || int(r) >= len(rashiNames) {
		return fmt.Sprintf("Rashi(%d)", int(r))
	}
	return rashiNames[r]
}

// Lord управитель знака
func (r Rashi) Lord() Planet {
	return rashiLords[((int(r)%12)+12)%12]
}

// Add сдвиг по кругу знаков
func (r Rashi) Add(n int) Rashi {
	return Rashi(((int(r)+n)%12 + 12) % 12)
}

func (r Rashi) MarshalText() ([]byte, error) {
	if r < 0 || int(r) >= len(rashiNames) {
		return nil, fmt.Errorf("invalid rashi index %d", int(r))
	}
	return []byte(rashiNames[r]), nil
}

func (r *Rashi) UnmarshalText(text []byte) error {
	rashi, err := ParseRashi(string(text))
	if err != nil {
		return err
	}
	*r = rashi
	return nil
}

// ParseRashi имя знака -> Rashi
func ParseRashi(name string) (Rashi, error) {
	for i, n := range rashiNames {
		if n == name {
			return Rashi(i), nil
		}
	}
	return 0, fmt.Errorf("unknown rashi %q", name)
}

var nakshatraNames = [27]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
	"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni", "Uttara Phalguni",
	"Hasta", "Chitra", "Swati", "Vishakha", "Anuradha", "Jyeshtha",
	"Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana", "Dhanishta", "Shatabhisha",
	"Purva Bhadrapada", "Uttara Bhadrapada", "Revati",
}

// NakshatraName имя накшатры по индексу 0..26
func NakshatraName(index int) string {
	if index < 0 || index >= len(nakshatraNames) {
		return ""
	}
	return nakshatraNames[index]
}

// NakshatraLord управитель накшатры: цикл вимшоттари по индексу mod 9
func NakshatraLord(index int) Planet {
	return vimshottariOrder[((index%9)+9)%9]
}

// Nakshatra лунная стоянка с положением внутри неё
type Nakshatra struct {
	Index    int     `json:"index"` // 0..26
	Name     string  `json:"name"`
	Lord     Planet  `json:"lord"`
	Pada     int     `json:"pada"`     // 1..4
	Fraction float64 `json:"fraction"` // 0 - только вошла, ->1 - выходит
}

// ChartPosition всё, что выводится из долготы. Не изменяется отдельно от долготы.
type ChartPosition struct {
	Rashi        Rashi     `json:"rashi"`
	DegreeInSign float64   `json:"degree_in_sign"`
	Nakshatra    Nakshatra `json:"nakshatra"`
	House        int       `json:"house"` // 1..12
	Navamsa      Rashi     `json:"navamsa"`  // D9
	Dashamsa     Rashi     `json:"dashamsa"` // D10
}

// ZodiacType система отсчёта долгот
type ZodiacType string

const (
	ZodiacSidereal ZodiacType = "sidereal" // Лахири
	ZodiacTropical ZodiacType = "tropical"
)

func (z ZodiacType) IsValid() bool {
	return z == ZodiacSidereal || z == ZodiacTropical
}

// HouseSystem способ деления на дома
type HouseSystem string

const (
	// HouseWholeSign дом = целый знак, первый дом - знак асцендента
	HouseWholeSign HouseSystem = "whole_sign"
	// HouseEqual дома по 30° от градуса асцендента
	HouseEqual HouseSystem = "equal"
)

func (h HouseSystem) IsValid() bool {
	return h == HouseWholeSign || h == HouseEqual
}
