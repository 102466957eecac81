// Package zodiac выводит знак, накшатру, паду, дом и варги из долготы.
//
// Функции, кроме Normalize и Classify, ожидают нормализованную долготу [0,360).
package zodiac

import (
	"fmt"
	"math"

	"github.com/admin/astro/kundali-engine/internal/domain"
)

const (
	// SignSpan ширина знака
	SignSpan = 30.0
	// NakshatraSpan ширина накшатры, 13°20'
	NakshatraSpan = 360.0 / 27
	// PadaSpan ширина пады, 3°20'
	PadaSpan = 360.0 / 108
	// NavamsaSpan доля знака в D9
	NavamsaSpan = SignSpan / 9
	// DashamsaSpan доля знака в D10
	DashamsaSpan = SignSpan / 10
)

// Normalize приводит угол к [0,360). NaN и Inf дают ErrInvalidLongitude.
func Normalize(lon float64) (float64, error) {
	if math.IsNaN(lon) || math.IsInf(lon, 0) {
		return 0, fmt.Errorf("%w: %v", domain.ErrInvalidLongitude, lon)
	}
	n := math.Mod(lon, 360)
	if n < 0 {
		n += 360
	}
	if n >= 360 {
		n = 0
	}
	return n, nil
}

// Rashi знак и градус внутри знака
func Rashi(lon float64) (domain.Rashi, float64) {
	idx := clamp(int(math.Floor(lon/SignSpan)), 11)
	return domain.Rashi(idx), lon - float64(idx)*SignSpan
}

// Nakshatra накшатра, пада и пройденная доля накшатры
func Nakshatra(lon float64) domain.Nakshatra {
	idx := clamp(int(math.Floor(lon/NakshatraSpan)), 26)
	within := lon - float64(idx)*NakshatraSpan
	pada := clamp(int(math.Floor(within/PadaSpan)), 3) + 1

	fraction := within / NakshatraSpan
	if fraction < 0 {
		fraction = 0
	}
	if fraction >= 1 {
		fraction = math.Nextafter(1, 0)
	}

	return domain.Nakshatra{
		Index:    idx,
		Name:     domain.NakshatraName(idx),
		Lord:     domain.NakshatraLord(idx),
		Pada:     pada,
		Fraction: fraction,
	}
}

// Navamsa знак в D9: (знак*9 + часть) mod 12
func Navamsa(lon float64) domain.Rashi {
	sign, deg := Rashi(lon)
	part := clamp(int(math.Floor(deg/NavamsaSpan)), 8)
	return domain.Rashi((int(sign)*9 + part) % 12)
}

// Dashamsa знак в D10. Отсчёт: подвижные знаки от себя, фиксированные от 9-го, двойственные от 5-го.
func Dashamsa(lon float64) domain.Rashi {
	sign, deg := Rashi(lon)
	part := clamp(int(math.Floor(deg/DashamsaSpan)), 9)

	var start domain.Rashi
	switch int(sign) % 3 {
	case 0: // подвижные
		start = sign
	case 1: // фиксированные
		start = sign.Add(8)
	default: // двойственные
		start = sign.Add(4)
	}
	return start.Add(part)
}

// House номер дома 1..12 для долготы относительно асцендента
func House(lon, asc float64, system domain.HouseSystem) int {
	if system == domain.HouseEqual {
		diff := math.Mod(lon-asc+360, 360)
		return clamp(int(math.Floor(diff/SignSpan)), 11) + 1
	}
	sign, _ := Rashi(lon)
	ascSign, _ := Rashi(asc)
	return (int(sign)-int(ascSign)+12)%12 + 1
}

// Classify все производные позиции долготы
func Classify(lon, asc float64, system domain.HouseSystem) (domain.ChartPosition, error) {
	n, err := Normalize(lon)
	if err != nil {
		return domain.ChartPosition{}, err
	}
	a, err := Normalize(asc)
	if err != nil {
		return domain.ChartPosition{}, fmt.Errorf("ascendant: %w", err)
	}

	sign, deg := Rashi(n)
	return domain.ChartPosition{
		Rashi:        sign,
		DegreeInSign: deg,
		Nakshatra:    Nakshatra(n),
		House:        House(n, a, system),
		Navamsa:      Navamsa(n),
		Dashamsa:     Dashamsa(n),
	}, nil
}

func clamp(v, hi int) int {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}
