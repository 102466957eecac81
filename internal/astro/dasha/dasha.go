// Package dasha строит таймлайн вимшоттари-даш от долготы Луны.
package dasha

import (
	"iter"
	"math"
	"time"

	"github.com/admin/astro/kundali-engine/internal/astro/zodiac"
	"github.com/admin/astro/kundali-engine/internal/domain"
)

const (
	// CycleYears полный цикл вимшоттари
	CycleYears = 120.0
	// DaysPerYear средний григорианский год
	DaysPerYear = 365.2425
	// DefaultHorizonYears горизонт таймлайна по умолчанию
	DefaultHorizonYears = CycleYears

	nanosPerYear = DaysPerYear * 24 * 3600 * 1e9
)

var years = map[domain.Planet]float64{
	domain.Ketu:    7,
	domain.Venus:   20,
	domain.Sun:     6,
	domain.Moon:    10,
	domain.Mars:    7,
	domain.Rahu:    18,
	domain.Jupiter: 16,
	domain.Saturn:  19,
	domain.Mercury: 17,
}

// Years длительность полной махадаши планеты
func Years(p domain.Planet) float64 {
	return years[p]
}

// Duration годы -> time.Duration
func Duration(y float64) time.Duration {
	return time.Duration(math.Round(y * nanosPerYear))
}

// Horizon ограничение таймлайна
type Horizon struct {
	// Years периоды, начавшиеся до рождения + Years (0 - DefaultHorizonYears)
	Years float64
	// MaxPeriods не больше стольких махадаш (0 - без ограничения)
	MaxPeriods int
}

// Start управитель первой махадаши и пройденная доля накшатры Луны
func Start(moonLon float64) (domain.Planet, float64, error) {
	lon, err := zodiac.Normalize(moonLon)
	if err != nil {
		return "", 0, err
	}
	n := zodiac.Nakshatra(lon)
	return n.Lord, n.Fraction, nil
}

// Periods ленивая бесконечная последовательность махадаш от момента рождения.
// Первая махадаша всегда помечена неполной: (1 - доля) * годы, даже при доле 0.
// Каждая следующая начинается ровно там, где закончилась предыдущая.
func Periods(birth time.Time, moonLon float64) (iter.Seq[domain.DashaPeriod], error) {
	lord, fraction, err := Start(moonLon)
	if err != nil {
		return nil, err
	}

	order := domain.VimshottariOrder()
	first := domain.VimshottariIndex(lord)

	return func(yield func(domain.DashaPeriod) bool) {
		cursor := birth
		span := Years(lord) * (1 - fraction)
		partial := true

		for i := first; ; i++ {
			current := order[i%len(order)]
			end := cursor.Add(Duration(span))
			if !yield(domain.DashaPeriod{Lord: current, Start: cursor, End: end, Years: span, Partial: partial}) {
				return
			}
			cursor = end
			span = Years(order[(i+1)%len(order)])
			partial = false
		}
	}, nil
}

// Timeline махадаши, начавшиеся до горизонта.
// Горизонт сравнивается в годах от рождения: time.Duration переполняется после ~292 лет.
func Timeline(birth time.Time, moonLon float64, h Horizon) ([]domain.DashaPeriod, error) {
	seq, err := Periods(birth, moonLon)
	if err != nil {
		return nil, err
	}

	horizonYears := h.Years
	if horizonYears <= 0 {
		horizonYears = DefaultHorizonYears
	}
	var (
		out     []domain.DashaPeriod
		elapsed float64
	)
	for p := range seq {
		if elapsed >= horizonYears {
			break
		}
		out = append(out, p)
		elapsed += p.Years
		if h.MaxPeriods > 0 && len(out) >= h.MaxPeriods {
			break
		}
	}
	return out, nil
}

// Antardashas под-периоды махадаши: годы_MD * годы_AD / 120, начиная с управителя MD.
// Для неполной махадаши под-периоды строятся от её теоретического начала и обрезаются по рождению.
func Antardashas(md domain.DashaPeriod) []domain.DashaPeriod {
	full := Years(md.Lord)
	idx := domain.VimshottariIndex(md.Lord)
	if full == 0 || idx < 0 {
		return nil
	}

	order := domain.VimshottariOrder()
	cursor := md.End.Add(-Duration(full))
	elapsed := 0.0

	out := make([]domain.DashaPeriod, 0, len(order))
	for j := range len(order) {
		lord := order[(idx+j)%len(order)]
		span := full * Years(lord) / CycleYears
		elapsed += span

		end := md.End.Add(-Duration(full - elapsed))
		if j == len(order)-1 {
			end = md.End
		}

		if end.After(md.Start) {
			sub := domain.DashaPeriod{Lord: lord, Start: cursor, End: end, Years: span}
			if cursor.Before(md.Start) {
				sub.Start = md.Start
				sub.Years = float64(end.Sub(md.Start)) / nanosPerYear
				sub.Partial = true
			}
			out = append(out, sub)
		}
		cursor = end
	}
	return out
}

// WithAntardashas заполняет под-периоды у каждой махадаши
func WithAntardashas(periods []domain.DashaPeriod) []domain.DashaPeriod {
	out := make([]domain.DashaPeriod, len(periods))
	for i, p := range periods {
		p.Antardashas = Antardashas(p)
		out[i] = p
	}
	return out
}
