// Package julian переводит гражданское время рождения в юлианские даты.
package julian

import (
	"time"

	mjulian "github.com/soniakeys/meeus/v3/julian"

	"github.com/admin/astro/kundali-engine/internal/domain"
)

// J2000 юлианская дата эпохи J2000.0 (TT)
const J2000 = 2451545.0

const secondsPerDay = 86400.0

// FromBirthMoment возвращает JD(UT) и JDE(TT) для момента рождения.
// Диапазоны полей не проверяются: переполнение часов и дней переходит
// в дробную часть дня так же, как в календарной арифметике.
func FromBirthMoment(b domain.BirthMoment) domain.Epoch {
	jd := UTToJD(b.Year, b.Month, float64(b.Day)+(b.LocalHours()-b.UTCOffsetHours)/24)
	return domain.Epoch{JD: jd, JDE: jd + DeltaT(decimalYear(b.Year, b.Month))/secondsPerDay}
}

// ToJulianDay юлианская дата (TT) момента рождения
func ToJulianDay(b domain.BirthMoment) float64 {
	return FromBirthMoment(b).JDE
}

// UTToJD пролептический григорианский календарь -> JD, день с дробной частью.
// Дробная часть может быть отрицательной или больше месяца.
func UTToJD(year, month int, day float64) float64 {
	return mjulian.CalendarGregorianToJD(year, month, day)
}

// FromJD эпоха для уже посчитанной JD(UT)
func FromJD(jd float64) domain.Epoch {
	year, month, _ := mjulian.JDToCalendar(jd)
	return domain.Epoch{JD: jd, JDE: jd + DeltaT(decimalYear(year, month))/secondsPerDay}
}

// FromTime эпоха для момента времени (текущие позиции, проверки готовности)
func FromTime(t time.Time) domain.Epoch {
	u := t.UTC()
	seconds := float64(u.Hour())*3600 + float64(u.Minute())*60 + float64(u.Second()) + float64(u.Nanosecond())/1e9
	jd := UTToJD(u.Year(), int(u.Month()), float64(u.Day())+seconds/secondsPerDay)
	return domain.Epoch{JD: jd, JDE: jd + DeltaT(decimalYear(u.Year(), int(u.Month())))/secondsPerDay}
}

// CenturiesSinceJ2000 юлианские столетия от J2000.0
func CenturiesSinceJ2000(jde float64) float64 {
	return (jde - J2000) / 36525
}

func decimalYear(year, month int) float64 {
	return float64(year) + (float64(month)-0.5)/12
}
