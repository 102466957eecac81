package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// BirthMoment гражданское (локальное) время рождения с явным смещением от UTC
type BirthMoment struct {
	Year           int     `json:"year"`
	Month          int     `json:"month"`
	Day            int     `json:"day"`
	Hour           int     `json:"hour"`
	Minute         int     `json:"minute"`
	Second         int     `json:"second"`
	UTCOffsetHours float64 `json:"utc_offset_hours"` // +5.5 для IST
}

// UTC возвращает момент рождения в UTC.
// Переполнение часов/дней нормализует time.Date.
func (b BirthMoment) UTC() time.Time {
	offset := time.Duration(math.Round(b.UTCOffsetHours * float64(time.Hour)))
	local := time.Date(b.Year, time.Month(b.Month), b.Day, b.Hour, b.Minute, b.Second, 0, time.UTC)
	return local.Add(-offset)
}

// LocalHours время суток в часах (с долями)
func (b BirthMoment) LocalHours() float64 {
	return float64(b.Hour) + float64(b.Minute)/60 + float64(b.Second)/3600
}

// Validate проверяет диапазоны полей. Используется на входе HTTP/Kafka, а не в ядре расчёта.
func (b BirthMoment) Validate() error {
	if b.Month < 1 || b.Month > 12 {
		return fmt.Errorf("%w: month %d out of range", ErrInvalidBirthMoment, b.Month)
	}
	daysInMonth := time.Date(b.Year, time.Month(b.Month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if b.Day < 1 || b.Day > daysInMonth {
		return fmt.Errorf("%w: day %d out of range for %04d-%02d", ErrInvalidBirthMoment, b.Day, b.Year, b.Month)
	}
	if b.Hour < 0 || b.Hour > 23 || b.Minute < 0 || b.Minute > 59 || b.Second < 0 || b.Second > 59 {
		return fmt.Errorf("%w: time %02d:%02d:%02d out of range", ErrInvalidBirthMoment, b.Hour, b.Minute, b.Second)
	}
	if math.IsNaN(b.UTCOffsetHours) || b.UTCOffsetHours < -14 || b.UTCOffsetHours > 14 {
		return fmt.Errorf("%w: %v", ErrInvalidUTCOffset, b.UTCOffsetHours)
	}
	return nil
}

// String локальное время в формате 2006-01-02T15:04:05+05:30
func (b BirthMoment) String() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d%s",
		b.Year, b.Month, b.Day, b.Hour, b.Minute, b.Second, FormatUTCOffset(b.UTCOffsetHours))
}

// ParseUTCOffset разбирает смещение: "+05:30", "-0400", "5.5", "5"
func ParseUTCOffset(value string) (float64, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidUTCOffset)
	}

	if hours, err := strconv.ParseFloat(s, 64); err == nil && !strings.Contains(s, ":") {
		if len(strings.TrimLeft(s, "+-")) == 4 && !strings.Contains(s, ".") {
			// "-0400" - это часы и минуты без разделителя
			return parseHoursMinutes(s)
		}
		if math.IsNaN(hours) || math.IsInf(hours, 0) || math.Abs(hours) > 14 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidUTCOffset, value)
		}
		return hours, nil
	}

	return parseHoursMinutes(s)
}

func parseHoursMinutes(s string) (float64, error) {
	sign := 1.0
	switch {
	case strings.HasPrefix(s, "-"):
		sign = -1
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	var hh, mm string
	if i := strings.IndexByte(s, ':'); i >= 0 {
		hh, mm = s[:i], s[i+1:]
	} else if len(s) == 4 {
		hh, mm = s[:2], s[2:]
	} else {
		return 0, fmt.Errorf("%w: %q", ErrInvalidUTCOffset, s)
	}

	hours, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("%w: hours %q", ErrInvalidUTCOffset, hh)
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: minutes %q", ErrInvalidUTCOffset, mm)
	}
	if hours < 0 || hours > 14 {
		return 0, fmt.Errorf("%w: hours %d", ErrInvalidUTCOffset, hours)
	}

	return sign * (float64(hours) + float64(minutes)/60), nil
}

// FormatUTCOffset 5.5 -> "+05:30"
func FormatUTCOffset(offset float64) string {
	sign := "+"
	if offset < 0 {
		sign = "-"
	}
	total := int(math.Round(math.Abs(offset) * 60))
	return fmt.Sprintf("%s%02d:%02d", sign, total/60, total%60)
}

// GeoCoordinate географические координаты места рождения, в градусах
type GeoCoordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate проверяет корректность координат
func (g GeoCoordinate) Validate() error {
	if math.IsNaN(g.Latitude) || g.Latitude < -90 || g.Latitude > 90 {
		return fmt.Errorf("%w: latitude must be between -90 and 90", ErrInvalidCoordinates)
	}
	if math.IsNaN(g.Longitude) || g.Longitude < -180 || g.Longitude > 180 {
		return fmt.Errorf("%w: longitude must be between -180 and 180", ErrInvalidCoordinates)
	}
	return nil
}

// Epoch пара юлианских дат для одного момента
type Epoch struct {
	JD  float64 `json:"jd"`  // UT, для звёздного времени
	JDE float64 `json:"jde"` // TT, для эфемерид
}
