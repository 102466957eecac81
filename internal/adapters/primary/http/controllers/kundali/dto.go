package kundaliController

import (
	"fmt"
	"strings"
	"time"

	"github.com/admin/astro/kundali-engine/internal/domain"
)

// ChartReq тело запроса на расчёт карты
type ChartReq struct {
	Date        string   `json:"date" binding:"required,datetime=2006-01-02"`
	Time        string   `json:"time" binding:"required"`
	Timezone    string   `json:"timezone" binding:"required"` // "+05:30", "5.5"
	Latitude    *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
	Zodiac      string   `json:"zodiac" binding:"omitempty,oneof=sidereal tropical"`
	HouseSystem string   `json:"house_system" binding:"omitempty,oneof=whole_sign equal"`
	DashaYears  float64  `json:"dasha_years" binding:"omitempty,gt=0,lte=1000"`
	Antardashas bool     `json:"antardashas"`
}

// MatchReq пара карт для совместимости
type MatchReq struct {
	Boy  ChartReq `json:"boy" binding:"required"`
	Girl ChartReq `json:"girl" binding:"required"`
}

// ToDomain разбирает дату, время ("15:04" или "15:04:05") и смещение
func (r ChartReq) ToDomain() (domain.ChartRequest, error) {
	date, err := time.Parse(time.DateOnly, r.Date)
	if err != nil {
		return domain.ChartRequest{}, fmt.Errorf("%w: date %q", domain.ErrInvalidBirthMoment, r.Date)
	}

	clock, err := parseClock(r.Time)
	if err != nil {
		return domain.ChartRequest{}, err
	}

	offset, err := domain.ParseUTCOffset(r.Timezone)
	if err != nil {
		return domain.ChartRequest{}, err
	}

	req := domain.ChartRequest{
		Birth: domain.BirthMoment{
			Year:           date.Year(),
			Month:          int(date.Month()),
			Day:            date.Day(),
			Hour:           clock.Hour(),
			Minute:         clock.Minute(),
			Second:         clock.Second(),
			UTCOffsetHours: offset,
		},
		Zodiac:          domain.ZodiacType(r.Zodiac),
		HouseSystem:     domain.HouseSystem(r.HouseSystem),
		DashaYears:      r.DashaYears,
		WithAntardashas: r.Antardashas,
	}
	if r.Latitude != nil {
		req.Location.Latitude = *r.Latitude
	}
	if r.Longitude != nil {
		req.Location.Longitude = *r.Longitude
	}

	return req, nil
}

func parseClock(value string) (time.Time, error) {
	layout := "15:04"
	if strings.Count(value, ":") == 2 {
		layout = time.TimeOnly
	}
	clock, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: time %q", domain.ErrInvalidBirthMoment, value)
	}
	return clock, nil
}

// ToDomain обе карты
func (r MatchReq) ToDomain() (domain.MatchRequest, error) {
	boy, err := r.Boy.ToDomain()
	if err != nil {
		return domain.MatchRequest{}, fmt.Errorf("boy: %w", err)
	}
	girl, err := r.Girl.ToDomain()
	if err != nil {
		return domain.MatchRequest{}, fmt.Errorf("girl: %w", err)
	}
	return domain.MatchRequest{Boy: boy, Girl: girl}, nil
}
