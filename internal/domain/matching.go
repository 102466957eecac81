package domain

import "time"

// Koota одна из восьми категорий совместимости
type Koota struct {
	Name      string  `json:"name"`
	BoyValue  string  `json:"boy_value"`
	GirlValue string  `json:"girl_value"`
	Score     float64 `json:"score"`
	Max       float64 `json:"max"`
}

// MangalDosha положение Марса относительно лагны
type MangalDosha struct {
	House    int    `json:"house"`
	Severity string `json:"severity"` // high | low | none
}

// HasDosha есть ли доша
func (m MangalDosha) HasDosha() bool {
	return m.Severity != DoshaNone
}

const (
	DoshaHigh = "high"
	DoshaLow  = "low"
	DoshaNone = "none"
)

// MatchRequest две карты для сравнения
type MatchRequest struct {
	Boy  ChartRequest `json:"boy"`
	Girl ChartRequest `json:"girl"`
}

// MatchResult итог ашта-кута гуна милан
type MatchResult struct {
	Kootas     []Koota     `json:"kootas"`
	Total      float64     `json:"total"`
	Max        float64     `json:"max"`
	Percentage int         `json:"percentage"`
	Verdict    string      `json:"verdict"`
	BoyDosha   MangalDosha `json:"boy_mangal_dosha"`
	GirlDosha  MangalDosha `json:"girl_mangal_dosha"`
	DoshaMatch bool        `json:"dosha_match"`
}

// PositionsSnapshot положения грах на момент (транзиты)
type PositionsSnapshot struct {
	At        time.Time      `json:"at"`
	Epoch     Epoch          `json:"epoch"`
	Ayanamsa  float64        `json:"ayanamsa"`
	Ephemeris string         `json:"ephemeris"`
	Location  GeoCoordinate  `json:"location"`
	Ascendant Ascendant      `json:"ascendant"`
	Planets   []PlacedPlanet `json:"planets"`
}
